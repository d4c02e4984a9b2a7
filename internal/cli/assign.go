package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/contactdesk/internal/ports/primary"
	"github.com/example/contactdesk/internal/wire"
)

// AssignCmd returns the assign command
func AssignCmd() *cobra.Command {
	var role, userID string
	var confirm bool

	cmd := &cobra.Command{
		Use:   "assign [contact-id...]",
		Short: "Assign or clear an agent on one or more contacts",
		Long: `Assign an agent role across contacts, or clear it by omitting --user.
Clearing a role that would leave contacts with no assignee at all requires
--confirm: those contacts drop into the fosse.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.ContactAdapter().Assign(cmd.Context(), primary.BulkAssignRequest{
				ContactIDs: args,
				Role:       role,
				UserID:     userID,
				Confirmed:  confirm,
			})
		},
	}

	cmd.Flags().StringVar(&role, "role", "teleoperator", "Role to assign (teleoperator or confirmateur)")
	cmd.Flags().StringVar(&userID, "user", "", "Agent to assign; empty clears the role")
	cmd.Flags().BoolVar(&confirm, "confirm", false, "Confirm assignments that drop contacts into the fosse")

	return cmd
}
