package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/contactdesk/internal/ports/primary"
	"github.com/example/contactdesk/internal/wire"
)

// StatusCmd returns the status command
func StatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Change a contact's status",
	}

	cmd.AddCommand(statusSetCmd())

	return cmd
}

func statusSetCmd() *cobra.Command {
	var note, categoryID string
	var eventDate, eventHour, eventMinute string
	var conversionFields map[string]string

	cmd := &cobra.Command{
		Use:   "set [contact-id] [status-id]",
		Short: "Move a contact to a new status",
		Long: `Move a contact to a new status. A note is always required; when the
target status schedules an event, pass --event-date, --event-hour and
--event-minute. Converting to the client status requires every conversion
field via repeated --field name=value flags.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := primary.ChangeStatusRequest{
				ContactID:      args[0],
				TargetStatusID: args[1],
				Note:           note,
				CategoryID:     categoryID,
				EventDate:      eventDate,
				EventHour:      eventHour,
				EventMinute:    eventMinute,
			}
			if len(conversionFields) > 0 {
				req.Conversion = &primary.ClientConversion{
					Platform:        conversionFields["platform"],
					Teleoperator:    conversionFields["teleoperator"],
					StageName:       conversionFields["stageName"],
					FirstName:       conversionFields["firstName"],
					Email:           conversionFields["email"],
					Phone:           conversionFields["phone"],
					ContractType:    conversionFields["contractType"],
					Source:          conversionFields["source"],
					CollectedAmount: conversionFields["collectedAmount"],
					Bonus:           conversionFields["bonus"],
					PaymentMethod:   conversionFields["paymentMethod"],
				}
			}

			return wire.ContactAdapter().SetStatus(cmd.Context(), req)
		},
	}

	cmd.Flags().StringVar(&note, "note", "", "Mandatory note explaining the change")
	cmd.Flags().StringVar(&categoryID, "category", "", "Note category ID")
	cmd.Flags().StringVar(&eventDate, "event-date", "", "Event date (YYYY-MM-DD) for event statuses")
	cmd.Flags().StringVar(&eventHour, "event-hour", "", "Event hour")
	cmd.Flags().StringVar(&eventMinute, "event-minute", "", "Event minute")
	cmd.Flags().StringToStringVar(&conversionFields, "field", nil, "Client conversion field (name=value, repeatable)")

	return cmd
}
