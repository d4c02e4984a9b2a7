package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/contactdesk/internal/ports/primary"
	"github.com/example/contactdesk/internal/wire"
)

// ContactCmd returns the contact command
func ContactCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "contact",
		Short: "Browse and filter the contact list",
		Long:  `List contacts with the session's effective filters and permission-scoped status views.`,
	}

	cmd.AddCommand(contactListCmd())
	cmd.AddCommand(contactFiltersCmd())

	return cmd
}

func contactListCmd() *cobra.Command {
	var page, pageSize int
	var search, statusType, order string
	var platforms, sources, statuses []string
	var createdFrom, createdTo string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List contacts",
		RunE: func(cmd *cobra.Command, args []string) error {
			service := wire.ContactService()

			// Stage and apply the column filters given on the command line.
			// Forced columns keep their administered value; the flag is
			// silently overridden, matching the screen's behaviour.
			filters := map[string]primary.FilterInput{}
			if len(platforms) > 0 {
				filters["platform"] = primary.FilterInput{Values: platforms}
			}
			if len(sources) > 0 {
				filters["source"] = primary.FilterInput{Values: sources}
			}
			if len(statuses) > 0 {
				filters["status"] = primary.FilterInput{Values: statuses}
			}
			if createdFrom != "" || createdTo != "" {
				filters["created_at"] = primary.FilterInput{From: createdFrom, To: createdTo}
			}
			for column, input := range filters {
				if err := service.SetColumnFilter(column, input); err != nil {
					return err
				}
				if err := service.ApplyColumnFilter(column); err != nil {
					cmd.Printf("note: column %s is forced by an administrator, flag ignored\n", column)
				}
			}

			return wire.ContactAdapter().List(cmd.Context(), primary.ListContactsRequest{
				Page:       page,
				PageSize:   pageSize,
				Search:     search,
				StatusType: statusType,
				Order:      order,
			})
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "Page number")
	cmd.Flags().IntVar(&pageSize, "page-size", 25, "Contacts per page")
	cmd.Flags().StringVar(&search, "search", "", "Free-text search on name, email and phone")
	cmd.Flags().StringVar(&statusType, "status-type", "", "Restrict to lead or client statuses")
	cmd.Flags().StringVar(&order, "order", "", "Sort order (e.g. -created_at)")
	cmd.Flags().StringSliceVar(&platforms, "platform", nil, "Filter by platform (repeatable)")
	cmd.Flags().StringSliceVar(&sources, "source", nil, "Filter by source (repeatable)")
	cmd.Flags().StringSliceVar(&statuses, "status", nil, "Filter by status ID (repeatable)")
	cmd.Flags().StringVar(&createdFrom, "created-from", "", "Creation date lower bound (YYYY-MM-DD)")
	cmd.Flags().StringVar(&createdTo, "created-to", "", "Creation date upper bound (YYYY-MM-DD)")

	return cmd
}

func contactFiltersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "filters",
		Short: "Show or reset the session's filters",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the effective filters",
		RunE: func(cmd *cobra.Command, args []string) error {
			filters := wire.ContactService().EffectiveFilters()
			if len(filters) == 0 {
				cmd.Println("No filters active")
				return nil
			}
			for column, f := range filters {
				switch {
				case len(f.Values) > 0:
					cmd.Printf("%s: %v\n", column, f.Values)
				case f.From != "" || f.To != "":
					cmd.Printf("%s: %s .. %s\n", column, f.From, f.To)
				case f.Text != "":
					cmd.Printf("%s: %s\n", column, f.Text)
				}
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Clear all user filters (administered filters stay)",
		RunE: func(cmd *cobra.Command, args []string) error {
			wire.ContactService().ResetFilters()
			cmd.Println("✓ Filters reset")
			return nil
		},
	})

	return cmd
}
