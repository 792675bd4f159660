package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/angelmondragon/storehub-console/internal/audit"
)

func newAuditCmd(app func() *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Inspect the audit trail",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if parent := cmd.Root().PersistentPreRunE; parent != nil {
				if err := parent(cmd, args); err != nil {
					return err
				}
			}
			return app().requireAdmin(cmd.Context())
		},
	}

	var listParams audit.ListParams
	list := &cobra.Command{
		Use:   "list",
		Short: "List audit entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := app().Audit.List(cmd.Context(), listParams)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), result)
		},
	}
	list.Flags().IntVar(&listParams.Page, "page", 0, "page number")
	list.Flags().IntVar(&listParams.Limit, "limit", 0, "page size")
	list.Flags().StringVar(&listParams.Action, "action", "", "filter by action")
	list.Flags().StringVar(&listParams.ActorID, "actor", "", "filter by actor id")

	get := &cobra.Command{
		Use:   "get <id>",
		Short: "Show one audit entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entry, err := app().Audit.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), entry)
		},
	}

	var recordInput audit.RecordInput
	record := &cobra.Command{
		Use:   "record",
		Short: "Record a manual audit entry",
		RunE: func(cmd *cobra.Command, args []string) error {
			entry, err := app().Audit.Record(cmd.Context(), recordInput)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), entry)
		},
	}
	record.Flags().StringVar(&recordInput.Action, "action", "", "action name")
	record.Flags().StringVar(&recordInput.Resource, "resource", "", "resource type")
	record.Flags().StringVar(&recordInput.ResourceID, "resource-id", "", "resource id")

	var outPath string
	export := &cobra.Command{
		Use:   "export",
		Short: "Export the audit trail to a file",
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := os.Create(outPath)
			if err != nil {
				return fmt.Errorf("creating export file: %w", err)
			}
			defer file.Close()
			if err := app().Audit.Export(cmd.Context(), file, listParams); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "exported audit trail to %s\n", outPath)
			return nil
		},
	}
	export.Flags().StringVar(&outPath, "out", "audit-trail.csv", "destination file")
	export.Flags().StringVar(&listParams.Action, "action", "", "filter by action")

	cmd.AddCommand(list, get, record, export)
	return cmd
}
