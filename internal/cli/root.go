package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// ExecuteContext builds the command tree and runs it. App bootstrap happens
// lazily so help and completion work without configuration.
func ExecuteContext(ctx context.Context) error {
	var app *App

	root := &cobra.Command{
		Use:           "console",
		Short:         "StoreHub admin and customer console",
		Long:          "console drives the StoreHub e-commerce backend: account administration, audit trail, rankings, posts, and realtime order notifications.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			built, err := NewApp(cmd.Context())
			if err != nil {
				return err
			}
			app = built
			return nil
		},
	}

	appRef := func() *App { return app }
	root.AddCommand(
		newWhoamiCmd(appRef),
		newVerifyCmd(appRef),
		newWatchCmd(appRef),
		newUsersCmd(appRef),
		newAuditCmd(appRef),
		newRankingsCmd(appRef),
		newPostsCmd(appRef),
		newUnpaidOrdersCmd(appRef),
		newChangePasswordCmd(appRef),
		newMigrateCredentialsCmd(appRef),
		newLogoutCmd(appRef),
	)

	return root.ExecuteContext(ctx)
}

func printJSON(w io.Writer, v any) error {
	encoded, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(encoded))
	return err
}
