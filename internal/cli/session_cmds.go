package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/angelmondragon/storehub-console/internal/session"
	"github.com/angelmondragon/storehub-console/internal/users"
)

func newWhoamiCmd(app func() *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session state",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app()
			out := map[string]any{
				"authenticated": a.Oracle.IsAuthenticated(),
				"admin":         a.Oracle.IsAdmin(),
				"customer":      a.Oracle.IsCustomer(),
			}
			if id := a.Oracle.CurrentCustomerID(); id != "" {
				out["customer_id"] = id
			}
			if user := a.Store.User(); user != nil {
				out["user_id"] = user.ID
				out["email"] = user.Email
			}
			if claims, ok := session.PeekClaims(a.Store.Token()); ok {
				out["token_issuer"] = claims.Issuer
				if !claims.ExpiresAt.IsZero() {
					out["token_expires_at"] = claims.ExpiresAt.Format(time.RFC3339)
					out["token_expired"] = claims.Expired(time.Now())
				}
			}
			return printJSON(cmd.OutOrStdout(), out)
		},
	}
}

func newVerifyCmd(app func() *App) *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Run the admin authorization gate",
		RunE: func(cmd *cobra.Command, args []string) error {
			decision := app().Guard.Authorize(cmd.Context())
			if err := printJSON(cmd.OutOrStdout(), decision); err != nil {
				return err
			}
			if !decision.Authorized() {
				return fmt.Errorf("authorization denied: %s", decision.Reason)
			}
			return nil
		},
	}
}

func newMigrateCredentialsCmd(app func() *App) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate-credentials",
		Short: "Fold legacy credential keys into the current layout",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app().Store.Migrate(cmd.Context()) {
				fmt.Fprintln(cmd.OutOrStdout(), "credentials migrated")
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "credentials already current")
			}
			return nil
		},
	}
}

func newChangePasswordCmd(app func() *App) *cobra.Command {
	var input users.ChangePasswordInput
	cmd := &cobra.Command{
		Use:   "change-password",
		Short: "Change the logged-in account's password",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app()
			if !a.Oracle.IsAuthenticated() {
				return fmt.Errorf("not logged in")
			}
			if err := a.Users.ChangePassword(cmd.Context(), input); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "password changed")
			return nil
		},
	}
	cmd.Flags().StringVar(&input.CurrentPassword, "current", "", "current password")
	cmd.Flags().StringVar(&input.NewPassword, "new", "", "new password")
	return cmd
}

func newLogoutCmd(app func() *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app()
			if err := a.Realtime.Disconnect(); err != nil {
				a.Logg.Warn(cmd.Context(), "closing realtime channel: "+err.Error())
			}
			a.Store.Clear()
			fmt.Fprintln(cmd.OutOrStdout(), "session cleared")
			return nil
		},
	}
}
