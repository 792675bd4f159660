package cli

import (
	"github.com/spf13/cobra"

	"github.com/angelmondragon/storehub-console/internal/users"
)

func newUsersCmd(app func() *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage platform accounts",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if parent := cmd.Root().PersistentPreRunE; parent != nil {
				if err := parent(cmd, args); err != nil {
					return err
				}
			}
			return app().requireAdmin(cmd.Context())
		},
	}

	var listParams users.ListParams
	list := &cobra.Command{
		Use:   "list",
		Short: "List accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := app().Users.List(cmd.Context(), listParams)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), result)
		},
	}
	list.Flags().IntVar(&listParams.Page, "page", 0, "page number")
	list.Flags().IntVar(&listParams.Limit, "limit", 0, "page size")
	list.Flags().StringVar(&listParams.Search, "search", "", "search term")
	list.Flags().StringVar(&listParams.RoleID, "role", "", "filter by role id")

	get := &cobra.Command{
		Use:   "get <id>",
		Short: "Show one account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := app().Users.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), user)
		},
	}

	var createInput users.CreateUserInput
	create := &cobra.Command{
		Use:   "create",
		Short: "Create an account",
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := app().Users.Create(cmd.Context(), createInput)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), user)
		},
	}
	create.Flags().StringVar(&createInput.Email, "email", "", "account email")
	create.Flags().StringVar(&createInput.Password, "password", "", "initial password")
	create.Flags().StringVar(&createInput.FullName, "name", "", "full name")
	create.Flags().StringVar(&createInput.Phone, "phone", "", "phone number")
	create.Flags().StringVar(&createInput.RoleID, "role", "", "role id")

	var updateInput users.UpdateUserInput
	var deactivate bool
	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Update an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("deactivate") {
				active := !deactivate
				updateInput.IsActive = &active
			}
			user, err := app().Users.Update(cmd.Context(), args[0], updateInput)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), user)
		},
	}
	update.Flags().StringVar(&updateInput.Email, "email", "", "account email")
	update.Flags().StringVar(&updateInput.FullName, "name", "", "full name")
	update.Flags().StringVar(&updateInput.Phone, "phone", "", "phone number")
	update.Flags().BoolVar(&deactivate, "deactivate", false, "deactivate the account")

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app().Users.Delete(cmd.Context(), args[0])
		},
	}

	changeRole := &cobra.Command{
		Use:   "change-role <id> <role-id>",
		Short: "Reassign an account's role",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := app().Users.ChangeRole(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), user)
		},
	}

	roles := &cobra.Command{
		Use:   "roles",
		Short: "List assignable roles",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := app().Users.Roles(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), result)
		},
	}

	cmd.AddCommand(list, get, create, update, del, changeRole, roles)
	return cmd
}
