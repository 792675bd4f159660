package cli

import (
	"github.com/spf13/cobra"

	"github.com/angelmondragon/storehub-console/internal/posts"
	"github.com/angelmondragon/storehub-console/internal/rankings"
)

func newRankingsCmd(app func() *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rankings",
		Short: "Loyalty tiers and customer standings",
	}

	overview := &cobra.Command{
		Use:   "overview",
		Short: "Show the tier ladder",
		RunE: func(cmd *cobra.Command, args []string) error {
			tiers, err := app().Rankings.Overview(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), tiers)
		},
	}

	customer := &cobra.Command{
		Use:   "customer [id]",
		Short: "Show a customer's standing (defaults to the logged-in customer)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app()
			id := ""
			if len(args) == 1 {
				id = args[0]
			} else {
				resolved, err := a.requireCustomer()
				if err != nil {
					return err
				}
				id = resolved
			}
			ranking, err := a.Rankings.Customer(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), ranking)
		},
	}

	var historyParams rankings.HistoryParams
	history := &cobra.Command{
		Use:   "history <id>",
		Short: "Show a customer's points history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := app().Rankings.CustomerHistory(cmd.Context(), args[0], historyParams)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), entries)
		},
	}
	history.Flags().IntVar(&historyParams.Page, "page", 0, "page number")
	history.Flags().IntVar(&historyParams.Limit, "limit", 0, "page size")

	cmd.AddCommand(overview, customer, history)
	return cmd
}

func newPostsCmd(app func() *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "posts",
		Short: "Manage editorial posts",
	}

	var listParams posts.ListParams
	list := &cobra.Command{
		Use:   "list",
		Short: "List posts",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := app().Posts.List(cmd.Context(), listParams)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), result)
		},
	}
	list.Flags().IntVar(&listParams.Page, "page", 0, "page number")
	list.Flags().IntVar(&listParams.Limit, "limit", 0, "page size")
	list.Flags().StringVar(&listParams.Search, "search", "", "search term")

	get := &cobra.Command{
		Use:   "get <id>",
		Short: "Show one post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			post, err := app().Posts.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), post)
		},
	}

	var createInput posts.CreatePostInput
	create := &cobra.Command{
		Use:   "create",
		Short: "Create a post",
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return app().requireAdmin(cmd.Context())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			post, err := app().Posts.Create(cmd.Context(), createInput)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), post)
		},
	}
	create.Flags().StringVar(&createInput.Title, "title", "", "post title")
	create.Flags().StringVar(&createInput.Content, "content", "", "post body")
	create.Flags().StringVar(&createInput.ThumbnailURL, "thumbnail", "", "thumbnail url")
	create.Flags().BoolVar(&createInput.Published, "published", false, "publish immediately")

	var updateInput posts.UpdatePostInput
	var updatePublished bool
	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a post",
		Args:  cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return app().requireAdmin(cmd.Context())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("published") {
				published := updatePublished
				updateInput.Published = &published
			}
			post, err := app().Posts.Update(cmd.Context(), args[0], updateInput)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), post)
		},
	}
	update.Flags().StringVar(&updateInput.Title, "title", "", "post title")
	update.Flags().StringVar(&updateInput.Content, "content", "", "post body")
	update.Flags().StringVar(&updateInput.ThumbnailURL, "thumbnail", "", "thumbnail url")
	update.Flags().BoolVar(&updatePublished, "published", false, "publication state")

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a post",
		Args:  cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return app().requireAdmin(cmd.Context())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return app().Posts.Delete(cmd.Context(), args[0])
		},
	}

	cmd.AddCommand(list, get, create, update, del)
	return cmd
}
