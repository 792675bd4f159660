package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/angelmondragon/storehub-console/internal/notify"
)

func newWatchCmd(app func() *App) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Stream unpaid-order notifications for the logged-in customer",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app()
			customerID, err := a.requireCustomer()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if err := a.Realtime.Connect(ctx, customerID); err != nil {
				return err
			}
			defer a.Realtime.Disconnect()

			out := cmd.OutOrStdout()
			a.Realtime.OnNotification(func(data json.RawMessage) {
				order, err := notify.ParseUnpaidOrder(data)
				if err != nil {
					a.Logg.Warn(ctx, "dropping malformed notification: "+err.Error())
					return
				}
				fmt.Fprintln(out, notify.Render(order))
			})

			fmt.Fprintf(out, "watching notifications for customer %s (ctrl-c to stop)\n", customerID)
			<-ctx.Done()
			return nil
		},
	}
}

func newUnpaidOrdersCmd(app func() *App) *cobra.Command {
	var customerID string
	cmd := &cobra.Command{
		Use:   "unpaid-orders",
		Short: "List orders awaiting payment",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app()
			id := customerID
			if id == "" {
				resolved, err := a.requireCustomer()
				if err != nil {
					return err
				}
				id = resolved
			}

			orders, err := a.Payments.UnpaidOrders(cmd.Context(), id)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(orders) == 0 {
				fmt.Fprintln(out, "no unpaid orders")
				return nil
			}
			for _, order := range orders {
				fmt.Fprintln(out, notify.Render(order))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&customerID, "customer", "", "customer id (defaults to the logged-in customer)")
	return cmd
}
