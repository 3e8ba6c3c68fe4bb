package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"

	"github.com/ananyakrishnan/zaika/app/orders"
	"github.com/ananyakrishnan/zaika/config"
	"github.com/ananyakrishnan/zaika/internal/api"
)

// zaika orders — list your order history; subcommands cancel and watch.
var ordersCmd = &cobra.Command{
	Use:   "orders",
	Short: "Show your order history",
	RunE: func(cmd *cobra.Command, args []string) error {
		app := newApp()
		flow := orders.New(app)

		if err := flow.Load(cmd.Context()); err != nil {
			if errors.Is(err, api.ErrAuthRequired) {
				fmt.Println(api.UserMessage(err))
			}
			return err
		}

		list := flow.Orders()
		if len(list) == 0 {
			fmt.Println("No orders yet.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "ORDER\tPLACED\tITEMS\tTOTAL\tSTATUS")
		for _, o := range list {
			status := string(o.Status)
			if flow.CanCancel(o) {
				status += " (cancellable)"
			}
			fmt.Fprintf(w, "#%s\t%s\t%d\t%s\t%s\n",
				o.ShortID(), o.CreatedAt.Format("Jan 2 3:04 PM"), len(o.Items), money(o.TotalAmount), status)
		}
		return w.Flush()
	},
}

var cancelAssumeYes bool

var ordersCancelCmd = &cobra.Command{
	Use:   "cancel <order-id>",
	Short: "Cancel a pending or confirmed order",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := newApp()
		flow := orders.New(app)

		if err := flow.Load(cmd.Context()); err != nil {
			if errors.Is(err, api.ErrAuthRequired) {
				fmt.Println(api.UserMessage(err))
			}
			return err
		}

		// Accept the short listing form as well as the full id.
		id := args[0]
		for _, o := range flow.Orders() {
			if o.ShortID() == strings.TrimPrefix(id, "#") {
				id = o.ID
				break
			}
		}

		if !cancelAssumeYes {
			fmt.Printf("Cancel order #%s? [y/N] ", shortID(id))
			answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			switch strings.ToLower(strings.TrimSpace(answer)) {
			case "y", "yes":
			default:
				fmt.Println("Kept the order.")
				return nil
			}
		}

		if err := flow.Cancel(cmd.Context(), id); err != nil {
			if errors.Is(err, orders.ErrNotCancellable) {
				return fmt.Errorf("order #%s can no longer be cancelled", shortID(id))
			}
			return err
		}
		return nil
	},
}

// statusUpdate matches the payload the dev backend pushes on /ws/orders.
type statusUpdate struct {
	OrderID string `json:"orderId"`
	Status  string `json:"status"`
}

var ordersWatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Stream live order status updates",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Load(); err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		url := wsURL(config.APIBaseURL()) + "/ws/orders"
		conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
		if err != nil {
			return fmt.Errorf("connect to %s: %w", url, err)
		}
		defer conn.Close()

		// Reads block in ReadJSON; closing the connection on ctx cancel
		// unblocks them.
		go func() {
			<-ctx.Done()
			conn.Close()
		}()

		fmt.Println("Watching order updates (ctrl-c to stop)…")
		for {
			var ev statusUpdate
			if err := conn.ReadJSON(&ev); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("read update: %w", err)
			}
			fmt.Printf("order #%s is now %s\n", shortID(ev.OrderID), ev.Status)
		}
	},
}

func wsURL(base string) string {
	switch {
	case strings.HasPrefix(base, "https://"):
		return "wss://" + strings.TrimPrefix(base, "https://")
	case strings.HasPrefix(base, "http://"):
		return "ws://" + strings.TrimPrefix(base, "http://")
	}
	return base
}

func init() {
	ordersCancelCmd.Flags().BoolVarP(&cancelAssumeYes, "yes", "y", false, "skip the confirmation prompt")
	ordersCmd.AddCommand(ordersCancelCmd)
	ordersCmd.AddCommand(ordersWatchCmd)
}
