package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ananyakrishnan/zaika/app/checkout"
)

var checkoutInput checkout.Input

// zaika checkout — submit the cart as an order.
var checkoutCmd = &cobra.Command{
	Use:   "checkout",
	Short: "Place an order for everything in the cart",
	RunE: func(cmd *cobra.Command, args []string) error {
		app := newApp()

		conf, err := checkout.New(app).Submit(cmd.Context(), checkoutInput)
		if err != nil {
			return err
		}

		fmt.Printf("Order #%s confirmed!\n\n", shortID(conf.OrderID))
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		for _, it := range conf.Items {
			fmt.Fprintf(w, "  %s\tx%d\t%s\n", it.Name, it.Quantity, money(it.Price*float64(it.Quantity)))
		}
		if err := w.Flush(); err != nil {
			return err
		}

		fmt.Printf("\nTotal    %s\n", money(conf.TotalAmount))
		fmt.Printf("Deliver  %s\n", conf.DeliveryAddress)
		fmt.Printf("Phone    %s\n", conf.Phone)
		fmt.Printf("ETA      around %s\n", conf.EstimatedAt.Format("3:04 PM"))
		return nil
	},
}

func init() {
	checkoutCmd.Flags().StringVarP(&checkoutInput.DeliveryAddress, "address", "a", "", "delivery address (10+ characters)")
	checkoutCmd.Flags().StringVarP(&checkoutInput.Phone, "phone", "p", "", "10-digit phone number")
	checkoutCmd.MarkFlagRequired("address") //nolint:errcheck
	checkoutCmd.MarkFlagRequired("phone")   //nolint:errcheck
}

func shortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[len(id)-8:]
}
