package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ananyakrishnan/zaika/app/cart"
	"github.com/ananyakrishnan/zaika/app/models"
	"github.com/ananyakrishnan/zaika/app/state"
)

// zaika cart — show the cart; subcommands edit it.
var cartCmd = &cobra.Command{
	Use:   "cart",
	Short: "Show and edit the cart",
	RunE: func(cmd *cobra.Command, args []string) error {
		return printCart(newApp())
	},
}

var cartAddCmd = &cobra.Command{
	Use:   "add <dish>",
	Short: "Add one unit of a dish (by id or name)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := newApp()

		p, err := findProduct(cmd.Context(), app, args[0])
		if err != nil {
			return err
		}

		announceCartAdd(app, app.Cart().Add(p), p)
		return printCart(app)
	},
}

var cartRemoveCmd = &cobra.Command{
	Use:     "rm <dish-id>",
	Aliases: []string{"remove"},
	Short:   "Remove a dish from the cart",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := newApp()
		app.Cart().Remove(args[0])
		return printCart(app)
	},
}

var cartQtyCmd = &cobra.Command{
	Use:   "qty <dish-id> <n>",
	Short: "Set the quantity of a cart line (0 removes it)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := strconv.Atoi(args[1])
		if err != nil || n < 0 {
			return fmt.Errorf("quantity must be a non-negative number, got %q", args[1])
		}

		app := newApp()
		app.Cart().SetQuantity(args[0], n)
		return printCart(app)
	},
}

var cartClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Empty the cart",
	RunE: func(cmd *cobra.Command, args []string) error {
		app := newApp()
		app.Cart().Clear()
		fmt.Println("Cart cleared.")
		return nil
	},
}

func init() {
	cartCmd.AddCommand(cartAddCmd)
	cartCmd.AddCommand(cartRemoveCmd)
	cartCmd.AddCommand(cartQtyCmd)
	cartCmd.AddCommand(cartClearCmd)
}

// announceCartAdd surfaces the add's outcome through the notifier, so it
// shows up as a banner like every other transient message.
func announceCartAdd(app *state.App, outcome cart.Outcome, p models.Product) {
	switch outcome {
	case cart.LineAdded:
		app.Notifier().ShowSuccess(fmt.Sprintf("%s added to cart", p.Name))
	case cart.QuantityBumped:
		app.Notifier().ShowInfo(fmt.Sprintf("%s quantity updated", p.Name))
	}
}

// findProduct resolves a dish argument against the live menu: exact id first,
// then exact name, then a unique case-insensitive substring of the name.
func findProduct(ctx context.Context, app *state.App, arg string) (models.Product, error) {
	products, err := app.Menu(ctx)
	if err != nil {
		return models.Product{}, err
	}

	for _, p := range products {
		if p.ID == arg {
			return p, nil
		}
	}

	needle := strings.ToLower(strings.TrimSpace(arg))
	for _, p := range products {
		if strings.ToLower(p.Name) == needle {
			return p, nil
		}
	}

	var matches []models.Product
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), needle) {
			matches = append(matches, p)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return models.Product{}, fmt.Errorf("no dish matches %q", arg)
	}

	names := make([]string, len(matches))
	for i, p := range matches {
		names[i] = p.Name
	}
	return models.Product{}, fmt.Errorf("%q is ambiguous: %s", arg, strings.Join(names, ", "))
}

func printCart(app *state.App) error {
	lines := app.Cart().Lines()
	if len(lines) == 0 {
		fmt.Println("Your cart is empty.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ID\tDISH\tQTY\tPRICE\tSUBTOTAL")
	for _, l := range lines {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n",
			l.Product.ID, l.Product.Name, l.Quantity, money(l.Product.Price), money(l.Subtotal()))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\n%d items, total %s\n", app.Cart().Count(), money(app.Cart().Total()))
	return nil
}
