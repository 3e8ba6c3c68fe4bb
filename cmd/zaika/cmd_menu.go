package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ananyakrishnan/zaika/app/state"
)

var (
	menuSearch   string
	menuCategory string
)

// zaika menu — browse the menu, optionally filtered.
var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Browse the menu",
	RunE: func(cmd *cobra.Command, args []string) error {
		app := newApp()

		products, err := app.Menu(cmd.Context())
		if err != nil {
			return err
		}

		products = state.FilterMenu(products, menuSearch, menuCategory)
		if len(products) == 0 {
			fmt.Println("No dishes match.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "ID\tDISH\tCATEGORY\tPRICE")
		for _, p := range products {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p.ID, p.Name, p.Category, money(p.Price))
		}
		return w.Flush()
	},
}

func init() {
	menuCmd.Flags().StringVarP(&menuSearch, "search", "s", "", "filter by dish name")
	menuCmd.Flags().StringVarP(&menuCategory, "category", "c", "", `filter by category ("all" keeps everything)`)
}
