package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "zaika",
	Short: "Zaika — food ordering client",
	Long: "Zaika is a terminal client for the Zaika food ordering service: " +
		"browse the menu, build a cart, check out, and follow your orders.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Browsing
	rootCmd.AddCommand(menuCmd)

	// Cart
	rootCmd.AddCommand(cartCmd)

	// Account
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)

	// Orders
	rootCmd.AddCommand(checkoutCmd)
	rootCmd.AddCommand(ordersCmd)

	// Bundled dev backend
	rootCmd.AddCommand(serveCmd)
}
