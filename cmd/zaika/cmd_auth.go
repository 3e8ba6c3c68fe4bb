package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ananyakrishnan/zaika/app/state"
)

var loginInput state.Credentials

// zaika login — exchange credentials for a session.
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to your account",
	RunE: func(cmd *cobra.Command, args []string) error {
		return newApp().Login(cmd.Context(), loginInput)
	},
}

var registerInput state.Registration

// zaika register — create an account; success logs you in.
var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account",
	RunE: func(cmd *cobra.Command, args []string) error {
		return newApp().Register(cmd.Context(), registerInput)
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and clear local state",
	RunE: func(cmd *cobra.Command, args []string) error {
		newApp().Logout()
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the active session",
	RunE: func(cmd *cobra.Command, args []string) error {
		sess := newApp().Session()
		if sess == nil {
			fmt.Println("Not logged in.")
			return nil
		}
		fmt.Printf("%s <%s>\n", sess.User.Name, sess.User.Email)
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVarP(&loginInput.Email, "email", "e", "", "account email")
	loginCmd.Flags().StringVarP(&loginInput.Password, "password", "p", "", "account password")
	loginCmd.MarkFlagRequired("email")    //nolint:errcheck
	loginCmd.MarkFlagRequired("password") //nolint:errcheck

	registerCmd.Flags().StringVarP(&registerInput.Name, "name", "n", "", "your name")
	registerCmd.Flags().StringVarP(&registerInput.Email, "email", "e", "", "account email")
	registerCmd.Flags().StringVarP(&registerInput.Password, "password", "p", "", "account password (6+ characters)")
	registerCmd.Flags().StringVar(&registerInput.Phone, "phone", "", "10-digit phone number")
	registerCmd.Flags().StringVar(&registerInput.Address, "address", "", "delivery address")
	registerCmd.MarkFlagRequired("name")     //nolint:errcheck
	registerCmd.MarkFlagRequired("email")    //nolint:errcheck
	registerCmd.MarkFlagRequired("password") //nolint:errcheck
	registerCmd.MarkFlagRequired("phone")    //nolint:errcheck
	registerCmd.MarkFlagRequired("address")  //nolint:errcheck
}
