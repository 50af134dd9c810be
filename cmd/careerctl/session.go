package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	authEmail    string
	authPassword string
	authName     string
)

var signinCmd = &cobra.Command{
	Use:   "signin",
	Short: "Sign in and remember the session",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()
		c, err := newClient(cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		s, err := c.SignIn(ctx, authEmail, authPassword)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), s.User)
	},
}

var signupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Create an account and sign in",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()
		c, err := newClient(cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		s, err := c.SignUp(ctx, authEmail, authPassword, authName)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), s.User)
	},
}

var signoutCmd = &cobra.Command{
	Use:   "signout",
	Short: "End the current session",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()
		c, err := newClient(cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		return c.SignOut(ctx)
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in user",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()
		c, err := newClient(cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		if _, ok := c.Session(); !ok {
			return fmt.Errorf("not signed in")
		}
		u, err := c.WhoAmI(ctx)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), u)
	},
}

func init() {
	for _, cmd := range []*cobra.Command{signinCmd, signupCmd} {
		cmd.Flags().StringVar(&authEmail, "email", "", "Account email")
		cmd.Flags().StringVar(&authPassword, "password", "", "Account password")
		_ = cmd.MarkFlagRequired("email")
		_ = cmd.MarkFlagRequired("password")
	}
	signupCmd.Flags().StringVar(&authName, "name", "", "Display name")

	rootCmd.AddCommand(signinCmd, signupCmd, signoutCmd, whoamiCmd)
}
