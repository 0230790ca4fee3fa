package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"ticketboard/internal/models"
)

// readPassword prompts on the terminal with echo disabled.
func readPassword(prompt string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", errors.New("no terminal available for the password prompt (use --password)")
	}
	fmt.Fprint(os.Stderr, prompt)
	b, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return string(b), nil
}

func newLoginCmd(a *app) *cobra.Command {
	var password string
	cmd := &cobra.Command{
		Use:   "login <username>",
		Short: "Sign in and store the session token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				var err error
				if password, err = readPassword("Password: "); err != nil {
					return err
				}
			}
			res, err := a.svc.Auth.Login(cmd.Context(), models.Credentials{Username: args[0], Password: password})
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "signed in as %s\n", res.User.Username)
			return nil
		},
	}
	cmd.Flags().StringVar(&password, "password", "", "password (prompted for when omitted)")
	return cmd
}

func newRegisterCmd(a *app) *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "register <username>",
		Short: "Create an account and sign in",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				first, err := readPassword("Password: ")
				if err != nil {
					return err
				}
				second, err := readPassword("Confirm password: ")
				if err != nil {
					return err
				}
				if first != second {
					return errors.New("passwords do not match")
				}
				password = first
			}
			res, err := a.svc.Auth.Register(cmd.Context(), models.Registration{Username: args[0], Email: email, Password: password})
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "registered and signed in as %s\n", res.User.Username)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&password, "password", "", "password (prompted for when omitted)")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session token",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			if err := a.svc.Auth.Logout(); err != nil {
				return err
			}
			fmt.Fprintln(a.out, "signed out")
			return nil
		},
	}
}

func newWhoamiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "whoami",
		Short:   "Verify the stored token and show its user",
		Args:    cobra.NoArgs,
		PreRunE: a.signedIn,
		RunE: func(cmd *cobra.Command, _ []string) error {
			u, err := a.svc.Auth.Verify(cmd.Context())
			if err != nil {
				return err
			}
			return a.renderUser(u)
		},
	}
}
