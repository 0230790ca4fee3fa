package main

import (
	"errors"

	"github.com/spf13/cobra"

	"ticketboard/internal/models"
)

func newProfileCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or edit your account",
	}

	show := &cobra.Command{
		Use:     "show",
		Short:   "Show your profile",
		Args:    cobra.NoArgs,
		PreRunE: a.signedIn,
		RunE: func(cmd *cobra.Command, _ []string) error {
			u, err := a.svc.Users.Profile(cmd.Context())
			if err != nil {
				return err
			}
			return a.renderUser(u)
		},
	}

	var username, email string
	update := &cobra.Command{
		Use:     "update",
		Short:   "Change your username or email",
		Args:    cobra.NoArgs,
		PreRunE: a.signedIn,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var upd models.ProfileUpdate
			if cmd.Flags().Changed("username") {
				upd.Username = &username
			}
			if cmd.Flags().Changed("email") {
				upd.Email = &email
			}
			if upd.Username == nil && upd.Email == nil {
				return errors.New("nothing to update, pass --username or --email")
			}
			u, err := a.svc.Users.UpdateProfile(cmd.Context(), upd)
			if err != nil {
				return err
			}
			if err := a.sess.SetUser(*u); err != nil {
				return err
			}
			return a.renderUser(u)
		},
	}
	update.Flags().StringVar(&username, "username", "", "new username")
	update.Flags().StringVar(&email, "email", "", "new email address")

	cmd.AddCommand(show, update)
	return cmd
}
