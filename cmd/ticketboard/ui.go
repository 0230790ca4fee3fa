package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"ticketboard/internal/state"
	"ticketboard/internal/tui"
)

func newUICmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "ui",
		Short: "Open the full-screen ticket board",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			auth := state.NewSession(a.svc.Auth, a.sess)
			tickets := state.NewTickets(a.svc.Tickets, func(err error) { auth.HandleError(err) })
			health := state.NewHealth(a.svc.Health)

			poll := health.Start(ctx, a.cfg.HealthInterval)
			defer poll.Stop()

			m := tui.New(tui.Deps{
				Context:       ctx,
				Session:       auth,
				Tickets:       tickets,
				Users:         a.svc.Users,
				Health:        health,
				HealthUpdates: poll.Updates(),
			})
			_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
			return err
		},
	}
}
