package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"ticketboard/internal/models"
	"ticketboard/internal/state"
)

func newHealthCmd(a *app) *cobra.Command {
	var watch bool
	cmd := &cobra.Command{
		Use:   "health",
		Short: "Probe the backend and its database",
		Long: "Probe the backend and its database. With --watch the probes repeat\n" +
			"every health interval until interrupted.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			h := state.NewHealth(a.svc.Health)
			if !watch {
				st := h.Check(cmd.Context())
				if err := cmd.Context().Err(); err != nil {
					return err
				}
				if err := a.renderHealth(st); err != nil {
					return err
				}
				return unhealthy(st)
			}

			poll := h.Start(cmd.Context(), a.cfg.HealthInterval)
			defer poll.Stop()
			for st := range poll.Updates() {
				if err := a.renderHealth(st); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "keep polling")
	cmd.Flags().DurationVar(&a.cfg.HealthInterval, "interval", a.cfg.HealthInterval, "time between probes with --watch (TICKETBOARD_HEALTH_INTERVAL)")
	return cmd
}

// unhealthy turns a failed check into a non-zero exit.
func unhealthy(st models.HealthStatus) error {
	if st.Backend != models.HealthHealthy || st.Database != models.HealthHealthy {
		return fmt.Errorf("health check failed: backend %s, database %s", st.Backend, st.Database)
	}
	return nil
}
