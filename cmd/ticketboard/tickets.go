package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"ticketboard/internal/models"
)

func newTicketsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tickets",
		Aliases: []string{"t"},
		Short:   "List and manage tickets",
	}
	cmd.AddCommand(
		newTicketsListCmd(a),
		newTicketsGetCmd(a),
		newTicketsCreateCmd(a),
		newTicketsUpdateCmd(a),
		newTicketsDeleteCmd(a),
		newTicketsSearchCmd(a),
		newTicketsSummaryCmd(a),
	)
	return cmd
}

// ticketFilter narrows a fetched list by the --status and --priority flags.
type ticketFilter struct {
	status   string
	priority string
}

func (f ticketFilter) bind(cmd *cobra.Command) *ticketFilter {
	cmd.Flags().StringVar(&f.status, "status", "", "only tickets with this status")
	cmd.Flags().StringVar(&f.priority, "priority", "", "only tickets with this priority")
	return &f
}

func (f *ticketFilter) apply(ts []models.Ticket) ([]models.Ticket, error) {
	var st models.Status
	var pr models.Priority
	var err error
	if f.status != "" {
		if st, err = models.ParseStatus(f.status); err != nil {
			return nil, err
		}
	}
	if f.priority != "" {
		if pr, err = models.ParsePriority(f.priority); err != nil {
			return nil, err
		}
	}
	out := make([]models.Ticket, 0, len(ts))
	for _, t := range ts {
		if (st == "" || t.Status == st) && (pr == "" || t.Priority == pr) {
			out = append(out, t)
		}
	}
	return out, nil
}

func newTicketsListCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tickets, newest first",
		Args:    cobra.NoArgs,
		PreRunE: a.signedIn,
	}
	filter := ticketFilter{}.bind(cmd)
	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		ts, err := a.svc.Tickets.List(cmd.Context())
		if err != nil {
			return err
		}
		if ts, err = filter.apply(ts); err != nil {
			return err
		}
		return a.renderTickets(ts)
	}
	return cmd
}

func newTicketsSearchCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "search <query>",
		Short:   "Find tickets whose title or description matches",
		Args:    cobra.ExactArgs(1),
		PreRunE: a.signedIn,
	}
	filter := ticketFilter{}.bind(cmd)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		ts, err := a.svc.Tickets.Search(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if ts, err = filter.apply(ts); err != nil {
			return err
		}
		return a.renderTickets(ts)
	}
	return cmd
}

func newTicketsGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "get <id>",
		Short:   "Show one ticket",
		Args:    cobra.ExactArgs(1),
		PreRunE: a.signedIn,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := a.svc.Tickets.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.renderTicket(t)
		},
	}
}

func newTicketsCreateCmd(a *app) *cobra.Command {
	var description, priority string
	cmd := &cobra.Command{
		Use:     "create <title>",
		Short:   "Open a new ticket",
		Args:    cobra.ExactArgs(1),
		PreRunE: a.signedIn,
		RunE: func(cmd *cobra.Command, args []string) error {
			in := models.TicketInput{Title: args[0], Description: description}
			if priority != "" {
				p, err := models.ParsePriority(priority)
				if err != nil {
					return err
				}
				in.Priority = p
			}
			t, err := a.svc.Tickets.Create(cmd.Context(), in)
			if err != nil {
				return err
			}
			return a.renderTicket(t)
		},
	}
	cmd.Flags().StringVarP(&description, "description", "d", "", "longer description")
	cmd.Flags().StringVarP(&priority, "priority", "p", "", "LOW, MEDIUM (default) or HIGH")
	return cmd
}

func newTicketsUpdateCmd(a *app) *cobra.Command {
	var title, description, priority, status string
	cmd := &cobra.Command{
		Use:     "update <id>",
		Short:   "Change fields of a ticket",
		Long:    "Change fields of a ticket. Only the flags given are sent.",
		Args:    cobra.ExactArgs(1),
		PreRunE: a.signedIn,
		RunE: func(cmd *cobra.Command, args []string) error {
			var patch models.TicketPatch
			flags := cmd.Flags()
			if flags.Changed("title") {
				patch.Title = &title
			}
			if flags.Changed("description") {
				patch.Description = &description
			}
			if flags.Changed("priority") {
				p, err := models.ParsePriority(priority)
				if err != nil {
					return err
				}
				patch.Priority = &p
			}
			if flags.Changed("status") {
				st, err := models.ParseStatus(status)
				if err != nil {
					return err
				}
				patch.Status = &st
			}
			if patch.Empty() {
				return fmt.Errorf("nothing to update, pass at least one of --title, --description, --priority, --status")
			}
			t, err := a.svc.Tickets.Update(cmd.Context(), args[0], patch)
			if err != nil {
				return err
			}
			return a.renderTicket(t)
		},
	}
	f := cmd.Flags()
	f.StringVar(&title, "title", "", "new title")
	f.StringVarP(&description, "description", "d", "", "new description")
	f.StringVarP(&priority, "priority", "p", "", "LOW, MEDIUM or HIGH")
	f.StringVarP(&status, "status", "s", "", "OPEN, IN_PROGRESS or CLOSED")
	return cmd
}

func newTicketsDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>...",
		Aliases: []string{"rm"},
		Short:   "Delete tickets",
		Args:    cobra.MinimumNArgs(1),
		PreRunE: a.signedIn,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, id := range args {
				if err := a.svc.Tickets.Delete(cmd.Context(), id); err != nil {
					return fmt.Errorf("delete %s: %w", id, err)
				}
				fmt.Fprintf(a.out, "deleted %s\n", id)
			}
			return nil
		},
	}
}

func newTicketsSummaryCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "summary",
		Short:   "Count tickets by status",
		Args:    cobra.NoArgs,
		PreRunE: a.signedIn,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := a.svc.Tickets.Summary(cmd.Context())
			if err != nil {
				return err
			}
			return a.renderSummary(s)
		},
	}
}
