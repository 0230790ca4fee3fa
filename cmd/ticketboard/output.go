package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"
	"time"

	"gopkg.in/yaml.v3"

	"ticketboard/internal/models"
)

const (
	formatTable = "table"
	formatJSON  = "json"
	formatYAML  = "yaml"
)

// render writes v as JSON or YAML, or hands a tabwriter to table for
// the default format.
func (a *app) render(v any, table func(w *tabwriter.Writer)) error {
	switch a.format {
	case formatJSON:
		enc := json.NewEncoder(a.out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case formatYAML:
		enc := yaml.NewEncoder(a.out)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	table(tw)
	return tw.Flush()
}

func (a *app) renderTickets(ts []models.Ticket) error {
	if ts == nil {
		ts = []models.Ticket{}
	}
	return a.render(ts, func(w *tabwriter.Writer) {
		if len(ts) == 0 {
			fmt.Fprintln(w, "no tickets")
			return
		}
		fmt.Fprintln(w, "ID\tPRIORITY\tSTATUS\tTITLE\tCREATED")
		for _, t := range ts {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", t.ID, t.Priority, t.Status, t.Title, t.CreatedAt.Local().Format(time.DateTime))
		}
	})
}

func (a *app) renderTicket(t *models.Ticket) error {
	return a.render(t, func(w *tabwriter.Writer) {
		fmt.Fprintf(w, "ID\t%s\n", t.ID)
		fmt.Fprintf(w, "Title\t%s\n", t.Title)
		if t.Description != "" {
			fmt.Fprintf(w, "Description\t%s\n", t.Description)
		}
		fmt.Fprintf(w, "Priority\t%s\n", t.Priority)
		fmt.Fprintf(w, "Status\t%s\n", t.Status)
		fmt.Fprintf(w, "Created\t%s\n", t.CreatedAt.Local().Format(time.DateTime))
		fmt.Fprintf(w, "Updated\t%s\n", t.UpdatedAt.Local().Format(time.DateTime))
	})
}

func (a *app) renderUser(u *models.User) error {
	return a.render(u, func(w *tabwriter.Writer) {
		fmt.Fprintf(w, "ID\t%s\n", u.ID)
		fmt.Fprintf(w, "Username\t%s\n", u.Username)
		fmt.Fprintf(w, "Email\t%s\n", u.Email)
		fmt.Fprintf(w, "Member since\t%s\n", u.CreatedAt.Local().Format(time.DateOnly))
	})
}

func (a *app) renderSummary(s *models.TicketSummary) error {
	return a.render(s, func(w *tabwriter.Writer) {
		fmt.Fprintf(w, "Open\t%d\n", s.Open)
		fmt.Fprintf(w, "In progress\t%d\n", s.InProgress)
		fmt.Fprintf(w, "Closed\t%d\n", s.Closed)
		fmt.Fprintf(w, "High priority open\t%d\n", s.HighOpen)
	})
}

func (a *app) renderHealth(st models.HealthStatus) error {
	return a.render(st, func(w *tabwriter.Writer) {
		fmt.Fprintf(w, "backend\t%s\n", st.Backend)
		fmt.Fprintf(w, "database\t%s\n", st.Database)
	})
}
