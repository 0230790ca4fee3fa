package postgres

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"ticketboard/internal/models"
	"ticketboard/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TicketRepo struct{ db *pgxpool.Pool }

func NewTicketRepo(db *pgxpool.Pool) *TicketRepo { return &TicketRepo{db: db} }

const ticketCols = `id, title, description, priority, status, created_at, updated_at`

func scanTicket(row pgx.Row, t *models.Ticket) error {
	return row.Scan(&t.ID, &t.Title, &t.Description, &t.Priority, &t.Status, &t.CreatedAt, &t.UpdatedAt)
}

// List returns tickets matching f, newest first.
func (r *TicketRepo) List(ctx context.Context, f repository.TicketFilter) ([]models.Ticket, error) {
	where, args := buildTicketWhere(f)
	rows, err := r.db.Query(ctx, `SELECT `+ticketCols+` FROM tickets `+where+` ORDER BY created_at DESC, id DESC`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Ticket{}
	for rows.Next() {
		var t models.Ticket
		if err := scanTicket(rows, &t); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *TicketRepo) Get(ctx context.Context, id string) (*models.Ticket, error) {
	var t models.Ticket
	err := scanTicket(r.db.QueryRow(ctx, `SELECT `+ticketCols+` FROM tickets WHERE id::text = $1`, id), &t)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (r *TicketRepo) Create(ctx context.Context, t *models.Ticket) error {
	return r.db.QueryRow(ctx, `
		INSERT INTO tickets (title, description, priority, status)
		VALUES ($1,$2,$3,$4)
		RETURNING id, created_at, updated_at
	`, t.Title, t.Description, t.Priority, t.Status).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
}

func (r *TicketRepo) Update(ctx context.Context, t *models.Ticket) error {
	err := r.db.QueryRow(ctx, `
		UPDATE tickets SET title=$1, description=$2, priority=$3, status=$4, updated_at=now()
		WHERE id::text = $5
		RETURNING created_at, updated_at
	`, t.Title, t.Description, t.Priority, t.Status, t.ID).Scan(&t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return repository.ErrNotFound
	}
	return err
}

func (r *TicketRepo) Delete(ctx context.Context, id string) error {
	ct, err := r.db.Exec(ctx, `DELETE FROM tickets WHERE id::text = $1`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *TicketRepo) Ping(ctx context.Context) error { return r.db.Ping(ctx) }

// buildTicketWhere composes the WHERE clause and args for f.
func buildTicketWhere(f repository.TicketFilter) (string, []any) {
	clauses := []string{"1=1"}
	args := []any{}

	if s := strings.TrimSpace(f.Q); s != "" {
		args = append(args, "%"+s+"%")
		n := itoa(len(args))
		clauses = append(clauses, "(title ILIKE $"+n+" OR description ILIKE $"+n+")")
	}
	if f.Status != "" {
		args = append(args, f.Status)
		clauses = append(clauses, "status = $"+itoa(len(args)))
	}
	if f.Priority != "" {
		args = append(args, f.Priority)
		clauses = append(clauses, "priority = $"+itoa(len(args)))
	}
	return "WHERE " + strings.Join(clauses, " AND "), args
}

func itoa(i int) string { return strconv.Itoa(i) }
