package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/support-dashboard/internal/history"
)

// HistoricalCaseRepository loads the historical case catalog from Postgres.
type HistoricalCaseRepository interface {
	ListAll(ctx context.Context) ([]history.Case, error)
}

type historicalCaseRepository struct {
	pool *pgxpool.Pool
}

// NewHistoricalCaseRepository instantiates the repository.
func NewHistoricalCaseRepository(pool *pgxpool.Pool) HistoricalCaseRepository {
	return &historicalCaseRepository{pool: pool}
}

func (r *historicalCaseRepository) ListAll(ctx context.Context) ([]history.Case, error) {
	const query = `
        SELECT ticket_id, issue_category, sentiment, priority, solution, resolution_status, date_of_resolution
        FROM historical_cases
        ORDER BY ticket_id`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cases []history.Case
	for rows.Next() {
		var c history.Case
		if err := rows.Scan(
			&c.TicketID,
			&c.IssueCategory,
			&c.Sentiment,
			&c.Priority,
			&c.Solution,
			&c.ResolutionStatus,
			&c.DateOfResolution,
		); err != nil {
			return nil, err
		}
		cases = append(cases, c)
	}
	return cases, rows.Err()
}
