package db

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"appraisal/internal/domain/auth"
	"appraisal/internal/platform/config"
)

// Seed is idempotent: it ensures the admin user and the appraisal catalog
// exist, and never overwrites rows that are already present.
func Seed(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	if cfg.SeedAdminEmail != "" {
		if err := ensureAdminUser(ctx, pool, cfg.SeedAdminEmail, cfg.SeedAdminPassword); err != nil {
			return err
		}
	}
	if err := ensureCatalog(ctx, pool); err != nil {
		return err
	}
	return nil
}

func ensureAdminUser(ctx context.Context, pool *pgxpool.Pool, email, password string) error {
	var id string
	err := pool.QueryRow(ctx, "SELECT id FROM users WHERE email = $1", email).Scan(&id)
	if err == nil {
		return nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	if err := pool.QueryRow(ctx, `
    INSERT INTO users (email, password_hash, is_hr) VALUES ($1, $2, TRUE)
    RETURNING id
  `, email, hash).Scan(&id); err != nil {
		return err
	}
	_, err = pool.Exec(ctx, `
    INSERT INTO employees (user_id, first_name, last_name, email, title)
    VALUES ($1, 'System', 'Administrator', $2, 'HR Administrator')
  `, id, email)
	return err
}

func ensureCatalog(ctx context.Context, pool *pgxpool.Pool) error {
	typeRanges := map[string][]string{
		"Annual":    {"January - December", "April - March"},
		"Half Year": {"January - June", "July - December"},
		"Quarterly": {"Q1", "Q2", "Q3", "Q4"},
		"Probation": nil,
	}
	for name, ranges := range typeRanges {
		var typeID string
		if err := pool.QueryRow(ctx, `
      INSERT INTO appraisal_types (name) VALUES ($1)
      ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
      RETURNING id
    `, name).Scan(&typeID); err != nil {
			return err
		}
		for _, rangeName := range ranges {
			if _, err := pool.Exec(ctx, `
        INSERT INTO appraisal_ranges (type_id, name) VALUES ($1, $2)
        ON CONFLICT (type_id, name) DO NOTHING
      `, typeID, rangeName); err != nil {
				return err
			}
		}
	}

	for _, name := range []string{"Delivery", "Collaboration", "Leadership", "Craftsmanship", "Growth"} {
		if _, err := pool.Exec(ctx, `
      INSERT INTO categories (name) VALUES ($1) ON CONFLICT (name) DO NOTHING
    `, name); err != nil {
			return err
		}
	}

	templates := []struct {
		title       string
		description string
		importance  string
		weightage   int
	}{
		{"Deliver committed roadmap items", "Complete the agreed deliverables for the cycle on schedule.", "high", 40},
		{"Improve code review turnaround", "Keep review response time under one business day.", "medium", 20},
		{"Mentor a junior team member", "Run regular pairing sessions and track their progression.", "medium", 20},
		{"Contribute to internal knowledge base", "Write or update at least four internal guides.", "low", 20},
	}
	for _, t := range templates {
		var count int
		if err := pool.QueryRow(ctx, "SELECT COUNT(1) FROM goal_templates WHERE title = $1", t.title).Scan(&count); err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		if _, err := pool.Exec(ctx, `
      INSERT INTO goal_templates (title, description, importance, weightage)
      VALUES ($1, $2, $3, $4)
    `, t.title, t.description, t.importance, t.weightage); err != nil {
			return err
		}
	}
	return nil
}
