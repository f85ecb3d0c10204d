package catalog

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrTemplateNotFound = errors.New("goal template not found")

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) ListTypes(ctx context.Context) ([]AppraisalType, error) {
	rows, err := s.DB.Query(ctx, "SELECT id, name FROM appraisal_types ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []AppraisalType
	for rows.Next() {
		var t AppraisalType
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (s *Store) ListRanges(ctx context.Context, typeID string) ([]AppraisalRange, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, type_id, name FROM appraisal_ranges WHERE type_id = $1 ORDER BY name
  `, typeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []AppraisalRange
	for rows.Next() {
		var r AppraisalRange
		if err := rows.Scan(&r.ID, &r.TypeID, &r.Name); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *Store) ListCategories(ctx context.Context) ([]Category, error) {
	rows, err := s.DB.Query(ctx, "SELECT id, name FROM categories ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *Store) ListTemplates(ctx context.Context) ([]GoalTemplate, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, title, description, importance, weightage FROM goal_templates ORDER BY title
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []GoalTemplate
	for rows.Next() {
		var t GoalTemplate
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.Importance, &t.Weightage); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range out {
		categoryIDs, err := s.templateCategories(ctx, out[i].ID)
		if err != nil {
			return nil, err
		}
		out[i].CategoryIDs = categoryIDs
	}
	return out, nil
}

func (s *Store) GetTemplate(ctx context.Context, id string) (GoalTemplate, error) {
	var t GoalTemplate
	err := s.DB.QueryRow(ctx, `
    SELECT id, title, description, importance, weightage FROM goal_templates WHERE id = $1
  `, id).Scan(&t.ID, &t.Title, &t.Description, &t.Importance, &t.Weightage)
	if errors.Is(err, pgx.ErrNoRows) {
		return GoalTemplate{}, ErrTemplateNotFound
	}
	if err != nil {
		return GoalTemplate{}, err
	}
	t.CategoryIDs, err = s.templateCategories(ctx, t.ID)
	return t, err
}

func (s *Store) templateCategories(ctx context.Context, templateID string) ([]string, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT category_id FROM goal_template_categories WHERE template_id = $1 ORDER BY category_id
  `, templateID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var categoryID string
		if err := rows.Scan(&categoryID); err != nil {
			return nil, err
		}
		out = append(out, categoryID)
	}
	return out, rows.Err()
}
