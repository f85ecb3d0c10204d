package appraisal

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

const appraisalColumns = `
    id, appraisee_id, appraiser_id, reviewer_id, type_id, COALESCE(range_id::text, ''),
    start_date, end_date, status,
    appraiser_overall_rating, appraiser_overall_comment,
    reviewer_overall_rating, reviewer_overall_comment,
    version, created_at, updated_at`

func scanAppraisal(row pgx.Row) (*Appraisal, error) {
	var a Appraisal
	var status string
	if err := row.Scan(
		&a.ID, &a.AppraiseeID, &a.AppraiserID, &a.ReviewerID, &a.TypeID, &a.RangeID,
		&a.StartDate, &a.EndDate, &status,
		&a.AppraiserOverallRating, &a.AppraiserOverallComment,
		&a.ReviewerOverallRating, &a.ReviewerOverallComment,
		&a.Version, &a.CreatedAt, &a.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	a.Status = Status(status)
	return &a, nil
}

func (s *Store) Load(ctx context.Context, id string) (*Appraisal, error) {
	a, err := scanAppraisal(s.DB.QueryRow(ctx, `
    SELECT `+appraisalColumns+`
    FROM appraisals
    WHERE id = $1
  `, id))
	if err != nil {
		return nil, err
	}

	rows, err := s.DB.Query(ctx, `
    SELECT ga.id, ga.goal_id, ga.ordinal,
           ga.self_rating, COALESCE(ga.self_comment, ''),
           ga.appraiser_rating, COALESCE(ga.appraiser_comment, ''),
           g.title, g.description, g.importance, g.weightage
    FROM goal_assignments ga
    JOIN goals g ON ga.goal_id = g.id
    WHERE ga.appraisal_id = $1
    ORDER BY ga.ordinal
  `, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var assignment GoalAssignment
		var importance string
		if err := rows.Scan(
			&assignment.ID, &assignment.GoalID, &assignment.Ordinal,
			&assignment.SelfRating, &assignment.SelfComment,
			&assignment.AppraiserRating, &assignment.AppraiserComment,
			&assignment.Goal.Title, &assignment.Goal.Description, &importance, &assignment.Goal.Weightage,
		); err != nil {
			return nil, err
		}
		assignment.Goal.ID = assignment.GoalID
		assignment.Goal.Importance = Importance(importance)
		a.Goals = append(a.Goals, assignment)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := s.loadCategories(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *Store) loadCategories(ctx context.Context, a *Appraisal) error {
	if len(a.Goals) == 0 {
		return nil
	}
	rows, err := s.DB.Query(ctx, `
    SELECT gc.goal_id, gc.category_id
    FROM goal_categories gc
    JOIN goal_assignments ga ON ga.goal_id = gc.goal_id
    WHERE ga.appraisal_id = $1
    ORDER BY gc.category_id
  `, a.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	byGoal := make(map[string][]string)
	for rows.Next() {
		var goalID, categoryID string
		if err := rows.Scan(&goalID, &categoryID); err != nil {
			return err
		}
		byGoal[goalID] = append(byGoal[goalID], categoryID)
	}
	if err := rows.Err(); err != nil {
		return err
	}
	for i := range a.Goals {
		a.Goals[i].Goal.CategoryIDs = byGoal[a.Goals[i].GoalID]
	}
	return nil
}

func (s *Store) ListByParticipant(ctx context.Context, employeeID string) ([]Appraisal, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT `+appraisalColumns+`
    FROM appraisals
    WHERE appraisee_id = $1 OR appraiser_id = $1 OR reviewer_id = $1
    ORDER BY created_at DESC
  `, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Appraisal
	for rows.Next() {
		a, err := scanAppraisal(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *a)
	}
	return out, rows.Err()
}

func (s *Store) Create(ctx context.Context, a *Appraisal) error {
	_, err := s.DB.Exec(ctx, `
    INSERT INTO appraisals (
      id, appraisee_id, appraiser_id, reviewer_id, type_id, range_id,
      start_date, end_date, status, version, created_at, updated_at
    ) VALUES ($1,$2,$3,$4,$5,NULLIF($6,'')::uuid,$7,$8,$9,$10,$11,$12)
  `, a.ID, a.AppraiseeID, a.AppraiserID, a.ReviewerID, a.TypeID, a.RangeID,
		a.StartDate, a.EndDate, string(a.Status), a.Version, a.CreatedAt, a.UpdatedAt)
	return err
}

func (s *Store) UpdateStatus(ctx context.Context, id string, version int, status Status) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE appraisals
    SET status = $1, version = version + 1, updated_at = now()
    WHERE id = $2 AND version = $3
  `, string(status), id, version)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrConcurrentModification
	}
	return nil
}

// UpdateDraft applies one draft save in a single transaction: the appraisal
// row first (carrying the version check), then removals, then content
// updates, then additions, then the assignment ordinals. Removal-before-
// addition ordering keeps the weightage state net at every point.
func (s *Store) UpdateDraft(ctx context.Context, a *Appraisal, version int, changes ChangeSet) error {
	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	tag, err := tx.Exec(ctx, `
    UPDATE appraisals
    SET appraisee_id = $1, reviewer_id = $2, start_date = $3, end_date = $4,
        version = version + 1, updated_at = now()
    WHERE id = $5 AND version = $6
  `, a.AppraiseeID, a.ReviewerID, a.StartDate, a.EndDate, a.ID, version)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrConcurrentModification
	}

	for _, goalID := range changes.Removed {
		if _, err := tx.Exec(ctx, `
      DELETE FROM goal_assignments WHERE appraisal_id = $1 AND goal_id = $2
    `, a.ID, goalID); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `
      DELETE FROM goals g
      WHERE g.id = $1 AND NOT EXISTS (SELECT 1 FROM goal_assignments ga WHERE ga.goal_id = g.id)
    `, goalID); err != nil {
			return err
		}
	}

	for _, goal := range changes.Updated {
		if err := updateGoal(ctx, tx, goal); err != nil {
			return err
		}
	}

	for _, assignment := range changes.Added {
		if err := insertGoal(ctx, tx, assignment.Goal); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `
      INSERT INTO goal_assignments (id, appraisal_id, goal_id, ordinal)
      VALUES ($1,$2,$3,$4)
    `, assignment.ID, a.ID, assignment.GoalID, assignment.Ordinal); err != nil {
			return err
		}
	}

	for _, assignment := range a.Goals {
		if _, err := tx.Exec(ctx, `
      UPDATE goal_assignments SET ordinal = $1 WHERE appraisal_id = $2 AND goal_id = $3
    `, assignment.Ordinal, a.ID, assignment.GoalID); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func insertGoal(ctx context.Context, tx pgx.Tx, goal Goal) error {
	if _, err := tx.Exec(ctx, `
    INSERT INTO goals (id, title, description, importance, weightage)
    VALUES ($1,$2,$3,$4,$5)
  `, goal.ID, goal.Title, goal.Description, string(goal.Importance), goal.Weightage); err != nil {
		return err
	}
	return replaceGoalCategories(ctx, tx, goal)
}

func updateGoal(ctx context.Context, tx pgx.Tx, goal Goal) error {
	if _, err := tx.Exec(ctx, `
    UPDATE goals SET title = $1, description = $2, importance = $3, weightage = $4
    WHERE id = $5
  `, goal.Title, goal.Description, string(goal.Importance), goal.Weightage, goal.ID); err != nil {
		return err
	}
	return replaceGoalCategories(ctx, tx, goal)
}

func replaceGoalCategories(ctx context.Context, tx pgx.Tx, goal Goal) error {
	if _, err := tx.Exec(ctx, "DELETE FROM goal_categories WHERE goal_id = $1", goal.ID); err != nil {
		return err
	}
	for _, categoryID := range goal.CategoryIDs {
		if _, err := tx.Exec(ctx, `
      INSERT INTO goal_categories (goal_id, category_id) VALUES ($1,$2) ON CONFLICT DO NOTHING
    `, goal.ID, categoryID); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) UpdateInputs(ctx context.Context, a *Appraisal, version int) error {
	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	tag, err := tx.Exec(ctx, `
    UPDATE appraisals
    SET appraiser_overall_rating = $1, appraiser_overall_comment = $2,
        reviewer_overall_rating = $3, reviewer_overall_comment = $4,
        version = version + 1, updated_at = now()
    WHERE id = $5 AND version = $6
  `, a.AppraiserOverallRating, a.AppraiserOverallComment,
		a.ReviewerOverallRating, a.ReviewerOverallComment, a.ID, version)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrConcurrentModification
	}

	for _, assignment := range a.Goals {
		if _, err := tx.Exec(ctx, `
      UPDATE goal_assignments
      SET self_rating = $1, self_comment = $2, appraiser_rating = $3, appraiser_comment = $4
      WHERE id = $5 AND appraisal_id = $6
    `, assignment.SelfRating, assignment.SelfComment,
			assignment.AppraiserRating, assignment.AppraiserComment,
			assignment.ID, a.ID); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (s *Store) DeleteDraft(ctx context.Context, id string, version int) error {
	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	rows, err := tx.Query(ctx, "SELECT goal_id FROM goal_assignments WHERE appraisal_id = $1", id)
	if err != nil {
		return err
	}
	var goalIDs []string
	for rows.Next() {
		var goalID string
		if err := rows.Scan(&goalID); err != nil {
			rows.Close()
			return err
		}
		goalIDs = append(goalIDs, goalID)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	tag, err := tx.Exec(ctx, `
    DELETE FROM appraisals WHERE id = $1 AND version = $2 AND status = $3
  `, id, version, string(StatusDraft))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrConcurrentModification
	}

	if _, err := tx.Exec(ctx, "DELETE FROM goal_assignments WHERE appraisal_id = $1", id); err != nil {
		return err
	}
	for _, goalID := range goalIDs {
		if _, err := tx.Exec(ctx, `
      DELETE FROM goals g
      WHERE g.id = $1 AND NOT EXISTS (SELECT 1 FROM goal_assignments ga WHERE ga.goal_id = g.id)
    `, goalID); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}
