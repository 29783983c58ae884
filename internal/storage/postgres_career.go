package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/terra-clan/talent-tracker/internal/models"
)

const milestoneColumns = `id, career_path_id, user_id, title, target_date, completed, position, created_at`

func scanMilestone(row pgx.Row) (*models.Milestone, error) {
	var m models.Milestone
	err := row.Scan(
		&m.ID,
		&m.CareerPathID,
		&m.UserID,
		&m.Title,
		&m.TargetDate,
		&m.Completed,
		&m.Position,
		&m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// ListCareerPaths returns the user's career paths, oldest first
func (r *PostgresRepository) ListCareerPaths(ctx context.Context, userID uuid.UUID) ([]*models.CareerPath, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, title, description, created_at
		FROM career_paths
		WHERE user_id = $1
		ORDER BY created_at
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list career paths: %w", err)
	}
	defer rows.Close()

	paths := make([]*models.CareerPath, 0)
	for rows.Next() {
		var p models.CareerPath
		if err := rows.Scan(&p.ID, &p.UserID, &p.Title, &p.Description, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan career path: %w", err)
		}
		paths = append(paths, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating career paths: %w", err)
	}
	return paths, nil
}

// CreateCareerPath inserts a career path, filling ID and timestamp when unset
func (r *PostgresRepository) CreateCareerPath(ctx context.Context, p *models.CareerPath) error {
	stampNew(&p.ID, &p.CreatedAt)

	_, err := r.pool.Exec(ctx, `
		INSERT INTO career_paths (id, user_id, title, description, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`,
		p.ID,
		p.UserID,
		p.Title,
		p.Description,
		p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create career path: %w", err)
	}
	return nil
}

// DeleteCareerPath deletes a path and, by cascade, its milestones
func (r *PostgresRepository) DeleteCareerPath(ctx context.Context, userID, id uuid.UUID) error {
	return r.deleteOwned(ctx, "career_paths", userID, id)
}

// ListMilestones returns the milestones of one of the user's paths in
// position order. A path the user does not own yields ErrNotFound.
func (r *PostgresRepository) ListMilestones(ctx context.Context, userID, pathID uuid.UUID) ([]*models.Milestone, error) {
	var owned bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM career_paths WHERE id = $1 AND user_id = $2)`,
		pathID, userID,
	).Scan(&owned)
	if err != nil {
		return nil, fmt.Errorf("failed to check career path: %w", err)
	}
	if !owned {
		return nil, ErrNotFound
	}

	rows, err := r.pool.Query(ctx, `
		SELECT `+milestoneColumns+`
		FROM milestones
		WHERE career_path_id = $1 AND user_id = $2
		ORDER BY position, created_at
	`, pathID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list milestones: %w", err)
	}
	defer rows.Close()

	milestones := make([]*models.Milestone, 0)
	for rows.Next() {
		m, err := scanMilestone(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan milestone: %w", err)
		}
		milestones = append(milestones, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating milestones: %w", err)
	}
	return milestones, nil
}

// CreateMilestone appends a milestone to one of the user's paths. A path the
// user does not own yields ErrNotFound.
func (r *PostgresRepository) CreateMilestone(ctx context.Context, m *models.Milestone) error {
	stampNew(&m.ID, &m.CreatedAt)

	err := r.pool.QueryRow(ctx, `
		INSERT INTO milestones (id, career_path_id, user_id, title, target_date, completed, position, created_at)
		SELECT $1::uuid, p.id, p.user_id, $4::text, $5::date, FALSE,
		       (SELECT COALESCE(MAX(position) + 1, 0) FROM milestones WHERE career_path_id = p.id),
		       $6::timestamptz
		FROM career_paths p
		WHERE p.id = $2 AND p.user_id = $3
		RETURNING position
	`,
		m.ID,
		m.CareerPathID,
		m.UserID,
		m.Title,
		m.TargetDate,
		m.CreatedAt,
	).Scan(&m.Position)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return mapWriteError(err, "create milestone")
	}
	return nil
}

// ToggleMilestone flips the completed flag of one of the user's milestones
func (r *PostgresRepository) ToggleMilestone(ctx context.Context, userID, id uuid.UUID) (*models.Milestone, error) {
	m, err := scanMilestone(r.pool.QueryRow(ctx, `
		UPDATE milestones SET completed = NOT completed
		WHERE id = $1 AND user_id = $2
		RETURNING `+milestoneColumns,
		id, userID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to toggle milestone: %w", err)
	}
	return m, nil
}

// DeleteMilestone deletes one of the user's milestones
func (r *PostgresRepository) DeleteMilestone(ctx context.Context, userID, id uuid.UUID) error {
	return r.deleteOwned(ctx, "milestones", userID, id)
}
