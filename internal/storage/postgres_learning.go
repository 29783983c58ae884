package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/terra-clan/talent-tracker/internal/models"
)

const learningItemColumns = `id, module_id, user_id, title, url, completed, position, created_at`

func scanLearningItem(row pgx.Row) (*models.LearningItem, error) {
	var it models.LearningItem
	err := row.Scan(
		&it.ID,
		&it.ModuleID,
		&it.UserID,
		&it.Title,
		&it.URL,
		&it.Completed,
		&it.Position,
		&it.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &it, nil
}

// ListLearningModules returns the user's modules in position order, each
// with its items in position order
func (r *PostgresRepository) ListLearningModules(ctx context.Context, userID uuid.UUID) ([]*models.LearningModule, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, title, description, position, created_at
		FROM learning_modules
		WHERE user_id = $1
		ORDER BY position, created_at
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list learning modules: %w", err)
	}
	defer rows.Close()

	modules := make([]*models.LearningModule, 0)
	byID := make(map[uuid.UUID]*models.LearningModule)
	for rows.Next() {
		m := &models.LearningModule{Items: make([]*models.LearningItem, 0)}
		if err := rows.Scan(&m.ID, &m.UserID, &m.Title, &m.Description, &m.Position, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan learning module: %w", err)
		}
		modules = append(modules, m)
		byID[m.ID] = m
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating learning modules: %w", err)
	}

	itemRows, err := r.pool.Query(ctx, `
		SELECT `+learningItemColumns+`
		FROM learning_items
		WHERE user_id = $1
		ORDER BY position, created_at
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list learning items: %w", err)
	}
	defer itemRows.Close()

	for itemRows.Next() {
		it, err := scanLearningItem(itemRows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan learning item: %w", err)
		}
		if m, ok := byID[it.ModuleID]; ok {
			m.Items = append(m.Items, it)
		}
	}
	if err := itemRows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating learning items: %w", err)
	}
	return modules, nil
}

// CreateLearningModule appends a module after the user's last one
func (r *PostgresRepository) CreateLearningModule(ctx context.Context, m *models.LearningModule) error {
	stampNew(&m.ID, &m.CreatedAt)

	err := r.pool.QueryRow(ctx, `
		INSERT INTO learning_modules (id, user_id, title, description, position, created_at)
		SELECT $1::uuid, $2::uuid, $3::text, $4::text, COALESCE(MAX(position) + 1, 0), $5::timestamptz
		FROM learning_modules WHERE user_id = $2
		RETURNING position
	`,
		m.ID,
		m.UserID,
		m.Title,
		m.Description,
		m.CreatedAt,
	).Scan(&m.Position)
	if err != nil {
		return fmt.Errorf("failed to create learning module: %w", err)
	}
	if m.Items == nil {
		m.Items = make([]*models.LearningItem, 0)
	}
	return nil
}

// DeleteLearningModule deletes a module and, by cascade, its items
func (r *PostgresRepository) DeleteLearningModule(ctx context.Context, userID, id uuid.UUID) error {
	return r.deleteOwned(ctx, "learning_modules", userID, id)
}

// CreateLearningItem appends an item to one of the user's modules. A module
// the user does not own yields ErrNotFound.
func (r *PostgresRepository) CreateLearningItem(ctx context.Context, it *models.LearningItem) error {
	stampNew(&it.ID, &it.CreatedAt)

	err := r.pool.QueryRow(ctx, `
		INSERT INTO learning_items (id, module_id, user_id, title, url, completed, position, created_at)
		SELECT $1::uuid, m.id, m.user_id, $4::text, $5::text, FALSE,
		       (SELECT COALESCE(MAX(position) + 1, 0) FROM learning_items WHERE module_id = m.id),
		       $6::timestamptz
		FROM learning_modules m
		WHERE m.id = $2 AND m.user_id = $3
		RETURNING position
	`,
		it.ID,
		it.ModuleID,
		it.UserID,
		it.Title,
		it.URL,
		it.CreatedAt,
	).Scan(&it.Position)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return mapWriteError(err, "create learning item")
	}
	return nil
}

// ToggleLearningItem flips the completed flag of one of the user's items
func (r *PostgresRepository) ToggleLearningItem(ctx context.Context, userID, id uuid.UUID) (*models.LearningItem, error) {
	it, err := scanLearningItem(r.pool.QueryRow(ctx, `
		UPDATE learning_items SET completed = NOT completed
		WHERE id = $1 AND user_id = $2
		RETURNING `+learningItemColumns,
		id, userID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to toggle learning item: %w", err)
	}
	return it, nil
}

// DeleteLearningItem deletes one of the user's items
func (r *PostgresRepository) DeleteLearningItem(ctx context.Context, userID, id uuid.UUID) error {
	return r.deleteOwned(ctx, "learning_items", userID, id)
}
