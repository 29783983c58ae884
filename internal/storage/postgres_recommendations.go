package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/terra-clan/talent-tracker/internal/models"
)

const recommendationColumns = `id, skill_id, user_id, recommendation_type, title, description, url, priority, completed, created_at`

func scanRecommendation(row pgx.Row) (*models.SkillRecommendation, error) {
	var rec models.SkillRecommendation
	var recType string
	err := row.Scan(
		&rec.ID,
		&rec.SkillID,
		&rec.UserID,
		&recType,
		&rec.Title,
		&rec.Description,
		&rec.URL,
		&rec.Priority,
		&rec.Completed,
		&rec.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	rec.Type = models.RecommendationType(recType)
	return &rec, nil
}

// CreateRecommendations inserts a batch of recommendations in one transaction,
// filling IDs and timestamps when unset
func (r *PostgresRepository) CreateRecommendations(ctx context.Context, recs []*models.SkillRecommendation) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	batch := &pgx.Batch{}
	for _, rec := range recs {
		stampNew(&rec.ID, &rec.CreatedAt)
		batch.Queue(`
			INSERT INTO skill_recommendations (`+recommendationColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		`,
			rec.ID,
			rec.SkillID,
			rec.UserID,
			string(rec.Type),
			rec.Title,
			rec.Description,
			rec.URL,
			rec.Priority,
			rec.Completed,
			rec.CreatedAt,
		)
	}

	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return mapWriteError(err, "create recommendations")
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit recommendations: %w", err)
	}
	return nil
}

// ListOpenRecommendations returns the user's uncompleted recommendations,
// highest priority first
func (r *PostgresRepository) ListOpenRecommendations(ctx context.Context, userID uuid.UUID) ([]*models.SkillRecommendation, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+recommendationColumns+`
		FROM skill_recommendations
		WHERE user_id = $1 AND NOT completed
		ORDER BY priority DESC, created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list recommendations: %w", err)
	}
	defer rows.Close()

	recs := make([]*models.SkillRecommendation, 0)
	for rows.Next() {
		rec, err := scanRecommendation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan recommendation: %w", err)
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating recommendations: %w", err)
	}
	return recs, nil
}

// CompleteRecommendation marks one of the user's recommendations as done
func (r *PostgresRepository) CompleteRecommendation(ctx context.Context, userID, id uuid.UUID) (*models.SkillRecommendation, error) {
	rec, err := scanRecommendation(r.pool.QueryRow(ctx, `
		UPDATE skill_recommendations SET completed = TRUE
		WHERE id = $1 AND user_id = $2
		RETURNING `+recommendationColumns,
		id, userID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to complete recommendation: %w", err)
	}
	return rec, nil
}
