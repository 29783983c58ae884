package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/terra-clan/talent-tracker/internal/models"
)

// ResourceLimit caps how many catalog entries one listing returns.
const ResourceLimit = 100

// resourceFilter matches a lowercased needle $N against title, source or any
// tag. An empty needle matches every row.
func resourceFilter(alias string, param int) string {
	p := fmt.Sprintf("$%d", param)
	return fmt.Sprintf(`(%[2]s = ''
		OR strpos(lower(%[1]s.title), %[2]s) > 0
		OR strpos(lower(COALESCE(%[1]s.source, '')), %[2]s) > 0
		OR EXISTS (SELECT 1 FROM unnest(%[1]s.tags) AS tag WHERE strpos(lower(tag), %[2]s) > 0))`,
		alias, p)
}

func needle(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}

// ListResources returns catalog entries matching query, newest first
func (r *PostgresRepository) ListResources(ctx context.Context, query string) ([]*models.Resource, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT r.id, r.title, r.url, r.source, r.tags, r.created_at
		FROM resources r
		WHERE `+resourceFilter("r", 1)+`
		ORDER BY r.created_at DESC
		LIMIT $2
	`, needle(query), ResourceLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list resources: %w", err)
	}
	defer rows.Close()

	resources := make([]*models.Resource, 0)
	for rows.Next() {
		var res models.Resource
		if err := rows.Scan(&res.ID, &res.Title, &res.URL, &res.Source, &res.Tags, &res.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan resource: %w", err)
		}
		resources = append(resources, &res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating resources: %w", err)
	}
	return resources, nil
}

func scanSavedResource(row pgx.Row) (*models.SavedResource, error) {
	sr := models.SavedResource{Resource: &models.Resource{}}
	err := row.Scan(
		&sr.ID,
		&sr.UserID,
		&sr.ResourceID,
		&sr.Notes,
		&sr.CreatedAt,
		&sr.Resource.ID,
		&sr.Resource.Title,
		&sr.Resource.URL,
		&sr.Resource.Source,
		&sr.Resource.Tags,
		&sr.Resource.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &sr, nil
}

// SaveResource adds a catalog resource to the user's library and fills in the
// joined resource. An unknown resource yields ErrNotFound and a resource that
// is already saved yields ErrConflict.
func (r *PostgresRepository) SaveResource(ctx context.Context, sr *models.SavedResource) error {
	stampNew(&sr.ID, &sr.CreatedAt)

	saved, err := scanSavedResource(r.pool.QueryRow(ctx, `
		WITH ins AS (
			INSERT INTO saved_resources (id, user_id, resource_id, notes, created_at)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id, user_id, resource_id, notes, created_at
		)
		SELECT ins.id, ins.user_id, ins.resource_id, ins.notes, ins.created_at,
		       r.id, r.title, r.url, r.source, r.tags, r.created_at
		FROM ins JOIN resources r ON r.id = ins.resource_id
	`,
		sr.ID,
		sr.UserID,
		sr.ResourceID,
		sr.Notes,
		sr.CreatedAt,
	))
	if err != nil {
		return mapWriteError(err, "save resource")
	}
	*sr = *saved
	return nil
}

// ListLibrary returns the user's saved resources matching query, newest first
func (r *PostgresRepository) ListLibrary(ctx context.Context, userID uuid.UUID, query string) ([]*models.SavedResource, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT s.id, s.user_id, s.resource_id, s.notes, s.created_at,
		       r.id, r.title, r.url, r.source, r.tags, r.created_at
		FROM saved_resources s
		JOIN resources r ON r.id = s.resource_id
		WHERE s.user_id = $1 AND `+resourceFilter("r", 2)+`
		ORDER BY s.created_at DESC
	`, userID, needle(query))
	if err != nil {
		return nil, fmt.Errorf("failed to list library: %w", err)
	}
	defer rows.Close()

	library := make([]*models.SavedResource, 0)
	for rows.Next() {
		sr, err := scanSavedResource(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan saved resource: %w", err)
		}
		library = append(library, sr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating library: %w", err)
	}
	return library, nil
}

// DeleteSavedResource removes a resource from the user's library
func (r *PostgresRepository) DeleteSavedResource(ctx context.Context, userID, id uuid.UUID) error {
	return r.deleteOwned(ctx, "saved_resources", userID, id)
}
