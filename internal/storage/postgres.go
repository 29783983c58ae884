package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/terra-clan/talent-tracker/internal/models"
)

// PostgresRepository implements Repository using PostgreSQL
type PostgresRepository struct {
	pool *pgxpool.Pool
}

var _ Repository = (*PostgresRepository)(nil)

// PostgresConfig holds PostgreSQL connection configuration
type PostgresConfig struct {
	DSN          string
	MaxOpenConns int32
	MaxIdleConns int32
	MaxLifetime  time.Duration
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(ctx context.Context, cfg PostgresConfig) (*PostgresRepository, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to parse DSN: %w", err)
	}

	if cfg.MaxOpenConns > 0 {
		poolConfig.MaxConns = cfg.MaxOpenConns
	} else {
		poolConfig.MaxConns = 25
	}

	if cfg.MaxIdleConns > 0 {
		poolConfig.MinConns = cfg.MaxIdleConns
	} else {
		poolConfig.MinConns = 2
	}

	if cfg.MaxLifetime > 0 {
		poolConfig.MaxConnLifetime = cfg.MaxLifetime
	} else {
		poolConfig.MaxConnLifetime = 30 * time.Minute
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresRepository{pool: pool}, nil
}

// Ping checks database connectivity
func (r *PostgresRepository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

// HealthCheck lets the repository sit in the health registry
func (r *PostgresRepository) HealthCheck(ctx context.Context) error {
	return r.Ping(ctx)
}

// Close closes the database connection pool
func (r *PostgresRepository) Close() error {
	r.pool.Close()
	return nil
}

// --- Skills ---

const skillColumns = `id, user_id, name, level, category, target_level, hours_practiced, notes, created_at, updated_at`

func scanSkill(row pgx.Row) (*models.Skill, error) {
	var sk models.Skill
	err := row.Scan(
		&sk.ID,
		&sk.UserID,
		&sk.Name,
		&sk.Level,
		&sk.Category,
		&sk.TargetLevel,
		&sk.HoursPracticed,
		&sk.Notes,
		&sk.CreatedAt,
		&sk.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &sk, nil
}

// ListSkills returns the user's skills, newest first
func (r *PostgresRepository) ListSkills(ctx context.Context, userID uuid.UUID) ([]*models.Skill, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+skillColumns+` FROM skills WHERE user_id = $1 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list skills: %w", err)
	}
	defer rows.Close()

	skills := make([]*models.Skill, 0)
	for rows.Next() {
		sk, err := scanSkill(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan skill: %w", err)
		}
		skills = append(skills, sk)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating skills: %w", err)
	}
	return skills, nil
}

// GetSkill retrieves one of the user's skills
func (r *PostgresRepository) GetSkill(ctx context.Context, userID, id uuid.UUID) (*models.Skill, error) {
	sk, err := scanSkill(r.pool.QueryRow(ctx,
		`SELECT `+skillColumns+` FROM skills WHERE id = $1 AND user_id = $2`,
		id, userID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get skill: %w", err)
	}
	return sk, nil
}

// CreateSkill inserts a skill, filling ID and timestamps when unset
func (r *PostgresRepository) CreateSkill(ctx context.Context, sk *models.Skill) error {
	stampNew(&sk.ID, &sk.CreatedAt)
	sk.UpdatedAt = sk.CreatedAt

	_, err := r.pool.Exec(ctx, `
		INSERT INTO skills (`+skillColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`,
		sk.ID,
		sk.UserID,
		sk.Name,
		sk.Level,
		sk.Category,
		sk.TargetLevel,
		sk.HoursPracticed,
		sk.Notes,
		sk.CreatedAt,
		sk.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create skill: %w", err)
	}
	return nil
}

// UpdateSkill replaces the mutable fields of a skill. When the rated level
// moves, the matching progress entry is written in the same transaction and
// returned; otherwise the returned entry is nil.
func (r *PostgresRepository) UpdateSkill(ctx context.Context, sk *models.Skill) (*models.SkillProgress, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	before, err := scanSkill(tx.QueryRow(ctx,
		`SELECT `+skillColumns+` FROM skills WHERE id = $1 AND user_id = $2 FOR UPDATE`,
		sk.ID, sk.UserID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to lock skill: %w", err)
	}

	sk.CreatedAt = before.CreatedAt
	sk.UpdatedAt = time.Now().UTC()

	_, err = tx.Exec(ctx, `
		UPDATE skills
		SET name = $3, level = $4, category = $5, target_level = $6, hours_practiced = $7, notes = $8, updated_at = $9
		WHERE id = $1 AND user_id = $2
	`,
		sk.ID,
		sk.UserID,
		sk.Name,
		sk.Level,
		sk.Category,
		sk.TargetLevel,
		sk.HoursPracticed,
		sk.Notes,
		sk.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update skill: %w", err)
	}

	entry := models.LevelChange(before, sk)
	if entry != nil {
		if err := insertSkillProgress(ctx, tx, entry); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit skill update: %w", err)
	}
	return entry, nil
}

// LogPractice adds hours to a skill and records a progress entry with an
// unchanged level, both in one transaction. The increment happens in SQL so
// concurrent logs never overwrite each other.
func (r *PostgresRepository) LogPractice(ctx context.Context, userID, id uuid.UUID, hours float64, notes string) (*models.Skill, *models.SkillProgress, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	sk, err := scanSkill(tx.QueryRow(ctx, `
		UPDATE skills
		SET hours_practiced = hours_practiced + $3, updated_at = NOW()
		WHERE id = $1 AND user_id = $2
		RETURNING `+skillColumns,
		id, userID, hours,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, fmt.Errorf("failed to add practice hours: %w", err)
	}

	level := 0
	if sk.Level != nil {
		level = *sk.Level
	}
	entry := &models.SkillProgress{
		SkillID:     sk.ID,
		UserID:      sk.UserID,
		LevelBefore: level,
		LevelAfter:  level,
		HoursAdded:  hours,
		Notes:       notes,
	}
	if err := insertSkillProgress(ctx, tx, entry); err != nil {
		return nil, nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, nil, fmt.Errorf("failed to commit practice log: %w", err)
	}
	return sk, entry, nil
}

// DeleteSkill deletes a skill and, by cascade, its progress entries
func (r *PostgresRepository) DeleteSkill(ctx context.Context, userID, id uuid.UUID) error {
	return r.deleteOwned(ctx, "skills", userID, id)
}

// --- Skill progress ---

func insertSkillProgress(ctx context.Context, tx pgx.Tx, p *models.SkillProgress) error {
	stampNew(&p.ID, &p.CreatedAt)

	_, err := tx.Exec(ctx, `
		INSERT INTO skill_progress (id, skill_id, user_id, level_before, level_after, hours_added, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`,
		p.ID,
		p.SkillID,
		p.UserID,
		p.LevelBefore,
		p.LevelAfter,
		p.HoursAdded,
		p.Notes,
		p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create skill progress: %w", err)
	}
	return nil
}

// ListSkillProgress returns the user's progress entries, newest first
func (r *PostgresRepository) ListSkillProgress(ctx context.Context, userID uuid.UUID) ([]*models.SkillProgress, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, skill_id, user_id, level_before, level_after, hours_added, notes, created_at
		FROM skill_progress
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list skill progress: %w", err)
	}
	defer rows.Close()

	entries := make([]*models.SkillProgress, 0)
	for rows.Next() {
		var p models.SkillProgress
		if err := rows.Scan(
			&p.ID,
			&p.SkillID,
			&p.UserID,
			&p.LevelBefore,
			&p.LevelAfter,
			&p.HoursAdded,
			&p.Notes,
			&p.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan skill progress: %w", err)
		}
		entries = append(entries, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating skill progress: %w", err)
	}
	return entries, nil
}

// --- Jobs ---

const jobColumns = `id, user_id, company, title, status, url, location, remote_type, salary_range, priority, created_at, updated_at`

func scanJob(row pgx.Row) (*models.Job, error) {
	var j models.Job
	var status string
	err := row.Scan(
		&j.ID,
		&j.UserID,
		&j.Company,
		&j.Title,
		&status,
		&j.URL,
		&j.Location,
		&j.RemoteType,
		&j.SalaryRange,
		&j.Priority,
		&j.CreatedAt,
		&j.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	j.Status = models.JobStatus(status)
	return &j, nil
}

func (r *PostgresRepository) queryJobs(ctx context.Context, query string, args ...interface{}) ([]*models.Job, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	defer rows.Close()

	jobs := make([]*models.Job, 0)
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		jobs = append(jobs, j)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating jobs: %w", err)
	}
	return jobs, nil
}

// ListJobs returns all of the user's jobs ordered by priority, then newest first
func (r *PostgresRepository) ListJobs(ctx context.Context, userID uuid.UUID) ([]*models.Job, error) {
	return r.queryJobs(ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE user_id = $1 ORDER BY priority DESC, created_at DESC`,
		userID,
	)
}

// ListRecentJobs returns the user's newest jobs, at most limit of them
func (r *PostgresRepository) ListRecentJobs(ctx context.Context, userID uuid.UUID, limit int) ([]*models.Job, error) {
	return r.queryJobs(ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2`,
		userID, limit,
	)
}

// GetJob retrieves one of the user's jobs
func (r *PostgresRepository) GetJob(ctx context.Context, userID, id uuid.UUID) (*models.Job, error) {
	j, err := scanJob(r.pool.QueryRow(ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE id = $1 AND user_id = $2`,
		id, userID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	return j, nil
}

// CreateJob inserts a job, filling ID and timestamps when unset
func (r *PostgresRepository) CreateJob(ctx context.Context, j *models.Job) error {
	stampNew(&j.ID, &j.CreatedAt)
	j.UpdatedAt = j.CreatedAt

	_, err := r.pool.Exec(ctx, `
		INSERT INTO jobs (`+jobColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`,
		j.ID,
		j.UserID,
		j.Company,
		j.Title,
		string(j.Status),
		j.URL,
		j.Location,
		j.RemoteType,
		j.SalaryRange,
		j.Priority,
		j.CreatedAt,
		j.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create job: %w", err)
	}
	return nil
}

// UpdateJob replaces the mutable fields of a job
func (r *PostgresRepository) UpdateJob(ctx context.Context, j *models.Job) error {
	j.UpdatedAt = time.Now().UTC()

	result, err := r.pool.Exec(ctx, `
		UPDATE jobs
		SET company = $3, title = $4, status = $5, url = $6, location = $7, remote_type = $8,
		    salary_range = $9, priority = $10, updated_at = $11
		WHERE id = $1 AND user_id = $2
	`,
		j.ID,
		j.UserID,
		j.Company,
		j.Title,
		string(j.Status),
		j.URL,
		j.Location,
		j.RemoteType,
		j.SalaryRange,
		j.Priority,
		j.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update job: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateJobStatus moves a job to another board column
func (r *PostgresRepository) UpdateJobStatus(ctx context.Context, userID, id uuid.UUID, status models.JobStatus) error {
	result, err := r.pool.Exec(ctx,
		`UPDATE jobs SET status = $3, updated_at = NOW() WHERE id = $1 AND user_id = $2`,
		id, userID, string(status),
	)
	if err != nil {
		return fmt.Errorf("failed to update job status: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteJob deletes one of the user's jobs
func (r *PostgresRepository) DeleteJob(ctx context.Context, userID, id uuid.UUID) error {
	return r.deleteOwned(ctx, "jobs", userID, id)
}

// --- Interviews ---

const interviewColumns = `id, user_id, job_id, interview_type, status, scheduled_at, rating, outcome_notes, created_at`

func scanInterview(row pgx.Row) (*models.Interview, error) {
	var iv models.Interview
	err := row.Scan(
		&iv.ID,
		&iv.UserID,
		&iv.JobID,
		&iv.InterviewType,
		&iv.Status,
		&iv.ScheduledAt,
		&iv.Rating,
		&iv.OutcomeNotes,
		&iv.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &iv, nil
}

// ListRecentInterviews returns the user's newest interviews. A limit of zero
// or less returns all of them.
func (r *PostgresRepository) ListRecentInterviews(ctx context.Context, userID uuid.UUID, limit int) ([]*models.Interview, error) {
	query := `SELECT ` + interviewColumns + ` FROM interviews WHERE user_id = $1 ORDER BY created_at DESC`
	args := []interface{}{userID}
	if limit > 0 {
		query += " LIMIT $2"
		args = append(args, limit)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list interviews: %w", err)
	}
	defer rows.Close()

	interviews := make([]*models.Interview, 0)
	for rows.Next() {
		iv, err := scanInterview(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan interview: %w", err)
		}
		interviews = append(interviews, iv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating interviews: %w", err)
	}
	return interviews, nil
}

// GetInterview retrieves one of the user's interviews
func (r *PostgresRepository) GetInterview(ctx context.Context, userID, id uuid.UUID) (*models.Interview, error) {
	iv, err := scanInterview(r.pool.QueryRow(ctx,
		`SELECT `+interviewColumns+` FROM interviews WHERE id = $1 AND user_id = $2`,
		id, userID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get interview: %w", err)
	}
	return iv, nil
}

// CreateInterview inserts an interview, filling ID and timestamp when unset
func (r *PostgresRepository) CreateInterview(ctx context.Context, iv *models.Interview) error {
	stampNew(&iv.ID, &iv.CreatedAt)

	_, err := r.pool.Exec(ctx, `
		INSERT INTO interviews (`+interviewColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`,
		iv.ID,
		iv.UserID,
		iv.JobID,
		iv.InterviewType,
		iv.Status,
		iv.ScheduledAt,
		iv.Rating,
		iv.OutcomeNotes,
		iv.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create interview: %w", err)
	}
	return nil
}

// UpdateInterview replaces the mutable fields of an interview
func (r *PostgresRepository) UpdateInterview(ctx context.Context, iv *models.Interview) error {
	result, err := r.pool.Exec(ctx, `
		UPDATE interviews
		SET job_id = $3, interview_type = $4, status = $5, scheduled_at = $6, rating = $7, outcome_notes = $8
		WHERE id = $1 AND user_id = $2
	`,
		iv.ID,
		iv.UserID,
		iv.JobID,
		iv.InterviewType,
		iv.Status,
		iv.ScheduledAt,
		iv.Rating,
		iv.OutcomeNotes,
	)
	if err != nil {
		return fmt.Errorf("failed to update interview: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteInterview deletes one of the user's interviews
func (r *PostgresRepository) DeleteInterview(ctx context.Context, userID, id uuid.UUID) error {
	return r.deleteOwned(ctx, "interviews", userID, id)
}

// --- Stats ---

// CountRecords counts the user's skills, jobs and interviews in one round trip
func (r *PostgresRepository) CountRecords(ctx context.Context, userID uuid.UUID) (*models.Stats, error) {
	var stats models.Stats
	err := r.pool.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM skills WHERE user_id = $1),
			(SELECT COUNT(*) FROM jobs WHERE user_id = $1),
			(SELECT COUNT(*) FROM interviews WHERE user_id = $1)
	`, userID).Scan(&stats.SkillsCount, &stats.JobsCount, &stats.InterviewsCount)
	if err != nil {
		return nil, fmt.Errorf("failed to count records: %w", err)
	}
	return &stats, nil
}

// --- Helpers ---

// mapWriteError turns constraint violations into repository errors: a
// duplicate key is ErrConflict and a missing referenced row is ErrNotFound.
func mapWriteError(err error, action string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return ErrConflict
		case "23503":
			return ErrNotFound
		}
	}
	return fmt.Errorf("failed to %s: %w", action, err)
}

// deleteOwned removes a row from one of the user-owned tables. table is
// always a package constant, never caller input.
func (r *PostgresRepository) deleteOwned(ctx context.Context, table string, userID, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx,
		fmt.Sprintf(`DELETE FROM %s WHERE id = $1 AND user_id = $2`, table),
		id, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete from %s: %w", table, err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func stampNew(id *uuid.UUID, createdAt *time.Time) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
	if createdAt.IsZero() {
		*createdAt = time.Now().UTC()
	}
}
