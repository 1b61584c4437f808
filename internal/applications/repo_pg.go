package applications

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

type PGRepo struct {
	DB *sql.DB
}

const appColumns = `id, job_id, candidate_id, status, video_status, video_key, ai_analysis, created_at, updated_at`

func (r *PGRepo) Create(ctx context.Context, app Application) error {
	const query = `
INSERT INTO applications (id, job_id, candidate_id, status, video_status, video_key, ai_analysis, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, now(), now())`
	_, err := r.DB.ExecContext(ctx, query,
		app.ID, app.JobID, app.CandidateID, string(app.Status), string(app.VideoStatus),
		nullableString(app.VideoKey), nullableJSON(app.AIAnalysis),
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrAlreadyExists
		}
		return err
	}
	return nil
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (Application, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT `+appColumns+` FROM applications WHERE id = $1 LIMIT 1`, id)
	return scanApplication(row)
}

func (r *PGRepo) Update(ctx context.Context, app Application) error {
	const query = `
UPDATE applications SET
  status = $2,
  video_status = $3,
  video_key = $4,
  ai_analysis = $5,
  updated_at = now()
WHERE id = $1`
	res, err := r.DB.ExecContext(ctx, query,
		app.ID, string(app.Status), string(app.VideoStatus),
		nullableString(app.VideoKey), nullableJSON(app.AIAnalysis),
	)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepo) ListByCandidate(ctx context.Context, candidateID string) ([]Application, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+appColumns+` FROM applications WHERE candidate_id = $1 ORDER BY created_at DESC`, candidateID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanApplications(rows)
}

func (r *PGRepo) ListByJobIDs(ctx context.Context, jobIDs []string) ([]Application, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+appColumns+` FROM applications WHERE job_id = ANY($1::text[]) ORDER BY created_at DESC`, jobIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanApplications(rows)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanApplication(row rowScanner) (Application, error) {
	var app Application
	var status, videoStatus string
	var videoKey sql.NullString
	var analysis []byte
	err := row.Scan(
		&app.ID, &app.JobID, &app.CandidateID, &status, &videoStatus,
		&videoKey, &analysis, &app.CreatedAt, &app.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Application{}, ErrNotFound
		}
		return Application{}, err
	}
	app.Status = Status(status)
	app.VideoStatus = VideoStatus(videoStatus)
	app.VideoKey = videoKey.String
	if len(analysis) > 0 {
		app.AIAnalysis = analysis
	}
	return app, nil
}

func scanApplications(rows *sql.Rows) ([]Application, error) {
	var out []Application
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, app)
	}
	return out, rows.Err()
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func nullableJSON(value []byte) any {
	if len(value) == 0 {
		return nil
	}
	return value
}
