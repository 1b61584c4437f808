package companies

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
)

type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Create(ctx context.Context, company Company) error {
	const query = `
INSERT INTO companies (id, name, created_by, created_at)
VALUES ($1, $2, $3, now())`
	_, err := r.DB.ExecContext(ctx, query,
		company.ID,
		company.Name,
		nullableString(company.CreatedBy),
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrCodeConflict
		}
		return err
	}
	return nil
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (Company, error) {
	const query = `
SELECT id, name, created_by, created_at
FROM companies
WHERE id = $1
LIMIT 1`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, id))
}

func (r *PGRepo) FindByName(ctx context.Context, name string) (Company, error) {
	const query = `
SELECT id, name, created_by, created_at
FROM companies
WHERE lower(name) = lower($1)
LIMIT 1`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, name))
}

func (r *PGRepo) List(ctx context.Context) ([]Company, error) {
	const query = `
SELECT id, name, created_by, created_at
FROM companies
ORDER BY created_at DESC`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Company
	for rows.Next() {
		var company Company
		var createdBy sql.NullString
		var createdAt sql.NullTime
		if err := rows.Scan(&company.ID, &company.Name, &createdBy, &createdAt); err != nil {
			return nil, err
		}
		if createdBy.Valid {
			company.CreatedBy = createdBy.String
		}
		if createdAt.Valid {
			company.CreatedAt = createdAt.Time
		}
		out = append(out, company)
	}
	return out, rows.Err()
}

func (r *PGRepo) scanOne(row *sql.Row) (Company, error) {
	var company Company
	var createdBy sql.NullString
	var createdAt sql.NullTime
	err := row.Scan(&company.ID, &company.Name, &createdBy, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Company{}, ErrNotFound
		}
		return Company{}, err
	}
	if createdBy.Valid {
		company.CreatedBy = createdBy.String
	}
	if createdAt.Valid {
		company.CreatedAt = createdAt.Time
	} else {
		company.CreatedAt = time.Now().UTC()
	}
	return company, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
