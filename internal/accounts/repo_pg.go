package accounts

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"talenthub-backend/internal/identity"
)

type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Create(ctx context.Context, account Account) error {
	const query = `
INSERT INTO accounts (id, email, full_name, role, company_id, created_at)
VALUES ($1, $2, $3, $4, $5, now())`
	_, err := r.DB.ExecContext(ctx, query,
		account.ID,
		account.Email,
		nullableString(account.FullName),
		string(account.Role),
		nullableString(account.CompanyID),
	)
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (Account, error) {
	const query = `
SELECT id, email, full_name, role, company_id, created_at
FROM accounts
WHERE id = $1
LIMIT 1`
	var account Account
	var fullName sql.NullString
	var role string
	var companyID sql.NullString
	var createdAt sql.NullTime
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&account.ID,
		&account.Email,
		&fullName,
		&role,
		&companyID,
		&createdAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Account{}, ErrNotFound
		}
		return Account{}, err
	}
	if fullName.Valid {
		account.FullName = fullName.String
	}
	if companyID.Valid {
		account.CompanyID = companyID.String
	}
	if createdAt.Valid {
		account.CreatedAt = createdAt.Time
	} else {
		account.CreatedAt = time.Now().UTC()
	}
	account.Role = identity.Role(role)
	return account, nil
}

func (r *PGRepo) Delete(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM accounts WHERE id = $1`, id)
	return err
}

func (r *PGRepo) SetCompany(ctx context.Context, id, companyID string) error {
	res, err := r.DB.ExecContext(ctx, `UPDATE accounts SET company_id = $2 WHERE id = $1`, id, companyID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
