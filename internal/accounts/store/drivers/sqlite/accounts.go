package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/aussiebroadwan/accounts/internal/accounts/domain"
	"github.com/aussiebroadwan/accounts/internal/accounts/store"
)

const accountColumns = `id, name, email, salt, password_hash, created_at, updated_at`

const (
	getAccountByID = `SELECT ` + accountColumns + ` FROM accounts WHERE id = ?`

	getAccountByEmail = `SELECT ` + accountColumns + ` FROM accounts WHERE email = ?`

	listAccounts = `SELECT ` + accountColumns + ` FROM accounts ORDER BY created_at ASC, id ASC`

	createAccount = `INSERT INTO accounts (` + accountColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?)`

	updateAccount = `UPDATE accounts
SET name = ?, email = ?, salt = ?, password_hash = ?, updated_at = ?
WHERE id = ?`

	deleteAccount = `DELETE FROM accounts WHERE id = ?`
)

type accountsRepo struct {
	db *sql.DB
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (domain.Account, error) {
	var (
		a         domain.Account
		createdAt int64
		updatedAt sql.NullInt64
	)
	if err := row.Scan(&a.ID, &a.Name, &a.Email, &a.Salt, &a.PasswordHash, &createdAt, &updatedAt); err != nil {
		return domain.Account{}, err
	}
	a.CreatedAt = fromMillis(createdAt)
	a.UpdatedAt = mapNullTimePtr(updatedAt)
	return a, nil
}

func (r *accountsRepo) GetAccountByID(ctx context.Context, id string) (domain.Account, error) {
	a, err := scanAccount(r.db.QueryRowContext(ctx, getAccountByID, id))
	if err != nil {
		return domain.Account{}, mapNotFound(err)
	}
	return a, nil
}

func (r *accountsRepo) GetAccountByEmail(ctx context.Context, email string) (domain.Account, error) {
	a, err := scanAccount(r.db.QueryRowContext(ctx, getAccountByEmail, email))
	if err != nil {
		return domain.Account{}, mapNotFound(err)
	}
	return a, nil
}

func (r *accountsRepo) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	rows, err := r.db.QueryContext(ctx, listAccounts)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *accountsRepo) CreateAccount(ctx context.Context, a domain.Account) error {
	_, err := r.db.ExecContext(ctx, createAccount,
		a.ID,
		a.Name,
		a.Email,
		a.Salt,
		a.PasswordHash,
		toMillis(a.CreatedAt),
		mapOptionalTime(a.UpdatedAt),
	)
	return mapConstraint(err)
}

func (r *accountsRepo) UpdateAccount(ctx context.Context, a domain.Account) error {
	res, err := r.db.ExecContext(ctx, updateAccount,
		a.Name,
		a.Email,
		a.Salt,
		a.PasswordHash,
		mapOptionalTime(a.UpdatedAt),
		a.ID,
	)
	if err != nil {
		return mapConstraint(err)
	}
	return requireOneRow(res)
}

func (r *accountsRepo) DeleteAccount(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, deleteAccount, id)
	if err != nil {
		return err
	}
	return requireOneRow(res)
}

func requireOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
