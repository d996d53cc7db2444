package users

import (
	"context"
	"database/sql"
	stderrors "errors"
	"time"

	"github.com/pkg/errors"
	"github.com/semdex/auth-service/internal/dbx"
)

var _ Repo = (*PostgresRepo)(nil)

// PostgresRepo is the PostgreSQL-backed user store.
type PostgresRepo struct {
	db dbx.DBTX
}

// NewPostgresRepo creates a user repo bound to the provided DB handle.
func NewPostgresRepo(db dbx.DBTX) *PostgresRepo {
	return &PostgresRepo{db: db}
}

const userColumns = `id, email, phone, full_name, last_login, shares_owned`

func scanUser(row *sql.Row) (*User, error) {
	user := &User{}
	var phone sql.NullString
	var lastLogin sql.NullTime
	err := row.Scan(&user.ID, &user.Email, &phone, &user.FullName, &lastLogin, &user.SharesOwned)
	if err != nil {
		return nil, err
	}
	user.Phone = phone.String
	if lastLogin.Valid {
		t := lastLogin.Time
		user.LastLogin = &t
	}
	return user, nil
}

func (r *PostgresRepo) GetByIdentifier(ctx context.Context, identifier string) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1 OR phone = $1 LIMIT 1`

	user, err := scanUser(r.db.QueryRowContext(ctx, query, identifier))
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, NotFoundErr
		}
		return nil, errors.Wrapf(StoreUnavailableErr, "[PostgresRepo.GetByIdentifier] %v", err)
	}
	return user, nil
}

func (r *PostgresRepo) GetByID(ctx context.Context, id int64) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := scanUser(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, NotFoundErr
		}
		return nil, errors.Wrapf(StoreUnavailableErr, "[PostgresRepo.GetByID] %v", err)
	}
	return user, nil
}

func (r *PostgresRepo) SetLastLogin(ctx context.Context, id int64, at time.Time) error {
	query := `UPDATE users SET last_login = $2 WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, at)
	if err != nil {
		return errors.Wrapf(StoreUnavailableErr, "[PostgresRepo.SetLastLogin] %v", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return errors.Wrapf(StoreUnavailableErr, "[PostgresRepo.SetLastLogin] %v", err)
	}
	if affected == 0 {
		return NotFoundErr
	}
	return nil
}
