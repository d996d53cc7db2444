package audit

import (
	"context"

	"github.com/pkg/errors"
	"github.com/semdex/auth-service/internal/dbx"
)

var _ Repo = (*PostgresRepo)(nil)

// PostgresRepo is the PostgreSQL-backed audit log.
type PostgresRepo struct {
	db dbx.DBTX
}

// NewPostgresRepo creates an audit repo bound to the provided DB handle.
func NewPostgresRepo(db dbx.DBTX) *PostgresRepo {
	return &PostgresRepo{db: db}
}

func (r *PostgresRepo) Record(ctx context.Context, entry *Entry) error {
	query := `INSERT INTO audit_logs (user_id, action, module, details, ip_address, user_agent)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		entry.UserID, string(entry.Action), entry.Module, entry.Details, entry.IPAddress, entry.UserAgent,
	).Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		return errors.Wrapf(StoreUnavailableErr, "[PostgresRepo.Record] %v", err)
	}
	return nil
}
