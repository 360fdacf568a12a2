package uploads

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/JaimeStill/web-quickstart/pkg/pagination"
	"github.com/JaimeStill/web-quickstart/pkg/repository"
)

type postgresLedger struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewPostgresLedger creates a Ledger backed by the uploads table.
func NewPostgresLedger(db *sql.DB, logger *slog.Logger) Ledger {
	return &postgresLedger{
		db:     db,
		logger: logger.With("system", "uploads-ledger"),
	}
}

func scanUpload(s repository.Scanner) (Upload, error) {
	var u Upload
	err := s.Scan(&u.ID, &u.Key, &u.Filename, &u.Size, &u.CreatedAt)
	return u, err
}

func (l *postgresLedger) Record(ctx context.Context, u Upload) (*Upload, error) {
	q := `INSERT INTO uploads (id, storage_key, filename, size_bytes, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, storage_key, filename, size_bytes, created_at`

	rec, err := repository.WithTx(ctx, l.db, func(tx *sql.Tx) (Upload, error) {
		return repository.QueryOne(ctx, tx, q, []any{u.ID, u.Key, u.Filename, u.Size, u.CreatedAt}, scanUpload)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	l.logger.Debug("upload recorded", "id", rec.ID, "key", rec.Key)
	return &rec, nil
}

func (l *postgresLedger) List(ctx context.Context, page pagination.PageRequest) (*pagination.PageResult[Upload], error) {
	var total int
	if err := l.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM uploads`).Scan(&total); err != nil {
		return nil, fmt.Errorf("count uploads: %w", err)
	}

	q := `SELECT id, storage_key, filename, size_bytes, created_at
		FROM uploads
		ORDER BY created_at DESC, id
		LIMIT $1 OFFSET $2`

	uploads, err := repository.QueryMany(ctx, l.db, q, []any{page.PageSize, page.Offset()}, scanUpload)
	if err != nil {
		return nil, fmt.Errorf("query uploads: %w", err)
	}

	result := pagination.NewPageResult(uploads, total, page.Page, page.PageSize)
	return &result, nil
}
