package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/khangtran/folio/internal/domain/portfolio"
	"github.com/khangtran/folio/pkg/apperror"
	"github.com/khangtran/folio/pkg/logger"
)

type postgresDraftRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresDraftRepo(db *pgxpool.Pool, logger logger.Logger) portfolio.DraftRepository {
	return &postgresDraftRepo{db: db, logger: logger}
}

func (r *postgresDraftRepo) Get(ctx context.Context, ownerID uuid.UUID) (portfolio.Draft, error) {
	query := `
		SELECT owner_id, data, publish_id
		FROM drafts
		WHERE owner_id = $1
	`
	d := portfolio.Draft{OwnerID: ownerID}
	var publishID *string

	err := r.db.QueryRow(ctx, query, ownerID).Scan(&d.OwnerID, &d.Raw, &publishID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// No saved draft yet. The store layer substitutes defaults.
			return portfolio.Draft{OwnerID: ownerID}, nil
		}
		return portfolio.Draft{}, apperror.NewUnavailable("failed to query draft", err)
	}
	if publishID != nil {
		d.PublishID = *publishID
	}
	return d, nil
}

func (r *postgresDraftRepo) SaveRaw(ctx context.Context, ownerID uuid.UUID, raw []byte) error {
	query := `
		INSERT INTO drafts (owner_id, data, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (owner_id) DO UPDATE SET
			data = EXCLUDED.data,
			updated_at = NOW()
	`
	if _, err := r.db.Exec(ctx, query, ownerID, raw); err != nil {
		return apperror.NewUnavailable("failed to upsert draft", err)
	}
	return nil
}

func (r *postgresDraftRepo) SavePublishID(ctx context.Context, ownerID uuid.UUID, publishID string) error {
	query := `
		INSERT INTO drafts (owner_id, data, publish_id, updated_at)
		VALUES ($1, NULL, $2, NOW())
		ON CONFLICT (owner_id) DO UPDATE SET
			publish_id = EXCLUDED.publish_id,
			updated_at = NOW()
	`
	if _, err := r.db.Exec(ctx, query, ownerID, publishID); err != nil {
		return apperror.NewUnavailable("failed to save publish id", err)
	}
	return nil
}
