package persistence

import (
	"context"
	"encoding/json"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/khangtran/folio/internal/domain/portfolio"
	"github.com/khangtran/folio/pkg/apperror"
	"github.com/khangtran/folio/pkg/logger"
	"github.com/khangtran/folio/pkg/token"
)

// postgresRegistryRepo stores published snapshots in the portfolios table:
// id (text, primary key), data (jsonb). Publish is a plain upsert, last
// writer wins; there is no version history.
type postgresRegistryRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresRegistryRepo(db *pgxpool.Pool, logger logger.Logger) portfolio.Registry {
	return &postgresRegistryRepo{db: db, logger: logger}
}

var psqlRegistry = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

func (r *postgresRegistryRepo) Publish(ctx context.Context, id string, snapshot portfolio.Profile) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return apperror.NewInternal("failed to marshal snapshot", err)
	}

	query := `
		INSERT INTO portfolios (id, data, published_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (id) DO UPDATE SET
			data = EXCLUDED.data,
			published_at = NOW()
	`
	if _, err := r.db.Exec(ctx, query, id, data); err != nil {
		return apperror.NewUnavailable("failed to publish snapshot", err)
	}
	return nil
}

func (r *postgresRegistryRepo) Fetch(ctx context.Context, id string) (*portfolio.Profile, error) {
	query, args, err := psqlRegistry.
		Select("data").
		From("portfolios").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build fetch query", err)
	}

	var data []byte
	if err := r.db.QueryRow(ctx, query, args...).Scan(&data); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("portfolio", id)
		}
		return nil, apperror.NewUnavailable("failed to fetch snapshot", err)
	}

	var p portfolio.Profile
	if err := json.Unmarshal(data, &p); err != nil {
		// Corrupted backing data degrades to absent rather than a parse fault.
		r.logger.Warn("Stored snapshot is not decodable, treating as absent",
			zap.String("portfolio_id", id), zap.Error(err))
		return nil, apperror.NewNotFound("portfolio", id)
	}
	p.Normalize()
	return &p, nil
}

// ListPublished returns publish ids ordered by recency, for the admin surface.
func (r *postgresRegistryRepo) ListPublished(ctx context.Context, limit int) ([]portfolio.PublishedEntry, error) {
	query, args, err := psqlRegistry.
		Select("id", "published_at").
		From("portfolios").
		OrderBy("published_at DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build list query", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, apperror.NewUnavailable("failed to list published portfolios", err)
	}
	defer rows.Close()

	entries := make([]portfolio.PublishedEntry, 0)
	for rows.Next() {
		var e portfolio.PublishedEntry
		if err := rows.Scan(&e.ID, &e.PublishedAt); err != nil {
			return nil, apperror.NewInternal("failed to scan published row", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewUnavailable("error iterating published rows", err)
	}
	return entries, nil
}

func (r *postgresRegistryRepo) GenerateID() string {
	return token.NewPublishID()
}
