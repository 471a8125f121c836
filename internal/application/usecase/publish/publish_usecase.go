// Package publish implements copy-on-publish snapshots: the current draft is
// deep-copied into the registry under the owner's stable publish id, last
// writer wins. Fetch is the public, read-only side.
package publish

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/khangtran/folio/adapters/event"
	"github.com/khangtran/folio/internal/domain/portfolio"
	"github.com/khangtran/folio/internal/store"
	"github.com/khangtran/folio/pkg/logger"
)

// EventEmitter sends post-publish notifications. Emission failures degrade
// to a log line; the snapshot is already durable at that point.
type EventEmitter interface {
	EmitPortfolioEvent(ctx context.Context, payload event.PortfolioEventPayload) error
}

type PublishUseCase struct {
	draftRepo portfolio.DraftRepository
	registry  portfolio.Registry
	emitter   EventEmitter
	publicURL string
	logger    logger.Logger
}

func NewPublishUseCase(
	draftRepo portfolio.DraftRepository,
	registry portfolio.Registry,
	emitter EventEmitter,
	publicURL string,
	log logger.Logger,
) *PublishUseCase {
	return &PublishUseCase{
		draftRepo: draftRepo,
		registry:  registry,
		emitter:   emitter,
		publicURL: strings.TrimRight(publicURL, "/"),
		logger:    log,
	}
}

var tracer = otel.Tracer("publish_usecase")

type PublishOutput struct {
	ID  string
	URL string
}

// Execute snapshots the owner's current draft and upserts it under the
// owner's publish id, generating the id on first publish. Republishing
// replaces the prior snapshot; there is no version retention.
func (uc *PublishUseCase) Execute(ctx context.Context, ownerID uuid.UUID) (*PublishOutput, error) {
	ctx, span := tracer.Start(ctx, "Publish")
	defer span.End()

	d, err := uc.draftRepo.Get(ctx, ownerID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	id := d.PublishID
	if id == "" {
		id = uc.registry.GenerateID()
		if err := uc.draftRepo.SavePublishID(ctx, ownerID, id); err != nil {
			span.RecordError(err)
			return nil, err
		}
	}

	snapshot := store.Load(d.Raw).Profile()
	if err := uc.registry.Publish(ctx, id, snapshot); err != nil {
		span.RecordError(err)
		return nil, err
	}
	span.SetAttributes(attribute.String("portfolio_id", id))

	payload := event.PortfolioEventPayload{
		EventType:   event.EventTypePublished,
		PortfolioID: id,
		OwnerID:     ownerID.String(),
		PublishedAt: time.Now().UTC(),
	}
	if err := uc.emitter.EmitPortfolioEvent(ctx, payload); err != nil {
		uc.logger.Warn("Failed to emit publish event", zap.String("portfolio_id", id), zap.Error(err))
	}

	return &PublishOutput{ID: id, URL: uc.publicURL + "/p/" + id}, nil
}

// Fetch resolves a public portfolio id to its latest snapshot. An unknown id
// yields a not-found error, never a fault.
func (uc *PublishUseCase) Fetch(ctx context.Context, id string) (*portfolio.Profile, error) {
	ctx, span := tracer.Start(ctx, "Fetch")
	defer span.End()

	p, err := uc.registry.Fetch(ctx, id)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return p, nil
}

func (uc *PublishUseCase) ListPublished(ctx context.Context, limit int) ([]portfolio.PublishedEntry, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return uc.registry.ListPublished(ctx, limit)
}
