// Package draft applies field-level and list-level edits to the owner's
// work-in-progress profile. Each operation loads the persisted blob, routes
// the mutation through the store so invariants are checked in one place, and
// persists the result.
package draft

import (
	"context"

	"github.com/google/uuid"

	"github.com/khangtran/folio/internal/domain/portfolio"
	"github.com/khangtran/folio/internal/store"
	"github.com/khangtran/folio/pkg/apperror"
)

type DraftUseCase struct {
	draftRepo portfolio.DraftRepository
}

func NewDraftUseCase(repo portfolio.DraftRepository) *DraftUseCase {
	return &DraftUseCase{draftRepo: repo}
}

func (uc *DraftUseCase) Get(ctx context.Context, ownerID uuid.UUID) (portfolio.Profile, error) {
	s, err := uc.loadStore(ctx, ownerID)
	if err != nil {
		return portfolio.Profile{}, err
	}
	return s.Profile(), nil
}

func (uc *DraftUseCase) SetField(ctx context.Context, ownerID uuid.UUID, name, value string) (portfolio.Profile, error) {
	return uc.mutate(ctx, ownerID, func(s *store.Store) error {
		if err := s.SetField(name, value); err != nil {
			return apperror.NewInvalidInput("unknown profile field: "+name, err)
		}
		return nil
	})
}

func (uc *DraftUseCase) SetSocial(ctx context.Context, ownerID uuid.UUID, platform, value string) (portfolio.Profile, error) {
	return uc.mutate(ctx, ownerID, func(s *store.Store) error {
		if err := s.SetSocial(platform, value); err != nil {
			return apperror.NewInvalidInput("unknown social platform: "+platform, err)
		}
		return nil
	})
}

type AddListItemOutput struct {
	ID      string
	Profile portfolio.Profile
}

func (uc *DraftUseCase) AddListItem(ctx context.Context, ownerID uuid.UUID, list string) (*AddListItemOutput, error) {
	var id string
	p, err := uc.mutate(ctx, ownerID, func(s *store.Store) error {
		newID, err := s.AddListItem(list)
		if err != nil {
			return apperror.NewInvalidInput("unknown list: "+list, err)
		}
		id = newID
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &AddListItemOutput{ID: id, Profile: p}, nil
}

type UpdateListItemOutput struct {
	Updated bool
	Profile portfolio.Profile
}

// UpdateListItem edits one field of a list entity. An absent id is reported,
// not an error: a concurrent delete in the editor must not fail the edit.
func (uc *DraftUseCase) UpdateListItem(ctx context.Context, ownerID uuid.UUID, list, id, field, value string) (*UpdateListItemOutput, error) {
	var updated bool
	p, err := uc.mutate(ctx, ownerID, func(s *store.Store) error {
		ok, err := s.UpdateListItem(list, id, field, value)
		if err != nil {
			return apperror.NewInvalidInput("unknown list or field", err)
		}
		updated = ok
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &UpdateListItemOutput{Updated: updated, Profile: p}, nil
}

// RemoveListItem removes a list entity. Removing an absent id is a no-op.
func (uc *DraftUseCase) RemoveListItem(ctx context.Context, ownerID uuid.UUID, list, id string) (portfolio.Profile, error) {
	return uc.mutate(ctx, ownerID, func(s *store.Store) error {
		if _, err := s.RemoveListItem(list, id); err != nil {
			return apperror.NewInvalidInput("unknown list: "+list, err)
		}
		return nil
	})
}

func (uc *DraftUseCase) loadStore(ctx context.Context, ownerID uuid.UUID) (*store.Store, error) {
	d, err := uc.draftRepo.Get(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return store.Load(d.Raw), nil
}

func (uc *DraftUseCase) mutate(ctx context.Context, ownerID uuid.UUID, apply func(*store.Store) error) (portfolio.Profile, error) {
	s, err := uc.loadStore(ctx, ownerID)
	if err != nil {
		return portfolio.Profile{}, err
	}
	if err := apply(s); err != nil {
		return portfolio.Profile{}, err
	}
	raw, err := s.Serialize()
	if err != nil {
		return portfolio.Profile{}, apperror.NewInternal("failed to serialize draft", err)
	}
	if err := uc.draftRepo.SaveRaw(ctx, ownerID, raw); err != nil {
		return portfolio.Profile{}, err
	}
	return s.Profile(), nil
}
