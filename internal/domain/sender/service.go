package sender

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"notigate/internal/common"

	"github.com/google/uuid"
)

// Service provides CRUD over the sender store with type-conditional
// validation. Mutations validate the full record before any write, so a
// failed call leaves the prior state (or absence) unchanged.
type Service struct {
	store Store
}

// NewService creates a new sender service.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// Create validates and stores a new sender. is_default defaults to false.
func (s *Service) Create(ctx context.Context, p CreateParams) (Sender, error) {
	now := time.Now().UTC()
	snd := Sender{
		ID:           uuid.NewString(),
		Type:         p.Type,
		EmailAddress: p.EmailAddress,
		SMSSender:    p.SMSSender,
		IsDefault:    false,
		CreatedAt:    now,
		UpdatedAt:    &now,
	}
	if p.IsDefault != nil {
		snd.IsDefault = *p.IsDefault
	}

	if err := snd.Validate(); err != nil {
		return Sender{}, err
	}
	if err := s.store.Set(ctx, snd.ID, snd); err != nil {
		return Sender{}, fmt.Errorf("storing sender: %w", err)
	}

	slog.Info("sender created", "id", snd.ID, "type", snd.Type)
	return snd, nil
}

// Get retrieves a sender by id.
func (s *Service) Get(ctx context.Context, id string) (Sender, error) {
	snd, ok, err := s.store.Get(ctx, id)
	if err != nil {
		return Sender{}, fmt.Errorf("fetching sender: %w", err)
	}
	if !ok {
		return Sender{}, common.NewNotFoundError("sender", id)
	}
	return snd, nil
}

// List returns all senders, optionally filtered by type. Senders of type
// "both" match every queried type.
func (s *Service) List(ctx context.Context, typ Type) ([]Sender, error) {
	all, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing senders: %w", err)
	}
	if typ == "" {
		return all, nil
	}

	filtered := make([]Sender, 0, len(all))
	for _, snd := range all {
		if snd.Matches(typ) {
			filtered = append(filtered, snd)
		}
	}
	return filtered, nil
}

// Update merges the patch over the stored sender and re-validates the merged
// result before persisting, so a partial update cannot strip a field the
// sender's type requires.
func (s *Service) Update(ctx context.Context, id string, p UpdateParams) (Sender, error) {
	snd, ok, err := s.store.Get(ctx, id)
	if err != nil {
		return Sender{}, fmt.Errorf("fetching sender: %w", err)
	}
	if !ok {
		return Sender{}, common.NewNotFoundError("sender", id)
	}

	if p.Type != nil {
		snd.Type = *p.Type
	}
	if p.EmailAddress != nil {
		snd.EmailAddress = *p.EmailAddress
	}
	if p.SMSSender != nil {
		snd.SMSSender = *p.SMSSender
	}
	if p.IsDefault != nil {
		snd.IsDefault = *p.IsDefault
	}

	if err := snd.Validate(); err != nil {
		return Sender{}, err
	}

	now := time.Now().UTC()
	snd.UpdatedAt = &now

	if err := s.store.Set(ctx, id, snd); err != nil {
		return Sender{}, fmt.Errorf("storing sender: %w", err)
	}

	slog.Info("sender updated", "id", id)
	return snd, nil
}

// Delete removes a sender by id. A missing id is a NotFound.
func (s *Service) Delete(ctx context.Context, id string) error {
	removed, err := s.store.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("deleting sender: %w", err)
	}
	if !removed {
		return common.NewNotFoundError("sender", id)
	}

	slog.Info("sender deleted", "id", id)
	return nil
}
