package template

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"notigate/internal/common"

	"github.com/google/uuid"
)

// Service provides versioned CRUD over the template store.
type Service struct {
	store Store
}

// NewService creates a new template service.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// Create stores a new template with a fresh id, version 1, and timestamps.
// Active defaults to true when the caller does not set it.
func (s *Service) Create(ctx context.Context, p CreateParams) (Template, error) {
	now := time.Now().UTC()
	t := Template{
		ID:              uuid.NewString(),
		Name:            p.Name,
		Description:     p.Description,
		Type:            p.Type,
		Subject:         p.Subject,
		Body:            p.Body,
		Personalisation: p.Personalisation,
		Active:          true,
		Version:         1,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if p.Active != nil {
		t.Active = *p.Active
	}

	if err := s.store.Set(ctx, t.ID, t); err != nil {
		return Template{}, fmt.Errorf("storing template: %w", err)
	}

	slog.Info("template created", "id", t.ID, "name", t.Name, "type", t.Type)
	return t, nil
}

// Get retrieves a template by id.
func (s *Service) Get(ctx context.Context, id string) (Template, error) {
	t, ok, err := s.store.Get(ctx, id)
	if err != nil {
		return Template{}, fmt.Errorf("fetching template: %w", err)
	}
	if !ok {
		return Template{}, common.NewNotFoundError("template", id)
	}
	return t, nil
}

// List returns all templates, optionally filtered by type.
func (s *Service) List(ctx context.Context, typ Type) ([]Template, error) {
	all, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing templates: %w", err)
	}
	if typ == "" {
		return all, nil
	}

	filtered := make([]Template, 0, len(all))
	for _, t := range all {
		if t.Type == typ {
			filtered = append(filtered, t)
		}
	}
	return filtered, nil
}

// Update merges the patch over the stored template, increments the version
// by exactly 1, and refreshes updated_at.
func (s *Service) Update(ctx context.Context, id string, p UpdateParams) (Template, error) {
	t, ok, err := s.store.Get(ctx, id)
	if err != nil {
		return Template{}, fmt.Errorf("fetching template: %w", err)
	}
	if !ok {
		return Template{}, common.NewNotFoundError("template", id)
	}

	if p.Name != nil {
		t.Name = *p.Name
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Subject != nil {
		t.Subject = *p.Subject
	}
	if p.Body != nil {
		t.Body = *p.Body
	}
	if p.Personalisation != nil {
		t.Personalisation = p.Personalisation
	}
	if p.Active != nil {
		t.Active = *p.Active
	}
	t.Version++
	t.UpdatedAt = time.Now().UTC()

	if err := s.store.Set(ctx, id, t); err != nil {
		return Template{}, fmt.Errorf("storing template: %w", err)
	}

	slog.Info("template updated", "id", id, "version", t.Version)
	return t, nil
}

// Delete removes a template by id. A missing id is a NotFound.
func (s *Service) Delete(ctx context.Context, id string) error {
	removed, err := s.store.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("deleting template: %w", err)
	}
	if !removed {
		return common.NewNotFoundError("template", id)
	}

	slog.Info("template deleted", "id", id)
	return nil
}
