package template

import (
	"context"
	"time"
)

// Type identifies the channel a template renders for.
type Type string

const (
	TypeEmail Type = "email"
	TypeSMS   Type = "sms"
)

// Template is a named, versioned content blueprint with {{key}} placeholders.
// Subject is meaningful only when Type is email.
type Template struct {
	ID              string            `json:"id"`
	Name            string            `json:"name"`
	Description     string            `json:"description,omitempty"`
	Type            Type              `json:"type"`
	Subject         string            `json:"subject,omitempty"`
	Body            string            `json:"body"`
	Personalisation map[string]string `json:"personalisation,omitempty"`
	Active          bool              `json:"active"`
	Version         int               `json:"version"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

// Store defines the keyed-repository contract for template persistence.
// Implementations live in infra/store/. All methods are value-copy: a stored
// template is never aliased by callers, so a fetched snapshot stays stable
// while a patch is merged over it.
type Store interface {
	// Get retrieves a template by id. The second return is false when absent.
	Get(ctx context.Context, id string) (Template, bool, error)

	// Set writes a template under the given id, replacing any previous value.
	Set(ctx context.Context, id string, t Template) error

	// Delete removes a template by id, reporting whether it existed.
	Delete(ctx context.Context, id string) (bool, error)

	// List returns all stored templates.
	List(ctx context.Context) ([]Template, error)
}

// Resolver looks up a template definition by identifier. It does not
// validate id shape — callers pass opaque strings and absence is reported
// through the boolean, never through an error.
type Resolver interface {
	Resolve(ctx context.Context, templateID string) (Template, bool, error)
}

// StoreResolver is a pure read-through Resolver backed by a Store.
type StoreResolver struct {
	store Store
}

var _ Resolver = (*StoreResolver)(nil)

// NewStoreResolver creates a Resolver that reads through to the given store.
func NewStoreResolver(store Store) *StoreResolver {
	return &StoreResolver{store: store}
}

// Resolve fetches the template from the backing store.
func (r *StoreResolver) Resolve(ctx context.Context, templateID string) (Template, bool, error) {
	return r.store.Get(ctx, templateID)
}

// CreateParams carries the caller-supplied fields for a new template.
type CreateParams struct {
	Name            string
	Description     string
	Type            Type
	Subject         string
	Body            string
	Personalisation map[string]string
	Active          *bool
}

// UpdateParams is a patch applied over an existing template. Nil fields are
// left untouched by the merge.
type UpdateParams struct {
	Name            *string
	Description     *string
	Subject         *string
	Body            *string
	Personalisation map[string]string
	Active          *bool
}
