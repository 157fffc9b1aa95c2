package sender

import (
	"context"
	"regexp"
	"time"

	"notigate/internal/common"
)

// Type identifies which channels a sender identity covers.
type Type string

const (
	TypeEmail Type = "email"
	TypeSMS   Type = "sms"
	TypeBoth  Type = "both"
)

// Sender is a reply-to email address or SMS sender identity usable as the
// "from" of a message. email_address must be present when Type is email or
// both; sms_sender must be present when Type is sms or both.
type Sender struct {
	ID           string     `json:"id"`
	Type         Type       `json:"type"`
	EmailAddress string     `json:"email_address,omitempty"`
	SMSSender    string     `json:"sms_sender,omitempty"`
	IsDefault    bool       `json:"is_default"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at,omitempty"`
}

// Store defines the keyed-repository contract for sender persistence.
// Implementations live in infra/store/.
type Store interface {
	Get(ctx context.Context, id string) (Sender, bool, error)
	Set(ctx context.Context, id string, s Sender) error
	Delete(ctx context.Context, id string) (bool, error)
	List(ctx context.Context) ([]Sender, error)
}

var (
	// Alphanumeric sender id shown as the sender name, e.g. GOVBC.
	alphanumericSenderRe = regexp.MustCompile(`^[A-Za-z0-9]{1,11}$`)
	// E.164-style number, leading + optional, 15 characters at most.
	phoneSenderRe = regexp.MustCompile(`^\+?[0-9]+$`)
)

// Validate checks the type-conditional field requirements. It is applied to
// full records only — patches are merged over a snapshot first, so a partial
// update can never leave an invariant violated.
func (s Sender) Validate() error {
	switch s.Type {
	case TypeEmail, TypeSMS, TypeBoth:
	default:
		return common.NewValidationError("type must be email, sms, or both")
	}

	if (s.Type == TypeEmail || s.Type == TypeBoth) && s.EmailAddress == "" {
		return common.NewValidationError("email_address is required when type is email or both")
	}
	if s.Type == TypeSMS || s.Type == TypeBoth {
		if s.SMSSender == "" {
			return common.NewValidationError("sms_sender is required when type is sms or both")
		}
		if !validSMSSender(s.SMSSender) {
			return common.NewValidationError("sms_sender must be alphanumeric (max 11 chars) or E.164 phone number (max 15 chars)")
		}
	}
	return nil
}

// Matches checks whether this sender serves the queried type. A "both"
// sender matches every queried type.
func (s Sender) Matches(typ Type) bool {
	return s.Type == typ || s.Type == TypeBoth
}

func validSMSSender(v string) bool {
	if alphanumericSenderRe.MatchString(v) {
		return true
	}
	return len(v) <= 15 && phoneSenderRe.MatchString(v)
}

// CreateParams carries the caller-supplied fields for a new sender.
type CreateParams struct {
	Type         Type
	EmailAddress string
	SMSSender    string
	IsDefault    *bool
}

// UpdateParams is a patch applied over an existing sender. Nil fields are
// left untouched by the merge.
type UpdateParams struct {
	Type         *Type
	EmailAddress *string
	SMSSender    *string
	IsDefault    *bool
}
