package notification

// Base paths used to derive notification and template URIs in the response
// envelope. They match the route surface registered by the router.
const (
	NotificationsBasePath = "/v2/notifications"
	TemplatesBasePath     = "/v2/templates"
)

// Attachment sending methods.
const (
	SendingMethodAttach = "attach"
	SendingMethodLink   = "link"
)

// Attachment is a decoded file extracted from personalisation. Content is
// never serialized in API responses; it only travels to the email relay.
type Attachment struct {
	Filename      string `json:"filename"`
	Content       []byte `json:"-"`
	SendingMethod string `json:"sending_method"`
}

// RenderedEmail is the ephemeral result of rendering an email template.
// FromEmail is filled in by the orchestrator once the sender is resolved.
type RenderedEmail struct {
	FromEmail   string       `json:"from_email"`
	Subject     string       `json:"subject"`
	Body        string       `json:"body"`
	Attachments []Attachment `json:"-"`
}

// RenderedSMS is the ephemeral result of rendering an SMS template.
type RenderedSMS struct {
	Body       string `json:"body"`
	FromNumber string `json:"from_number"`
}

// SendEmailRequest carries the already-structurally-validated fields for a
// single email send.
type SendEmailRequest struct {
	EmailAddress    string
	TemplateID      string
	Personalisation map[string]any
	Reference       string
	ScheduledFor    string
	EmailReplyToID  string
}

// SendSMSRequest carries the already-structurally-validated fields for a
// single SMS send.
type SendSMSRequest struct {
	PhoneNumber     string
	TemplateID      string
	Personalisation map[string]any
	Reference       string
	ScheduledFor    string
	SMSSenderID     string
}

// TemplateRef points back at the template a notification was built from.
type TemplateRef struct {
	ID      string `json:"id"`
	Version int    `json:"version"`
	URI     string `json:"uri"`
}

// Response is the envelope returned to the caller after a successful send.
// It is never persisted; re-fetching a notification by id is unsupported.
type Response struct {
	ID           string      `json:"id"`
	Reference    string      `json:"reference,omitempty"`
	Content      any         `json:"content"`
	URI          string      `json:"uri"`
	Template     TemplateRef `json:"template"`
	ScheduledFor string      `json:"scheduled_for,omitempty"`
}

// Links carries collection navigation for list responses.
type Links struct {
	Current string `json:"current"`
	Next    string `json:"next,omitempty"`
}

// ListResponse is the (always empty) notification collection. No
// notification record is persisted by this service.
type ListResponse struct {
	Notifications []Response `json:"notifications"`
	Links         Links      `json:"links"`
}
