package notification

import "notigate/internal/domain/template"

// Renderer turns a template definition plus a personalisation map into
// rendered content. Implementations live in infra/render/. Rendering is
// pure: identical inputs produce identical output, no I/O is performed, and
// missing personalisation keys never fail — unresolved {{key}} placeholders
// stay verbatim in the output.
type Renderer interface {
	// RenderEmail interpolates subject and body and extracts attachments
	// from personalisation. A template without a subject gets the default
	// subject "Notification".
	RenderEmail(t template.Template, personalisation map[string]any) (RenderedEmail, error)

	// RenderSMS interpolates the body.
	RenderSMS(t template.Template, personalisation map[string]any) (RenderedSMS, error)
}
