package render

import (
	"encoding/base64"
	"fmt"
	"regexp"
	"sort"

	"notigate/internal/common"
	"notigate/internal/domain/notification"
	"notigate/internal/domain/template"
)

var _ notification.Renderer = (*Engine)(nil)

// DefaultSubject is substituted when an email template defines no subject.
const DefaultSubject = "Notification"

// placeholderRe matches {{key}} placeholders, tolerating inner whitespace.
var placeholderRe = regexp.MustCompile(`\{\{\s*([A-Za-z0-9_]+)\s*\}\}`)

// Engine renders stored template definitions with lenient interpolation:
// every {{key}} placeholder is replaced by the stringified personalisation
// value, and unresolved placeholders are left verbatim. Personalisation
// values shaped as attachment descriptors ({file, filename, sending_method})
// are removed from the interpolation pass and decoded instead.
type Engine struct{}

// NewEngine creates a new render engine.
func NewEngine() *Engine {
	return &Engine{}
}

// RenderEmail produces the subject, body, and attachments for an email
// template. A template without a subject gets DefaultSubject.
func (e *Engine) RenderEmail(t template.Template, personalisation map[string]any) (notification.RenderedEmail, error) {
	vars, attachments, err := splitPersonalisation(personalisation)
	if err != nil {
		return notification.RenderedEmail{}, err
	}

	subject := t.Subject
	if subject == "" {
		subject = DefaultSubject
	}

	return notification.RenderedEmail{
		Subject:     interpolate(subject, vars),
		Body:        interpolate(t.Body, vars),
		Attachments: attachments,
	}, nil
}

// RenderSMS produces the body for an SMS template. Attachment-shaped
// personalisation values are excluded from interpolation but otherwise
// ignored — SMS carries no attachments.
func (e *Engine) RenderSMS(t template.Template, personalisation map[string]any) (notification.RenderedSMS, error) {
	vars, _, err := splitPersonalisation(personalisation)
	if err != nil {
		return notification.RenderedSMS{}, err
	}

	return notification.RenderedSMS{
		Body: interpolate(t.Body, vars),
	}, nil
}

// interpolate replaces each {{key}} with its stringified value. Keys absent
// from vars leave the placeholder untouched.
func interpolate(text string, vars map[string]string) string {
	return placeholderRe.ReplaceAllStringFunc(text, func(match string) string {
		key := placeholderRe.FindStringSubmatch(match)[1]
		if v, ok := vars[key]; ok {
			return v
		}
		return match
	})
}

// splitPersonalisation partitions personalisation into scalar interpolation
// variables and decoded attachments. Attachments are detected structurally,
// not by a flag. Personalisation is a map, so "encounter order" is fixed by
// sorting keys to keep output deterministic.
func splitPersonalisation(personalisation map[string]any) (map[string]string, []notification.Attachment, error) {
	vars := make(map[string]string, len(personalisation))
	var attachments []notification.Attachment

	keys := make([]string, 0, len(personalisation))
	for k := range personalisation {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		v := personalisation[k]
		if desc, ok := asAttachment(v); ok {
			content, err := base64.StdEncoding.DecodeString(desc.file)
			if err != nil {
				return nil, nil, common.NewValidationError(
					fmt.Sprintf("personalisation key %q: file is not valid base64", k))
			}
			attachments = append(attachments, notification.Attachment{
				Filename:      desc.filename,
				Content:       content,
				SendingMethod: desc.sendingMethod,
			})
			continue
		}
		vars[k] = fmt.Sprintf("%v", v)
	}

	return vars, attachments, nil
}

type attachmentDescriptor struct {
	file          string
	filename      string
	sendingMethod string
}

// asAttachment reports whether a personalisation value has the attachment
// descriptor shape: an object with string-valued file, filename, and
// sending_method fields, where sending_method is attach or link.
func asAttachment(v any) (attachmentDescriptor, bool) {
	obj, ok := v.(map[string]any)
	if !ok {
		return attachmentDescriptor{}, false
	}

	file, ok := obj["file"].(string)
	if !ok {
		return attachmentDescriptor{}, false
	}
	filename, ok := obj["filename"].(string)
	if !ok {
		return attachmentDescriptor{}, false
	}
	method, ok := obj["sending_method"].(string)
	if !ok {
		return attachmentDescriptor{}, false
	}
	if method != notification.SendingMethodAttach && method != notification.SendingMethodLink {
		return attachmentDescriptor{}, false
	}

	return attachmentDescriptor{file: file, filename: filename, sendingMethod: method}, true
}
