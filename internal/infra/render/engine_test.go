package render

import (
	"encoding/base64"
	"testing"

	"notigate/internal/common"
	"notigate/internal/domain/notification"
	"notigate/internal/domain/template"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func emailTemplate(subject, body string) template.Template {
	return template.Template{
		ID:      "t-email",
		Name:    "Email",
		Type:    template.TypeEmail,
		Subject: subject,
		Body:    body,
		Active:  true,
		Version: 1,
	}
}

func TestRenderEmailInterpolatesSubjectAndBody(t *testing.T) {
	e := NewEngine()

	result, err := e.RenderEmail(
		emailTemplate("Hello {{name}}", "Welcome, {{name}}. Your code is {{code}}."),
		map[string]any{"name": "Alice", "code": "123"},
	)

	require.NoError(t, err)
	assert.Equal(t, "Hello Alice", result.Subject)
	assert.Equal(t, "Welcome, Alice. Your code is 123.", result.Body)
	assert.Empty(t, result.Attachments)
}

func TestRenderEmailDefaultSubject(t *testing.T) {
	e := NewEngine()

	result, err := e.RenderEmail(emailTemplate("", "Body only"), map[string]any{})

	require.NoError(t, err)
	assert.Equal(t, "Notification", result.Subject)
	assert.Equal(t, "Body only", result.Body)
}

func TestRenderEmailLeavesUnresolvedPlaceholdersVerbatim(t *testing.T) {
	e := NewEngine()

	result, err := e.RenderEmail(
		emailTemplate("Hi {{name}}", "Code: {{code}}, ref: {{ reference }}"),
		map[string]any{"name": "Bob"},
	)

	require.NoError(t, err)
	assert.Equal(t, "Hi Bob", result.Subject)
	assert.Equal(t, "Code: {{code}}, ref: {{ reference }}", result.Body)
}

func TestRenderEmailStringifiesScalars(t *testing.T) {
	e := NewEngine()

	result, err := e.RenderEmail(
		emailTemplate("S", "count={{count}} ok={{ok}}"),
		map[string]any{"count": 42, "ok": true},
	)

	require.NoError(t, err)
	assert.Equal(t, "count=42 ok=true", result.Body)
}

func TestRenderEmailExtractsAttachments(t *testing.T) {
	e := NewEngine()
	content := base64.StdEncoding.EncodeToString([]byte("file content"))

	result, err := e.RenderEmail(
		emailTemplate("S", "Hello {{name}}"),
		map[string]any{
			"name": "Alice",
			"document": map[string]any{
				"file":           content,
				"filename":       "doc.pdf",
				"sending_method": "attach",
			},
		},
	)

	require.NoError(t, err)
	assert.Equal(t, "Hello Alice", result.Body)
	require.Len(t, result.Attachments, 1)
	assert.Equal(t, "doc.pdf", result.Attachments[0].Filename)
	assert.Equal(t, []byte("file content"), result.Attachments[0].Content)
	assert.Equal(t, notification.SendingMethodAttach, result.Attachments[0].SendingMethod)
}

func TestRenderEmailAttachmentsSortedKeyOrder(t *testing.T) {
	e := NewEngine()
	content := base64.StdEncoding.EncodeToString([]byte("x"))
	descriptor := func(name string) map[string]any {
		return map[string]any{"file": content, "filename": name, "sending_method": "link"}
	}

	result, err := e.RenderEmail(emailTemplate("S", "B"), map[string]any{
		"b_doc": descriptor("b.pdf"),
		"a_doc": descriptor("a.pdf"),
	})

	require.NoError(t, err)
	require.Len(t, result.Attachments, 2)
	assert.Equal(t, "a.pdf", result.Attachments[0].Filename)
	assert.Equal(t, "b.pdf", result.Attachments[1].Filename)
}

func TestRenderEmailRejectsInvalidBase64(t *testing.T) {
	e := NewEngine()

	_, err := e.RenderEmail(emailTemplate("S", "B"), map[string]any{
		"document": map[string]any{
			"file":           "not base64!!!",
			"filename":       "doc.pdf",
			"sending_method": "attach",
		},
	})

	var validation *common.ValidationError
	require.ErrorAs(t, err, &validation)
}

func TestRenderEmailNonAttachmentObjectIsStringified(t *testing.T) {
	e := NewEngine()

	// Missing sending_method — not an attachment descriptor
	result, err := e.RenderEmail(emailTemplate("S", "v={{meta}}"), map[string]any{
		"meta": map[string]any{"file": "x", "filename": "y"},
	})

	require.NoError(t, err)
	assert.NotContains(t, result.Body, "{{meta}}")
}

func TestRenderSMSInterpolatesBody(t *testing.T) {
	e := NewEngine()

	result, err := e.RenderSMS(template.Template{
		ID:     "t-sms",
		Type:   template.TypeSMS,
		Body:   "Hi {{name}}, your code: {{code}}",
		Active: true,
	}, map[string]any{"name": "Bob", "code": "456"})

	require.NoError(t, err)
	assert.Equal(t, "Hi Bob, your code: 456", result.Body)
}

func TestRenderIsPure(t *testing.T) {
	e := NewEngine()
	tpl := emailTemplate("Hi {{name}}", "Hello {{name}}")
	p := map[string]any{"name": "Alice"}

	first, err := e.RenderEmail(tpl, p)
	require.NoError(t, err)
	second, err := e.RenderEmail(tpl, p)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
