package notification

import (
	"context"
	"strings"
	"testing"

	"notigate/internal/common"
	"notigate/internal/domain/sender"
	"notigate/internal/domain/template"
	"notigate/internal/infra/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// plainRenderer is a minimal Renderer that substitutes {{key}} with the
// stringified personalisation value, mirroring the production engine's
// contract without importing it (infra/render depends on this package).
type plainRenderer struct{}

func (plainRenderer) RenderEmail(t template.Template, p map[string]any) (RenderedEmail, error) {
	subject := t.Subject
	if subject == "" {
		subject = "Notification"
	}
	return RenderedEmail{Subject: interpolate(subject, p), Body: interpolate(t.Body, p)}, nil
}

func (plainRenderer) RenderSMS(t template.Template, p map[string]any) (RenderedSMS, error) {
	return RenderedSMS{Body: interpolate(t.Body, p)}, nil
}

func interpolate(s string, p map[string]any) string {
	for k, v := range p {
		if sv, ok := v.(string); ok {
			s = strings.ReplaceAll(s, "{{"+k+"}}", sv)
		}
	}
	return s
}

type fakeEmailTransport struct {
	calls []SendEmailOptions
	err   error
}

func (f *fakeEmailTransport) Name() string { return "fake-email" }

func (f *fakeEmailTransport) Send(_ context.Context, opts SendEmailOptions) (*SendResult, error) {
	f.calls = append(f.calls, opts)
	if f.err != nil {
		return nil, f.err
	}
	return &SendResult{MessageID: "msg-1", ProviderResponse: "accepted"}, nil
}

type fakeSMSTransport struct {
	calls []SendSMSOptions
	err   error
}

func (f *fakeSMSTransport) Name() string { return "fake-sms" }

func (f *fakeSMSTransport) Send(_ context.Context, opts SendSMSOptions) (*SendResult, error) {
	f.calls = append(f.calls, opts)
	if f.err != nil {
		return nil, f.err
	}
	return &SendResult{MessageID: "sms-1", ProviderResponse: "queued"}, nil
}

type fixture struct {
	svc       *Service
	templates *store.Memory[template.Template]
	senders   *store.Memory[sender.Sender]
	email     *fakeEmailTransport
	sms       *fakeSMSTransport
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	templates := store.NewMemory[template.Template]()
	senders := store.NewMemory[sender.Sender]()
	email := &fakeEmailTransport{}
	sms := &fakeSMSTransport{}
	svc := NewService(
		template.NewStoreResolver(templates),
		plainRenderer{},
		email,
		sms,
		senders,
		Defaults{FromEmail: "noreply@example.com", FromNumber: "+15550000000"},
	)
	return &fixture{svc: svc, templates: templates, senders: senders, email: email, sms: sms}
}

func (f *fixture) addTemplate(t *testing.T, tpl template.Template) template.Template {
	t.Helper()
	require.NoError(t, f.templates.Set(context.Background(), tpl.ID, tpl))
	return tpl
}

func TestSendEmailRendersAndDispatches(t *testing.T) {
	f := newFixture(t)
	tpl := f.addTemplate(t, template.Template{
		ID:      "tpl-1",
		Type:    template.TypeEmail,
		Subject: "Hi {{name}}",
		Body:    "Hello {{name}}",
		Active:  true,
		Version: 3,
	})

	resp, err := f.svc.SendEmail(context.Background(), SendEmailRequest{
		EmailAddress:    "alice@example.com",
		TemplateID:      tpl.ID,
		Personalisation: map[string]any{"name": "Alice"},
		Reference:       "ref-1",
	})

	require.NoError(t, err)
	require.Len(t, f.email.calls, 1)
	call := f.email.calls[0]
	assert.Equal(t, "alice@example.com", call.To)
	assert.Equal(t, "Hi Alice", call.Subject)
	assert.Equal(t, "Hello Alice", call.Body)
	assert.Equal(t, "noreply@example.com", call.From)

	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "ref-1", resp.Reference)
	assert.Equal(t, NotificationsBasePath+"/"+resp.ID, resp.URI)
	assert.Equal(t, tpl.ID, resp.Template.ID)
	assert.Equal(t, 3, resp.Template.Version)
	assert.Equal(t, TemplatesBasePath+"/"+tpl.ID, resp.Template.URI)

	content, ok := resp.Content.(RenderedEmail)
	require.True(t, ok)
	assert.Equal(t, "noreply@example.com", content.FromEmail)
	assert.Equal(t, "Hello Alice", content.Body)
}

func TestSendEmailUnknownTemplateIsNotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.SendEmail(context.Background(), SendEmailRequest{
		EmailAddress: "alice@example.com",
		TemplateID:   "missing",
	})

	var notFound *common.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Empty(t, f.email.calls)
}

func TestSendEmailInactiveTemplateNeverReachesTransport(t *testing.T) {
	f := newFixture(t)
	tpl := f.addTemplate(t, template.Template{
		ID:     "tpl-1",
		Type:   template.TypeEmail,
		Body:   "B",
		Active: false,
	})

	_, err := f.svc.SendEmail(context.Background(), SendEmailRequest{
		EmailAddress: "alice@example.com",
		TemplateID:   tpl.ID,
	})

	var validation *common.ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Contains(t, validation.Message, "not active")
	assert.Empty(t, f.email.calls)
}

func TestSendEmailRejectsSMSTemplate(t *testing.T) {
	f := newFixture(t)
	tpl := f.addTemplate(t, template.Template{
		ID:     "tpl-1",
		Type:   template.TypeSMS,
		Body:   "B",
		Active: true,
	})

	_, err := f.svc.SendEmail(context.Background(), SendEmailRequest{
		EmailAddress: "alice@example.com",
		TemplateID:   tpl.ID,
	})

	var validation *common.ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Empty(t, f.email.calls)
}

func TestSendEmailResolvesReplyToSender(t *testing.T) {
	f := newFixture(t)
	tpl := f.addTemplate(t, template.Template{
		ID:     "tpl-1",
		Type:   template.TypeEmail,
		Body:   "B",
		Active: true,
	})
	require.NoError(t, f.senders.Set(context.Background(), "snd-1", sender.Sender{
		ID:           "snd-1",
		Type:         sender.TypeEmail,
		EmailAddress: "support@example.com",
	}))

	resp, err := f.svc.SendEmail(context.Background(), SendEmailRequest{
		EmailAddress:   "alice@example.com",
		TemplateID:     tpl.ID,
		EmailReplyToID: "snd-1",
	})

	require.NoError(t, err)
	require.Len(t, f.email.calls, 1)
	assert.Equal(t, "support@example.com", f.email.calls[0].From)
	assert.Equal(t, "support@example.com", resp.Content.(RenderedEmail).FromEmail)
}

func TestSendEmailUnknownReplyToIsNotFound(t *testing.T) {
	f := newFixture(t)
	tpl := f.addTemplate(t, template.Template{
		ID:     "tpl-1",
		Type:   template.TypeEmail,
		Body:   "B",
		Active: true,
	})

	_, err := f.svc.SendEmail(context.Background(), SendEmailRequest{
		EmailAddress:   "alice@example.com",
		TemplateID:     tpl.ID,
		EmailReplyToID: "missing",
	})

	var notFound *common.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "sender", notFound.Resource)
	assert.Empty(t, f.email.calls)
}

func TestSendEmailSenderWithoutAddressIsRejected(t *testing.T) {
	f := newFixture(t)
	tpl := f.addTemplate(t, template.Template{
		ID:     "tpl-1",
		Type:   template.TypeEmail,
		Body:   "B",
		Active: true,
	})
	require.NoError(t, f.senders.Set(context.Background(), "snd-1", sender.Sender{
		ID:        "snd-1",
		Type:      sender.TypeSMS,
		SMSSender: "GOVBC",
	}))

	_, err := f.svc.SendEmail(context.Background(), SendEmailRequest{
		EmailAddress:   "alice@example.com",
		TemplateID:     tpl.ID,
		EmailReplyToID: "snd-1",
	})

	var validation *common.ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Empty(t, f.email.calls)
}

func TestSendEmailTransportFailureIsWrapped(t *testing.T) {
	f := newFixture(t)
	f.email.err = common.NewTransportError("fake-email", "relay refused")
	tpl := f.addTemplate(t, template.Template{
		ID:     "tpl-1",
		Type:   template.TypeEmail,
		Body:   "B",
		Active: true,
	})

	_, err := f.svc.SendEmail(context.Background(), SendEmailRequest{
		EmailAddress: "alice@example.com",
		TemplateID:   tpl.ID,
	})

	var transport *common.TransportError
	require.ErrorAs(t, err, &transport)
	assert.Len(t, f.email.calls, 1)
}

func TestSendSMSRendersAndDispatches(t *testing.T) {
	f := newFixture(t)
	tpl := f.addTemplate(t, template.Template{
		ID:      "tpl-1",
		Type:    template.TypeSMS,
		Body:    "Your code is {{code}}",
		Active:  true,
		Version: 1,
	})

	resp, err := f.svc.SendSMS(context.Background(), SendSMSRequest{
		PhoneNumber:     "+15551234567",
		TemplateID:      tpl.ID,
		Personalisation: map[string]any{"code": "1234"},
	})

	require.NoError(t, err)
	require.Len(t, f.sms.calls, 1)
	call := f.sms.calls[0]
	assert.Equal(t, "+15551234567", call.To)
	assert.Equal(t, "Your code is 1234", call.Body)
	assert.Equal(t, "+15550000000", call.From)

	content, ok := resp.Content.(RenderedSMS)
	require.True(t, ok)
	assert.Equal(t, "+15550000000", content.FromNumber)
}

func TestSendSMSResolvesSenderID(t *testing.T) {
	f := newFixture(t)
	tpl := f.addTemplate(t, template.Template{
		ID:     "tpl-1",
		Type:   template.TypeSMS,
		Body:   "B",
		Active: true,
	})
	require.NoError(t, f.senders.Set(context.Background(), "snd-1", sender.Sender{
		ID:        "snd-1",
		Type:      sender.TypeSMS,
		SMSSender: "GOVBC",
	}))

	_, err := f.svc.SendSMS(context.Background(), SendSMSRequest{
		PhoneNumber: "+15551234567",
		TemplateID:  tpl.ID,
		SMSSenderID: "snd-1",
	})

	require.NoError(t, err)
	require.Len(t, f.sms.calls, 1)
	assert.Equal(t, "GOVBC", f.sms.calls[0].From)
}

func TestSendSMSRejectsEmailTemplate(t *testing.T) {
	f := newFixture(t)
	tpl := f.addTemplate(t, template.Template{
		ID:     "tpl-1",
		Type:   template.TypeEmail,
		Body:   "B",
		Active: true,
	})

	_, err := f.svc.SendSMS(context.Background(), SendSMSRequest{
		PhoneNumber: "+15551234567",
		TemplateID:  tpl.ID,
	})

	var validation *common.ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Empty(t, f.sms.calls)
}
