package notification

import (
	"context"
	"fmt"
	"log/slog"

	"notigate/internal/common"
	"notigate/internal/domain/sender"
	"notigate/internal/domain/template"

	"github.com/google/uuid"
)

// Defaults holds the configured fallback sender identities used when a
// request carries no explicit sender reference.
type Defaults struct {
	FromEmail  string
	FromNumber string
}

// Service is the notification orchestrator: it resolves the template,
// applies type and state checks, renders, resolves the outgoing identity,
// dispatches through the channel's transport, and assembles the response
// envelope. It holds no state of its own — a failure at any step aborts the
// whole operation, and the transport call is the last and only externally
// visible action.
type Service struct {
	resolver template.Resolver
	renderer Renderer
	email    EmailTransport
	sms      SMSTransport
	senders  sender.Store
	defaults Defaults
}

// NewService creates a new notification orchestrator.
func NewService(
	resolver template.Resolver,
	renderer Renderer,
	email EmailTransport,
	sms SMSTransport,
	senders sender.Store,
	defaults Defaults,
) *Service {
	return &Service{
		resolver: resolver,
		renderer: renderer,
		email:    email,
		sms:      sms,
		senders:  senders,
		defaults: defaults,
	}
}

// SendEmail renders and dispatches a single email notification.
func (s *Service) SendEmail(ctx context.Context, req SendEmailRequest) (*Response, error) {
	tpl, err := s.resolveFor(ctx, req.TemplateID, template.TypeEmail)
	if err != nil {
		return nil, err
	}

	rendered, err := s.renderer.RenderEmail(tpl, req.Personalisation)
	if err != nil {
		return nil, fmt.Errorf("rendering template %s: %w", tpl.ID, err)
	}

	from := s.defaults.FromEmail
	if req.EmailReplyToID != "" {
		snd, err := s.lookupSender(ctx, req.EmailReplyToID)
		if err != nil {
			return nil, err
		}
		if snd.EmailAddress == "" {
			return nil, common.NewValidationError(fmt.Sprintf("sender %s has no email address", snd.ID))
		}
		from = snd.EmailAddress
	}

	result, err := s.email.Send(ctx, SendEmailOptions{
		To:          req.EmailAddress,
		Subject:     rendered.Subject,
		Body:        rendered.Body,
		From:        from,
		Attachments: rendered.Attachments,
	})
	if err != nil {
		return nil, fmt.Errorf("dispatching email via %s: %w", s.email.Name(), err)
	}

	rendered.FromEmail = from

	resp := s.envelope(req.Reference, req.ScheduledFor, rendered, tpl)
	slog.Info("email notification sent",
		"id", resp.ID,
		"template_id", tpl.ID,
		"to", req.EmailAddress,
		"transport", s.email.Name(),
		"message_id", result.MessageID,
	)
	return resp, nil
}

// SendSMS renders and dispatches a single SMS notification.
func (s *Service) SendSMS(ctx context.Context, req SendSMSRequest) (*Response, error) {
	tpl, err := s.resolveFor(ctx, req.TemplateID, template.TypeSMS)
	if err != nil {
		return nil, err
	}

	rendered, err := s.renderer.RenderSMS(tpl, req.Personalisation)
	if err != nil {
		return nil, fmt.Errorf("rendering template %s: %w", tpl.ID, err)
	}

	from := s.defaults.FromNumber
	if req.SMSSenderID != "" {
		snd, err := s.lookupSender(ctx, req.SMSSenderID)
		if err != nil {
			return nil, err
		}
		if snd.SMSSender == "" {
			return nil, common.NewValidationError(fmt.Sprintf("sender %s has no sms sender", snd.ID))
		}
		from = snd.SMSSender
	}

	result, err := s.sms.Send(ctx, SendSMSOptions{
		To:   req.PhoneNumber,
		Body: rendered.Body,
		From: from,
	})
	if err != nil {
		return nil, fmt.Errorf("dispatching sms via %s: %w", s.sms.Name(), err)
	}

	rendered.FromNumber = from

	resp := s.envelope(req.Reference, req.ScheduledFor, rendered, tpl)
	slog.Info("sms notification sent",
		"id", resp.ID,
		"template_id", tpl.ID,
		"to", req.PhoneNumber,
		"transport", s.sms.Name(),
		"message_id", result.MessageID,
	)
	return resp, nil
}

// resolveFor looks up the template and applies the channel and active-state
// checks shared by both send paths.
func (s *Service) resolveFor(ctx context.Context, templateID string, want template.Type) (template.Template, error) {
	tpl, ok, err := s.resolver.Resolve(ctx, templateID)
	if err != nil {
		return template.Template{}, fmt.Errorf("resolving template: %w", err)
	}
	if !ok {
		return template.Template{}, common.NewNotFoundError("template", templateID)
	}
	if tpl.Type != want {
		return template.Template{}, common.NewValidationError(
			fmt.Sprintf("template %s has type %s, expected %s", tpl.ID, tpl.Type, want))
	}
	if !tpl.Active {
		return template.Template{}, common.NewValidationError(
			fmt.Sprintf("template %s is not active", tpl.ID))
	}
	return tpl, nil
}

func (s *Service) lookupSender(ctx context.Context, id string) (sender.Sender, error) {
	snd, ok, err := s.senders.Get(ctx, id)
	if err != nil {
		return sender.Sender{}, fmt.Errorf("fetching sender: %w", err)
	}
	if !ok {
		return sender.Sender{}, common.NewNotFoundError("sender", id)
	}
	return snd, nil
}

// envelope assembles the response with a freshly generated notification id
// and URIs derived from the channel base paths.
func (s *Service) envelope(reference, scheduledFor string, content any, tpl template.Template) *Response {
	id := uuid.NewString()
	return &Response{
		ID:           id,
		Reference:    reference,
		Content:      content,
		URI:          NotificationsBasePath + "/" + id,
		Template: TemplateRef{
			ID:      tpl.ID,
			Version: tpl.Version,
			URI:     TemplatesBasePath + "/" + tpl.ID,
		},
		ScheduledFor: scheduledFor,
	}
}
