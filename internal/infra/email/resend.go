package email

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"notigate/internal/common"
	"notigate/internal/domain/notification"
)

var _ notification.EmailTransport = (*ResendTransport)(nil)

const defaultResendBaseURL = "https://api.resend.com"

// ResendTransport sends emails through the Resend API.
type ResendTransport struct {
	apiKey      string
	fromAddress string
	baseURL     string
	httpClient  *http.Client
}

// NewResendTransport creates a new Resend email transport. fromAddress is
// the configured default sender, used when send options carry no From.
func NewResendTransport(apiKey, fromAddress string) *ResendTransport {
	return &ResendTransport{
		apiKey:      apiKey,
		fromAddress: fromAddress,
		baseURL:     defaultResendBaseURL,
		httpClient:  &http.Client{Timeout: 10 * time.Second},
	}
}

// SetBaseURL overrides the API endpoint. Used by tests.
func (t *ResendTransport) SetBaseURL(u string) {
	t.baseURL = u
}

// Name returns the registry name of this transport.
func (t *ResendTransport) Name() string {
	return "resend"
}

// Send delivers an email via the Resend API. Only attachments with sending
// method "attach" are forwarded; link-style attachments are assumed already
// referenced by URL in the body.
func (t *ResendTransport) Send(ctx context.Context, opts notification.SendEmailOptions) (*notification.SendResult, error) {
	from := opts.From
	if from == "" {
		from = t.fromAddress
	}

	payload := map[string]any{
		"from":    from,
		"to":      []string{opts.To},
		"subject": opts.Subject,
		"html":    opts.Body,
	}

	var attachments []map[string]string
	for _, a := range opts.Attachments {
		if a.SendingMethod != notification.SendingMethodAttach {
			continue
		}
		attachments = append(attachments, map[string]string{
			"filename": a.Filename,
			"content":  base64.StdEncoding.EncodeToString(a.Content),
		})
	}
	if len(attachments) > 0 {
		payload["attachments"] = attachments
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshaling email payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.baseURL+"/emails", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+t.apiKey)

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return nil, common.NewTransportError("resend", err.Error())
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20)) // 1 MB max
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var errResp struct {
			Message string `json:"message"`
		}
		_ = json.Unmarshal(respBody, &errResp)

		msg := errResp.Message
		if msg == "" {
			msg = fmt.Sprintf("status %d", resp.StatusCode)
		}
		return nil, common.NewTransportError("resend", msg)
	}

	var successResp struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(respBody, &successResp); err != nil {
		return nil, fmt.Errorf("parsing resend response: %w", err)
	}

	return &notification.SendResult{
		MessageID:        successResp.ID,
		ProviderResponse: resp.Status,
	}, nil
}
