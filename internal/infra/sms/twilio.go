package sms

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"notigate/internal/common"
	"notigate/internal/domain/notification"
)

var _ notification.SMSTransport = (*TwilioTransport)(nil)

const defaultTwilioBaseURL = "https://api.twilio.com"

// TwilioTransport sends SMS through the Twilio Messages API. Without
// configured credentials it runs in a degraded dev mode: no network call is
// made, the message is logged, and a synthetic dev-<timestamp> id is
// returned with provider response "logged".
type TwilioTransport struct {
	accountSID string
	authToken  string
	fromNumber string
	baseURL    string
	httpClient *http.Client
}

// NewTwilioTransport creates a new Twilio SMS transport. fromNumber is the
// configured default, used when send options carry no From.
func NewTwilioTransport(accountSID, authToken, fromNumber string) *TwilioTransport {
	return &TwilioTransport{
		accountSID: accountSID,
		authToken:  authToken,
		fromNumber: fromNumber,
		baseURL:    defaultTwilioBaseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// SetBaseURL overrides the API endpoint. Used by tests.
func (t *TwilioTransport) SetBaseURL(u string) {
	t.baseURL = u
}

// Name returns the registry name of this transport.
func (t *TwilioTransport) Name() string {
	return "twilio"
}

// Send delivers one SMS. Credentials absent → dev mode. Credentials present
// but no usable from number → fail fast rather than emit a malformed
// outbound request.
func (t *TwilioTransport) Send(ctx context.Context, opts notification.SendSMSOptions) (*notification.SendResult, error) {
	if t.accountSID == "" || t.authToken == "" {
		slog.Info("sms transport in dev mode, message logged", "to", opts.To, "body", opts.Body)
		return &notification.SendResult{
			MessageID:        fmt.Sprintf("dev-%d", time.Now().UnixMilli()),
			ProviderResponse: "logged",
		}, nil
	}

	from := opts.From
	if from == "" {
		from = t.fromNumber
	}
	if from == "" {
		return nil, common.NewConfigurationError("SMS from number is required (set sms.from_number or pass in options)")
	}

	form := url.Values{}
	form.Set("To", opts.To)
	form.Set("From", from)
	form.Set("Body", opts.Body)

	endpoint := fmt.Sprintf("%s/2010-04-01/Accounts/%s/Messages.json", t.baseURL, t.accountSID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(t.accountSID, t.authToken)

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return nil, common.NewTransportError("twilio", err.Error())
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
		return nil, common.NewTransportError("twilio", msg)
	}

	var successResp struct {
		SID    string `json:"sid"`
		Status string `json:"status"`
	}
	if err := json.Unmarshal(respBody, &successResp); err != nil {
		return nil, fmt.Errorf("parsing twilio response: %w", err)
	}

	return &notification.SendResult{
		MessageID:        successResp.SID,
		ProviderResponse: successResp.Status,
	}, nil
}
