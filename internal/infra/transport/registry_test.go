package transport

import (
	"testing"

	"notigate/internal/common"
	"notigate/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEmailTransportResolvesConfiguredName(t *testing.T) {
	cfg := &config.Config{}
	cfg.Email.Transport = "resend"
	tr, err := NewEmailTransport(cfg)
	require.NoError(t, err)
	assert.Equal(t, "resend", tr.Name())

	cfg.Email.Transport = "smtp"
	tr, err = NewEmailTransport(cfg)
	require.NoError(t, err)
	assert.Equal(t, "smtp", tr.Name())
}

func TestNewEmailTransportRejectsUnknownName(t *testing.T) {
	cfg := &config.Config{}
	cfg.Email.Transport = "carrier-pigeon"

	_, err := NewEmailTransport(cfg)

	var configuration *common.ConfigurationError
	require.ErrorAs(t, err, &configuration)
	assert.Contains(t, configuration.Detail, "carrier-pigeon")
}

func TestNewSMSTransportResolvesTwilio(t *testing.T) {
	cfg := &config.Config{}
	cfg.SMS.Transport = "twilio"

	tr, err := NewSMSTransport(cfg)

	require.NoError(t, err)
	assert.Equal(t, "twilio", tr.Name())
}

func TestNewSMSTransportRejectsUnknownName(t *testing.T) {
	cfg := &config.Config{}
	cfg.SMS.Transport = "smoke-signals"

	_, err := NewSMSTransport(cfg)

	var configuration *common.ConfigurationError
	require.ErrorAs(t, err, &configuration)
}
