package notification

import (
	"log/slog"
	"net/http"

	"notigate/internal/common"
	"notigate/internal/metrics"

	"github.com/gin-gonic/gin"
)

// Handler handles HTTP requests for sending notifications.
type Handler struct {
	service *Service
	metrics *metrics.Metrics
}

// NewHandler creates a new notification handler. metrics may be nil.
func NewHandler(service *Service, m *metrics.Metrics) *Handler {
	return &Handler{service: service, metrics: m}
}

// sendEmailRequest is the payload for POST /v2/notifications/email.
type sendEmailRequest struct {
	EmailAddress    string         `json:"email_address" binding:"required,email"`
	TemplateID      string         `json:"template_id" binding:"required"`
	Personalisation map[string]any `json:"personalisation"`
	Reference       string         `json:"reference"`
	ScheduledFor    string         `json:"scheduled_for"`
	EmailReplyToID  string         `json:"email_reply_to_id"`
}

// sendSMSRequest is the payload for POST /v2/notifications/sms.
type sendSMSRequest struct {
	PhoneNumber     string         `json:"phone_number" binding:"required,e164"`
	TemplateID      string         `json:"template_id" binding:"required"`
	Personalisation map[string]any `json:"personalisation"`
	Reference       string         `json:"reference"`
	ScheduledFor    string         `json:"scheduled_for"`
	SMSSenderID     string         `json:"sms_sender_id"`
}

// SendEmail handles POST /v2/notifications/email.
func (h *Handler) SendEmail(c *gin.Context) {
	var req sendEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Error(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	resp, err := h.service.SendEmail(c.Request.Context(), SendEmailRequest{
		EmailAddress:    req.EmailAddress,
		TemplateID:      req.TemplateID,
		Personalisation: req.Personalisation,
		Reference:       req.Reference,
		ScheduledFor:    req.ScheduledFor,
		EmailReplyToID:  req.EmailReplyToID,
	})
	h.metrics.RecordSend("email", err)
	if err != nil {
		slog.Error("email send failed", "template_id", req.TemplateID, "to", req.EmailAddress, "error", err)
		common.HandleError(c, err)
		return
	}

	common.Success(c, http.StatusCreated, resp)
}

// SendSMS handles POST /v2/notifications/sms.
func (h *Handler) SendSMS(c *gin.Context) {
	var req sendSMSRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Error(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	resp, err := h.service.SendSMS(c.Request.Context(), SendSMSRequest{
		PhoneNumber:     req.PhoneNumber,
		TemplateID:      req.TemplateID,
		Personalisation: req.Personalisation,
		Reference:       req.Reference,
		ScheduledFor:    req.ScheduledFor,
		SMSSenderID:     req.SMSSenderID,
	})
	h.metrics.RecordSend("sms", err)
	if err != nil {
		slog.Error("sms send failed", "template_id", req.TemplateID, "to", req.PhoneNumber, "error", err)
		common.HandleError(c, err)
		return
	}

	common.Success(c, http.StatusCreated, resp)
}

// List handles GET /v2/notifications. Notifications are never persisted, so
// the collection is always empty.
func (h *Handler) List(c *gin.Context) {
	common.Success(c, http.StatusOK, ListResponse{
		Notifications: []Response{},
		Links:         Links{Current: NotificationsBasePath},
	})
}

// Get handles GET /v2/notifications/:notificationID. No notification record
// exists to look up — this is a permanent NotFound by contract, not a bug.
func (h *Handler) Get(c *gin.Context) {
	common.HandleError(c, common.NewNotFoundError("notification", c.Param("notificationID")))
}

// RegisterRoutes registers notification routes to the given router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/notifications/email", h.SendEmail)
	rg.POST("/notifications/sms", h.SendSMS)
	rg.GET("/notifications", h.List)
	rg.GET("/notifications/:notificationID", h.Get)
}
