package bulk

import (
	"net/http"

	"notigate/internal/common"
	"notigate/internal/metrics"

	"github.com/gin-gonic/gin"
)

// Handler handles HTTP requests for bulk admission.
type Handler struct {
	service *Service
	metrics *metrics.Metrics
}

// NewHandler creates a new bulk handler. metrics may be nil.
func NewHandler(service *Service, m *metrics.Metrics) *Handler {
	return &Handler{service: service, metrics: m}
}

// admitRequest is the payload for POST /v2/notifications/bulk.
type admitRequest struct {
	TemplateID   string     `json:"template_id" binding:"required"`
	Name         string     `json:"name" binding:"required"`
	Reference    string     `json:"reference"`
	Rows         [][]string `json:"rows"`
	CSV          string     `json:"csv"`
	ScheduledFor string     `json:"scheduled_for"`
	ReplyToID    string     `json:"reply_to_id"`
}

// admitResponse wraps the created job record.
type admitResponse struct {
	Data Job `json:"data"`
}

// Admit handles POST /v2/notifications/bulk.
func (h *Handler) Admit(c *gin.Context) {
	var req admitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Error(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	job, err := h.service.Admit(c.Request.Context(), Request{
		TemplateID:   req.TemplateID,
		Name:         req.Name,
		Reference:    req.Reference,
		Rows:         req.Rows,
		CSV:          req.CSV,
		ScheduledFor: req.ScheduledFor,
		ReplyToID:    req.ReplyToID,
	})
	if err != nil {
		common.HandleError(c, err)
		return
	}

	h.metrics.RecordBulkJob()
	common.Success(c, http.StatusCreated, admitResponse{Data: job})
}

// RegisterRoutes registers bulk routes to the given router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/notifications/bulk", h.Admit)
}
