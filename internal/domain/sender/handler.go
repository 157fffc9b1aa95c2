package sender

import (
	"net/http"

	"notigate/internal/common"

	"github.com/gin-gonic/gin"
)

// Handler handles HTTP requests for sender management.
type Handler struct {
	service *Service
}

// NewHandler creates a new sender handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// createRequest is the payload for POST /v2/senders.
type createRequest struct {
	Type         Type   `json:"type" binding:"required,oneof=email sms both"`
	EmailAddress string `json:"email_address" binding:"omitempty,email"`
	SMSSender    string `json:"sms_sender"`
	IsDefault    *bool  `json:"is_default"`
}

// updateRequest is the patch payload for PUT /v2/senders/:senderID.
type updateRequest struct {
	Type         *Type   `json:"type" binding:"omitempty,oneof=email sms both"`
	EmailAddress *string `json:"email_address"`
	SMSSender    *string `json:"sms_sender"`
	IsDefault    *bool   `json:"is_default"`
}

// listResponse wraps the sender collection.
type listResponse struct {
	Senders []Sender `json:"senders"`
}

// Create handles POST /v2/senders.
func (h *Handler) Create(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Error(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	snd, err := h.service.Create(c.Request.Context(), CreateParams{
		Type:         req.Type,
		EmailAddress: req.EmailAddress,
		SMSSender:    req.SMSSender,
		IsDefault:    req.IsDefault,
	})
	if err != nil {
		common.HandleError(c, err)
		return
	}

	common.Success(c, http.StatusCreated, snd)
}

// Get handles GET /v2/senders/:senderID.
func (h *Handler) Get(c *gin.Context) {
	snd, err := h.service.Get(c.Request.Context(), c.Param("senderID"))
	if err != nil {
		common.HandleError(c, err)
		return
	}
	common.Success(c, http.StatusOK, snd)
}

// List handles GET /v2/senders with an optional ?type= filter.
func (h *Handler) List(c *gin.Context) {
	typ := Type(c.Query("type"))
	if typ != "" && typ != TypeEmail && typ != TypeSMS && typ != TypeBoth {
		common.Error(c, http.StatusBadRequest, "type must be email, sms, or both")
		return
	}

	senders, err := h.service.List(c.Request.Context(), typ)
	if err != nil {
		common.HandleError(c, err)
		return
	}
	common.Success(c, http.StatusOK, listResponse{Senders: senders})
}

// Update handles PUT /v2/senders/:senderID.
func (h *Handler) Update(c *gin.Context) {
	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Error(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	snd, err := h.service.Update(c.Request.Context(), c.Param("senderID"), UpdateParams{
		Type:         req.Type,
		EmailAddress: req.EmailAddress,
		SMSSender:    req.SMSSender,
		IsDefault:    req.IsDefault,
	})
	if err != nil {
		common.HandleError(c, err)
		return
	}

	common.Success(c, http.StatusOK, snd)
}

// Delete handles DELETE /v2/senders/:senderID.
func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("senderID")); err != nil {
		common.HandleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// RegisterRoutes registers sender management routes to the given router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/senders", h.List)
	rg.POST("/senders", h.Create)
	rg.GET("/senders/:senderID", h.Get)
	rg.PUT("/senders/:senderID", h.Update)
	rg.DELETE("/senders/:senderID", h.Delete)
}
