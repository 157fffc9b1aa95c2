package template

import (
	"net/http"

	"notigate/internal/common"

	"github.com/gin-gonic/gin"
)

// Handler handles HTTP requests for template management.
type Handler struct {
	service *Service
}

// NewHandler creates a new template handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// createRequest is the payload for POST /v2/templates.
type createRequest struct {
	Name            string            `json:"name" binding:"required"`
	Description     string            `json:"description"`
	Type            Type              `json:"type" binding:"required,oneof=email sms"`
	Subject         string            `json:"subject"`
	Body            string            `json:"body" binding:"required"`
	Personalisation map[string]string `json:"personalisation"`
	Active          *bool             `json:"active"`
}

// updateRequest is the patch payload for PUT /v2/templates/:templateID.
type updateRequest struct {
	Name            *string           `json:"name"`
	Description     *string           `json:"description"`
	Subject         *string           `json:"subject"`
	Body            *string           `json:"body"`
	Personalisation map[string]string `json:"personalisation"`
	Active          *bool             `json:"active"`
}

// listResponse wraps the template collection.
type listResponse struct {
	Templates []Template `json:"templates"`
}

// Create handles POST /v2/templates.
func (h *Handler) Create(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Error(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	t, err := h.service.Create(c.Request.Context(), CreateParams{
		Name:            req.Name,
		Description:     req.Description,
		Type:            req.Type,
		Subject:         req.Subject,
		Body:            req.Body,
		Personalisation: req.Personalisation,
		Active:          req.Active,
	})
	if err != nil {
		common.HandleError(c, err)
		return
	}

	common.Success(c, http.StatusCreated, t)
}

// Get handles GET /v2/templates/:templateID.
func (h *Handler) Get(c *gin.Context) {
	t, err := h.service.Get(c.Request.Context(), c.Param("templateID"))
	if err != nil {
		common.HandleError(c, err)
		return
	}
	common.Success(c, http.StatusOK, t)
}

// List handles GET /v2/templates with an optional ?type= filter.
func (h *Handler) List(c *gin.Context) {
	typ := Type(c.Query("type"))
	if typ != "" && typ != TypeEmail && typ != TypeSMS {
		common.Error(c, http.StatusBadRequest, "type must be email or sms")
		return
	}

	templates, err := h.service.List(c.Request.Context(), typ)
	if err != nil {
		common.HandleError(c, err)
		return
	}
	common.Success(c, http.StatusOK, listResponse{Templates: templates})
}

// Update handles PUT /v2/templates/:templateID.
func (h *Handler) Update(c *gin.Context) {
	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Error(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	t, err := h.service.Update(c.Request.Context(), c.Param("templateID"), UpdateParams{
		Name:            req.Name,
		Description:     req.Description,
		Subject:         req.Subject,
		Body:            req.Body,
		Personalisation: req.Personalisation,
		Active:          req.Active,
	})
	if err != nil {
		common.HandleError(c, err)
		return
	}

	common.Success(c, http.StatusOK, t)
}

// Delete handles DELETE /v2/templates/:templateID.
func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("templateID")); err != nil {
		common.HandleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// RegisterRoutes registers template management routes to the given router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/templates", h.List)
	rg.POST("/templates", h.Create)
	rg.GET("/templates/:templateID", h.Get)
	rg.PUT("/templates/:templateID", h.Update)
	rg.DELETE("/templates/:templateID", h.Delete)
}
