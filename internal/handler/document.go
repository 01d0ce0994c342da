package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/landsuite/plot-erp/internal/domain"
	"github.com/landsuite/plot-erp/internal/repository"
	"github.com/landsuite/plot-erp/internal/utils"
)

// DocumentHandler tracks document metadata attached to leads, bookings,
// plots and projects. Files live in external storage; only the URL is
// recorded here.
type DocumentHandler struct {
	Store *repository.Store
}

func NewDocumentHandler(store *repository.Store) *DocumentHandler {
	return &DocumentHandler{Store: store}
}

var validEntityTypes = map[domain.EntityType]bool{
	domain.EntityLead: true, domain.EntityBooking: true,
	domain.EntityPlot: true, domain.EntityProject: true,
}

// Create handles POST /v1/documents. New documents start in pending
// verification status.
func (h *DocumentHandler) Create(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var body struct {
		EntityType string `json:"entity_type"`
		EntityID   string `json:"entity_id"`
		DocType    string `json:"doc_type"`
		URL        string `json:"url"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if !validEntityTypes[domain.EntityType(body.EntityType)] || body.EntityID == "" || body.URL == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "entity_type, entity_id and url are required"})
	}

	doc := domain.Document{
		ID:         utils.NewID("doc"),
		EntityType: domain.EntityType(body.EntityType),
		EntityID:   body.EntityID,
		DocType:    domain.DocType(body.DocType),
		URL:        body.URL,
		UploadedBy: userID,
		Status:     domain.DocStatusPending,
		CreatedAt:  time.Now().UTC(),
	}
	if err := h.Store.PutDocument(c.Request().Context(), doc); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to store document"})
	}
	return c.JSON(http.StatusCreated, doc)
}

// List handles GET /v1/documents?entity_type=...&entity_id=...
func (h *DocumentHandler) List(c echo.Context) error {
	entityType := domain.EntityType(c.QueryParam("entity_type"))
	entityID := c.QueryParam("entity_id")
	if !validEntityTypes[entityType] || entityID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "entity_type and entity_id are required"})
	}
	docs, err := h.Store.ListDocumentsByEntity(c.Request().Context(), entityType, entityID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to list documents"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": docs})
}

// Verify handles POST /v1/documents/:id/verify. The route is gated on
// the verify-docs capability. Body: {"status": "verified"|"rejected",
// "remarks": "..."}.
func (h *DocumentHandler) Verify(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var body struct {
		Status  string `json:"status"`
		Remarks string `json:"remarks"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	status := domain.DocStatus(body.Status)
	if status != domain.DocStatusVerified && status != domain.DocStatusRejected {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "status must be verified or rejected"})
	}
	if status == domain.DocStatusRejected && body.Remarks == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "remarks are required when rejecting"})
	}

	ctx := c.Request().Context()
	doc, err := h.Store.GetDocument(ctx, c.Param("id"))
	if err != nil {
		return domainError(c, err)
	}
	if doc.Status != domain.DocStatusPending {
		return c.JSON(http.StatusConflict, echo.Map{"error": "document already reviewed"})
	}

	now := time.Now().UTC()
	doc.Status = status
	doc.VerifiedBy = &userID
	doc.VerifiedAt = &now
	doc.Remarks = body.Remarks
	if err := h.Store.PutDocument(ctx, doc); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update document"})
	}
	return c.JSON(http.StatusOK, doc)
}
