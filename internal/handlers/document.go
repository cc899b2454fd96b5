package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"presentation-service/internal/models"
	"presentation-service/internal/repositories"
	"presentation-service/internal/telemetry"
)

// DocumentHandler manages presentation document endpoints.
type DocumentHandler struct {
	docRepo repositories.DocumentRepository
	audit   *telemetry.AuditEmitter
}

// NewDocumentHandler constructs a DocumentHandler.
func NewDocumentHandler(docRepo repositories.DocumentRepository, audit *telemetry.AuditEmitter) *DocumentHandler {
	return &DocumentHandler{docRepo: docRepo, audit: audit}
}

// Create handles POST /api/document/create. Admin uploads are public.
func (h *DocumentHandler) Create(c *gin.Context) {
	var req struct {
		PresID    string `json:"pres_id" binding:"required"`
		Filename  string `json:"filename" binding:"required"`
		UploadURL string `json:"upload_url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.Err(err.Error()))
		return
	}

	doc, err := h.docRepo.CreateDocument(c.Request.Context(), models.Document{
		PresID:    req.PresID,
		Filename:  req.Filename,
		UploadURL: req.UploadURL,
		UserID:    c.GetInt("userID"),
		IsPublic:  c.GetString("userRole") == models.RoleAdmin,
	})
	if errors.Is(err, repositories.ErrDocumentExists) {
		c.JSON(http.StatusBadRequest, models.Err("The document already exists"))
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.Err("could not create document"))
		return
	}

	h.emitAudit(c, "INFO", "Document created")
	c.JSON(http.StatusOK, models.OK("Create document successfully", doc))
}

// List handles POST /api/document/list. An empty filter returns everything
// the caller may see, own documents plus public ones.
func (h *DocumentHandler) List(c *gin.Context) {
	var req struct {
		IDs []string `json:"ids"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.Err(err.Error()))
		return
	}

	docs, err := h.docRepo.ListDocuments(c.Request.Context(), c.GetInt("userID"), req.IDs)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.Err("could not load documents"))
		return
	}
	c.JSON(http.StatusOK, models.OK("Get document list successfully", docs))
}

// Update handles PUT /api/document/:pres_id.
func (h *DocumentHandler) Update(c *gin.Context) {
	var upd models.DocumentUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.JSON(http.StatusBadRequest, models.Err(err.Error()))
		return
	}

	err := h.docRepo.UpdateDocument(c.Request.Context(), c.Param("pres_id"), c.GetInt("userID"), upd)
	if errors.Is(err, repositories.ErrDocumentNotFound) {
		c.JSON(http.StatusNotFound, models.Err("Document not found"))
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.Err("could not update document"))
		return
	}

	h.emitAudit(c, "INFO", "Document updated")
	c.JSON(http.StatusOK, models.OK("Document updated successfully", nil))
}

// Delete handles DELETE /api/document/:pres_id.
func (h *DocumentHandler) Delete(c *gin.Context) {
	err := h.docRepo.DeleteDocument(c.Request.Context(), c.Param("pres_id"), c.GetInt("userID"))
	if errors.Is(err, repositories.ErrDocumentNotFound) {
		c.JSON(http.StatusNotFound, models.Err("Document not found"))
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.Err("could not delete document"))
		return
	}

	h.emitAudit(c, "INFO", "Document deleted")
	c.JSON(http.StatusOK, models.OK("Document deleted successfully", nil))
}

func (h *DocumentHandler) emitAudit(c *gin.Context, level, text string) {
	if h.audit == nil {
		return
	}
	h.audit.Emit(c.Request.Context(), level, text, requestIDFromContext(c), userIDFromContext(c))
}
