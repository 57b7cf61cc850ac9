package handler

import (
	receivingapp "github.com/erp/backoffice/internal/application/receiving"
	"github.com/gin-gonic/gin"
)

// ReceivingNoteHandler handles receiving note API endpoints
type ReceivingNoteHandler struct {
	BaseHandler
	noteService *receivingapp.NoteService
}

// NewReceivingNoteHandler creates a new ReceivingNoteHandler
func NewReceivingNoteHandler(noteService *receivingapp.NoteService) *ReceivingNoteHandler {
	return &ReceivingNoteHandler{
		noteService: noteService,
	}
}

// RegisterRoutes registers the receiving note routes
func (h *ReceivingNoteHandler) RegisterRoutes(rg *gin.RouterGroup) {
	notes := rg.Group("/receiving-notes")
	{
		notes.POST("", h.Create)
		notes.GET("/:id", h.GetByID)
		notes.POST("/:id/lines", h.AddLine)
		notes.POST("/:id/complete", h.Complete)
	}
}

// Create handles POST /receiving-notes
func (h *ReceivingNoteHandler) Create(c *gin.Context) {
	organizationID, err := getOrganizationID(c)
	if err != nil {
		h.BadRequest(c, "Invalid organization ID")
		return
	}

	var req receivingapp.CreateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	note, err := h.noteService.CreateNote(c.Request.Context(), organizationID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, note)
}

// GetByID handles GET /receiving-notes/:id
func (h *ReceivingNoteHandler) GetByID(c *gin.Context) {
	organizationID, err := getOrganizationID(c)
	if err != nil {
		h.BadRequest(c, "Invalid organization ID")
		return
	}

	noteID, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid note ID format")
		return
	}

	note, err := h.noteService.GetNote(c.Request.Context(), organizationID, noteID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, note)
}

// AddLine handles POST /receiving-notes/:id/lines
func (h *ReceivingNoteHandler) AddLine(c *gin.Context) {
	organizationID, err := getOrganizationID(c)
	if err != nil {
		h.BadRequest(c, "Invalid organization ID")
		return
	}

	noteID, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid note ID format")
		return
	}

	var req receivingapp.CreateNoteLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	note, err := h.noteService.AddLine(c.Request.Context(), organizationID, noteID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, note)
}

// Complete handles POST /receiving-notes/:id/complete
func (h *ReceivingNoteHandler) Complete(c *gin.Context) {
	organizationID, err := getOrganizationID(c)
	if err != nil {
		h.BadRequest(c, "Invalid organization ID")
		return
	}

	noteID, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid note ID format")
		return
	}

	note, err := h.noteService.Complete(c.Request.Context(), organizationID, noteID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, note)
}
