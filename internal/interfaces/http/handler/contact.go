package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	orderingapp "github.com/marketplace/backend/internal/application/ordering"
)

// ContactHandler handles the buyer's delivery contact endpoints
type ContactHandler struct {
	BaseHandler
	contactService *orderingapp.ContactService
	authenticate   gin.HandlerFunc
}

// NewContactHandler creates a new ContactHandler
func NewContactHandler(contactService *orderingapp.ContactService, authenticate gin.HandlerFunc) *ContactHandler {
	return &ContactHandler{
		contactService: contactService,
		authenticate:   authenticate,
	}
}

// DeleteContactsRequest carries contact ids to remove
type DeleteContactsRequest struct {
	Items []uuid.UUID `json:"items" binding:"required,min=1"`
}

// ListContacts lists the caller's delivery contacts
func (h *ContactHandler) ListContacts(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	contacts, err := h.contactService.List(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, contacts)
}

// CreateContact adds a delivery contact
func (h *ContactHandler) CreateContact(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	var req orderingapp.CreateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	contact, err := h.contactService.Create(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, contact)
}

// UpdateContact applies a partial update to one of the caller's contacts
func (h *ContactHandler) UpdateContact(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	id, ok := h.parseIDParam(c)
	if !ok {
		return
	}

	var req orderingapp.UpdateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	contact, err := h.contactService.Update(c.Request.Context(), userID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, contact)
}

// DeleteContacts removes contacts. Ids belonging to other accounts are
// silently skipped.
func (h *ContactHandler) DeleteContacts(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	var req DeleteContactsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	removed, err := h.contactService.Delete(c.Request.Context(), userID, req.Items)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"removed": removed})
}

// RegisterRoutes registers all contact routes
func (h *ContactHandler) RegisterRoutes(rg *gin.RouterGroup) {
	contacts := rg.Group("/contacts", h.authenticate)
	{
		contacts.GET("", h.ListContacts)
		contacts.POST("", h.CreateContact)
		contacts.PUT("/:id", h.UpdateContact)
		contacts.DELETE("", h.DeleteContacts)
	}
}
