package controllers

import (
	"net/http"

	"inkwell/app/middleware"
	"inkwell/app/services"
)

// ContactController handles the contact form
type ContactController struct {
	contactService *services.ContactService
}

// NewContactController creates a new ContactController
func NewContactController(contactService *services.ContactService) *ContactController {
	return &ContactController{contactService: contactService}
}

// Submit handles POST /api/contact
func (cc *ContactController) Submit(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		Message string `json:"message"`
	}
	if err := decodeBody(r, &body); err != nil {
		sendError(w, err)
		return
	}

	result, err := cc.contactService.Submit(body.Name, body.Email, body.Message)
	if err != nil {
		sendError(w, err)
		return
	}
	sendJSON(w, http.StatusCreated, result)
}

// Index handles GET /api/contact, the admin view of stored submissions
func (cc *ContactController) Index(w http.ResponseWriter, r *http.Request) {
	messages, err := cc.contactService.ListMessages(middleware.UserID(r), queryInt(r, "page"), queryInt(r, "per_page"))
	if err != nil {
		sendError(w, err)
		return
	}
	sendJSON(w, http.StatusOK, map[string]interface{}{"messages": messages})
}
