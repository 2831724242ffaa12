package services

import (
	"fmt"

	"inkwell/app/apperr"
	"inkwell/app/models"
	"inkwell/app/notify"
	"inkwell/app/repositories"

	log "github.com/sirupsen/logrus"
)

// ContactService stores contact form submissions and forwards them by mail
type ContactService struct {
	contactRepo repositories.ContactRepository
	userRepo    repositories.UserRepository
	notifier    notify.Notifier
	inbox       string // address the submissions are forwarded to
}

// NewContactService creates a new ContactService
func NewContactService(
	contactRepo repositories.ContactRepository,
	userRepo repositories.UserRepository,
	notifier notify.Notifier,
	inbox string,
) *ContactService {
	return &ContactService{contactRepo: contactRepo, userRepo: userRepo, notifier: notifier, inbox: inbox}
}

// ContactResult carries the stored message plus any non-fatal warning
type ContactResult struct {
	Message *models.ContactMessage `json:"message"`
	Warning string                 `json:"warning,omitempty"`
}

// Submit stores a contact message, then forwards it to the site inbox.
// The forward is best effort; the message is kept either way.
func (s *ContactService) Submit(name, email, body string) (*ContactResult, error) {
	msg := &models.ContactMessage{Name: name, Email: email, Message: body}
	msg.BeforeCreate()
	if err := msg.Validate(); err != nil {
		return nil, apperr.Invalid("invalid contact message", err)
	}

	if err := s.contactRepo.Create(msg); err != nil {
		return nil, fmt.Errorf("failed to store contact message: %w", err)
	}

	result := &ContactResult{Message: msg}
	subject := fmt.Sprintf("Contact form: message from %s", name)
	text := fmt.Sprintf("From: %s <%s>\n\n%s\n", name, email, body)
	if err := s.notifier.Send(s.inbox, subject, text); err != nil {
		log.WithError(err).Warn("[contact] message stored but forward email failed")
		result.Warning = "message received, but the notification email could not be sent"
	}
	return result, nil
}

// ListMessages pages through stored submissions, newest first. Admin only.
func (s *ContactService) ListMessages(actorID, page, perPage int) ([]*models.ContactMessage, error) {
	if actorID <= 0 {
		return nil, apperr.Unauthenticated("authentication required")
	}
	profile, err := s.userRepo.GetProfile(actorID)
	if err != nil {
		if err == repositories.ErrNotFound {
			return nil, apperr.Unauthenticated("unknown user")
		}
		return nil, err
	}
	if profile.UserType != models.UserTypeAdmin {
		return nil, apperr.New(apperr.ErrForbidden, "admin access required", nil)
	}

	page, perPage = normalizePage(page, perPage)
	messages, err := s.contactRepo.List(perPage, (page-1)*perPage)
	if err != nil {
		return nil, fmt.Errorf("failed to list contact messages: %w", err)
	}
	return messages, nil
}
