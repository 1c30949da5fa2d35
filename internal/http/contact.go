package http

import (
	"errors"
	"net/http"

	"github.com/Rgonzalez7/elias-portfolio/internal/mailer"
)

type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Budget  string `json:"budget"`
	Message string `json:"message"`
}

type contactResponse struct {
	OK          bool    `json:"ok"`
	ID          string  `json:"id"`
	AutoReplyID *string `json:"autoReplyId"`
}

func (s *Server) handleContact(w http.ResponseWriter, r *http.Request) {
	if s.cfg.Contact.ResendAPIKey == "" {
		writeFail(w, http.StatusInternalServerError, "Missing RESEND_API_KEY")
		return
	}
	if s.cfg.Contact.ToEmail == "" || s.cfg.Contact.FromEmail == "" {
		writeFail(w, http.StatusInternalServerError, "Missing CONTACT_TO_EMAIL or CONTACT_FROM_EMAIL")
		return
	}

	var req contactRequest
	if err := decodeJSON(r, &req); err != nil {
		writeFail(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	msg := mailer.Contact{
		Name:    req.Name,
		Email:   req.Email,
		Budget:  req.Budget,
		Message: req.Message,
	}.Clamp()
	if err := msg.Validate(); err != nil {
		writeFail(w, http.StatusBadRequest, contactValidationMessage(err))
		return
	}

	ip := clientIP(r)
	allowed, err := s.limiter.Allow(r.Context(), "contact:"+ip)
	if err != nil {
		// Rate limiting is best effort; a limiter outage must not block mail.
		s.log.Error("rate limiter unavailable", "error", err)
		allowed = true
	}
	if !allowed {
		writeFail(w, http.StatusTooManyRequests, "Too many messages. Try again later.")
		return
	}

	ownerID, autoReplyID, err := s.mailer.SendContact(r.Context(), msg, ip, r.UserAgent())
	if err != nil {
		s.log.Error("contact mail failed", "error", err)
		writeFail(w, http.StatusInternalServerError, "Failed to send message.")
		return
	}

	resp := contactResponse{OK: true, ID: ownerID}
	if autoReplyID != "" {
		resp.AutoReplyID = &autoReplyID
	}
	writeJSON(w, http.StatusOK, resp)
}

func contactValidationMessage(err error) string {
	switch {
	case errors.Is(err, mailer.ErrNameRequired):
		return "Name is required."
	case errors.Is(err, mailer.ErrEmailInvalid):
		return "Valid email is required."
	case errors.Is(err, mailer.ErrMessageTooShort):
		return "Message must be at least 10 characters."
	default:
		return "Invalid submission."
	}
}
