package mailer

import (
	"errors"
	"regexp"
	"strings"
)

// Field limits mirror the site's contact form.
const (
	maxNameLen    = 80
	maxEmailLen   = 120
	maxBudgetLen  = 60
	maxMessageLen = 5000
	minMessageLen = 10
)

var (
	ErrNameRequired    = errors.New("name is required")
	ErrEmailInvalid    = errors.New("valid email is required")
	ErrMessageTooShort = errors.New("message is too short")
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Contact is one contact-form submission.
type Contact struct {
	Name    string
	Email   string
	Budget  string
	Message string
}

// Clamp trims each field and cuts it to its maximum length.
func (c Contact) Clamp() Contact {
	return Contact{
		Name:    clamp(c.Name, maxNameLen),
		Email:   clamp(c.Email, maxEmailLen),
		Budget:  clamp(c.Budget, maxBudgetLen),
		Message: clamp(c.Message, maxMessageLen),
	}
}

// Validate checks a clamped submission.
func (c Contact) Validate() error {
	if c.Name == "" {
		return ErrNameRequired
	}
	if c.Email == "" || !emailPattern.MatchString(c.Email) {
		return ErrEmailInvalid
	}
	if len(c.Message) < minMessageLen {
		return ErrMessageTooShort
	}
	return nil
}

func clamp(s string, max int) string {
	t := strings.TrimSpace(s)
	if len(t) <= max {
		return t
	}
	return t[:max]
}
