package mailer

import (
	"context"
	"fmt"
	"html"
	"strings"
)

// Mailer turns contact-form submissions into provider emails: a notification
// to the site owner and, optionally, an auto-reply to the submitter.
type Mailer struct {
	client    *Resend
	from      string
	to        string
	autoReply bool
}

func New(client *Resend, from, to string, autoReply bool) *Mailer {
	return &Mailer{
		client:    client,
		from:      from,
		to:        to,
		autoReply: autoReply,
	}
}

// SendContact sends the owner notification and returns its message id along
// with the auto-reply id when one was sent.
func (m *Mailer) SendContact(ctx context.Context, msg Contact, ip, userAgent string) (string, string, error) {
	ownerID, err := m.client.Send(ctx, m.ownerEmail(msg, ip, userAgent))
	if err != nil {
		return "", "", err
	}

	if !m.autoReply {
		return ownerID, "", nil
	}
	autoReplyID, err := m.client.Send(ctx, m.autoReplyEmail(msg))
	if err != nil {
		return "", "", err
	}
	return ownerID, autoReplyID, nil
}

func (m *Mailer) ownerEmail(msg Contact, ip, userAgent string) Email {
	budget := msg.Budget
	if budget == "" {
		budget = "-"
	}

	text := strings.Join([]string{
		"New contact form submission",
		"",
		"Name: " + msg.Name,
		"Email: " + msg.Email,
		"Budget: " + budget,
		"IP: " + ip,
		"User-Agent: " + userAgent,
		"",
		"Message:",
		msg.Message,
	}, "\n")

	safeMessage := strings.ReplaceAll(html.EscapeString(msg.Message), "\n", "<br/>")
	htmlBody := fmt.Sprintf(`<div style="font-family: sans-serif;">
  <h2>New contact form submission</h2>
  <div><b>Name:</b> %s</div>
  <div><b>Email:</b> %s</div>
  <div><b>Budget:</b> %s</div>
  <div style="color:#666; font-size:12px;">IP: %s | UA: %s</div>
  <div style="padding:14px; border:1px solid #e5e7eb; border-radius:12px; background:#fafafa;">
    <div style="font-weight:600;">Message</div>
    <div>%s</div>
  </div>
</div>`,
		html.EscapeString(msg.Name),
		html.EscapeString(msg.Email),
		html.EscapeString(budget),
		html.EscapeString(ip),
		html.EscapeString(userAgent),
		safeMessage,
	)

	return Email{
		From:    m.from,
		To:      []string{m.to},
		Subject: "New contact form submission from " + msg.Name,
		ReplyTo: msg.Email,
		Text:    text,
		HTML:    htmlBody,
	}
}

func (m *Mailer) autoReplyEmail(msg Contact) Email {
	text := strings.Join([]string{
		"Hi " + msg.Name + ",",
		"",
		"Thanks for reaching out. I received your message and will reply with next steps shortly.",
	}, "\n")

	htmlBody := fmt.Sprintf(`<div style="font-family: sans-serif; line-height:1.6;">
  <p>Hi %s,</p>
  <p>Thanks for reaching out. I received your message and will reply with next steps shortly.</p>
</div>`, html.EscapeString(msg.Name))

	return Email{
		From:    m.from,
		To:      []string{msg.Email},
		Subject: "Got it, I will reply soon",
		ReplyTo: m.to,
		Text:    text,
		HTML:    htmlBody,
	}
}
