package mailer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContactClampAndValidate(t *testing.T) {
	msg := Contact{
		Name:    "  Ada Lovelace  ",
		Email:   " ada@example.com ",
		Budget:  strings.Repeat("x", 100),
		Message: "I would like to talk about a project.",
	}.Clamp()

	assert.Equal(t, "Ada Lovelace", msg.Name)
	assert.Equal(t, "ada@example.com", msg.Email)
	assert.Len(t, msg.Budget, maxBudgetLen)
	require.NoError(t, msg.Validate())
}

func TestContactValidateErrors(t *testing.T) {
	valid := Contact{Name: "A", Email: "a@x.com", Message: "long enough message"}

	msg := valid
	msg.Name = ""
	assert.ErrorIs(t, msg.Validate(), ErrNameRequired)

	msg = valid
	msg.Email = "not-an-email"
	assert.ErrorIs(t, msg.Validate(), ErrEmailInvalid)

	msg = valid
	msg.Email = ""
	assert.ErrorIs(t, msg.Validate(), ErrEmailInvalid)

	msg = valid
	msg.Message = "short"
	assert.ErrorIs(t, msg.Validate(), ErrMessageTooShort)
}

func TestSendContact(t *testing.T) {
	var sent []Email
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/emails", r.URL.Path)
		require.Equal(t, "Bearer re-test", r.Header.Get("Authorization"))
		var email Email
		require.NoError(t, json.NewDecoder(r.Body).Decode(&email))
		sent = append(sent, email)
		_, _ = w.Write([]byte(`{"id":"msg-` + string(rune('0'+len(sent))) + `"}`))
	}))
	defer upstream.Close()

	client := NewResend("re-test").WithBaseURL(upstream.URL)
	m := New(client, "site@example.com", "owner@example.com", true)

	msg := Contact{
		Name:    "Ada",
		Email:   "ada@example.com",
		Budget:  "",
		Message: "Line one\nLine <two> & more",
	}
	ownerID, autoReplyID, err := m.SendContact(context.Background(), msg, "203.0.113.9", "curl/8.0")
	require.NoError(t, err)
	assert.Equal(t, "msg-1", ownerID)
	assert.Equal(t, "msg-2", autoReplyID)

	require.Len(t, sent, 2)
	owner := sent[0]
	assert.Equal(t, "site@example.com", owner.From)
	assert.Equal(t, []string{"owner@example.com"}, owner.To)
	assert.Equal(t, "ada@example.com", owner.ReplyTo)
	assert.Contains(t, owner.Text, "Budget: -")
	assert.Contains(t, owner.Text, "IP: 203.0.113.9")
	assert.Contains(t, owner.HTML, "Line &lt;two&gt; &amp; more")
	assert.Contains(t, owner.HTML, "Line one<br/>")

	reply := sent[1]
	assert.Equal(t, []string{"ada@example.com"}, reply.To)
	assert.Equal(t, "owner@example.com", reply.ReplyTo)
	assert.Contains(t, reply.Text, "Hi Ada,")
}

func TestSendContactNoAutoReply(t *testing.T) {
	var count int
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		count++
		_, _ = w.Write([]byte(`{"id":"msg-1"}`))
	}))
	defer upstream.Close()

	client := NewResend("re-test").WithBaseURL(upstream.URL)
	m := New(client, "site@example.com", "owner@example.com", false)

	msg := Contact{Name: "Ada", Email: "ada@example.com", Message: "long enough message"}
	ownerID, autoReplyID, err := m.SendContact(context.Background(), msg, "", "")
	require.NoError(t, err)
	assert.Equal(t, "msg-1", ownerID)
	assert.Equal(t, "", autoReplyID)
	assert.Equal(t, 1, count)
}

func TestResendSendErrorStatus(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"message":"invalid from"}`, http.StatusUnprocessableEntity)
	}))
	defer upstream.Close()

	client := NewResend("re-test").WithBaseURL(upstream.URL)
	_, err := client.Send(context.Background(), Email{From: "x", To: []string{"y"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "422")
}
