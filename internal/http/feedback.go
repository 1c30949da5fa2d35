package http

import (
	"errors"
	"net/http"

	"github.com/Rgonzalez7/elias-portfolio/internal/feedback"
)

type feedbackRequest struct {
	Framework feedback.Framework `json:"framework"`
	Text      string             `json:"text"`
}

type feedbackMeta struct {
	WordCount int    `json:"wordCount"`
	Model     string `json:"model"`
}

type feedbackResponse struct {
	OK        bool               `json:"ok"`
	Framework feedback.Framework `json:"framework"`
	Meta      feedbackMeta       `json:"meta"`
	Report    feedback.Report    `json:"report"`
	Markdown  string             `json:"markdown"`
}

func (s *Server) handleAIFeedback(w http.ResponseWriter, r *http.Request) {
	var req feedbackRequest
	if err := decodeJSON(r, &req); err != nil {
		writeFail(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	if !req.Framework.Valid() {
		writeFail(w, http.StatusBadRequest, "Unknown framework.")
		return
	}
	wc := feedback.WordCount(req.Text)
	if wc < feedback.MinWords {
		writeFail(w, http.StatusBadRequest, "Please provide at least ~30 words of session text.")
		return
	}

	result, err := s.feedback.Generate(r.Context(), req.Framework, req.Text)
	if err != nil {
		s.writeFeedbackError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, feedbackResponse{
		OK:        true,
		Framework: req.Framework,
		Meta:      feedbackMeta{WordCount: wc, Model: result.Model},
		Report:    result.Report,
		Markdown:  feedback.Markdown(req.Framework, result.Report),
	})
}

func (s *Server) writeFeedbackError(w http.ResponseWriter, err error) {
	var upstream *feedback.UpstreamError
	switch {
	case errors.As(err, &upstream):
		message := upstream.Body
		if message == "" {
			message = "OpenAI error"
		}
		writeFail(w, http.StatusInternalServerError, message)
	case errors.Is(err, feedback.ErrEmptyResponse):
		writeFail(w, http.StatusInternalServerError, "Empty response from model.")
	case errors.Is(err, feedback.ErrInvalidJSON):
		writeFail(w, http.StatusInternalServerError, "Model did not return valid JSON. Try again.")
	case errors.Is(err, feedback.ErrBadSchema):
		writeFail(w, http.StatusInternalServerError, "Model returned JSON but not matching the expected schema.")
	default:
		s.log.Error("feedback generation failed", "error", err)
		writeFail(w, http.StatusInternalServerError, "Unknown server error.")
	}
}
