package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/Temutjin2k/ride-hail-insights/internal/adapter/http/handler/dto"
	"github.com/Temutjin2k/ride-hail-insights/internal/domain/models"
	"github.com/Temutjin2k/ride-hail-insights/pkg/logger"
	wrap "github.com/Temutjin2k/ride-hail-insights/pkg/logger/wrapper"
	"github.com/Temutjin2k/ride-hail-insights/pkg/validator"
	"github.com/google/uuid"
)

type ChatService interface {
	CreateSession(ctx context.Context) (*models.Session, error)
	History(ctx context.Context, id uuid.UUID) ([]models.Turn, error)
	EndSession(ctx context.Context, id uuid.UUID) error
	Ask(ctx context.Context, id uuid.UUID, f models.TripFilter, question string) (models.Answer, error)
}

type Chat struct {
	s          ChatService
	sessionTTL time.Duration
	l          logger.Logger
}

func NewChat(s ChatService, sessionTTL time.Duration, l logger.Logger) *Chat {
	return &Chat{s: s, sessionTTL: sessionTTL, l: l}
}

// CreateSession godoc
// @Summary      Start a chat session
// @Tags         Chat
// @Produce      json
// @Success      201  {object}  dto.SessionResponse
// @Router       /sessions [post]
func (h *Chat) CreateSession(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "chat_create_session")

	sess, err := h.s.CreateSession(ctx)
	if err != nil {
		serviceErrorResponse(w, r, h.l, "failed to create session", err)
		return
	}

	headers := make(http.Header)
	headers.Set("Location", "/sessions/"+sess.ID.String())
	if err := writeJSON(w, http.StatusCreated, dto.NewSessionResponse(sess, h.sessionTTL), headers); err != nil {
		h.l.Error(ctx, "failed to write response", err)
	}
}

// GetHistory godoc
// @Summary      Conversation history
// @Tags         Chat
// @Produce      json
// @Param        session_id  path  string  true  "Session ID"
// @Success      200  {object}  map[string]any
// @Failure      404  {object}  map[string]string
// @Router       /sessions/{session_id}/history [get]
func (h *Chat) GetHistory(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "chat_get_history")

	id, err := readUUIDPath(r, "session_id")
	if err != nil {
		badRequestResponse(w, err.Error())
		return
	}
	ctx = wrap.WithSessionID(ctx, id.String())

	turns, err := h.s.History(ctx, id)
	if err != nil {
		serviceErrorResponse(w, r.WithContext(ctx), h.l, "failed to get history", err)
		return
	}

	writeOrLog(w, r, h.l, http.StatusOK, envelope{"session_id": id, "turns": turns})
}

// Ask godoc
// @Summary      Ask the assistant
// @Description  Answers against the trips selected by the query string filter. The remote answerer is tried once; any failure falls back to the built-in responder.
// @Tags         Chat
// @Accept       json
// @Produce      json
// @Param        session_id  path  string          true  "Session ID"
// @Param        request     body  dto.AskRequest  true  "Question"
// @Success      200  {object}  models.Answer
// @Failure      404  {object}  map[string]string
// @Failure      422  {object}  map[string]any
// @Router       /sessions/{session_id}/ask [post]
func (h *Chat) Ask(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "chat_ask")

	id, err := readUUIDPath(r, "session_id")
	if err != nil {
		badRequestResponse(w, err.Error())
		return
	}
	ctx = wrap.WithSessionID(ctx, id.String())

	var req dto.AskRequest
	if err := readJSON(w, r, &req); err != nil {
		badRequestResponse(w, err.Error())
		return
	}

	v := validator.New()
	req.Validate(v)
	f := dto.TripFilter(r.URL.Query(), v)
	if !v.Valid() {
		failedValidationResponse(w, v.Errors)
		return
	}

	answer, err := h.s.Ask(ctx, id, f, req.Question)
	if err != nil {
		serviceErrorResponse(w, r.WithContext(ctx), h.l, "failed to answer question", err)
		return
	}

	writeOrLog(w, r, h.l, http.StatusOK, answer)
}

// EndSession godoc
// @Summary      End a chat session
// @Tags         Chat
// @Param        session_id  path  string  true  "Session ID"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /sessions/{session_id} [delete]
func (h *Chat) EndSession(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "chat_end_session")

	id, err := readUUIDPath(r, "session_id")
	if err != nil {
		badRequestResponse(w, err.Error())
		return
	}

	if err := h.s.EndSession(wrap.WithSessionID(ctx, id.String()), id); err != nil {
		serviceErrorResponse(w, r, h.l, "failed to end session", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
