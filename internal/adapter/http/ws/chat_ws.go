package wshandler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/Temutjin2k/ride-hail-insights/internal/adapter/http/handler/dto"
	"github.com/Temutjin2k/ride-hail-insights/internal/domain/models"
	"github.com/Temutjin2k/ride-hail-insights/internal/domain/types"
	"github.com/Temutjin2k/ride-hail-insights/pkg/logger"
	wrap "github.com/Temutjin2k/ride-hail-insights/pkg/logger/wrapper"
	"github.com/Temutjin2k/ride-hail-insights/pkg/validator"
	ws "github.com/Temutjin2k/ride-hail-insights/pkg/wsHub"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

type ChatService interface {
	History(ctx context.Context, id uuid.UUID) ([]models.Turn, error)
	Ask(ctx context.Context, id uuid.UUID, f models.TripFilter, question string) (models.Answer, error)
}

// ChatWsHandler streams a chat session over a websocket. The filter is
// fixed by the query string of the upgrade request.
type ChatWsHandler struct {
	s           ChatService
	connections *ws.ConnectionHub
	upgrader    websocket.Upgrader
	l           logger.Logger
}

func NewChatWsHandler(s ChatService, connections *ws.ConnectionHub, l logger.Logger) *ChatWsHandler {
	return &ChatWsHandler{
		s:           s,
		connections: connections,
		upgrader: websocket.Upgrader{
			HandshakeTimeout: 10 * time.Second,
			CheckOrigin:      func(r *http.Request) bool { return true },
		},
		l: l,
	}
}

// HandleChat godoc
// @Summary      Chat over websocket
// @Description  Send {"type":"ask","question":"..."}; receive {"type":"answer","answer":"...","source":"remote|local"}.
// @Tags         Chat
// @Param        session_id  path  string  true  "Session ID"
// @Router       /ws/sessions/{session_id} [get]
func (h *ChatWsHandler) HandleChat(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "ws_chat")

	id, err := uuid.Parse(r.PathValue("session_id"))
	if err != nil {
		http.Error(w, `{"error":"session_id must be a valid UUID"}`, http.StatusBadRequest)
		return
	}
	ctx = wrap.WithSessionID(ctx, id.String())

	// the session must exist before upgrading
	if _, err := h.s.History(ctx, id); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, types.ErrSessionNotFound) {
			status = http.StatusNotFound
		}
		http.Error(w, `{"error":"`+err.Error()+`"}`, status)
		return
	}

	v := validator.New()
	filter := dto.TripFilter(r.URL.Query(), v)
	if !v.Valid() {
		body, _ := json.Marshal(map[string]any{"error": v.Errors})
		http.Error(w, string(body), http.StatusUnprocessableEntity)
		return
	}

	raw, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.l.Error(ctx, "websocket upgrade failed", err)
		return
	}

	// the request context ends with the handler; the socket outlives it
	connCtx := wrap.WithSessionID(wrap.WithAction(context.Background(), "ws_chat"), id.String())
	conn := ws.NewConn(connCtx, id, raw)
	if err := h.connections.Add(conn); err != nil {
		h.l.Error(ctx, "failed to register websocket", err)
		_ = conn.Close()
		return
	}
	h.l.Info(ctx, "chat websocket connected")

	go func() {
		defer func() {
			_ = h.connections.Delete(conn)
			h.l.Info(connCtx, "chat websocket disconnected")
		}()

		err := conn.Listen(func(data []byte) error {
			return h.handleFrame(connCtx, conn, filter, data)
		})
		if err != nil && !errors.Is(err, ws.ErrConnClosed) && !isNormalClose(err) {
			h.l.Warn(connCtx, "chat websocket stopped", "error", err.Error())
		}
	}()
}

// handleFrame answers one client frame. Only send failures end the loop.
func (h *ChatWsHandler) handleFrame(ctx context.Context, conn *ws.Conn, filter models.TripFilter, data []byte) error {
	var msg dto.ChatMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return conn.Send(dto.ChatMessage{Type: dto.ChatError, Error: "frame must be a JSON object"})
	}
	if msg.Type != dto.ChatAsk {
		return conn.Send(dto.ChatMessage{Type: dto.ChatError, Error: "unsupported message type"})
	}

	req := dto.AskRequest{Question: msg.Question}
	v := validator.New()
	req.Validate(v)
	if !v.Valid() {
		return conn.Send(dto.ChatMessage{Type: dto.ChatError, Error: v.Errors})
	}

	answer, err := h.s.Ask(ctx, conn.ID(), filter, req.Question)
	if err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to answer question", err)
		return conn.Send(dto.ChatMessage{Type: dto.ChatError, Error: err.Error()})
	}

	return conn.Send(dto.ChatMessage{
		Type:   dto.ChatAnswer,
		Answer: answer.Text,
		Source: string(answer.Source),
	})
}

func isNormalClose(err error) bool {
	var ce *websocket.CloseError
	if !errors.As(err, &ce) {
		return false
	}
	return ce.Code == websocket.CloseNormalClosure || ce.Code == websocket.CloseGoingAway
}
