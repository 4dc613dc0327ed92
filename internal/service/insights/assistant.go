package insights

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Temutjin2k/ride-hail-insights/internal/domain/models"
	"github.com/Temutjin2k/ride-hail-insights/internal/domain/types"
	"github.com/Temutjin2k/ride-hail-insights/pkg/logger"
	wrap "github.com/Temutjin2k/ride-hail-insights/pkg/logger/wrapper"
	"github.com/Temutjin2k/ride-hail-insights/pkg/metrics"
)

const (
	DefaultRemoteTimeout = 10 * time.Second
	DefaultHistorySize   = 10
)

type AssistantConfig struct {
	Service     string
	Timeout     time.Duration
	HistorySize int
}

// AskInput is the filtered state a question is answered against.
type AskInput struct {
	Trips    []models.Trip
	Overall  models.KPI
	Distance models.DistanceRange
}

// Assistant tries the remote collaborator once and falls back to the local
// responder on any failure. It never retries.
type Assistant struct {
	remote RemoteAnswerer
	local  *Responder
	cfg    AssistantConfig
	now    func() time.Time
	l      logger.Logger
}

// NewAssistant accepts a nil remote, in which case every answer is local.
func NewAssistant(remote RemoteAnswerer, local *Responder, cfg AssistantConfig, l logger.Logger) *Assistant {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultRemoteTimeout
	}
	if cfg.HistorySize <= 0 {
		cfg.HistorySize = DefaultHistorySize
	}
	if local == nil {
		local = NewResponder()
	}
	return &Assistant{
		remote: remote,
		local:  local,
		cfg:    cfg,
		now:    time.Now,
		l:      l,
	}
}

// Ask appends the question and the answer to conv and returns the new
// conversation. The input conversation is left untouched.
func (a *Assistant) Ask(ctx context.Context, conv models.Conversation, question string, in AskInput) (models.Conversation, models.Answer, error) {
	ctx = wrap.WithAction(ctx, "ask_assistant")

	question = strings.TrimSpace(question)
	if question == "" {
		return conv, models.Answer{}, types.ErrEmptyQuestion
	}

	conv = conv.Append(types.UserTurn, question, a.now())
	answer := a.answer(ctx, conv, question, in)
	conv = conv.Append(types.AssistantTurn, answer.Text, a.now())

	metrics.AnswersTotal.WithLabelValues(a.cfg.Service, string(answer.Source)).Inc()
	return conv, answer, nil
}

func (a *Assistant) answer(ctx context.Context, conv models.Conversation, question string, in AskInput) models.Answer {
	local := func(reason string) models.Answer {
		return models.Answer{
			Text: a.local.Respond(ResponderInput{
				Question: question,
				Overall:  in.Overall,
				Trips:    in.Trips,
				Distance: in.Distance,
			}),
			Source:         types.SourceLocal,
			FallbackReason: reason,
		}
	}

	if a.remote == nil {
		return local("remote_disabled")
	}

	system, err := BuildSystemPrompt(Summarize(in.Trips, in.Overall, in.Distance))
	if err != nil {
		a.l.Error(ctx, "failed to build system prompt", err)
		return local("encode_summary")
	}

	start := time.Now()
	text, err := a.callRemote(ctx, system, conv.Last(a.cfg.HistorySize))
	metrics.RecordRemoteAnswer(a.cfg.Service, err, time.Since(start))
	if err != nil {
		reason := FallbackReason(err)
		a.l.Warn(wrap.WithAction(ctx, types.ActionRemoteFallback), "remote answer failed, using local responder",
			"reason", reason,
			"error", err.Error(),
		)
		return local(reason)
	}

	return models.Answer{Text: text, Source: types.SourceRemote}
}

// callRemote bounds the collaborator by the configured timeout even if it
// ignores its context, and turns a panic into an error.
func (a *Assistant) callRemote(ctx context.Context, system string, history []models.Turn) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, a.cfg.Timeout)
	defer cancel()

	type result struct {
		text string
		err  error
	}
	ch := make(chan result, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- result{err: types.NewRemoteError("panic", fmt.Errorf("%v", r))}
			}
		}()
		text, err := a.remote.Answer(ctx, system, history)
		ch <- result{text: text, err: err}
	}()

	select {
	case res := <-ch:
		if res.err != nil {
			return "", res.err
		}
		text := strings.TrimSpace(res.text)
		if text == "" {
			return "", types.NewRemoteError("empty_response", nil)
		}
		return text, nil
	case <-ctx.Done():
		return "", types.NewRemoteError("timeout", ctx.Err())
	}
}

// FallbackReason extracts a short label for logs and metrics.
func FallbackReason(err error) string {
	var re *types.RemoteError
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "canceled"
	case errors.As(err, &re):
		return re.Reason
	default:
		return "error"
	}
}
