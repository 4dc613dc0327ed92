package insights

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/Temutjin2k/ride-hail-insights/internal/domain/models"
	"github.com/Temutjin2k/ride-hail-insights/internal/domain/types"
	"github.com/Temutjin2k/ride-hail-insights/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type remoteFunc func(ctx context.Context, system string, history []models.Turn) (string, error)

func (f remoteFunc) Answer(ctx context.Context, system string, history []models.Turn) (string, error) {
	return f(ctx, system, history)
}

func newTestAssistant(remote RemoteAnswerer, timeout time.Duration) *Assistant {
	return NewAssistant(remote, NewResponder(), AssistantConfig{Service: "test", Timeout: timeout}, logger.Nop())
}

func scenarioInput() AskInput {
	trips := scenarioTrips()
	return AskInput{Trips: trips, Overall: Aggregate(trips), Distance: models.DistanceRange{Max: 25.5}}
}

func TestAskRemoteTimeoutFallsBackToLocal(t *testing.T) {
	remote := remoteFunc(func(ctx context.Context, _ string, _ []models.Turn) (string, error) {
		<-ctx.Done()
		return "", ctx.Err()
	})
	a := newTestAssistant(remote, 20*time.Millisecond)

	conv, answer, err := a.Ask(context.Background(), models.Conversation{}, "What is the fulfillment rate?", scenarioInput())
	require.NoError(t, err)

	assert.Equal(t, types.SourceLocal, answer.Source)
	assert.Equal(t, "timeout", answer.FallbackReason)
	assert.Equal(t, "The overall fulfillment rate is 62.50%, based on 5 trips, 2 driver cancellations and 1 rider cancellations.", answer.Text)

	turns := conv.Turns()
	require.Len(t, turns, 2)
	assert.Equal(t, types.UserTurn, turns[0].Role)
	assert.Equal(t, "What is the fulfillment rate?", turns[0].Text)
	assert.Equal(t, types.AssistantTurn, turns[1].Role)
	assert.Equal(t, answer.Text, turns[1].Text)
}

func TestAskRemoteIgnoringContextIsStillBounded(t *testing.T) {
	release := make(chan struct{})
	defer close(release)

	remote := remoteFunc(func(context.Context, string, []models.Turn) (string, error) {
		<-release
		return "late", nil
	})
	a := newTestAssistant(remote, 20*time.Millisecond)

	start := time.Now()
	_, answer, err := a.Ask(context.Background(), models.Conversation{}, "summary", scenarioInput())
	require.NoError(t, err)
	assert.Less(t, time.Since(start), 2*time.Second)
	assert.Equal(t, types.SourceLocal, answer.Source)
	assert.Contains(t, answer.Text, "- Total requests: 8")
}

func TestAskRemoteFailures(t *testing.T) {
	tests := []struct {
		name   string
		remote remoteFunc
		reason string
	}{
		{
			name: "transport error",
			remote: func(context.Context, string, []models.Turn) (string, error) {
				return "", errors.New("connection refused")
			},
			reason: "error",
		},
		{
			name: "classified error",
			remote: func(context.Context, string, []models.Turn) (string, error) {
				return "", types.NewRemoteError("http_503", errors.New("service unavailable"))
			},
			reason: "http_503",
		},
		{
			name: "empty answer",
			remote: func(context.Context, string, []models.Turn) (string, error) {
				return "   ", nil
			},
			reason: "empty_response",
		},
		{
			name: "panic",
			remote: func(context.Context, string, []models.Turn) (string, error) {
				panic("boom")
			},
			reason: "panic",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			remote := remoteFunc(func(ctx context.Context, s string, h []models.Turn) (string, error) {
				calls++
				return tt.remote(ctx, s, h)
			})
			a := newTestAssistant(remote, time.Second)

			conv, answer, err := a.Ask(context.Background(), models.Conversation{}, "acceptance", scenarioInput())
			require.NoError(t, err)
			assert.Equal(t, 1, calls, "remote must not be retried")
			assert.Equal(t, types.SourceLocal, answer.Source)
			assert.Equal(t, tt.reason, answer.FallbackReason)
			assert.Equal(t, "The overall acceptance rate is 62.50%, based on 5 trips and 0 timeouts.", answer.Text)
			assert.Equal(t, 2, conv.Len())
		})
	}
}

func TestAskRemoteSuccess(t *testing.T) {
	var (
		gotSystem  string
		gotHistory []models.Turn
	)
	remote := remoteFunc(func(_ context.Context, system string, history []models.Turn) (string, error) {
		gotSystem, gotHistory = system, history
		return "  Region B leads.  ", nil
	})
	a := newTestAssistant(remote, time.Second)

	conv := models.Conversation{}
	for i := range 6 {
		conv = conv.Append(types.UserTurn, fmt.Sprintf("q%d", i), time.Now())
		conv = conv.Append(types.AssistantTurn, fmt.Sprintf("a%d", i), time.Now())
	}

	next, answer, err := a.Ask(context.Background(), conv, "Which region is best?", scenarioInput())
	require.NoError(t, err)

	assert.Equal(t, models.Answer{Text: "Region B leads.", Source: types.SourceRemote}, answer)
	assert.Contains(t, gotSystem, `"overall_kpis"`)

	require.Len(t, gotHistory, DefaultHistorySize)
	assert.Equal(t, "Which region is best?", gotHistory[len(gotHistory)-1].Text)
	assert.Equal(t, "a1", gotHistory[0].Text)

	assert.Equal(t, 12, conv.Len(), "input conversation is not modified")
	assert.Equal(t, 14, next.Len())
}

func TestAskWithoutRemote(t *testing.T) {
	a := newTestAssistant(nil, 0)

	_, answer, err := a.Ask(context.Background(), models.Conversation{}, "distance?", scenarioInput())
	require.NoError(t, err)
	assert.Equal(t, types.SourceLocal, answer.Source)
	assert.Equal(t, "remote_disabled", answer.FallbackReason)
	assert.Equal(t, "The current distance filter is 0.0 to 25.5 km.", answer.Text)
}

func TestAskEmptyQuestion(t *testing.T) {
	a := newTestAssistant(nil, 0)

	conv, _, err := a.Ask(context.Background(), models.Conversation{}, "   ", scenarioInput())
	assert.ErrorIs(t, err, types.ErrEmptyQuestion)
	assert.Zero(t, conv.Len())
}

func TestFallbackReason(t *testing.T) {
	assert.Equal(t, "timeout", FallbackReason(fmt.Errorf("wrapped: %w", context.DeadlineExceeded)))
	assert.Equal(t, "timeout", FallbackReason(types.NewRemoteError("http_request", context.DeadlineExceeded)))
	assert.Equal(t, "canceled", FallbackReason(context.Canceled))
	assert.Equal(t, "decode_response", FallbackReason(types.NewRemoteError("decode_response", nil)))
	assert.ErrorIs(t, types.NewRemoteError("x", nil), types.ErrRemoteUnavailable)
}
