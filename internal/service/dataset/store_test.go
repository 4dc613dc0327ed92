package dataset

import (
	"context"
	"errors"
	"testing"

	"github.com/Temutjin2k/ride-hail-insights/internal/domain/models"
	"github.com/Temutjin2k/ride-hail-insights/internal/domain/types"
	"github.com/Temutjin2k/ride-hail-insights/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sliceLoader struct {
	rows []string
	err  error
}

func (l *sliceLoader) Load(context.Context) ([]string, error) {
	return l.rows, l.err
}

func (l *sliceLoader) Source() string {
	return "memory"
}

type recordingPublisher struct {
	events []models.DatasetReloadedEvent
	err    error
}

func (p *recordingPublisher) PublishReloaded(_ context.Context, e models.DatasetReloadedEvent) error {
	p.events = append(p.events, e)
	return p.err
}

func TestStoreReload(t *testing.T) {
	ctx := context.Background()
	loader := &sliceLoader{rows: []string{"a", "b"}}
	pub := &recordingPublisher{}
	s := NewStore[string]("letters", loader, "test", logger.Nop())
	s.SetPublisher(pub)

	_, err := s.Current()
	assert.ErrorIs(t, err, types.ErrDatasetNotLoaded)

	info, err := s.Reload(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, info.Rows)
	assert.Equal(t, "memory", info.Source)
	assert.Len(t, info.Fingerprint, 16)

	ds, err := s.Current()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, ds.Rows)

	require.Len(t, pub.events, 1)
	assert.Equal(t, "letters", pub.events[0].Dataset)
	assert.Equal(t, info.Fingerprint, pub.events[0].Fingerprint)

	loader.rows = []string{"a", "b", "c"}
	next, err := s.Reload(ctx)
	require.NoError(t, err)
	assert.NotEqual(t, info.Fingerprint, next.Fingerprint)
	assert.Equal(t, []string{"a", "b"}, ds.Rows, "old snapshot is not modified")
}

func TestStoreReloadFailureKeepsSnapshot(t *testing.T) {
	ctx := context.Background()
	loader := &sliceLoader{rows: []string{"a"}}
	s := NewStore[string]("letters", loader, "test", logger.Nop())
	_, err := s.Reload(ctx)
	require.NoError(t, err)

	loader.err = types.ErrMissingColumn
	_, err = s.Reload(ctx)
	assert.ErrorIs(t, err, types.ErrMissingColumn)

	loader.err, loader.rows = nil, nil
	_, err = s.Reload(ctx)
	assert.ErrorIs(t, err, types.ErrEmptyDataset)

	ds, err := s.Current()
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, ds.Rows)
}

func TestStorePublishFailureIsNotFatal(t *testing.T) {
	s := NewStore[string]("letters", &sliceLoader{rows: []string{"a"}}, "test", logger.Nop())
	s.SetPublisher(&recordingPublisher{err: errors.New("broker down")})

	_, err := s.Reload(context.Background())
	assert.NoError(t, err)
}

func TestPublishersFanOut(t *testing.T) {
	ok := &recordingPublisher{}
	failing := &recordingPublisher{err: errors.New("broker down")}
	last := &recordingPublisher{}

	err := Publishers{ok, failing, last}.PublishReloaded(context.Background(), models.DatasetReloadedEvent{Dataset: "trips", Rows: 3})
	require.Error(t, err)
	assert.ErrorContains(t, err, "broker down")
	assert.Len(t, ok.events, 1)
	assert.Len(t, last.events, 1, "a failing publisher must not stop the others")
}
