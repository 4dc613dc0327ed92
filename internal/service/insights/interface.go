package insights

import (
	"context"

	"github.com/Temutjin2k/ride-hail-insights/internal/domain/models"
	"github.com/google/uuid"
)

// RemoteAnswerer is the external text-answering collaborator. Any error
// sends the question to the local responder.
type RemoteAnswerer interface {
	Answer(ctx context.Context, system string, history []models.Turn) (string, error)
}

type TripDataset interface {
	Current() (*models.Dataset[models.Trip], error)
}

// SummaryCache returns (nil, nil) on a miss.
type SummaryCache interface {
	Get(ctx context.Context, key string) (*models.Summary, error)
	Set(ctx context.Context, key string, s *models.Summary) error
}

// SessionStore runs Update callbacks one at a time per session.
type SessionStore interface {
	Create(ctx context.Context) (*models.Session, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Session, error)
	Update(ctx context.Context, id uuid.UUID, fn func(s *models.Session) error) error
	Delete(ctx context.Context, id uuid.UUID) error
}
