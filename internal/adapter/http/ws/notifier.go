package wshandler

import (
	"context"

	"github.com/Temutjin2k/ride-hail-insights/internal/adapter/http/handler/dto"
	"github.com/Temutjin2k/ride-hail-insights/internal/domain/models"
	"github.com/Temutjin2k/ride-hail-insights/pkg/logger"
	ws "github.com/Temutjin2k/ride-hail-insights/pkg/wsHub"
)

// ReloadNotifier tells every open chat that the dataset changed.
type ReloadNotifier struct {
	connections *ws.ConnectionHub
	l           logger.Logger
}

func NewReloadNotifier(connections *ws.ConnectionHub, l logger.Logger) *ReloadNotifier {
	return &ReloadNotifier{connections: connections, l: l}
}

type reloadedFrame struct {
	dto.ChatMessage
	Dataset     string `json:"dataset"`
	Rows        int    `json:"rows"`
	Fingerprint string `json:"fingerprint"`
}

func (n *ReloadNotifier) PublishReloaded(ctx context.Context, event models.DatasetReloadedEvent) error {
	sent := n.connections.Broadcast(reloadedFrame{
		ChatMessage: dto.ChatMessage{Type: dto.ChatDatasetReloaded},
		Dataset:     event.Dataset,
		Rows:        event.Rows,
		Fingerprint: event.Fingerprint,
	})
	n.l.Debug(ctx, "notified chat sockets", "sockets", sent)
	return nil
}
