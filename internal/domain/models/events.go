package models

import "time"

// RabbitMQ message: dataset reloaded → <dashboard_topic> exchange, key dataset.reloaded.<name>
type DatasetReloadedEvent struct {
	Dataset     string    `json:"dataset"`
	Source      string    `json:"source"`
	Rows        int       `json:"rows"`
	Fingerprint string    `json:"fingerprint"`
	LoadedAt    time.Time `json:"loaded_at"`
}

// RabbitMQ message: reload request → <dashboard_topic> exchange, key dataset.reload.<name>
type ReloadRequest struct {
	Dataset       string    `json:"dataset"`
	RequestedBy   string    `json:"requested_by,omitempty"`
	RequestedAt   time.Time `json:"requested_at"`
	CorrelationID string    `json:"correlation_id,omitempty"`
}
