package models

import "time"

// Dataset is an immutable snapshot of loaded rows.
type Dataset[T any] struct {
	Name        string
	Source      string
	Rows        []T
	LoadedAt    time.Time
	Fingerprint string
}

type DatasetInfo struct {
	Name        string    `json:"name"`
	Source      string    `json:"source"`
	Rows        int       `json:"rows"`
	LoadedAt    time.Time `json:"loaded_at"`
	Fingerprint string    `json:"fingerprint"`
}

func (d *Dataset[T]) Info() DatasetInfo {
	return DatasetInfo{
		Name:        d.Name,
		Source:      d.Source,
		Rows:        len(d.Rows),
		LoadedAt:    d.LoadedAt,
		Fingerprint: d.Fingerprint,
	}
}
