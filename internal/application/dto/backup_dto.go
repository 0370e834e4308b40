package dto

import "time"

// BackupImportResult resumen de una restauración.
type BackupImportResult struct {
	Users         int       `json:"users"`
	Events        int       `json:"time_entries"`
	SkippedUsers  int       `json:"skipped_users"`
	SkippedEvents int       `json:"skipped_time_entries"`
	ExportedAt    time.Time `json:"exported_at,omitempty"`
}
