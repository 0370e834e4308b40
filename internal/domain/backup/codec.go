// Package backup serializa y deserializa el conjunto completo de usuarios y
// marcaciones a un JSON portable:
//
//	{
//	  "exportedAt":   "2026-03-10T15:04:05.000Z",
//	  "users":        [{"id": "...", "name": "...", "email": "...", "role": "...", "isActive": true}],
//	  "time_entries": [{"id": "...", "userId": "...", "timestamp": "ISO-8601", "type": "clock_in", "note": ""}]
//	}
package backup

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/asistencia-api/internal/domain"
	"github.com/jhoicas/asistencia-api/internal/domain/entity"
)

// TimestampLayout ISO-8601 con milisegundos, siempre en UTC.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// UserRecord cuenta tal como viaja en el archivo.
type UserRecord struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	IsActive *bool  `json:"isActive,omitempty"`
}

// EventRecord marcación tal como viaja en el archivo.
type EventRecord struct {
	ID        string `json:"id"`
	UserID    string `json:"userId"`
	Timestamp string `json:"timestamp"`
	Type      string `json:"type"`
	Note      string `json:"note"`
}

// File documento completo de respaldo.
type File struct {
	ExportedAt  string        `json:"exportedAt"`
	Users       []UserRecord  `json:"users"`
	TimeEntries []EventRecord `json:"time_entries"`
}

// Snapshot contenido decodificado y listo para el upsert por ID.
type Snapshot struct {
	ExportedAt    time.Time
	Users         []entity.User
	Events        []entity.ClockEvent
	SkippedUsers  int // registros sin id
	SkippedEvents int
}

// Encode genera el JSON de respaldo. Las credenciales nunca se exportan.
func Encode(users []entity.User, events []entity.ClockEvent, exportedAt time.Time) ([]byte, error) {
	f := File{
		ExportedAt:  FormatTimestamp(exportedAt),
		Users:       make([]UserRecord, 0, len(users)),
		TimeEntries: make([]EventRecord, 0, len(events)),
	}
	for _, u := range users {
		active := u.IsActive
		f.Users = append(f.Users, UserRecord{
			ID:       u.ID,
			Name:     u.Name,
			Email:    u.Email,
			Role:     u.Role,
			IsActive: &active,
		})
	}
	for _, e := range events {
		f.TimeEntries = append(f.TimeEntries, EventRecord{
			ID:        e.ID,
			UserID:    e.UserID,
			Timestamp: FormatTimestamp(e.Timestamp),
			Type:      string(e.Kind),
			Note:      e.Note,
		})
	}
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("backup: serializar: %w", err)
	}
	return data, nil
}

// Decode valida la forma del documento (users y time_entries deben ser
// arreglos) y convierte los registros. Los registros sin id se omiten.
// Cualquier otro problema devuelve domain.ErrInvalidBackup antes de escribir nada.
func Decode(data []byte) (*Snapshot, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return nil, fmt.Errorf("%w: JSON mal formado: %v", domain.ErrInvalidBackup, err)
	}
	rawUsers, err := requireArray(top, "users")
	if err != nil {
		return nil, err
	}
	rawEvents, err := requireArray(top, "time_entries")
	if err != nil {
		return nil, err
	}

	snap := &Snapshot{}
	if raw, ok := top["exportedAt"]; ok {
		var s string
		if json.Unmarshal(raw, &s) == nil {
			if t, err := ParseTimestamp(s); err == nil {
				snap.ExportedAt = t
			}
		}
	}

	var users []UserRecord
	if err := json.Unmarshal(rawUsers, &users); err != nil {
		return nil, fmt.Errorf("%w: users: %v", domain.ErrInvalidBackup, err)
	}
	for _, u := range users {
		if strings.TrimSpace(u.ID) == "" {
			snap.SkippedUsers++
			continue
		}
		role := u.Role
		if !entity.ValidRole(role) {
			role = entity.RoleEmployee
		}
		active := true
		if u.IsActive != nil {
			active = *u.IsActive
		}
		snap.Users = append(snap.Users, entity.User{
			ID:       u.ID,
			Name:     u.Name,
			Email:    u.Email,
			Role:     role,
			IsActive: active,
		})
	}

	var events []EventRecord
	if err := json.Unmarshal(rawEvents, &events); err != nil {
		return nil, fmt.Errorf("%w: time_entries: %v", domain.ErrInvalidBackup, err)
	}
	for _, e := range events {
		if strings.TrimSpace(e.ID) == "" {
			snap.SkippedEvents++
			continue
		}
		ts, err := ParseTimestamp(e.Timestamp)
		if err != nil {
			return nil, fmt.Errorf("%w: time_entries[%s].timestamp: %v", domain.ErrInvalidBackup, e.ID, err)
		}
		kind := entity.ClockKind(e.Type)
		if !kind.Valid() {
			return nil, fmt.Errorf("%w: time_entries[%s].type %q desconocido", domain.ErrInvalidBackup, e.ID, e.Type)
		}
		if e.UserID == "" {
			return nil, fmt.Errorf("%w: time_entries[%s].userId vacío", domain.ErrInvalidBackup, e.ID)
		}
		snap.Events = append(snap.Events, entity.ClockEvent{
			ID:        e.ID,
			UserID:    e.UserID,
			Timestamp: ts,
			Kind:      kind,
			Note:      e.Note,
		})
	}
	return snap, nil
}

// FormatTimestamp instante en ISO-8601 UTC con milisegundos.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// ParseTimestamp acepta cualquier RFC 3339 (con o sin fracción de segundo).
func ParseTimestamp(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}

func requireArray(top map[string]json.RawMessage, key string) (json.RawMessage, error) {
	raw, ok := top[key]
	if !ok {
		return nil, fmt.Errorf("%w: falta el campo %q", domain.ErrInvalidBackup, key)
	}
	if trimmed := bytes.TrimSpace(raw); len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, fmt.Errorf("%w: el campo %q debe ser un arreglo", domain.ErrInvalidBackup, key)
	}
	return raw, nil
}
