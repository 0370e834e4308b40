package attendance

import (
	"time"

	"github.com/jhoicas/asistencia-api/internal/application/dto"
	"github.com/jhoicas/asistencia-api/internal/domain/attendance"
	"github.com/jhoicas/asistencia-api/internal/domain/entity"
)

func toEventResponse(e entity.ClockEvent) dto.ClockEventResponse {
	return dto.ClockEventResponse{
		ID:        e.ID,
		UserID:    e.UserID,
		Kind:      string(e.Kind),
		Timestamp: e.Timestamp,
		Note:      e.Note,
	}
}

func toEventResponses(events []entity.ClockEvent) []dto.ClockEventResponse {
	out := make([]dto.ClockEventResponse, 0, len(events))
	for _, e := range events {
		out = append(out, toEventResponse(e))
	}
	return out
}

func toRecordDTO(r attendance.AccumulatedRecord, names map[string]string) dto.DailyRecordDTO {
	ids := make([]string, 0, len(r.Events))
	for _, e := range r.Events {
		ids = append(ids, e.ID)
	}
	return dto.DailyRecordDTO{
		UserID:      r.UserID,
		UserName:    names[r.UserID],
		Date:        r.DateKey(),
		ClockIn:     utc(r.ClockIn),
		BreakStart:  utc(r.BreakStart),
		BreakEnd:    utc(r.BreakEnd),
		ClockOut:    utc(r.ClockOut),
		WorkedHours: dto.Hours(r.WorkedHours()),
		Balance:     dto.Hours(r.BalanceHours()),
		Accumulated: dto.Hours(r.AccumulatedHours()),
		Status:      string(r.Status),
		Observation: r.Observation,
		EventIDs:    ids,
	}
}

func kindsToStrings(kinds []entity.ClockKind) []string {
	out := make([]string, 0, len(kinds))
	for _, k := range kinds {
		out = append(out, string(k))
	}
	return out
}

func utc(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
