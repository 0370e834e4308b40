package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/asistencia-api/internal/application/dto"
	"github.com/jhoicas/asistencia-api/internal/domain"
	"github.com/jhoicas/asistencia-api/internal/domain/attendance"
	"github.com/jhoicas/asistencia-api/internal/domain/entity"
	"github.com/jhoicas/asistencia-api/internal/domain/repository"
	"github.com/jhoicas/asistencia-api/pkg/logger"
)

// TimesheetUseCase hoja de tiempos, tablero y exportaciones. Cada lectura
// recalcula los registros diarios desde las marcaciones.
type TimesheetUseCase struct {
	events    repository.ClockEventRepository
	users     repository.UserRepository
	workplace WorkplaceProvider
	renderers map[string]TimesheetRenderer
	lateHour  int
	loc       *time.Location
	log       *logger.Logger
	now       func() time.Time
}

// NewTimesheetUseCase renderers se indexa por formato ("xlsx", "pdf").
func NewTimesheetUseCase(
	events repository.ClockEventRepository,
	users repository.UserRepository,
	workplace WorkplaceProvider,
	renderers map[string]TimesheetRenderer,
	lateHour int,
	loc *time.Location,
	log *logger.Logger,
) *TimesheetUseCase {
	if loc == nil {
		loc = time.Local
	}
	if lateHour <= 0 {
		lateHour = attendance.DefaultLateHour
	}
	return &TimesheetUseCase{
		events:    events,
		users:     users,
		workplace: workplace,
		renderers: renderers,
		lateHour:  lateHour,
		loc:       loc,
		log:       log.Component("timesheet"),
		now:       time.Now,
	}
}

// query resuelto: filtro de dominio más el rango de instantes a leer.
type query struct {
	filter attendance.Filter
	order  attendance.SortOrder
	events repository.ClockEventFilter
}

// resolve valida fechas y permisos. Un empleado solo ve sus propios registros.
func (uc *TimesheetUseCase) resolve(req Requester, q dto.TimesheetQuery) (query, error) {
	var out query
	userID := q.UserID
	if !req.IsAdmin() {
		if userID != "" && userID != req.UserID {
			return out, domain.ErrForbidden
		}
		userID = req.UserID
	}
	out.filter.UserID = userID
	out.events.UserID = userID
	out.order = attendance.ParseSortOrder(q.Order)

	if q.From != "" {
		from, err := attendance.CalendarDay(q.From, uc.loc)
		if err != nil {
			return out, fmt.Errorf("%w: from %q", domain.ErrInvalidInput, q.From)
		}
		out.filter.From = &from
		start := from.AddDate(0, 0, -1)
		out.events.From = &start
	}
	if q.To != "" {
		to, err := attendance.CalendarDay(q.To, uc.loc)
		if err != nil {
			return out, fmt.Errorf("%w: to %q", domain.ErrInvalidInput, q.To)
		}
		out.filter.To = &to
		end := to.AddDate(0, 0, 1)
		out.events.To = &end
	}
	if out.filter.From != nil && out.filter.To != nil && out.filter.To.Before(*out.filter.From) {
		return out, fmt.Errorf("%w: to anterior a from", domain.ErrInvalidInput)
	}
	return out, nil
}

// records lee, agrega, filtra y acumula.
func (uc *TimesheetUseCase) records(ctx context.Context, q query) ([]attendance.AccumulatedRecord, error) {
	cfg, _, err := uc.workplace.Effective(ctx)
	if err != nil {
		return nil, err
	}
	events, err := uc.events.List(ctx, q.events)
	if err != nil {
		return nil, fmt.Errorf("timesheet: listar marcaciones: %w", err)
	}
	daily := q.filter.Apply(attendance.Aggregate(events, cfg.StandardWorkday(), uc.loc))
	return attendance.Accumulate(daily, q.order), nil
}

func (uc *TimesheetUseCase) userNames(ctx context.Context) (map[string]string, error) {
	users, err := uc.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("timesheet: listar usuarios: %w", err)
	}
	names := make(map[string]string, len(users))
	for _, u := range users {
		names[u.ID] = u.Name
	}
	return names, nil
}

// Query registros diarios con banco de horas.
func (uc *TimesheetUseCase) Query(ctx context.Context, req Requester, in dto.TimesheetQuery) (*dto.TimesheetResponse, error) {
	q, err := uc.resolve(req, in)
	if err != nil {
		return nil, err
	}
	recs, err := uc.records(ctx, q)
	if err != nil {
		return nil, err
	}
	names, err := uc.userNames(ctx)
	if err != nil {
		return nil, err
	}
	out := &dto.TimesheetResponse{Records: make([]dto.DailyRecordDTO, 0, len(recs)), Count: len(recs)}
	for _, r := range recs {
		out.Records = append(out.Records, toRecordDTO(r, names))
	}
	return out, nil
}

// Export genera el documento en el formato pedido y su nombre de archivo.
func (uc *TimesheetUseCase) Export(ctx context.Context, req Requester, in dto.TimesheetQuery) (data []byte, filename, contentType string, err error) {
	format := in.Format
	if format == "" {
		format = "xlsx"
	}
	renderer, ok := uc.renderers[format]
	if !ok {
		return nil, "", "", fmt.Errorf("%w: formato %q no soportado", domain.ErrInvalidInput, format)
	}
	q, err := uc.resolve(req, in)
	if err != nil {
		return nil, "", "", err
	}
	recs, err := uc.records(ctx, q)
	if err != nil {
		return nil, "", "", err
	}
	names, err := uc.userNames(ctx)
	if err != nil {
		return nil, "", "", err
	}

	subject := "todos"
	if q.filter.UserID != "" {
		subject = names[q.filter.UserID]
		if subject == "" {
			subject = q.filter.UserID
		}
	}
	doc := TimesheetDocument{
		Title:       "Registro de asistencia",
		Subtitle:    exportSubtitle(subject, in.From, in.To),
		GeneratedAt: uc.now().In(uc.loc),
		Rows:        BuildExportRows(recs, names, uc.loc),
	}
	data, err = renderer.Render(ctx, doc)
	if err != nil {
		uc.log.Error().Err(err).Str("format", format).Msg("no se pudo generar la exportación")
		return nil, "", "", fmt.Errorf("timesheet: exportar %s: %w", format, err)
	}
	uc.log.Info().Str("user_id", req.UserID).Str("format", format).Int("rows", len(doc.Rows)).Msg("hoja de tiempos exportada")
	return data, ExportFilename(subject, in.From, in.To, renderer.Extension()), renderer.ContentType(), nil
}

func exportSubtitle(subject, from, to string) string {
	s := "Empleado: " + subject
	switch {
	case from != "" && to != "":
		s += fmt.Sprintf(" | Del %s al %s", from, to)
	case from != "":
		s += " | Desde " + from
	case to != "":
		s += " | Hasta " + to
	}
	return s
}

// Summary estadísticas del tablero. Un administrador ve a todos los usuarios;
// un empleado solo sus propios registros.
func (uc *TimesheetUseCase) Summary(ctx context.Context, req Requester) (*dto.DashboardSummaryDTO, error) {
	filter := repository.ClockEventFilter{}
	if !req.IsAdmin() {
		filter.UserID = req.UserID
	}

	// Configuración y marcaciones en paralelo.
	type cfgResult struct {
		cfg entity.WorkplaceConfig
		err error
	}
	type eventsResult struct {
		events []entity.ClockEvent
		err    error
	}
	cfgCh := make(chan cfgResult, 1)
	eventsCh := make(chan eventsResult, 1)
	go func() {
		cfg, _, err := uc.workplace.Effective(ctx)
		cfgCh <- cfgResult{cfg, err}
	}()
	go func() {
		events, err := uc.events.List(ctx, filter)
		eventsCh <- eventsResult{events, err}
	}()
	cfgRes := <-cfgCh
	eventsRes := <-eventsCh
	if cfgRes.err != nil {
		return nil, cfgRes.err
	}
	if eventsRes.err != nil {
		return nil, fmt.Errorf("dashboard: listar marcaciones: %w", eventsRes.err)
	}

	now := uc.now()
	workday := cfgRes.cfg.StandardWorkday()
	records := attendance.Aggregate(eventsRes.events, workday, uc.loc)
	s := attendance.Summarize(records, eventsRes.events, attendance.SummaryOptions{
		StandardWorkday: workday,
		LateHour:        uc.lateHour,
		Now:             now,
		Location:        uc.loc,
	})
	return &dto.DashboardSummaryDTO{
		MonthWorkedHours:   dto.Hours(s.MonthWorked.Hours()),
		TotalBalanceHours:  dto.Hours(s.TotalBalance.Hours()),
		MonthOvertimeHours: dto.Hours(s.MonthOvertime.Hours()),
		LateArrivals:       s.LateArrivals,
		CurrentlyWorking:   s.CurrentlyWorking,
		MonthRecords:       s.MonthRecords,
		MonthLabel:         now.In(uc.loc).Format("2006-01"),
	}, nil
}
