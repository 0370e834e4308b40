package entity

import "time"

// WorkplaceConfig configuración única del lugar de trabajo (geocerca + jornada).
type WorkplaceConfig struct {
	Latitude             float64
	Longitude            float64
	AllowedRadiusMeters  float64
	StandardWorkdayHours float64
	UpdatedAt            time.Time
	UpdatedBy            string
}

// StandardWorkday devuelve la jornada estándar como duración.
func (c WorkplaceConfig) StandardWorkday() time.Duration {
	return time.Duration(c.StandardWorkdayHours * float64(time.Hour))
}
