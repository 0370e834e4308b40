// Package geofence calcula la distancia entre la posición reportada por el
// dispositivo y el lugar de trabajo configurado, y decide si la marcación
// está dentro del radio permitido.
package geofence

import (
	"math"
	"time"

	"github.com/jhoicas/asistencia-api/internal/domain/entity"
)

// EarthRadiusMeters radio medio de la Tierra usado por la fórmula de haversine.
const EarthRadiusMeters = 6371000.0

// Position coordenadas en grados decimales.
type Position struct {
	Latitude  float64
	Longitude float64
}

// Result resultado de la verificación de geocerca.
type Result struct {
	Allowed        bool
	DistanceMeters float64 // redondeado al metro más cercano
	RadiusMeters   float64
}

// PositionPolicy política que el cliente debe usar al pedir la ubicación.
type PositionPolicy struct {
	Timeout      time.Duration
	HighAccuracy bool
}

// DefaultPositionPolicy 10 s de timeout y alta precisión.
var DefaultPositionPolicy = PositionPolicy{Timeout: 10 * time.Second, HighAccuracy: true}

// Distance devuelve la distancia en metros sobre la superficie terrestre (haversine).
func Distance(a, b Position) float64 {
	phi1 := toRadians(a.Latitude)
	phi2 := toRadians(b.Latitude)
	dPhi := toRadians(b.Latitude - a.Latitude)
	dLambda := toRadians(b.Longitude - a.Longitude)

	h := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return EarthRadiusMeters * c
}

// Check compara la posición con el lugar de trabajo.
// Allowed si la distancia (sin redondear) es menor o igual al radio.
func Check(pos Position, cfg entity.WorkplaceConfig) Result {
	d := Distance(pos, Position{Latitude: cfg.Latitude, Longitude: cfg.Longitude})
	return Result{
		Allowed:        d <= cfg.AllowedRadiusMeters,
		DistanceMeters: math.Round(d),
		RadiusMeters:   cfg.AllowedRadiusMeters,
	}
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
