package dto

import "time"

// WorkplaceRequest alta o cambio de la configuración del lugar de trabajo.
type WorkplaceRequest struct {
	Latitude             float64 `json:"latitude" validate:"latitude"`
	Longitude            float64 `json:"longitude" validate:"longitude"`
	AllowedRadiusMeters  float64 `json:"allowed_radius_meters" validate:"gt=0"`
	StandardWorkdayHours float64 `json:"standard_workday_hours" validate:"gt=0,lte=24"`
}

// PositionPolicyDTO cómo debe pedir el cliente la ubicación.
type PositionPolicyDTO struct {
	TimeoutMs    int64 `json:"timeout_ms"`
	HighAccuracy bool  `json:"high_accuracy"`
}

// WorkplaceResponse configuración vigente.
type WorkplaceResponse struct {
	Latitude             float64           `json:"latitude"`
	Longitude            float64           `json:"longitude"`
	AllowedRadiusMeters  float64           `json:"allowed_radius_meters"`
	StandardWorkdayHours float64           `json:"standard_workday_hours"`
	UpdatedAt            *time.Time        `json:"updated_at,omitempty"`
	UpdatedBy            string            `json:"updated_by,omitempty"`
	IsDefault            bool              `json:"is_default"`
	EnforceGeofence      bool              `json:"enforce_geofence"`
	PositionPolicy       PositionPolicyDTO `json:"position_policy"`
}

// GeofenceCheckRequest posición reportada o código de fallo.
type GeofenceCheckRequest struct {
	Latitude      *float64 `json:"latitude" validate:"omitempty,latitude"`
	Longitude     *float64 `json:"longitude" validate:"omitempty,longitude"`
	PositionError string   `json:"position_error" validate:"omitempty,oneof=unsupported permission_denied position_unavailable timeout"`
}

// GeofenceCheckResponse resultado de la verificación.
type GeofenceCheckResponse struct {
	Allowed        bool     `json:"allowed"`
	DistanceMeters *float64 `json:"distance_meters,omitempty"`
	RadiusMeters   float64  `json:"radius_meters"`
	Message        string   `json:"message,omitempty"`
}
