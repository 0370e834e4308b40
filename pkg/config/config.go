package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App        AppConfig
	DB         DBConfig
	JWT        JWTConfig
	HTTP       HTTPConfig
	Attendance AttendanceConfig
	Admin      AdminConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
	Timezone string // zona horaria de visualización (IANA), define el día de calendario
}

// Location carga la zona horaria configurada; si no existe cae a UTC.
func (c AppConfig) Location() *time.Location {
	if c.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// DBConfig configuración de PostgreSQL.
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
	MaxConns    int
}

// ConnectionString devuelve el DSN a usar: DATABASE_URL si está definido, si no el construido con DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN devuelve el connection string para PostgreSQL con URL encoding para caracteres especiales.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// JWTConfig configuración de JWT.
// RememberExpiration aplica cuando el usuario pide sesión persistente.
type JWTConfig struct {
	Secret             string
	Expiration         int // minutos
	RememberExpiration int // minutos
	Issuer             string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// AttendanceConfig reglas de asistencia y valores por defecto del lugar de
// trabajo mientras un administrador no guarde la configuración.
type AttendanceConfig struct {
	DefaultLatitude     float64
	DefaultLongitude    float64
	DefaultRadiusMeters float64
	DefaultWorkdayHours float64
	LateHour            int
	EnforceGeofence     bool
}

// AdminConfig cuenta administradora que se crea al arrancar si no existe
// ningún administrador con contraseña. Vacío desactiva el arranque.
type AdminConfig struct {
	Name     string
	Email    string
	Password string
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, DB_HOST, JWT_SECRET, etc.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "asistencia-api"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
			Timezone: getString(v, "APP_TIMEZONE", "America/Bogota"),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "asistencia"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
			MaxConns:    getInt(v, "DB_MAX_CONNS", 10),
		},
		JWT: JWTConfig{
			Secret:             getString(v, "JWT_SECRET", ""),
			Expiration:         getInt(v, "JWT_EXPIRATION_MINUTES", 60),
			RememberExpiration: getInt(v, "JWT_REMEMBER_EXPIRATION_MINUTES", 60*24*30),
			Issuer:             getString(v, "JWT_ISSUER", "asistencia-api"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		Attendance: AttendanceConfig{
			DefaultLatitude:     getFloat(v, "WORKPLACE_DEFAULT_LATITUDE", 0),
			DefaultLongitude:    getFloat(v, "WORKPLACE_DEFAULT_LONGITUDE", 0),
			DefaultRadiusMeters: getFloat(v, "WORKPLACE_DEFAULT_RADIUS_METERS", 100),
			DefaultWorkdayHours: getFloat(v, "WORKPLACE_DEFAULT_WORKDAY_HOURS", 8),
			LateHour:            getInt(v, "ATTENDANCE_LATE_HOUR", 9),
			EnforceGeofence:     getBool(v, "GEOFENCE_ENFORCE", true),
		},
		Admin: AdminConfig{
			Name:     getString(v, "ADMIN_NAME", "Administrador"),
			Email:    getString(v, "ADMIN_EMAIL", ""),
			Password: getString(v, "ADMIN_PASSWORD", ""),
		},
	}
	if cfg.App.Env == "production" && cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("config: JWT_SECRET es obligatorio en producción")
	}
	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case string:
			n, err := strconv.Atoi(strings.TrimSpace(v.GetString(key)))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

func getFloat(v *viper.Viper, key string, def float64) float64 {
	if v.IsSet(key) {
		f, err := strconv.ParseFloat(strings.TrimSpace(v.GetString(key)), 64)
		if err != nil {
			return def
		}
		return f
	}
	return def
}

func getBool(v *viper.Viper, key string, def bool) bool {
	if v.IsSet(key) {
		b, err := strconv.ParseBool(strings.TrimSpace(v.GetString(key)))
		if err != nil {
			return def
		}
		return b
	}
	return def
}
