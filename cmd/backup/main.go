// backup exporta o restaura el respaldo JSON de usuarios y marcaciones
// directamente contra la base de datos, sin pasar por la API.
//
// Uso:
//
//	go run ./cmd/backup export [archivo.json]
//	go run ./cmd/backup import [-latin1] archivo.json
//
// Con -latin1 el archivo se decodifica desde ISO-8859-1 (respaldos editados a
// mano en equipos con esa codificación).
package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"
	_ "time/tzdata"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/asistencia-api/internal/application/backup"
	"github.com/jhoicas/asistencia-api/internal/application/usecase"
	"github.com/jhoicas/asistencia-api/internal/infrastructure/postgres"
	"github.com/jhoicas/asistencia-api/pkg/config"
	"github.com/jhoicas/asistencia-api/pkg/logger"
)

// operatorID identifica al autor de la restauración en los logs.
const operatorID = "cli"

func main() {
	if len(os.Args) < 2 {
		usage()
	}
	cmd, args := os.Args[1], os.Args[2:]

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Output: os.Stderr})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()
	if err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	userRepo := postgres.NewUserRepository(pool)
	uc := backup.NewUseCase(
		userRepo,
		postgres.NewClockEventRepository(pool),
		postgres.NewBackupStore(pool),
		log,
	)

	switch cmd {
	case "export":
		err = runExport(ctx, uc, args)
	case "import":
		err = runImport(ctx, uc, args)
		if err == nil {
			// Las cuentas importadas no traen contraseña.
			_, err = usecase.NewUserUseCase(userRepo, log).EnsureAdmin(ctx, usecase.BootstrapAdmin{
				Name:     cfg.Admin.Name,
				Email:    cfg.Admin.Email,
				Password: cfg.Admin.Password,
			})
		}
	default:
		usage()
	}
	if err != nil {
		log.Error().Err(err).Str("command", cmd).Msg("respaldo fallido")
		pool.Close()
		os.Exit(1)
	}
}

func runExport(ctx context.Context, uc *backup.UseCase, args []string) error {
	data, filename, err := uc.Export(ctx)
	if err != nil {
		return err
	}
	if len(args) > 0 {
		filename = args[0]
	}
	if filename == "-" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(filename, data, 0o600); err != nil {
		return fmt.Errorf("escribir %s: %w", filename, err)
	}
	fmt.Printf("Respaldo escrito en %s (%d bytes)\n", filename, len(data))
	return nil
}

func runImport(ctx context.Context, uc *backup.UseCase, args []string) error {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	latin1 := fs.Bool("latin1", false, "decodificar el archivo desde ISO-8859-1")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		usage()
	}
	data, err := readBackup(fs.Arg(0), *latin1)
	if err != nil {
		return err
	}
	res, err := uc.Import(ctx, operatorID, data)
	if err != nil {
		return err
	}
	fmt.Printf("Importados %d usuarios y %d marcaciones (omitidos: %d usuarios, %d marcaciones sin id)\n",
		res.Users, res.Events, res.SkippedUsers, res.SkippedEvents)
	return nil
}

func readBackup(path string, latin1 bool) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("abrir %s: %w", path, err)
	}
	defer f.Close()

	var r io.Reader = f
	if latin1 {
		r = transform.NewReader(f, charmap.ISO8859_1.NewDecoder())
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		return nil, fmt.Errorf("leer %s: %w", path, err)
	}
	return buf.Bytes(), nil
}

func usage() {
	fmt.Fprintln(os.Stderr, "uso: backup export [archivo.json|-]")
	fmt.Fprintln(os.Stderr, "     backup import [-latin1] archivo.json")
	os.Exit(2)
}
