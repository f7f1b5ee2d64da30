package database

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ridoystarlord/petadopt/config"
	"github.com/ridoystarlord/petadopt/database/postgres"
	"github.com/ridoystarlord/petadopt/database/sqlite"
	"github.com/ridoystarlord/petadopt/models"
)

// Store is the persistence contract shared by every backend. Mutating
// methods run inside a single transaction that is rolled back on any error.
type Store interface {
	// Migrate creates all tables that do not exist yet.
	Migrate(ctx context.Context) error
	// HasSchema reports whether every agency table exists.
	HasSchema(ctx context.Context) (bool, error)

	CreatePet(ctx context.Context, pet *models.Pet) error
	// CreateAdopter returns models.ErrDuplicateEmail when the email is taken.
	CreateAdopter(ctx context.Context, adopter *models.Adopter) error

	// Adopt records the adoption and marks the pet adopted, or changes
	// nothing. A missing or already adopted pet yields
	// models.ErrPetUnavailable, a missing adopter models.ErrAdopterNotFound.
	Adopt(ctx context.Context, petID, adopterID int64, on time.Time) (models.AdoptionRecord, error)

	ListAvailablePets(ctx context.Context) ([]models.Pet, error)
	ListAdopters(ctx context.Context) ([]models.Adopter, error)
	ListAdoptions(ctx context.Context) ([]models.AdoptionRecord, error)
	Stats(ctx context.Context) (models.Stats, error)

	Ping(ctx context.Context) error
	Close() error
}

// Options selects and tunes a backend.
type Options struct {
	URL      string
	MaxConns int32
	Logger   *slog.Logger
}

// Driver names returned by DriverFor.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// DriverFor picks a backend from the URL scheme and returns the
// driver-specific DSN.
func DriverFor(url string) (driver, dsn string) {
	url = strings.TrimSpace(url)
	if url == "" {
		url = config.DefaultDatabaseURL
	}
	switch {
	case strings.HasPrefix(url, "postgres://"), strings.HasPrefix(url, "postgresql://"):
		return DriverPostgres, url
	case strings.HasPrefix(url, "sqlite:///"):
		return DriverSQLite, strings.TrimPrefix(url, "sqlite:///")
	case strings.HasPrefix(url, "sqlite://"):
		return DriverSQLite, strings.TrimPrefix(url, "sqlite://")
	default:
		return DriverSQLite, url
	}
}

// Open connects to the configured backend and verifies it answers. Failures
// wrap models.ErrStorageUnavailable.
func Open(ctx context.Context, opts Options) (Store, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	driver, dsn := DriverFor(opts.URL)
	logger.Debug("opening store", "driver", driver)

	var (
		store Store
		err   error
	)
	switch driver {
	case DriverPostgres:
		store, err = postgres.New(ctx, dsn, postgres.Options{MaxConns: opts.MaxConns, Logger: logger})
	default:
		store, err = sqlite.New(ctx, dsn, logger)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", models.ErrStorageUnavailable, err)
	}
	return store, nil
}
