package postgres

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/tracelog"

	"github.com/ridoystarlord/petadopt/models"
)

//go:embed schema.sql
var schemaSQL string

type Options struct {
	MaxConns int32
	Logger   *slog.Logger
}

// Store keeps agency records in Postgres.
type Store struct {
	pool *pgxpool.Pool
}

// New connects a pool and pings it. Every statement is traced to the
// logger at debug level.
func New(ctx context.Context, dsn string, opts Options) (*Store, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres dsn is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse postgres dsn: %w", err)
	}
	cfg.MaxConnLifetime = 30 * time.Minute
	cfg.MaxConnIdleTime = 5 * time.Minute
	if opts.MaxConns > 0 {
		cfg.MaxConns = opts.MaxConns
	}
	cfg.ConnConfig.Tracer = &tracelog.TraceLog{
		Logger:   slogTracer(logger.With("driver", "postgres")),
		LogLevel: tracelog.LogLevelDebug,
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return &Store{pool: pool}, nil
}

func slogTracer(logger *slog.Logger) tracelog.Logger {
	return tracelog.LoggerFunc(func(ctx context.Context, level tracelog.LogLevel, msg string, data map[string]any) {
		lvl := slog.LevelDebug
		switch level {
		case tracelog.LogLevelError:
			lvl = slog.LevelError
		case tracelog.LogLevelWarn:
			lvl = slog.LevelWarn
		case tracelog.LogLevelInfo:
			lvl = slog.LevelInfo
		}
		attrs := make([]any, 0, len(data)*2)
		for k, v := range data {
			attrs = append(attrs, k, v)
		}
		logger.Log(ctx, lvl, msg, attrs...)
	})
}

func (s *Store) withTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%w: begin transaction: %w", models.ErrStorageUnavailable, err)
	}
	defer tx.Rollback(ctx)

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (s *Store) Migrate(ctx context.Context) error {
	return s.withTx(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, schemaSQL); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
		return nil
	})
}

func (s *Store) CreatePet(ctx context.Context, pet *models.Pet) error {
	return s.withTx(ctx, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			INSERT INTO pets (name, species, breed, age, arrival_date, adopted)
			VALUES ($1, $2, $3, $4, $5, FALSE)
			RETURNING id
		`, pet.Name, string(pet.Species), pet.Breed, pet.Age, pet.ArrivalDate).Scan(&pet.ID)
		if err != nil {
			return fmt.Errorf("insert pet: %w", err)
		}
		pet.Adopted = false
		return nil
	})
}

func (s *Store) CreateAdopter(ctx context.Context, a *models.Adopter) error {
	return s.withTx(ctx, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			INSERT INTO adopters (name, email, phone, address, registration_date)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id
		`, a.Name, a.Email, a.Phone, a.Address, a.RegistrationDate).Scan(&a.ID)
		if err != nil {
			if isUniqueViolation(err) {
				return models.ErrDuplicateEmail
			}
			return fmt.Errorf("insert adopter: %w", err)
		}
		return nil
	})
}

// Adopt locks the pet row first. A concurrent adoption of the same pet
// waits on that lock and then sees adopted = true.
func (s *Store) Adopt(ctx context.Context, petID, adopterID int64, on time.Time) (models.AdoptionRecord, error) {
	rec := models.AdoptionRecord{
		Adoption: models.Adoption{PetID: petID, AdopterID: adopterID, AdoptionDate: models.DateOf(on)},
	}
	err := s.withTx(ctx, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			SELECT name FROM pets WHERE id = $1 AND adopted = FALSE FOR UPDATE
		`, petID).Scan(&rec.PetName)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return models.ErrPetUnavailable
			}
			return fmt.Errorf("query pet: %w", err)
		}

		err = tx.QueryRow(ctx, `SELECT name FROM adopters WHERE id = $1`, adopterID).Scan(&rec.AdopterName)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return models.ErrAdopterNotFound
			}
			return fmt.Errorf("query adopter: %w", err)
		}

		tag, err := tx.Exec(ctx, `UPDATE pets SET adopted = TRUE WHERE id = $1 AND adopted = FALSE`, petID)
		if err != nil {
			return fmt.Errorf("mark pet adopted: %w", err)
		}
		if tag.RowsAffected() != 1 {
			return models.ErrPetUnavailable
		}

		err = tx.QueryRow(ctx, `
			INSERT INTO adoptions (pet_id, adopter_id, adoption_date)
			VALUES ($1, $2, $3)
			RETURNING id
		`, petID, adopterID, rec.AdoptionDate).Scan(&rec.ID)
		if err != nil {
			return fmt.Errorf("insert adoption: %w", err)
		}
		return nil
	})
	if err != nil {
		return models.AdoptionRecord{}, err
	}
	return rec, nil
}

func (s *Store) ListAvailablePets(ctx context.Context) ([]models.Pet, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, name, species, COALESCE(breed, ''), age, arrival_date, adopted
		FROM pets
		WHERE adopted = FALSE
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("query pets: %w", err)
	}
	defer rows.Close()

	var pets []models.Pet
	for rows.Next() {
		var (
			p       models.Pet
			species string
		)
		if err := rows.Scan(&p.ID, &p.Name, &species, &p.Breed, &p.Age, &p.ArrivalDate, &p.Adopted); err != nil {
			return nil, fmt.Errorf("scan pet: %w", err)
		}
		p.Species = models.Species(species)
		pets = append(pets, p)
	}
	return pets, rows.Err()
}

func (s *Store) ListAdopters(ctx context.Context) ([]models.Adopter, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, name, email, COALESCE(phone, ''), COALESCE(address, ''), registration_date
		FROM adopters
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("query adopters: %w", err)
	}
	defer rows.Close()

	var adopters []models.Adopter
	for rows.Next() {
		var a models.Adopter
		if err := rows.Scan(&a.ID, &a.Name, &a.Email, &a.Phone, &a.Address, &a.RegistrationDate); err != nil {
			return nil, fmt.Errorf("scan adopter: %w", err)
		}
		adopters = append(adopters, a)
	}
	return adopters, rows.Err()
}

func (s *Store) ListAdoptions(ctx context.Context) ([]models.AdoptionRecord, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT ad.id, ad.pet_id, ad.adopter_id, ad.adoption_date, p.name, a.name
		FROM adoptions ad
		JOIN pets p ON p.id = ad.pet_id
		JOIN adopters a ON a.id = ad.adopter_id
		ORDER BY ad.id
	`)
	if err != nil {
		return nil, fmt.Errorf("query adoptions: %w", err)
	}
	defer rows.Close()

	var records []models.AdoptionRecord
	for rows.Next() {
		var r models.AdoptionRecord
		if err := rows.Scan(&r.ID, &r.PetID, &r.AdopterID, &r.AdoptionDate, &r.PetName, &r.AdopterName); err != nil {
			return nil, fmt.Errorf("scan adoption: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

func (s *Store) Stats(ctx context.Context) (models.Stats, error) {
	var st models.Stats
	err := s.pool.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM pets),
			(SELECT COUNT(*) FROM pets WHERE adopted = FALSE),
			(SELECT COUNT(*) FROM adopters),
			(SELECT COUNT(*) FROM adoptions)
	`).Scan(&st.Pets, &st.AvailablePets, &st.Adopters, &st.Adoptions)
	if err != nil {
		return models.Stats{}, fmt.Errorf("count rows: %w", err)
	}
	return st, nil
}

func (s *Store) HasSchema(ctx context.Context) (bool, error) {
	var n int
	err := s.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM information_schema.tables
		WHERE table_schema = current_schema()
		  AND table_name IN ('pets', 'adopters', 'adoptions')
	`).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("%w: inspect schema: %w", models.ErrStorageUnavailable, err)
	}
	return n == 3, nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *Store) Close() error {
	s.pool.Close()
	return nil
}
