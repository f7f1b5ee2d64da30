package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	msqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/ridoystarlord/petadopt/models"
)

//go:embed schema.sql
var schemaSQL string

// Store keeps agency records in a single SQLite file.
type Store struct {
	db  *sql.DB
	log *slog.Logger
}

// New opens (creating if needed) the database at path. Every transaction
// starts with BEGIN IMMEDIATE, so writers are serialized at the file lock.
func New(ctx context.Context, path string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if path == "" {
		return nil, errors.New("sqlite path is required")
	}
	if dir := filepath.Dir(filePath(path)); !isMemory(path) && dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("create dirs: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dsn(path))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// One connection: SQLite allows a single writer anyway, and an in-memory
	// database must not be split across connections.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &Store{db: db, log: logger.With("driver", "sqlite")}, nil
}

func isMemory(path string) bool {
	return path == ":memory:" || strings.Contains(path, "mode=memory")
}

// filePath strips the URI form down to the file system path.
func filePath(path string) string {
	path = strings.TrimPrefix(path, "file:")
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	return path
}

func dsn(path string) string {
	const params = "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_txlock=immediate"
	if !strings.HasPrefix(path, "file:") {
		path = "file:" + path
	}
	if strings.Contains(path, "?") {
		return path + "&" + params
	}
	return path + "?" + params
}

func (s *Store) trace(query string, args ...any) {
	s.log.Debug("sql", "query", strings.Join(strings.Fields(query), " "), "args", args)
}

// withTx runs fn in a transaction and commits when it returns nil.
func (s *Store) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin transaction: %w", models.ErrStorageUnavailable, err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (s *Store) Migrate(ctx context.Context) error {
	s.trace(schemaSQL)
	return s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
		return nil
	})
}

func (s *Store) CreatePet(ctx context.Context, pet *models.Pet) error {
	const q = `INSERT INTO pets (name, species, breed, age, arrival_date, adopted)
		VALUES (?, ?, ?, ?, ?, 0)`
	var age sql.NullInt64
	if pet.Age != nil {
		age = sql.NullInt64{Int64: int64(*pet.Age), Valid: true}
	}
	arrival := pet.ArrivalDate.Format(models.DateLayout)
	s.trace(q, pet.Name, pet.Species, pet.Breed, age, arrival)

	return s.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, q, pet.Name, string(pet.Species), pet.Breed, age, arrival)
		if err != nil {
			return fmt.Errorf("insert pet: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("get last insert id: %w", err)
		}
		pet.ID = id
		pet.Adopted = false
		return nil
	})
}

func (s *Store) CreateAdopter(ctx context.Context, a *models.Adopter) error {
	const q = `INSERT INTO adopters (name, email, phone, address, registration_date)
		VALUES (?, ?, ?, ?, ?)`
	registered := a.RegistrationDate.Format(models.DateLayout)
	s.trace(q, a.Name, a.Email, a.Phone, a.Address, registered)

	return s.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, q, a.Name, a.Email, a.Phone, a.Address, registered)
		if err != nil {
			if isUniqueConstraintError(err) {
				return models.ErrDuplicateEmail
			}
			return fmt.Errorf("insert adopter: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("get last insert id: %w", err)
		}
		a.ID = id
		return nil
	})
}

func (s *Store) Adopt(ctx context.Context, petID, adopterID int64, on time.Time) (models.AdoptionRecord, error) {
	rec := models.AdoptionRecord{
		Adoption: models.Adoption{PetID: petID, AdopterID: adopterID, AdoptionDate: models.DateOf(on)},
	}
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		const selectPet = `SELECT name FROM pets WHERE id = ? AND adopted = 0`
		s.trace(selectPet, petID)
		if err := tx.QueryRowContext(ctx, selectPet, petID).Scan(&rec.PetName); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return models.ErrPetUnavailable
			}
			return fmt.Errorf("query pet: %w", err)
		}

		const selectAdopter = `SELECT name FROM adopters WHERE id = ?`
		s.trace(selectAdopter, adopterID)
		if err := tx.QueryRowContext(ctx, selectAdopter, adopterID).Scan(&rec.AdopterName); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return models.ErrAdopterNotFound
			}
			return fmt.Errorf("query adopter: %w", err)
		}

		const flip = `UPDATE pets SET adopted = 1 WHERE id = ? AND adopted = 0`
		s.trace(flip, petID)
		res, err := tx.ExecContext(ctx, flip, petID)
		if err != nil {
			return fmt.Errorf("mark pet adopted: %w", err)
		}
		if n, err := res.RowsAffected(); err != nil {
			return fmt.Errorf("rows affected: %w", err)
		} else if n != 1 {
			return models.ErrPetUnavailable
		}

		const insert = `INSERT INTO adoptions (pet_id, adopter_id, adoption_date) VALUES (?, ?, ?)`
		date := rec.AdoptionDate.Format(models.DateLayout)
		s.trace(insert, petID, adopterID, date)
		res, err = tx.ExecContext(ctx, insert, petID, adopterID, date)
		if err != nil {
			return fmt.Errorf("insert adoption: %w", err)
		}
		rec.ID, err = res.LastInsertId()
		if err != nil {
			return fmt.Errorf("get last insert id: %w", err)
		}
		return nil
	})
	if err != nil {
		return models.AdoptionRecord{}, err
	}
	return rec, nil
}

func (s *Store) ListAvailablePets(ctx context.Context) ([]models.Pet, error) {
	const q = `SELECT id, name, species, COALESCE(breed, ''), age, arrival_date, adopted
		FROM pets WHERE adopted = 0 ORDER BY id`
	s.trace(q)
	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("query pets: %w", err)
	}
	defer rows.Close()

	var pets []models.Pet
	for rows.Next() {
		var (
			p       models.Pet
			species string
			age     sql.NullInt64
			arrival string
		)
		if err := rows.Scan(&p.ID, &p.Name, &species, &p.Breed, &age, &arrival, &p.Adopted); err != nil {
			return nil, fmt.Errorf("scan pet: %w", err)
		}
		p.Species = models.Species(species)
		if age.Valid {
			n := int(age.Int64)
			p.Age = &n
		}
		if p.ArrivalDate, err = parseDate(arrival); err != nil {
			return nil, err
		}
		pets = append(pets, p)
	}
	return pets, rows.Err()
}

func (s *Store) ListAdopters(ctx context.Context) ([]models.Adopter, error) {
	const q = `SELECT id, name, email, COALESCE(phone, ''), COALESCE(address, ''), registration_date
		FROM adopters ORDER BY id`
	s.trace(q)
	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("query adopters: %w", err)
	}
	defer rows.Close()

	var adopters []models.Adopter
	for rows.Next() {
		var (
			a          models.Adopter
			registered string
		)
		if err := rows.Scan(&a.ID, &a.Name, &a.Email, &a.Phone, &a.Address, &registered); err != nil {
			return nil, fmt.Errorf("scan adopter: %w", err)
		}
		if a.RegistrationDate, err = parseDate(registered); err != nil {
			return nil, err
		}
		adopters = append(adopters, a)
	}
	return adopters, rows.Err()
}

func (s *Store) ListAdoptions(ctx context.Context) ([]models.AdoptionRecord, error) {
	const q = `SELECT ad.id, ad.pet_id, ad.adopter_id, ad.adoption_date, p.name, a.name
		FROM adoptions ad
		JOIN pets p ON p.id = ad.pet_id
		JOIN adopters a ON a.id = ad.adopter_id
		ORDER BY ad.id`
	s.trace(q)
	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("query adoptions: %w", err)
	}
	defer rows.Close()

	var records []models.AdoptionRecord
	for rows.Next() {
		var (
			r    models.AdoptionRecord
			date string
		)
		if err := rows.Scan(&r.ID, &r.PetID, &r.AdopterID, &date, &r.PetName, &r.AdopterName); err != nil {
			return nil, fmt.Errorf("scan adoption: %w", err)
		}
		if r.AdoptionDate, err = parseDate(date); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

func (s *Store) Stats(ctx context.Context) (models.Stats, error) {
	const q = `SELECT
		(SELECT COUNT(*) FROM pets),
		(SELECT COUNT(*) FROM pets WHERE adopted = 0),
		(SELECT COUNT(*) FROM adopters),
		(SELECT COUNT(*) FROM adoptions)`
	s.trace(q)
	var st models.Stats
	if err := s.db.QueryRowContext(ctx, q).Scan(&st.Pets, &st.AvailablePets, &st.Adopters, &st.Adoptions); err != nil {
		return models.Stats{}, fmt.Errorf("count rows: %w", err)
	}
	return st, nil
}

func (s *Store) HasSchema(ctx context.Context) (bool, error) {
	const q = `SELECT COUNT(*) FROM sqlite_master
		WHERE type = 'table' AND name IN ('pets', 'adopters', 'adoptions')`
	s.trace(q)
	var n int
	if err := s.db.QueryRowContext(ctx, q).Scan(&n); err != nil {
		return false, fmt.Errorf("%w: inspect schema: %w", models.ErrStorageUnavailable, err)
	}
	return n == 3, nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Close() error {
	return s.db.Close()
}

func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(models.DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return t, nil
}

// isUniqueConstraintError reports a SQLite UNIQUE constraint violation.
func isUniqueConstraintError(err error) bool {
	var se *msqlite.Error
	if !errors.As(err, &se) {
		return false
	}
	if se.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE {
		return true
	}
	return se.Code()&0xff == sqlite3.SQLITE_CONSTRAINT && strings.Contains(se.Error(), "UNIQUE")
}
