// Package agency implements the adoption agency's operations on top of a
// database.Store: validation, dating of new records and logging.
package agency

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ridoystarlord/petadopt/database"
	"github.com/ridoystarlord/petadopt/loader"
	"github.com/ridoystarlord/petadopt/models"
)

type Service struct {
	store database.Store
	now   func() time.Time
	log   *slog.Logger
}

func NewService(store database.Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		store: store,
		now:   time.Now,
		log:   logger,
	}
}

func (s *Service) today() time.Time {
	return models.DateOf(s.now())
}

// InitSchema creates missing tables. Safe to call repeatedly.
func (s *Service) InitSchema(ctx context.Context) error {
	if err := s.store.Migrate(ctx); err != nil {
		return fmt.Errorf("initialize schema: %w", err)
	}
	s.log.Info("schema initialized")
	return nil
}

// AddPet registers a newly arrived pet as available.
func (s *Service) AddPet(ctx context.Context, in models.PetInput) (models.Pet, error) {
	pet, err := in.Validate()
	if err != nil {
		return models.Pet{}, err
	}
	pet.ArrivalDate = s.today()

	if err := s.store.CreatePet(ctx, &pet); err != nil {
		return models.Pet{}, fmt.Errorf("add pet: %w", err)
	}
	s.log.Info("pet added", "pet_id", pet.ID, "name", pet.Name, "species", pet.Species)
	return pet, nil
}

// RegisterAdopter fails with models.ErrDuplicateEmail when the email is
// already registered.
func (s *Service) RegisterAdopter(ctx context.Context, in models.AdopterInput) (models.Adopter, error) {
	adopter, err := in.Validate()
	if err != nil {
		return models.Adopter{}, err
	}
	adopter.RegistrationDate = s.today()

	if err := s.store.CreateAdopter(ctx, &adopter); err != nil {
		return models.Adopter{}, fmt.Errorf("register adopter: %w", err)
	}
	s.log.Info("adopter registered", "adopter_id", adopter.ID, "name", adopter.Name)
	return adopter, nil
}

// ProcessAdoption hands pet petID to adopter adopterID. It does not tell a
// missing pet apart from an adopted one: both are models.ErrPetUnavailable.
func (s *Service) ProcessAdoption(ctx context.Context, petID, adopterID int64) (models.AdoptionRecord, error) {
	rec, err := s.store.Adopt(ctx, petID, adopterID, s.today())
	if err != nil {
		s.log.Info("adoption rejected", "pet_id", petID, "adopter_id", adopterID, "error", err)
		return models.AdoptionRecord{}, fmt.Errorf("process adoption: %w", err)
	}
	s.log.Info("adoption recorded",
		"adoption_id", rec.ID, "pet_id", petID, "adopter_id", adopterID)
	return rec, nil
}

func (s *Service) ListAvailablePets(ctx context.Context) ([]models.Pet, error) {
	pets, err := s.store.ListAvailablePets(ctx)
	if err != nil {
		return nil, fmt.Errorf("list pets: %w", err)
	}
	return pets, nil
}

func (s *Service) ListAdopters(ctx context.Context) ([]models.Adopter, error) {
	adopters, err := s.store.ListAdopters(ctx)
	if err != nil {
		return nil, fmt.Errorf("list adopters: %w", err)
	}
	return adopters, nil
}

func (s *Service) ListAdoptions(ctx context.Context) ([]models.AdoptionRecord, error) {
	records, err := s.store.ListAdoptions(ctx)
	if err != nil {
		return nil, fmt.Errorf("list adoptions: %w", err)
	}
	return records, nil
}

// SchemaReady reports whether InitSchema has been run.
func (s *Service) SchemaReady(ctx context.Context) (bool, error) {
	return s.store.HasSchema(ctx)
}

func (s *Service) Stats(ctx context.Context) (models.Stats, error) {
	return s.store.Stats(ctx)
}

// SeedFailure is one seed entry that could not be registered.
type SeedFailure struct {
	Kind  string // "pet" or "adopter"
	Index int
	Name  string
	Err   error
}

type SeedResult struct {
	Pets     []models.Pet
	Adopters []models.Adopter
	Failures []SeedFailure
}

// Seed registers every entry through AddPet and RegisterAdopter, each in
// its own transaction. A failed entry is recorded and the rest continue.
func (s *Service) Seed(ctx context.Context, seed loader.Seed) (SeedResult, error) {
	var res SeedResult
	for i, in := range seed.Pets {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		pet, err := s.AddPet(ctx, in)
		if err != nil {
			res.Failures = append(res.Failures, SeedFailure{Kind: "pet", Index: i, Name: in.Name, Err: err})
			continue
		}
		res.Pets = append(res.Pets, pet)
	}
	for i, in := range seed.Adopters {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		adopter, err := s.RegisterAdopter(ctx, in)
		if err != nil {
			res.Failures = append(res.Failures, SeedFailure{Kind: "adopter", Index: i, Name: in.Name, Err: err})
			continue
		}
		res.Adopters = append(res.Adopters, adopter)
	}
	s.log.Info("seed applied",
		"pets", len(res.Pets), "adopters", len(res.Adopters), "failures", len(res.Failures))
	return res, nil
}
