// Package storetest holds the behavioural contract every database.Store
// backend must satisfy.
package storetest

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/ridoystarlord/petadopt/database"
	"github.com/ridoystarlord/petadopt/models"
)

// Opener returns an empty store that has not been migrated yet. Each call
// must yield independent state.
type Opener func(t *testing.T) database.Store

var today = time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC)

// Run executes the full contract against stores produced by open.
func Run(t *testing.T, open Opener) {
	t.Helper()

	tests := []struct {
		name string
		fn   func(t *testing.T, s database.Store)
	}{
		{"MigrateIdempotent", testMigrateIdempotent},
		{"HasSchema", testHasSchema},
		{"CreatePet", testCreatePet},
		{"CreatePetUnknownAge", testCreatePetUnknownAge},
		{"CreateAdopter", testCreateAdopter},
		{"CreateAdopterDuplicateEmail", testCreateAdopterDuplicateEmail},
		{"Adopt", testAdopt},
		{"AdoptTwice", testAdoptTwice},
		{"AdoptMissingPet", testAdoptMissingPet},
		{"AdoptMissingAdopter", testAdoptMissingAdopter},
		{"AdoptConcurrent", testAdoptConcurrent},
		{"ListAvailablePetsExcludesAdopted", testListAvailablePetsExcludesAdopted},
		{"ListAdopters", testListAdopters},
		{"Scenario", testScenario},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := open(t)
			t.Cleanup(func() { s.Close() })
			if err := s.Migrate(context.Background()); err != nil {
				t.Fatalf("Migrate: %v", err)
			}
			tt.fn(t, s)
		})
	}
}

func intPtr(n int) *int { return &n }

func mustPet(t *testing.T, s database.Store, name string, species models.Species) models.Pet {
	t.Helper()
	p := models.Pet{Name: name, Species: species, Breed: "mixed", Age: intPtr(2), ArrivalDate: today}
	if err := s.CreatePet(context.Background(), &p); err != nil {
		t.Fatalf("CreatePet %s: %v", name, err)
	}
	return p
}

func mustAdopter(t *testing.T, s database.Store, name, email string) models.Adopter {
	t.Helper()
	a := models.Adopter{Name: name, Email: email, Phone: "555-0100", Address: "1 Main St", RegistrationDate: today}
	if err := s.CreateAdopter(context.Background(), &a); err != nil {
		t.Fatalf("CreateAdopter %s: %v", email, err)
	}
	return a
}

func mustStats(t *testing.T, s database.Store) models.Stats {
	t.Helper()
	st, err := s.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	return st
}

func testMigrateIdempotent(t *testing.T, s database.Store) {
	ctx := context.Background()
	mustPet(t, s, "Rex", models.SpeciesDog)

	if err := s.Migrate(ctx); err != nil {
		t.Fatalf("second Migrate: %v", err)
	}
	if st := mustStats(t, s); st.Pets != 1 {
		t.Fatalf("expected existing rows to survive Migrate, got %d pets", st.Pets)
	}
}

func testHasSchema(t *testing.T, s database.Store) {
	ready, err := s.HasSchema(context.Background())
	if err != nil {
		t.Fatalf("HasSchema: %v", err)
	}
	if !ready {
		t.Fatal("expected schema to be reported after Migrate")
	}
}

func testCreatePet(t *testing.T, s database.Store) {
	first := mustPet(t, s, "Rex", models.SpeciesDog)
	second := mustPet(t, s, "Tom", models.SpeciesCat)

	if first.ID == 0 || second.ID == 0 {
		t.Fatal("expected ids to be assigned")
	}
	if first.ID == second.ID {
		t.Fatalf("expected distinct ids, both were %d", first.ID)
	}
	if first.Adopted || second.Adopted {
		t.Fatal("new pets must not be adopted")
	}

	pets, err := s.ListAvailablePets(context.Background())
	if err != nil {
		t.Fatalf("ListAvailablePets: %v", err)
	}
	if len(pets) != 2 {
		t.Fatalf("expected 2 pets, got %d", len(pets))
	}
	got := pets[0]
	if got.ID != first.ID || got.Name != "Rex" || got.Species != models.SpeciesDog || got.Breed != "mixed" {
		t.Fatalf("unexpected pet: %+v", got)
	}
	if got.Age == nil || *got.Age != 2 {
		t.Fatalf("expected age 2, got %v", got.Age)
	}
	if !got.ArrivalDate.Equal(today) {
		t.Fatalf("expected arrival %v, got %v", today, got.ArrivalDate)
	}
}

func testCreatePetUnknownAge(t *testing.T, s database.Store) {
	p := models.Pet{Name: "Tweety", Species: models.SpeciesBird, ArrivalDate: today}
	if err := s.CreatePet(context.Background(), &p); err != nil {
		t.Fatalf("CreatePet: %v", err)
	}
	pets, err := s.ListAvailablePets(context.Background())
	if err != nil {
		t.Fatalf("ListAvailablePets: %v", err)
	}
	if len(pets) != 1 || pets[0].Age != nil || pets[0].Breed != "" {
		t.Fatalf("expected one pet with unknown age and no breed, got %+v", pets)
	}
}

func testCreateAdopter(t *testing.T, s database.Store) {
	a := mustAdopter(t, s, "Jo", "jo@x.com")
	if a.ID == 0 {
		t.Fatal("expected adopter id to be assigned")
	}
	b := mustAdopter(t, s, "Sam", "sam@x.com")
	if a.ID == b.ID {
		t.Fatalf("expected distinct ids, both were %d", a.ID)
	}
}

func testCreateAdopterDuplicateEmail(t *testing.T, s database.Store) {
	mustAdopter(t, s, "Jo", "jo@x.com")
	before := mustStats(t, s)

	dup := models.Adopter{Name: "Other Jo", Email: "jo@x.com", RegistrationDate: today}
	err := s.CreateAdopter(context.Background(), &dup)
	if !errors.Is(err, models.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
	if after := mustStats(t, s); after.Adopters != before.Adopters {
		t.Fatalf("expected %d adopters after failed insert, got %d", before.Adopters, after.Adopters)
	}
}

func testAdopt(t *testing.T, s database.Store) {
	ctx := context.Background()
	pet := mustPet(t, s, "Rex", models.SpeciesDog)
	adopter := mustAdopter(t, s, "Jo", "jo@x.com")

	rec, err := s.Adopt(ctx, pet.ID, adopter.ID, today.Add(15*time.Hour))
	if err != nil {
		t.Fatalf("Adopt: %v", err)
	}
	if rec.ID == 0 {
		t.Fatal("expected adoption id to be assigned")
	}
	if rec.PetName != "Rex" || rec.AdopterName != "Jo" {
		t.Fatalf("unexpected names: %q / %q", rec.PetName, rec.AdopterName)
	}
	if !rec.AdoptionDate.Equal(today) {
		t.Fatalf("expected adoption date %v, got %v", today, rec.AdoptionDate)
	}

	st := mustStats(t, s)
	if st.Adoptions != 1 || st.AvailablePets != 0 || st.Pets != 1 {
		t.Fatalf("unexpected stats after adoption: %+v", st)
	}

	records, err := s.ListAdoptions(ctx)
	if err != nil {
		t.Fatalf("ListAdoptions: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 adoption, got %d", len(records))
	}
	if records[0].PetID != pet.ID || records[0].AdopterID != adopter.ID {
		t.Fatalf("adoption references pet %d adopter %d, want %d/%d",
			records[0].PetID, records[0].AdopterID, pet.ID, adopter.ID)
	}
}

func testAdoptTwice(t *testing.T, s database.Store) {
	ctx := context.Background()
	pet := mustPet(t, s, "Rex", models.SpeciesDog)
	jo := mustAdopter(t, s, "Jo", "jo@x.com")
	sam := mustAdopter(t, s, "Sam", "sam@x.com")

	if _, err := s.Adopt(ctx, pet.ID, jo.ID, today); err != nil {
		t.Fatalf("first Adopt: %v", err)
	}
	_, err := s.Adopt(ctx, pet.ID, sam.ID, today)
	if !errors.Is(err, models.ErrPetUnavailable) {
		t.Fatalf("expected ErrPetUnavailable, got %v", err)
	}
	if st := mustStats(t, s); st.Adoptions != 1 {
		t.Fatalf("expected 1 adoption, got %d", st.Adoptions)
	}
}

func testAdoptMissingPet(t *testing.T, s database.Store) {
	adopter := mustAdopter(t, s, "Jo", "jo@x.com")

	_, err := s.Adopt(context.Background(), 4242, adopter.ID, today)
	if !errors.Is(err, models.ErrPetUnavailable) {
		t.Fatalf("expected ErrPetUnavailable, got %v", err)
	}
	if st := mustStats(t, s); st.Adoptions != 0 {
		t.Fatalf("expected no adoptions, got %d", st.Adoptions)
	}
}

func testAdoptMissingAdopter(t *testing.T, s database.Store) {
	pet := mustPet(t, s, "Rex", models.SpeciesDog)

	_, err := s.Adopt(context.Background(), pet.ID, 4242, today)
	if !errors.Is(err, models.ErrAdopterNotFound) {
		t.Fatalf("expected ErrAdopterNotFound, got %v", err)
	}
	st := mustStats(t, s)
	if st.Adoptions != 0 {
		t.Fatalf("expected no adoptions, got %d", st.Adoptions)
	}
	if st.AvailablePets != 1 {
		t.Fatalf("expected pet to stay available, got %d available", st.AvailablePets)
	}
}

func testAdoptConcurrent(t *testing.T, s database.Store) {
	const contenders = 8
	pet := mustPet(t, s, "Rex", models.SpeciesDog)
	adopters := make([]models.Adopter, contenders)
	for i := range adopters {
		adopters[i] = mustAdopter(t, s, "Adopter", "adopter"+string(rune('a'+i))+"@x.com")
	}

	var (
		wg          sync.WaitGroup
		mu          sync.Mutex
		wins        int
		unavailable int
		others      []error
	)
	for _, a := range adopters {
		wg.Add(1)
		go func(adopterID int64) {
			defer wg.Done()
			_, err := s.Adopt(context.Background(), pet.ID, adopterID, today)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				wins++
			case errors.Is(err, models.ErrPetUnavailable):
				unavailable++
			default:
				others = append(others, err)
			}
		}(a.ID)
	}
	wg.Wait()

	if len(others) > 0 {
		t.Fatalf("unexpected errors: %v", others)
	}
	if wins != 1 || unavailable != contenders-1 {
		t.Fatalf("expected 1 winner and %d unavailable, got %d and %d", contenders-1, wins, unavailable)
	}
	if st := mustStats(t, s); st.Adoptions != 1 {
		t.Fatalf("expected exactly 1 adoption row, got %d", st.Adoptions)
	}
}

func testListAvailablePetsExcludesAdopted(t *testing.T, s database.Store) {
	ctx := context.Background()
	rex := mustPet(t, s, "Rex", models.SpeciesDog)
	tom := mustPet(t, s, "Tom", models.SpeciesCat)
	jo := mustAdopter(t, s, "Jo", "jo@x.com")

	if _, err := s.Adopt(ctx, rex.ID, jo.ID, today); err != nil {
		t.Fatalf("Adopt: %v", err)
	}

	pets, err := s.ListAvailablePets(ctx)
	if err != nil {
		t.Fatalf("ListAvailablePets: %v", err)
	}
	if len(pets) != 1 || pets[0].ID != tom.ID {
		t.Fatalf("expected only Tom to be available, got %+v", pets)
	}
	for _, p := range pets {
		if p.Adopted {
			t.Fatalf("listed pet %d is adopted", p.ID)
		}
	}
}

func testListAdopters(t *testing.T, s database.Store) {
	mustAdopter(t, s, "Jo", "jo@x.com")
	mustAdopter(t, s, "Sam", "sam@x.com")

	adopters, err := s.ListAdopters(context.Background())
	if err != nil {
		t.Fatalf("ListAdopters: %v", err)
	}
	if len(adopters) != 2 {
		t.Fatalf("expected 2 adopters, got %d", len(adopters))
	}
	a := adopters[0]
	if a.Name != "Jo" || a.Email != "jo@x.com" || a.Phone != "555-0100" || a.Address != "1 Main St" {
		t.Fatalf("unexpected adopter: %+v", a)
	}
	if !a.RegistrationDate.Equal(today) {
		t.Fatalf("expected registration %v, got %v", today, a.RegistrationDate)
	}
}

// testScenario walks the Rex and Jo example end to end on a fresh store.
func testScenario(t *testing.T, s database.Store) {
	ctx := context.Background()

	rex := models.Pet{Name: "Rex", Species: models.SpeciesDog, Age: intPtr(3), ArrivalDate: today}
	if err := s.CreatePet(ctx, &rex); err != nil {
		t.Fatalf("CreatePet: %v", err)
	}
	if rex.ID != 1 || rex.Adopted {
		t.Fatalf("expected pet id 1 unadopted, got id %d adopted=%v", rex.ID, rex.Adopted)
	}

	jo := models.Adopter{Name: "Jo", Email: "jo@x.com", RegistrationDate: today}
	if err := s.CreateAdopter(ctx, &jo); err != nil {
		t.Fatalf("CreateAdopter: %v", err)
	}
	if jo.ID != 1 {
		t.Fatalf("expected adopter id 1, got %d", jo.ID)
	}

	rec, err := s.Adopt(ctx, 1, 1, today)
	if err != nil {
		t.Fatalf("Adopt: %v", err)
	}
	if rec.ID != 1 {
		t.Fatalf("expected adoption id 1, got %d", rec.ID)
	}

	pets, err := s.ListAvailablePets(ctx)
	if err != nil {
		t.Fatalf("ListAvailablePets: %v", err)
	}
	if len(pets) != 0 {
		t.Fatalf("expected no available pets, got %d", len(pets))
	}

	records, err := s.ListAdoptions(ctx)
	if err != nil {
		t.Fatalf("ListAdoptions: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 adoption record, got %d", len(records))
	}
	r := records[0]
	if r.PetName != "Rex" || r.AdopterName != "Jo" || !r.AdoptionDate.Equal(today) {
		t.Fatalf("unexpected record: %+v", r)
	}
}
