package models_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/ridoystarlord/petadopt/models"
)

func TestParseSpecies(t *testing.T) {
	tests := []struct {
		in   string
		want models.Species
	}{
		{"dog", models.SpeciesDog},
		{"  Cat ", models.SpeciesCat},
		{"BIRD", models.SpeciesBird},
		{"rabbit", models.SpeciesRabbit},
		{"other", models.SpeciesOther},
	}
	for _, tt := range tests {
		got, err := models.ParseSpecies(tt.in)
		if err != nil {
			t.Fatalf("ParseSpecies(%q): %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("ParseSpecies(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseSpecies_Rejects(t *testing.T) {
	for _, in := range []string{"", "hamster", "dogs"} {
		_, err := models.ParseSpecies(in)
		if !errors.Is(err, models.ErrInvalidInput) {
			t.Fatalf("ParseSpecies(%q): expected ErrInvalidInput, got %v", in, err)
		}
		var ve *models.ValidationError
		if !errors.As(err, &ve) || ve.Field != "species" {
			t.Fatalf("ParseSpecies(%q): expected species ValidationError, got %v", in, err)
		}
	}
}

func TestParseAge(t *testing.T) {
	age, err := models.ParseAge(" 3 ")
	if err != nil {
		t.Fatalf("ParseAge: %v", err)
	}
	if age == nil || *age != 3 {
		t.Fatalf("expected 3, got %v", age)
	}

	age, err = models.ParseAge("")
	if err != nil {
		t.Fatalf("ParseAge blank: %v", err)
	}
	if age != nil {
		t.Fatalf("expected nil age for blank input, got %d", *age)
	}

	for _, in := range []string{"three", "-1", "2.5"} {
		if _, err := models.ParseAge(in); !errors.Is(err, models.ErrInvalidInput) {
			t.Fatalf("ParseAge(%q): expected ErrInvalidInput, got %v", in, err)
		}
	}
}

func TestPetInput_Validate(t *testing.T) {
	age := 3
	pet, err := models.PetInput{Name: " Rex ", Species: "Dog", Breed: " Labrador ", Age: &age}.Validate()
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if pet.Name != "Rex" || pet.Species != models.SpeciesDog || pet.Breed != "Labrador" {
		t.Fatalf("unexpected normalized pet: %+v", pet)
	}
	if pet.Adopted {
		t.Fatal("new pet must not be adopted")
	}
}

func TestPetInput_Validate_Errors(t *testing.T) {
	negative := -2
	tests := []struct {
		name  string
		in    models.PetInput
		field string
	}{
		{"empty name", models.PetInput{Name: "  ", Species: "dog"}, "name"},
		{"long name", models.PetInput{Name: strings.Repeat("x", 51), Species: "dog"}, "name"},
		{"bad species", models.PetInput{Name: "Rex", Species: "lizard"}, "species"},
		{"long breed", models.PetInput{Name: "Rex", Species: "dog", Breed: strings.Repeat("b", 51)}, "breed"},
		{"negative age", models.PetInput{Name: "Rex", Species: "dog", Age: &negative}, "age"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.in.Validate()
			var ve *models.ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if ve.Field != tt.field {
				t.Fatalf("expected field %q, got %q", tt.field, ve.Field)
			}
		})
	}
}

func TestAdopterInput_Validate(t *testing.T) {
	a, err := models.AdopterInput{Name: " Jo ", Email: " jo@x.com ", Phone: "555", Address: "1 Main St"}.Validate()
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if a.Name != "Jo" || a.Email != "jo@x.com" {
		t.Fatalf("unexpected normalized adopter: %+v", a)
	}

	if _, err := (models.AdopterInput{Name: "Jo"}).Validate(); !errors.Is(err, models.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for missing email, got %v", err)
	}
	if _, err := (models.AdopterInput{Email: "jo@x.com"}).Validate(); !errors.Is(err, models.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for missing name, got %v", err)
	}
	long := models.AdopterInput{Name: "Jo", Email: "jo@x.com", Phone: strings.Repeat("5", 21)}
	if _, err := long.Validate(); !errors.Is(err, models.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for long phone, got %v", err)
	}
}

func TestDateOf(t *testing.T) {
	loc := time.FixedZone("UTC-7", -7*60*60)
	got := models.DateOf(time.Date(2026, 10, 18, 23, 30, 0, 0, loc))
	want := time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("DateOf = %v, want %v", got, want)
	}
}

func TestPet_AgeString(t *testing.T) {
	if got := (models.Pet{}).AgeString(); got != "-" {
		t.Fatalf("expected -, got %q", got)
	}
	age := 7
	if got := (models.Pet{Age: &age}).AgeString(); got != "7" {
		t.Fatalf("expected 7, got %q", got)
	}
}

func TestParseID(t *testing.T) {
	id, err := models.ParseID("pet id", " 42 ")
	if err != nil {
		t.Fatalf("ParseID: %v", err)
	}
	if id != 42 {
		t.Fatalf("expected 42, got %d", id)
	}

	_, err = models.ParseID("pet id", "forty-two")
	var ve *models.ValidationError
	if !errors.As(err, &ve) || ve.Field != "pet id" {
		t.Fatalf("expected pet id ValidationError, got %v", err)
	}
}
