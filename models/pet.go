package models

import (
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// Species is the closed set of animals the agency accepts.
type Species string

const (
	SpeciesDog    Species = "dog"
	SpeciesCat    Species = "cat"
	SpeciesBird   Species = "bird"
	SpeciesRabbit Species = "rabbit"
	SpeciesOther  Species = "other"
)

// AllSpecies lists the accepted species in menu order.
var AllSpecies = []Species{SpeciesDog, SpeciesCat, SpeciesBird, SpeciesRabbit, SpeciesOther}

const (
	maxPetNameLen = 50
	maxBreedLen   = 50
)

// ParseSpecies accepts any casing and surrounding whitespace.
func ParseSpecies(s string) (Species, error) {
	v := Species(strings.ToLower(strings.TrimSpace(s)))
	for _, sp := range AllSpecies {
		if v == sp {
			return v, nil
		}
	}
	return "", invalid("species", "%q is not one of %s", s, SpeciesChoices())
}

// SpeciesChoices renders the accepted values as "dog/cat/bird/rabbit/other".
func SpeciesChoices() string {
	names := make([]string, len(AllSpecies))
	for i, sp := range AllSpecies {
		names[i] = string(sp)
	}
	return strings.Join(names, "/")
}

// ParseAge turns user input into an age. Blank input means unknown.
func ParseAge(s string) (*int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil, invalid("age", "%q is not a whole number", s)
	}
	if n < 0 {
		return nil, invalid("age", "must not be negative")
	}
	return &n, nil
}

// Pet is a row of the pets table.
type Pet struct {
	ID          int64
	Name        string
	Species     Species
	Breed       string
	Age         *int
	ArrivalDate time.Time
	Adopted     bool
}

// PetInput is what an operator supplies when a pet arrives.
type PetInput struct {
	Name    string
	Species string
	Breed   string
	Age     *int
}

// Validate checks the input and returns the normalized pet, minus the
// fields assigned at insert time.
func (in PetInput) Validate() (Pet, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return Pet{}, invalid("name", "must not be empty")
	}
	if utf8.RuneCountInString(name) > maxPetNameLen {
		return Pet{}, invalid("name", "must be at most %d characters", maxPetNameLen)
	}
	species, err := ParseSpecies(in.Species)
	if err != nil {
		return Pet{}, err
	}
	breed := strings.TrimSpace(in.Breed)
	if utf8.RuneCountInString(breed) > maxBreedLen {
		return Pet{}, invalid("breed", "must be at most %d characters", maxBreedLen)
	}
	if in.Age != nil && *in.Age < 0 {
		return Pet{}, invalid("age", "must not be negative")
	}
	return Pet{
		Name:    name,
		Species: species,
		Breed:   breed,
		Age:     in.Age,
	}, nil
}

// AgeString renders an unknown age as "-".
func (p Pet) AgeString() string {
	if p.Age == nil {
		return "-"
	}
	return strconv.Itoa(*p.Age)
}
