package models

import (
	"strconv"
	"strings"
	"time"
)

// DateLayout is how calendar dates are printed and stored as text.
const DateLayout = "2006-01-02"

// Adoption links one pet to one adopter. A pet has at most one.
type Adoption struct {
	ID           int64
	PetID        int64
	AdopterID    int64
	AdoptionDate time.Time
}

// AdoptionRecord is an adoption joined with the names it refers to.
type AdoptionRecord struct {
	Adoption
	PetName     string
	AdopterName string
}

// Stats holds table row counts.
type Stats struct {
	Pets          int
	AvailablePets int
	Adopters      int
	Adoptions     int
}

// DateOf drops the clock part of t, keeping the calendar date as seen in
// t's location.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseID reads a record id typed by an operator.
func ParseID(field, s string) (int64, error) {
	s = strings.TrimSpace(s)
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, invalid(field, "%q is not a whole number", s)
	}
	return id, nil
}
