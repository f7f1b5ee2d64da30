package models

import (
	"strings"
	"time"
	"unicode/utf8"
)

const (
	maxAdopterNameLen = 100
	maxEmailLen       = 100
	maxPhoneLen       = 20
	maxAddressLen     = 200
)

// Adopter is a row of the adopters table. Email is unique.
type Adopter struct {
	ID               int64
	Name             string
	Email            string
	Phone            string
	Address          string
	RegistrationDate time.Time
}

// AdopterInput is what a person supplies when registering interest.
type AdopterInput struct {
	Name    string
	Email   string
	Phone   string
	Address string
}

// Validate trims every field and enforces the column limits. The email is
// only required to be present; its uniqueness is left to storage.
func (in AdopterInput) Validate() (Adopter, error) {
	a := Adopter{
		Name:    strings.TrimSpace(in.Name),
		Email:   strings.TrimSpace(in.Email),
		Phone:   strings.TrimSpace(in.Phone),
		Address: strings.TrimSpace(in.Address),
	}
	if a.Name == "" {
		return Adopter{}, invalid("name", "must not be empty")
	}
	if a.Email == "" {
		return Adopter{}, invalid("email", "must not be empty")
	}
	limits := []struct {
		field string
		value string
		max   int
	}{
		{"name", a.Name, maxAdopterNameLen},
		{"email", a.Email, maxEmailLen},
		{"phone", a.Phone, maxPhoneLen},
		{"address", a.Address, maxAddressLen},
	}
	for _, l := range limits {
		if utf8.RuneCountInString(l.value) > l.max {
			return Adopter{}, invalid(l.field, "must be at most %d characters", l.max)
		}
	}
	return a, nil
}
