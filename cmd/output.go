package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/ridoystarlord/petadopt/models"
)

var (
	green  = color.New(color.FgGreen, color.Bold)
	red    = color.New(color.FgRed, color.Bold)
	yellow = color.New(color.FgYellow, color.Bold)
	cyan   = color.New(color.FgCyan, color.Bold)
	party  = color.New(color.FgMagenta, color.Bold)
)

func success(w io.Writer, format string, args ...any) {
	green.Fprintf(w, "✅ "+format+"\n", args...)
}

func failure(w io.Writer, format string, args ...any) {
	red.Fprintf(w, "❌ "+format+"\n", args...)
}

func warning(w io.Writer, format string, args ...any) {
	yellow.Fprintf(w, "⚠️  "+format+"\n", args...)
}

// describe turns an operation error into the message shown to the operator.
func describe(err error) string {
	var ve *models.ValidationError
	switch {
	case errors.Is(err, models.ErrDuplicateEmail):
		return "An adopter with this email already exists."
	case errors.Is(err, models.ErrPetUnavailable):
		return "Pet not found or already adopted"
	case errors.Is(err, models.ErrAdopterNotFound):
		return "Adopter not found"
	case errors.As(err, &ve):
		return ve.Error()
	case errors.Is(err, models.ErrStorageUnavailable):
		return fmt.Sprintf("Database unavailable: %v", err)
	default:
		return err.Error()
	}
}

func printPets(w io.Writer, pets []models.Pet) {
	if len(pets) == 0 {
		fmt.Fprintln(w, "😿 No available pets found.")
		return
	}
	cyan.Fprintln(w, "\n🐾 Available Pets 🐾")
	fmt.Fprintln(w, "ID  Name       Species  Breed          Age")
	fmt.Fprintln(w, strings.Repeat("-", 45))
	for _, p := range pets {
		fmt.Fprintf(w, "%3d %-10s %-8s %-14s %s\n", p.ID, p.Name, p.Species, p.Breed, p.AgeString())
	}
}

func printAdopters(w io.Writer, adopters []models.Adopter) {
	if len(adopters) == 0 {
		fmt.Fprintln(w, "🙈 No adopters registered yet.")
		return
	}
	cyan.Fprintln(w, "\n👥 Registered Adopters")
	fmt.Fprintln(w, "ID  Name             Email                   Phone")
	fmt.Fprintln(w, strings.Repeat("-", 57))
	for _, a := range adopters {
		fmt.Fprintf(w, "%3d %-16s %-23s %s\n", a.ID, a.Name, a.Email, a.Phone)
	}
}

func printAdoptions(w io.Writer, records []models.AdoptionRecord) {
	if len(records) == 0 {
		fmt.Fprintln(w, "😢 No adoptions recorded yet.")
		return
	}
	cyan.Fprintln(w, "\n📜 Adoption Records")
	fmt.Fprintln(w, "ID  Pet Name      Adopter Name     Date")
	fmt.Fprintln(w, strings.Repeat("-", 45))
	for _, r := range records {
		fmt.Fprintf(w, "%3d %-13s %-16s %s\n", r.ID, r.PetName, r.AdopterName, r.AdoptionDate.Format(models.DateLayout))
	}
}

func printAdopted(w io.Writer, rec models.AdoptionRecord) {
	party.Fprintf(w, "🎉 Adoption successful! %s adopted %s.\n", rec.AdopterName, rec.PetName)
}
