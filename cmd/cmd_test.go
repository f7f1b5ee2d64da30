package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ridoystarlord/petadopt/models"
)

// run executes the root command the way main does, capturing all output.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func testDatabaseURL(t *testing.T) string {
	t.Helper()
	return "sqlite:///" + filepath.Join(t.TempDir(), "cli.db")
}

func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := run(t, "", args...)
	if err != nil {
		t.Fatalf("%s: %v\n%s", strings.Join(args, " "), err, out)
	}
	return out
}

func assertContains(t *testing.T, out, want string) {
	t.Helper()
	if !strings.Contains(out, want) {
		t.Fatalf("expected output to contain %q, got:\n%s", want, out)
	}
}

func TestCommands_AdoptionScenario(t *testing.T) {
	db := "--database-url=" + testDatabaseURL(t)

	assertContains(t, mustRun(t, "init", db), "Database initialized successfully!")

	out := mustRun(t, "pet", "add", db, "--name", "Rex", "--species", "dog", "--breed", "Labrador", "--age", "3")
	assertContains(t, out, "Pet Rex added successfully with ID 1!")

	out = mustRun(t, "adopter", "register", db, "--name", "Jo", "--email", "jo@x.com", "--phone", "555-0100", "--address", "1 Main St")
	assertContains(t, out, "Adopter Jo registered successfully with ID 1!")

	_, err := run(t, "", "adopter", "register", db, "--name", "Jo Two", "--email", "jo@x.com", "--phone", "", "--address", "")
	if !errors.Is(err, models.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
	if got := describe(err); got != "An adopter with this email already exists." {
		t.Fatalf("unexpected duplicate message %q", got)
	}

	assertContains(t, mustRun(t, "adopter", "list", db), "jo@x.com")
	assertContains(t, mustRun(t, "pet", "list", db), "Rex")

	assertContains(t, mustRun(t, "adopt", db, "1", "1"), "Adoption successful! Jo adopted Rex.")

	_, err = run(t, "", "adopt", db, "1", "1")
	if !errors.Is(err, models.ErrPetUnavailable) {
		t.Fatalf("expected ErrPetUnavailable, got %v", err)
	}

	assertContains(t, mustRun(t, "pet", "list", db), "No available pets found.")

	out = mustRun(t, "adoption", "list", db)
	today := models.DateOf(time.Now()).Format(models.DateLayout)
	for _, want := range []string{"Rex", "Jo", today} {
		assertContains(t, out, want)
	}
}

func TestCommands_ValidationErrors(t *testing.T) {
	db := "--database-url=" + testDatabaseURL(t)
	mustRun(t, "init", db)

	_, err := run(t, "", "pet", "add", db, "--name", "Rex", "--species", "lizard", "--breed", "", "--age", "")
	if !errors.Is(err, models.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for species, got %v", err)
	}
	_, err = run(t, "", "pet", "add", db, "--name", "Rex", "--species", "dog", "--breed", "", "--age", "three")
	if !errors.Is(err, models.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for age, got %v", err)
	}
	_, err = run(t, "", "adopt", db, "one", "1")
	if !errors.Is(err, models.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for pet id, got %v", err)
	}

	_, err = run(t, "", "pet", "add", db, "--name", "Rex", "--species", "dog", "--breed", "", "--age", "")
	if err != nil {
		t.Fatalf("pet add: %v", err)
	}
	_, err = run(t, "", "adopt", db, "1", "99")
	if !errors.Is(err, models.ErrAdopterNotFound) {
		t.Fatalf("expected ErrAdopterNotFound, got %v", err)
	}
	assertContains(t, mustRun(t, "pet", "list", db), "Rex")
}

func TestCommands_Health(t *testing.T) {
	db := "--database-url=" + testDatabaseURL(t)

	assertContains(t, mustRun(t, "health", "--timeout=5s", db), "agency tables were not found")

	mustRun(t, "init", db)
	out := mustRun(t, "health", "--timeout=5s", db)
	assertContains(t, out, "Database is healthy and accessible")
	assertContains(t, out, "0 pets (0 available), 0 adopters, 0 adoptions")
}

func TestCommands_HealthReportsStorageFailures(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garbage.db")
	if err := os.WriteFile(path, bytes.Repeat([]byte("not a database "), 512), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	out, err := run(t, "", "health", "--timeout=5s", "--database-url=sqlite:///"+path)
	if err == nil {
		t.Fatalf("expected health to fail on a corrupt database, got:\n%s", out)
	}
	if strings.Contains(out, "agency tables were not found") {
		t.Fatalf("storage failure reported as missing tables:\n%s", out)
	}

	_, err = run(t, "", "health", "--timeout=1ns", "--database-url="+testDatabaseURL(t))
	if !errors.Is(err, models.ErrStorageUnavailable) {
		t.Fatalf("expected ErrStorageUnavailable on timeout, got %v", err)
	}
}

func TestCommands_Seed(t *testing.T) {
	db := "--database-url=" + testDatabaseURL(t)
	mustRun(t, "init", db)

	seedPath := filepath.Join(t.TempDir(), "seed.yaml")
	doc := `pets:
  - name: Rex
    species: dog
    age: 3
  - name: Bun
    species: rabbit
adopters:
  - name: Jo
    email: jo@x.com
`
	if err := os.WriteFile(seedPath, []byte(doc), 0o644); err != nil {
		t.Fatalf("write seed: %v", err)
	}

	out := mustRun(t, "seed", db, seedPath)
	assertContains(t, out, "2 pets, 1 adopters registered, 0 failed")

	out, err := run(t, "", "seed", db, seedPath)
	if err == nil {
		t.Fatal("expected reseeding to report the duplicate adopter")
	}
	assertContains(t, out, "An adopter with this email already exists.")
	assertContains(t, mustRun(t, "pet", "list", db), "Bun")
}

func TestMenu_Scenario(t *testing.T) {
	db := "--database-url=" + testDatabaseURL(t)
	script := strings.Join([]string{
		"1",
		"2", "Rex", "dog", "Labrador", "3",
		"3", "Jo", "jo@x.com", "555-0100", "1 Main St",
		"4", "1", "1",
		"5",
		"7",
		"9",
		"8",
	}, "\n") + "\n"

	out, err := run(t, script, "menu", db)
	if err != nil {
		t.Fatalf("menu: %v\n%s", err, out)
	}
	for _, want := range []string{
		"Database initialized successfully!",
		"Pet Rex added successfully with ID 1!",
		"Adopter Jo registered successfully with ID 1!",
		"Adoption successful! Jo adopted Rex.",
		"No available pets found.",
		"Adoption Records",
		"Invalid choice. Please enter a number from 1 to 8.",
		"Have a fluffful day!",
	} {
		assertContains(t, out, want)
	}
}

func TestMenu_ErrorsDoNotExit(t *testing.T) {
	db := "--database-url=" + testDatabaseURL(t)
	script := "1\n4\nabc\n4\n7\n1\n3\nJo\njo@x.com\n\n\n3\nJo\njo@x.com\n\n\n8\n"

	out, err := run(t, script, "menu", db)
	if err != nil {
		t.Fatalf("menu: %v\n%s", err, out)
	}
	assertContains(t, out, `invalid pet id: "abc" is not a whole number`)
	assertContains(t, out, "Pet not found or already adopted")
	assertContains(t, out, "An adopter with this email already exists.")
	assertContains(t, out, "Have a fluffful day!")
}

func TestMenu_EndOfInput(t *testing.T) {
	db := "--database-url=" + testDatabaseURL(t)

	out, err := run(t, "1\n2\nRex\n", "menu", db)
	if err != nil {
		t.Fatalf("menu: %v\n%s", err, out)
	}
	assertContains(t, out, "Species (dog/cat/bird/rabbit/other): ")
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{fmt.Errorf("register adopter: %w", models.ErrDuplicateEmail), "An adopter with this email already exists."},
		{fmt.Errorf("process adoption: %w", models.ErrPetUnavailable), "Pet not found or already adopted"},
		{fmt.Errorf("process adoption: %w", models.ErrAdopterNotFound), "Adopter not found"},
		{&models.ValidationError{Field: "age", Reason: "must not be negative"}, "invalid age: must not be negative"},
		{errors.New("boom"), "boom"},
	}
	for _, tt := range tests {
		if got := describe(tt.err); got != tt.want {
			t.Fatalf("describe(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}

	got := describe(fmt.Errorf("%w: connection refused", models.ErrStorageUnavailable))
	if !strings.HasPrefix(got, "Database unavailable:") {
		t.Fatalf("unexpected storage message %q", got)
	}
}
