package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ridoystarlord/petadopt/agency"
	"github.com/ridoystarlord/petadopt/models"
)

const menuText = `
1. Initialize Database
2. Add New Pet
3. Register New Adopter
4. Process Adoption
5. List Available Pets
6. List Registered Adopters
7. List Adoption Records
8. Exit
`

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Interactive menu with every agency action",
	Long: `Show a numbered menu and prompt for each action's fields. Every action
opens and closes its own database session. End of input exits the menu.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		m := &menu{
			cmd: cmd,
			in:  bufio.NewScanner(cmd.InOrStdin()),
			out: cmd.OutOrStdout(),
		}
		return m.run()
	},
}

type menu struct {
	cmd *cobra.Command
	in  *bufio.Scanner
	out io.Writer
}

func (m *menu) prompt(label string) (string, error) {
	fmt.Fprint(m.out, label)
	if !m.in.Scan() {
		if err := m.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(m.in.Text()), nil
}

func (m *menu) run() error {
	actions := map[string]func() error{
		"1": m.initSchema,
		"2": m.addPet,
		"3": m.registerAdopter,
		"4": m.processAdoption,
		"5": m.listPets,
		"6": m.listAdopters,
		"7": m.listAdoptions,
	}

	for {
		cyan.Fprintln(m.out, "\n🐾 Pet Adoption Agency CLI 🐾")
		fmt.Fprint(m.out, menuText)

		choice, err := m.prompt("Please enter the number of your choice: ")
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(m.out)
			return nil
		}
		if err != nil {
			return err
		}

		if choice == "8" {
			fmt.Fprintln(m.out, "Have a fluffful day!")
			return nil
		}
		action, ok := actions[choice]
		if !ok {
			warning(m.out, "Invalid choice. Please enter a number from 1 to 8.")
			continue
		}

		err = action()
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(m.out)
			return nil
		}
		if err != nil {
			failure(m.out, "Error: %s", describe(err))
		}
	}
}

func (m *menu) do(fn func(ctx context.Context, svc *agency.Service) error) error {
	return withService(m.cmd.Context(), m.cmd, fn)
}

func (m *menu) initSchema() error {
	return m.do(func(ctx context.Context, svc *agency.Service) error {
		if err := svc.InitSchema(ctx); err != nil {
			return err
		}
		success(m.out, "Database initialized successfully!")
		return nil
	})
}

func (m *menu) addPet() error {
	var in models.PetInput
	var err error
	if in.Name, err = m.prompt("Pet name: "); err != nil {
		return err
	}
	if in.Species, err = m.prompt("Species (" + models.SpeciesChoices() + "): "); err != nil {
		return err
	}
	if in.Breed, err = m.prompt("Breed: "); err != nil {
		return err
	}
	age, err := m.prompt("Age in years: ")
	if err != nil {
		return err
	}
	if in.Age, err = models.ParseAge(age); err != nil {
		return err
	}

	return m.do(func(ctx context.Context, svc *agency.Service) error {
		pet, err := svc.AddPet(ctx, in)
		if err != nil {
			return err
		}
		success(m.out, "Pet %s added successfully with ID %d!", pet.Name, pet.ID)
		return nil
	})
}

func (m *menu) registerAdopter() error {
	var in models.AdopterInput
	fields := []struct {
		label string
		dst   *string
	}{
		{"Adopter name: ", &in.Name},
		{"Email: ", &in.Email},
		{"Phone: ", &in.Phone},
		{"Address: ", &in.Address},
	}
	for _, f := range fields {
		v, err := m.prompt(f.label)
		if err != nil {
			return err
		}
		*f.dst = v
	}

	return m.do(func(ctx context.Context, svc *agency.Service) error {
		adopter, err := svc.RegisterAdopter(ctx, in)
		if err != nil {
			return err
		}
		success(m.out, "Adopter %s registered successfully with ID %d!", adopter.Name, adopter.ID)
		return nil
	})
}

func (m *menu) processAdoption() error {
	rawPet, err := m.prompt("Pet ID: ")
	if err != nil {
		return err
	}
	petID, err := models.ParseID("pet id", rawPet)
	if err != nil {
		return err
	}
	rawAdopter, err := m.prompt("Adopter ID: ")
	if err != nil {
		return err
	}
	adopterID, err := models.ParseID("adopter id", rawAdopter)
	if err != nil {
		return err
	}

	return m.do(func(ctx context.Context, svc *agency.Service) error {
		rec, err := svc.ProcessAdoption(ctx, petID, adopterID)
		if err != nil {
			return err
		}
		printAdopted(m.out, rec)
		return nil
	})
}

func (m *menu) listPets() error {
	return m.do(func(ctx context.Context, svc *agency.Service) error {
		pets, err := svc.ListAvailablePets(ctx)
		if err != nil {
			return err
		}
		printPets(m.out, pets)
		return nil
	})
}

func (m *menu) listAdopters() error {
	return m.do(func(ctx context.Context, svc *agency.Service) error {
		adopters, err := svc.ListAdopters(ctx)
		if err != nil {
			return err
		}
		printAdopters(m.out, adopters)
		return nil
	})
}

func (m *menu) listAdoptions() error {
	return m.do(func(ctx context.Context, svc *agency.Service) error {
		records, err := svc.ListAdoptions(ctx)
		if err != nil {
			return err
		}
		printAdoptions(m.out, records)
		return nil
	})
}
