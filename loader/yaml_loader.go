package loader

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ridoystarlord/petadopt/models"
)

// Seed is a batch of records to register in one go.
type Seed struct {
	Pets     []models.PetInput
	Adopters []models.AdopterInput
}

type yamlFile struct {
	Pets     []yamlPet     `yaml:"pets"`
	Adopters []yamlAdopter `yaml:"adopters"`
}

type yamlPet struct {
	Name    string `yaml:"name"`
	Species string `yaml:"species"`
	Breed   string `yaml:"breed"`
	Age     *int   `yaml:"age"`
}

type yamlAdopter struct {
	Name    string `yaml:"name"`
	Email   string `yaml:"email"`
	Phone   string `yaml:"phone"`
	Address string `yaml:"address"`
}

func LoadSeedFromYAML(filename string) (Seed, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return Seed{}, fmt.Errorf("reading seed file: %w", err)
	}
	return ParseSeed(data)
}

// ParseSeed decodes a seed document. Field values are not validated here;
// that happens when each record is registered.
func ParseSeed(data []byte) (Seed, error) {
	var yf yamlFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&yf); err != nil && !errors.Is(err, io.EOF) {
		return Seed{}, fmt.Errorf("unmarshalling YAML: %w", err)
	}

	var seed Seed
	for _, p := range yf.Pets {
		seed.Pets = append(seed.Pets, models.PetInput{
			Name:    p.Name,
			Species: p.Species,
			Breed:   p.Breed,
			Age:     p.Age,
		})
	}
	for _, a := range yf.Adopters {
		seed.Adopters = append(seed.Adopters, models.AdopterInput{
			Name:    a.Name,
			Email:   a.Email,
			Phone:   a.Phone,
			Address: a.Address,
		})
	}
	return seed, nil
}
