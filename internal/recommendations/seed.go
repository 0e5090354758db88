package recommendations

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// SeedFile is the YAML document accepted by LoadSeed.
type SeedFile struct {
	Recommendations []CreateCommand `yaml:"recommendations"`
}

// LoadSeed decodes a seed document. Entries are validated later by Seed.
func LoadSeed(r io.Reader) ([]CreateCommand, error) {
	var f SeedFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("decode seed: %w", err)
	}
	if len(f.Recommendations) == 0 {
		return nil, fmt.Errorf("seed contains no recommendations")
	}
	return f.Recommendations, nil
}
