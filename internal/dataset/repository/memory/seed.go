package memory

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"reporting-srv/internal/dataset"
	"reporting-srv/internal/dataset/repository"
)

type seedFile struct {
	Observations []dataset.Obs `yaml:"observations"`
}

// LoadSeedFile reads observations from a YAML file of the form
//
//	observations:
//	  - id: 1
//	    patient_id: 7
//	    concept: {id: 5089, name: WEIGHT (KG)}
//	    value_kind: numeric
//	    value_numeric: 70
//	    obs_datetime: 2024-01-15T09:00:00Z
func LoadSeedFile(path string) ([]dataset.Obs, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", repository.ErrSeedFileInvalid, err)
	}
	return ParseSeed(b)
}

// ParseSeed decodes seed YAML.
func ParseSeed(b []byte) ([]dataset.Obs, error) {
	var f seedFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("%w: %v", repository.ErrSeedFileInvalid, err)
	}
	return f.Observations, nil
}
