package memfile

import (
	"fmt"
	"os"

	"sigs.k8s.io/yaml"
)

// ParseRates decodes a YAML or JSON document of the form
//
//	openFailureRate: 0.0001
//	closeFailureRate: 0.00001
//
// Keys left out keep their DefaultRates value.
func ParseRates(b []byte) (Rates, error) {
	r := DefaultRates
	if err := yaml.UnmarshalStrict(b, &r); err != nil {
		return Rates{}, fmt.Errorf("cannot decode fault rates: %w", err)
	}
	if err := r.Validate(); err != nil {
		return Rates{}, err
	}
	return r, nil
}

// LoadRates reads and parses the fault rates file at path.
func LoadRates(path string) (Rates, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Rates{}, fmt.Errorf("cannot read fault rates: %w", err)
	}
	r, err := ParseRates(b)
	if err != nil {
		return Rates{}, fmt.Errorf("%s: %w", path, err)
	}
	return r, nil
}
