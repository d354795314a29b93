package scenario

import (
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ivlev/shapeanim/internal/model"
)

// Encode writes a scenario as YAML to w.
func Encode(w io.Writer, scenario *Scenario) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(scenario); err != nil {
		return err
	}
	return enc.Close()
}

// WriteScenario writes a scenario to a YAML file
func WriteScenario(scenario *Scenario, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Encode(f, scenario); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadScenario reads a scenario from a YAML file
func ReadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}

	return &scenario, nil
}

// LoadFile reads and compiles the scenario at path.
func LoadFile(path string) (*model.Scene, error) {
	s, err := ReadScenario(path)
	if err != nil {
		return nil, err
	}
	return Compile(s)
}
