// Package inputset builds LAMMPS input sets: a plain-text input template
// combined with per-run settings and an optional data payload. Rendering
// substitutes $key / ${key} placeholders in the template from the settings
// map, mirroring the template convention of LAMMPS input files.
package inputset

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/atomsim/lammpsflow/internal/config"
)

// placeholderRe matches $key and ${key} template placeholders. A doubled
// "$$" escapes a literal dollar sign.
var placeholderRe = regexp.MustCompile(`\$(\$|\{[A-Za-z_][A-Za-z0-9_]*\}|[A-Za-z_][A-Za-z0-9_]*)`)

// Params carries the optional pieces of an input set beyond the template
// itself.
type Params struct {
	Settings config.Settings
	// Data is an optional preloaded data payload (path to a LAMMPS data
	// file, or its literal contents).
	Data string
	// DataFilename is the name the data file will be written under in the
	// run directory.
	DataFilename string
	// ForceField indicates that the data file carries force-field and
	// topology sections.
	ForceField bool
}

// InputSet is an immutable bundle of everything needed to write the input
// files for one LAMMPS run.
type InputSet struct {
	Name         string          `json:"name"`
	Template     string          `json:"template"`
	Settings     config.Settings `json:"settings"`
	Data         string          `json:"data,omitempty"`
	DataFilename string          `json:"data_filename"`
	ForceField   bool            `json:"force_field"`
}

// FromFile reads the template at path and returns an input set combining it
// with the given params. The settings map is copied, not aliased.
func FromFile(name, path string, params Params) (*InputSet, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read input template %s: %w", path, err)
	}
	return New(name, string(raw), params), nil
}

// New builds an input set from already-loaded template text.
func New(name, template string, params Params) *InputSet {
	return &InputSet{
		Name:         name,
		Template:     template,
		Settings:     params.Settings.Clone(),
		Data:         params.Data,
		DataFilename: params.DataFilename,
		ForceField:   params.ForceField,
	}
}

// Render substitutes every $key / ${key} placeholder in the template from
// the settings map. A placeholder with no matching setting is an error; a
// literal dollar sign is written as "$$".
func (s *InputSet) Render() (string, error) {
	var missing []string
	out := placeholderRe.ReplaceAllStringFunc(s.Template, func(m string) string {
		key := m[1:]
		if key == "$" {
			return "$"
		}
		key = strings.TrimSuffix(strings.TrimPrefix(key, "{"), "}")
		val, ok := s.Settings[key]
		if !ok {
			missing = append(missing, key)
			return m
		}
		return fmt.Sprint(val)
	})
	if len(missing) > 0 {
		return "", fmt.Errorf("template %s has unresolved placeholders: %s",
			s.Name, strings.Join(missing, ", "))
	}
	return out, nil
}
