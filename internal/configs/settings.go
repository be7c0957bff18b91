package configs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	kerrors "github.com/PolarWolf314/envseal/internal/errors"
)

// DefaultConfigFile is read from the working directory when present.
const DefaultConfigFile = ".envseal.toml"

// Settings is the fully resolved configuration for one run.
type Settings struct {
	Source              string
	Name                string
	Namespace           string
	ControllerName      string
	ControllerNamespace string
	Scope               string
	Kubeseal            string
	AuditLog            string
	PrintNone           bool
	Output              bool
}

// DefaultSettings returns the built-in defaults.
func DefaultSettings() Settings {
	return Settings{
		Source:              ".env",
		Name:                "mysecret",
		Namespace:           "default",
		ControllerName:      "sealed-secrets",
		ControllerNamespace: "kube-system",
		Scope:               "cluster-wide",
		Kubeseal:            "kubeseal",
	}
}

// FileConfig mirrors the optional TOML defaults file. Empty fields leave the
// corresponding setting untouched.
type FileConfig struct {
	Source              string `toml:"source"`
	Name                string `toml:"name"`
	Namespace           string `toml:"namespace"`
	ControllerName      string `toml:"controller_name"`
	ControllerNamespace string `toml:"controller_namespace"`
	Scope               string `toml:"scope"`
	Kubeseal            string `toml:"kubeseal"`
	AuditLog            string `toml:"audit_log"`
	PrintNone           *bool  `toml:"print_none"`
	Output              *bool  `toml:"output"`
}

// LoadFile reads the defaults file at path. A missing file yields a nil
// config and no error. Unknown keys are rejected so typos surface.
func LoadFile(path string) (*FileConfig, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}

	config := &FileConfig{}
	undecoded, err := LoadTOML(path, config)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", kerrors.ErrConfigInvalid, path, err)
	}
	if len(undecoded) > 0 {
		return nil, fmt.Errorf("%w: %s: unknown keys %v", kerrors.ErrConfigInvalid, path, undecoded)
	}

	return config, nil
}

// Apply overlays the non-empty fields of fc onto s.
func (s *Settings) Apply(fc *FileConfig) {
	if fc == nil {
		return
	}
	setIfNotEmpty(&s.Source, fc.Source)
	setIfNotEmpty(&s.Name, fc.Name)
	setIfNotEmpty(&s.Namespace, fc.Namespace)
	setIfNotEmpty(&s.ControllerName, fc.ControllerName)
	setIfNotEmpty(&s.ControllerNamespace, fc.ControllerNamespace)
	setIfNotEmpty(&s.Scope, fc.Scope)
	setIfNotEmpty(&s.Kubeseal, fc.Kubeseal)
	setIfNotEmpty(&s.AuditLog, fc.AuditLog)
	if fc.PrintNone != nil {
		s.PrintNone = *fc.PrintNone
	}
	if fc.Output != nil {
		s.Output = *fc.Output
	}
}

// FileConfigFrom converts resolved settings into a FileConfig suitable for
// SaveTOML.
func FileConfigFrom(s Settings) *FileConfig {
	printNone, output := s.PrintNone, s.Output
	return &FileConfig{
		Source:              s.Source,
		Name:                s.Name,
		Namespace:           s.Namespace,
		ControllerName:      s.ControllerName,
		ControllerNamespace: s.ControllerNamespace,
		Scope:               s.Scope,
		Kubeseal:            s.Kubeseal,
		AuditLog:            s.AuditLog,
		PrintNone:           &printNone,
		Output:              &output,
	}
}

func setIfNotEmpty(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
