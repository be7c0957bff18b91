package configs

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// SaveTOML saves a struct to a TOML file.
func SaveTOML(filePath string, data any) error {
	if err := os.MkdirAll(filepath.Dir(filePath), 0700); err != nil {
		return err
	}

	file, err := os.Create(filePath)
	if err != nil {
		return err
	}
	defer file.Close()

	return toml.NewEncoder(file).Encode(data)
}

// LoadTOML loads a TOML file into a struct and returns the keys that were
// present in the file but not consumed by data.
func LoadTOML(filePath string, data any) ([]string, error) {
	meta, err := toml.DecodeFile(filePath, data)
	if err != nil {
		return nil, err
	}
	var undecoded []string
	for _, k := range meta.Undecoded() {
		undecoded = append(undecoded, k.String())
	}
	return undecoded, nil
}
