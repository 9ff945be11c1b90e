package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/dhamidi/icumsg/icu"
)

// LoadSymbols reads a parser configuration file. Fields absent from the
// file keep their icu.DefaultSymbols value. The result is validated.
//
//	open = "("
//	close = ")"
//	subnumeric_types = ["plural"]
func LoadSymbols(path string) (icu.Symbols, error) {
	symbols := icu.DefaultSymbols()

	data, err := os.ReadFile(path)
	if err != nil {
		return symbols, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		_, err = toml.Decode(string(data), &symbols)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &symbols)
	case ".json":
		err = json.Unmarshal(data, &symbols)
	default:
		return symbols, fmt.Errorf("symbols %s: %w", path, ErrUnsupported)
	}
	if err != nil {
		return symbols, fmt.Errorf("symbols %s: %w", path, err)
	}

	if err := symbols.Validate(); err != nil {
		return symbols, fmt.Errorf("symbols %s: %w", path, err)
	}
	log.Debugf("loaded symbols from %s", path)
	return symbols, nil
}
