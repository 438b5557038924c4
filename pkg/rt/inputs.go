package rt

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// LoadInputs reads a variable table for Preset from path. The format
// follows the file extension, .toml or .yaml/.yml. The file maps variable
// names to integers; every value must fit a signed 32-bit integer.
func LoadInputs(path string) (map[string]int32, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	raw := make(map[string]int64)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if err := toml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported inputs format %q (use .toml, .yaml, or .yml)", filepath.Ext(path))
	}

	values := make(map[string]int32, len(raw))
	for name, v := range raw {
		if v < math.MinInt32 || v > math.MaxInt32 {
			return nil, fmt.Errorf("%s: value %d for %s does not fit a 32-bit integer", path, v, name)
		}
		values[name] = int32(v)
	}
	return values, nil
}
