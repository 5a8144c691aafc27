package certgen

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/refuge-tools/certgen/pkg/certgen/models"
)

// DefaultConfigPath is the configuration document used when none is given.
const DefaultConfigPath = "certificate_config.yaml"

// LoadConfig reads the configuration document at path on top of the defaults.
func LoadConfig(path string) (*models.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfig, err)
	}
	return ParseConfig(data)
}

// ParseConfig decodes a YAML configuration document on top of the defaults.
func ParseConfig(data []byte) (*models.Config, error) {
	cfg := models.DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfig, err)
	}
	return &cfg, nil
}
