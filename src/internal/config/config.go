package config

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/maksimkurb/duetctl/src/internal/errors"
	"github.com/maksimkurb/duetctl/src/internal/log"
	"github.com/maksimkurb/duetctl/src/internal/utils"
)

// DefaultConfigPath is used when -config is not given.
const DefaultConfigPath = "~/.config/duetctl/duetctl.toml"

func LoadConfig(configPath string) (*Config, error) {
	expanded, err := utils.ExpandHome(configPath)
	if err != nil {
		return nil, errors.NewConfigError("failed to resolve config path", err)
	}
	configFile := filepath.Clean(expanded)

	if !filepath.IsAbs(configFile) {
		if path, err := filepath.Abs(configFile); err != nil {
			return nil, errors.NewConfigError("failed to get absolute path", err)
		} else {
			configFile = path
		}
	}

	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		log.Errorf("Configuration file not found: %s", configFile)
		return nil, errors.NewConfigError(fmt.Sprintf("configuration file not found: %s", configFile), err)
	}

	content, err := os.ReadFile(configFile)
	if err != nil {
		return nil, errors.NewConfigError("failed to read config file", err)
	}

	config, err := ParseConfig(content)
	if err != nil {
		return nil, err
	}
	config._absConfigFilePath = configFile

	log.Debugf("Configuration file path: %s", configFile)
	log.Debugf("Configured printers: %d", len(config.Printers))

	return config, nil
}

// ParseConfig decodes a TOML document. Missing sections are filled with empty
// defaults; the result is not validated.
func ParseConfig(content []byte) (*Config, error) {
	var config Config
	if err := toml.Unmarshal(content, &config); err != nil {
		var derr *toml.DecodeError
		if stderrors.As(err, &derr) {
			log.Errorf(derr.String())
			row, col := derr.Position()
			log.Errorf("Error at line %d, column %d", row, col)
			return nil, errors.NewConfigError(fmt.Sprintf("failed to parse config file at line %d, column %d", row, col), err)
		}
		return nil, errors.NewConfigError("failed to parse config file", err)
	}

	if config.General == nil {
		config.General = &GeneralConfig{}
	}
	if config.API == nil {
		config.API = &APIConfig{}
	}
	return &config, nil
}

// NewSinglePrinterConfig builds the configuration used when a printer is given
// by -url instead of a config file.
func NewSinglePrinterConfig(name, url, password string) *Config {
	return &Config{
		General: &GeneralConfig{DefaultPrinter: name},
		API:     &APIConfig{},
		Printers: []*PrinterConfig{
			{Name: name, URL: url, Password: password},
		},
	}
}

func (c *Config) SerializeConfig() (*bytes.Buffer, error) {
	buf := bytes.Buffer{}
	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(true)
	if err := enc.Encode(c); err != nil {
		return nil, err
	}
	return &buf, nil
}
