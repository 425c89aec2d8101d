package config

import (
	"path/filepath"
	"time"

	"github.com/maksimkurb/duetctl/src/internal/duet"
)

const (
	// DefaultListenAddr is the REST bridge address used when [api] does not set one.
	DefaultListenAddr = "127.0.0.1:8089"
)

type Config struct {
	// General holds general configuration.
	General *GeneralConfig `toml:"general"`
	// API holds the REST bridge settings.
	API *APIConfig `toml:"api"`
	// Printers lists the printers duetctl can talk to. You must set "name" and "url" for each printer.
	Printers []*PrinterConfig `toml:"printer,omitempty"`

	_absConfigFilePath string
}

type GeneralConfig struct {
	// DefaultPrinter is the printer used when -printer is not given (optional, defaults to the only printer).
	DefaultPrinter string `toml:"default_printer,omitempty" json:"default_printer,omitempty"`
	// ConnectTimeoutSec bounds dialing a printer in seconds (0 = default: 2).
	ConnectTimeoutSec int `toml:"connect_timeout_sec" json:"connect_timeout_sec" validate:"gte=0"`
	// ReadTimeoutSec bounds waiting for a printer response in seconds (0 = default: 60).
	ReadTimeoutSec int `toml:"read_timeout_sec" json:"read_timeout_sec" validate:"gte=0"`
}

type APIConfig struct {
	// ListenAddr is the host:port the REST bridge listens on (default: 127.0.0.1:8089).
	ListenAddr string `toml:"listen_addr" json:"listen_addr" validate:"hostport_or_empty"`
}

type PrinterConfig struct {
	// Name identifies the printer on the command line and in REST paths.
	Name string `toml:"name" json:"name" validate:"required,printer_name"`
	// URL is the base URL of the printer's web interface, e.g. http://192.168.1.50.
	URL string `toml:"url" json:"url" validate:"required,http_url"`
	// Password is sent to RRF2 boards on login (optional).
	Password string `toml:"password,omitempty" json:"-"`
}

func (c *Config) GetConfigDir() string {
	return filepath.Dir(c._absConfigFilePath)
}

func (c *Config) GetConfigFilePath() string {
	return c._absConfigFilePath
}

// FindPrinter returns the printer called name, or nil.
func (c *Config) FindPrinter(name string) *PrinterConfig {
	for _, p := range c.Printers {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// DefaultPrinter returns general.default_printer, or the only configured
// printer when there is exactly one. It returns nil otherwise.
func (c *Config) DefaultPrinter() *PrinterConfig {
	if c.General != nil && c.General.DefaultPrinter != "" {
		return c.FindPrinter(c.General.DefaultPrinter)
	}
	if len(c.Printers) == 1 {
		return c.Printers[0]
	}
	return nil
}

// Timeouts returns the connect and read timeouts for printer requests.
func (c *Config) Timeouts() (connect, read time.Duration) {
	connect, read = duet.DefaultConnectTimeout, duet.DefaultReadTimeout
	if c.General == nil {
		return connect, read
	}
	if c.General.ConnectTimeoutSec > 0 {
		connect = time.Duration(c.General.ConnectTimeoutSec) * time.Second
	}
	if c.General.ReadTimeoutSec > 0 {
		read = time.Duration(c.General.ReadTimeoutSec) * time.Second
	}
	return connect, read
}

// ListenAddr returns the REST bridge listen address.
func (c *Config) ListenAddr() string {
	if c.API == nil || c.API.ListenAddr == "" {
		return DefaultListenAddr
	}
	return c.API.ListenAddr
}
