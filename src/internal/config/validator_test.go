package config

import (
	stderrors "errors"
	"strings"
	"testing"
)

func validConfig() *Config {
	return &Config{
		General: &GeneralConfig{DefaultPrinter: "voron"},
		API:     &APIConfig{ListenAddr: "127.0.0.1:8089"},
		Printers: []*PrinterConfig{
			{Name: "voron", URL: "http://192.168.1.50", Password: "reprap"},
			{Name: "ender_3", URL: "https://ender.local"},
		},
	}
}

func TestValidateConfig_Success(t *testing.T) {
	if err := validConfig().ValidateConfig(); err != nil {
		t.Errorf("Expected no error, got: %v", err)
	}
}

func TestValidateConfig_Errors(t *testing.T) {
	tests := []struct {
		name      string
		modify    func(c *Config)
		wantField string
		wantItem  string
	}{
		{
			name:      "no printers",
			modify:    func(c *Config) { c.Printers = nil },
			wantField: "printer",
		},
		{
			name:      "missing name",
			modify:    func(c *Config) { c.Printers[1].Name = "" },
			wantField: "name",
			wantItem:  "printer[1]",
		},
		{
			name:      "bad name",
			modify:    func(c *Config) { c.Printers[1].Name = "Ender 3" },
			wantField: "name",
			wantItem:  "Ender 3",
		},
		{
			name:      "name starting with digit",
			modify:    func(c *Config) { c.Printers[1].Name = "3dprinter" },
			wantField: "name",
			wantItem:  "3dprinter",
		},
		{
			name:      "missing url",
			modify:    func(c *Config) { c.Printers[0].URL = "" },
			wantField: "url",
			wantItem:  "voron",
		},
		{
			name:      "non-http url",
			modify:    func(c *Config) { c.Printers[0].URL = "ftp://192.168.1.50" },
			wantField: "url",
			wantItem:  "voron",
		},
		{
			name:      "not a url",
			modify:    func(c *Config) { c.Printers[0].URL = "192.168.1.50" },
			wantField: "url",
			wantItem:  "voron",
		},
		{
			name:      "duplicate name",
			modify:    func(c *Config) { c.Printers[1].Name = "voron" },
			wantField: "name",
			wantItem:  "voron",
		},
		{
			name:      "unknown default printer",
			modify:    func(c *Config) { c.General.DefaultPrinter = "prusa" },
			wantField: "general.default_printer",
		},
		{
			name:      "negative timeout",
			modify:    func(c *Config) { c.General.ReadTimeoutSec = -1 },
			wantField: "general.read_timeout_sec",
		},
		{
			name:      "bad listen address",
			modify:    func(c *Config) { c.API.ListenAddr = "localhost" },
			wantField: "api.listen_addr",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := validConfig()
			tt.modify(config)

			err := config.ValidateConfig()
			if err == nil {
				t.Fatal("Expected validation error")
			}

			var validationErrors ValidationErrors
			if !stderrors.As(err, &validationErrors) {
				t.Fatalf("Expected ValidationErrors, got %T", err)
			}

			found := false
			for _, e := range validationErrors {
				if e.FieldPath == tt.wantField && e.ItemName == tt.wantItem {
					found = true
					break
				}
			}
			if !found {
				t.Errorf("Expected error on %q [%s], got: %v", tt.wantField, tt.wantItem, err)
			}
		})
	}
}

func TestValidateConfig_CollectsAllErrors(t *testing.T) {
	config := validConfig()
	config.Printers[0].URL = ""
	config.Printers[1].Name = "Bad Name"
	config.General.ConnectTimeoutSec = -5

	err := config.ValidateConfig()

	var validationErrors ValidationErrors
	if !stderrors.As(err, &validationErrors) {
		t.Fatalf("Expected ValidationErrors, got %v", err)
	}
	if len(validationErrors) != 3 {
		t.Errorf("Expected 3 errors, got %d: %v", len(validationErrors), err)
	}
}

func TestValidationErrors_Error(t *testing.T) {
	errs := ValidationErrors{
		{FieldPath: "printer", Message: "configuration must contain at least one printer"},
		{ItemName: "voron", FieldPath: "url", Message: "field is required"},
	}

	msg := errs.Error()
	if !strings.Contains(msg, "validation failed with 2 error(s)") {
		t.Errorf("Unexpected header: %s", msg)
	}
	if !strings.Contains(msg, "2. [voron] url: field is required") {
		t.Errorf("Expected item name in message: %s", msg)
	}
	if (ValidationErrors{}).Error() != "no validation errors" {
		t.Error("Unexpected message for empty errors")
	}
}

func TestGetValidationMessage_PrinterName(t *testing.T) {
	config := validConfig()
	config.Printers[0].Name = "-voron"
	config.General.DefaultPrinter = ""

	err := config.ValidateConfig()
	if err == nil || !strings.Contains(err.Error(), "must start with a lowercase letter") {
		t.Errorf("Expected printer name message, got %v", err)
	}
}
