// Package config handles configuration file parsing and validation for duetctl.
//
// This package reads a TOML file describing the printers duetctl can reach and
// the settings shared by the CLI and the REST bridge.
//
// # Configuration Structure
//
// The configuration file defines:
//   - General settings (default printer, connect and read timeouts)
//   - REST bridge settings (listen address)
//   - Printers, each with a unique name, a base URL and an optional password
//
// # Example Usage
//
// Loading and validating a configuration file:
//
//	cfg, err := config.LoadConfig("~/.config/duetctl/duetctl.toml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := cfg.ValidateConfig(); err != nil {
//	    log.Fatal(err)
//	}
//
// Accessing configuration:
//
//	for _, printer := range cfg.Printers {
//	    fmt.Printf("Printer: %s at %s\n", printer.Name, printer.URL)
//	}
//
// Validation collects every problem into ValidationErrors instead of stopping
// at the first one.
package config
