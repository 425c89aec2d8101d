// Package commands implements CLI command handlers for duetctl.
//
// Each subcommand implements the Runner interface and acts on one printer,
// selected by -printer, by general.default_printer, or given directly with
// -url. The exception is serve, which exposes every configured printer.
//
// # Command Structure
//
// All commands follow a consistent pattern:
//   - Init(): Parse arguments, load configuration, select the printer
//   - Run(): Execute the command
//   - Name(): Return command name for routing
//
// # Available Commands
//
//   - info: Base URL and detected firmware generation (-config-dump prints the configuration)
//   - coords, status: Axis positions; machine status with tool and extruder counts
//   - gcode, cat: Run a G-code command; print a file from the printer
//   - clear-endstops, reset-endstops, reset-axis-limits: Replay /sys/config.g lines
//   - serve: REST bridge
//
// # Example Usage
//
//	cmd := commands.CreateCoordsCommand()
//	ctx := &commands.AppContext{
//	    ConfigPath: config.DefaultConfigPath,
//	    PrinterName: "voron",
//	}
//	if err := cmd.Init(args, ctx); err != nil {
//	    log.Fatal(err)
//	}
//	if err := cmd.Run(); err != nil {
//	    log.Fatal(err)
//	}
//
// Printer detection runs on the first command that needs the printer, not
// during Init.
package commands
