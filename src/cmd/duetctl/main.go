package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/maksimkurb/duetctl/src/internal/commands"
	"github.com/maksimkurb/duetctl/src/internal/config"
	"github.com/maksimkurb/duetctl/src/internal/log"
)

var (
	version = "dev"
	commit  = "n/a"
	date    = "n/a"
)

func main() {
	ctx := &commands.AppContext{}

	// Define flags
	flag.StringVar(&ctx.ConfigPath, "config", config.DefaultConfigPath, "Path to configuration file")
	flag.StringVar(&ctx.PrinterName, "printer", "", "Printer to use (default: general.default_printer)")
	flag.StringVar(&ctx.URL, "url", "", "Printer base URL; skips the configuration file")
	flag.StringVar(&ctx.Password, "password", "", "Printer password, used with -url")
	flag.BoolVar(&ctx.Verbose, "verbose", false, "Enable debug logging")

	// Custom usage message
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Duet 3D printer control\n")
		fmt.Fprintf(os.Stderr, "Version: %s (Commit: %s, Date: %s)\n\n", version, commit, date)
		fmt.Fprintf(os.Stderr, "Usage: %s [options] <command> [args]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Commands:\n")
		fmt.Fprintf(os.Stderr, "  info                    Show printer URL and detected firmware generation\n")
		fmt.Fprintf(os.Stderr, "  coords                  Print axis positions\n")
		fmt.Fprintf(os.Stderr, "  status                  Print machine status, tool and extruder counts\n")
		fmt.Fprintf(os.Stderr, "  gcode <command>         Send a G-code command\n")
		fmt.Fprintf(os.Stderr, "  cat <path>              Print a file from the printer\n")
		fmt.Fprintf(os.Stderr, "  clear-endstops          Detach endstops and Z probe configured in /sys/config.g\n")
		fmt.Fprintf(os.Stderr, "  reset-endstops          Restore endstops and Z probe from /sys/config.g\n")
		fmt.Fprintf(os.Stderr, "  reset-axis-limits       Restore axis limits from /sys/config.g\n")
		fmt.Fprintf(os.Stderr, "  serve                   Run the REST API for all configured printers\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	// Command output goes to stdout, logs never do
	log.SetForceStdErr(true)
	if ctx.Verbose {
		log.SetVerbose(true)
	}

	cmds := []commands.Runner{
		commands.CreateInfoCommand(),
		commands.CreateCoordsCommand(),
		commands.CreateStatusCommand(),
		commands.CreateGCodeCommand(),
		commands.CreateCatCommand(),
		commands.CreateClearEndstopsCommand(),
		commands.CreateResetEndstopsCommand(),
		commands.CreateResetAxisLimitsCommand(),
		commands.CreateServeCommand(),
	}

	args := flag.Args()

	if len(args) < 1 {
		flag.Usage()
		os.Exit(1)
	}

	subcommand := args[0]
	for _, cmd := range cmds {
		if cmd.Name() == subcommand {
			if err := cmd.Init(args[1:], ctx); err != nil {
				log.Fatalf("Failed to initialize command: %v", err)
			}

			if err := cmd.Run(); err != nil {
				log.Fatalf("Failed to run command: %v", err)
			}

			os.Exit(0)
		}
	}

	log.Fatalf("Unknown subcommand: %s", subcommand)
}
