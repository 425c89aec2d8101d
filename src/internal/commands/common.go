package commands

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/maksimkurb/duetctl/src/internal/config"
	"github.com/maksimkurb/duetctl/src/internal/domain"
)

// cliPrinterName names the printer given by -url.
const cliPrinterName = "cli"

type Runner interface {
	Init(args []string, globalArgs *AppContext) error
	Run() error
	Name() string
}

type AppContext struct {
	ConfigPath  string
	PrinterName string
	URL         string
	Password    string
	Verbose     bool

	// Connector creates printer clients; nil means real Duet clients.
	Connector domain.PrinterConnector
	// Stdout receives command output; nil means os.Stdout.
	Stdout io.Writer
}

func (ctx *AppContext) stdout() io.Writer {
	if ctx.Stdout == nil {
		return os.Stdout
	}
	return ctx.Stdout
}

// loadAndValidateConfigOrFail returns the configuration for this run: a single
// printer when -url is set, otherwise the validated configuration file.
func loadAndValidateConfigOrFail(ctx *AppContext) (*config.Config, error) {
	if ctx.URL != "" {
		cfg := config.NewSinglePrinterConfig(cliPrinterName, ctx.URL, ctx.Password)
		if err := cfg.ValidateConfig(); err != nil {
			return nil, fmt.Errorf("invalid -url: %v", err)
		}
		return cfg, nil
	}

	cfg, err := config.LoadConfig(ctx.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := cfg.ValidateConfig(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func newDependencies(ctx *AppContext, cfg *config.Config) *domain.AppDependencies {
	if ctx.Connector != nil {
		return domain.NewTestDependencies(cfg, ctx.Connector)
	}
	return domain.NewAppDependencies(cfg)
}

// printerCommand is the common part of the commands that act on one printer.
type printerCommand struct {
	fs      *flag.FlagSet
	ctx     *AppContext
	cfg     *config.Config
	printer *domain.Printer
}

func newPrinterCommand(name string) printerCommand {
	return printerCommand{fs: flag.NewFlagSet(name, flag.ExitOnError)}
}

func (c *printerCommand) Name() string {
	return c.fs.Name()
}

func (c *printerCommand) Init(args []string, ctx *AppContext) error {
	c.ctx = ctx

	if err := c.fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadAndValidateConfigOrFail(ctx)
	if err != nil {
		return err
	}
	c.cfg = cfg

	deps := newDependencies(ctx, cfg)
	if ctx.PrinterName != "" && ctx.URL == "" {
		c.printer, err = deps.Printer(ctx.PrinterName)
	} else {
		c.printer, err = deps.DefaultPrinter()
	}
	return err
}

// do runs fn on the selected printer.
func (c *printerCommand) do(fn func(client domain.PrinterClient) error) error {
	return c.printer.Do(fn)
}

func (c *printerCommand) printf(format string, args ...interface{}) {
	fmt.Fprintf(c.ctx.stdout(), format, args...)
}
