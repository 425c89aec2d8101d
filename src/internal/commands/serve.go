package commands

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/maksimkurb/duetctl/src/internal/api"
	"github.com/maksimkurb/duetctl/src/internal/config"
	"github.com/maksimkurb/duetctl/src/internal/domain"
	"github.com/maksimkurb/duetctl/src/internal/log"
)

// ServeCommand runs the REST bridge for every configured printer.
type ServeCommand struct {
	fs   *flag.FlagSet
	ctx  *AppContext
	cfg  *config.Config
	deps *domain.AppDependencies

	// Command-specific flags
	listenAddr string
}

// CreateServeCommand creates a new serve command.
func CreateServeCommand() *ServeCommand {
	c := &ServeCommand{fs: flag.NewFlagSet("serve", flag.ExitOnError)}
	c.fs.StringVar(&c.listenAddr, "listen", "", "Address to bind the HTTP server (default: api.listen_addr or "+config.DefaultListenAddr+")")
	return c
}

// Name returns the command name.
func (c *ServeCommand) Name() string {
	return c.fs.Name()
}

// Init initializes the serve command with arguments.
func (c *ServeCommand) Init(args []string, ctx *AppContext) error {
	c.ctx = ctx

	if err := c.fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadAndValidateConfigOrFail(ctx)
	if err != nil {
		return err
	}
	c.cfg = cfg

	// Flag wins over the config file
	if c.listenAddr == "" {
		c.listenAddr = cfg.ListenAddr()
	}

	c.deps = newDependencies(ctx, cfg)
	return nil
}

// Run starts the HTTP API server and blocks until it fails or a signal arrives.
func (c *ServeCommand) Run() error {
	log.Infof("Serving %d printer(s): %v", len(c.deps.PrinterNames()), c.deps.PrinterNames())
	log.Infof("Access restricted to loopback, private and link-local clients")

	server := api.NewServer(c.deps, c.listenAddr)

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- server.Start()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	select {
	case err := <-serverErrors:
		return err

	case sig := <-shutdown:
		log.Infof("Received signal %v, shutting down server...", sig)

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := server.Stop(ctx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		log.Infof("Server stopped gracefully")
	}

	return nil
}
