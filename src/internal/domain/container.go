package domain

import (
	"sync"

	"github.com/maksimkurb/duetctl/src/internal/config"
	"github.com/maksimkurb/duetctl/src/internal/duet"
	"github.com/maksimkurb/duetctl/src/internal/errors"
	"github.com/maksimkurb/duetctl/src/internal/log"
)

// AppDependencies is a dependency injection container that holds all application dependencies.
//
// It owns one Printer per configured printer. Clients are created on first use,
// so building the container never touches the network.
//
// Usage:
//
//	deps := domain.NewAppDependencies(cfg)
//	printer, err := deps.Printer("voron")
//	if err != nil {
//	    return err
//	}
//	err = printer.Do(func(client domain.PrinterClient) error {
//	    return client.SendGCode("G28")
//	})
type AppDependencies struct {
	config   *config.Config
	printers map[string]*Printer
}

// Printer serializes access to one printer's client. duet.Client is not safe
// for concurrent use, so every call goes through Do.
type Printer struct {
	Config *config.PrinterConfig

	connect PrinterConnector

	mu     sync.Mutex
	client PrinterClient

	// state guards client for readers that must not wait for a running call.
	state sync.RWMutex
}

// NewAppDependencies creates a new dependency container with production implementations.
//
// Clients are *duet.Client values using the timeouts from cfg.
func NewAppDependencies(cfg *config.Config) *AppDependencies {
	return NewTestDependencies(cfg, NewDuetConnector(cfg))
}

// NewTestDependencies creates a dependency container whose clients come from connect.
//
// This is a convenience method for testing; pass a connector returning mocks.
func NewTestDependencies(cfg *config.Config, connect PrinterConnector) *AppDependencies {
	printers := make(map[string]*Printer, len(cfg.Printers))
	for _, p := range cfg.Printers {
		printers[p.Name] = &Printer{Config: p, connect: connect}
	}

	return &AppDependencies{
		config:   cfg,
		printers: printers,
	}
}

// NewDuetConnector returns a connector creating *duet.Client values with the
// timeouts configured in cfg.
func NewDuetConnector(cfg *config.Config) PrinterConnector {
	connectTimeout, readTimeout := cfg.Timeouts()
	return func(printer *config.PrinterConfig) PrinterClient {
		log.Debugf("Connecting to printer %s at %s", printer.Name, printer.URL)
		client := duet.NewClient(printer.URL, printer.Password, duet.NewHTTPClient(connectTimeout, readTimeout))
		log.Infof("Printer %s at %s speaks %s", printer.Name, client.BaseURL(), client.Generation())
		return client
	}
}

// Config returns the application configuration.
func (d *AppDependencies) Config() *config.Config {
	return d.config
}

// PrinterNames returns the configured printer names in file order.
func (d *AppDependencies) PrinterNames() []string {
	names := make([]string, 0, len(d.config.Printers))
	for _, p := range d.config.Printers {
		names = append(names, p.Name)
	}
	return names
}

// Printer returns the printer called name.
func (d *AppDependencies) Printer(name string) (*Printer, error) {
	p, ok := d.printers[name]
	if !ok {
		return nil, errors.NewPrinterNotFoundError(name)
	}
	return p, nil
}

// DefaultPrinter returns the printer used when no name is given.
func (d *AppDependencies) DefaultPrinter() (*Printer, error) {
	p := d.config.DefaultPrinter()
	if p == nil {
		return nil, errors.NewConfigError("no printer selected: set general.default_printer or pass -printer", nil)
	}
	return d.Printer(p.Name)
}

// Do runs fn with exclusive use of the printer's client, creating the client
// first if needed.
func (p *Printer) Do(fn func(client PrinterClient) error) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.client == nil {
		p.setClient(p.connect(p.Config))
	}
	return fn(p.client)
}

// Client returns the current client, or nil if the printer was not used yet.
// It never connects and never waits for a call in progress.
func (p *Printer) Client() PrinterClient {
	p.state.RLock()
	defer p.state.RUnlock()
	return p.client
}

func (p *Printer) setClient(client PrinterClient) {
	p.state.Lock()
	defer p.state.Unlock()
	p.client = client
}

// Reconnect replaces the client with a new one, which re-runs firmware detection.
func (p *Printer) Reconnect() PrinterClient {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.setClient(p.connect(p.Config))
	return p.client
}
