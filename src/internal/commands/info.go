package commands

import (
	"github.com/maksimkurb/duetctl/src/internal/config"
	"github.com/maksimkurb/duetctl/src/internal/domain"
)

func CreateInfoCommand() *InfoCommand {
	c := &InfoCommand{printerCommand: newPrinterCommand("info")}
	c.fs.BoolVar(&c.configDump, "config-dump", false, "Print the effective configuration as TOML instead of contacting the printer")
	return c
}

// InfoCommand prints the printer's base URL and detected firmware generation.
type InfoCommand struct {
	printerCommand

	configDump bool
}

func (c *InfoCommand) Run() error {
	if c.configDump {
		return c.dumpConfig()
	}

	return c.do(func(client domain.PrinterClient) error {
		c.printf("Printer:    %s\n", c.printer.Config.Name)
		c.printf("URL:        %s\n", client.BaseURL())
		c.printf("Firmware:   %s\n", client.Generation())
		return nil
	})
}

// dumpConfig prints the configuration with passwords masked.
func (c *InfoCommand) dumpConfig() error {
	masked := *c.cfg
	masked.Printers = make([]*config.PrinterConfig, 0, len(c.cfg.Printers))
	for _, p := range c.cfg.Printers {
		printer := *p
		if printer.Password != "" {
			printer.Password = "********"
		}
		masked.Printers = append(masked.Printers, &printer)
	}

	buf, err := masked.SerializeConfig()
	if err != nil {
		return err
	}
	c.printf("%s", buf.String())
	return nil
}
