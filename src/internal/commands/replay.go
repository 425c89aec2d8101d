package commands

import (
	"github.com/maksimkurb/duetctl/src/internal/domain"
	"github.com/maksimkurb/duetctl/src/internal/log"
)

// ReplayCommand runs one of the config replay helpers.
type ReplayCommand struct {
	printerCommand

	helper func(domain.PrinterClient) error
}

func CreateClearEndstopsCommand() *ReplayCommand {
	return &ReplayCommand{printerCommand: newPrinterCommand("clear-endstops"), helper: domain.PrinterClient.ClearEndstops}
}

func CreateResetEndstopsCommand() *ReplayCommand {
	return &ReplayCommand{printerCommand: newPrinterCommand("reset-endstops"), helper: domain.PrinterClient.ResetEndstops}
}

func CreateResetAxisLimitsCommand() *ReplayCommand {
	return &ReplayCommand{printerCommand: newPrinterCommand("reset-axis-limits"), helper: domain.PrinterClient.ResetAxisLimits}
}

func (c *ReplayCommand) Run() error {
	if err := c.do(c.helper); err != nil {
		return err
	}
	log.Infof("%s: done", c.Name())
	return nil
}
