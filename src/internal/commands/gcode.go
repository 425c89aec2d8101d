package commands

import (
	"fmt"
	"strings"

	"github.com/maksimkurb/duetctl/src/internal/domain"
)

func CreateGCodeCommand() *GCodeCommand {
	return &GCodeCommand{printerCommand: newPrinterCommand("gcode")}
}

// GCodeCommand sends its arguments, joined by spaces, as one G-code command.
type GCodeCommand struct {
	printerCommand

	command string
}

func (c *GCodeCommand) Init(args []string, ctx *AppContext) error {
	if err := c.printerCommand.Init(args, ctx); err != nil {
		return err
	}

	c.command = strings.TrimSpace(strings.Join(c.fs.Args(), " "))
	if c.command == "" {
		return fmt.Errorf("usage: gcode <command>")
	}
	return nil
}

func (c *GCodeCommand) Run() error {
	return c.do(func(client domain.PrinterClient) error {
		return client.SendGCode(c.command)
	})
}

func CreateCatCommand() *CatCommand {
	return &CatCommand{printerCommand: newPrinterCommand("cat")}
}

// CatCommand prints a file from the printer's filesystem.
type CatCommand struct {
	printerCommand

	path string
}

func (c *CatCommand) Init(args []string, ctx *AppContext) error {
	if err := c.printerCommand.Init(args, ctx); err != nil {
		return err
	}

	if c.fs.NArg() != 1 {
		return fmt.Errorf("usage: cat <path>")
	}
	c.path = c.fs.Arg(0)
	return nil
}

func (c *CatCommand) Run() error {
	return c.do(func(client domain.PrinterClient) error {
		lines, err := client.GetFileLines(c.path)
		if err != nil {
			return err
		}
		for _, line := range lines {
			c.printf("%s\n", line)
		}
		return nil
	})
}
