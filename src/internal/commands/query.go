package commands

import (
	"sort"

	"github.com/maksimkurb/duetctl/src/internal/domain"
)

func CreateCoordsCommand() *CoordsCommand {
	return &CoordsCommand{printerCommand: newPrinterCommand("coords")}
}

// CoordsCommand prints the position of every axis, sorted by axis letter.
type CoordsCommand struct {
	printerCommand
}

func (c *CoordsCommand) Run() error {
	return c.do(func(client domain.PrinterClient) error {
		coords, err := client.GetCoordinates()
		if err != nil {
			return err
		}

		axes := make([]string, 0, len(coords))
		for axis := range coords {
			axes = append(axes, axis)
		}
		sort.Strings(axes)

		for _, axis := range axes {
			c.printf("%s: %.3f\n", axis, coords[axis])
		}
		return nil
	})
}

func CreateStatusCommand() *StatusCommand {
	return &StatusCommand{printerCommand: newPrinterCommand("status")}
}

// StatusCommand prints the machine status with tool and extruder counts.
type StatusCommand struct {
	printerCommand
}

func (c *StatusCommand) Run() error {
	return c.do(func(client domain.PrinterClient) error {
		status, err := client.GetStatus()
		if err != nil {
			return err
		}
		tools, err := client.GetToolCount()
		if err != nil {
			return err
		}
		extruders, err := client.GetExtruderCount()
		if err != nil {
			return err
		}

		c.printf("Status:     %s\n", status)
		c.printf("Tools:      %d\n", tools)
		c.printf("Extruders:  %d\n", extruders)
		return nil
	})
}
