package duet

import (
	"fmt"
	"strings"

	"github.com/maksimkurb/duetctl/src/internal/log"
)

// Config commands replayed by the endstop and axis-limit helpers.
const (
	CmdEndstop   = "M574"
	CmdZProbe    = "M558"
	CmdAxisLimit = "M208"
	CmdProbeOffs = "G31"

	nilPin = `P"nil"`
)

// ReplayError describes one config line the printer refused during a replay.
type ReplayError struct {
	Line    string // line as read from the config file
	Command string // command actually sent
	Err     error
}

// ReplayErrors collects every failed line of a replay. A replay never stops at
// the first failure.
type ReplayErrors []ReplayError

// Error implements the error interface
func (re ReplayErrors) Error() string {
	if len(re) == 0 {
		return "no replay errors"
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d config line(s) failed:\n", len(re)))
	for i, e := range re {
		sb.WriteString(fmt.Sprintf("  %d. %s: %v\n", i+1, e.Command, e.Err))
	}
	return sb.String()
}

// commandCode returns the G-code of a config line in upper case: the leading
// letter and its digits, so `M574X1` yields M574 and `M5740` stays M5740.
// A first token that is not a letter followed by digits is returned whole.
func commandCode(line string) string {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return ""
	}
	token := strings.ToUpper(fields[0])

	end := 1
	for end < len(token) && token[end] >= '0' && token[end] <= '9' {
		end++
	}
	if token[0] < 'A' || token[0] > 'Z' || end == 1 {
		return token
	}
	return token[:end]
}

// filterLines keeps the lines whose command is one of codes, in file order.
func filterLines(lines []string, codes ...string) []string {
	var result []string
	for _, line := range lines {
		code := commandCode(line)
		for _, c := range codes {
			if code == c {
				result = append(result, line)
				break
			}
		}
	}
	return result
}

// NilEndstop rewrites an endstop (M574) or Z probe (M558) definition so that
// it binds the same axes to no pin: every token starting with P or p is
// replaced by P"nil". Tokens are re-joined with single spaces.
//
// Example: `M574 X1 P"io1.in" Y1 P"io2.in"` becomes `M574 X1 P"nil" Y1 P"nil"`.
func NilEndstop(line string) string {
	tokens := strings.Fields(line)
	for i, token := range tokens {
		if token[0] == 'P' || token[0] == 'p' {
			tokens[i] = nilPin
		}
	}
	return strings.Join(tokens, " ")
}

// replay sends every line through transform, collecting failures.
func (c *Client) replay(lines []string, transform func(string) string, errs ReplayErrors) ReplayErrors {
	for _, line := range lines {
		command := line
		if transform != nil {
			command = transform(line)
		}
		if err := c.SendGCode(command); err != nil {
			errs = append(errs, ReplayError{Line: line, Command: command, Err: err})
		}
	}
	return errs
}

func (c *Client) readConfigFile() ([]string, error) {
	lines, err := c.GetFileLines(ConfigFilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", ConfigFilePath, err)
	}
	return lines, nil
}

func replayResult(errs ReplayErrors) error {
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ClearEndstops undefines every endstop and Z probe configured in
// /sys/config.g by re-issuing their definitions with P"nil" pins.
func (c *Client) ClearEndstops() error {
	lines, err := c.readConfigFile()
	if err != nil {
		return err
	}

	return replayResult(c.clearEndstops(lines))
}

func (c *Client) clearEndstops(lines []string) ReplayErrors {
	endstops := filterLines(lines, CmdEndstop, CmdZProbe)
	log.Debugf("Clearing %d endstop/probe definition(s) on %s", len(endstops), c.baseURL)
	return c.replay(endstops, NilEndstop, nil)
}

// ResetEndstops clears every endstop and Z probe like ClearEndstops and then
// restores the definitions from /sys/config.g, together with the probe
// offsets (G31). All clear commands are sent before the first restore command.
func (c *Client) ResetEndstops() error {
	lines, err := c.readConfigFile()
	if err != nil {
		return err
	}

	errs := c.clearEndstops(lines)
	restore := filterLines(lines, CmdEndstop, CmdZProbe, CmdProbeOffs)
	log.Debugf("Restoring %d endstop/probe line(s) on %s", len(restore), c.baseURL)
	return replayResult(c.replay(restore, nil, errs))
}

// ResetAxisLimits re-issues the axis limits (M208) from /sys/config.g.
func (c *Client) ResetAxisLimits() error {
	lines, err := c.readConfigFile()
	if err != nil {
		return err
	}

	limits := filterLines(lines, CmdAxisLimit)
	log.Debugf("Restoring %d axis limit line(s) on %s", len(limits), c.baseURL)
	return replayResult(c.replay(limits, nil, nil))
}
