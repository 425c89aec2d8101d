package duet

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/maksimkurb/duetctl/src/internal/errors"
	"github.com/maksimkurb/duetctl/src/internal/log"
	"github.com/maksimkurb/duetctl/src/internal/utils"
)

// Client is a client for one Duet printer.
//
// The firmware generation is detected once by NewClient and never re-checked.
// A Client is not safe for concurrent use; create one per printer and
// serialize calls on it.
type Client struct {
	httpClient HTTPClient
	baseURL    string
	password   string
	generation Generation
}

// NewClient creates a client for the printer at baseURL and detects which API
// generation it speaks.
//
// Detection first logs in and probes the RRF2 status endpoint, then falls back
// to the RRF3 machine status endpoint. If neither answers as expected the
// client is returned with GenerationUnknown and every query fails with
// errors.ErrUnsupportedFirmware. NewClient itself never fails.
//
// The password is sent in plain text to the RRF2 login endpoint only; an empty
// password logs in without one. If httpClient is nil, NewHTTPClient with the
// default timeouts is used.
//
// Example:
//
//	client := duet.NewClient("http://192.168.1.50", "", nil)
//	if client.Generation() == duet.GenerationUnknown {
//	    log.Fatalf("no printer at %s", client.BaseURL())
//	}
func NewClient(baseURL, password string, httpClient HTTPClient) *Client {
	if httpClient == nil {
		httpClient = NewHTTPClient(DefaultConnectTimeout, DefaultReadTimeout)
	}

	c := &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		password:   password,
	}
	c.generation = c.detectGeneration()
	return c
}

// Generation returns the detected firmware generation.
func (c *Client) Generation() Generation {
	return c.generation
}

// BaseURL returns the printer's base URL without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) detectGeneration() Generation {
	err := c.probeRRF2()
	if err == nil {
		log.Debugf("Detected RRF2 firmware at %s", c.baseURL)
		return Generation2
	}
	log.Debugf("RRF2 probe of %s failed: %v", c.baseURL, err)

	err = c.probeRRF3()
	if err == nil {
		log.Debugf("Detected RRF3 firmware at %s", c.baseURL)
		return Generation3
	}
	log.Debugf("RRF3 probe of %s failed: %v", c.baseURL, err)

	log.Errorf("%s does not appear to be a RRF2 or RRF3 printer", c.baseURL)
	return GenerationUnknown
}

func (c *Client) probeRRF2() error {
	loginURL := expandEndpoint(rrf2ConnectTmpl, map[string]string{
		"password": c.password,
		"time":     rrf2ConnectTime,
	}, url.QueryEscape)

	// Only a transport failure ends the probe; the status document decides.
	if err := c.login(loginURL); err != nil {
		return err
	}

	_, err := fetchAndValidate[rrf2ProbeResponse](c, rrf2StatusEndpoint(rrf2StatusProbe))
	return err
}

func (c *Client) login(loginURL string) error {
	resp, err := c.request(http.MethodGet, loginURL, nil)
	if err != nil {
		return err
	}
	defer utils.CloseOrWarn(resp.Body)

	if !isSuccess(resp.StatusCode) {
		log.Warnf("Login to %s returned %d %s", c.baseURL, resp.StatusCode, reasonPhrase(resp))
		return nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Warnf("Failed to read login reply from %s: %v", c.baseURL, err)
		return nil
	}
	var reply rrf2ConnectResponse
	if json.Unmarshal(body, &reply) == nil && reply.Err != nil && *reply.Err != 0 {
		log.Warnf("Login to %s was refused (err=%d: %s)", c.baseURL, *reply.Err, describeConnectError(*reply.Err))
	}
	return nil
}

func (c *Client) probeRRF3() error {
	_, err := fetchAndValidate[rrf3ProbeResponse](c, rrf3StatusPath)
	return err
}

func describeConnectError(code int) string {
	switch code {
	case 1:
		return "wrong password"
	case 2:
		return "no free session"
	default:
		return "unknown error"
	}
}

func rrf2StatusEndpoint(detail string) string {
	return expandEndpoint(rrf2StatusTmpl, map[string]string{"type": detail}, url.QueryEscape)
}

// request sends one request to the printer. Transport failures are returned as
// CONNECTION_ERROR; the caller owns the response body.
func (c *Client) request(method, endpoint string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequest(method, c.baseURL+endpoint, body)
	if err != nil {
		return nil, errors.NewInternalError(fmt.Sprintf("failed to build request for %s", endpoint), err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "text/plain")
	}

	log.Debugf("%s %s", method, redactPassword(req.URL))
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.NewConnectionError(fmt.Sprintf("failed to fetch %s", endpoint), err)
	}
	return resp, nil
}

// fetch GETs endpoint and returns the body of a 2xx response.
func (c *Client) fetch(endpoint string) ([]byte, error) {
	resp, err := c.request(http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	defer utils.CloseOrWarn(resp.Body)

	if !isSuccess(resp.StatusCode) {
		return nil, errors.NewHTTPStatusError(
			fmt.Sprintf("unexpected status code %d for %s", resp.StatusCode, endpoint),
			&StatusError{StatusCode: resp.StatusCode, Reason: reasonPhrase(resp)},
		)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.NewConnectionError("failed to read response body", err)
	}
	return body, nil
}

// fetchAndValidate GETs endpoint and decodes the body into T, rejecting
// documents that miss fields T requires.
func fetchAndValidate[T any](c *Client, endpoint string) (T, error) {
	var result T

	body, err := c.fetch(endpoint)
	if err != nil {
		return result, err
	}

	if err := json.Unmarshal(body, &result); err != nil {
		return result, errors.NewMalformedResponseError(fmt.Sprintf("failed to unmarshal response of %s", endpoint), err)
	}
	if err := validateResponse(&result); err != nil {
		return result, errors.NewMalformedResponseError(fmt.Sprintf("unexpected response of %s", endpoint), err)
	}

	return result, nil
}

func (c *Client) unsupported() error {
	return errors.NewUnsupportedFirmwareError(fmt.Sprintf("%s: firmware generation was not detected", c.baseURL))
}

// GetCoordinates returns the current position of every axis the firmware
// reports, keyed by axis letter.
func (c *Client) GetCoordinates() (Coordinates, error) {
	switch c.generation {
	case Generation2:
		return c.getCoordinatesRRF2()
	case Generation3:
		return c.getCoordinatesRRF3()
	default:
		return nil, c.unsupported()
	}
}

func (c *Client) getCoordinatesRRF2() (Coordinates, error) {
	endpoint := rrf2StatusEndpoint(rrf2StatusDetail)
	status, err := fetchAndValidate[rrf2CoordinatesResponse](c, endpoint)
	if err != nil {
		return nil, err
	}

	xyz, names := status.Coords.XYZ, status.AxisNames
	if len(xyz) != len(names) {
		return nil, errors.NewMalformedResponseError(
			fmt.Sprintf("%s reports %d positions for %d axis names", endpoint, len(xyz), len(names)), nil)
	}

	coords := make(Coordinates, len(xyz))
	for i, name := range names {
		if _, dup := coords[name]; dup {
			return nil, errors.NewMalformedResponseError(fmt.Sprintf("%s reports axis %s twice", endpoint, name), nil)
		}
		coords[name] = xyz[i]
	}
	return coords, nil
}

func (c *Client) getCoordinatesRRF3() (Coordinates, error) {
	status, err := fetchAndValidate[rrf3MoveResponse](c, rrf3StatusPath)
	if err != nil {
		return nil, err
	}

	move := status.Result.Move
	coords := make(Coordinates, len(move.Axes))
	for _, axis := range move.Axes {
		drive := axis.Drives[0]
		if drive < 0 || drive >= len(move.Drives) {
			return nil, errors.NewMalformedResponseError(
				fmt.Sprintf("axis %s references drive %d, but %d drives are reported", axis.Letter, drive, len(move.Drives)), nil)
		}
		if _, dup := coords[axis.Letter]; dup {
			return nil, errors.NewMalformedResponseError(fmt.Sprintf("%s reports axis %s twice", rrf3StatusPath, axis.Letter), nil)
		}
		coords[axis.Letter] = *move.Drives[drive].Position
	}
	return coords, nil
}

// GetExtruderCount returns the number of extruders the firmware reports.
func (c *Client) GetExtruderCount() (int, error) {
	switch c.generation {
	case Generation2:
		status, err := fetchAndValidate[rrf2ExtrudersResponse](c, rrf2StatusEndpoint(rrf2StatusDetail))
		if err != nil {
			return 0, err
		}
		return len(status.Coords.Extr), nil
	case Generation3:
		status, err := fetchAndValidate[rrf3ExtrudersResponse](c, rrf3StatusPath)
		if err != nil {
			return 0, err
		}
		return len(status.Result.Move.Extruders), nil
	default:
		return 0, c.unsupported()
	}
}

// GetToolCount returns the number of tools the firmware reports.
func (c *Client) GetToolCount() (int, error) {
	switch c.generation {
	case Generation2:
		status, err := fetchAndValidate[rrf2ToolsResponse](c, rrf2StatusEndpoint(rrf2StatusDetail))
		if err != nil {
			return 0, err
		}
		return len(status.Tools), nil
	case Generation3:
		status, err := fetchAndValidate[rrf3ToolsResponse](c, rrf3StatusPath)
		if err != nil {
			return 0, err
		}
		return len(status.Result.Tools), nil
	default:
		return 0, c.unsupported()
	}
}

// GetStatus returns the machine status.
//
// RRF2 reports a one-letter code; "I" and "P" are translated to "idle" and
// "processing" and any other code is returned as is. RRF3 already reports a
// word and it is returned unchanged.
func (c *Client) GetStatus() (string, error) {
	switch c.generation {
	case Generation2:
		status, err := fetchAndValidate[rrf2StatusResponse](c, rrf2StatusEndpoint(rrf2StatusDetail))
		if err != nil {
			return "", err
		}
		return normalizeRRF2Status(status.Status), nil
	case Generation3:
		status, err := fetchAndValidate[rrf3StatusResponse](c, rrf3StatusPath)
		if err != nil {
			return "", err
		}
		return status.Result.State.Status, nil
	default:
		return "", c.unsupported()
	}
}

func normalizeRRF2Status(code string) string {
	switch code {
	case "I":
		return "idle"
	case "P":
		return "processing"
	default:
		return code
	}
}

// SendGCode runs one G-code command on the printer.
//
// A 2xx answer returns nil. Any other status is logged and returned as a
// COMMAND_ERROR whose cause is a *StatusError; use StatusCode to read it.
// The command is not retried.
func (c *Client) SendGCode(command string) error {
	var resp *http.Response
	var err error

	switch c.generation {
	case Generation2:
		endpoint := expandEndpoint(rrf2GCodeTmpl, map[string]string{"gcode": command}, url.QueryEscape)
		resp, err = c.request(http.MethodGet, endpoint, nil)
	case Generation3:
		resp, err = c.request(http.MethodPost, rrf3CodePath, strings.NewReader(command))
	default:
		return c.unsupported()
	}
	if err != nil {
		return err
	}
	defer utils.CloseOrWarn(resp.Body)

	reply, readErr := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if readErr != nil {
		log.Debugf("Failed to read reply to G-code %q: %v", command, readErr)
	}

	if !isSuccess(resp.StatusCode) {
		statusErr := &StatusError{StatusCode: resp.StatusCode, Reason: reasonPhrase(resp)}
		log.Errorf("G-code command %q return code = %d (%s)", command, statusErr.StatusCode, statusErr.Reason)
		return errors.NewCommandError(fmt.Sprintf("printer rejected %q", command), statusErr)
	}

	if text := strings.TrimSpace(string(reply)); text != "" {
		log.Debugf("G-code %q reply: %s", command, text)
	}
	return nil
}

// GetFileLines downloads a file from the printer's filesystem and returns its
// lines in order. Line endings are removed and a final newline does not
// produce an empty last line.
func (c *Client) GetFileLines(path string) ([]string, error) {
	var endpoint string
	switch c.generation {
	case Generation2:
		endpoint = expandEndpoint(rrf2DownloadTmpl, map[string]string{"name": path}, url.QueryEscape)
	case Generation3:
		endpoint = expandEndpoint(rrf3FileTmpl, map[string]string{"path": path}, escapeFilePath)
	default:
		return nil, c.unsupported()
	}

	body, err := c.fetch(endpoint)
	if err != nil {
		return nil, err
	}
	return splitLines(body)
}

func splitLines(body []byte) ([]string, error) {
	lines := make([]string, 0)
	s := bufio.NewScanner(bytes.NewReader(body))
	s.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), len(body)+bufio.MaxScanTokenSize)
	for s.Scan() {
		lines = append(lines, s.Text())
	}
	if err := s.Err(); err != nil {
		return nil, errors.NewInternalError("failed to split file into lines", err)
	}
	return lines, nil
}

// redactPassword hides the login password in debug output.
func redactPassword(u *url.URL) string {
	q := u.Query()
	if q.Get("password") == "" {
		return u.String()
	}
	q.Set("password", "xxxxx")
	redacted := *u
	redacted.RawQuery = q.Encode()
	return redacted.String()
}

func isSuccess(statusCode int) bool {
	return statusCode >= 200 && statusCode < 300
}

// reasonPhrase returns the reason part of "503 Service Unavailable".
func reasonPhrase(resp *http.Response) string {
	if _, reason, ok := strings.Cut(resp.Status, " "); ok && reason != "" {
		return reason
	}
	return http.StatusText(resp.StatusCode)
}
