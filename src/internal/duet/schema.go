package duet

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Response documents, one per query so a query only insists on the fields it
// reads. Pointers and slices tagged "required" reject both a missing key and null.

// RRF2 (/rr_connect, /rr_status).

type rrf2ConnectResponse struct {
	Err *int `json:"err"`
}

type rrf2ProbeResponse struct {
	Coords map[string]json.RawMessage `json:"coords" validate:"required"`
}

type rrf2CoordinatesResponse struct {
	Coords    *rrf2XYZ  `json:"coords" validate:"required"`
	AxisNames AxisNames `json:"axisNames" validate:"required"`
}

type rrf2XYZ struct {
	XYZ []float64 `json:"xyz" validate:"required"`
}

type rrf2ExtrudersResponse struct {
	Coords *rrf2Extruders `json:"coords" validate:"required"`
}

type rrf2Extruders struct {
	Extr []float64 `json:"extr" validate:"required"`
}

type rrf2ToolsResponse struct {
	Tools []json.RawMessage `json:"tools" validate:"required"`
}

type rrf2StatusResponse struct {
	Status string `json:"status" validate:"required"`
}

// AxisNames is the RRF2 axisNames field. Firmware sends a string with one
// letter per axis ("XYZ"); an array of strings is accepted as well.
type AxisNames []string

func (a *AxisNames) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*a = nil
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		names := make(AxisNames, 0, len(s))
		for _, r := range s {
			names = append(names, string(r))
		}
		*a = names
		return nil
	}

	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("axisNames must be a string or an array of strings: %w", err)
	}
	*a = list
	return nil
}

// RRF3 (/machine/status).

type rrf3ProbeResponse struct {
	Result map[string]json.RawMessage `json:"result" validate:"required"`
}

type rrf3MoveResponse struct {
	Result *rrf3MoveResult `json:"result" validate:"required"`
}

type rrf3MoveResult struct {
	Move *rrf3Move `json:"move" validate:"required"`
}

type rrf3Move struct {
	Axes   []rrf3Axis  `json:"axes" validate:"required,dive"`
	Drives []rrf3Drive `json:"drives" validate:"required,dive"`
}

type rrf3Axis struct {
	Letter string `json:"letter" validate:"required"`
	Drives []int  `json:"drives" validate:"required,min=1"`
}

type rrf3Drive struct {
	Position *float64 `json:"position" validate:"required"`
}

type rrf3ExtrudersResponse struct {
	Result *rrf3ExtrudersResult `json:"result" validate:"required"`
}

type rrf3ExtrudersResult struct {
	Move *rrf3ExtrudersMove `json:"move" validate:"required"`
}

type rrf3ExtrudersMove struct {
	Extruders []json.RawMessage `json:"extruders" validate:"required"`
}

type rrf3ToolsResponse struct {
	Result *rrf3ToolsResult `json:"result" validate:"required"`
}

type rrf3ToolsResult struct {
	Tools []json.RawMessage `json:"tools" validate:"required"`
}

type rrf3StatusResponse struct {
	Result *rrf3StatusResult `json:"result" validate:"required"`
}

type rrf3StatusResult struct {
	State *rrf3State `json:"state" validate:"required"`
}

type rrf3State struct {
	Status string `json:"status" validate:"required"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()

	// Report fields by their JSON names so errors read like the firmware document.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// validateResponse checks a decoded document and describes every violation
// with its JSON path, e.g. "result.move.axes[1].drives: must have at least 1 element(s)".
func validateResponse(doc interface{}) error {
	err := validate.Struct(doc)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !stderrors.As(err, &fieldErrs) {
		return err
	}

	problems := make([]string, 0, len(fieldErrs))
	for _, e := range fieldErrs {
		path := e.Namespace()
		// Drop the Go type name that prefixes the namespace.
		if idx := strings.Index(path, "."); idx != -1 {
			path = path[idx+1:]
		}
		problems = append(problems, path+": "+getValidationMessage(e))
	}
	return fmt.Errorf("%s", strings.Join(problems, "; "))
}

// getValidationMessage returns a human-readable message for a validation error
func getValidationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "field is missing"
	case "min":
		return fmt.Sprintf("must have at least %s element(s)", e.Param())
	default:
		return fmt.Sprintf("validation failed: %s", e.Tag())
	}
}
