package travel

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// MalformedResponseError is returned when the model reply cannot be turned into
// travel options. It keeps the raw reply for display.
type MalformedResponseError struct {
	Raw        string
	Diagnostic string
}

func (e *MalformedResponseError) Error() string {
	return "malformed model response: " + e.Diagnostic
}

// IsMalformed reports whether err is a *MalformedResponseError.
func IsMalformed(err error) bool {
	var me *MalformedResponseError
	return errors.As(err, &me)
}

// optionsSchema accepts an object with at least one category; every present
// category is a list of options with provider, price and duration.
const optionsSchema = `{
  "type": "object",
  "definitions": {
    "option": {
      "type": "object",
      "required": ["provider", "price", "duration"],
      "properties": {
        "provider":    {"type": "string"},
        "price":       {"type": "number"},
        "duration":    {"type": "string"},
        "notes":       {"type": ["string", "null"]},
        "description": {"type": ["string", "null"]},
        "booking_url": {"type": ["string", "null"]}
      }
    },
    "category": {"type": "array", "items": {"$ref": "#/definitions/option"}}
  },
  "properties": {
    "flights": {"$ref": "#/definitions/category"},
    "trains":  {"$ref": "#/definitions/category"},
    "buses":   {"$ref": "#/definitions/category"},
    "cabs":    {"$ref": "#/definitions/category"}
  },
  "anyOf": [
    {"required": ["flights"]},
    {"required": ["trains"]},
    {"required": ["buses"]},
    {"required": ["cabs"]}
  ]
}`

var compiledOptionsSchema = mustCompileSchema(optionsSchema)

func mustCompileSchema(s string) *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(s))
	if err != nil {
		panic(fmt.Sprintf("travel: compile options schema: %v", err))
	}
	return schema
}

// StripFence removes a surrounding Markdown code fence (```json ... ``` or
// ``` ... ```) and whitespace.
func StripFence(input string) string {
	input = strings.TrimSpace(input)
	input = strings.TrimPrefix(input, "```json")
	input = strings.TrimPrefix(input, "```")
	input = strings.TrimSuffix(input, "```")
	return strings.TrimSpace(input)
}

// ParseResponse turns a raw model reply into a Result. Missing categories
// become empty lists. Any decode or shape failure is a *MalformedResponseError.
func ParseResponse(raw string) (Result, error) {
	clean := StripFence(raw)

	var doc any
	dec := json.NewDecoder(strings.NewReader(clean))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return nil, &MalformedResponseError{Raw: raw, Diagnostic: decodeDiagnostic(err)}
	}
	if dec.More() {
		return nil, &MalformedResponseError{Raw: raw, Diagnostic: fmt.Sprintf("unexpected data after JSON value at offset %d", dec.InputOffset())}
	}

	res, err := compiledOptionsSchema.Validate(gojsonschema.NewStringLoader(clean))
	if err != nil {
		return nil, &MalformedResponseError{Raw: raw, Diagnostic: err.Error()}
	}
	if !res.Valid() {
		msgs := make([]string, 0, len(res.Errors()))
		for _, desc := range res.Errors() {
			msgs = append(msgs, desc.String())
		}
		return nil, &MalformedResponseError{Raw: raw, Diagnostic: strings.Join(msgs, "; ")}
	}

	var payload struct {
		Flights []TravelOption `json:"flights"`
		Trains  []TravelOption `json:"trains"`
		Buses   []TravelOption `json:"buses"`
		Cabs    []TravelOption `json:"cabs"`
	}
	if err := json.NewDecoder(bytes.NewReader([]byte(clean))).Decode(&payload); err != nil {
		return nil, &MalformedResponseError{Raw: raw, Diagnostic: decodeDiagnostic(err)}
	}

	return Result{
		CategoryFlights: nonNil(payload.Flights),
		CategoryTrains:  nonNil(payload.Trains),
		CategoryBuses:   nonNil(payload.Buses),
		CategoryCabs:    nonNil(payload.Cabs),
	}, nil
}

func decodeDiagnostic(err error) string {
	var syn *json.SyntaxError
	if errors.As(err, &syn) {
		return fmt.Sprintf("%v (offset %d)", syn, syn.Offset)
	}
	return err.Error()
}

func nonNil(opts []TravelOption) []TravelOption {
	if opts == nil {
		return []TravelOption{}
	}
	return opts
}
