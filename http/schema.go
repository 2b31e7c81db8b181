package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/fwojciec/bookvox"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

var (
	cleanTextSchema = jsonschema.MustCompileString("clean-text.json", `{
		"type": "object",
		"required": ["text"],
		"properties": {
			"text": {"type": "string"},
			"isDoublePage": {"type": "boolean"},
			"tier": {"type": "string", "enum": ["conservative", "balanced", "aggressive"]}
		}
	}`)

	visionExtractSchema = jsonschema.MustCompileString("vision-extract.json", `{
		"type": "object",
		"required": ["image"],
		"properties": {
			"image": {"type": "string", "minLength": 1},
			"isDoublePage": {"type": "boolean"}
		}
	}`)

	ttsSchema = jsonschema.MustCompileString("tts.json", `{
		"type": "object",
		"required": ["text"],
		"properties": {
			"text": {"type": "string"}
		}
	}`)
)

// decode reads a JSON body, validates it against schema and unmarshals it
// into dst.
func decode(r *http.Request, schema *jsonschema.Schema, dst any) error {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return bookvox.Errorf(bookvox.EINVALID, "request body over %d bytes", maxErr.Limit)
		}
		return bookvox.Errorf(bookvox.EINVALID, "read request body: %v", err)
	}

	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		return bookvox.Errorf(bookvox.EINVALID, "invalid JSON body")
	}
	if err := schema.Validate(v); err != nil {
		return bookvox.Errorf(bookvox.EINVALID, "invalid request: %s", validationMessage(err))
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return bookvox.Errorf(bookvox.EINVALID, "invalid request: %v", err)
	}
	return nil
}

// validationMessage flattens a schema error to its innermost causes.
func validationMessage(err error) string {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return err.Error()
	}
	var msgs []string
	var walk func(*jsonschema.ValidationError)
	walk = func(e *jsonschema.ValidationError) {
		if len(e.Causes) == 0 {
			loc := e.InstanceLocation
			if loc == "" {
				loc = "body"
			}
			msgs = append(msgs, loc+": "+e.Message)
			return
		}
		for _, c := range e.Causes {
			walk(c)
		}
	}
	walk(ve)
	return strings.Join(msgs, "; ")
}
