package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/FairForge/urlsigner/internal/model"
	"github.com/xeipuuv/gojsonschema"
)

const maxBodyBytes = 1 << 20

// Object names are limited to 1024 bytes by GCS and S3.
const objectRequestSchema = `{
	"type": "object",
	"required": ["object"],
	"properties": {
		"object": {"type": "string", "minLength": 1, "maxLength": 1024},
		"contentType": {"type": "string", "maxLength": 255}
	}
}`

var objectSchema = mustSchema(objectRequestSchema)

func mustSchema(doc string) *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(doc))
	if err != nil {
		panic(fmt.Sprintf("api: invalid schema: %v", err))
	}
	return schema
}

// ValidationError lists every schema violation of a request body
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "invalid request: " + strings.Join(e.Problems, "; ")
}

// parseObjectRequest reads and validates an ObjectRequest body
func parseObjectRequest(body io.Reader) (model.ObjectRequest, error) {
	var req model.ObjectRequest

	data, err := io.ReadAll(body)
	if err != nil {
		return req, fmt.Errorf("read body: %w", err)
	}
	if !json.Valid(data) {
		return req, &ValidationError{Problems: []string{"body is not valid JSON"}}
	}

	result, err := objectSchema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return req, &ValidationError{Problems: []string{err.Error()}}
	}
	if !result.Valid() {
		verr := &ValidationError{}
		for _, desc := range result.Errors() {
			verr.Problems = append(verr.Problems, desc.String())
		}
		return req, verr
	}

	if err := json.Unmarshal(data, &req); err != nil {
		return req, &ValidationError{Problems: []string{err.Error()}}
	}
	return req, nil
}

// decodeObjectRequest writes a 400 and returns false when the body is unusable
func (s *Server) decodeObjectRequest(w http.ResponseWriter, r *http.Request) (model.ObjectRequest, bool) {
	req, err := parseObjectRequest(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err == nil {
		return req, true
	}

	var verr *ValidationError
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &verr):
		writeError(w, http.StatusBadRequest, model.CodeValidationError, verr.Error())
	case errors.As(err, &tooLarge):
		writeError(w, http.StatusRequestEntityTooLarge, model.CodeValidationError, "request body too large")
	default:
		writeError(w, http.StatusBadRequest, model.CodeValidationError, "unable to read request body")
	}
	return req, false
}
