package document

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/fredcamaral/slidecast/internal/domain/ports"
)

//go:embed schema.json
var schemaJSON []byte

const schemaURL = "document.schema.json"

// Issue is a single validation failure
type Issue struct {
	Location string
	Message  string
}

// SchemaError lists every problem found in a document file
type SchemaError struct {
	Source string
	Issues []Issue
}

func (e *SchemaError) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		location := strings.TrimSpace(issue.Location)
		if location == "" {
			location = "#"
		} else if !strings.HasPrefix(location, "#") {
			location = "#" + location
		}
		parts = append(parts, fmt.Sprintf("%s: %s", location, issue.Message))
	}

	msg := strings.Join(parts, "; ")
	if e.Source != "" {
		return fmt.Sprintf("invalid document %s: %s", e.Source, msg)
	}
	return "invalid document: " + msg
}

// Unwrap lets callers match ports.ErrInvalidDocument
func (e *SchemaError) Unwrap() error {
	return ports.ErrInvalidDocument
}

func compileSchema() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource(schemaURL, bytes.NewReader(schemaJSON)); err != nil {
		return nil, err
	}
	return compiler.Compile(schemaURL)
}

// issuesFrom flattens a validation error into its leaf causes
func issuesFrom(err error) []Issue {
	var validationErr *jsonschema.ValidationError
	if !errors.As(err, &validationErr) {
		return []Issue{{Message: err.Error()}}
	}

	var issues []Issue
	var walk func(*jsonschema.ValidationError)
	walk = func(node *jsonschema.ValidationError) {
		if len(node.Causes) == 0 {
			issues = append(issues, Issue{
				Location: strings.TrimSpace(node.InstanceLocation),
				Message:  strings.TrimSpace(node.Message),
			})
			return
		}
		for _, cause := range node.Causes {
			walk(cause)
		}
	}
	walk(validationErr)
	return issues
}
