// Package document reads and writes documents as YAML or JSON files.
package document

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"github.com/fredcamaral/slidecast/internal/adapters/secondary/output"
	"github.com/fredcamaral/slidecast/internal/domain/entities"
	"github.com/fredcamaral/slidecast/internal/domain/ports"
)

// Format is a document serialization
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatFromPath picks the format from the file extension
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported document extension %q (use .yaml, .yml or .json)", filepath.Ext(path))
	}
}

// IsDocumentPath reports whether path names a document file rather than an outline
func IsDocumentPath(path string) bool {
	_, err := FormatFromPath(path)
	return err == nil
}

// Store implements ports.DocumentStore
type Store struct {
	schema *jsonschema.Schema
	logger *slog.Logger
}

// NewStore creates a store with the embedded document schema
func NewStore(logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}

	schema, err := compileSchema()
	if err != nil {
		return nil, fmt.Errorf("compiling document schema: %w", err)
	}

	return &Store{
		schema: schema,
		logger: logger.With("service", "document_store"),
	}, nil
}

// Load reads, validates and decodes a document file
func (s *Store) Load(ctx context.Context, path string) (*entities.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path) // #nosec G304 - path is supplied by the user on the command line
	if err != nil {
		return nil, fmt.Errorf("reading document: %w", err)
	}

	doc, err := s.decode(data, format)
	if err != nil {
		var schemaErr *SchemaError
		if errors.As(err, &schemaErr) {
			schemaErr.Source = path
		}
		return nil, err
	}

	s.logger.Debug("Document loaded",
		slog.String("path", path),
		slog.String("format", string(format)),
		slog.Int("slides", doc.SlideCount()),
	)

	return doc, nil
}

// Save encodes the document in the format implied by path and replaces the
// file atomically.
func (s *Store) Save(ctx context.Context, path string, doc *entities.Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	data, err := Marshal(doc, format)
	if err != nil {
		return err
	}

	if err := output.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("saving document: %w", err)
	}

	s.logger.Debug("Document saved",
		slog.String("path", path),
		slog.String("format", string(format)),
		slog.Int("bytes", len(data)),
	)

	return nil
}

// Decode reads a document from r
func (s *Store) Decode(r io.Reader, format Format) (*entities.Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading document: %w", err)
	}
	return s.decode(data, format)
}

// Encode writes a document to w
func (s *Store) Encode(w io.Writer, doc *entities.Document, format Format) error {
	data, err := Marshal(doc, format)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func (s *Store) decode(data []byte, format Format) (*entities.Document, error) {
	instance, err := toInstance(data, format)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ports.ErrInvalidDocument, err)
	}

	if err := s.schema.Validate(instance); err != nil {
		return nil, &SchemaError{Issues: issuesFrom(err)}
	}

	doc := entities.NewDocument()
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, doc)
	case FormatJSON:
		err = json.Unmarshal(data, doc)
	default:
		err = fmt.Errorf("unsupported format %q", format)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ports.ErrInvalidDocument, err)
	}
	doc.Normalize()

	if err := doc.Validate(); err != nil {
		return nil, &SchemaError{Issues: []Issue{{Message: err.Error()}}}
	}

	return doc, nil
}

// toInstance converts raw bytes into the generic JSON value the schema
// validator expects. YAML goes through JSON so numbers are json.Number.
func toInstance(data []byte, format Format) (interface{}, error) {
	switch format {
	case FormatJSON:
		return jsonschema.UnmarshalJSON(bytes.NewReader(data))
	case FormatYAML:
		var raw interface{}
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
		encoded, err := json.Marshal(raw)
		if err != nil {
			return nil, err
		}
		return jsonschema.UnmarshalJSON(bytes.NewReader(encoded))
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
}

// Marshal encodes a document. YAML uses two-space indentation.
func Marshal(doc *entities.Document, format Format) ([]byte, error) {
	switch format {
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return nil, fmt.Errorf("encoding yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("encoding yaml: %w", err)
		}
		return buf.Bytes(), nil
	case FormatJSON:
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encoding json: %w", err)
		}
		return append(data, '\n'), nil
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
}

var _ ports.DocumentStore = (*Store)(nil)
