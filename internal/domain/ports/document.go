package ports

import (
	"context"
	"os"

	"github.com/fredcamaral/slidecast/internal/domain/entities"
)

// DocumentStore persists documents as YAML or JSON
type DocumentStore interface {
	// Load reads and validates a document file
	Load(ctx context.Context, path string) (*entities.Document, error)

	// Save writes a document, replacing any existing file atomically
	Save(ctx context.Context, path string, doc *entities.Document) error
}

// FileWriter replaces a file with fully computed contents, never leaving a
// partial file behind
type FileWriter interface {
	WriteFile(path string, data []byte, perm os.FileMode) error
}
