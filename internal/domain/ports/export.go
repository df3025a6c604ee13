package ports

import (
	"context"

	"github.com/fredcamaral/slidecast/internal/domain/entities"
)

// HandoutExporter writes a printable handout of a document
type HandoutExporter interface {
	Export(ctx context.Context, doc *entities.Document, outPath string) error
}
