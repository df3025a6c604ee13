package ports

import (
	"context"

	"github.com/fredcamaral/slidecast/internal/domain/entities"
)

// Renderer turns a document into a self-contained HTML deck
type Renderer interface {
	Render(ctx context.Context, doc *entities.Document, opts entities.RenderOptions) ([]byte, error)
}
