package ports

import (
	"context"

	"github.com/fredcamaral/slidecast/internal/domain/entities"
)

// DeckBuilder produces a deck from an outline or document file
type DeckBuilder interface {
	BuildDeck(ctx context.Context, sourcePath string, liveReload bool) (*entities.Deck, error)
}
