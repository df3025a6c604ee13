package ports

import "github.com/fredcamaral/slidecast/internal/domain/entities"

// OutlineParser turns outline text into a document. Implementations never
// fail on content: every input yields a valid, possibly empty, document.
type OutlineParser interface {
	Parse(text string) *entities.Document
}

// OutlineFormatter writes a document back out as outline text
type OutlineFormatter interface {
	Format(doc *entities.Document) string
}
