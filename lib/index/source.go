package index

import (
	"context"

	"github.com/uol/gobol"
)

// Source - streams every item of one type for bulk indexing
type Source interface {

	// ItemType - the type label of the items this source yields
	ItemType() string

	// Next - returns the next item, nil when the source is exhausted
	Next(ctx context.Context) (Indexable, gobol.Error)

	// Total - the number of items this source will yield
	Total(ctx context.Context) (int64, gobol.Error)
}

// Provider - a source that can also resolve a single item by its raw id
type Provider interface {
	Source

	// Get - returns the item with the given raw id
	Get(ctx context.Context, id string) (Indexable, gobol.Error)
}
