package index

import (
	"context"
	"fmt"

	"github.com/uol/gobol"
	"github.com/uol/logh"
	tlmanager "github.com/uol/timelinemanager"

	"github.com/solrkit/solrkit/lib/constants"
	"github.com/solrkit/solrkit/lib/solr"
	"github.com/solrkit/solrkit/lib/utils"
)

//
// Chunked indexing of items into solr. Large sources are pushed in
// fixed size chunks so memory use stays flat.
//

const (
	cFuncIndexItems string = "IndexItems"
	cFuncIndex      string = "Index"
	cFuncRemove     string = "Remove"
	cFuncClear      string = "Clear"

	// DefaultChunkSize - how many documents go into a single update
	// request during bulk indexing
	DefaultChunkSize int = 150

	// ClearAll - the clear target wiping every document
	ClearAll string = "all"

	cMetricIndexedItems string = "index.items"
	cMetricRemovedItems string = "index.removed"
	cTagItemType        string = "item_type"
)

// UpdateAPI - the update operations the indexer needs
type UpdateAPI interface {
	Index(docs []map[string]interface{}, opts *solr.UpdateOptions) gobol.Error
	DeleteByID(ids []string, opts *solr.UpdateOptions) gobol.Error
	DeleteByQuery(query string, opts *solr.UpdateOptions) gobol.Error
}

// Progress - called after every indexed chunk with the running total
type Progress func(count int64)

// Indexer - pushes indexable items into solr
type Indexer struct {
	update          UpdateAPI
	chunkSize       int
	logger          *logh.ContextualLogger
	timelineManager *tlmanager.Instance
}

// NewIndexer - creates an indexer, a zero chunk size selects the default
func NewIndexer(update UpdateAPI, chunkSize int, timelineManager *tlmanager.Instance) *Indexer {

	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}

	return &Indexer{
		update:          update,
		chunkSize:       chunkSize,
		logger:          logh.CreateContextualLogger(constants.StringsPKG, cPackage),
		timelineManager: timelineManager,
	}
}

// Index - indexes a single item
func (i *Indexer) Index(item Indexable) gobol.Error {

	if gerr := i.update.Index([]map[string]interface{}{item.IndexData()}, nil); gerr != nil {
		return gerr
	}

	i.statsItems(cMetricIndexedItems, item.IndexType(), 1)

	return nil
}

// Remove - removes a single item from the index by its document id
func (i *Indexer) Remove(item Indexable) gobol.Error {

	if logh.DebugEnabled {
		i.logger.Debug().Str(constants.StringsFunc, cFuncRemove).
			Msgf("deleting document from index: %s", item.IndexID())
	}

	if gerr := i.update.DeleteByID([]string{item.IndexID()}, nil); gerr != nil {
		return gerr
	}

	i.statsItems(cMetricRemovedItems, item.IndexType(), 1)

	return nil
}

// IndexItems - indexes every item of a source in chunks, reporting the
// running total after each chunk. Returns the number of items indexed.
func (i *Indexer) IndexItems(ctx context.Context, source Source, progress Progress) (int64, gobol.Error) {

	chunk := make([]map[string]interface{}, 0, i.chunkSize)

	var count int64

	flush := func() gobol.Error {

		if len(chunk) == 0 {
			return nil
		}

		if gerr := i.update.Index(chunk, nil); gerr != nil {
			return gerr
		}

		count += int64(len(chunk))
		i.statsItems(cMetricIndexedItems, source.ItemType(), len(chunk))

		if progress != nil {
			progress(count)
		}

		chunk = chunk[:0]

		return nil
	}

	for {
		if err := ctx.Err(); err != nil {
			return count, errBadRequest(cFuncIndexItems, err)
		}

		item, gerr := source.Next(ctx)
		if gerr != nil {
			return count, gerr
		}

		if item == nil {
			break
		}

		chunk = append(chunk, item.IndexData())

		if len(chunk) >= i.chunkSize {
			if gerr := flush(); gerr != nil {
				return count, gerr
			}
		}
	}

	if gerr := flush(); gerr != nil {
		return count, gerr
	}

	return count, nil
}

// Clear - removes every document of a type from the index, or every
// document when the target is "all". The type is quoted so names with
// query syntax characters stay literal.
func (i *Indexer) Clear(target string) gobol.Error {

	query := fmt.Sprintf("%s:%s", TypeField, utils.QuoteTerm(target))

	if target == ClearAll {
		query = "*:*"
	}

	if logh.InfoEnabled {
		i.logger.Info().Str(constants.StringsFunc, cFuncClear).
			Msgf("clearing index with query: %s", query)
	}

	return i.update.DeleteByQuery(query, nil)
}

// statsItems - accumulates an indexed document count
func (i *Indexer) statsItems(metric, itemType string, count int) {

	if i.timelineManager == nil {
		return
	}

	i.timelineManager.FlattenCountN(
		cPackage,
		float64(count),
		metric,
		cTagItemType, itemType,
	)
}
