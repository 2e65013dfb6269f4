package index

import (
	"fmt"
)

//
// Contracts for content that can be indexed. An item renders itself to a
// solr document, a source streams every item of one type.
//

// IDSeparator - joins the item type and the item id into the solr
// document id
const IDSeparator string = "."

// TypeField - the document field holding the item type
const TypeField string = "item_type_s"

// Indexable - an item that can be indexed as a solr document
type Indexable interface {

	// IndexID - the unique solr document id, normally type and id joined
	// by the separator
	IndexID() string

	// IndexType - the label of this kind of item, unique across the
	// application
	IndexType() string

	// IndexData - the document to index for this item
	IndexData() map[string]interface{}
}

// BuildID - joins an item type and a raw id into a solr document id
func BuildID(itemType, id string) string {

	return fmt.Sprintf("%s%s%s", itemType, IDSeparator, id)
}

// BaseData - the minimal document for an item: its id and type. Items
// normally build on top of this in IndexData.
func BaseData(item Indexable) map[string]interface{} {

	return map[string]interface{}{
		"id":      item.IndexID(),
		TypeField: item.IndexType(),
	}
}
