package dbindex

import (
	"fmt"

	"github.com/solrkit/solrkit/lib/index"
)

//
// Database rows rendered as indexable items. Column values become
// document fields as-is, the id column becomes the document id.
//

// Item - a database row as an indexable item
type Item struct {

	// ID - the raw item id from the id column
	ID string

	// Type - the item type label of the source
	Type string

	// Data - the remaining row columns
	Data map[string]interface{}
}

// IndexID - the solr document id
func (i *Item) IndexID() string {

	return index.BuildID(i.Type, i.ID)
}

// IndexType - the item type label
func (i *Item) IndexType() string {

	return i.Type
}

// IndexData - the document for this row: base fields plus every column
func (i *Item) IndexData() map[string]interface{} {

	data := index.BaseData(i)

	for column, value := range i.Data {
		data[column] = value
	}

	return data
}

// rowToItem - converts a scanned row into an item, byte slices from the
// driver become strings
func rowToItem(itemType, idColumn string, row map[string]interface{}) *Item {

	data := make(map[string]interface{}, len(row))

	var id string

	for column, value := range row {

		if raw, ok := value.([]byte); ok {
			value = string(raw)
		}

		if column == idColumn {
			id = fmt.Sprintf("%v", value)
			continue
		}

		data[column] = value
	}

	return &Item{
		ID:   id,
		Type: itemType,
		Data: data,
	}
}
