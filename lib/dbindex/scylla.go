package dbindex

import (
	"context"

	"github.com/gocql/gocql"
	"github.com/uol/gobol"

	"github.com/solrkit/solrkit/lib/index"
)

//
// A cassandra/scylla source streaming a table through a paged iterator.
//

const (
	cFuncScyllaNext  string = "Next"
	cFuncScyllaTotal string = "Total"
	cFuncScyllaGet   string = "Get"
)

// ScyllaSettings - configuration of a scylla item source
type ScyllaSettings struct {

	// ItemType - the item type label of the yielded items
	ItemType string

	// Query - the full table scan query
	Query string

	// CountQuery - the total count query
	CountQuery string

	// GetQuery - the single item query with one id placeholder
	GetQuery string

	// IDColumn - the column holding the item id
	IDColumn string

	// PageSize - the iterator page size
	PageSize int
}

// ScyllaSource - streams scylla rows as indexable items
type ScyllaSource struct {
	session  *gocql.Session
	settings *ScyllaSettings

	iter *gocql.Iter
}

// NewScyllaSource - creates a source over a scylla session
func NewScyllaSource(session *gocql.Session, settings *ScyllaSettings) *ScyllaSource {

	if settings.PageSize <= 0 {
		settings.PageSize = cDefaultPageSize
	}

	return &ScyllaSource{
		session:  session,
		settings: settings,
	}
}

// ItemType - the item type label of this source
func (s *ScyllaSource) ItemType() string {

	return s.settings.ItemType
}

// Next - returns the next row as an item, nil when the scan is done
func (s *ScyllaSource) Next(ctx context.Context) (index.Indexable, gobol.Error) {

	if s.iter == nil {
		s.iter = s.session.Query(s.settings.Query).
			PageSize(s.settings.PageSize).
			WithContext(ctx).
			Iter()
	}

	row := map[string]interface{}{}

	if !s.iter.MapScan(row) {

		err := s.iter.Close()
		s.iter = nil

		if err != nil {
			return nil, errInternalServer(cFuncScyllaNext, err)
		}

		return nil, nil
	}

	return rowToItem(s.settings.ItemType, s.settings.IDColumn, row), nil
}

// Total - the number of rows this source will yield
func (s *ScyllaSource) Total(ctx context.Context) (int64, gobol.Error) {

	var total int64

	if err := s.session.Query(s.settings.CountQuery).WithContext(ctx).Scan(&total); err != nil {
		return 0, errInternalServer(cFuncScyllaTotal, err)
	}

	return total, nil
}

// Get - returns the row with the given id as an item, nil when missing
func (s *ScyllaSource) Get(ctx context.Context, id string) (index.Indexable, gobol.Error) {

	iter := s.session.Query(s.settings.GetQuery, id).WithContext(ctx).Iter()

	row := map[string]interface{}{}

	if !iter.MapScan(row) {

		if err := iter.Close(); err != nil {
			return nil, errInternalServer(cFuncScyllaGet, err)
		}

		return nil, nil
	}

	if err := iter.Close(); err != nil {
		return nil, errInternalServer(cFuncScyllaGet, err)
	}

	return rowToItem(s.settings.ItemType, s.settings.IDColumn, row), nil
}
