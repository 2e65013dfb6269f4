package dbindex

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/uol/gobol"

	"github.com/solrkit/solrkit/lib/index"
)

//
// A relational source paging through a table with limit and offset.
//

const (
	cFuncSQLNext  string = "Next"
	cFuncSQLTotal string = "Total"
	cFuncSQLGet   string = "Get"

	cDefaultPageSize int = 500
)

// SQLSettings - configuration of a relational item source
type SQLSettings struct {

	// ItemType - the item type label of the yielded items
	ItemType string

	// Query - the page query, limit and offset are appended
	Query string

	// CountQuery - the total count query
	CountQuery string

	// GetQuery - the single item query with one id placeholder
	GetQuery string

	// IDColumn - the column holding the item id
	IDColumn string

	// PageSize - how many rows are fetched per page
	PageSize int
}

// SQLSource - streams table rows as indexable items
type SQLSource struct {
	db       *sqlx.DB
	settings *SQLSettings

	buffer    []index.Indexable
	offset    int
	exhausted bool
}

// NewSQLSource - creates a source over a relational database
func NewSQLSource(db *sqlx.DB, settings *SQLSettings) *SQLSource {

	if settings.PageSize <= 0 {
		settings.PageSize = cDefaultPageSize
	}

	return &SQLSource{
		db:       db,
		settings: settings,
	}
}

// ItemType - the item type label of this source
func (s *SQLSource) ItemType() string {

	return s.settings.ItemType
}

// fetchPage - loads the next page of rows into the buffer
func (s *SQLSource) fetchPage(ctx context.Context) gobol.Error {

	query := fmt.Sprintf("%s LIMIT %d OFFSET %d", s.settings.Query, s.settings.PageSize, s.offset)

	rows, err := s.db.QueryxContext(ctx, query)
	if err != nil {
		return errInternalServer(cFuncSQLNext, err)
	}

	defer rows.Close()

	fetched := 0

	for rows.Next() {

		row := map[string]interface{}{}
		if err := rows.MapScan(row); err != nil {
			return errInternalServer(cFuncSQLNext, err)
		}

		s.buffer = append(s.buffer, rowToItem(s.settings.ItemType, s.settings.IDColumn, row))
		fetched++
	}

	if err := rows.Err(); err != nil {
		return errInternalServer(cFuncSQLNext, err)
	}

	s.offset += fetched

	if fetched < s.settings.PageSize {
		s.exhausted = true
	}

	return nil
}

// Next - returns the next row as an item, nil when the table is done
func (s *SQLSource) Next(ctx context.Context) (index.Indexable, gobol.Error) {

	if len(s.buffer) == 0 {

		if s.exhausted {
			return nil, nil
		}

		if gerr := s.fetchPage(ctx); gerr != nil {
			return nil, gerr
		}

		if len(s.buffer) == 0 {
			return nil, nil
		}
	}

	item := s.buffer[0]
	s.buffer = s.buffer[1:]

	return item, nil
}

// Total - the number of rows this source will yield
func (s *SQLSource) Total(ctx context.Context) (int64, gobol.Error) {

	var total int64

	if err := s.db.GetContext(ctx, &total, s.settings.CountQuery); err != nil {
		return 0, errInternalServer(cFuncSQLTotal, err)
	}

	return total, nil
}

// Get - returns the row with the given id as an item, nil when missing
func (s *SQLSource) Get(ctx context.Context, id string) (index.Indexable, gobol.Error) {

	rows, err := s.db.QueryxContext(ctx, s.settings.GetQuery, id)
	if err != nil {
		return nil, errInternalServer(cFuncSQLGet, err)
	}

	defer rows.Close()

	if !rows.Next() {

		if err := rows.Err(); err != nil {
			return nil, errInternalServer(cFuncSQLGet, err)
		}

		return nil, nil
	}

	row := map[string]interface{}{}
	if err := rows.MapScan(row); err != nil {
		return nil, errInternalServer(cFuncSQLGet, err)
	}

	return rowToItem(s.settings.ItemType, s.settings.IDColumn, row), nil
}
