package query

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/uol/gobol"

	"github.com/solrkit/solrkit/lib/constants"
	"github.com/solrkit/solrkit/lib/solr"
)

//
// A fluent search builder. Every chaining method clones the queryset, so
// a queryset can be held and branched without side effects. Nothing is
// sent to solr until one of the getters runs.
//

// default operator joining multiple search expressions
const cSearchOperator string = " AND "

// Searcher - anything able to run a solr select request
type Searcher interface {

	// Query - runs a search with the given parameters
	Query(params url.Values) (*solr.QueryResponse, gobol.Error)

	// Collection - the collection the searches run against
	Collection() string
}

// Facets - the facet portion of a search response
type Facets struct {
	Fields  map[string][]solr.FacetCount
	Ranges  map[string]solr.RangeFacet
	Queries map[string]int64
}

// QuerySet - an immutable accumulator of search parameters
type QuerySet struct {
	searcher Searcher

	start   int
	stop    int
	stopSet bool

	searchQs         []string
	filterQs         []string
	sortOptions      []string
	fieldList        []string
	highlightFields  []string
	facetFieldList   []string
	rangeFacetFields []string
	statsFieldList   []string

	facetOpts     map[string]string
	statsOpts     map[string]string
	highlightOpts map[string]string
	rawParams     url.Values

	resultCache *solr.QueryResponse
}

// NewQuerySet - creates an empty queryset bound to a searcher
func NewQuerySet(searcher Searcher) *QuerySet {

	return &QuerySet{
		searcher:      searcher,
		facetOpts:     map[string]string{},
		statsOpts:     map[string]string{},
		highlightOpts: map[string]string{},
		rawParams:     url.Values{},
	}
}

// clone - copies every accumulated option, dropping the result cache
func (q *QuerySet) clone() *QuerySet {

	clone := &QuerySet{
		searcher: q.searcher,
		start:    q.start,
		stop:     q.stop,
		stopSet:  q.stopSet,

		searchQs:         append([]string(nil), q.searchQs...),
		filterQs:         append([]string(nil), q.filterQs...),
		sortOptions:      append([]string(nil), q.sortOptions...),
		fieldList:        append([]string(nil), q.fieldList...),
		highlightFields:  append([]string(nil), q.highlightFields...),
		facetFieldList:   append([]string(nil), q.facetFieldList...),
		rangeFacetFields: append([]string(nil), q.rangeFacetFields...),
		statsFieldList:   append([]string(nil), q.statsFieldList...),

		facetOpts:     map[string]string{},
		statsOpts:     map[string]string{},
		highlightOpts: map[string]string{},
		rawParams:     url.Values{},
	}

	for key, value := range q.facetOpts {
		clone.facetOpts[key] = value
	}

	for key, value := range q.statsOpts {
		clone.statsOpts[key] = value
	}

	for key, value := range q.highlightOpts {
		clone.highlightOpts[key] = value
	}

	for key, values := range q.rawParams {
		clone.rawParams[key] = append([]string(nil), values...)
	}

	return clone
}

// Search - adds search expressions, joined by AND when building the query
func (q *QuerySet) Search(queries ...string) *QuerySet {

	clone := q.clone()
	clone.searchQs = append(clone.searchQs, queries...)

	return clone
}

// Filter - adds a field equals value filter query
func (q *QuerySet) Filter(field, value string) *QuerySet {

	return q.FilterRaw(lookupEquals(field, value))
}

// FilterTagged - adds a tagged filter query so facets can exclude it
func (q *QuerySet) FilterTagged(tag, field, value string) *QuerySet {

	return q.FilterRaw(tagged(tag, lookupEquals(field, value)))
}

// FilterIn - filters on any of the given values, an empty value also
// matches documents where the field is unset
func (q *QuerySet) FilterIn(field string, values ...string) *QuerySet {

	return q.FilterRaw(lookupIn(field, values))
}

// FilterInTagged - a tagged variant of FilterIn
func (q *QuerySet) FilterInTagged(tag, field string, values ...string) *QuerySet {

	return q.FilterRaw(tagged(tag, lookupIn(field, values)))
}

// FilterExists - filters for documents where the field has any value, or
// no value at all
func (q *QuerySet) FilterExists(field string, exists bool) *QuerySet {

	return q.FilterRaw(lookupExists(field, exists))
}

// FilterRange - filters on a value range, open ended when a boundary is
// left empty
func (q *QuerySet) FilterRange(field, from, to string) *QuerySet {

	return q.FilterRaw(lookupRange(field, from, to))
}

// FilterRaw - adds filter queries exactly as given
func (q *QuerySet) FilterRaw(filters ...string) *QuerySet {

	clone := q.clone()
	clone.filterQs = append(clone.filterQs, filters...)

	return clone
}

// Facet - requests facets for the given fields, replacing any previously
// requested facet field list
func (q *QuerySet) Facet(fields ...string) *QuerySet {

	clone := q.clone()
	clone.facetFieldList = append([]string(nil), fields...)

	return clone
}

// FacetOpt - sets a global facet option, the facet prefix is added when
// building the query unless the key is already field scoped
func (q *QuerySet) FacetOpt(key, value string) *QuerySet {

	clone := q.clone()
	clone.facetOpts[key] = value

	return clone
}

// FacetField - requests a facet for a single field with field scoped
// options, optionally excluding a tagged filter from the counts
func (q *QuerySet) FacetField(field, exclude string, opts map[string]string) *QuerySet {

	clone := q.clone()

	if exclude != constants.StringsEmpty {
		clone.facetFieldList = append(clone.facetFieldList, fmt.Sprintf("{!ex=%s}%s", exclude, field))
	} else {
		clone.facetFieldList = append(clone.facetFieldList, field)
	}

	for opt, value := range opts {
		clone.facetOpts[fmt.Sprintf("f.%s.facet.%s", field, opt)] = value
	}

	return clone
}

// FacetRange - requests a range facet for a single field, the options
// carry start, end and gap
func (q *QuerySet) FacetRange(field string, opts map[string]string) *QuerySet {

	clone := q.clone()
	clone.rangeFacetFields = append(clone.rangeFacetFields, field)

	for opt, value := range opts {
		clone.facetOpts[fmt.Sprintf("f.%s.facet.range.%s", field, opt)] = value
	}

	return clone
}

// Stats - requests stats for the given fields, replacing any previously
// requested stats field list
func (q *QuerySet) Stats(fields ...string) *QuerySet {

	clone := q.clone()
	clone.statsFieldList = append([]string(nil), fields...)

	return clone
}

// StatsOpt - sets a stats option, the stats prefix is added when building
// the query unless already present
func (q *QuerySet) StatsOpt(key, value string) *QuerySet {

	clone := q.clone()
	clone.statsOpts[key] = value

	return clone
}

// Highlight - enables highlighting for a field with field scoped options
func (q *QuerySet) Highlight(field string, opts map[string]string) *QuerySet {

	clone := q.clone()
	clone.highlightFields = append(clone.highlightFields, field)

	for opt, value := range opts {
		clone.highlightOpts[fmt.Sprintf("f.%s.hl.%s", field, opt)] = value
	}

	return clone
}

// OrderBy - adds sort fields, a leading minus means descending
func (q *QuerySet) OrderBy(fields ...string) *QuerySet {

	clone := q.clone()

	for _, field := range fields {
		if strings.HasPrefix(field, "-") {
			clone.sortOptions = append(clone.sortOptions, strings.TrimPrefix(field, "-")+" desc")
		} else {
			clone.sortOptions = append(clone.sortOptions, field+" asc")
		}
	}

	return clone
}

// Only - restricts the returned fields, replacing any previous field
// list. Aliases are supported with the alias:field form.
func (q *QuerySet) Only(fields ...string) *QuerySet {

	clone := q.clone()
	clone.fieldList = append([]string(nil), fields...)

	return clone
}

// Also - appends to the returned field list instead of replacing it
func (q *QuerySet) Also(fields ...string) *QuerySet {

	clone := q.clone()
	clone.fieldList = append(clone.fieldList, fields...)

	return clone
}

// RawParams - sets raw request parameters passed through untouched
func (q *QuerySet) RawParams(key string, values ...string) *QuerySet {

	clone := q.clone()
	clone.rawParams[key] = append([]string(nil), values...)

	return clone
}

// Limits - restricts results to the given window, rows are only sent
// when a stop is set
func (q *QuerySet) Limits(start, stop int) *QuerySet {

	clone := q.clone()

	if start < 0 {
		start = 0
	}

	clone.start = start
	clone.stop = stop
	clone.stopSet = true

	return clone
}

// All - returns a copy of the queryset
func (q *QuerySet) All() *QuerySet {

	return q.clone()
}

// None - returns a queryset that matches nothing
func (q *QuerySet) None() *QuerySet {

	clone := q.clone()
	clone.searchQs = []string{"NOT *:*"}

	return clone
}

// Params - builds the solr request parameters for the current state
func (q *QuerySet) Params() url.Values {

	params := url.Values{}

	params.Set("start", strconv.Itoa(q.start))

	for _, filter := range q.filterQs {
		if filter != constants.StringsEmpty {
			params.Add("fq", filter)
		}
	}

	if len(q.fieldList) > 0 {
		params.Set("fl", strings.Join(q.fieldList, ","))
	}

	if len(q.searchQs) > 0 {
		params.Set("q", strings.Join(q.searchQs, cSearchOperator))
	} else {
		params.Set("q", "*:*")
	}

	if len(q.sortOptions) > 0 {
		params.Set("sort", strings.Join(q.sortOptions, ","))
	}

	if q.stopSet {
		params.Set("rows", strconv.Itoa(q.stop-q.start))
	}

	q.setHighlightParams(params)
	q.setFacetParams(params)
	q.setStatsParams(params)

	for key, values := range q.rawParams {
		params[key] = append([]string(nil), values...)
	}

	return params
}

// setHighlightParams - adds the highlighting parameters when requested
func (q *QuerySet) setHighlightParams(params url.Values) {

	if len(q.highlightFields) == 0 {
		return
	}

	params.Set("hl", constants.StringsTrue)
	params.Set("hl.fl", strings.Join(q.highlightFields, ","))

	// field scoped options are already fully prefixed
	for key, value := range q.highlightOpts {
		params.Set(key, value)
	}
}

// setFacetParams - adds the faceting parameters when requested
func (q *QuerySet) setFacetParams(params url.Values) {

	if len(q.facetFieldList) == 0 && len(q.rangeFacetFields) == 0 && len(q.facetOpts) == 0 {
		return
	}

	params.Set("facet", constants.StringsTrue)

	for _, field := range q.facetFieldList {
		params.Add("facet.field", field)
	}

	for _, field := range q.rangeFacetFields {
		params.Add("facet.range", field)
	}

	for key, value := range q.facetOpts {
		if strings.HasPrefix(key, "f.") {
			params.Set(key, value)
		} else {
			params.Set("facet."+key, value)
		}
	}
}

// setStatsParams - adds the stats parameters when requested
func (q *QuerySet) setStatsParams(params url.Values) {

	if len(q.statsFieldList) == 0 {
		return
	}

	params.Set("stats", constants.StringsTrue)

	for _, field := range q.statsFieldList {
		params.Add("stats.field", field)
	}

	for key, value := range q.statsOpts {
		if strings.HasPrefix(key, "stats") {
			params.Set(key, value)
		} else {
			params.Set("stats."+key, value)
		}
	}
}

// GetResponse - runs the query and returns the full parsed response,
// reusing the result cache when already populated
func (q *QuerySet) GetResponse() (*solr.QueryResponse, gobol.Error) {

	if q.resultCache != nil {
		return q.resultCache, nil
	}

	response, gerr := q.searcher.Query(q.Params())
	if gerr != nil {
		return nil, gerr
	}

	q.resultCache = response

	return response, nil
}

// GetResults - runs the query and returns the matched documents
func (q *QuerySet) GetResults() ([]solr.Document, gobol.Error) {

	response, gerr := q.GetResponse()
	if gerr != nil {
		return nil, gerr
	}

	return response.Docs, nil
}

// Count - returns the total number of matches without fetching documents.
// The result cache is reused but never populated by a count.
func (q *QuerySet) Count() (int64, gobol.Error) {

	if q.resultCache != nil {
		return q.resultCache.NumFound, nil
	}

	params := q.Params()
	params.Set("rows", "0")
	params.Set("facet", constants.StringsFalse)
	params.Set("hl", constants.StringsFalse)

	response, gerr := q.searcher.Query(params)
	if gerr != nil {
		return 0, gerr
	}

	return response.NumFound, nil
}

// GetFacets - returns the facet portion of the response without fetching
// documents
func (q *QuerySet) GetFacets() (*Facets, gobol.Error) {

	response := q.resultCache

	if response == nil {

		params := q.Params()
		params.Set("rows", "0")
		params.Set("hl", constants.StringsFalse)

		var gerr gobol.Error
		response, gerr = q.searcher.Query(params)
		if gerr != nil {
			return nil, gerr
		}
	}

	return &Facets{
		Fields:  response.FacetFields,
		Ranges:  response.FacetRanges,
		Queries: response.FacetQueries,
	}, nil
}

// GetStats - returns the stats portion of the response without fetching
// documents
func (q *QuerySet) GetStats() (map[string]map[string]interface{}, gobol.Error) {

	if q.resultCache != nil {
		return q.resultCache.Stats, nil
	}

	params := q.Params()
	params.Set("rows", "0")
	params.Set("hl", constants.StringsFalse)

	response, gerr := q.searcher.Query(params)
	if gerr != nil {
		return nil, gerr
	}

	return response.Stats, nil
}

// GetHighlighting - returns the highlighting portion of the response,
// fetching results first when needed
func (q *QuerySet) GetHighlighting() (map[string]map[string][]string, gobol.Error) {

	response, gerr := q.GetResponse()
	if gerr != nil {
		return nil, gerr
	}

	return response.Highlighting, nil
}

// GetExpanded - returns the expanded groups of the response, fetching
// results first when needed
func (q *QuerySet) GetExpanded() (map[string]solr.ExpandedGroup, gobol.Error) {

	response, gerr := q.GetResponse()
	if gerr != nil {
		return nil, gerr
	}

	return response.Expanded, nil
}
