package query

import (
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/uol/gobol"

	"github.com/solrkit/solrkit/lib/solr"
)

//
// Field aliasing on top of the queryset, so application code can use
// readable names instead of dynamic field suffixes.
//

// AliasedQuerySet - a queryset translating aliased field names to the
// underlying solr fields on every builder call
type AliasedQuerySet struct {
	qs      *QuerySet
	aliases map[string]string
}

// NewAliasedQuerySet - creates a queryset bound to an alias map. The
// aliases become the default field list, in the alias:field form.
func NewAliasedQuerySet(searcher Searcher, aliases map[string]string) *AliasedQuerySet {

	names := make([]string, 0, len(aliases))
	for alias := range aliases {
		names = append(names, alias)
	}

	sort.Strings(names)

	fieldList := make([]string, 0, len(names))
	for _, alias := range names {
		fieldList = append(fieldList, fmt.Sprintf("%s:%s", alias, aliases[alias]))
	}

	return &AliasedQuerySet{
		qs:      NewQuerySet(searcher).Only(fieldList...),
		aliases: aliases,
	}
}

// wrap - rebinds the alias map around a derived queryset
func (a *AliasedQuerySet) wrap(qs *QuerySet) *AliasedQuerySet {

	return &AliasedQuerySet{qs: qs, aliases: a.aliases}
}

// unalias - resolves an aliased field name, unknown names pass through
func (a *AliasedQuerySet) unalias(field string) string {

	if resolved, found := a.aliases[field]; found {
		return resolved
	}

	return field
}

// unaliasAll - resolves a list of aliased field names
func (a *AliasedQuerySet) unaliasAll(fields []string) []string {

	resolved := make([]string, len(fields))
	for i, field := range fields {
		resolved[i] = a.unalias(field)
	}

	return resolved
}

// Search - adds search expressions
func (a *AliasedQuerySet) Search(queries ...string) *AliasedQuerySet {

	return a.wrap(a.qs.Search(queries...))
}

// Filter - adds a field equals value filter on an aliased field
func (a *AliasedQuerySet) Filter(field, value string) *AliasedQuerySet {

	return a.wrap(a.qs.Filter(a.unalias(field), value))
}

// FilterTagged - adds a tagged filter on an aliased field
func (a *AliasedQuerySet) FilterTagged(tag, field, value string) *AliasedQuerySet {

	return a.wrap(a.qs.FilterTagged(tag, a.unalias(field), value))
}

// FilterIn - filters an aliased field on any of the given values
func (a *AliasedQuerySet) FilterIn(field string, values ...string) *AliasedQuerySet {

	return a.wrap(a.qs.FilterIn(a.unalias(field), values...))
}

// FilterInTagged - a tagged variant of FilterIn
func (a *AliasedQuerySet) FilterInTagged(tag, field string, values ...string) *AliasedQuerySet {

	return a.wrap(a.qs.FilterInTagged(tag, a.unalias(field), values...))
}

// FilterExists - filters an aliased field for any value, or no value
func (a *AliasedQuerySet) FilterExists(field string, exists bool) *AliasedQuerySet {

	return a.wrap(a.qs.FilterExists(a.unalias(field), exists))
}

// FilterRange - filters an aliased field on a value range
func (a *AliasedQuerySet) FilterRange(field, from, to string) *AliasedQuerySet {

	return a.wrap(a.qs.FilterRange(a.unalias(field), from, to))
}

// FilterRaw - adds filter queries exactly as given, no aliasing applied
func (a *AliasedQuerySet) FilterRaw(filters ...string) *AliasedQuerySet {

	return a.wrap(a.qs.FilterRaw(filters...))
}

// Facet - requests facets for aliased fields
func (a *AliasedQuerySet) Facet(fields ...string) *AliasedQuerySet {

	return a.wrap(a.qs.Facet(a.unaliasAll(fields)...))
}

// FacetField - requests a facet for a single aliased field
func (a *AliasedQuerySet) FacetField(field, exclude string, opts map[string]string) *AliasedQuerySet {

	return a.wrap(a.qs.FacetField(a.unalias(field), exclude, opts))
}

// FacetRange - requests a range facet for a single aliased field
func (a *AliasedQuerySet) FacetRange(field string, opts map[string]string) *AliasedQuerySet {

	return a.wrap(a.qs.FacetRange(a.unalias(field), opts))
}

// Stats - requests stats for aliased fields
func (a *AliasedQuerySet) Stats(fields ...string) *AliasedQuerySet {

	return a.wrap(a.qs.Stats(a.unaliasAll(fields)...))
}

// Highlight - enables highlighting for an aliased field
func (a *AliasedQuerySet) Highlight(field string, opts map[string]string) *AliasedQuerySet {

	return a.wrap(a.qs.Highlight(a.unalias(field), opts))
}

// OrderBy - adds sort fields, resolving aliases behind the descending
// prefix as well
func (a *AliasedQuerySet) OrderBy(fields ...string) *AliasedQuerySet {

	resolved := make([]string, len(fields))

	for i, field := range fields {
		if strings.HasPrefix(field, "-") {
			resolved[i] = "-" + a.unalias(strings.TrimPrefix(field, "-"))
		} else {
			resolved[i] = a.unalias(field)
		}
	}

	return a.wrap(a.qs.OrderBy(resolved...))
}

// Only - restricts the returned fields, aliased names keep their alias in
// the response through the alias:field form
func (a *AliasedQuerySet) Only(fields ...string) *AliasedQuerySet {

	return a.wrap(a.qs.Only(a.aliasedFieldList(fields)...))
}

// Also - appends to the returned field list
func (a *AliasedQuerySet) Also(fields ...string) *AliasedQuerySet {

	return a.wrap(a.qs.Also(a.aliasedFieldList(fields)...))
}

// aliasedFieldList - renders aliased fields as alias:field entries
func (a *AliasedQuerySet) aliasedFieldList(fields []string) []string {

	entries := make([]string, len(fields))

	for i, field := range fields {
		if resolved, found := a.aliases[field]; found {
			entries[i] = fmt.Sprintf("%s:%s", field, resolved)
		} else {
			entries[i] = field
		}
	}

	return entries
}

// RawParams - sets raw request parameters passed through untouched
func (a *AliasedQuerySet) RawParams(key string, values ...string) *AliasedQuerySet {

	return a.wrap(a.qs.RawParams(key, values...))
}

// Limits - restricts results to the given window
func (a *AliasedQuerySet) Limits(start, stop int) *AliasedQuerySet {

	return a.wrap(a.qs.Limits(start, stop))
}

// All - returns a copy of the queryset
func (a *AliasedQuerySet) All() *AliasedQuerySet {

	return a.wrap(a.qs.All())
}

// None - returns a queryset that matches nothing
func (a *AliasedQuerySet) None() *AliasedQuerySet {

	return a.wrap(a.qs.None())
}

// Params - builds the solr request parameters for the current state
func (a *AliasedQuerySet) Params() url.Values {

	return a.qs.Params()
}

// GetResponse - runs the query and returns the full parsed response
func (a *AliasedQuerySet) GetResponse() (*solr.QueryResponse, gobol.Error) {

	return a.qs.GetResponse()
}

// GetResults - runs the query and returns the matched documents
func (a *AliasedQuerySet) GetResults() ([]solr.Document, gobol.Error) {

	return a.qs.GetResults()
}

// Count - returns the total number of matches without fetching documents
func (a *AliasedQuerySet) Count() (int64, gobol.Error) {

	return a.qs.Count()
}

// GetFacets - returns the facet portion of the response
func (a *AliasedQuerySet) GetFacets() (*Facets, gobol.Error) {

	return a.qs.GetFacets()
}

// GetStats - returns the stats portion of the response
func (a *AliasedQuerySet) GetStats() (map[string]map[string]interface{}, gobol.Error) {

	return a.qs.GetStats()
}

// GetHighlighting - returns the highlighting portion of the response
func (a *AliasedQuerySet) GetHighlighting() (map[string]map[string][]string, gobol.Error) {

	return a.qs.GetHighlighting()
}

// GetExpanded - returns the expanded groups of the response
func (a *AliasedQuerySet) GetExpanded() (map[string]solr.ExpandedGroup, gobol.Error) {

	return a.qs.GetExpanded()
}
