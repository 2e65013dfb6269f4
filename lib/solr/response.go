package solr

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/uol/gobol"
)

//
// Query response parsing. Solr returns facet counts as flat value/count
// arrays, these are converted to ordered pairs.
//

const cFuncParseResponse string = "parseQueryResponse"

// Document - a single solr document
type Document map[string]interface{}

// String - returns a field as string
func (d Document) String(field string) string {

	if value, ok := d[field]; ok {
		switch typed := value.(type) {
		case string:
			return typed
		case []interface{}:
			if len(typed) > 0 {
				if s, ok := typed[0].(string); ok {
					return s
				}
			}
		default:
			return fmt.Sprintf("%v", typed)
		}
	}

	return ""
}

// Strings - returns a multivalued field as string slice
func (d Document) Strings(field string) []string {

	value, ok := d[field]
	if !ok {
		return nil
	}

	switch typed := value.(type) {
	case []interface{}:
		results := make([]string, 0, len(typed))
		for _, item := range typed {
			if s, ok := item.(string); ok {
				results = append(results, s)
			}
		}
		return results
	case string:
		return []string{typed}
	}

	return nil
}

// Int64 - returns a field as int64
func (d Document) Int64(field string) int64 {

	if value, ok := d[field]; ok {
		switch typed := value.(type) {
		case float64:
			return int64(typed)
		case int64:
			return typed
		case string:
			if parsed, err := strconv.ParseInt(typed, 10, 64); err == nil {
				return parsed
			}
		}
	}

	return 0
}

// Float64 - returns a field as float64
func (d Document) Float64(field string) float64 {

	if value, ok := d[field]; ok {
		switch typed := value.(type) {
		case float64:
			return typed
		case int64:
			return float64(typed)
		}
	}

	return 0
}

// Bool - returns a field as boolean
func (d Document) Bool(field string) bool {

	if value, ok := d[field]; ok {
		if typed, ok := value.(bool); ok {
			return typed
		}
	}

	return false
}

// FacetCount - an ordered facet value and its count
type FacetCount struct {
	Value string
	Count int64
}

// RangeFacet - counts for a range facet plus its boundaries
type RangeFacet struct {
	Counts []FacetCount
	Start  interface{}
	End    interface{}
	Gap    interface{}
}

// Group - one group of a grouped response
type Group struct {
	Value    interface{}
	NumFound int64
	Start    int64
	Docs     []Document
}

// GroupedField - all groups collected for a single group field
type GroupedField struct {
	Matches int64
	NGroups int64
	Groups  []Group
}

// ExpandedGroup - the collapsed documents expanded for a group head
type ExpandedGroup struct {
	NumFound int64
	Start    int64
	Docs     []Document
}

// QueryResponse - a parsed solr select response
type QueryResponse struct {
	NumFound     int64
	Start        int64
	Docs         []Document
	FacetFields  map[string][]FacetCount
	FacetRanges  map[string]RangeFacet
	FacetQueries map[string]int64
	Highlighting map[string]map[string][]string
	Stats        map[string]map[string]interface{}
	Expanded     map[string]ExpandedGroup
	Grouped      map[string]GroupedField

	// GroupField - the field the response was grouped by, when grouping
	// was requested
	GroupField string
}

type docListWire struct {
	NumFound int64      `json:"numFound"`
	Start    int64      `json:"start"`
	Docs     []Document `json:"docs"`
}

type facetCountsWire struct {
	FacetQueries map[string]int64         `json:"facet_queries"`
	FacetFields  map[string][]interface{} `json:"facet_fields"`
	FacetRanges  map[string]struct {
		Counts []interface{} `json:"counts"`
		Start  interface{}   `json:"start"`
		End    interface{}   `json:"end"`
		Gap    interface{}   `json:"gap"`
	} `json:"facet_ranges"`
}

type groupedWire struct {
	Matches int64 `json:"matches"`
	NGroups int64 `json:"ngroups"`
	Groups  []struct {
		GroupValue interface{} `json:"groupValue"`
		DocList    docListWire `json:"doclist"`
	} `json:"groups"`
}

type queryResponseWire struct {
	Response     *docListWire                      `json:"response"`
	FacetCounts  *facetCountsWire                  `json:"facet_counts"`
	Highlighting map[string]map[string][]string    `json:"highlighting"`
	Stats        struct {
		StatsFields map[string]map[string]interface{} `json:"stats_fields"`
	} `json:"stats"`
	Expanded map[string]docListWire  `json:"expanded"`
	Grouped  map[string]*groupedWire `json:"grouped"`
}

// pairCounts - converts a flat value/count array into ordered pairs
func pairCounts(flat []interface{}) []FacetCount {

	counts := make([]FacetCount, 0, len(flat)/2)

	for i := 0; i+1 < len(flat); i += 2 {

		value, ok := flat[i].(string)
		if !ok {
			value = fmt.Sprintf("%v", flat[i])
		}

		count, ok := flat[i+1].(float64)
		if !ok {
			continue
		}

		counts = append(counts, FacetCount{Value: value, Count: int64(count)})
	}

	return counts
}

// parseQueryResponse - decodes a raw select response
func parseQueryResponse(content []byte, params url.Values) (*QueryResponse, gobol.Error) {

	wire := queryResponseWire{}
	if err := json.Unmarshal(content, &wire); err != nil {
		return nil, errInternalServer(cFuncParseResponse, err)
	}

	response := &QueryResponse{
		Highlighting: wire.Highlighting,
		Stats:        wire.Stats.StatsFields,
		GroupField:   params.Get("group.field"),
	}

	if wire.Response != nil {
		response.NumFound = wire.Response.NumFound
		response.Start = wire.Response.Start
		response.Docs = wire.Response.Docs
	}

	if wire.FacetCounts != nil {

		response.FacetQueries = wire.FacetCounts.FacetQueries

		response.FacetFields = make(map[string][]FacetCount, len(wire.FacetCounts.FacetFields))
		for field, flat := range wire.FacetCounts.FacetFields {
			response.FacetFields[field] = pairCounts(flat)
		}

		response.FacetRanges = make(map[string]RangeFacet, len(wire.FacetCounts.FacetRanges))
		for field, rangeWire := range wire.FacetCounts.FacetRanges {
			response.FacetRanges[field] = RangeFacet{
				Counts: pairCounts(rangeWire.Counts),
				Start:  rangeWire.Start,
				End:    rangeWire.End,
				Gap:    rangeWire.Gap,
			}
		}
	}

	if len(wire.Expanded) > 0 {
		response.Expanded = make(map[string]ExpandedGroup, len(wire.Expanded))
		for key, docList := range wire.Expanded {
			response.Expanded[key] = ExpandedGroup{
				NumFound: docList.NumFound,
				Start:    docList.Start,
				Docs:     docList.Docs,
			}
		}
	}

	if len(wire.Grouped) > 0 {

		response.Grouped = make(map[string]GroupedField, len(wire.Grouped))

		for field, groupedField := range wire.Grouped {

			groups := make([]Group, 0, len(groupedField.Groups))
			for _, group := range groupedField.Groups {
				groups = append(groups, Group{
					Value:    group.GroupValue,
					NumFound: group.DocList.NumFound,
					Start:    group.DocList.Start,
					Docs:     group.DocList.Docs,
				})
			}

			response.Grouped[field] = GroupedField{
				Matches: groupedField.Matches,
				NGroups: groupedField.NGroups,
				Groups:  groups,
			}

			// a pure grouped response has no top level doc list
			if wire.Response == nil {
				response.NumFound += groupedField.Matches
			}
		}
	}

	return response, nil
}
