package query

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/uol/gobol"

	"github.com/solrkit/solrkit/lib/solr"
)

// fakeSearcher - records the parameters of the last search
type fakeSearcher struct {
	lastParams url.Values
	response   *solr.QueryResponse
	calls      int
}

func (f *fakeSearcher) Query(params url.Values) (*solr.QueryResponse, gobol.Error) {

	f.lastParams = params
	f.calls++

	if f.response != nil {
		return f.response, nil
	}

	return &solr.QueryResponse{}, nil
}

func (f *fakeSearcher) Collection() string {

	return "items"
}

func TestDefaultParams(t *testing.T) {

	qs := NewQuerySet(&fakeSearcher{})

	params := qs.Params()

	assert.Equal(t, "*:*", params.Get("q"), "expects the match all query")
	assert.Equal(t, "0", params.Get("start"), "expects the default start")
	assert.Empty(t, params.Get("rows"), "expects no rows without limits")
	assert.Empty(t, params.Get("fl"), "expects no field list")
	assert.Empty(t, params.Get("sort"), "expects no sort")
	assert.Empty(t, params.Get("facet"), "expects faceting off")
}

func TestSearchJoinsWithAnd(t *testing.T) {

	qs := NewQuerySet(&fakeSearcher{}).Search("title:hamlet").Search("author:shake*")

	assert.Equal(t, "title:hamlet AND author:shake*", qs.Params().Get("q"), "expects queries joined by AND")
}

func TestChainingDoesNotMutate(t *testing.T) {

	base := NewQuerySet(&fakeSearcher{}).Filter("item_type_s", "book")

	branch := base.Filter("year_i", "1900").Facet("author_s")

	assert.Equal(t, []string{"item_type_s:book"}, base.Params()["fq"], "expects the base untouched")
	assert.Equal(t, []string{"item_type_s:book", "year_i:1900"}, branch.Params()["fq"], "expects the branch extended")
	assert.Empty(t, base.Params().Get("facet"), "expects the base without faceting")
}

func TestFilterLookups(t *testing.T) {

	searcher := &fakeSearcher{}

	assert.Equal(t, []string{"item_type_s:(book OR periodical)"},
		NewQuerySet(searcher).FilterIn("item_type_s", "book", "periodical").Params()["fq"],
		"expects values joined by OR")

	assert.Equal(t, []string{"-(item_type_s:[* TO *] OR -item_type_s:(book))"},
		NewQuerySet(searcher).FilterIn("item_type_s", "book", "").Params()["fq"],
		"expects the double negation when an empty value is present")

	assert.Equal(t, []string{"-item_type_s:[* TO *]"},
		NewQuerySet(searcher).FilterIn("item_type_s", "").Params()["fq"],
		"expects a pure not exists when only empty values remain")

	assert.Equal(t, []string{"year_i:[* TO *]"},
		NewQuerySet(searcher).FilterExists("year_i", true).Params()["fq"],
		"expects the any value form")

	assert.Equal(t, []string{"-year_i:[* TO *]"},
		NewQuerySet(searcher).FilterExists("year_i", false).Params()["fq"],
		"expects the negated any value form")

	assert.Equal(t, []string{"year_i:[1800 TO *]"},
		NewQuerySet(searcher).FilterRange("year_i", "1800", "").Params()["fq"],
		"expects an open ended range")

	assert.Equal(t, []string{"{!tag=type}item_type_s:book"},
		NewQuerySet(searcher).FilterTagged("type", "item_type_s", "book").Params()["fq"],
		"expects the tag local parameter")
}

func TestFacetParams(t *testing.T) {

	qs := NewQuerySet(&fakeSearcher{}).
		Facet("author_s", "year_i").
		FacetOpt("mincount", "1").
		FacetOpt("f.author_s.facet.limit", "5")

	params := qs.Params()

	assert.Equal(t, "true", params.Get("facet"), "expects faceting enabled")
	assert.Equal(t, []string{"author_s", "year_i"}, params["facet.field"], "expects the facet fields")
	assert.Equal(t, "1", params.Get("facet.mincount"), "expects the facet prefix added")
	assert.Equal(t, "5", params.Get("f.author_s.facet.limit"), "expects field scoped options untouched")
}

func TestFacetReplacesFieldList(t *testing.T) {

	qs := NewQuerySet(&fakeSearcher{}).Facet("author_s", "year_i").Facet("item_type_s")

	assert.Equal(t, []string{"item_type_s"}, qs.Params()["facet.field"], "expects the last facet call to win")
}

func TestFacetFieldExcludeAndOptions(t *testing.T) {

	qs := NewQuerySet(&fakeSearcher{}).
		FilterTagged("type", "item_type_s", "book").
		FacetField("item_type_s", "type", map[string]string{"limit": "10"})

	params := qs.Params()

	assert.Equal(t, []string{"{!ex=type}item_type_s"}, params["facet.field"], "expects the exclusion tag on the field")
	assert.Equal(t, "10", params.Get("f.item_type_s.facet.limit"), "expects the field scoped option")
}

func TestFacetRangeParams(t *testing.T) {

	qs := NewQuerySet(&fakeSearcher{}).FacetRange("year_i", map[string]string{
		"start": "1800",
		"end":   "2000",
		"gap":   "50",
	})

	params := qs.Params()

	assert.Equal(t, "true", params.Get("facet"), "expects faceting enabled")
	assert.Equal(t, []string{"year_i"}, params["facet.range"], "expects the range facet field")
	assert.Equal(t, "1800", params.Get("f.year_i.facet.range.start"), "expects the range start")
	assert.Equal(t, "50", params.Get("f.year_i.facet.range.gap"), "expects the range gap")
}

func TestStatsParams(t *testing.T) {

	qs := NewQuerySet(&fakeSearcher{}).Stats("year_i").StatsOpt("calcdistinct", "true")

	params := qs.Params()

	assert.Equal(t, "true", params.Get("stats"), "expects stats enabled")
	assert.Equal(t, []string{"year_i"}, params["stats.field"], "expects the stats field")
	assert.Equal(t, "true", params.Get("stats.calcdistinct"), "expects the stats prefix added")
}

func TestHighlightParams(t *testing.T) {

	qs := NewQuerySet(&fakeSearcher{}).Highlight("content", map[string]string{
		"snippets": "3",
		"method":   "unified",
	})

	params := qs.Params()

	assert.Equal(t, "true", params.Get("hl"), "expects highlighting enabled")
	assert.Equal(t, "content", params.Get("hl.fl"), "expects the highlighted field")
	assert.Equal(t, "3", params.Get("f.content.hl.snippets"), "expects the field scoped option")
}

func TestOrderByDirections(t *testing.T) {

	qs := NewQuerySet(&fakeSearcher{}).OrderBy("-year_i", "title_s")

	assert.Equal(t, "year_i desc,title_s asc", qs.Params().Get("sort"), "expects descending and ascending sorts")
}

func TestOnlyAndAlso(t *testing.T) {

	qs := NewQuerySet(&fakeSearcher{}).Only("id", "title:title_t").Also("year_i")

	assert.Equal(t, "id,title:title_t,year_i", qs.Params().Get("fl"), "expects the combined field list")

	qs = qs.Only("id")

	assert.Equal(t, "id", qs.Params().Get("fl"), "expects only to replace the list")
}

func TestLimitsRows(t *testing.T) {

	qs := NewQuerySet(&fakeSearcher{}).Limits(10, 30)

	params := qs.Params()

	assert.Equal(t, "10", params.Get("start"), "expects the window start")
	assert.Equal(t, "20", params.Get("rows"), "expects rows from the window size")
}

func TestNoneMatchesNothing(t *testing.T) {

	qs := NewQuerySet(&fakeSearcher{}).Search("title:hamlet").None()

	assert.Equal(t, "NOT *:*", qs.Params().Get("q"), "expects the match nothing query")
}

func TestRawParamsPassThrough(t *testing.T) {

	qs := NewQuerySet(&fakeSearcher{}).RawParams("bq", "item_type_s:book^10")

	assert.Equal(t, "item_type_s:book^10", qs.Params().Get("bq"), "expects the raw parameter")
}

func TestCountDisablesExtras(t *testing.T) {

	searcher := &fakeSearcher{response: &solr.QueryResponse{NumFound: 42}}

	qs := NewQuerySet(searcher).Facet("author_s").Highlight("content", nil)

	total, gerr := qs.Count()

	assert.Nil(t, gerr, "expects no count error")
	assert.Equal(t, int64(42), total, "expects the total matches")
	assert.Equal(t, "0", searcher.lastParams.Get("rows"), "expects zero rows")
	assert.Equal(t, "false", searcher.lastParams.Get("facet"), "expects faceting off")
	assert.Equal(t, "false", searcher.lastParams.Get("hl"), "expects highlighting off")
}

func TestResultCacheReuse(t *testing.T) {

	searcher := &fakeSearcher{response: &solr.QueryResponse{
		NumFound: 1,
		Docs:     []solr.Document{{"id": "a.1"}},
	}}

	qs := NewQuerySet(searcher)

	_, gerr := qs.GetResults()
	assert.Nil(t, gerr, "expects no query error")

	total, gerr := qs.Count()
	assert.Nil(t, gerr, "expects no count error")
	assert.Equal(t, int64(1), total, "expects the cached total")

	_, gerr = qs.GetHighlighting()
	assert.Nil(t, gerr, "expects no highlighting error")

	assert.Equal(t, 1, searcher.calls, "expects a single request for all getters")
}

func TestGetFacetsWithoutRows(t *testing.T) {

	searcher := &fakeSearcher{response: &solr.QueryResponse{
		FacetFields: map[string][]solr.FacetCount{
			"author_s": {{Value: "shakespeare", Count: 7}},
		},
	}}

	facets, gerr := NewQuerySet(searcher).Facet("author_s").GetFacets()

	assert.Nil(t, gerr, "expects no facet error")
	assert.Equal(t, "0", searcher.lastParams.Get("rows"), "expects zero rows")
	assert.Equal(t, int64(7), facets.Fields["author_s"][0].Count, "expects the facet count")
}

func TestAliasedDefaults(t *testing.T) {

	aliases := map[string]string{
		"title":  "title_t",
		"author": "author_s",
	}

	qs := NewAliasedQuerySet(&fakeSearcher{}, aliases)

	assert.Equal(t, "author:author_s,title:title_t", qs.Params().Get("fl"),
		"expects the aliases as the default field list")
}

func TestAliasedBuilders(t *testing.T) {

	aliases := map[string]string{
		"title":  "title_t",
		"author": "author_s",
		"year":   "year_i",
	}

	qs := NewAliasedQuerySet(&fakeSearcher{}, aliases).
		Filter("author", "shakespeare").
		FilterIn("title", "hamlet", "othello").
		OrderBy("-year").
		Facet("author")

	params := qs.Params()

	assert.Equal(t, []string{"author_s:shakespeare", "title_t:(hamlet OR othello)"}, params["fq"],
		"expects filters on the resolved fields")
	assert.Equal(t, "year_i desc", params.Get("sort"), "expects the sort on the resolved field")
	assert.Equal(t, []string{"author_s"}, params["facet.field"], "expects the facet on the resolved field")
}

func TestAliasedOnlyKeepsAlias(t *testing.T) {

	aliases := map[string]string{"title": "title_t"}

	qs := NewAliasedQuerySet(&fakeSearcher{}, aliases).Only("title", "id")

	assert.Equal(t, "title:title_t,id", qs.Params().Get("fl"),
		"expects the alias kept in the field list and unknown fields untouched")
}
