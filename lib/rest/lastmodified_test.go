package rest

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/uol/gobol"

	"github.com/solrkit/solrkit/lib/solr"
	"github.com/solrkit/solrkit/lib/structs"
)

// fakeSearcher - serves a canned response and records the parameters
type fakeSearcher struct {
	lastParams url.Values
	response   *solr.QueryResponse
}

func (f *fakeSearcher) Query(params url.Values) (*solr.QueryResponse, gobol.Error) {
	f.lastParams = params
	return f.response, nil
}

func (f *fakeSearcher) Collection() string {
	return "items"
}

func newLastModifiedREST(searcher *fakeSearcher) *REST {

	return New(structs.SettingsHTTP{
		LastModifiedFilters: []string{"item_type_s:book"},
	}, nil, searcher, nil)
}

func TestLastModifiedHeader(t *testing.T) {

	searcher := &fakeSearcher{response: &solr.QueryResponse{
		NumFound: 1,
		Docs:     []solr.Document{{"last_modified": "2021-03-15T10:20:30.125Z"}},
	}}

	trest := newLastModifiedREST(searcher)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/lastmodified", nil)

	trest.lastModified(recorder, request, nil)

	assert.Equal(t, http.StatusOK, recorder.Code, "expects a plain ok without a conditional header")
	assert.Equal(t, "Mon, 15 Mar 2021 10:20:30 GMT", recorder.Header().Get("Last-Modified"),
		"expects the header without sub second precision")

	assert.Equal(t, "last_modified desc", searcher.lastParams.Get("sort"), "expects the newest document first")
	assert.Equal(t, "last_modified", searcher.lastParams.Get("fl"), "expects only the last modified field")
	assert.Equal(t, "1", searcher.lastParams.Get("rows"), "expects a single row")
	assert.Equal(t, []string{"item_type_s:book"}, searcher.lastParams["fq"], "expects the configured filters")
}

func TestLastModifiedNotModified(t *testing.T) {

	searcher := &fakeSearcher{response: &solr.QueryResponse{
		NumFound: 1,
		Docs:     []solr.Document{{"last_modified": "2021-03-15T10:20:30Z"}},
	}}

	trest := newLastModifiedREST(searcher)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/lastmodified", nil)
	request.Header.Set("If-Modified-Since", "Mon, 15 Mar 2021 10:20:30 GMT")

	trest.lastModified(recorder, request, nil)

	assert.Equal(t, http.StatusNotModified, recorder.Code, "expects a not modified response")
}

func TestLastModifiedModifiedSince(t *testing.T) {

	searcher := &fakeSearcher{response: &solr.QueryResponse{
		NumFound: 1,
		Docs:     []solr.Document{{"last_modified": "2021-03-15T10:20:30Z"}},
	}}

	trest := newLastModifiedREST(searcher)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/lastmodified", nil)
	request.Header.Set("If-Modified-Since", "Mon, 15 Mar 2021 09:00:00 GMT")

	trest.lastModified(recorder, request, nil)

	assert.Equal(t, http.StatusOK, recorder.Code, "expects an ok when the index is newer")
}

func TestLastModifiedEmptyIndex(t *testing.T) {

	searcher := &fakeSearcher{response: &solr.QueryResponse{}}

	trest := newLastModifiedREST(searcher)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/lastmodified", nil)

	trest.lastModified(recorder, request, nil)

	assert.Equal(t, http.StatusNoContent, recorder.Code, "expects no content without documents")
	assert.Empty(t, recorder.Header().Get("Last-Modified"), "expects no header without documents")
}
