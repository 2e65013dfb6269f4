package solr

import (
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/uol/funks"
)

type recordedRequest struct {
	method      string
	path        string
	query       url.Values
	form        url.Values
	body        []byte
	contentType string
}

// newTestClient - spins up a fake solr endpoint and a client pointing at it
func newTestClient(t *testing.T, response string, recorded *recordedRequest) (*Client, *httptest.Server) {

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		recorded.method = r.Method
		recorded.path = r.URL.Path
		recorded.query = r.URL.Query()
		recorded.contentType = r.Header.Get("Content-Type")

		body, _ := ioutil.ReadAll(r.Body)
		recorded.body = body

		if recorded.contentType == cContentTypeForm {
			recorded.form, _ = url.ParseQuery(string(body))
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(response))
	}))

	client, err := New(&Settings{
		URL:          server.URL,
		Collection:   "items",
		CommitWithin: funks.Duration{Duration: time.Second},
		Timeout:      funks.Duration{Duration: 5 * time.Second},
	}, nil)

	assert.NoError(t, err, "expects no error creating the client")

	return client, server
}

func TestQueryPostsFormData(t *testing.T) {

	recorded := recordedRequest{}
	client, server := newTestClient(t, `{
		"responseHeader": {"status": 0},
		"response": {"numFound": 2, "start": 0, "docs": [
			{"id": "a.1", "title": "first"},
			{"id": "a.2", "title": "second"}
		]}
	}`, &recorded)
	defer server.Close()

	params := url.Values{}
	params.Set("q", "title:first")
	params.Set("rows", "10")

	response, gerr := client.Query(params)

	assert.Nil(t, gerr, "expects no query error")
	assert.Equal(t, http.MethodPost, recorded.method, "expects a post request")
	assert.Equal(t, "/items/select", recorded.path, "expects the select handler")
	assert.Equal(t, cContentTypeForm, recorded.contentType, "expects form encoded parameters")
	assert.Equal(t, "title:first", recorded.form.Get("q"), "expects the query in the form body")
	assert.Equal(t, "json", recorded.form.Get("wt"), "expects wt=json to be enforced")

	assert.Equal(t, int64(2), response.NumFound, "expects the document count")
	assert.Len(t, response.Docs, 2, "expects both documents")
	assert.Equal(t, "a.1", response.Docs[0].String("id"), "expects the first document id")
}

func TestQueryFacetParsing(t *testing.T) {

	recorded := recordedRequest{}
	client, server := newTestClient(t, `{
		"responseHeader": {"status": 0},
		"response": {"numFound": 0, "start": 0, "docs": []},
		"facet_counts": {
			"facet_queries": {"year_i:[2000 TO *]": 7},
			"facet_fields": {"item_type_s": ["book", 12, "article", 5, "report", 0]},
			"facet_ranges": {"year_i": {
				"counts": ["1900", 3, "1950", 9],
				"start": 1900, "end": 2000, "gap": 50
			}}
		}
	}`, &recorded)
	defer server.Close()

	response, gerr := client.Query(url.Values{})

	assert.Nil(t, gerr, "expects no query error")

	facets := response.FacetFields["item_type_s"]
	assert.Len(t, facets, 3, "expects three facet pairs")
	assert.Equal(t, FacetCount{Value: "book", Count: 12}, facets[0], "expects order to be preserved")
	assert.Equal(t, FacetCount{Value: "article", Count: 5}, facets[1], "expects order to be preserved")

	ranges := response.FacetRanges["year_i"]
	assert.Len(t, ranges.Counts, 2, "expects two range pairs")
	assert.Equal(t, FacetCount{Value: "1900", Count: 3}, ranges.Counts[0], "expects the first range bucket")
	assert.Equal(t, float64(50), ranges.Gap, "expects the range gap")

	assert.Equal(t, int64(7), response.FacetQueries["year_i:[2000 TO *]"], "expects the facet query count")
}

func TestQueryGroupedParsing(t *testing.T) {

	recorded := recordedRequest{}
	client, server := newTestClient(t, `{
		"responseHeader": {"status": 0},
		"grouped": {"work_id_s": {
			"matches": 4,
			"groups": [
				{"groupValue": "w1", "doclist": {"numFound": 3, "start": 0, "docs": [{"id": "a.1"}]}},
				{"groupValue": "w2", "doclist": {"numFound": 1, "start": 0, "docs": [{"id": "a.2"}]}}
			]
		}}
	}`, &recorded)
	defer server.Close()

	params := url.Values{}
	params.Set("group", "true")
	params.Set("group.field", "work_id_s")

	response, gerr := client.Query(params)

	assert.Nil(t, gerr, "expects no query error")
	assert.Equal(t, "work_id_s", response.GroupField, "expects the group field from the request")
	assert.Equal(t, int64(4), response.NumFound, "expects matches as the total")

	grouped := response.Grouped["work_id_s"]
	assert.Len(t, grouped.Groups, 2, "expects both groups")
	assert.Equal(t, "w1", grouped.Groups[0].Value, "expects the first group value")
	assert.Equal(t, int64(3), grouped.Groups[0].NumFound, "expects the first group count")
}

func TestQuerySolrErrorStatus(t *testing.T) {

	recorded := recordedRequest{}
	client, server := newTestClient(t, `{
		"responseHeader": {"status": 400},
		"error": {"msg": "undefined field bogus", "code": 400}
	}`, &recorded)
	defer server.Close()

	_, gerr := client.Query(url.Values{})

	assert.NotNil(t, gerr, "expects an error from the embedded status")
	assert.Equal(t, http.StatusBadRequest, gerr.StatusCode(), "expects the solr status code")
	assert.Contains(t, gerr.Error(), "undefined field bogus", "expects the solr error message")
}

func TestUpdateIndexCommitWithin(t *testing.T) {

	recorded := recordedRequest{}
	client, server := newTestClient(t, `{"responseHeader": {"status": 0}}`, &recorded)
	defer server.Close()

	docs := []map[string]interface{}{
		{"id": "a.1", "title": "first"},
	}

	gerr := client.Update.Index(docs, nil)

	assert.Nil(t, gerr, "expects no index error")
	assert.Equal(t, "/items/update/json/docs", recorded.path, "expects the json docs handler")
	assert.Equal(t, cContentTypeJSON, recorded.contentType, "expects a json body")
	assert.Equal(t, "1000", recorded.query.Get("commitWithin"), "expects the configured commit window")
	assert.Empty(t, recorded.query.Get("commit"), "expects no hard commit")
	assert.JSONEq(t, `[{"id": "a.1", "title": "first"}]`, string(recorded.body), "expects the documents as payload")
}

func TestUpdateIndexHardCommit(t *testing.T) {

	recorded := recordedRequest{}
	client, server := newTestClient(t, `{"responseHeader": {"status": 0}}`, &recorded)
	defer server.Close()

	gerr := client.Update.Index(nil, &UpdateOptions{Commit: true})

	assert.Nil(t, gerr, "expects no index error")
	assert.Equal(t, "true", recorded.query.Get("commit"), "expects a hard commit")
	assert.Empty(t, recorded.query.Get("commitWithin"), "expects the commit window to be dropped")
	assert.Equal(t, "[]", string(recorded.body), "expects an empty document list, not a json null")
}

func TestUpdateDeleteByID(t *testing.T) {

	recorded := recordedRequest{}
	client, server := newTestClient(t, `{"responseHeader": {"status": 0}}`, &recorded)
	defer server.Close()

	gerr := client.Update.DeleteByID([]string{"a.1", "a.2"}, nil)

	assert.Nil(t, gerr, "expects no delete error")
	assert.Equal(t, "/items/update", recorded.path, "expects the update handler")
	assert.JSONEq(t, `{"delete": ["a.1", "a.2"]}`, string(recorded.body), "expects the delete payload")
}

func TestUpdateDeleteByQuery(t *testing.T) {

	recorded := recordedRequest{}
	client, server := newTestClient(t, `{"responseHeader": {"status": 0}}`, &recorded)
	defer server.Close()

	gerr := client.Update.DeleteByQuery("item_type_s:book", nil)

	assert.Nil(t, gerr, "expects no delete error")
	assert.JSONEq(t, `{"delete": {"query": "item_type_s:book"}}`, string(recorded.body), "expects the delete query payload")
}

func TestSchemaAddField(t *testing.T) {

	recorded := recordedRequest{}
	client, server := newTestClient(t, `{"responseHeader": {"status": 0}}`, &recorded)
	defer server.Close()

	gerr := client.Schema.AddField(Field{
		Name:     "title_t",
		Type:     "text_general",
		Required: Bool(false),
		Stored:   Bool(true),
	})

	assert.Nil(t, gerr, "expects no schema error")
	assert.Equal(t, "/items/schema", recorded.path, "expects the schema handler")
	assert.JSONEq(t, `{"add-field": {"name": "title_t", "type": "text_general", "required": false, "stored": true}}`,
		string(recorded.body), "expects the add field command")
}

func TestSchemaAddCopyFieldMaxChars(t *testing.T) {

	recorded := recordedRequest{}
	client, server := newTestClient(t, `{"responseHeader": {"status": 0}}`, &recorded)
	defer server.Close()

	gerr := client.Schema.AddCopyField(CopyField{Source: "title_t", Dest: "text", MaxChars: 80})

	assert.Nil(t, gerr, "expects no schema error")
	assert.JSONEq(t, `{"add-copy-field": {"source": "title_t", "dest": "text", "maxChars": 80}}`,
		string(recorded.body), "expects the copy field command")
}

func TestSchemaListFields(t *testing.T) {

	recorded := recordedRequest{}
	client, server := newTestClient(t, `{
		"responseHeader": {"status": 0},
		"fields": [
			{"name": "id", "type": "string"},
			{"name": "title_t", "type": "text_general", "stored": true}
		]
	}`, &recorded)
	defer server.Close()

	fields, gerr := client.Schema.ListFields(nil, false, false)

	assert.Nil(t, gerr, "expects no schema error")
	assert.Equal(t, "/items/schema/fields", recorded.path, "expects the fields listing")
	assert.Equal(t, "false", recorded.query.Get("includeDynamic"), "expects dynamic fields excluded")
	assert.Len(t, fields, 2, "expects both fields")
	assert.Equal(t, "title_t", fields[1].Name, "expects the field name")
	assert.NotNil(t, fields[1].Stored, "expects the stored flag to be present")
	assert.True(t, *fields[1].Stored, "expects the stored flag")
}

func TestSchemaGet(t *testing.T) {

	recorded := recordedRequest{}
	client, server := newTestClient(t, `{
		"responseHeader": {"status": 0},
		"schema": {
			"name": "default-config",
			"version": 1.6,
			"uniqueKey": "id"
		}
	}`, &recorded)
	defer server.Close()

	definition, gerr := client.Schema.Get()

	assert.Nil(t, gerr, "expects no schema error")
	assert.Equal(t, http.MethodGet, recorded.method, "expects a get request")
	assert.Equal(t, "/items/schema", recorded.path, "expects the schema handler")
	assert.Equal(t, "default-config", definition["name"], "expects the schema name")
	assert.Equal(t, "id", definition["uniqueKey"], "expects the unique key")
}

func TestAdminCreate(t *testing.T) {

	recorded := recordedRequest{}
	client, server := newTestClient(t, `{"responseHeader": {"status": 0}}`, &recorded)
	defer server.Close()

	gerr := client.CoreAdmin.Create("items", "basic_configs")

	assert.Nil(t, gerr, "expects no admin error")
	assert.Equal(t, "/admin/cores", recorded.path, "expects the core admin handler")
	assert.Equal(t, "CREATE", recorded.query.Get("action"), "expects the create action")
	assert.Equal(t, "items", recorded.query.Get("name"), "expects the core name")
	assert.Equal(t, "basic_configs", recorded.query.Get("configSet"), "expects the config set")
}

func TestAdminStatusSkipsUnknownCore(t *testing.T) {

	recorded := recordedRequest{}
	client, server := newTestClient(t, `{
		"responseHeader": {"status": 0},
		"status": {"missing": {}}
	}`, &recorded)
	defer server.Close()

	exists, gerr := client.CoreAdmin.Exists("missing")

	assert.Nil(t, gerr, "expects no admin error")
	assert.False(t, exists, "expects the empty status entry to be dropped")
}

func TestAdminPingDown(t *testing.T) {

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	client, err := New(&Settings{URL: server.URL, Collection: "items"}, nil)
	assert.NoError(t, err, "expects no error creating the client")

	up, gerr := client.CoreAdmin.Ping("missing")

	assert.Nil(t, gerr, "expects a missing core to not be an error")
	assert.False(t, up, "expects the core to report down")
}

func TestAdminPingUp(t *testing.T) {

	recorded := recordedRequest{}
	client, server := newTestClient(t, `{"responseHeader": {"status": 0}, "status": "OK"}`, &recorded)
	defer server.Close()

	up, gerr := client.CoreAdmin.Ping("items")

	assert.Nil(t, gerr, "expects no ping error")
	assert.Equal(t, "/items/admin/ping", recorded.path, "expects the ping handler")
	assert.True(t, up, "expects the core to report up")
}

func TestRequestNotFound(t *testing.T) {

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	client, err := New(&Settings{URL: server.URL, Collection: "items"}, nil)
	assert.NoError(t, err, "expects no error creating the client")

	_, gerr := client.Query(url.Values{})

	assert.NotNil(t, gerr, "expects an error for a missing core")
	assert.True(t, IsNotFound(gerr), "expects a not found error")
}
