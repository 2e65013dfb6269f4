package solr

import (
	"fmt"
	"net/http"
	"net/url"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/rs/zerolog"
	"github.com/uol/gobol"
	"github.com/uol/logh"
	tlmanager "github.com/uol/timelinemanager"

	"github.com/solrkit/solrkit/lib/constants"
)

//
// A minimal solr http client exposing the select, update, schema and
// core admin apis.
//

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	cFuncQuery    string = "Query"
	cHandlerQuery string = "select"
)

// Client - the solr http client
type Client struct {
	settings        *Settings
	httpClient      *http.Client
	logger          *logh.ContextualLogger
	timelineManager *tlmanager.Instance

	// Update - the update api bound to the default collection
	Update *Update

	// Schema - the schema api bound to the default collection
	Schema *Schema

	// CoreAdmin - the core admin api
	CoreAdmin *CoreAdmin
}

// New - creates a new solr client
func New(settings *Settings, timelineManager *tlmanager.Instance) (*Client, error) {

	if settings == nil {
		return nil, fmt.Errorf("no solr settings found")
	}

	client := &Client{
		settings: settings,
		httpClient: &http.Client{
			Timeout: settings.Timeout.Duration,
		},
		logger:          logh.CreateContextualLogger(constants.StringsPKG, cPackage),
		timelineManager: timelineManager,
	}

	client.Update = &Update{client: client}
	client.Schema = &Schema{client: client}
	client.CoreAdmin = &CoreAdmin{client: client}

	return client, nil
}

// log - add the common log fields
func (c *Client) log(event *zerolog.Event, funcName string) *zerolog.Event {

	return event.Str(constants.StringsFunc, funcName).Str(constants.StringsCollection, c.settings.Collection)
}

// Collection - returns the default collection name
func (c *Client) Collection() string {

	return c.settings.Collection
}

// Query - runs a search against the default collection posting the
// parameters as form data
func (c *Client) Query(params url.Values) (*QueryResponse, gobol.Error) {

	return c.QueryCollection(c.settings.Collection, params)
}

// QueryCollection - runs a search against the given collection
func (c *Client) QueryCollection(collection string, params url.Values) (*QueryResponse, gobol.Error) {

	start := time.Now()

	content, gerr := c.makeRequest(cFuncQuery, http.MethodPost, c.buildURL(collection, cHandlerQuery), params, nil)
	if gerr != nil {
		c.statsError(collection, cHandlerQuery)
		return nil, gerr
	}

	response, gerr := parseQueryResponse(content, params)
	if gerr != nil {
		c.statsError(collection, cHandlerQuery)
		return nil, gerr
	}

	c.statsRequest(collection, cHandlerQuery, time.Since(start))

	return response, nil
}
