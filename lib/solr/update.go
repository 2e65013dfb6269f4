package solr

import (
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/uol/gobol"

	"github.com/solrkit/solrkit/lib/constants"
)

//
// The update api. Documents are pushed through the json/docs handler and
// deletions through the plain update handler.
//

const (
	cFuncIndex         string = "Index"
	cFuncDeleteByID    string = "DeleteByID"
	cFuncDeleteByQuery string = "DeleteByQuery"

	cHandlerUpdate     string = "update"
	cHandlerUpdateDocs string = "update/json/docs"

	cParamCommit       string = "commit"
	cParamCommitWithin string = "commitWithin"

	cActionIndex  string = "index"
	cActionDelete string = "delete"
)

// Update - the update api bound to the client default collection
type Update struct {
	client *Client
}

// UpdateOptions - commit behavior for an update request
type UpdateOptions struct {

	// Commit - forces a hard commit, overriding any commit window
	Commit bool

	// CommitWithin - a soft commit window overriding the configured default
	CommitWithin time.Duration
}

// updateParams - resolves the commit parameters for an update request
func (u *Update) updateParams(opts *UpdateOptions) url.Values {

	params := url.Values{}

	if opts == nil {
		opts = &UpdateOptions{}
	}

	if opts.Commit {
		params.Set(cParamCommit, constants.StringsTrue)
		return params
	}

	commitWithin := opts.CommitWithin
	if commitWithin == 0 {
		commitWithin = u.client.settings.CommitWithin.Duration
	}

	if commitWithin > 0 {
		params.Set(cParamCommitWithin, strconv.FormatInt(commitWithin.Milliseconds(), 10))
	}

	return params
}

// post - sends an update payload and discards the response body
func (u *Update) post(function, handler, action string, params url.Values, payload interface{}) gobol.Error {

	body, err := json.Marshal(payload)
	if err != nil {
		return errInternalServer(function, err)
	}

	collection := u.client.settings.Collection

	start := time.Now()

	_, gerr := u.client.makeRequest(function, http.MethodPost, u.client.buildURL(collection, handler), params, body)
	if gerr != nil {
		u.client.statsError(collection, action)
		return gerr
	}

	u.client.statsRequest(collection, action, time.Since(start))

	return nil
}

// Index - indexes a batch of documents. A nil batch posts an empty list,
// solr rejects a bare json null.
func (u *Update) Index(docs []map[string]interface{}, opts *UpdateOptions) gobol.Error {

	if docs == nil {
		docs = []map[string]interface{}{}
	}

	return u.post(cFuncIndex, cHandlerUpdateDocs, cActionIndex, u.updateParams(opts), docs)
}

// DeleteByID - deletes documents by their unique ids
func (u *Update) DeleteByID(ids []string, opts *UpdateOptions) gobol.Error {

	payload := map[string]interface{}{
		cActionDelete: ids,
	}

	return u.post(cFuncDeleteByID, cHandlerUpdate, cActionDelete, u.updateParams(opts), payload)
}

// DeleteByQuery - deletes every document matched by the given query
func (u *Update) DeleteByQuery(query string, opts *UpdateOptions) gobol.Error {

	payload := map[string]interface{}{
		cActionDelete: map[string]string{
			"query": query,
		},
	}

	return u.post(cFuncDeleteByQuery, cHandlerUpdate, cActionDelete, u.updateParams(opts), payload)
}
