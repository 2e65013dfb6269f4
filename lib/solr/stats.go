package solr

import (
	"time"

	"github.com/solrkit/solrkit/lib/constants"
)

const (
	cMetricSolrRequest         string = "solr.request"
	cMetricSolrRequestDuration string = "solr.request.duration"
	cMetricSolrRequestError    string = "solr.request.error"
)

// statsRequest - accumulates a request count and its duration
func (c *Client) statsRequest(collection, action string, duration time.Duration) {

	if c.timelineManager == nil {
		return
	}

	c.timelineManager.FlattenCountIncN(
		cPackage,
		cMetricSolrRequest,
		constants.StringsCollection, collection,
		constants.StringsAction, action,
	)

	c.timelineManager.FlattenMaxN(
		cPackage,
		float64(duration.Nanoseconds())/float64(time.Millisecond),
		cMetricSolrRequestDuration,
		constants.StringsCollection, collection,
		constants.StringsAction, action,
	)
}

// statsError - accumulates a request error count
func (c *Client) statsError(collection, action string) {

	if c.timelineManager == nil {
		return
	}

	c.timelineManager.FlattenCountIncN(
		cPackage,
		cMetricSolrRequestError,
		constants.StringsCollection, collection,
		constants.StringsAction, action,
	)
}
