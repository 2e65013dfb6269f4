package rest

import (
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/uol/gobol/rip"
	"github.com/uol/logh"

	"github.com/solrkit/solrkit/lib/query"
	"github.com/solrkit/solrkit/lib/utils"
)

//
// A conditional endpoint exposing the most recent index update, so
// downstream caches can revalidate cheaply.
//

const (
	cLastModifiedField  string = "last_modified"
	cLastModifiedRoute  string = "/lastmodified"
	cHeaderLastModified string = "Last-Modified"
	cHeaderIfModified   string = "If-Modified-Since"
)

// lastModified - returns the most recent document update as a
// Last-Modified header, honoring If-Modified-Since
func (trest *REST) lastModified(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {

	qs := query.NewQuerySet(trest.searcher).
		FilterRaw(trest.settings.LastModifiedFilters...).
		OrderBy("-" + cLastModifiedField).
		Only(cLastModifiedField).
		Limits(0, 1)

	docs, gerr := qs.GetResults()
	if gerr != nil {
		trest.statsRequest(cLastModifiedRoute, gerr.StatusCode())
		rip.Fail(w, gerr)
		return
	}

	if len(docs) == 0 {
		trest.statsRequest(cLastModifiedRoute, http.StatusNoContent)
		w.WriteHeader(http.StatusNoContent)
		return
	}

	lastModified, err := utils.ParseSolrTime(docs[0].String(cLastModifiedField))
	if err != nil {

		if logh.ErrorEnabled {
			trest.logger.Error().Err(err).Msg("error parsing the last modified field")
		}

		trest.statsRequest(cLastModifiedRoute, http.StatusNoContent)
		w.WriteHeader(http.StatusNoContent)
		return
	}

	// the header has no sub-second precision, truncate so revalidation
	// comparisons match
	lastModified = lastModified.Truncate(time.Second)

	w.Header().Set(cHeaderLastModified, lastModified.UTC().Format(http.TimeFormat))

	if since, err := http.ParseTime(r.Header.Get(cHeaderIfModified)); err == nil {
		if !lastModified.After(since) {
			trest.statsRequest(cLastModifiedRoute, http.StatusNotModified)
			w.WriteHeader(http.StatusNotModified)
			return
		}
	}

	trest.statsRequest(cLastModifiedRoute, http.StatusOK)
	w.WriteHeader(http.StatusOK)
}
