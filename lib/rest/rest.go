package rest

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/rs/cors"
	"github.com/uol/gobol/rip"
	"github.com/uol/logh"
	tlmanager "github.com/uol/timelinemanager"

	"github.com/solrkit/solrkit/lib/constants"
	"github.com/solrkit/solrkit/lib/query"
	"github.com/solrkit/solrkit/lib/solr"
	"github.com/solrkit/solrkit/lib/structs"
)

//
// The http service exposing the probe, core status and last modified
// endpoints.
//

const cPackage string = "rest"

// REST - the http handler
type REST struct {
	settings        structs.SettingsHTTP
	client          *solr.Client
	searcher        query.Searcher
	logger          *logh.ContextualLogger
	timelineManager *tlmanager.Instance
	server          *http.Server
}

// New - creates the http service
func New(settings structs.SettingsHTTP, client *solr.Client, searcher query.Searcher, timelineManager *tlmanager.Instance) *REST {

	return &REST{
		settings:        settings,
		client:          client,
		searcher:        searcher,
		logger:          logh.CreateContextualLogger(constants.StringsPKG, cPackage),
		timelineManager: timelineManager,
	}
}

// Start - starts the http server asynchronously
func (trest *REST) Start() {

	go trest.asyncStart()
}

func (trest *REST) asyncStart() {

	router := rip.NewCustomRouter()

	router.GET("/probe", trest.probe)
	router.GET("/solr/status", trest.status)
	router.GET("/lastmodified", trest.lastModified)

	if trest.settings.EnableProfiling {

		if logh.InfoEnabled {
			trest.logger.Info().Msg("WARNING - http profiling is enabled!!!")
		}

		router.Handler(http.MethodGet, "/debug/pprof/:item", http.DefaultServeMux)
	}

	var handler http.Handler = router
	if trest.settings.AllowCORS {
		handler = cors.AllowAll().Handler(router)
	}

	trest.server = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", trest.settings.Bind, trest.settings.Port),
		Handler:           handler,
		ReadTimeout:       60 * time.Second,
		ReadHeaderTimeout: 60 * time.Second,
		WriteTimeout:      60 * time.Second,
	}

	if logh.InfoEnabled {
		trest.logger.Info().Msgf("http server listening on %s", trest.server.Addr)
	}

	err := trest.server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		if logh.ErrorEnabled {
			trest.logger.Error().Err(err).Msg("error on http server")
		}
	}
}

// Stop - stops the http server
func (trest *REST) Stop() {

	if trest.server == nil {
		return
	}

	if err := trest.server.Shutdown(context.Background()); err != nil {
		if logh.ErrorEnabled {
			trest.logger.Error().Err(err).Msg("error shutting down http server")
		}
	}
}

// probe - reports whether the configured core answers its ping handler
func (trest *REST) probe(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {

	up, gerr := trest.client.CoreAdmin.Ping(trest.client.Collection())
	if gerr != nil {
		trest.statsRequest("/probe", http.StatusInternalServerError)
		rip.Fail(w, gerr)
		return
	}

	if !up {
		trest.statsRequest("/probe", http.StatusServiceUnavailable)
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	trest.statsRequest("/probe", http.StatusOK)
	w.WriteHeader(http.StatusOK)
}

// status - returns the core status reported by the core admin api
func (trest *REST) status(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {

	status, gerr := trest.client.CoreAdmin.Status(trest.client.Collection())
	if gerr != nil {
		trest.statsRequest("/solr/status", gerr.StatusCode())
		rip.Fail(w, gerr)
		return
	}

	trest.statsRequest("/solr/status", http.StatusOK)
	rip.SuccessJSON(w, http.StatusOK, status)
}
