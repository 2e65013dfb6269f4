package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/uol/logh"

	"github.com/solrkit/solrkit/lib/rest"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Runs the http search service",
	Run: func(cmd *cobra.Command, args []string) {
		runServe()
	},
}

func init() {

	rootCmd.AddCommand(serveCmd)
}

func runServe() {

	timelineManager := createTimelineManager(&settings.Stats)

	err := timelineManager.Start()
	if err != nil {
		fatal("error starting timeline manager", err)
	}

	client := createSolrClient(&settings.Solr, timelineManager)
	searcher := createSearcher(client, timelineManager)

	restServer := rest.New(settings.HTTPserver, client, searcher, timelineManager)
	restServer.Start()

	if logh.InfoEnabled {
		logger.Info().Msg("solrkit started successfully")
	}

	stopChannel := make(chan os.Signal, 1)
	signal.Notify(stopChannel, os.Interrupt, syscall.SIGTERM)

	<-stopChannel

	if logh.InfoEnabled {
		logger.Info().Msg("stopping solrkit...")
	}

	if logh.InfoEnabled {
		logger.Info().Msg("stopping rest server")
	}

	restServer.Stop()

	if logh.InfoEnabled {
		logger.Info().Msg("rest server stopped")
	}

	if logh.InfoEnabled {
		logger.Info().Msg("stopping statistics service")
	}

	timelineManager.Shutdown()

	if logh.InfoEnabled {
		logger.Info().Msg("statistics service stopped")
	}

	if logh.InfoEnabled {
		logger.Info().Msg("stopping solrkit is done")
	}

	os.Exit(0)
}
