package cmd

import (
	"log"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"
	"github.com/uol/gobol/loader"
	"github.com/uol/logh"

	"github.com/solrkit/solrkit/lib/constants"
	"github.com/solrkit/solrkit/lib/structs"
)

var (
	confPath string
	settings *structs.Settings
	logger   *logh.ContextualLogger
)

var rootCmd = &cobra.Command{
	Use:          "solrkit",
	Short:        "Solr schema, indexing and search service",
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {

		settings = new(structs.Settings)

		err := loader.ConfToml(confPath, &settings)
		if err != nil {
			log.Fatalln("error loading config file: ", err)
		}

		logger = configureLogger(&settings.Logs)

		if settings.GarbageCollectorPercentage > 0 {
			debug.SetGCPercent(settings.GarbageCollectorPercentage)
			if logh.InfoEnabled {
				logger.Info().Msgf("using garbage collector percentage from configuration: %d%%", settings.GarbageCollectorPercentage)
			}
		}
	},
}

// Execute - runs the selected command
func Execute() {

	rootCmd.PersistentFlags().StringVar(&confPath, "config", "config.toml", "path to configuration file")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// configureLogger - configures all loggers
func configureLogger(conf *structs.LoggerSettings) *logh.ContextualLogger {

	logh.ConfigureGlobalLogger(conf.Level, conf.Format)

	cl := logh.CreateContextualLogger(constants.StringsPKG, "cmd")

	if logh.InfoEnabled {
		cl.Info().Msg("log configured")
	}

	return cl
}

// fatal - logs the error and exits
func fatal(msg string, err error) {

	if logh.FatalEnabled {
		ev := logger.Fatal()
		if err != nil {
			ev = ev.Err(err)
		}
		ev.Msg(msg)
	}

	os.Exit(1)
}
