package cmd

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var statusCmd = &cobra.Command{
	Use:   "status [core]",
	Short: "Reports the status of the configured solr core",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runStatus(args)
	},
}

func init() {

	rootCmd.AddCommand(statusCmd)
}

func runStatus(args []string) {

	client := createSolrClient(&settings.Solr, nil)

	core := client.Collection()
	if len(args) > 0 {
		core = args[0]
	}

	up, gerr := client.CoreAdmin.Ping(core)
	if gerr != nil {
		fatal("error pinging solr core", gerr)
	}

	status, gerr := client.CoreAdmin.Status(core)
	if gerr != nil {
		fatal("error requesting solr core status", gerr)
	}

	payload, err := json.MarshalIndent(map[string]interface{}{
		"up":    up,
		"cores": status,
	}, "", "  ")
	if err != nil {
		fatal("error encoding solr core status", err)
	}

	fmt.Println(string(payload))
}
