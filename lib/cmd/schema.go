package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/solrkit/solrkit/lib/schema"
)

const cDefaultConfigSet string = "_default"

var schemaNoInput bool

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Updates the solr schema to match the configured field definitions",
	Run: func(cmd *cobra.Command, args []string) {
		runSchema()
	},
}

func init() {

	schemaCmd.Flags().BoolVar(&schemaNoInput, "noinput", false, "do not prompt for user input")
	rootCmd.AddCommand(schemaCmd)
}

func runSchema() {

	client := createSolrClient(&settings.Solr, nil)

	coreExists, gerr := client.CoreAdmin.Ping(client.Collection())
	if gerr != nil {
		fatal("error connecting to solr, check the configuration and make sure solr is running", gerr)
	}

	if !coreExists {
		if !schemaNoInput && !confirmCoreCreation(client.Collection()) {
			return
		}

		configSet := settings.Solr.ConfigSet
		if configSet == "" {
			configSet = cDefaultConfigSet
		}

		gerr = client.CoreAdmin.Create(client.Collection(), configSet)
		if gerr != nil {
			fatal("error creating solr core", gerr)
		}

		fmt.Printf("Created core %s using configset %s\n", client.Collection(), configSet)
	}

	updater := schema.NewUpdater(client.Schema)

	counts, gerr := updater.ConfigureFieldTypes(&settings.Schema)
	if gerr != nil {
		fatal("error configuring field types", gerr)
	}
	reportChanges(counts, "field type")

	counts, gerr = updater.ConfigureFields(&settings.Schema)
	if gerr != nil {
		fatal("error configuring fields", gerr)
	}
	reportChanges(counts, "field")

	gerr = client.CoreAdmin.Reload(client.Collection())
	if gerr != nil {
		fatal("error reloading solr core", gerr)
	}
}

// confirmCoreCreation - asks whether the missing core should be created
func confirmCoreCreation(core string) bool {

	fmt.Printf("Solr core %s does not exist. Create it? (y/n) ", core)

	answer, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}

	return strings.ToLower(strings.TrimSpace(answer)) == "y"
}

// reportChanges - reports counts for added, replaced or deleted items
func reportChanges(counts schema.Counts, label string) {

	report := func(action string, count int) {
		if count > 0 {
			plural := ""
			if count != 1 {
				plural = "s"
			}
			fmt.Printf("%s %d %s%s\n", action, count, label, plural)
		}
	}

	report("Added", counts.Added)
	report("Replaced", counts.Replaced)
	report("Deleted", counts.Deleted)
}
