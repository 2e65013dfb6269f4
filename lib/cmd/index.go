package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/solrkit/solrkit/lib/index"
	"github.com/solrkit/solrkit/lib/solr"
)

const (
	cIndexNone        string = "none"
	cProgressMinTotal int64  = 5
)

var (
	indexTarget     string
	indexClear      string
	indexNoProgress bool
)

var indexCmd = &cobra.Command{
	Use:   "index [id ...]",
	Short: "Indexes the configured sources into solr",
	Long: "Indexes the configured database sources into solr. Positional " +
		"arguments select single items by compound id (itemtype.id); without " +
		"them every item of the selected types is indexed.",
	Run: func(cmd *cobra.Command, args []string) {
		runIndex(args)
	},
}

func init() {

	indexCmd.Flags().StringVarP(&indexTarget, "index", "i", index.ClearAll, "item type to index, or 'all' or 'none'")
	indexCmd.Flags().StringVarP(&indexClear, "clear", "c", cIndexNone, "item type to clear from the index before indexing, or 'all'")
	indexCmd.Flags().BoolVar(&indexNoProgress, "no-progress", false, "do not display progress output")
	rootCmd.AddCommand(indexCmd)
}

func runIndex(args []string) {

	ctx := context.Background()

	client := createSolrClient(&settings.Solr, nil)
	registry := createRegistry()
	indexer := createIndexer(client, nil)

	if indexClear != cIndexNone {
		label := indexClear
		if indexClear == index.ClearAll {
			label = "everything"
		}
		fmt.Printf("Clearing %s from the index\n", label)

		if gerr := indexer.Clear(indexClear); gerr != nil {
			fatal("error clearing the index", gerr)
		}
	}

	// explicit ids bypass the type selection
	items := resolveItems(ctx, registry, args)

	var count int64
	var gerr error

	if len(items) > 0 {
		for _, item := range items {
			if ierr := indexer.Index(item); ierr != nil {
				fatal("error indexing item", ierr)
			}
			count++
		}
	} else if indexTarget != cIndexNone {
		count, gerr = indexTypes(ctx, registry, indexer)
		if gerr != nil {
			fatal("error indexing items", gerr)
		}
	}

	// commit all the indexed changes
	if gerr := client.Update.Index(nil, &solr.UpdateOptions{Commit: true}); gerr != nil {
		fatal("error committing indexed changes", gerr)
	}

	plural := "s"
	if count == 1 {
		plural = ""
	}
	fmt.Printf("Indexed %d item%s\n", count, plural)
}

// resolveItems - resolves the compound ids given on the command line
func resolveItems(ctx context.Context, registry *index.Registry, args []string) []index.Indexable {

	items := make([]index.Indexable, 0, len(args))

	for _, arg := range args {
		item, gerr := registry.ResolveID(ctx, arg)
		if gerr != nil {
			fatal(fmt.Sprintf("unrecognized index id '%s'", arg), gerr)
		}
		items = append(items, item)
	}

	return items
}

// indexTypes - indexes every registered type selected by the index flag
func indexTypes(ctx context.Context, registry *index.Registry, indexer *index.Indexer) (int64, error) {

	selected := make([]index.Provider, 0)
	var total int64

	for _, itemType := range registry.Types() {
		if indexTarget != index.ClearAll && indexTarget != itemType {
			continue
		}

		provider, gerr := registry.Provider(itemType)
		if gerr != nil {
			return 0, gerr
		}

		typeTotal, gerr := provider.Total(ctx)
		if gerr != nil {
			return 0, gerr
		}

		total += typeTotal
		selected = append(selected, provider)
	}

	if indexTarget != index.ClearAll && len(selected) == 0 {
		return 0, fmt.Errorf("unknown item type '%s'", indexTarget)
	}

	var progress index.Progress
	if !indexNoProgress && total > cProgressMinTotal {
		progress = func(count int64) {
			fmt.Printf("\rindexed %d of %d items", count, total)
		}
		defer fmt.Println()
	}

	var count int64

	for _, provider := range selected {
		indexed, gerr := indexer.IndexItems(ctx, provider, indexedOffset(progress, count))
		if gerr != nil {
			return count, gerr
		}
		count += indexed
	}

	return count, nil
}

// indexedOffset - shifts the per source progress count by the items
// already indexed from previous sources
func indexedOffset(progress index.Progress, offset int64) index.Progress {

	if progress == nil {
		return nil
	}

	return func(count int64) {
		progress(offset + count)
	}
}
