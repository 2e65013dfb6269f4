package solrtest

import (
	"os"
	"testing"
	"time"

	"github.com/pborman/uuid"
	"github.com/uol/funks"

	"github.com/solrkit/solrkit/lib/solr"
)

//
// Disposable solr cores for integration tests. A throwaway core is
// created against a real solr instance and unloaded again when the
// test finishes.
//

const (
	// EnvSolrURL - points the integration tests at a live solr instance,
	// tests are skipped when unset
	EnvSolrURL string = "SOLRKIT_TEST_SOLR_URL"

	// EnvSolrConfigSet - the config set used for throwaway cores
	EnvSolrConfigSet string = "SOLRKIT_TEST_CONFIGSET"

	cDefaultConfigSet string = "basic_configs"
	cCorePrefix       string = "solrkit_test_"
)

// Core - a disposable solr core
type Core struct {

	// Client - a client bound to the disposable core
	Client *solr.Client

	// Name - the generated core name
	Name string
}

// NewCore - creates a uniquely named throwaway core, skipping the test
// when no live solr instance is configured. The core is unloaded and
// its data removed when the test finishes.
func NewCore(t *testing.T) *Core {

	solrURL := os.Getenv(EnvSolrURL)
	if solrURL == "" {
		t.Skipf("skipping, %s is not set", EnvSolrURL)
	}

	configSet := os.Getenv(EnvSolrConfigSet)
	if configSet == "" {
		configSet = cDefaultConfigSet
	}

	name := cCorePrefix + uuid.New()

	client, err := solr.New(&solr.Settings{
		URL:          solrURL,
		Collection:   name,
		ConfigSet:    configSet,
		CommitWithin: funks.Duration{Duration: 100 * time.Millisecond},
		Timeout:      funks.Duration{Duration: 10 * time.Second},
	}, nil)

	if err != nil {
		t.Fatalf("error creating the solr client: %v", err)
	}

	if gerr := client.CoreAdmin.Create(name, configSet); gerr != nil {
		t.Fatalf("error creating the test core %s: %v", name, gerr)
	}

	core := &Core{
		Client: client,
		Name:   name,
	}

	t.Cleanup(func() {
		if gerr := client.CoreAdmin.Delete(name); gerr != nil {
			t.Logf("error deleting the test core %s: %v", name, gerr)
		}
	})

	return core
}
