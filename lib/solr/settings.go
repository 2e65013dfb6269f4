package solr

import (
	"github.com/uol/funks"
)

//
// Solr client configuration.
//

// Settings - the solr client configuration
type Settings struct {

	// URL - the solr base url (scheme://host:port/solr)
	URL string

	// Collection - the default core or collection name
	Collection string

	// ConfigSet - the config set used when creating missing cores
	ConfigSet string

	// CommitWithin - the soft commit window applied to update requests
	CommitWithin funks.Duration

	// Timeout - the http client timeout
	Timeout funks.Duration
}
