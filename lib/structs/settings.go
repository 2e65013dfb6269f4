package structs

import (
	"github.com/uol/gobol/cassandra"
	"github.com/uol/logh"
	tlmanager "github.com/uol/timelinemanager"

	"github.com/solrkit/solrkit/lib/dbindex"
	"github.com/solrkit/solrkit/lib/memcached"
	"github.com/solrkit/solrkit/lib/query"
	"github.com/solrkit/solrkit/lib/schema"
	"github.com/solrkit/solrkit/lib/solr"
)

//
// The toml loadable configuration aggregating every component.
//

// LoggerSettings - logger configuration
type LoggerSettings struct {
	Level  logh.Level
	Format logh.Format
}

// SettingsHTTP - the rest server configuration
type SettingsHTTP struct {
	Bind            string
	Port            int
	AllowCORS       bool
	EnableProfiling bool

	// LastModifiedFilters - raw filter queries restricting the documents
	// considered by the last modified endpoint
	LastModifiedFilters []string
}

// IndexSettings - bulk indexing configuration
type IndexSettings struct {
	ChunkSize     int
	SQLSources    []dbindex.SQLSettings
	ScyllaSources []dbindex.ScyllaSettings
}

// CacheSettings - search response cache configuration
type CacheSettings struct {
	Enabled bool
	query.CacheConfiguration
}

// Settings - the full configuration
type Settings struct {
	Solr   solr.Settings
	Schema schema.Config
	Index  IndexSettings

	SQL           dbindex.SQLConnectionSettings
	SQLEnabled    bool
	Scylla        cassandra.Settings
	ScyllaEnabled bool

	Memcached memcached.Configuration
	Cache     CacheSettings

	HTTPserver SettingsHTTP
	Logs       LoggerSettings
	Stats      tlmanager.Configuration

	GarbageCollectorPercentage int
}
