package cmd

import (
	"github.com/gocql/gocql"
	"github.com/jmoiron/sqlx"
	"github.com/uol/gobol/cassandra"
	"github.com/uol/logh"
	tlmanager "github.com/uol/timelinemanager"

	"github.com/solrkit/solrkit/lib/dbindex"
	"github.com/solrkit/solrkit/lib/index"
	"github.com/solrkit/solrkit/lib/memcached"
	"github.com/solrkit/solrkit/lib/query"
	"github.com/solrkit/solrkit/lib/solr"
)

// createTimelineManager - creates the timeline manager
func createTimelineManager(conf *tlmanager.Configuration) *tlmanager.Instance {

	if logh.DebugEnabled {
		logger.Debug().Msgf("%+v", *conf)
	}

	tm, err := tlmanager.New(conf)
	if err != nil {
		fatal("error creating timeline manager", err)
	}

	if logh.InfoEnabled {
		logger.Info().Msg("timeline manager was created")
	}

	return tm
}

// createSolrClient - creates the solr client
func createSolrClient(conf *solr.Settings, timelineManager *tlmanager.Instance) *solr.Client {

	client, err := solr.New(conf, timelineManager)
	if err != nil {
		fatal("error creating solr client", err)
	}

	if logh.InfoEnabled {
		logger.Info().Msgf("solr client was created: %s", conf.URL)
	}

	return client
}

// createMemcachedConnection - creates the memcached connection
func createMemcachedConnection(conf *memcached.Configuration, timelineManager *tlmanager.Instance) *memcached.Memcached {

	mc, err := memcached.New(conf, timelineManager)
	if err != nil {
		fatal("error creating memcached connection", err)
	}

	if logh.InfoEnabled {
		logger.Info().Msg("memcached connection was created")
	}

	return mc
}

// createSearcher - wraps the solr client with the memcached response
// cache when it is enabled
func createSearcher(client *solr.Client, timelineManager *tlmanager.Instance) query.Searcher {

	if !settings.Cache.Enabled {
		return client
	}

	memcachedConn := createMemcachedConnection(&settings.Memcached, timelineManager)

	if logh.InfoEnabled {
		logger.Info().Msg("search response cache is enabled")
	}

	return query.NewCachedSearcher(client, memcachedConn, &settings.Cache.CacheConfiguration)
}

// createSQLConnection - creates the relational DB connection
func createSQLConnection(conf *dbindex.SQLConnectionSettings) *sqlx.DB {

	db, err := dbindex.Connect(conf)
	if err != nil {
		fatal("error creating sql connection", err)
	}

	if logh.InfoEnabled {
		logger.Info().Msg("sql connection was created")
	}

	return db
}

// createScyllaConnection - creates the scylla DB connection
func createScyllaConnection(conf *cassandra.Settings) *gocql.Session {

	conn, err := cassandra.New(*conf)
	if err != nil {
		fatal("error creating scylla connection", err)
	}

	if logh.InfoEnabled {
		logger.Info().Msg("scylla db connection was created")
	}

	return conn
}

// createRegistry - creates the indexable registry from the configured
// database sources
func createRegistry() *index.Registry {

	registry := index.NewRegistry()

	if settings.SQLEnabled && len(settings.Index.SQLSources) > 0 {
		db := createSQLConnection(&settings.SQL)
		for i := range settings.Index.SQLSources {
			registry.Register(dbindex.NewSQLSource(db, &settings.Index.SQLSources[i]))
		}
	}

	if settings.ScyllaEnabled && len(settings.Index.ScyllaSources) > 0 {
		session := createScyllaConnection(&settings.Scylla)
		for i := range settings.Index.ScyllaSources {
			registry.Register(dbindex.NewScyllaSource(session, &settings.Index.ScyllaSources[i]))
		}
	}

	if logh.InfoEnabled {
		logger.Info().Msgf("indexable registry was created: %v", registry.Types())
	}

	return registry
}

// createIndexer - creates the chunked indexer
func createIndexer(client *solr.Client, timelineManager *tlmanager.Instance) *index.Indexer {

	return index.NewIndexer(client.Update, settings.Index.ChunkSize, timelineManager)
}
