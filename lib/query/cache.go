package query

import (
	"encoding/hex"
	"net/url"

	jsoniter "github.com/json-iterator/go"
	"github.com/uol/funks"
	"github.com/uol/gobol"
	"github.com/uol/hashing"
	"github.com/uol/logh"

	"github.com/solrkit/solrkit/lib/constants"
	"github.com/solrkit/solrkit/lib/memcached"
	"github.com/solrkit/solrkit/lib/solr"
)

//
// An optional caching layer over a searcher. Responses are stored in
// memcached keyed on a hash of the collection and the encoded request
// parameters. Cache failures only log, the search still runs.
//

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	cFuncCachedQuery string = "Query"

	cCacheNamespace string = "query"
	cHashSize       int    = 16
)

// CacheConfiguration - search cache configuration
type CacheConfiguration struct {

	// TTL - how long a cached response lives
	TTL funks.Duration
}

// CachedSearcher - a searcher reusing identical search responses from
// memcached
type CachedSearcher struct {
	searcher Searcher
	cache    *memcached.Memcached
	ttl      int32
	logger   *logh.ContextualLogger
}

// NewCachedSearcher - wraps a searcher with a memcached response cache
func NewCachedSearcher(searcher Searcher, cache *memcached.Memcached, configuration *CacheConfiguration) *CachedSearcher {

	return &CachedSearcher{
		searcher: searcher,
		cache:    cache,
		ttl:      int32(configuration.TTL.Duration.Seconds()),
		logger:   logh.CreateContextualLogger(constants.StringsPKG, cPackage),
	}
}

// Collection - the collection the searches run against
func (c *CachedSearcher) Collection() string {

	return c.searcher.Collection()
}

// cacheKey - hashes the collection and the encoded parameters
func (c *CachedSearcher) cacheKey(params url.Values) (string, gobol.Error) {

	hash, err := hashing.GenerateSHAKE128(cHashSize, c.searcher.Collection(), params.Encode())
	if err != nil {
		return constants.StringsEmpty, errInternalServer(cFuncCachedQuery, err)
	}

	return hex.EncodeToString(hash), nil
}

// Query - runs a search, reusing an identical cached response when one
// is still alive
func (c *CachedSearcher) Query(params url.Values) (*solr.QueryResponse, gobol.Error) {

	key, gerr := c.cacheKey(params)
	if gerr != nil {
		return c.searcher.Query(params)
	}

	cached, gerr := c.cache.Get(cCacheNamespace, key)
	if gerr != nil {
		if logh.ErrorEnabled {
			c.logger.Error().Str(constants.StringsFunc, cFuncCachedQuery).Err(gerr).Msg("error reading from cache")
		}
	} else if cached != nil {

		response := solr.QueryResponse{}
		if err := json.Unmarshal(cached, &response); err == nil {
			return &response, nil
		}

		if logh.ErrorEnabled {
			c.logger.Error().Str(constants.StringsFunc, cFuncCachedQuery).Msg("error decoding cached response, discarding")
		}
	}

	response, gerr := c.searcher.Query(params)
	if gerr != nil {
		return nil, gerr
	}

	encoded, err := json.Marshal(response)
	if err == nil {
		if gerr := c.cache.Put(encoded, c.ttl, cCacheNamespace, key); gerr != nil {
			if logh.ErrorEnabled {
				c.logger.Error().Str(constants.StringsFunc, cFuncCachedQuery).Err(gerr).Msg("error writing to cache")
			}
		}
	}

	return response, nil
}
