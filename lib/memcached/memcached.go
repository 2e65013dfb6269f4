package memcached

import (
	"fmt"
	"time"

	"github.com/rainycape/memcache"
	"github.com/uol/funks"
	"github.com/uol/gobol"
	tlmanager "github.com/uol/timelinemanager"

	"github.com/solrkit/solrkit/lib/constants"
)

//
// A thin wrapper over the memcached client building namespaced keys and
// accumulating operation metrics.
//

const (
	cFuncGet    string = "Get"
	cFuncPut    string = "Put"
	cFuncDelete string = "Delete"
	cBar        string = "/"
)

// Configuration - memcached configuration
type Configuration struct {
	Pool         []string
	MaxIdleConns int
	Timeout      funks.Duration
}

// Memcached - the cache client
type Memcached struct {
	client          *memcache.Client
	timelineManager *tlmanager.Instance
}

// New - creates a new memcached wrapper
func New(configuration *Configuration, timelineManager *tlmanager.Instance) (*Memcached, error) {

	client, err := memcache.New(configuration.Pool...)
	if err != nil {
		return nil, err
	}

	client.SetMaxIdleConnsPerAddr(configuration.MaxIdleConns)
	client.SetTimeout(configuration.Timeout.Duration)

	return &Memcached{
		client:          client,
		timelineManager: timelineManager,
	}, nil
}

// fqn - builds a fully qualified name under a namespace
func (mc *Memcached) fqn(namespace string, fqnKeys ...string) (string, error) {

	if len(fqnKeys) == 0 {
		return constants.StringsEmpty, fmt.Errorf("no fqn composition keys found")
	}

	result := namespace + cBar

	for _, item := range fqnKeys {
		result += item
		result += cBar
	}

	return result, nil
}

// Get - returns an object from the cache, a miss returns nil with no error
func (mc *Memcached) Get(namespace string, fqnKeys ...string) ([]byte, gobol.Error) {

	start := time.Now()

	fqn, err := mc.fqn(namespace, fqnKeys...)
	if err != nil {
		return nil, errInternalServer(cFuncGet, err)
	}

	item, err := mc.client.Get(fqn)
	if err != nil && err != memcache.ErrCacheMiss {
		mc.statsError(cFuncGet, namespace)
		return nil, errInternalServer(cFuncGet, err)
	}

	if item == nil || item.Value == nil {
		mc.statsNotFound(namespace)
		return nil, nil
	}

	mc.statsSuccess(cFuncGet, namespace, time.Since(start))

	return item.Value, nil
}

// Put - stores an object in the cache
func (mc *Memcached) Put(value []byte, ttl int32, namespace string, fqnKeys ...string) gobol.Error {

	start := time.Now()

	fqn, err := mc.fqn(namespace, fqnKeys...)
	if err != nil {
		return errInternalServer(cFuncPut, err)
	}

	item := &memcache.Item{
		Key:        fqn,
		Value:      value,
		Expiration: ttl,
	}

	if err = mc.client.Set(item); err != nil {
		mc.statsError(cFuncPut, namespace)
		return errInternalServer(cFuncPut, err)
	}

	mc.statsSuccess(cFuncPut, namespace, time.Since(start))

	return nil
}

// Delete - removes an object from the cache, a miss is not an error
func (mc *Memcached) Delete(namespace string, fqnKeys ...string) gobol.Error {

	start := time.Now()

	fqn, err := mc.fqn(namespace, fqnKeys...)
	if err != nil {
		return errInternalServer(cFuncDelete, err)
	}

	if err = mc.client.Delete(fqn); err != nil && err != memcache.ErrCacheMiss {
		mc.statsError(cFuncDelete, namespace)
		return errInternalServer(cFuncDelete, err)
	}

	mc.statsSuccess(cFuncDelete, namespace, time.Since(start))

	return nil
}
