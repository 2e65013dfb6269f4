package memcached

import (
	"time"
)

const (
	cMetricCacheOperation         string = "cache.operation"
	cMetricCacheOperationDuration string = "cache.operation.duration"
	cMetricCacheOperationError    string = "cache.operation.error"
	cMetricCacheMiss              string = "cache.miss"

	cTagOperation string = "operation"
	cTagNamespace string = "namespace"
)

// statsSuccess - accumulates an operation count and its duration
func (mc *Memcached) statsSuccess(operation, namespace string, duration time.Duration) {

	if mc.timelineManager == nil {
		return
	}

	mc.timelineManager.FlattenCountIncN(
		cPackage,
		cMetricCacheOperation,
		cTagOperation, operation,
		cTagNamespace, namespace,
	)

	mc.timelineManager.FlattenMaxN(
		cPackage,
		float64(duration.Nanoseconds())/float64(time.Millisecond),
		cMetricCacheOperationDuration,
		cTagOperation, operation,
		cTagNamespace, namespace,
	)
}

// statsError - accumulates an operation error count
func (mc *Memcached) statsError(operation, namespace string) {

	if mc.timelineManager == nil {
		return
	}

	mc.timelineManager.FlattenCountIncN(
		cPackage,
		cMetricCacheOperationError,
		cTagOperation, operation,
		cTagNamespace, namespace,
	)
}

// statsNotFound - accumulates a cache miss count
func (mc *Memcached) statsNotFound(namespace string) {

	if mc.timelineManager == nil {
		return
	}

	mc.timelineManager.FlattenCountIncN(
		cPackage,
		cMetricCacheMiss,
		cTagNamespace, namespace,
	)
}
