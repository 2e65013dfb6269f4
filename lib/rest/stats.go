package rest

import (
	"strconv"
)

const (
	cMetricRequestCount string = "request.count"

	cTagPath   string = "path"
	cTagStatus string = "status"
)

// statsRequest - accumulates a request count per route and status
func (trest *REST) statsRequest(path string, status int) {

	if trest.timelineManager == nil {
		return
	}

	trest.timelineManager.FlattenCountIncN(
		cPackage,
		cMetricRequestCount,
		cTagPath, path,
		cTagStatus, strconv.Itoa(status),
	)
}
