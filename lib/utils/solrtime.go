package utils

import (
	"time"
)

//
// Helpers for the utc timestamp format used by solr date fields.
//

const (
	cSolrTimeFormat       string = "2006-01-02T15:04:05Z"
	cSolrTimeMillisFormat string = "2006-01-02T15:04:05.999Z"
)

// ParseSolrTime - parses a timestamp the way solr renders date fields
func ParseSolrTime(value string) (time.Time, error) {

	parsed, err := time.Parse(cSolrTimeMillisFormat, value)
	if err == nil {
		return parsed, nil
	}

	return time.Parse(cSolrTimeFormat, value)
}

// FormatSolrTime - renders a timestamp the way solr date fields expect
func FormatSolrTime(value time.Time) string {

	return value.UTC().Format(cSolrTimeFormat)
}
