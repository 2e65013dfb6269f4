package query

import (
	"fmt"
	"strings"

	"github.com/solrkit/solrkit/lib/constants"
)

//
// Builders for the filter query expressions supported by the queryset.
//

// AnyValue - the solr expression matching any value of a field
const AnyValue string = "[* TO *]"

// lookupEquals - a plain field:value pair
func lookupEquals(field, value string) string {

	return fmt.Sprintf("%s:%s", field, value)
}

// lookupIn - matches any of the given values joined by OR. An empty value
// in the list also matches documents where the field is not set, using a
// double negation so both cases survive in a single filter query.
func lookupIn(field string, values []string) string {

	notExists := false
	kept := make([]string, 0, len(values))

	for _, value := range values {
		if value == constants.StringsEmpty {
			notExists = true
		} else {
			kept = append(kept, value)
		}
	}

	if len(kept) == 0 {
		return fmt.Sprintf("-%s:%s", field, AnyValue)
	}

	lookup := fmt.Sprintf("%s:(%s)", field, strings.Join(kept, " OR "))

	if notExists {
		return fmt.Sprintf("-(%s:%s OR -%s)", field, AnyValue, lookup)
	}

	return lookup
}

// lookupExists - matches documents where the field has any value, or none
func lookupExists(field string, exists bool) string {

	if exists {
		return fmt.Sprintf("%s:%s", field, AnyValue)
	}

	return fmt.Sprintf("-%s:%s", field, AnyValue)
}

// lookupRange - a range query, open ended when a boundary is empty
func lookupRange(field, from, to string) string {

	if from == constants.StringsEmpty {
		from = "*"
	}

	if to == constants.StringsEmpty {
		to = "*"
	}

	return fmt.Sprintf("%s:[%s TO %s]", field, from, to)
}

// tagged - prepends a local parameter tag used for facet exclusion
func tagged(tag, lookup string) string {

	if tag == constants.StringsEmpty {
		return lookup
	}

	return fmt.Sprintf("{!tag=%s}%s", tag, lookup)
}
