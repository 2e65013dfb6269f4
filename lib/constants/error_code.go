package constants

//
// Defines all error code prefixes.
//

const (
	// ErrorCodeSolr - error code prefix for the solr client
	ErrorCodeSolr string = "SKC"

	// ErrorCodeQuery - error code prefix for the query builder
	ErrorCodeQuery string = "SKQ"

	// ErrorCodeSchema - error code prefix for the schema manager
	ErrorCodeSchema string = "SKS"

	// ErrorCodeIndex - error code prefix for the indexing layer
	ErrorCodeIndex string = "SKI"
)
