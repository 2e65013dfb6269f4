package solr

import (
	"net/http"

	"github.com/uol/gobol"

	"github.com/solrkit/solrkit/lib/constants"
	"github.com/solrkit/solrkit/lib/tserr"
)

const cPackage string = "solr"

func errBasic(function, msg string, code int, e error) gobol.Error {
	if e != nil {
		return tserr.NewErrorWithCode(e, msg, cPackage, function, code, constants.ErrorCodeSolr)
	}
	return nil
}

func errInternalServer(function string, e error) gobol.Error {
	return errBasic(function, constants.StringsEmpty, http.StatusInternalServerError, e)
}

func errNotFound(function string, e error) gobol.Error {
	return errBasic(function, constants.StringsEmpty, http.StatusNotFound, e)
}

func errRequest(function string, code int, e error) gobol.Error {
	return errBasic(function, constants.StringsEmpty, code, e)
}

// IsNotFound - checks if the error was caused by a 404 from solr, normally
// a misconfigured or missing core
func IsNotFound(gerr gobol.Error) bool {
	return gerr != nil && gerr.StatusCode() == http.StatusNotFound
}
