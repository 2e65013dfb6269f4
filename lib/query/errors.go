package query

import (
	"net/http"

	"github.com/uol/gobol"

	"github.com/solrkit/solrkit/lib/constants"
	"github.com/solrkit/solrkit/lib/tserr"
)

const cPackage string = "query"

func errBasic(function, msg string, code int, e error) gobol.Error {
	if e != nil {
		return tserr.NewErrorWithCode(e, msg, cPackage, function, code, constants.ErrorCodeQuery)
	}
	return nil
}

func errInternalServer(function string, e error) gobol.Error {
	return errBasic(function, constants.StringsEmpty, http.StatusInternalServerError, e)
}
