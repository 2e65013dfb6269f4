package schema

import (
	"net/http"

	"github.com/uol/gobol"

	"github.com/solrkit/solrkit/lib/constants"
	"github.com/solrkit/solrkit/lib/tserr"
)

const cPackage string = "schema"

func errBasic(function string, code int, e error) gobol.Error {
	if e != nil {
		return tserr.NewErrorWithCode(e, constants.StringsEmpty, cPackage, function, code, constants.ErrorCodeSchema)
	}
	return nil
}

func errBadRequest(function string, e error) gobol.Error {
	return errBasic(function, http.StatusBadRequest, e)
}
