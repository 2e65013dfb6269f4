package solr

import (
	"bytes"
	"fmt"
	"io/ioutil"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/buger/jsonparser"
	"github.com/uol/gobol"
	"github.com/uol/logh"

	"github.com/solrkit/solrkit/lib/constants"
)

//
// The http layer shared by all solr APIs.
//

const (
	cWT              string = "wt"
	cContentTypeJSON string = "application/json"
	cContentTypeForm string = "application/x-www-form-urlencoded"
)

// buildURL - joins the base url, an optional collection and the handler path
func (c *Client) buildURL(collection, handler string) string {

	base := strings.TrimRight(c.settings.URL, "/")

	if collection == constants.StringsEmpty {
		return base + "/" + handler
	}

	return base + "/" + collection + "/" + handler
}

// makeRequest - sends a request to solr and returns the raw response body
// (the wt=json parameter is always enforced)
func (c *Client) makeRequest(function, method, rawURL string, params url.Values, body []byte) ([]byte, gobol.Error) {

	if params == nil {
		params = url.Values{}
	}

	params.Set(cWT, constants.StringsWTJSON)

	var req *http.Request
	var err error

	if body != nil {
		req, err = http.NewRequest(method, rawURL+"?"+params.Encode(), bytes.NewReader(body))
		if err != nil {
			return nil, errInternalServer(function, err)
		}
		req.Header.Set("Content-Type", cContentTypeJSON)
	} else if method == http.MethodPost {
		req, err = http.NewRequest(method, rawURL, strings.NewReader(params.Encode()))
		if err != nil {
			return nil, errInternalServer(function, err)
		}
		req.Header.Set("Content-Type", cContentTypeForm)
	} else {
		req, err = http.NewRequest(method, rawURL+"?"+params.Encode(), nil)
		if err != nil {
			return nil, errInternalServer(function, err)
		}
	}

	start := time.Now()

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errInternalServer(function, err)
	}

	defer res.Body.Close()

	content, err := ioutil.ReadAll(res.Body)
	if err != nil {
		return nil, errInternalServer(function, err)
	}

	if logh.DebugEnabled {
		c.log(c.logger.Debug(), function).
			Msgf("%s %s => %d: %v", method, rawURL, res.StatusCode, time.Since(start))
	}

	if res.StatusCode == http.StatusNotFound {
		return nil, errNotFound(function, fmt.Errorf("404 not found: %s", rawURL))
	}

	if res.StatusCode != http.StatusOK {
		return nil, errRequest(function, res.StatusCode,
			fmt.Errorf("%s %s: unexpected status %d: %s", method, rawURL, res.StatusCode, string(content)))
	}

	// solr may return 200 and carry its own error status inside the header
	if status, jerr := jsonparser.GetInt(content, "responseHeader", "status"); jerr == nil && status != 0 {
		msg, _ := jsonparser.GetString(content, "error", "msg")
		return nil, errRequest(function, int(status),
			fmt.Errorf("solr error %d on %s: %s", status, rawURL, msg))
	}

	return content, nil
}

// BoolString - renders a boolean the way solr parameters expect it
func BoolString(value bool) string {

	if value {
		return constants.StringsTrue
	}

	return constants.StringsFalse
}
