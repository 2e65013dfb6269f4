package solr

import (
	"net/http"
	"net/url"
	"time"

	"github.com/buger/jsonparser"
	"github.com/uol/gobol"

	"github.com/solrkit/solrkit/lib/constants"
)

//
// The core admin api. Used by the schema tooling to create, reload and
// inspect cores.
//

const (
	cFuncCreate string = "Create"
	cFuncUnload string = "Unload"
	cFuncReload string = "Reload"
	cFuncStatus string = "Status"
	cFuncPing   string = "Ping"

	cHandlerCores string = "admin/cores"
	cHandlerPing  string = "admin/ping"

	cParamAction string = "action"
	cParamCore   string = "core"

	cActionAdmin string = "admin"
)

// CoreAdmin - the core admin api
type CoreAdmin struct {
	client *Client
}

// CoreStatus - the status reported for a single core
type CoreStatus struct {
	Name      string `json:"name"`
	StartTime string `json:"startTime"`
	Uptime    int64  `json:"uptime"`
	Index     struct {
		NumDocs     int64 `json:"numDocs"`
		MaxDoc      int64 `json:"maxDoc"`
		Version     int64 `json:"version"`
		SizeInBytes int64 `json:"sizeInBytes"`
	} `json:"index"`
}

// request - runs a core admin action
func (a *CoreAdmin) request(function string, params url.Values) ([]byte, gobol.Error) {

	start := time.Now()

	content, gerr := a.client.makeRequest(function, http.MethodGet, a.client.buildURL(constants.StringsEmpty, cHandlerCores), params, nil)
	if gerr != nil {
		a.client.statsError(constants.StringsEmpty, cActionAdmin)
		return nil, gerr
	}

	a.client.statsRequest(constants.StringsEmpty, cActionAdmin, time.Since(start))

	return content, nil
}

// Create - creates a new core using the given config set
func (a *CoreAdmin) Create(name, configSet string) gobol.Error {

	params := url.Values{}
	params.Set(cParamAction, "CREATE")
	params.Set("name", name)

	if configSet != constants.StringsEmpty {
		params.Set("configSet", configSet)
	}

	_, gerr := a.request(cFuncCreate, params)

	return gerr
}

// Unload - unloads a core, keeping its data on disk
func (a *CoreAdmin) Unload(core string) gobol.Error {

	params := url.Values{}
	params.Set(cParamAction, "UNLOAD")
	params.Set(cParamCore, core)

	_, gerr := a.request(cFuncUnload, params)

	return gerr
}

// Delete - unloads a core and removes its index and instance directory
func (a *CoreAdmin) Delete(core string) gobol.Error {

	params := url.Values{}
	params.Set(cParamAction, "UNLOAD")
	params.Set(cParamCore, core)
	params.Set("deleteInstanceDir", constants.StringsTrue)
	params.Set("deleteIndex", constants.StringsTrue)

	_, gerr := a.request(cFuncUnload, params)

	return gerr
}

// Reload - reloads a core so schema changes take effect
func (a *CoreAdmin) Reload(core string) gobol.Error {

	params := url.Values{}
	params.Set(cParamAction, "RELOAD")
	params.Set(cParamCore, core)

	_, gerr := a.request(cFuncReload, params)

	return gerr
}

// Status - returns the status of every core, or of a single core when a
// name is given
func (a *CoreAdmin) Status(core string) (map[string]CoreStatus, gobol.Error) {

	params := url.Values{}
	params.Set(cParamAction, "STATUS")

	if core != constants.StringsEmpty {
		params.Set(cParamCore, core)
	}

	content, gerr := a.request(cFuncStatus, params)
	if gerr != nil {
		return nil, gerr
	}

	wire := struct {
		Status map[string]CoreStatus `json:"status"`
	}{}

	if err := json.Unmarshal(content, &wire); err != nil {
		return nil, errInternalServer(cFuncStatus, err)
	}

	// an unknown core comes back as an empty entry
	for name, status := range wire.Status {
		if status.Name == constants.StringsEmpty {
			delete(wire.Status, name)
		}
	}

	return wire.Status, nil
}

// Exists - checks if a core with the given name is loaded
func (a *CoreAdmin) Exists(core string) (bool, gobol.Error) {

	status, gerr := a.Status(core)
	if gerr != nil {
		return false, gerr
	}

	_, found := status[core]

	return found, nil
}

// Ping - checks if a core is up, a missing core reports down instead of
// an error
func (a *CoreAdmin) Ping(core string) (bool, gobol.Error) {

	start := time.Now()

	content, gerr := a.client.makeRequest(cFuncPing, http.MethodGet, a.client.buildURL(core, cHandlerPing), nil, nil)
	if gerr != nil {
		if IsNotFound(gerr) {
			return false, nil
		}
		a.client.statsError(core, cActionAdmin)
		return false, gerr
	}

	a.client.statsRequest(core, cActionAdmin, time.Since(start))

	status, err := jsonparser.GetString(content, "status")
	if err != nil {
		return false, errInternalServer(cFuncPing, err)
	}

	return status == "OK", nil
}
