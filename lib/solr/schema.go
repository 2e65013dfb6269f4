package solr

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/uol/gobol"
)

//
// The schema api. All mutations are posted as single command payloads to
// the collection schema handler.
//

const (
	cFuncSchemaCommand  string = "command"
	cFuncGetSchema      string = "Get"
	cFuncListFields     string = "ListFields"
	cFuncListCopyFields string = "ListCopyFields"
	cFuncListFieldTypes string = "ListFieldTypes"

	cHandlerSchema string = "schema"

	cActionSchema string = "schema"

	cCommandAddField         string = "add-field"
	cCommandReplaceField     string = "replace-field"
	cCommandDeleteField      string = "delete-field"
	cCommandAddCopyField     string = "add-copy-field"
	cCommandDeleteCopyField  string = "delete-copy-field"
	cCommandAddFieldType     string = "add-field-type"
	cCommandReplaceFieldType string = "replace-field-type"
	cCommandDeleteFieldType  string = "delete-field-type"
)

// Schema - the schema api bound to the client default collection
type Schema struct {
	client *Client
}

// Field - a schema field definition
type Field struct {
	Name        string      `json:"name"`
	Type        string      `json:"type,omitempty"`
	Required    *bool       `json:"required,omitempty"`
	Indexed     *bool       `json:"indexed,omitempty"`
	Stored      *bool       `json:"stored,omitempty"`
	MultiValued *bool       `json:"multiValued,omitempty"`
	DocValues   *bool       `json:"docValues,omitempty"`
	Default     interface{} `json:"default,omitempty"`
}

// CopyField - a copy field directive between two schema fields
type CopyField struct {
	Source   string `json:"source"`
	Dest     string `json:"dest"`
	MaxChars int    `json:"maxChars,omitempty"`
}

// FieldType - a schema field type definition
type FieldType struct {
	Name                 string                 `json:"name"`
	Class                string                 `json:"class,omitempty"`
	MultiValued          *bool                  `json:"multiValued,omitempty"`
	SortMissingLast      *bool                  `json:"sortMissingLast,omitempty"`
	PositionIncrementGap string                 `json:"positionIncrementGap,omitempty"`
	Analyzer             map[string]interface{} `json:"analyzer,omitempty"`
	IndexAnalyzer        map[string]interface{} `json:"indexAnalyzer,omitempty"`
	QueryAnalyzer        map[string]interface{} `json:"queryAnalyzer,omitempty"`
}

// Bool - builds an optional boolean schema property
func Bool(value bool) *bool {

	return &value
}

// command - posts a single schema command
func (s *Schema) command(name string, definition interface{}) gobol.Error {

	body, err := json.Marshal(map[string]interface{}{name: definition})
	if err != nil {
		return errInternalServer(cFuncSchemaCommand, err)
	}

	collection := s.client.settings.Collection

	start := time.Now()

	_, gerr := s.client.makeRequest(cFuncSchemaCommand, http.MethodPost, s.client.buildURL(collection, cHandlerSchema), nil, body)
	if gerr != nil {
		s.client.statsError(collection, cActionSchema)
		return gerr
	}

	s.client.statsRequest(collection, cActionSchema, time.Since(start))

	return nil
}

// AddField - adds a new field to the schema
func (s *Schema) AddField(field Field) gobol.Error {

	return s.command(cCommandAddField, field)
}

// ReplaceField - replaces an existing field definition
func (s *Schema) ReplaceField(field Field) gobol.Error {

	return s.command(cCommandReplaceField, field)
}

// DeleteField - removes a field from the schema
func (s *Schema) DeleteField(name string) gobol.Error {

	return s.command(cCommandDeleteField, map[string]string{"name": name})
}

// AddCopyField - adds a copy field directive
func (s *Schema) AddCopyField(copyField CopyField) gobol.Error {

	return s.command(cCommandAddCopyField, copyField)
}

// DeleteCopyField - removes a copy field directive
func (s *Schema) DeleteCopyField(source, dest string) gobol.Error {

	return s.command(cCommandDeleteCopyField, map[string]string{"source": source, "dest": dest})
}

// AddFieldType - adds a new field type to the schema
func (s *Schema) AddFieldType(fieldType FieldType) gobol.Error {

	return s.command(cCommandAddFieldType, fieldType)
}

// ReplaceFieldType - replaces an existing field type definition
func (s *Schema) ReplaceFieldType(fieldType FieldType) gobol.Error {

	return s.command(cCommandReplaceFieldType, fieldType)
}

// DeleteFieldType - removes a field type from the schema
func (s *Schema) DeleteFieldType(name string) gobol.Error {

	return s.command(cCommandDeleteFieldType, map[string]string{"name": name})
}

// get - runs a schema listing request
func (s *Schema) get(function, path string, params url.Values) ([]byte, gobol.Error) {

	collection := s.client.settings.Collection

	start := time.Now()

	content, gerr := s.client.makeRequest(function, http.MethodGet, s.client.buildURL(collection, path), params, nil)
	if gerr != nil {
		s.client.statsError(collection, cActionSchema)
		return nil, gerr
	}

	s.client.statsRequest(collection, cActionSchema, time.Since(start))

	return content, nil
}

// Get - returns the full schema definition as decoded json
func (s *Schema) Get() (map[string]interface{}, gobol.Error) {

	content, gerr := s.get(cFuncGetSchema, cHandlerSchema, nil)
	if gerr != nil {
		return nil, gerr
	}

	wire := struct {
		Schema map[string]interface{} `json:"schema"`
	}{}

	if err := json.Unmarshal(content, &wire); err != nil {
		return nil, errInternalServer(cFuncGetSchema, err)
	}

	return wire.Schema, nil
}

// ListFields - lists the schema fields, optionally restricted to the given
// field names
func (s *Schema) ListFields(fields []string, includeDynamic, showDefaults bool) ([]Field, gobol.Error) {

	params := url.Values{}
	params.Set("includeDynamic", BoolString(includeDynamic))
	params.Set("showDefaults", BoolString(showDefaults))

	if len(fields) > 0 {
		params.Set("fl", strings.Join(fields, ","))
	}

	content, gerr := s.get(cFuncListFields, cHandlerSchema+"/fields", params)
	if gerr != nil {
		return nil, gerr
	}

	wire := struct {
		Fields []Field `json:"fields"`
	}{}

	if err := json.Unmarshal(content, &wire); err != nil {
		return nil, errInternalServer(cFuncListFields, err)
	}

	return wire.Fields, nil
}

// ListCopyFields - lists the copy field directives, optionally filtered by
// source or destination field names
func (s *Schema) ListCopyFields(sourceFl, destFl []string) ([]CopyField, gobol.Error) {

	params := url.Values{}

	if len(sourceFl) > 0 {
		params.Set("source.fl", strings.Join(sourceFl, ","))
	}

	if len(destFl) > 0 {
		params.Set("dest.fl", strings.Join(destFl, ","))
	}

	content, gerr := s.get(cFuncListCopyFields, cHandlerSchema+"/copyfields", params)
	if gerr != nil {
		return nil, gerr
	}

	wire := struct {
		CopyFields []CopyField `json:"copyFields"`
	}{}

	if err := json.Unmarshal(content, &wire); err != nil {
		return nil, errInternalServer(cFuncListCopyFields, err)
	}

	return wire.CopyFields, nil
}

// ListFieldTypes - lists the schema field types
func (s *Schema) ListFieldTypes(showDefaults bool) ([]FieldType, gobol.Error) {

	params := url.Values{}
	params.Set("showDefaults", BoolString(showDefaults))

	content, gerr := s.get(cFuncListFieldTypes, cHandlerSchema+"/fieldtypes", params)
	if gerr != nil {
		return nil, gerr
	}

	wire := struct {
		FieldTypes []FieldType `json:"fieldTypes"`
	}{}

	if err := json.Unmarshal(content, &wire); err != nil {
		return nil, errInternalServer(cFuncListFieldTypes, err)
	}

	return wire.FieldTypes, nil
}
