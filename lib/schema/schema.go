package schema

import (
	"fmt"
	"strings"

	"github.com/uol/gobol"
	"github.com/uol/logh"

	"github.com/solrkit/solrkit/lib/constants"
	"github.com/solrkit/solrkit/lib/solr"
)

//
// Declarative schema management. A Config lists the field types, fields
// and copy fields a core must have, the updater diffs it against the
// live schema and applies the changes.
//

const (
	cFuncConfigureFieldTypes string = "ConfigureFieldTypes"
	cFuncConfigureFields     string = "ConfigureFields"
	cFuncConfigureCopyFields string = "ConfigureCopyFields"

	// the unique key field is never deleted
	cProtectedIDField string = "id"

	// solr internal fields are prefixed with an underscore
	cProtectedPrefix string = "_"
)

// Config - the declared schema for a core
type Config struct {

	// FieldTypes - custom field types, added or replaced but never deleted
	FieldTypes []solr.FieldType

	// Fields - the fields the schema must contain
	Fields []solr.Field

	// CopyFields - source field to destination field list
	CopyFields map[string][]string
}

// API - the schema operations needed by the updater
type API interface {
	AddField(field solr.Field) gobol.Error
	ReplaceField(field solr.Field) gobol.Error
	DeleteField(name string) gobol.Error
	AddCopyField(copyField solr.CopyField) gobol.Error
	DeleteCopyField(source, dest string) gobol.Error
	AddFieldType(fieldType solr.FieldType) gobol.Error
	ReplaceFieldType(fieldType solr.FieldType) gobol.Error
	ListFields(fields []string, includeDynamic, showDefaults bool) ([]solr.Field, gobol.Error)
	ListCopyFields(sourceFl, destFl []string) ([]solr.CopyField, gobol.Error)
	ListFieldTypes(showDefaults bool) ([]solr.FieldType, gobol.Error)
}

// Counts - how many schema entries each configure pass touched
type Counts struct {
	Added    int
	Replaced int
	Deleted  int
}

// Updater - applies a declared schema to a live core
type Updater struct {
	api    API
	logger *logh.ContextualLogger
}

// NewUpdater - creates a schema updater over a schema api
func NewUpdater(api API) *Updater {

	return &Updater{
		api:    api,
		logger: logh.CreateContextualLogger(constants.StringsPKG, cPackage),
	}
}

// ConfigureFieldTypes - adds missing field types and replaces existing
// ones. Field types are never deleted, the builtin solr types cannot be
// told apart from stale custom ones reliably.
func (u *Updater) ConfigureFieldTypes(config *Config) (Counts, gobol.Error) {

	counts := Counts{}

	if len(config.FieldTypes) == 0 {
		return counts, nil
	}

	for _, fieldType := range config.FieldTypes {
		if fieldType.Name == constants.StringsEmpty {
			return counts, errBadRequest(cFuncConfigureFieldTypes, fmt.Errorf("field type with no name configured"))
		}
	}

	currentTypes, gerr := u.api.ListFieldTypes(false)
	if gerr != nil {
		return counts, gerr
	}

	currentNames := make(map[string]struct{}, len(currentTypes))
	for _, fieldType := range currentTypes {
		currentNames[fieldType.Name] = struct{}{}
	}

	for _, fieldType := range config.FieldTypes {

		if _, exists := currentNames[fieldType.Name]; exists {

			if logh.DebugEnabled {
				u.logger.Debug().Str(constants.StringsFunc, cFuncConfigureFieldTypes).
					Msgf("replacing field type: %s", fieldType.Name)
			}

			if gerr := u.api.ReplaceFieldType(fieldType); gerr != nil {
				return counts, gerr
			}

			counts.Replaced++

		} else {

			if logh.DebugEnabled {
				u.logger.Debug().Str(constants.StringsFunc, cFuncConfigureFieldTypes).
					Msgf("adding field type: %s", fieldType.Name)
			}

			if gerr := u.api.AddFieldType(fieldType); gerr != nil {
				return counts, gerr
			}

			counts.Added++
		}
	}

	return counts, nil
}

// ConfigureFields - adds missing fields and replaces existing ones, then
// reconciles copy fields, then deletes stale fields. Copy fields must be
// settled first since a stale copy field blocks field removal. The id
// field and underscore prefixed fields are never deleted.
func (u *Updater) ConfigureFields(config *Config) (Counts, gobol.Error) {

	counts := Counts{}

	for _, field := range config.Fields {
		if field.Name == constants.StringsEmpty {
			return counts, errBadRequest(cFuncConfigureFields, fmt.Errorf("field with no name configured"))
		}
	}

	currentFields, gerr := u.api.ListFields(nil, false, false)
	if gerr != nil {
		return counts, gerr
	}

	currentNames := make(map[string]struct{}, len(currentFields))
	for _, field := range currentFields {
		currentNames[field.Name] = struct{}{}
	}

	configuredNames := make(map[string]struct{}, len(config.Fields))

	for _, field := range config.Fields {

		configuredNames[field.Name] = struct{}{}

		if _, exists := currentNames[field.Name]; exists {

			if logh.DebugEnabled {
				u.logger.Debug().Str(constants.StringsFunc, cFuncConfigureFields).
					Msgf("replacing field: %s", field.Name)
			}

			if gerr := u.api.ReplaceField(field); gerr != nil {
				return counts, gerr
			}

			counts.Replaced++

		} else {

			if logh.DebugEnabled {
				u.logger.Debug().Str(constants.StringsFunc, cFuncConfigureFields).
					Msgf("adding field: %s", field.Name)
			}

			if gerr := u.api.AddField(field); gerr != nil {
				return counts, gerr
			}

			counts.Added++
		}
	}

	if _, gerr := u.ConfigureCopyFields(config); gerr != nil {
		return counts, gerr
	}

	for _, field := range currentFields {

		if field.Name == cProtectedIDField || strings.HasPrefix(field.Name, cProtectedPrefix) {
			continue
		}

		if _, configured := configuredNames[field.Name]; configured {
			continue
		}

		if logh.DebugEnabled {
			u.logger.Debug().Str(constants.StringsFunc, cFuncConfigureFields).
				Msgf("deleting stale field: %s", field.Name)
		}

		if gerr := u.api.DeleteField(field.Name); gerr != nil {
			return counts, gerr
		}

		counts.Deleted++
	}

	return counts, nil
}

// ConfigureCopyFields - adds missing copy field pairs and deletes pairs
// that are no longer declared
func (u *Updater) ConfigureCopyFields(config *Config) (Counts, gobol.Error) {

	counts := Counts{}

	currentCopyFields, gerr := u.api.ListCopyFields(nil, nil)
	if gerr != nil {
		return counts, gerr
	}

	currentPairs := make(map[string]map[string]struct{}, len(currentCopyFields))
	for _, copyField := range currentCopyFields {
		if currentPairs[copyField.Source] == nil {
			currentPairs[copyField.Source] = map[string]struct{}{}
		}
		currentPairs[copyField.Source][copyField.Dest] = struct{}{}
	}

	declaredPairs := make(map[string]map[string]struct{}, len(config.CopyFields))

	for source, dests := range config.CopyFields {

		declaredPairs[source] = map[string]struct{}{}

		for _, dest := range dests {

			declaredPairs[source][dest] = struct{}{}

			if _, exists := currentPairs[source][dest]; exists {
				continue
			}

			if logh.DebugEnabled {
				u.logger.Debug().Str(constants.StringsFunc, cFuncConfigureCopyFields).
					Msgf("adding copy field: %s => %s", source, dest)
			}

			if gerr := u.api.AddCopyField(solr.CopyField{Source: source, Dest: dest}); gerr != nil {
				return counts, gerr
			}

			counts.Added++
		}
	}

	for _, copyField := range currentCopyFields {

		if _, declared := declaredPairs[copyField.Source][copyField.Dest]; declared {
			continue
		}

		if logh.DebugEnabled {
			u.logger.Debug().Str(constants.StringsFunc, cFuncConfigureCopyFields).
				Msgf("deleting copy field: %s => %s", copyField.Source, copyField.Dest)
		}

		if gerr := u.api.DeleteCopyField(copyField.Source, copyField.Dest); gerr != nil {
			return counts, gerr
		}

		counts.Deleted++
	}

	return counts, nil
}
