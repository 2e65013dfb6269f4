package schema

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/uol/gobol"

	"github.com/solrkit/solrkit/lib/solr"
)

// fakeAPI - records every schema mutation for inspection
type fakeAPI struct {
	currentFields     []solr.Field
	currentCopyFields []solr.CopyField
	currentFieldTypes []solr.FieldType

	addedFields        []string
	replacedFields     []string
	deletedFields      []string
	addedCopyFields    []solr.CopyField
	deletedCopyFields  []solr.CopyField
	addedFieldTypes    []string
	replacedFieldTypes []string

	// records the mutation order across operations
	operations []string
}

func (f *fakeAPI) AddField(field solr.Field) gobol.Error {
	f.addedFields = append(f.addedFields, field.Name)
	f.operations = append(f.operations, "add-field:"+field.Name)
	return nil
}

func (f *fakeAPI) ReplaceField(field solr.Field) gobol.Error {
	f.replacedFields = append(f.replacedFields, field.Name)
	f.operations = append(f.operations, "replace-field:"+field.Name)
	return nil
}

func (f *fakeAPI) DeleteField(name string) gobol.Error {
	f.deletedFields = append(f.deletedFields, name)
	f.operations = append(f.operations, "delete-field:"+name)
	return nil
}

func (f *fakeAPI) AddCopyField(copyField solr.CopyField) gobol.Error {
	f.addedCopyFields = append(f.addedCopyFields, copyField)
	f.operations = append(f.operations, "add-copy-field:"+copyField.Source)
	return nil
}

func (f *fakeAPI) DeleteCopyField(source, dest string) gobol.Error {
	f.deletedCopyFields = append(f.deletedCopyFields, solr.CopyField{Source: source, Dest: dest})
	f.operations = append(f.operations, "delete-copy-field:"+source)
	return nil
}

func (f *fakeAPI) AddFieldType(fieldType solr.FieldType) gobol.Error {
	f.addedFieldTypes = append(f.addedFieldTypes, fieldType.Name)
	return nil
}

func (f *fakeAPI) ReplaceFieldType(fieldType solr.FieldType) gobol.Error {
	f.replacedFieldTypes = append(f.replacedFieldTypes, fieldType.Name)
	return nil
}

func (f *fakeAPI) ListFields(fields []string, includeDynamic, showDefaults bool) ([]solr.Field, gobol.Error) {
	return f.currentFields, nil
}

func (f *fakeAPI) ListCopyFields(sourceFl, destFl []string) ([]solr.CopyField, gobol.Error) {
	return f.currentCopyFields, nil
}

func (f *fakeAPI) ListFieldTypes(showDefaults bool) ([]solr.FieldType, gobol.Error) {
	return f.currentFieldTypes, nil
}

func TestConfigureFieldsAddReplaceDelete(t *testing.T) {

	api := &fakeAPI{
		currentFields: []solr.Field{
			{Name: "id"},
			{Name: "_version_"},
			{Name: "title_t"},
			{Name: "stale_s"},
		},
	}

	config := &Config{
		Fields: []solr.Field{
			{Name: "title_t", Type: "text_general"},
			{Name: "author_s", Type: "string"},
		},
	}

	counts, gerr := NewUpdater(api).ConfigureFields(config)

	assert.Nil(t, gerr, "expects no configure error")
	assert.Equal(t, Counts{Added: 1, Replaced: 1, Deleted: 1}, counts, "expects the change counts")

	assert.Equal(t, []string{"author_s"}, api.addedFields, "expects the missing field added")
	assert.Equal(t, []string{"title_t"}, api.replacedFields, "expects the existing field replaced")
	assert.Equal(t, []string{"stale_s"}, api.deletedFields, "expects only the stale field deleted")
}

func TestConfigureFieldsProtectsSpecialFields(t *testing.T) {

	api := &fakeAPI{
		currentFields: []solr.Field{
			{Name: "id"},
			{Name: "_root_"},
			{Name: "_text_"},
		},
	}

	counts, gerr := NewUpdater(api).ConfigureFields(&Config{})

	assert.Nil(t, gerr, "expects no configure error")
	assert.Zero(t, counts.Deleted, "expects no deletions")
	assert.Empty(t, api.deletedFields, "expects id and underscore fields untouched")
}

func TestConfigureFieldsCopyFieldsBeforeDeletes(t *testing.T) {

	api := &fakeAPI{
		currentFields: []solr.Field{
			{Name: "stale_s"},
		},
		currentCopyFields: []solr.CopyField{
			{Source: "stale_s", Dest: "text"},
		},
	}

	_, gerr := NewUpdater(api).ConfigureFields(&Config{
		Fields: []solr.Field{
			{Name: "title_t", Type: "text_general"},
		},
	})

	assert.Nil(t, gerr, "expects no configure error")

	assert.Equal(t,
		[]string{"add-field:title_t", "delete-copy-field:stale_s", "delete-field:stale_s"},
		api.operations,
		"expects the stale copy field removed before the field itself")
}

func TestConfigureCopyFields(t *testing.T) {

	api := &fakeAPI{
		currentCopyFields: []solr.CopyField{
			{Source: "title_t", Dest: "text"},
			{Source: "title_t", Dest: "title_old_s"},
			{Source: "gone_t", Dest: "text"},
		},
	}

	config := &Config{
		CopyFields: map[string][]string{
			"title_t":  {"text", "title_s"},
			"author_s": {"text"},
		},
	}

	counts, gerr := NewUpdater(api).ConfigureCopyFields(config)

	assert.Nil(t, gerr, "expects no configure error")
	assert.Equal(t, Counts{Added: 2, Deleted: 2}, counts, "expects the change counts")

	assert.ElementsMatch(t, []solr.CopyField{
		{Source: "title_t", Dest: "title_s"},
		{Source: "author_s", Dest: "text"},
	}, api.addedCopyFields, "expects only the missing pairs added")

	assert.ElementsMatch(t, []solr.CopyField{
		{Source: "title_t", Dest: "title_old_s"},
		{Source: "gone_t", Dest: "text"},
	}, api.deletedCopyFields, "expects the undeclared pairs deleted")
}

func TestConfigureFieldTypes(t *testing.T) {

	api := &fakeAPI{
		currentFieldTypes: []solr.FieldType{
			{Name: "text_en"},
		},
	}

	config := &Config{
		FieldTypes: []solr.FieldType{
			{Name: "text_en", Class: "solr.TextField"},
			{Name: "string_folded", Class: "solr.TextField"},
		},
	}

	counts, gerr := NewUpdater(api).ConfigureFieldTypes(config)

	assert.Nil(t, gerr, "expects no configure error")
	assert.Equal(t, Counts{Added: 1, Replaced: 1}, counts, "expects the change counts")
	assert.Equal(t, []string{"string_folded"}, api.addedFieldTypes, "expects the new type added")
	assert.Equal(t, []string{"text_en"}, api.replacedFieldTypes, "expects the existing type replaced")
}

func TestConfigureFieldTypesEmptyConfigSkipsListing(t *testing.T) {

	api := &fakeAPI{}

	counts, gerr := NewUpdater(api).ConfigureFieldTypes(&Config{})

	assert.Nil(t, gerr, "expects no configure error")
	assert.Zero(t, counts, "expects nothing touched")
}

func TestConfigureRejectsUnnamedEntries(t *testing.T) {

	api := &fakeAPI{}

	_, gerr := NewUpdater(api).ConfigureFields(&Config{
		Fields: []solr.Field{{Type: "string"}},
	})

	assert.NotNil(t, gerr, "expects an error for the unnamed field")
	assert.Equal(t, http.StatusBadRequest, gerr.StatusCode(), "expects a bad request error")
	assert.Empty(t, api.operations, "expects no schema mutation")

	_, gerr = NewUpdater(api).ConfigureFieldTypes(&Config{
		FieldTypes: []solr.FieldType{{Class: "solr.TextField"}},
	})

	assert.NotNil(t, gerr, "expects an error for the unnamed field type")
	assert.Equal(t, http.StatusBadRequest, gerr.StatusCode(), "expects a bad request error")
	assert.Empty(t, api.addedFieldTypes, "expects no field type added")
}
