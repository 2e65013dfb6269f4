package constants

const (
	// StringsEmpty - a empty space
	StringsEmpty = ""

	// StringsWhitespace - a white space
	StringsWhitespace = " "

	// StringsPKG - the package abbreviation
	StringsPKG = "pkg"

	// StringsFunc - the function abbreviation
	StringsFunc = "func"

	// StringsCollection - the collection log field
	StringsCollection = "collection"

	// StringsAction - the action log field
	StringsAction = "action"

	// StringsItemTypeField - the solr field storing the indexable item type
	StringsItemTypeField = "item_type_s"

	// StringsTrue - boolean true in solr's query string format
	StringsTrue = "true"

	// StringsFalse - boolean false in solr's query string format
	StringsFalse = "false"

	// StringsWTJSON - the response writer type always sent to solr
	StringsWTJSON = "json"
)
