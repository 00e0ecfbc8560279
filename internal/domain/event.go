package domain

// Element names of the PURL registry export.
//
//	<purl status="1">
//	  <id>/obo/obi/branches/</id>
//	  <type>partial</type>
//	  <maintainers><uid>ALANRUTTENBERG</uid></maintainers>
//	  <target><url>http://example.org/branches/</url></target>
//	</purl>
const (
	RecordElement = "purl"
	FieldID       = "id"
	FieldType     = "type"
	FieldURL      = "url"
)

// IsTrackedField reports whether name is one of the captured record fields.
func IsTrackedField(name string) bool {
	switch name {
	case FieldID, FieldType, FieldURL:
		return true
	}
	return false
}

// EventHandler receives push events from a streaming markup parser.
// Any non-nil error returned by a callback stops the stream and is returned
// unchanged by the event source.
type EventHandler interface {
	// StartElement is called for every opening tag, by local name.
	StartElement(name string) error
	// Characters is called for each chunk of character data. A single text
	// node may be delivered in several chunks.
	Characters(text string) error
	// EndElement is called for every closing tag, by local name.
	EndElement(name string) error
}
