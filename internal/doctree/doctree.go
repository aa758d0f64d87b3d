package doctree

// Document is a parsed input file reduced to line-oriented text. Heading
// structure the source format carried is rendered as markdown '#' lines.
type Document struct {
	Title string // Document title (from metadata or filename)
	Text  string // Full text, '\n' line endings
}

// Section is one emitted section of a document.
type Section struct {
	Index  int                `json:"index"`  // Position within the document, 0-based
	Text   string             `json:"text"`   // Section text including the trailing separator block
	Titles map[string]*string `json:"titles"` // Heading titles by level, "level1".."level6"
}
