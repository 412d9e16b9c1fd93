package presstran

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms HTML content into Markdown.
	// The input should be clean HTML, such as the container markup a
	// content rule selected. Returns the Markdown representation.
	Convert(html string) (string, error)
}
