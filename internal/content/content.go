// Package content renders the Markdown text users write for courses.
package content

var renderPipeline = Chain(MarkdownToHTML(), SanitizeHTML())

// RenderMarkdown converts Markdown input into sanitized HTML that is safe to
// embed in a page.
func RenderMarkdown(input string) (string, error) {
	if input == "" {
		return "", nil
	}
	output, err := renderPipeline(normalizeNewlines([]byte(input)))
	if err != nil {
		return "", err
	}
	return string(output), nil
}
