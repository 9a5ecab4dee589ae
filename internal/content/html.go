package content

import "github.com/microcosm-cc/bluemonday"

// SanitizeHTML applies sanitization rules to HTML input, stripping unsupported
// tags and attributes.
func SanitizeHTML() TransformerFunc {
	htmlSanitizer := sanitizer()
	return func(input []byte) ([]byte, error) {
		return htmlSanitizer.SanitizeBytes(input), nil
	}
}

// sanitizer is a modification of [bluemonday.UGCPolicy].
// Differences:
//
//   - Target _blank and noreferrer for links
//   - No figure/image elements (to avoid hot-linking)
//   - Task list checkboxes are kept, disabled
func sanitizer() *bluemonday.Policy {
	policy := bluemonday.NewPolicy()

	policy.AllowStandardAttributes()

	policy.AllowStandardURLs()
	policy.RequireNoReferrerOnLinks(true)
	policy.AddTargetBlankToFullyQualifiedLinks(true)

	policy.AllowElements(
		"b",
		"blockquote",
		"br",
		"code",
		"del",
		"em",
		"h1", "h2", "h3", "h4", "h5", "h6",
		"hr",
		"i",
		"p",
		"pre",
		"s",
		"strong",
		"sub",
		"sup",
	)

	policy.AllowAttrs("href").
		OnElements("a")

	policy.AllowAttrs("type").
		Matching(bluemonday.Paragraph).
		OnElements("input")
	policy.AllowAttrs("checked", "disabled").
		OnElements("input")

	policy.AllowLists()
	policy.AllowTables()

	return policy
}
