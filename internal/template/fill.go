// Package template fills LaTeX resume templates by substituting named
// placeholders with generated section content and user identity fields. The
// template structure itself is never regenerated, only the placeholders.
package template

import (
	"fmt"
	"regexp"
	"strings"
)

// endDocument is the structural boundary of a LaTeX template. Nothing may
// appear after it in a filled document.
const endDocument = `\end{document}`

// Reserved placeholder keys for identity fields injected alongside generated
// content.
const (
	KeyFullName = "full_name"
	KeyEmail    = "email"
)

// Identity carries the user fields injected under the reserved keys.
type Identity struct {
	FullName string
	Email    string
}

// Fill replaces placeholders in the template with the given content. Three
// interchangeable placeholder styles are recognized, matched case-insensitively
// on the key name:
//
//	%%KEY%%   {{key}}   [[key]]
//
// This trio is a public contract template authors rely on. Placeholders with
// no matching key are left verbatim so callers can detect incomplete fills
// downstream. Content is truncated at the first \end{document} so injected
// text cannot escape the document boundary.
func Fill(templateLatex string, content map[string]string, identity *Identity) string {
	result := templateLatex

	full := make(map[string]string, len(content)+2)
	for key, value := range content {
		full[strings.ToLower(key)] = value
	}
	// Identity fields come straight from user records, so they are escaped
	// before injection. Generated section content is already LaTeX.
	if identity != nil {
		full[KeyFullName] = EscapeLaTeX(identity.FullName)
		full[KeyEmail] = EscapeLaTeX(identity.Email)
	}

	for key, value := range full {
		for _, re := range placeholderPatterns(key) {
			result = re.ReplaceAllLiteralString(result, value)
		}
	}

	if idx := strings.Index(result, endDocument); idx >= 0 {
		result = result[:idx+len(endDocument)]
	}

	return result
}

// placeholderPatterns builds the three placeholder regexes for a key.
func placeholderPatterns(key string) []*regexp.Regexp {
	quoted := regexp.QuoteMeta(key)
	return []*regexp.Regexp{
		regexp.MustCompile(fmt.Sprintf(`(?i)\{\{\s*%s\s*\}\}`, quoted)),
		regexp.MustCompile(fmt.Sprintf(`(?i)\[\[\s*%s\s*\]\]`, quoted)),
		regexp.MustCompile(fmt.Sprintf(`(?i)%%%%\s*%s\s*%%%%`, quoted)),
	}
}

var residualPattern = regexp.MustCompile(`\{\{\s*\w+\s*\}\}|\[\[\s*\w+\s*\]\]|%%\s*\w+\s*%%`)

// ResidualPlaceholders returns the placeholder markers still present in a
// filled document, in document order. Useful for detecting incomplete fills.
func ResidualPlaceholders(doc string) []string {
	return residualPattern.FindAllString(doc, -1)
}
