// Package title turns chapter files into human-readable display titles.
//
// Titles come from one of two sources. FromFilename is the default: a pure
// transformation of the file name that strips a leading numeric prefix and
// the .md extension, replaces separators with spaces, and title-cases the
// result ("03_code_smells.md" becomes "Code Smells"). FromContent inspects
// the chapter itself, preferring a YAML frontmatter title over the first
// level-1 heading, for books whose authors keep titles inside the prose.
package title

import (
	"bytes"
	"regexp"
	"strings"
	"unicode"

	"github.com/adrg/frontmatter"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// numericPrefix matches ordering prefixes such as "01-" or "3_".
var numericPrefix = regexp.MustCompile(`^\d+[-_]`)

// FromFilename derives a display title from a chapter path. It never fails;
// empty input yields an empty string.
func FromFilename(path string) string {
	if path == "" {
		return ""
	}

	// Final path segment only; paths are slash-separated relative paths
	name := path
	if idx := strings.LastIndex(name, "/"); idx >= 0 {
		name = name[idx+1:]
	}

	name = numericPrefix.ReplaceAllString(name, "")
	if strings.HasSuffix(strings.ToLower(name), ".md") {
		name = name[:len(name)-len(".md")]
	}
	name = strings.ReplaceAll(name, "-", " ")
	name = strings.ReplaceAll(name, "_", " ")

	words := strings.Fields(name)
	for i, word := range words {
		r := []rune(word)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}

// chapterMeta is the frontmatter shape we care about; other keys are ignored.
type chapterMeta struct {
	Title string `yaml:"title"`
}

// FromContent returns the title a chapter declares about itself: a YAML
// frontmatter "title" key if present, otherwise the text of the first level-1
// heading. The second return is false when the chapter declares neither,
// including when the frontmatter is malformed.
func FromContent(source []byte) (string, bool) {
	body := source

	var meta chapterMeta
	rest, err := frontmatter.Parse(bytes.NewReader(source), &meta)
	if err == nil {
		body = rest
		if title := strings.TrimSpace(meta.Title); title != "" {
			return title, true
		}
	}

	doc := goldmark.New().Parser().Parse(text.NewReader(body))
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		heading, ok := n.(*ast.Heading)
		if !ok || heading.Level != 1 {
			continue
		}
		if title := strings.TrimSpace(extractText(heading, body)); title != "" {
			return title, true
		}
		break
	}

	return "", false
}

// extractText extracts plain text from an AST node's direct children.
func extractText(n ast.Node, source []byte) string {
	var buf bytes.Buffer
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if text, ok := c.(*ast.Text); ok {
			buf.Write(text.Segment.Value(source))
		}
	}
	return buf.String()
}
