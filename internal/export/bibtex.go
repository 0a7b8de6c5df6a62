// Package export renders fetched Scopus document summaries to BibTeX.
package export

import (
	"fmt"
	"strings"
)

// ToBibTeX converts one document summary, as returned in a profile's
// documents view, to a BibTeX entry. Absent fields are omitted.
func ToBibTeX(doc map[string]any) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("@article{%s,\n", citationKey(doc)))

	if v := str(doc, "dc:creator"); v != "" {
		b.WriteString(fmt.Sprintf("  author = {%s},\n", escapeLatex(v)))
	}
	if v := str(doc, "dc:title"); v != "" {
		b.WriteString(fmt.Sprintf("  title = {%s},\n", escapeLatex(v)))
	}
	if v := str(doc, "prism:publicationName"); v != "" {
		b.WriteString(fmt.Sprintf("  journal = {%s},\n", escapeLatex(v)))
	}
	if y := year(doc); y != "" {
		b.WriteString(fmt.Sprintf("  year = {%s},\n", y))
	}
	if v := str(doc, "prism:doi"); v != "" {
		b.WriteString(fmt.Sprintf("  doi = {%s},\n", v))
	}

	b.WriteString("}\n")

	return b.String()
}

// ToBibTeXList converts multiple document summaries to BibTeX format.
func ToBibTeXList(docs []map[string]any) string {
	var entries []string
	for _, doc := range docs {
		entries = append(entries, ToBibTeX(doc))
	}
	return strings.Join(entries, "\n")
}

// citationKey derives a citation key from the document identifier:
// "SCOPUS_ID:85123" becomes "scopus85123". Documents without an
// identifier get a key from the first title words as a fallback.
func citationKey(doc map[string]any) string {
	id := str(doc, "dc:identifier")
	if i := strings.LastIndex(id, ":"); i >= 0 {
		id = id[i+1:]
	}
	if id != "" {
		return "scopus" + id
	}

	title := strings.Fields(str(doc, "dc:title"))
	if len(title) > 3 {
		title = title[:3]
	}
	if len(title) == 0 {
		return "scopusunknown"
	}
	key := strings.ToLower(strings.Join(title, ""))
	return strings.Map(func(r rune) rune {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, key)
}

// year extracts the year from the prism:coverDate field (YYYY-MM-DD).
func year(doc map[string]any) string {
	date := str(doc, "prism:coverDate")
	if len(date) < 4 {
		return ""
	}
	return date[:4]
}

// str returns a string field of the summary, or "" when absent or not
// a string.
func str(doc map[string]any, key string) string {
	s, _ := doc[key].(string)
	return s
}

// escapeLatex escapes special LaTeX characters.
func escapeLatex(s string) string {
	// Order matters: & must be first (before other escapes that might produce &)
	replacer := strings.NewReplacer(
		"&", `\&`,
		"%", `\%`,
		"$", `\$`,
		"#", `\#`,
		"_", `\_`,
		"{", `\{`,
		"}", `\}`,
		"~", `\textasciitilde{}`,
		"^", `\textasciicircum{}`,
	)
	return replacer.Replace(s)
}
