package svgrender

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// element renders a self-closing tag with its attributes in sorted order
// (for deterministic output) and optional inner content.
func element(tag string, attrs map[string]string, body string) string {
	names := make([]string, 0, len(attrs))
	for k := range attrs {
		names = append(names, k)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString("<")
	b.WriteString(tag)
	for _, name := range names {
		v := attrs[name]
		if v == "" {
			continue
		}
		b.WriteString(" ")
		b.WriteString(name)
		b.WriteString(`="`)
		b.WriteString(escapeAttr(v))
		b.WriteString(`"`)
	}
	if body == "" {
		b.WriteString("/>")
		return b.String()
	}
	b.WriteString(">")
	b.WriteString(body)
	b.WriteString("</")
	b.WriteString(tag)
	b.WriteString(">")
	return b.String()
}

func escapeAttr(s string) string {
	r := strings.NewReplacer(
		"&", "&amp;",
		`"`, "&quot;",
		"<", "&lt;",
		">", "&gt;",
	)
	return r.Replace(s)
}

// SetAttr sets (or replaces, if already present) a single attribute on the
// first opening tag found in markup. The matching regex is compiled
// locally rather than cached at package scope: callers of this package
// call it rarely enough (once per finished document, not per coordinate)
// that a per-call compile is simpler than managing a shared cache.
func SetAttr(markup, name, value string) string {
	pattern := regexp.MustCompile(`(?s)(<[a-zA-Z][\w:-]*)((?:\s+[\w:-]+="[^"]*")*)(\s*/?>)`)
	attrPattern := regexp.MustCompile(fmt.Sprintf(`\s+%s="[^"]*"`, regexp.QuoteMeta(name)))

	loc := pattern.FindStringSubmatchIndex(markup)
	if loc == nil {
		return markup
	}
	tagOpen := markup[loc[2]:loc[3]]
	existingAttrs := markup[loc[4]:loc[5]]
	tagClose := markup[loc[6]:loc[7]]

	existingAttrs = attrPattern.ReplaceAllString(existingAttrs, "")
	newAttr := fmt.Sprintf(` %s="%s"`, name, escapeAttr(value))

	rebuilt := tagOpen + existingAttrs + newAttr + tagClose
	return markup[:loc[0]] + rebuilt + markup[loc[1]:]
}
