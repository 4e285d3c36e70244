package render

import "strings"

// escapeJSString escapes s for inclusion in a single-quoted JavaScript string.
func escapeJSString(s string) string {
	var buf strings.Builder
	buf.Grow(len(s))

	for _, r := range s {
		switch r {
		case '\\':
			buf.WriteString(`\\`)
		case '\'':
			buf.WriteString(`\'`)
		case '\n':
			buf.WriteString(`\n`)
		case '\r':
			buf.WriteString(`\r`)
		case '<':
			buf.WriteString(`\x3c`)
		default:
			buf.WriteRune(r)
		}
	}

	return buf.String()
}

// escapeScriptText keeps inline script content from closing its element
// early. "</script" in any letter case becomes "<\/script".
func escapeScriptText(s string) string {
	var buf strings.Builder
	buf.Grow(len(s))

	for i := 0; i < len(s); i++ {
		if s[i] == '<' && i+8 <= len(s) && s[i+1] == '/' && strings.EqualFold(s[i+2:i+8], "script") {
			buf.WriteString(`<\/`)
			i++
			continue
		}
		buf.WriteByte(s[i])
	}

	return buf.String()
}
