package render

import (
	"strings"

	"github.com/vango-dev/els/internal/errors"
)

// ExtractTemplate returns the body of the first template literal assigned
// to a shadow root's innerHTML in script, e.g.
//
//	this.shadowRoot.innerHTML = `<p><slot></slot></p>`;
//
// The receiver must be named like a shadow root (its last identifier
// contains "shadow", case-insensitively). Comments and string literals are
// skipped, and `${...}` expressions inside the literal may nest braces,
// strings and further template literals. The literal body is returned
// verbatim. A missing or unterminated literal yields an E002 error.
func ExtractTemplate(script string) (string, error) {
	s := jsScanner{src: script}
	for s.pos < len(s.src) {
		if s.skipTrivia() {
			continue
		}
		c := s.src[s.pos]
		switch {
		case c == '\'' || c == '"':
			s.skipString(c)
		case c == '`':
			if end := s.templateEnd(s.pos); end >= 0 {
				s.pos = end + 1
			} else {
				s.pos = len(s.src)
			}
		case isIdentStart(c):
			start := s.pos
			s.skipIdent()
			if s.src[start:s.pos] != "innerHTML" || !receiverIsShadow(s.src, start) {
				continue
			}
			body, ok, err := s.assignedLiteral()
			if err != nil {
				return "", err
			}
			if ok {
				return body, nil
			}
		default:
			s.pos++
		}
	}
	return "", errors.New("E002").
		WithSuggestion("Add a template file for the component or assign a template literal to this.shadowRoot.innerHTML")
}

// assignedLiteral checks whether the scanner sits just after "innerHTML"
// followed by "= `". On success it returns the literal body.
func (s *jsScanner) assignedLiteral() (string, bool, error) {
	i := s.skipSpaceFrom(s.pos)
	if i >= len(s.src) || s.src[i] != '=' || (i+1 < len(s.src) && s.src[i+1] == '=') {
		return "", false, nil
	}
	i = s.skipSpaceFrom(i + 1)
	if i >= len(s.src) || s.src[i] != '`' {
		return "", false, nil
	}
	end := s.templateEnd(i)
	if end < 0 {
		return "", false, errors.New("E002").
			WithDetail("The template literal assigned to innerHTML is not terminated.")
	}
	return s.src[i+1 : end], true, nil
}

// receiverIsShadow reports whether the identifier chain ending just before
// src[start] ("<recv>.innerHTML") names a shadow root.
func receiverIsShadow(src string, start int) bool {
	i := start - 1
	for i >= 0 && isSpace(src[i]) {
		i--
	}
	if i < 0 || src[i] != '.' {
		return false
	}
	i--
	for i >= 0 && isSpace(src[i]) {
		i--
	}
	end := i + 1
	for i >= 0 && isIdentPart(src[i]) {
		i--
	}
	return strings.Contains(strings.ToLower(src[i+1:end]), "shadow")
}

// jsScanner is a minimal JavaScript lexer. It knows just enough about
// comments, strings and template literals to find code positions.
type jsScanner struct {
	src string
	pos int
}

// skipTrivia skips one comment at pos. It reports whether it advanced.
func (s *jsScanner) skipTrivia() bool {
	if !strings.HasPrefix(s.src[s.pos:], "/") || s.pos+1 >= len(s.src) {
		return false
	}
	switch s.src[s.pos+1] {
	case '/':
		if nl := strings.IndexByte(s.src[s.pos:], '\n'); nl >= 0 {
			s.pos += nl + 1
		} else {
			s.pos = len(s.src)
		}
		return true
	case '*':
		if end := strings.Index(s.src[s.pos+2:], "*/"); end >= 0 {
			s.pos += end + 4
		} else {
			s.pos = len(s.src)
		}
		return true
	}
	return false
}

// skipString skips a quoted string starting at pos.
func (s *jsScanner) skipString(quote byte) {
	s.pos = stringEnd(s.src, s.pos, quote) + 1
}

func (s *jsScanner) skipIdent() {
	for s.pos < len(s.src) && isIdentPart(s.src[s.pos]) {
		s.pos++
	}
}

func (s *jsScanner) skipSpaceFrom(i int) int {
	for i < len(s.src) && isSpace(s.src[i]) {
		i++
	}
	return i
}

// templateEnd returns the index of the backtick closing the template literal
// opened at start, or -1 when it is unterminated.
func (s *jsScanner) templateEnd(start int) int {
	src := s.src
	for i := start + 1; i < len(src); i++ {
		switch src[i] {
		case '\\':
			i++
		case '`':
			return i
		case '$':
			if i+1 < len(src) && src[i+1] == '{' {
				end := s.expressionEnd(i + 2)
				if end < 0 {
					return -1
				}
				i = end
			}
		}
	}
	return -1
}

// expressionEnd returns the index of the '}' closing a ${ expression whose
// body starts at start, or -1.
func (s *jsScanner) expressionEnd(start int) int {
	src := s.src
	depth := 1
	for i := start; i < len(src); i++ {
		switch c := src[i]; c {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		case '\'', '"':
			i = stringEnd(src, i, c)
			if i >= len(src) {
				return -1
			}
		case '`':
			i = s.templateEnd(i)
			if i < 0 {
				return -1
			}
		case '/':
			if i+1 < len(src) && src[i+1] == '/' {
				nl := strings.IndexByte(src[i:], '\n')
				if nl < 0 {
					return -1
				}
				i += nl
			} else if i+1 < len(src) && src[i+1] == '*' {
				end := strings.Index(src[i+2:], "*/")
				if end < 0 {
					return -1
				}
				i += end + 3
			}
		}
	}
	return -1
}

// stringEnd returns the index of the quote closing the string opened at
// start, or len(src) when unterminated. Strings end at a raw newline.
func stringEnd(src string, start int, quote byte) int {
	for i := start + 1; i < len(src); i++ {
		switch src[i] {
		case '\\':
			i++
		case quote, '\n':
			return i
		}
	}
	return len(src)
}

func isIdentStart(c byte) bool {
	return c == '_' || c == '$' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c >= 0x80
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v'
}
