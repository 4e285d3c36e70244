package render

import (
	"errors"
	"testing"
)

func TestExtractTemplate(t *testing.T) {
	tests := []struct {
		name   string
		script string
		want   string
	}{
		{
			name:   "this.shadowRoot",
			script: "class A extends HTMLElement {\n  render() {\n    this.shadowRoot.innerHTML = `<p><slot></slot></p>`;\n  }\n}",
			want:   "<p><slot></slot></p>",
		},
		{
			name:   "shadow variable",
			script: "const shadow = this.attachShadow({mode: 'open'});\nshadow.innerHTML=`<b>x</b>`;",
			want:   "<b>x</b>",
		},
		{
			name:   "interpolation kept verbatim",
			script: "this.shadowRoot.innerHTML = `<p>${this.getAttribute('name')}</p>`;",
			want:   "<p>${this.getAttribute('name')}</p>",
		},
		{
			name:   "nested template literals and braces",
			script: "this.shadowRoot.innerHTML = `<ul>${items.map(i => { return `<li>${i}</li>`; }).join('')}</ul>`;",
			want:   "<ul>${items.map(i => { return `<li>${i}</li>`; }).join('')}</ul>",
		},
		{
			name:   "escaped backtick",
			script: "this.shadowRoot.innerHTML = `<code>\\`x\\`</code>`;",
			want:   "<code>\\`x\\`</code>",
		},
		{
			name:   "brace inside string in expression",
			script: "this.shadowRoot.innerHTML = `<i>${\"}\"}</i>`;",
			want:   "<i>${\"}\"}</i>",
		},
		{
			name:   "commented assignment is skipped",
			script: "// this.shadowRoot.innerHTML = `<old></old>`;\n/* shadowRoot.innerHTML = `<older>` */\nthis.shadowRoot.innerHTML = `<new></new>`;",
			want:   "<new></new>",
		},
		{
			name:   "assignment inside a string is skipped",
			script: "const doc = \"this.shadowRoot.innerHTML = `<no>`\";\nthis.shadowRoot.innerHTML = `<yes>`;",
			want:   "<yes>",
		},
		{
			name:   "comparison is not an assignment",
			script: "if (this.shadowRoot.innerHTML == `<a>`) {}\nthis.shadowRoot.innerHTML = `<b>`;",
			want:   "<b>",
		},
		{
			name:   "first occurrence wins",
			script: "this.shadowRoot.innerHTML = `<one>`;\nthis.shadowRoot.innerHTML = `<two>`;",
			want:   "<one>",
		},
		{
			name:   "multiline literal",
			script: "this.shadowRoot.innerHTML = `\n  <style>p{}</style>\n  <p></p>\n`;",
			want:   "\n  <style>p{}</style>\n  <p></p>\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractTemplate(tt.script)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ExtractTemplate() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtractTemplateFailures(t *testing.T) {
	tests := []struct {
		name   string
		script string
	}{
		{"empty", ""},
		{"no assignment", "customElements.define('a-b', class extends HTMLElement {});"},
		{"receiver is not a shadow root", "this.innerHTML = `<p></p>`;"},
		{"plain string literal", "this.shadowRoot.innerHTML = '<p></p>';"},
		{"unterminated literal", "this.shadowRoot.innerHTML = `<p>${x}</p>"},
		{"unterminated expression", "this.shadowRoot.innerHTML = `<p>${x</p>`"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ExtractTemplate(tt.script)
			if !errors.Is(err, ErrTemplateExtractionFailed) {
				t.Errorf("expected ErrTemplateExtractionFailed, got %v", err)
			}
		})
	}
}
