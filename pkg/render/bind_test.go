package render

import "testing"

func TestBindData(t *testing.T) {
	tests := []struct {
		name     string
		host     string
		template string
		want     string
	}{
		{
			name:     "binds attribute value",
			host:     `<my-x message="Hi"></my-x>`,
			template: `<p data-bind="message"></p>`,
			want:     `<p>Hi</p>`,
		},
		{
			name:     "missing attribute binds empty text",
			host:     `<my-x></my-x>`,
			template: `<p data-bind="message">placeholder</p>`,
			want:     `<p></p>`,
		},
		{
			name:     "value is escaped",
			host:     `<my-x message="&lt;b&gt;&quot;x&quot; &amp; y"></my-x>`,
			template: `<span data-bind="message"></span>`,
			want:     `<span>&lt;b&gt;&#34;x&#34; &amp; y</span>`,
		},
		{
			name:     "nested and repeated bindings",
			host:     `<my-x first="A" last="B"></my-x>`,
			template: `<div><h1 data-bind="first"><i>old</i></h1><ul><li data-bind="last"></li><li data-bind="first"></li></ul></div>`,
			want:     `<div><h1>A</h1><ul><li>B</li><li>A</li></ul></div>`,
		},
		{
			name:     "unmarked nodes are untouched",
			host:     `<my-x message="Hi"></my-x>`,
			template: `<p class="a">static <b>text</b></p>`,
			want:     `<p class="a">static <b>text</b></p>`,
		},
		{
			name:     "other attributes survive",
			host:     `<my-x n="3"></my-x>`,
			template: `<output class="count" data-bind="n" for="x"></output>`,
			want:     `<output class="count" for="x">3</output>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := parseTemplate(t, tt.template)
			BindData(root, parseHost(t, tt.host), "data-bind")
			if got := innerHTML(t, root); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
