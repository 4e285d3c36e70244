package render

import (
	"testing"

	"golang.org/x/net/html"
)

func TestGroupSlots(t *testing.T) {
	host := parseHost(t, `<my-x>
  <h2 slot="title">T</h2>
  loose text
  <p>body</p>
  <p slot="">blank</p>
  <p slot="default">explicit</p>
  <!-- dropped -->
  <span slot="title">T2</span>
</my-x>`)

	groups := GroupSlots(host, "slot")

	if got := len(groups["title"]); got != 2 {
		t.Errorf("title group has %d nodes, want 2", got)
	}
	def := groups[DefaultSlot]
	if len(def) != 4 {
		t.Fatalf("default group has %d nodes, want 4", len(def))
	}
	if def[0].Type != html.TextNode {
		t.Errorf("first default node should be the loose text, got %v", def[0].Data)
	}
	if _, ok := groups["default"]; ok {
		t.Error(`slot="default" should normalize to the default slot`)
	}
}

func TestDistributeSlots(t *testing.T) {
	tests := []struct {
		name     string
		host     string
		template string
		want     string
	}{
		{
			name:     "default slot",
			host:     `<my-x><p>a</p>text<p>b</p></my-x>`,
			template: `<div><slot></slot></div>`,
			want:     `<div><p>a</p>text<p>b</p></div>`,
		},
		{
			name:     "named slots",
			host:     `<my-x><span slot="b">B</span><span slot="a">A</span></my-x>`,
			template: `<slot name="a"></slot>|<slot name="b"></slot>`,
			want:     `<span slot="a">A</span>|<span slot="b">B</span>`,
		},
		{
			name:     "fallback content",
			host:     `<my-x></my-x>`,
			template: `<section><slot name="body">Default</slot></section>`,
			want:     `<section>Default</section>`,
		},
		{
			name:     "fallback with nested slot",
			host:     `<my-x><b slot="inner">I</b></my-x>`,
			template: `<slot name="outer"><em><slot name="inner">none</slot></em></slot>`,
			want:     `<em><b slot="inner">I</b></em>`,
		},
		{
			name:     "empty slot without fallback disappears",
			host:     `<my-x></my-x>`,
			template: `<p>a<slot></slot>b</p>`,
			want:     `<p>ab</p>`,
		},
		{
			name:     "identically serialized slots are filled independently",
			host:     `<my-x>x</my-x>`,
			template: `<div><slot></slot></div><div><slot></slot></div>`,
			want:     `<div>x</div><div>x</div>`,
		},
		{
			name:     "slots inside assigned content are kept",
			host:     `<my-x><div><slot name="keep"></slot></div></my-x>`,
			template: `<slot></slot>`,
			want:     `<div><slot name="keep"></slot></div>`,
		},
		{
			name:     "no slots is a no-op",
			host:     `<my-x><p>ignored</p></my-x>`,
			template: `<p class="a">plain</p>`,
			want:     `<p class="a">plain</p>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			host := parseHost(t, tt.host)
			root := parseTemplate(t, tt.template)
			DistributeSlots(root, GroupSlots(host, "slot"))
			if got := innerHTML(t, root); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDistributeSlotsIdempotent(t *testing.T) {
	host := parseHost(t, `<my-x><i slot="a">A</i>text</my-x>`)
	root := parseTemplate(t, `<slot name="a">fa</slot><p><slot>fd</slot></p>`)
	groups := GroupSlots(host, "slot")

	DistributeSlots(root, groups)
	first := innerHTML(t, root)
	consumed := DistributeSlots(root, groups)
	if second := innerHTML(t, root); second != first {
		t.Errorf("second distribution changed output:\n%q\n%q", first, second)
	}
	if len(consumed) != 0 {
		t.Errorf("second distribution consumed %d nodes", len(consumed))
	}
}

func TestDistributeSlotsReportsNamedConsumption(t *testing.T) {
	host := parseHost(t, `<my-x><i slot="a">A</i><b>B</b><u slot="missing">U</u></my-x>`)
	root := parseTemplate(t, `<slot name="a"></slot><slot></slot>`)

	consumed := DistributeSlots(root, GroupSlots(host, "slot"))

	var names []string
	for c := host.FirstChild; c != nil; c = c.NextSibling {
		if consumed[c] {
			names = append(names, c.Data)
		}
	}
	if len(names) != 1 || names[0] != "i" {
		t.Errorf("consumed = %v, want [i]", names)
	}
}
