package htmlnode

import (
	"errors"
	"testing"
)

func TestLeafRender(t *testing.T) {
	tests := []struct {
		name     string
		node     *Leaf
		expected string
	}{
		{
			name:     "raw text",
			node:     NewText("Hello, world!"),
			expected: "Hello, world!",
		},
		{
			name:     "paragraph",
			node:     NewLeaf("p", "This is a paragraph of text."),
			expected: "<p>This is a paragraph of text.</p>",
		},
		{
			name:     "bold",
			node:     NewLeaf("b", "bold"),
			expected: "<b>bold</b>",
		},
		{
			name:     "attributes in insertion order",
			node:     NewLeaf("a", "Click me!", Attr{"href", "https://www.google.com"}, Attr{"class", "x"}),
			expected: `<a href="https://www.google.com" class="x">Click me!</a>`,
		},
		{
			name:     "empty value",
			node:     NewLeaf("code", ""),
			expected: "<code></code>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.node.Render(); got != tt.expected {
				t.Errorf("Render() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestAttrLeaf(t *testing.T) {
	link, err := NewAttrLeaf("a", Attr{"href", "https://boot.dev"}, Attr{"alt", "boot"})
	if err != nil {
		t.Fatalf("NewAttrLeaf(a) failed: %v", err)
	}
	if got, want := link.Render(), `<a href="https://boot.dev" alt="boot"></a>`; got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
	if _, ok := link.Value(); ok {
		t.Error("anchor leaf should have no value")
	}

	img, err := NewAttrLeaf("img", Attr{"src", "x.png"}, Attr{"alt", "alt"})
	if err != nil {
		t.Fatalf("NewAttrLeaf(img) failed: %v", err)
	}
	if got, want := img.Render(), `<img src="x.png" alt="alt"></img>`; got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}

	for _, tag := range []string{"", "b", "p"} {
		if _, err := NewAttrLeaf(tag); !errors.Is(err, ErrMissingValue) {
			t.Errorf("NewAttrLeaf(%q) error = %v, want ErrMissingValue", tag, err)
		}
	}
}

func TestParentRender(t *testing.T) {
	p, err := NewParent("p", []Node{
		NewLeaf("b", "Bold text"),
		NewText("Normal text"),
		NewLeaf("i", "italic text"),
		NewText("Normal text"),
	})
	if err != nil {
		t.Fatalf("NewParent failed: %v", err)
	}

	expected := "<p><b>Bold text</b>Normal text<i>italic text</i>Normal text</p>"
	if got := p.Render(); got != expected {
		t.Errorf("Render() = %q, want %q", got, expected)
	}
}

func TestParentNested(t *testing.T) {
	grandchild := NewLeaf("b", "grandchild")
	child, err := NewParent("span", []Node{grandchild})
	if err != nil {
		t.Fatalf("NewParent(span) failed: %v", err)
	}
	parent, err := NewParent("div", []Node{child}, Attr{"class", "wrapper"})
	if err != nil {
		t.Fatalf("NewParent(div) failed: %v", err)
	}

	expected := `<div class="wrapper"><span><b>grandchild</b></span></div>`
	if got := parent.Render(); got != expected {
		t.Errorf("Render() = %q, want %q", got, expected)
	}
}

func TestParentEmptyChildren(t *testing.T) {
	p, err := NewParent("div", nil)
	if err != nil {
		t.Fatalf("NewParent failed: %v", err)
	}
	if got := p.Render(); got != "<div></div>" {
		t.Errorf("Render() = %q, want <div></div>", got)
	}
	if len(p.Children()) != 0 {
		t.Errorf("expected no children, got %d", len(p.Children()))
	}
}

func TestParentMissingTag(t *testing.T) {
	if _, err := NewParent("", []Node{NewText("x")}); !errors.Is(err, ErrMissingTag) {
		t.Errorf("NewParent(\"\") error = %v, want ErrMissingTag", err)
	}
}

func TestAttrsNotShared(t *testing.T) {
	shared := []Attr{{"href", "/a"}}
	first := NewLeaf("a", "one", shared...)
	shared[0].Value = "/b"
	second := NewLeaf("a", "two", shared...)

	if v, _ := first.Attrs().Get("href"); v != "/a" {
		t.Errorf("first leaf href = %q, want /a", v)
	}
	if v, _ := second.Attrs().Get("href"); v != "/b" {
		t.Errorf("second leaf href = %q, want /b", v)
	}

	a := NewText("x")
	b := NewText("y")
	a.attrs = append(a.attrs, Attr{"k", "v"})
	if len(b.attrs) != 0 {
		t.Error("text leaves must not share attribute storage")
	}
}

func TestChildrenCopy(t *testing.T) {
	kids := []Node{NewText("a")}
	p, err := NewParent("p", kids)
	if err != nil {
		t.Fatalf("NewParent failed: %v", err)
	}
	kids[0] = NewText("changed")
	if got := p.Render(); got != "<p>a</p>" {
		t.Errorf("Render() = %q, want <p>a</p>", got)
	}
}
