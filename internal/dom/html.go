package dom

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// HTMLDocument is a Document backed by a parsed HTML tree.
type HTMLDocument struct {
	root *html.Node
}

// Parse reads a full HTML document.
func Parse(r io.Reader) (*HTMLDocument, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}
	return &HTMLDocument{root: root}, nil
}

// ParseString is Parse over a string.
func ParseString(s string) (*HTMLDocument, error) {
	return Parse(strings.NewReader(s))
}

// Render serialises the current tree.
func (d *HTMLDocument) Render(w io.Writer) error {
	return html.Render(w, d.root)
}

// String renders the document, returning "" on failure.
func (d *HTMLDocument) String() string {
	var b strings.Builder
	if err := d.Render(&b); err != nil {
		return ""
	}
	return b.String()
}

// Root returns the <html> element.
func (d *HTMLDocument) Root() Element {
	for c := d.root.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.DataAtom == atom.Html {
			return wrap(c)
		}
	}
	return nil
}

// ElementByID returns the first element with id, or nil.
func (d *HTMLDocument) ElementByID(id string) Element {
	if id == "" {
		return nil
	}
	if n := findNode(d.root, func(n *html.Node) bool { return getAttr(n, "id") == id }); n != nil {
		return wrap(n)
	}
	return nil
}

// FindAll returns every element in document order that matches.
func (d *HTMLDocument) FindAll(match Matcher) []Element {
	var out []Element
	walk(d.root, func(n *html.Node) {
		if e := wrap(n); match(e) {
			out = append(out, e)
		}
	})
	return out
}

type node struct {
	n *html.Node
}

func wrap(n *html.Node) Element {
	if n == nil || n.Type != html.ElementNode {
		return nil
	}
	return &node{n: n}
}

func walk(n *html.Node, fn func(*html.Node)) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			fn(c)
		}
		walk(c, fn)
	}
}

func findNode(n *html.Node, match func(*html.Node) bool) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && match(c) {
			return c
		}
		if found := findNode(c, match); found != nil {
			return found
		}
	}
	return nil
}

func getAttr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == name {
			return a.Val
		}
	}
	return ""
}

func (e *node) ID() string  { return getAttr(e.n, "id") }
func (e *node) Tag() string { return e.n.Data }

func (e *node) Attr(name string) (string, bool) {
	for _, a := range e.n.Attr {
		if a.Namespace == "" && a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

func (e *node) SetAttr(name, value string) {
	for i, a := range e.n.Attr {
		if a.Namespace == "" && a.Key == name {
			e.n.Attr[i].Val = value
			return
		}
	}
	e.n.Attr = append(e.n.Attr, html.Attribute{Key: name, Val: value})
}

func (e *node) RemoveAttr(name string) {
	kept := e.n.Attr[:0]
	for _, a := range e.n.Attr {
		if a.Namespace == "" && a.Key == name {
			continue
		}
		kept = append(kept, a)
	}
	e.n.Attr = kept
}

func (e *node) classes() []string {
	v, _ := e.Attr("class")
	return strings.Fields(v)
}

func (e *node) HasClass(class string) bool {
	for _, c := range e.classes() {
		if c == class {
			return true
		}
	}
	return false
}

func (e *node) SetClass(class string, on bool) {
	var out []string
	for _, c := range e.classes() {
		if c != class {
			out = append(out, c)
		}
	}
	if on {
		out = append(out, class)
	}
	e.SetAttr("class", strings.Join(out, " "))
}

func (e *node) Style(prop string) string {
	v, _ := e.Attr("style")
	for _, d := range parseDecls(v) {
		if d.name == prop {
			return d.value
		}
	}
	return ""
}

func (e *node) SetStyle(prop, value string) {
	v, _ := e.Attr("style")
	decls := parseDecls(v)
	found := false
	for i := range decls {
		if decls[i].name == prop {
			decls[i].value = value
			found = true
		}
	}
	if !found {
		decls = append(decls, decl{name: prop, value: value})
	}
	parts := make([]string, 0, len(decls))
	for _, d := range decls {
		if d.value == "" {
			continue
		}
		parts = append(parts, d.name+": "+d.value)
	}
	e.SetAttr("style", strings.Join(parts, "; "))
}

func (e *node) Text() string {
	var b strings.Builder
	var collect func(*html.Node)
	collect = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.TextNode {
				b.WriteString(c.Data)
			}
			collect(c)
		}
	}
	collect(e.n)
	return b.String()
}

func (e *node) clear() {
	for c := e.n.FirstChild; c != nil; {
		next := c.NextSibling
		e.n.RemoveChild(c)
		c = next
	}
}

func (e *node) SetText(text string) {
	e.clear()
	e.n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
}

func (e *node) InnerHTML() string {
	var b strings.Builder
	for c := e.n.FirstChild; c != nil; c = c.NextSibling {
		_ = html.Render(&b, c)
	}
	return b.String()
}

func (e *node) fragment(markup string, context *html.Node) ([]*html.Node, error) {
	nodes, err := html.ParseFragment(strings.NewReader(markup), context)
	if err != nil {
		return nil, fmt.Errorf("failed to parse fragment: %w", err)
	}
	return nodes, nil
}

func (e *node) SetInnerHTML(markup string) error {
	nodes, err := e.fragment(markup, e.n)
	if err != nil {
		return err
	}
	e.clear()
	for _, n := range nodes {
		e.n.AppendChild(n)
	}
	return nil
}

func firstElement(nodes []*html.Node) Element {
	for _, n := range nodes {
		if n.Type == html.ElementNode {
			return wrap(n)
		}
	}
	return nil
}

func (e *node) AppendHTML(markup string) (Element, error) {
	nodes, err := e.fragment(markup, e.n)
	if err != nil {
		return nil, err
	}
	for _, n := range nodes {
		e.n.AppendChild(n)
	}
	return firstElement(nodes), nil
}

func (e *node) InsertAfterHTML(markup string) (Element, error) {
	parent := e.n.Parent
	if parent == nil {
		return nil, ErrNoParent
	}
	context := parent
	if context.Type != html.ElementNode {
		context = nil
	}
	nodes, err := e.fragment(markup, context)
	if err != nil {
		return nil, err
	}
	next := e.n.NextSibling
	for _, n := range nodes {
		parent.InsertBefore(n, next)
	}
	return firstElement(nodes), nil
}

func (e *node) Parent() Element {
	return wrap(e.n.Parent)
}

func (e *node) Children() []Element {
	var out []Element
	for c := e.n.FirstChild; c != nil; c = c.NextSibling {
		if el := wrap(c); el != nil {
			out = append(out, el)
		}
	}
	return out
}

func (e *node) Find(match Matcher) Element {
	if n := findNode(e.n, func(n *html.Node) bool { return match(wrap(n)) }); n != nil {
		return wrap(n)
	}
	return nil
}

func (e *node) FindAll(match Matcher) []Element {
	var out []Element
	walk(e.n, func(n *html.Node) {
		if el := wrap(n); match(el) {
			out = append(out, el)
		}
	})
	return out
}

func (e *node) Value() string {
	switch e.n.DataAtom {
	case atom.Select:
		options := e.FindAll(ByTag("option"))
		for _, o := range options {
			if _, sel := o.Attr("selected"); sel {
				return optionValue(o)
			}
		}
		if len(options) > 0 {
			return optionValue(options[0])
		}
		return ""
	case atom.Textarea:
		return e.Text()
	default:
		v, _ := e.Attr("value")
		return v
	}
}

func optionValue(o Element) string {
	if v, ok := o.Attr("value"); ok {
		return v
	}
	return strings.TrimSpace(o.Text())
}

func (e *node) SetValue(v string) {
	switch e.n.DataAtom {
	case atom.Select:
		for _, o := range e.FindAll(ByTag("option")) {
			if optionValue(o) == v {
				o.SetAttr("selected", "")
			} else {
				o.RemoveAttr("selected")
			}
		}
	case atom.Textarea:
		e.SetText(v)
	default:
		e.SetAttr("value", v)
	}
}

func (e *node) Remove() {
	if e.n.Parent != nil {
		e.n.Parent.RemoveChild(e.n)
	}
}

func (e *node) Attached() bool {
	for p := e.n.Parent; p != nil; p = p.Parent {
		if p.Type == html.DocumentNode {
			return true
		}
	}
	return false
}
