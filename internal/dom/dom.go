// Package dom is the small document model the panel manipulates: element
// lookup, attributes, classes, inline styles, markup injection and removal.
// HTMLDocument implements it over golang.org/x/net/html so a page rendered
// by the server can be enhanced in process and serialised back.
package dom

import "errors"

// ErrNoParent is returned when an operation needs an attached element.
var ErrNoParent = errors.New("dom: element has no parent")

// Element is one node of the document.
type Element interface {
	ID() string
	Tag() string
	Attr(name string) (string, bool)
	SetAttr(name, value string)
	RemoveAttr(name string)

	HasClass(class string) bool
	SetClass(class string, on bool)
	Style(prop string) string
	SetStyle(prop, value string)

	Text() string
	SetText(text string)
	InnerHTML() string
	SetInnerHTML(markup string) error
	// AppendHTML parses markup as children of this element and returns the
	// first element created, or nil when markup held only text.
	AppendHTML(markup string) (Element, error)
	// InsertAfterHTML parses markup as following siblings.
	InsertAfterHTML(markup string) (Element, error)

	Parent() Element
	Children() []Element
	Find(match Matcher) Element
	FindAll(match Matcher) []Element

	// Value and SetValue follow form-control semantics for select, input
	// and textarea elements.
	Value() string
	SetValue(v string)

	Remove()
	Attached() bool
}

// Document is the page the controller works on.
type Document interface {
	Root() Element
	ElementByID(id string) Element
	FindAll(match Matcher) []Element
	// CSSVar resolves a custom property the way getComputedStyle would for
	// the root element; "" when undefined.
	CSSVar(name string) string
}

// Matcher selects elements during a search.
type Matcher func(Element) bool

// ByClass matches elements carrying class.
func ByClass(class string) Matcher {
	return func(e Element) bool { return e.HasClass(class) }
}

// ByTag matches elements by lowercase tag name.
func ByTag(tag string) Matcher {
	return func(e Element) bool { return e.Tag() == tag }
}

// ByAttr matches elements whose attribute name equals value.
func ByAttr(name, value string) Matcher {
	return func(e Element) bool {
		v, ok := e.Attr(name)
		return ok && v == value
	}
}

// HasAttr matches elements carrying attribute name with any value.
func HasAttr(name string) Matcher {
	return func(e Element) bool {
		_, ok := e.Attr(name)
		return ok
	}
}

// All matches when every matcher does.
func All(ms ...Matcher) Matcher {
	return func(e Element) bool {
		for _, m := range ms {
			if !m(e) {
				return false
			}
		}
		return true
	}
}
