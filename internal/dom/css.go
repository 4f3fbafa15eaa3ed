package dom

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ThemeAttr is the root attribute that selects the color mode.
const ThemeAttr = "data-bs-theme"

type decl struct {
	name, value string
}

var (
	cssComment = regexp.MustCompile(`(?s)/\*.*?\*/`)
	cssRule    = regexp.MustCompile(`([^{}]+)\{([^{}]*)\}`)
	cssVarRef  = regexp.MustCompile(`^var\(\s*(--[\w-]+)\s*(?:,\s*(.*))?\)$`)
)

func parseDecls(block string) []decl {
	var out []decl
	for _, part := range strings.Split(block, ";") {
		name, value, ok := strings.Cut(part, ":")
		if !ok {
			continue
		}
		name = strings.TrimSpace(name)
		value = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(value), "!important"))
		if name == "" {
			continue
		}
		out = append(out, decl{name: name, value: strings.TrimSpace(value)})
	}
	return out
}

// selectorScope reports which root scope a selector targets: "" for the
// unconditional root, a mode name for [data-bs-theme=mode], ok=false for
// anything else.
func selectorScope(sel string) (string, bool) {
	sel = strings.TrimSpace(sel)
	for _, prefix := range []string{":root", "html"} {
		if strings.HasPrefix(sel, prefix) {
			sel = strings.TrimPrefix(sel, prefix)
			break
		}
	}
	if sel == "" {
		return "", true
	}
	if !strings.HasPrefix(sel, "["+ThemeAttr) || !strings.HasSuffix(sel, "]") {
		return "", false
	}
	body := strings.TrimSuffix(strings.TrimPrefix(sel, "["+ThemeAttr), "]")
	mode := strings.Trim(strings.TrimPrefix(body, "="), `"'`)
	if mode == "" {
		return "", false
	}
	return mode, true
}

func styleText(root *html.Node) string {
	var b strings.Builder
	walk(root, func(n *html.Node) {
		if n.DataAtom != atom.Style {
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.TextNode {
				b.WriteString(c.Data)
				b.WriteString("\n")
			}
		}
	})
	return b.String()
}

// customProperties collects the root custom properties in cascade order:
// unconditional root rules, then rules for the active mode, then the root
// element's inline style.
func (d *HTMLDocument) customProperties() map[string]string {
	mode := ""
	var inline string
	if root := d.Root(); root != nil {
		mode, _ = root.Attr(ThemeAttr)
		inline, _ = root.Attr("style")
	}

	base := map[string]string{}
	scoped := map[string]string{}
	css := cssComment.ReplaceAllString(styleText(d.root), "")
	for _, m := range cssRule.FindAllStringSubmatch(css, -1) {
		for _, sel := range strings.Split(m[1], ",") {
			scope, ok := selectorScope(sel)
			if !ok || (scope != "" && scope != mode) {
				continue
			}
			target := base
			if scope != "" {
				target = scoped
			}
			for _, dc := range parseDecls(m[2]) {
				if strings.HasPrefix(dc.name, "--") {
					target[dc.name] = dc.value
				}
			}
		}
	}

	for k, v := range scoped {
		base[k] = v
	}
	for _, dc := range parseDecls(inline) {
		if strings.HasPrefix(dc.name, "--") {
			base[dc.name] = dc.value
		}
	}
	return base
}

// CSSVar resolves name against the document's root custom properties,
// following var() references.
func (d *HTMLDocument) CSSVar(name string) string {
	return resolveVar(d.customProperties(), name, 0)
}

func resolveVar(props map[string]string, name string, depth int) string {
	if depth > 8 {
		return ""
	}
	v := strings.TrimSpace(props[name])
	m := cssVarRef.FindStringSubmatch(v)
	if m == nil {
		return v
	}
	if ref := resolveVar(props, m[1], depth+1); ref != "" {
		return ref
	}
	return strings.TrimSpace(m[2])
}
