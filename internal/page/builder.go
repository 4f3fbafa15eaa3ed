// Package page renders the dashboard shell around a fixture: theme
// variables, tab sections, filter inputs, notes and the embedded dataset
// payloads the panel controller reads.
package page

import (
	"bytes"
	"fmt"
	"html/template"
	"regexp"
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"

	"painel/internal/dom"
	"painel/internal/models"
)

// DefaultTheme are the light and dark custom properties of the shell.
var DefaultTheme = map[string]map[string]string{
	"light": {
		"--accent-color":  "#3498db",
		"--accent-hover":  "#2980b9",
		"--success-color": "#27ae60",
		"--warning-color": "#f39c12",
		"--danger-color":  "#e74c3c",
		"--primary-color": "#2c3e50",
	},
	"dark": {
		"--accent-color":  "#60a5fa",
		"--accent-hover":  "#3b82f6",
		"--success-color": "#34d399",
		"--warning-color": "#fbbf24",
		"--danger-color":  "#f87171",
		"--primary-color": "#e2e8f0",
	},
}

var (
	safeName  = regexp.MustCompile(`^--[\w-]+$`)
	safeValue = regexp.MustCompile(`^[#\w\s(),.%-]*$`)
)

// Builder renders pages
type Builder struct {
	EChartsURL  string
	DefaultMode string
	goldmark    goldmark.Markdown
	tmpl        *template.Template
}

// NewBuilder creates a page builder
func NewBuilder(echartsURL, defaultMode string) *Builder {
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		goldmark.WithRendererOptions(html.WithHardWraps()),
	)
	if defaultMode != "dark" {
		defaultMode = "light"
	}
	return &Builder{
		EChartsURL:  echartsURL,
		DefaultMode: defaultMode,
		goldmark:    md,
		tmpl:        template.Must(template.New("page").Parse(pageTemplate)),
	}
}

// Request is what a visit asks for
type Request struct {
	Selection models.Selection
	MinData   string
	MaxData   string
	Turno     string
	// Mode overrides the fixture and builder modes when set
	Mode string
}

type payloadView struct {
	ID   string
	JSON template.JS
}

type templateData struct {
	Title       string
	Mode        string
	GeneratedAt string
	CSS         template.CSS
	Notes       template.HTML
	EChartsURL  string
	MinData     string
	MaxData     string
	Turno       string
	Turnos      []string
	Payloads    []payloadView
}

// ConvertMarkdownToHTML converts panel notes with goldmark. Raw HTML in
// the notes is dropped.
func (b *Builder) ConvertMarkdownToHTML(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := b.goldmark.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("failed to convert markdown: %w", err)
	}
	return buf.String(), nil
}

// Render writes the page HTML for data
func (b *Builder) Render(data *models.PanelData, req Request) ([]byte, error) {
	mode := string(b.ModeFor(data, req.Mode))

	payloads, err := data.Payloads(req.Selection)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(payloads))
	for id := range payloads {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	view := templateData{
		Title:      data.Title,
		Mode:       mode,
		CSS:        themeCSS(data.Theme),
		EChartsURL: b.EChartsURL,
		MinData:    req.MinData,
		MaxData:    req.MaxData,
		Turno:      req.Turno,
		Turnos:     data.Turno.Labels,
	}
	if view.Title == "" {
		view.Title = "Painel de Matrículas"
	}
	if !data.GeneratedAt.IsZero() {
		view.GeneratedAt = data.GeneratedAt.Format("02/01/2006 15:04")
	}
	for _, id := range ids {
		view.Payloads = append(view.Payloads, payloadView{ID: id, JSON: template.JS(payloads[id])})
	}
	if strings.TrimSpace(data.Notes) != "" {
		notes, err := b.ConvertMarkdownToHTML(data.Notes)
		if err != nil {
			return nil, err
		}
		view.Notes = template.HTML(notes)
	}

	var buf bytes.Buffer
	if err := b.tmpl.Execute(&buf, view); err != nil {
		return nil, fmt.Errorf("failed to render page: %w", err)
	}
	return buf.Bytes(), nil
}

// Build renders the page and parses it for the panel controller
func (b *Builder) Build(data *models.PanelData, req Request) (*dom.HTMLDocument, error) {
	raw, err := b.Render(data, req)
	if err != nil {
		return nil, err
	}
	doc, err := dom.Parse(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to parse rendered page: %w", err)
	}
	return doc, nil
}

// themeCSS writes the default light and dark variables with the fixture's
// overrides applied to both. Unsafe names or values are skipped.
func themeCSS(overrides map[string]string) template.CSS {
	var buf strings.Builder
	for _, scope := range []struct{ selector, mode string }{
		{":root", "light"},
		{`[data-bs-theme="dark"]`, "dark"},
	} {
		vars := make(map[string]string, len(DefaultTheme[scope.mode])+len(overrides))
		for k, v := range DefaultTheme[scope.mode] {
			vars[k] = v
		}
		for k, v := range overrides {
			vars[k] = v
		}
		names := make([]string, 0, len(vars))
		for k, v := range vars {
			if safeName.MatchString(k) && safeValue.MatchString(v) {
				names = append(names, k)
			}
		}
		sort.Strings(names)
		buf.WriteString(scope.selector + " {")
		for _, k := range names {
			fmt.Fprintf(&buf, " %s: %s;", k, vars[k])
		}
		buf.WriteString(" }\n")
	}
	return template.CSS(buf.String())
}
