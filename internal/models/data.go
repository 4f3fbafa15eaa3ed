package models

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"painel/internal/dataset"
	"painel/internal/logger"
)

// PanelData is the pre-aggregated content of one dashboard page
type PanelData struct {
	Title       string            `json:"title" yaml:"title"`
	GeneratedAt time.Time         `json:"generated_at" yaml:"generated_at"`
	Mode        string            `json:"mode,omitempty" yaml:"mode,omitempty"`
	Notes       string            `json:"notes,omitempty" yaml:"notes,omitempty"` // markdown
	Theme       map[string]string `json:"theme,omitempty" yaml:"theme,omitempty"` // CSS custom properties

	Tipo     CategoryCounts `json:"tipo" yaml:"tipo"`
	Turno    CategoryCounts `json:"turno" yaml:"turno"`
	Setor    GroupedCounts  `json:"setor" yaml:"setor"`
	Timeline []Sample       `json:"timeline" yaml:"timeline"`
	Merge    *MergeSplit    `json:"merge,omitempty" yaml:"merge,omitempty"`
	Filters  FilterOptions  `json:"filters" yaml:"filters"`
}

// CategoryCounts are parallel labels and counts
type CategoryCounts struct {
	Labels []string  `json:"labels" yaml:"labels"`
	Counts []float64 `json:"counts" yaml:"counts"`
}

// GroupedCounts are categories with one or more named series
type GroupedCounts struct {
	Categories []string      `json:"categories" yaml:"categories"`
	Series     []NamedCounts `json:"series" yaml:"series"`
}

// NamedCounts is one series of a GroupedCounts
type NamedCounts struct {
	Name   string    `json:"name" yaml:"name"`
	Counts []float64 `json:"counts" yaml:"counts"`
}

// Sample is one timeline point
type Sample struct {
	At    time.Time `json:"at" yaml:"at"`
	Value float64   `json:"value" yaml:"value"`
}

// MergeSplit is the trained/untrained collaborator split of the merge tab
type MergeSplit struct {
	Labels []string  `json:"labels,omitempty" yaml:"labels,omitempty"`
	Values []float64 `json:"values" yaml:"values"`
}

// FilterOptions lists what the timeline filters can select
type FilterOptions struct {
	Setores      []string `json:"setores" yaml:"setores"`
	Tipos        []string `json:"tipos" yaml:"tipos"`
	Supervisores []string `json:"supervisores" yaml:"supervisores"`
}

// Selection is the filter state requested by a page visit
type Selection struct {
	Setor      string
	Tipo       string
	Supervisor string
}

// SelectionFromQuery reads the setor, tipo and supervisor parameters
func SelectionFromQuery(q url.Values) Selection {
	return Selection{Setor: q.Get("setor"), Tipo: q.Get("tipo"), Supervisor: q.Get("supervisor")}
}

// LoadPanelData reads a fixture. Files ending in .yaml or .yml are YAML,
// everything else JSON.
func LoadPanelData(path string) (*PanelData, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read panel data %s: %w", path, err)
	}
	var data PanelData
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(raw, &data)
	default:
		err = json.Unmarshal(raw, &data)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode panel data %s: %w", path, err)
	}
	if err := data.Validate(); err != nil {
		return nil, fmt.Errorf("invalid panel data %s: %w", path, err)
	}
	return &data, nil
}

// Validate checks that parallel arrays line up
func (p *PanelData) Validate() error {
	if len(p.Tipo.Labels) != len(p.Tipo.Counts) {
		return fmt.Errorf("tipo: %d labels for %d counts", len(p.Tipo.Labels), len(p.Tipo.Counts))
	}
	if len(p.Turno.Labels) != len(p.Turno.Counts) {
		return fmt.Errorf("turno: %d labels for %d counts", len(p.Turno.Labels), len(p.Turno.Counts))
	}
	for _, s := range p.Setor.Series {
		if len(s.Counts) != len(p.Setor.Categories) {
			return fmt.Errorf("setor series %q: %d counts for %d categories", s.Name, len(s.Counts), len(p.Setor.Categories))
		}
	}
	switch p.Mode {
	case "", "light", "dark":
	default:
		return fmt.Errorf("mode must be light or dark, got %q", p.Mode)
	}
	return nil
}

// Payloads encodes every dataset under the element id the panel reads it
// from. The merge payload is omitted when the fixture has none.
func (p *PanelData) Payloads(sel Selection) (map[string]string, error) {
	out := make(map[string]string)
	put := func(id string, v interface{}) error {
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("failed to encode %s: %w", id, err)
		}
		out[id] = string(b)
		return nil
	}

	timeline := make([][2]float64, 0, len(p.Timeline))
	for _, s := range p.Timeline {
		timeline = append(timeline, [2]float64{float64(s.At.UnixMilli()), s.Value})
	}

	setor := make([]map[string]interface{}, 0, len(p.Setor.Series))
	for _, s := range p.Setor.Series {
		setor = append(setor, map[string]interface{}{"name": s.Name, "data": nonNil(s.Counts)})
	}

	values := map[string]interface{}{
		dataset.IDTipoLabels:           nonNilStrings(p.Tipo.Labels),
		dataset.IDTipoSeries:           nonNil(p.Tipo.Counts),
		dataset.IDTurnoLabels:          nonNilStrings(p.Turno.Labels),
		dataset.IDTurnoSeries:          nonNil(p.Turno.Counts),
		dataset.IDStackedCategories:    nonNilStrings(p.Setor.Categories),
		dataset.IDStackedSeries:        setor,
		dataset.IDTimeline:             timeline,
		dataset.IDAvailableSetores:     nonNilStrings(p.Filters.Setores),
		dataset.IDAvailableTipos:       nonNilStrings(p.Filters.Tipos),
		dataset.IDAvailableSupervisors: nonNilStrings(p.Filters.Supervisores),
		dataset.IDSelectedSetor:        orAll(sel.Setor),
		dataset.IDSelectedTipo:         orAll(sel.Tipo),
		dataset.IDSelectedSupervisor:   orAll(sel.Supervisor),
	}
	if p.Merge != nil {
		values[dataset.IDMergeColabPercent] = map[string]interface{}{
			"labels": nonNilStrings(p.Merge.Labels),
			"values": nonNil(p.Merge.Values),
		}
	}
	for id, v := range values {
		if err := put(id, v); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Bundle decodes the fixture the same way the page does, through its
// payloads
func (p *PanelData) Bundle(sel Selection, log *logger.Logger) (dataset.Bundle, error) {
	payloads, err := p.Payloads(sel)
	if err != nil {
		return dataset.Bundle{}, err
	}
	return dataset.Load(dataset.MapSource(payloads), log), nil
}

func orAll(v string) string {
	if v == "" {
		return dataset.AllValue
	}
	return v
}

func nonNil(v []float64) []float64 {
	if v == nil {
		return []float64{}
	}
	return v
}

func nonNilStrings(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}
