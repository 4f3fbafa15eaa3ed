// Package dataset reads the JSON payloads the server embeds in the page and
// turns them into typed, length-aligned datasets. Reading never fails: a
// missing or malformed payload yields the empty value plus a Status the
// caller may log.
package dataset

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"painel/internal/dom"
)

// Element ids of the embedded payloads.
const (
	IDSetorLabels          = "data-setor-labels"
	IDSetorSeries          = "data-setor-series"
	IDTipoLabels           = "data-tipo-labels"
	IDTipoSeries           = "data-tipo-series"
	IDTurnoLabels          = "data-turno-labels"
	IDTurnoSeries          = "data-turno-series"
	IDStackedCategories    = "data-stacked-categories"
	IDStackedSeries        = "data-stacked-series"
	IDTimeline             = "data-timeline"
	IDMergeColabPercent    = "data-merge-colab-percent"
	IDAvailableSetores     = "data-available-setores"
	IDAvailableTipos       = "data-available-tipos"
	IDAvailableSupervisors = "data-available-supervisores"
	IDSelectedSetor        = "data-selected-setor"
	IDSelectedTipo         = "data-selected-tipo"
	IDSelectedSupervisor   = "data-selected-supervisor"
)

// ErrMalformed marks a payload that exists but does not decode.
var ErrMalformed = errors.New("malformed payload")

// Status reports how a payload was obtained.
type Status int

const (
	Loaded Status = iota
	Missing
	Malformed
)

func (s Status) String() string {
	switch s {
	case Loaded:
		return "loaded"
	case Missing:
		return "missing"
	case Malformed:
		return "malformed"
	default:
		return "unknown"
	}
}

// Result is a decoded payload tagged with its Status. Value is always
// usable; Err is set only for Malformed.
type Result[T any] struct {
	Value  T
	Status Status
	Err    error
}

// Source yields the raw text of an embedded payload.
type Source interface {
	Payload(id string) (string, bool)
}

// DocumentSource reads payloads from script elements by id.
type DocumentSource struct {
	Doc dom.Document
}

// Payload implements Source.
func (s DocumentSource) Payload(id string) (string, bool) {
	if s.Doc == nil {
		return "", false
	}
	el := s.Doc.ElementByID(id)
	if el == nil {
		return "", false
	}
	return el.Text(), true
}

// MapSource is an in-memory Source.
type MapSource map[string]string

// Payload implements Source.
func (m MapSource) Payload(id string) (string, bool) {
	v, ok := m[id]
	return v, ok
}

// Read decodes payload id into T, falling back when absent or malformed.
func Read[T any](src Source, id string, fallback T) Result[T] {
	raw, ok := src.Payload(id)
	if !ok || strings.TrimSpace(raw) == "" {
		return Result[T]{Value: fallback, Status: Missing}
	}
	var v T
	dec := json.NewDecoder(strings.NewReader(raw))
	if err := dec.Decode(&v); err != nil {
		return Result[T]{Value: fallback, Status: Malformed, Err: fmt.Errorf("%s: %w: %v", id, ErrMalformed, err)}
	}
	return Result[T]{Value: v, Status: Loaded}
}

// Number decodes JSON numbers, numeric strings and null. Anything
// unparseable becomes 0.
type Number float64

// UnmarshalJSON implements json.Unmarshaler.
func (n *Number) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*n = 0
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			*n = 0
			return nil
		}
		*n = Number(f)
		return nil
	}
	if b[0] == '{' || b[0] == '[' {
		return fmt.Errorf("expected number, got %.20s", b)
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		*n = 0
		return nil
	}
	*n = Number(f)
	return nil
}

func floats(ns []Number) []float64 {
	out := make([]float64, len(ns))
	for i, n := range ns {
		out[i] = float64(n)
	}
	return out
}

// worst returns the least healthy status.
func worst(ss ...Status) Status {
	w := Loaded
	for _, s := range ss {
		if s > w {
			w = s
		}
	}
	return w
}

func firstErr(errs ...error) error {
	for _, e := range errs {
		if e != nil {
			return e
		}
	}
	return nil
}
