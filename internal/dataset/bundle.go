package dataset

import (
	"painel/internal/logger"
)

// AllValue is the filter wildcard.
const AllValue = "all"

// Filters are the options and current selections of the timeline filters.
type Filters struct {
	Setores      []string
	Tipos        []string
	Supervisores []string

	SelectedSetor      string
	SelectedTipo       string
	SelectedSupervisor string
}

// Bundle is every dataset the panel renders.
type Bundle struct {
	Tipo     Categorical
	Turno    Categorical
	Setor    Grouped
	Timeline TimeSeries
	Merge    Breakdown
	Filters  Filters
}

// PaletteSize is the records palette length: the largest dataset, at least 6.
func (b Bundle) PaletteSize() int {
	return max(b.Tipo.Len(), b.Turno.Len(), len(b.Setor.Categories), 6)
}

// Load reads every payload from src. Problems are logged at DEBUG and the
// affected dataset is left empty.
func Load(src Source, log *logger.Logger) Bundle {
	if log == nil {
		log = logger.Discard()
	}
	note := func(name string, st Status, err error) {
		if st == Loaded {
			return
		}
		log.Debug("dataset not loaded", logger.Fields{"dataset": name, "status": st.String(), "reason": errString(err)})
	}

	var b Bundle
	tipo := LoadCategorical(src, IDTipoLabels, IDTipoSeries)
	note("tipo", tipo.Status, tipo.Err)
	b.Tipo = tipo.Value

	turno := LoadCategorical(src, IDTurnoLabels, IDTurnoSeries)
	note("turno", turno.Status, turno.Err)
	b.Turno = turno.Value

	setor := LoadGrouped(src, IDStackedCategories, IDStackedSeries)
	if setor.Status != Loaded || len(setor.Value.Categories) == 0 {
		// Older pages only carry the plain sector payloads.
		plain := LoadCategorical(src, IDSetorLabels, IDSetorSeries)
		if plain.Status == Loaded {
			setor = Result[Grouped]{
				Value:  NewGrouped(plain.Value.Labels, []NamedSeries{{Name: DefaultSeriesName, Data: plain.Value.Series}}),
				Status: Loaded,
			}
		}
	}
	note("setor", setor.Status, setor.Err)
	b.Setor = setor.Value

	timeline := LoadTimeline(src, IDTimeline)
	note("timeline", timeline.Status, timeline.Err)
	b.Timeline = timeline.Value

	merge := LoadBreakdown(src, IDMergeColabPercent)
	note("merge", merge.Status, merge.Err)
	b.Merge = merge.Value

	b.Filters = Filters{
		Setores:            Read(src, IDAvailableSetores, []string{}).Value,
		Tipos:              Read(src, IDAvailableTipos, []string{}).Value,
		Supervisores:       Read(src, IDAvailableSupervisors, []string{}).Value,
		SelectedSetor:      orAll(Read(src, IDSelectedSetor, AllValue).Value),
		SelectedTipo:       orAll(Read(src, IDSelectedTipo, AllValue).Value),
		SelectedSupervisor: orAll(Read(src, IDSelectedSupervisor, AllValue).Value),
	}
	return b
}

func orAll(v string) string {
	if v == "" {
		return AllValue
	}
	return v
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
