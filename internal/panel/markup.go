package panel

// Element ids the controller mounts into.
const (
	IDRecordsTarget = "registros-graficos"
	IDDatasetLabel  = "dataset-label"
	IDChartTipo     = "chart-tipo"
	IDChartTurno    = "chart-turno"
	IDChartSetor    = "chart-setor"
	IDChartTimeline = "chart-timeline"
	IDChartMergePie = "chart-merge-colab-percent"
	IDChartMergeBar = "chart-merge-colab"
)

const (
	ClassHidden     = "d-none"
	ClassActive     = "active"
	AttrTarget      = "data-target"
	AttrInputFilter = "data-input-filter"
	AttrInputPanel  = "data-input-panel"
)

func card(col, icon, iconVar, title, badgeClass, badge, chartID, height string) string {
	return `<div class="` + col + `">
  <div class="card h-100">
    <div class="card-header d-flex align-items-center justify-content-between">
      <div class="d-flex align-items-center">
        <i class="bi ` + icon + ` me-2" style="color: var(` + iconVar + `);"></i>
        <h6 class="mb-0">` + title + `</h6>
      </div>
      <div class="badge ` + badgeClass + ` px-2 py-1" style="font-size: 0.7rem; font-weight: 600;">` + badge + `</div>
    </div>
    <div class="card-body">
      <div class="chart-wrapper" style="height: ` + height + `;">
        <div id="` + chartID + `"></div>
      </div>
    </div>
  </div>
</div>`
}

var recordsMarkup = `<div class="row g-3 mt-2">` +
	card("col-12 col-xxl-4", "bi-bar-chart-line", "--accent-color", "Tipos - Contagem Geral de Matrículas",
		"bg-primary bg-opacity-10 text-primary", "Barras", IDChartTipo, "360px") +
	card("col-12 col-xxl-4", "bi-pie-chart-fill", "--accent-color", "Turnos - Distribuição Total por Donut",
		"bg-success bg-opacity-10 text-success", "Donut", IDChartTurno, "360px") +
	card("col-12 col-xxl-4", "bi-bar-chart-steps", "--accent-color", "Análise de Volume - Total por Setor",
		"bg-warning bg-opacity-10 text-warning", "Barras", IDChartSetor, "380px") +
	`</div>
<div class="row g-3 mt-2">
  <div class="col-12">
    <div class="card h-100">
      <div class="card-header d-flex align-items-center justify-content-between">
        <div class="d-flex align-items-center">
          <i class="bi bi-graph-up me-2" style="color: var(--success-color);"></i>
          <h6 class="mb-0">Timeline Analytics - Evolução Temporal</h6>
        </div>
        <form id="` + IDFilterForm + `" class="d-flex gap-2" method="get">
          <select id="` + IDFilterSetor + `" name="setor" class="form-select form-select-sm">
            <option value="all">Setor: Todos</option>
          </select>
          <select id="` + IDFilterTipo + `" name="tipo" class="form-select form-select-sm">
            <option value="all">Tipo: Todos</option>
          </select>
          <select id="` + IDFilterSupervisor + `" name="supervisor" class="form-select form-select-sm">
            <option value="all">Supervisor: Todos</option>
          </select>
          <button id="` + IDApply + `" type="submit" class="btn btn-sm btn-primary"><i class="bi bi-funnel me-1"></i>Aplicar</button>
        </form>
      </div>
      <div class="card-body">
        <div class="chart-wrapper" style="height: 420px;">
          <div id="` + IDChartTimeline + `"></div>
        </div>
      </div>
    </div>
  </div>
</div>`
