package page

const pageTemplate = `<!DOCTYPE html>
<html lang="pt-BR" data-bs-theme="{{.Mode}}">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
<link rel="stylesheet" href="https://cdn.jsdelivr.net/npm/bootstrap@5.3.3/dist/css/bootstrap.min.css">
<link rel="stylesheet" href="https://cdn.jsdelivr.net/npm/bootstrap-icons@1.11.3/font/bootstrap-icons.min.css">
<script src="{{.EChartsURL}}"></script>
<style>
{{.CSS}}
.chart-wrapper { position: relative; }
.chart-tooltip { position: absolute; pointer-events: none; z-index: 10; }
</style>
</head>
<body>
<div class="container-fluid py-3">
  <div class="card mb-3">
    <div class="card-header d-flex align-items-center justify-content-between">
      <div>
        <h5 class="mb-0">{{.Title}}</h5>
        <small class="text-muted"><span id="dataset-label">Registros</span>{{with .GeneratedAt}} • atualizado em {{.}}{{end}}</small>
      </div>
      <div class="btn-group" role="group">
        <a class="btn btn-sm btn-outline-primary active" data-target="#tab-registros">Registros</a>
        <a class="btn btn-sm btn-outline-primary" data-target="#tab-input">Input*Dados</a>
        <a class="btn btn-sm btn-outline-primary" data-target="#tab-merge">Registros x Input*Dados</a>
      </div>
    </div>
    <div class="card-body d-flex flex-wrap gap-2">
      <input type="date" id="min_data" name="min_data" class="form-control form-control-sm w-auto" value="{{.MinData}}">
      <input type="date" id="max_data" name="max_data" class="form-control form-control-sm w-auto" value="{{.MaxData}}">
      <select id="turno" name="turno" class="form-select form-select-sm w-auto">
        <option value="">Turno: Todos</option>
        {{range .Turnos}}<option value="{{.}}"{{if eq . $.Turno}} selected{{end}}>Turno: {{.}}</option>{{end}}
      </select>
    </div>
  </div>
{{with .Notes}}
  <div class="alert alert-secondary panel-notes">{{.}}</div>
{{end}}
  <section id="tab-registros">
    <div id="registros-graficos"></div>
  </section>
  <section id="tab-input" class="d-none">
    <div class="btn-group mb-3" role="group">
      <button type="button" class="btn btn-sm btn-outline-secondary active" data-input-filter="setor">Por setor</button>
      <button type="button" class="btn btn-sm btn-outline-secondary" data-input-filter="supervisor">Por supervisor</button>
    </div>
    <div data-input-panel="setor"><p class="text-muted">Dados de input agrupados por setor.</p></div>
    <div data-input-panel="supervisor" class="d-none"><p class="text-muted">Dados de input agrupados por supervisor.</p></div>
  </section>
  <section id="tab-merge" class="d-none">
    <div class="row g-3">
      <div class="col-12 col-xl-5">
        <div class="card h-100">
          <div class="card-header"><h6 class="mb-0">Percentual de Treinamento</h6></div>
          <div class="card-body"><div class="chart-wrapper" style="height: 340px;"><div id="chart-merge-colab-percent"></div></div></div>
        </div>
      </div>
      <div class="col-12 col-xl-7">
        <div class="card h-100">
          <div class="card-header"><h6 class="mb-0">Colaboradores Treinados</h6></div>
          <div class="card-body"><div class="chart-wrapper" style="height: 340px;"><div id="chart-merge-colab"></div></div></div>
        </div>
      </div>
    </div>
  </section>
</div>
{{range .Payloads}}<script type="application/json" id="{{.ID}}">{{.JSON}}</script>
{{end}}</body>
</html>
`
