package dashboard

import (
	"html/template"
	"io"

	"github.com/samber/lo"

	"github.com/pivolan/userbase_dashboard/domain/models"
)

var headerTemplate = template.Must(template.New("header").Parse(`
<style>
body { background: {{.Dark}}; color: {{.White}}; font-family: Helvetica, Arial, sans-serif; margin: 0; }
.header { padding: 16px 24px; }
.header h1 { color: {{.Red}}; margin: 0 0 12px 0; }
.filters { display: flex; gap: 24px; align-items: flex-end; flex-wrap: wrap; }
.filters label { display: block; font-size: 12px; margin-bottom: 4px; }
.filters select, .filters input { background: #222; color: {{.White}}; border: 1px solid #444; }
.filters button { background: {{.Red}}; color: {{.White}}; border: 0; padding: 6px 16px; }
.kpis { display: flex; gap: 24px; margin-top: 16px; }
.kpi { background: #222; border-left: 4px solid {{.Red}}; padding: 12px 24px; min-width: 160px; }
.kpi .name { font-size: 12px; text-transform: uppercase; }
.kpi .value { font-size: 28px; font-weight: bold; }
</style>
<div class="header">
  <h1>{{.Title}}</h1>
  <form class="filters" method="get" action="/">
    <div>
      <label for="tier">Subscription Type</label>
      <select id="tier" name="tier" multiple>
        {{- range .Tiers}}
        <option value="{{.Value}}"{{if .Selected}} selected{{end}}>{{.Value}}</option>
        {{- end}}
      </select>
    </div>
    <div>
      <label for="country">Country</label>
      <select id="country" name="country" multiple>
        {{- range .Countries}}
        <option value="{{.Value}}"{{if .Selected}} selected{{end}}>{{.Value}}</option>
        {{- end}}
      </select>
    </div>
    <div>
      <label for="age_min">Age</label>
      <input id="age_min" name="age_min" type="number" min="{{.AgeMin}}" max="{{.AgeMax}}" value="{{.AgeLow}}" list="age_marks">
      <input id="age_max" name="age_max" type="number" min="{{.AgeMin}}" max="{{.AgeMax}}" value="{{.AgeHigh}}" list="age_marks">
      <datalist id="age_marks">
        {{- range .AgeMarks}}
        <option value="{{.}}"></option>
        {{- end}}
      </datalist>
    </div>
    <div><button type="submit">Apply</button></div>
  </form>
  <div class="kpis">
    <div class="kpi"><div class="name">Total Users</div><div class="value">{{.KPI.TotalUsers}}</div></div>
    <div class="kpi"><div class="name">Average Age</div><div class="value">{{.KPI.AverageAge}}</div></div>
    <div class="kpi"><div class="name">Total Revenue</div><div class="value">${{.KPI.TotalRevenue}}</div></div>
  </div>
</div>
`))

type choice struct {
	Value    string
	Selected bool
}

type headerData struct {
	Title            string
	Red, Dark, White template.CSS
	Tiers            []choice
	Countries        []choice
	AgeMin, AgeMax   int
	AgeLow, AgeHigh  int
	AgeMarks         []int
	KPI              models.KPI
}

func choices(all, selected []string) []choice {
	return lo.Map(all, func(v string, _ int) choice {
		return choice{Value: v, Selected: lo.Contains(selected, v)}
	})
}

func renderHeader(w io.Writer, bundle models.AggregateBundle, options models.DatasetOptions, selection models.FilterSelection) error {
	data := headerData{
		Title:     PageTitle,
		Red:       template.CSS(ColorRed),
		Dark:      template.CSS(ColorDark),
		White:     template.CSS(ColorWhite),
		Tiers:     choices(options.Tiers, selection.Tiers()),
		Countries: choices(options.Countries, selection.Countries()),
		AgeMin:    options.AgeMin,
		AgeMax:    options.AgeMax,
		AgeLow:    options.AgeMin,
		AgeHigh:   options.AgeMax,
		AgeMarks:  options.AgeMarks,
		KPI:       bundle.KPI,
	}
	if r, ok := selection.AgeRange(); ok {
		data.AgeLow, data.AgeHigh = r.Min, r.Max
	}
	return headerTemplate.Execute(w, data)
}
