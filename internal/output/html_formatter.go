package output

import (
	"bytes"
	_ "embed"
	"html/template"

	json "github.com/goccy/go-json"

	"github.com/captaininvest/immosim/internal/domain"
)

// HTMLFormatter produces a standalone HTML report with one chart per scenario.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string      { return "html" }
func (h HTMLFormatter) Extension() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"curr":     FormatCurrency,
	"pct":      FormatPercentage,
	"rebate":   FormatRebate,
	"strategy": strategyLabel,
	"add":      func(i, j int) int { return i + j },
	"json": func(v interface{}) template.JS {
		b, _ := json.Marshal(v)
		return template.JS(b)
	},
}).Parse(htmlTemplateSource))

// ChartSeries is the yearly comparison plotted for one scenario.
type ChartSeries struct {
	Years        []int     `json:"years"`
	NetDisposal  []float64 `json:"net_disposal"`
	Alternative  []float64 `json:"alternative"`
	CumCashFlow  []float64 `json:"cumulative_cash_flow"`
	PropertyGain []float64 `json:"property_gain"`
}

// YearlySeries samples a projection at every year end. PropertyGain is the
// cumulative cash flow plus the net disposal value at that point.
func YearlySeries(res *domain.SimulationResult) ChartSeries {
	var s ChartSeries
	if res == nil {
		return s
	}
	ppy := res.Variant.PeriodsPerYear()
	var cum float64
	for _, row := range res.Rows {
		cum += row.CashFlow.InexactFloat64()
		if row.Period%ppy != 0 {
			continue
		}
		disposal := row.NetDisposalValue.InexactFloat64()
		s.Years = append(s.Years, row.HoldingYear)
		s.NetDisposal = append(s.NetDisposal, disposal)
		s.Alternative = append(s.Alternative, row.AlternativeBalance.InexactFloat64())
		s.CumCashFlow = append(s.CumCashFlow, cum)
		s.PropertyGain = append(s.PropertyGain, cum+disposal)
	}
	return s
}

type htmlScenario struct {
	domain.ScenarioResult
	Index       int
	Lines       []string
	Series      ChartSeries
	YearEndRows []domain.ProjectionRow
}

func (h HTMLFormatter) Format(report *domain.Report) ([]byte, error) {
	var buf bytes.Buffer
	scenarios := make([]htmlScenario, 0, len(report.Scenarios))
	for i, sc := range report.Scenarios {
		scenarios = append(scenarios, htmlScenario{
			ScenarioResult: sc,
			Index:          i,
			Lines:          ScenarioAssumptions(sc),
			Series:         YearlySeries(sc.Result),
			YearEndRows:    sc.Result.YearEndRows(),
		})
	}
	data := struct {
		Report      *domain.Report
		Scenarios   []htmlScenario
		Assumptions []string
	}{
		Report:      report,
		Scenarios:   scenarios,
		Assumptions: reportAssumptions(report),
	}
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
