// Package pdf implementa la versión imprimible del resumen de etapa con
// Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre de etapa + ciclo  │  Estado + Fecha          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  DATOS: Locación / Responsable / Duraciones                  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Producto | Cantidad | Unidad | Costo                 │
//	│  ─────────────────────────────────────────────────────────  │
//	│  SUB-ETAPAS: estado y duración de cada una                   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: movimientos / cantidad / costo / costo por día     │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"sort"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/cultivo-labs/cultivo-api/internal/application/analytics"
	"github.com/cultivo-labs/cultivo-api/internal/application/dto"
)

var (
	colorPrimary = &props.Color{Red: 34, Green: 102, Blue: 51}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ analytics.StageReportPDFGenerator = (*MarotoReportGenerator)(nil)

// MarotoReportGenerator implementa analytics.StageReportPDFGenerator.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// GenerateStageReportPDF genera el PDF del resumen y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateStageReportPDF(_ context.Context, report *dto.StageReportDTO) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Resumen de etapa", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(infoRows(report)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(consumptionHeaderRow())
	m.AddRows(consumptionRows(report)...)

	if len(report.Substages) > 0 {
		m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
		m.AddRows(substageRows(report)...)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(report))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: nombre de etapa + ciclo (izq) y estado + fecha de generación (der).
func headerRow(report *dto.StageReportDTO) core.Row {
	title := report.StageName
	if report.CycleName != "" {
		title = report.CycleName
	}
	return row.New(16).Add(
		col.New(7).Add(
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Resumen de etapa", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("Estado: "+report.Status, props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 1,
			}),
			text.New(report.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 9, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

func infoRows(report *dto.StageReportDTO) []core.Row {
	location := report.LocationName
	if location == "" {
		location = "Sin especificar"
	}
	duration := fmt.Sprintf("Esperada: %d días", report.ExpectedDuration)
	if report.ActualDuration != nil {
		duration += fmt.Sprintf("  ·  Real: %d días", *report.ActualDuration)
	}
	var period string
	if report.StartTime != nil {
		period = report.StartTime.Format("02/01/2006")
		if report.EndTime != nil {
			period += " - " + report.EndTime.Format("02/01/2006")
		}
	}
	return []core.Row{
		labelValueRow("Locación", location),
		labelValueRow("Responsable", report.Responsible),
		labelValueRow("Duración", duration),
		labelValueRow("Período", period),
	}
}

func labelValueRow(label, value string) core.Row {
	return row.New(6).Add(
		col.New(3).Add(text.New(label, props.Text{Style: fontstyle.Bold, Size: 9})),
		col.New(9).Add(text.New(value, props.Text{Size: 9})),
	)
}

func consumptionHeaderRow() core.Row {
	header := func(label string, a align.Type) core.Component {
		return text.New(label, props.Text{Style: fontstyle.Bold, Size: 9, Align: a, Color: colorPrimary})
	}
	return row.New(7).Add(
		col.New(5).Add(header("Producto", align.Left)),
		col.New(3).Add(header("Cantidad", align.Right)),
		col.New(1).Add(header("Unidad", align.Left)),
		col.New(3).Add(header("Costo", align.Right)),
	)
}

func consumptionRows(report *dto.StageReportDTO) []core.Row {
	names := make([]string, 0, len(report.ConsumptionByProduct))
	for name := range report.ConsumptionByProduct {
		names = append(names, name)
	}
	sort.Strings(names)

	rows := make([]core.Row, 0, len(names))
	for _, name := range names {
		usage := report.ConsumptionByProduct[name]
		rows = append(rows, row.New(6).Add(
			col.New(5).Add(text.New(name, props.Text{Size: 9})),
			col.New(3).Add(text.New(usage.Quantity.String(), props.Text{Size: 9, Align: align.Right})),
			col.New(1).Add(text.New(usage.Unit, props.Text{Size: 9})),
			col.New(3).Add(text.New("$ "+usage.Cost.StringFixed(2), props.Text{Size: 9, Align: align.Right})),
		))
	}
	if len(rows) == 0 {
		rows = append(rows, row.New(6).Add(
			col.New(12).Add(text.New("Sin movimientos registrados", props.Text{Size: 9, Color: colorGray})),
		))
	}
	return rows
}

func substageRows(report *dto.StageReportDTO) []core.Row {
	rows := []core.Row{
		row.New(7).Add(
			col.New(12).Add(text.New("Sub-etapas", props.Text{Style: fontstyle.Bold, Size: 9, Color: colorPrimary})),
		),
	}
	for _, sub := range report.Substages {
		duration := fmt.Sprintf("esperada %d días", sub.ExpectedDuration)
		if sub.ActualDuration != nil {
			duration += fmt.Sprintf(", real %d días", *sub.ActualDuration)
		}
		rows = append(rows, row.New(6).Add(
			col.New(5).Add(text.New(sub.Name, props.Text{Size: 9})),
			col.New(3).Add(text.New(sub.Status, props.Text{Size: 9})),
			col.New(4).Add(text.New(duration, props.Text{Size: 9, Align: align.Right, Color: colorGray})),
		))
	}
	return rows
}

func totalsRow(report *dto.StageReportDTO) core.Row {
	return row.New(14).Add(
		col.New(3).Add(
			text.New("Movimientos", props.Text{Size: 8, Color: colorGray}),
			text.New(fmt.Sprintf("%d", report.MovementCount), props.Text{Style: fontstyle.Bold, Size: 11, Top: 5}),
		),
		col.New(3).Add(
			text.New("Cantidad total", props.Text{Size: 8, Color: colorGray}),
			text.New(report.TotalQuantity.String(), props.Text{Style: fontstyle.Bold, Size: 11, Top: 5}),
		),
		col.New(3).Add(
			text.New("Costo total", props.Text{Size: 8, Color: colorGray}),
			text.New("$ "+report.TotalCost.StringFixed(2), props.Text{Style: fontstyle.Bold, Size: 11, Top: 5}),
		),
		col.New(3).Add(
			text.New("Costo por día", props.Text{Size: 8, Color: colorGray}),
			text.New("$ "+report.CostPerDay.StringFixed(2), props.Text{Style: fontstyle.Bold, Size: 11, Top: 5}),
		),
	)
}
