// Package excel implementa la exportación del catálogo a planilla XLSX con
// excelize: una hoja por colección, con encabezados fijos.
package excel

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/cultivo-labs/cultivo-api/internal/application/export"
)

var _ export.Exporter = (*CatalogExporter)(nil)

// CatalogExporter implementa export.Exporter usando excelize.
type CatalogExporter struct{}

// NewCatalogExporter construye el exportador.
func NewCatalogExporter() *CatalogExporter { return &CatalogExporter{} }

const dateLayout = "2006-01-02 15:04"

// Export serializa todas las colecciones, una hoja por cada una. Chequea el
// contexto entre hojas para cortar si el deadline expira.
func (e *CatalogExporter) Export(ctx context.Context, data *export.CatalogData) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheets := []struct {
		name  string
		write func(*excelize.File, string) error
	}{
		{"Productos", func(f *excelize.File, s string) error { return e.writeProducts(f, s, data) }},
		{"Locaciones", func(f *excelize.File, s string) error { return e.writeLocations(f, s, data) }},
		{"Etapas", func(f *excelize.File, s string) error { return e.writeStages(f, s, data) }},
		{"Subetapas", func(f *excelize.File, s string) error { return e.writeSubstages(f, s, data) }},
		{"Movimientos", func(f *excelize.File, s string) error { return e.writeMovements(f, s, data) }},
		{"Notas", func(f *excelize.File, s string) error { return e.writePostIts(f, s, data) }},
		{"Recetas", func(f *excelize.File, s string) error { return e.writeRecipes(f, s, data) }},
		{"Imagenes", func(f *excelize.File, s string) error { return e.writeImages(f, s, data) }},
	}

	for i, sheet := range sheets {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if i == 0 {
			// La primera hoja reemplaza a la "Sheet1" por defecto.
			if err := f.SetSheetName("Sheet1", sheet.name); err != nil {
				return nil, fmt.Errorf("renombrar hoja: %w", err)
			}
		} else {
			if _, err := f.NewSheet(sheet.name); err != nil {
				return nil, fmt.Errorf("crear hoja %s: %w", sheet.name, err)
			}
		}
		if err := sheet.write(f, sheet.name); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("escribir planilla: %w", err)
	}
	return buf.Bytes(), nil
}

func writeHeader(f *excelize.File, sheet string, headers []string) error {
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, rowNo int, values []any) error {
	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, rowNo)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return err
		}
	}
	return nil
}

func formatTimePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateLayout)
}

func formatIntPtr(n *int) any {
	if n == nil {
		return ""
	}
	return *n
}

func (e *CatalogExporter) writeProducts(f *excelize.File, sheet string, data *export.CatalogData) error {
	headers := []string{"ID", "Nombre", "Unidad", "Precio", "Maneja stock", "Stock inicial", "Stock actual", "Stock mínimo", "Responsable", "Creado"}
	if err := writeHeader(f, sheet, headers); err != nil {
		return err
	}
	for i, p := range data.Products {
		values := []any{
			p.ID, p.Name, p.Unit, p.Price.String(), p.HasStock,
			p.InitialStock.String(), p.CurrentStock.String(), p.MinStock.String(),
			p.Responsible, p.CreatedAt.Format(dateLayout),
		}
		if err := writeRow(f, sheet, i+2, values); err != nil {
			return err
		}
	}
	return nil
}

func (e *CatalogExporter) writeLocations(f *excelize.File, sheet string, data *export.CatalogData) error {
	headers := []string{"ID", "Nombre", "Descripción", "Responsable", "Creado"}
	if err := writeHeader(f, sheet, headers); err != nil {
		return err
	}
	for i, l := range data.Locations {
		values := []any{l.ID, l.Name, l.Description, l.Responsible, l.CreatedAt.Format(dateLayout)}
		if err := writeRow(f, sheet, i+2, values); err != nil {
			return err
		}
	}
	return nil
}

func (e *CatalogExporter) writeStages(f *excelize.File, sheet string, data *export.CatalogData) error {
	headers := []string{"ID", "Nombre", "Ciclo", "Estado", "Locación", "Duración esperada", "Duración real", "Inicio", "Fin", "Responsable"}
	if err := writeHeader(f, sheet, headers); err != nil {
		return err
	}
	for i, s := range data.Stages {
		values := []any{
			s.ID, s.Name, s.CycleName, s.Status, s.LocationID,
			s.ExpectedDuration, formatIntPtr(s.ActualDuration),
			formatTimePtr(s.StartTime), formatTimePtr(s.EndTime), s.Responsible,
		}
		if err := writeRow(f, sheet, i+2, values); err != nil {
			return err
		}
	}
	return nil
}

func (e *CatalogExporter) writeSubstages(f *excelize.File, sheet string, data *export.CatalogData) error {
	headers := []string{"ID", "Nombre", "Etapa", "Estado", "Duración esperada", "Duración real", "Inicio", "Fin", "Responsable"}
	if err := writeHeader(f, sheet, headers); err != nil {
		return err
	}
	for i, s := range data.Substages {
		values := []any{
			s.ID, s.Name, s.StageID, s.Status,
			s.ExpectedDuration, formatIntPtr(s.ActualDuration),
			formatTimePtr(s.StartTime), formatTimePtr(s.EndTime), s.Responsible,
		}
		if err := writeRow(f, sheet, i+2, values); err != nil {
			return err
		}
	}
	return nil
}

// writeMovements escribe una fila por línea de movimiento, repitiendo la
// cabecera del movimiento en cada fila.
func (e *CatalogExporter) writeMovements(f *excelize.File, sheet string, data *export.CatalogData) error {
	headers := []string{"ID", "Tipo", "Fecha", "Producto", "Cantidad", "Unidad", "Precio unitario", "Costo línea", "Etapa", "Subetapa", "Locación", "Responsable", "Observaciones"}
	if err := writeHeader(f, sheet, headers); err != nil {
		return err
	}
	rowNo := 2
	for _, m := range data.Movements {
		for _, l := range m.Lines {
			values := []any{
				m.ID, m.Type, m.Date.Format(dateLayout),
				l.ProductID, l.Quantity.String(), l.Unit, l.UnitPrice.String(), l.Cost().String(),
				m.StageID, m.SubstageID, m.LocationName, m.Responsible, m.Observations,
			}
			if err := writeRow(f, sheet, rowNo, values); err != nil {
				return err
			}
			rowNo++
		}
	}
	return nil
}

func (e *CatalogExporter) writePostIts(f *excelize.File, sheet string, data *export.CatalogData) error {
	headers := []string{"ID", "Título", "Contenido", "Color", "Creado"}
	if err := writeHeader(f, sheet, headers); err != nil {
		return err
	}
	for i, p := range data.PostIts {
		values := []any{p.ID, p.Title, p.Content, p.Color, p.CreatedAt.Format(dateLayout)}
		if err := writeRow(f, sheet, i+2, values); err != nil {
			return err
		}
	}
	return nil
}

func (e *CatalogExporter) writeRecipes(f *excelize.File, sheet string, data *export.CatalogData) error {
	headers := []string{"ID", "Nombre", "Archivo", "Tipo", "Subido"}
	if err := writeHeader(f, sheet, headers); err != nil {
		return err
	}
	for i, r := range data.Recipes {
		values := []any{r.ID, r.Name, r.Filename, r.FileType, r.UploadedAt.Format(dateLayout)}
		if err := writeRow(f, sheet, i+2, values); err != nil {
			return err
		}
	}
	return nil
}

func (e *CatalogExporter) writeImages(f *excelize.File, sheet string, data *export.CatalogData) error {
	headers := []string{"ID", "Título", "Archivo", "Comentario", "Subido"}
	if err := writeHeader(f, sheet, headers); err != nil {
		return err
	}
	for i, img := range data.RecipeImages {
		values := []any{img.ID, img.Title, img.Filename, img.Comment, img.UploadedAt.Format(dateLayout)}
		if err := writeRow(f, sheet, i+2, values); err != nil {
			return err
		}
	}
	return nil
}
