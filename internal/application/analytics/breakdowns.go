package analytics

import (
	"github.com/shopspring/decimal"

	"github.com/cultivo-labs/cultivo-api/internal/domain/entity"
)

// Grouped es un mapa nombre → valor acumulado (cantidad o costo).
type Grouped map[string]decimal.Decimal

// Nested es un mapa de dos niveles, ej. locación → producto → cantidad
// o mes (YYYY-MM) → producto → costo.
type Nested map[string]Grouped

func (g Grouped) add(key string, v decimal.Decimal) {
	g[key] = g[key].Add(v)
}

func (n Nested) add(outer, inner string, v decimal.Decimal) {
	if _, ok := n[outer]; !ok {
		n[outer] = Grouped{}
	}
	n[outer].add(inner, v)
}

// ConsumptionByProduct cantidad consumida (uso) por producto.
func (e *Engine) ConsumptionByProduct() (Grouped, error) {
	s, err := e.load()
	if err != nil {
		return nil, err
	}
	out := Grouped{}
	for _, m := range s.movements {
		if m.Type != entity.MovementTypeUso {
			continue
		}
		for _, line := range m.Lines {
			if p, ok := s.productByID[line.ProductID]; ok {
				out.add(p.Name, line.Quantity)
			}
		}
	}
	return out, nil
}

// ConsumptionByLocation locación → producto → cantidad consumida.
func (e *Engine) ConsumptionByLocation() (Nested, error) {
	s, err := e.load()
	if err != nil {
		return nil, err
	}
	out := Nested{}
	for _, m := range s.movements {
		if m.Type != entity.MovementTypeUso {
			continue
		}
		label := s.locationLabel(m)
		for _, line := range m.Lines {
			if p, ok := s.productByID[line.ProductID]; ok {
				out.add(label, p.Name, line.Quantity)
			}
		}
	}
	return out, nil
}

// ExpensesByStage costo de movimientos por etapa (todos los tipos).
func (e *Engine) ExpensesByStage() (Grouped, error) {
	s, err := e.load()
	if err != nil {
		return nil, err
	}
	out := Grouped{}
	for _, m := range s.movements {
		if m.StageID == "" {
			continue
		}
		if st, ok := s.stageByID[m.StageID]; ok {
			out.add(st.Name, m.Cost)
		}
	}
	return out, nil
}

// ExpensesByLocation costo de movimientos por locación (todos los tipos).
func (e *Engine) ExpensesByLocation() (Grouped, error) {
	s, err := e.load()
	if err != nil {
		return nil, err
	}
	out := Grouped{}
	for _, m := range s.movements {
		out.add(s.locationLabel(m), m.Cost)
	}
	return out, nil
}

// ConsumptionByStage costo de movimientos de uso por etapa.
func (e *Engine) ConsumptionByStage() (Grouped, error) {
	s, err := e.load()
	if err != nil {
		return nil, err
	}
	out := Grouped{}
	for _, m := range s.movements {
		if m.Type != entity.MovementTypeUso || m.StageID == "" {
			continue
		}
		if st, ok := s.stageByID[m.StageID]; ok {
			out.add(st.Name, m.Cost)
		}
	}
	return out, nil
}

// ConsumptionBySubstage costo de movimientos de uso por sub-etapa.
func (e *Engine) ConsumptionBySubstage() (Grouped, error) {
	s, err := e.load()
	if err != nil {
		return nil, err
	}
	out := Grouped{}
	for _, m := range s.movements {
		if m.Type != entity.MovementTypeUso || m.SubstageID == "" {
			continue
		}
		if ss, ok := s.substageByID[m.SubstageID]; ok {
			out.add(ss.Name, m.Cost)
		}
	}
	return out, nil
}

// ExpensesBySubstage costo de movimientos por sub-etapa (todos los tipos).
func (e *Engine) ExpensesBySubstage() (Grouped, error) {
	s, err := e.load()
	if err != nil {
		return nil, err
	}
	out := Grouped{}
	for _, m := range s.movements {
		if m.SubstageID == "" {
			continue
		}
		if ss, ok := s.substageByID[m.SubstageID]; ok {
			out.add(ss.Name, m.Cost)
		}
	}
	return out, nil
}

// ConsumptionByProductPerSubstage sub-etapa → producto → cantidad consumida.
func (e *Engine) ConsumptionByProductPerSubstage() (Nested, error) {
	s, err := e.load()
	if err != nil {
		return nil, err
	}
	out := Nested{}
	for _, m := range s.movements {
		if m.Type != entity.MovementTypeUso || m.SubstageID == "" {
			continue
		}
		ss, ok := s.substageByID[m.SubstageID]
		if !ok {
			continue
		}
		for _, line := range m.Lines {
			if p, ok := s.productByID[line.ProductID]; ok {
				out.add(ss.Name, p.Name, line.Quantity)
			}
		}
	}
	return out, nil
}

// Claves de bucket calendario.
const (
	bucketMonth = "2006-01"
	bucketYear  = "2006"
)

// MonthlyConsumptionByProduct mes (YYYY-MM) → producto → cantidad consumida.
func (e *Engine) MonthlyConsumptionByProduct() (Nested, error) {
	return e.bucketedByProduct(bucketMonth, true)
}

// MonthlyExpenseByProduct mes (YYYY-MM) → producto → costo (todos los tipos).
func (e *Engine) MonthlyExpenseByProduct() (Nested, error) {
	return e.bucketedByProduct(bucketMonth, false)
}

// YearlyConsumptionByProduct año (YYYY) → producto → cantidad consumida.
func (e *Engine) YearlyConsumptionByProduct() (Nested, error) {
	return e.bucketedByProduct(bucketYear, true)
}

// YearlyExpenseByProduct año (YYYY) → producto → costo.
func (e *Engine) YearlyExpenseByProduct() (Nested, error) {
	return e.bucketedByProduct(bucketYear, false)
}

// bucketedByProduct agrupa por bucket calendario y producto. Con consumption
// acumula cantidades de uso; si no, costo congelado de todas las líneas.
func (e *Engine) bucketedByProduct(layout string, consumption bool) (Nested, error) {
	s, err := e.load()
	if err != nil {
		return nil, err
	}
	out := Nested{}
	for _, m := range s.movements {
		if consumption && m.Type != entity.MovementTypeUso {
			continue
		}
		bucket := m.Date.Format(layout)
		for _, line := range m.Lines {
			p, ok := s.productByID[line.ProductID]
			if !ok {
				continue
			}
			if consumption {
				out.add(bucket, p.Name, line.Quantity)
			} else {
				out.add(bucket, p.Name, line.Cost())
			}
		}
	}
	return out, nil
}

// MonthlyConsumptionByLocation mes → locación → cantidad consumida.
func (e *Engine) MonthlyConsumptionByLocation() (Nested, error) {
	return e.bucketedByLocation(bucketMonth, true)
}

// MonthlyExpenseByLocation mes → locación → costo.
func (e *Engine) MonthlyExpenseByLocation() (Nested, error) {
	return e.bucketedByLocation(bucketMonth, false)
}

// YearlyConsumptionByLocation año → locación → cantidad consumida.
func (e *Engine) YearlyConsumptionByLocation() (Nested, error) {
	return e.bucketedByLocation(bucketYear, true)
}

// YearlyExpenseByLocation año → locación → costo.
func (e *Engine) YearlyExpenseByLocation() (Nested, error) {
	return e.bucketedByLocation(bucketYear, false)
}

func (e *Engine) bucketedByLocation(layout string, consumption bool) (Nested, error) {
	s, err := e.load()
	if err != nil {
		return nil, err
	}
	out := Nested{}
	for _, m := range s.movements {
		if consumption && m.Type != entity.MovementTypeUso {
			continue
		}
		bucket := m.Date.Format(layout)
		label := s.locationLabel(m)
		if consumption {
			qty := decimal.Zero
			for _, line := range m.Lines {
				qty = qty.Add(line.Quantity)
			}
			out.add(bucket, label, qty)
		} else {
			out.add(bucket, label, m.Cost)
		}
	}
	return out, nil
}
