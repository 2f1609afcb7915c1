package ledger

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cultivo-labs/cultivo-api/internal/application/dto"
	"github.com/cultivo-labs/cultivo-api/internal/domain"
	"github.com/cultivo-labs/cultivo-api/internal/domain/entity"
	"github.com/cultivo-labs/cultivo-api/internal/domain/repository"
)

// MovementUseCase registra, edita, elimina y lista movimientos del libro.
//
// Registro y eliminación corren dentro del TxRunner con bloqueo por producto
// (GetForUpdate), de modo que movimientos concurrentes contra el mismo
// producto nunca pierden actualizaciones de stock. El precio unitario se
// congela en cada línea al registrar; el costo histórico no cambia aunque el
// precio del producto cambie después.
//
// Con PerLocation activo el libro mantiene además saldos por (producto,
// locación): uso/compra operan contra el saldo de la locación indicada y la
// transferencia debita origen y acredita destino en la misma transacción.
type MovementUseCase struct {
	txRunner     TxRunner
	movementRepo repository.MovementRepository
	productRepo  repository.ProductRepository
	stageRepo    repository.StageRepository
	substageRepo repository.SubstageRepository
	locationRepo repository.LocationRepository
	perLocation  bool
}

// NewMovementUseCase construye el caso de uso. perLocation activa el modo de
// saldos por locación (STOCK_PER_LOCATION).
func NewMovementUseCase(
	txRunner TxRunner,
	movementRepo repository.MovementRepository,
	productRepo repository.ProductRepository,
	stageRepo repository.StageRepository,
	substageRepo repository.SubstageRepository,
	locationRepo repository.LocationRepository,
	perLocation bool,
) *MovementUseCase {
	return &MovementUseCase{
		txRunner:     txRunner,
		movementRepo: movementRepo,
		productRepo:  productRepo,
		stageRepo:    stageRepo,
		substageRepo: substageRepo,
		locationRepo: locationRepo,
		perLocation:  perLocation,
	}
}

// Register valida el movimiento, congela precios y aplica el efecto de stock
// por tipo dentro de una transacción. Devuelve el movimiento creado.
func (uc *MovementUseCase) Register(ctx context.Context, in dto.RegisterMovementRequest) (*entity.Movement, error) {
	if !entity.ValidMovementType(in.Type) || in.Responsible == "" || len(in.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, l := range in.Lines {
		if l.ProductID == "" || !l.Quantity.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
	}
	if in.Type == entity.MovementTypeTransferencia && uc.perLocation {
		if in.FromLocationID == "" || in.ToLocationID == "" || in.FromLocationID == in.ToLocationID {
			return nil, domain.ErrInvalidInput
		}
	}

	locationName, err := uc.resolveContext(in)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	mov := &entity.Movement{
		ID:             uuid.New().String(),
		Type:           in.Type,
		StageID:        in.StageID,
		SubstageID:     in.SubstageID,
		LocationID:     in.LocationID,
		LocationName:   locationName,
		FromLocationID: in.FromLocationID,
		ToLocationID:   in.ToLocationID,
		Responsible:    in.Responsible,
		Observations:   in.Observations,
		Date:           now,
	}

	err = uc.txRunner.Run(ctx, func(
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
		locStockRepo repository.LocationStockRepository,
	) error {
		total := decimal.Zero
		for _, lr := range in.Lines {
			product, err := productRepo.GetForUpdate(lr.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return domain.ErrNotFound
			}
			line := entity.MovementLine{
				ProductID: product.ID,
				Quantity:  lr.Quantity,
				Unit:      product.Unit,
				UnitPrice: product.Price,
			}
			if err := uc.applyEffect(mov, product, line, now, productRepo, locStockRepo); err != nil {
				return err
			}
			mov.Lines = append(mov.Lines, line)
			total = total.Add(line.Cost())
		}
		mov.Cost = total
		return movRepo.Create(mov)
	})
	if err != nil {
		return nil, err
	}
	return mov, nil
}

// applyEffect aplica el efecto de stock de una línea según el tipo.
// uso resta, compra suma, transferencia no altera el stock global
// (en modo por locación mueve el saldo de origen a destino).
func (uc *MovementUseCase) applyEffect(
	mov *entity.Movement,
	product *entity.Product,
	line entity.MovementLine,
	now time.Time,
	productRepo repository.ProductRepository,
	locStockRepo repository.LocationStockRepository,
) error {
	if !product.HasStock {
		// Variables monitoreadas (sensores) no llevan inventario.
		return nil
	}
	switch mov.Type {
	case entity.MovementTypeUso:
		if product.CurrentStock.LessThan(line.Quantity) {
			return domain.ErrInsufficientStock
		}
		if uc.perLocation && mov.LocationID != "" {
			if err := uc.adjustLocation(locStockRepo, product.ID, mov.LocationID, line.Quantity.Neg(), now); err != nil {
				return err
			}
		}
		return productRepo.UpdateStock(product.ID, product.CurrentStock.Sub(line.Quantity))
	case entity.MovementTypeCompra:
		if uc.perLocation && mov.LocationID != "" {
			if err := uc.adjustLocation(locStockRepo, product.ID, mov.LocationID, line.Quantity, now); err != nil {
				return err
			}
		}
		return productRepo.UpdateStock(product.ID, product.CurrentStock.Add(line.Quantity))
	case entity.MovementTypeTransferencia:
		if !uc.perLocation {
			// Modo global: la transferencia solo documenta el traslado.
			return nil
		}
		if err := uc.adjustLocation(locStockRepo, product.ID, mov.FromLocationID, line.Quantity.Neg(), now); err != nil {
			return err
		}
		return uc.adjustLocation(locStockRepo, product.ID, mov.ToLocationID, line.Quantity, now)
	}
	return domain.ErrInvalidInput
}

// adjustLocation suma delta al saldo (producto, locación), bloqueando la fila.
// Rechaza saldos negativos.
func (uc *MovementUseCase) adjustLocation(
	locStockRepo repository.LocationStockRepository,
	productID, locationID string,
	delta decimal.Decimal,
	now time.Time,
) error {
	stock, err := locStockRepo.GetForUpdate(productID, locationID)
	if errors.Is(err, domain.ErrNotFound) {
		// Primer movimiento del producto en esta locación: saldo cero.
		stock = &entity.LocationStock{ProductID: productID, LocationID: locationID, Quantity: decimal.Zero}
	} else if err != nil {
		return err
	}
	newQty := stock.Quantity.Add(delta)
	if newQty.IsNegative() {
		return domain.ErrInsufficientStock
	}
	stock.Quantity = newQty
	stock.UpdatedAt = now
	return locStockRepo.Upsert(stock)
}

// resolveContext verifica que etapa/sub-etapa/locación referenciadas existan
// y devuelve el nombre descriptivo de la locación.
func (uc *MovementUseCase) resolveContext(in dto.RegisterMovementRequest) (string, error) {
	if in.StageID != "" {
		stage, err := uc.stageRepo.GetByID(in.StageID)
		if err != nil {
			return "", err
		}
		if stage == nil {
			return "", domain.ErrNotFound
		}
	}
	if in.SubstageID != "" {
		substage, err := uc.substageRepo.GetByID(in.SubstageID)
		if err != nil {
			return "", err
		}
		if substage == nil {
			return "", domain.ErrNotFound
		}
	}
	var locationName string
	for _, id := range []string{in.LocationID, in.FromLocationID, in.ToLocationID} {
		if id == "" {
			continue
		}
		loc, err := uc.locationRepo.GetByID(id)
		if err != nil {
			return "", err
		}
		if loc == nil {
			return "", domain.ErrNotFound
		}
		if id == in.LocationID {
			locationName = loc.Name
		}
	}
	return locationName, nil
}

// Update edita el contexto de un movimiento. Las líneas y cantidades son
// inmutables: cambiarlas exigiría revertir y re-aplicar efectos de stock.
func (uc *MovementUseCase) Update(id string, in dto.UpdateMovementRequest) (*entity.Movement, error) {
	mov, err := uc.movementRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if mov == nil {
		return nil, domain.ErrNotFound
	}
	if in.StageID != nil {
		mov.StageID = *in.StageID
	}
	if in.SubstageID != nil {
		mov.SubstageID = *in.SubstageID
	}
	if in.LocationID != nil {
		mov.LocationID = *in.LocationID
		mov.LocationName = ""
		if *in.LocationID != "" {
			loc, err := uc.locationRepo.GetByID(*in.LocationID)
			if err != nil {
				return nil, err
			}
			if loc == nil {
				return nil, domain.ErrNotFound
			}
			mov.LocationName = loc.Name
		}
	}
	if in.Responsible != nil {
		if *in.Responsible == "" {
			return nil, domain.ErrInvalidInput
		}
		mov.Responsible = *in.Responsible
	}
	if in.Observations != nil {
		mov.Observations = *in.Observations
	}
	if err := uc.movementRepo.Update(mov); err != nil {
		return nil, err
	}
	return mov, nil
}

// Delete elimina un movimiento revirtiendo su efecto de stock en la misma
// transacción, para que el stock siga siendo consistente con el libro.
func (uc *MovementUseCase) Delete(ctx context.Context, id string) error {
	return uc.txRunner.Run(ctx, func(
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
		locStockRepo repository.LocationStockRepository,
	) error {
		mov, err := movRepo.GetByID(id)
		if err != nil {
			return err
		}
		if mov == nil {
			return domain.ErrNotFound
		}
		now := time.Now()
		for _, line := range mov.Lines {
			product, err := productRepo.GetForUpdate(line.ProductID)
			if errors.Is(err, domain.ErrNotFound) {
				// Producto eliminado: nada que revertir.
				continue
			}
			if err != nil {
				return err
			}
			if !product.HasStock {
				continue
			}
			switch mov.Type {
			case entity.MovementTypeUso:
				if uc.perLocation && mov.LocationID != "" {
					if err := uc.adjustLocation(locStockRepo, product.ID, mov.LocationID, line.Quantity, now); err != nil {
						return err
					}
				}
				if err := productRepo.UpdateStock(product.ID, product.CurrentStock.Add(line.Quantity)); err != nil {
					return err
				}
			case entity.MovementTypeCompra:
				if product.CurrentStock.LessThan(line.Quantity) {
					return domain.ErrInsufficientStock
				}
				if uc.perLocation && mov.LocationID != "" {
					if err := uc.adjustLocation(locStockRepo, product.ID, mov.LocationID, line.Quantity.Neg(), now); err != nil {
						return err
					}
				}
				if err := productRepo.UpdateStock(product.ID, product.CurrentStock.Sub(line.Quantity)); err != nil {
					return err
				}
			case entity.MovementTypeTransferencia:
				if uc.perLocation {
					if err := uc.adjustLocation(locStockRepo, product.ID, mov.ToLocationID, line.Quantity.Neg(), now); err != nil {
						return err
					}
					if err := uc.adjustLocation(locStockRepo, product.ID, mov.FromLocationID, line.Quantity, now); err != nil {
						return err
					}
				}
			}
		}
		return movRepo.Delete(id)
	})
}

// List devuelve los movimientos filtrados, enriquecidos con nombres de
// producto, etapa y sub-etapa para la vista.
func (uc *MovementUseCase) List(in dto.ListMovementsRequest) ([]dto.MovementResponse, error) {
	filter := repository.MovementFilter{
		Type:       in.Type,
		LocationID: in.LocationID,
		StageID:    in.StageID,
	}
	if in.From != "" {
		t, err := parseDate(in.From)
		if err != nil {
			return nil, err
		}
		filter.From = &t
	}
	if in.To != "" {
		t, err := parseDate(in.To)
		if err != nil {
			return nil, err
		}
		end := t.Add(24*time.Hour - time.Nanosecond)
		filter.To = &end
	}
	movements, err := uc.movementRepo.List(filter)
	if err != nil {
		return nil, err
	}

	out := make([]dto.MovementResponse, 0, len(movements))
	for _, mov := range movements {
		out = append(out, uc.toResponse(mov))
	}
	return out, nil
}

// GetByID devuelve un movimiento enriquecido.
func (uc *MovementUseCase) GetByID(id string) (*dto.MovementResponse, error) {
	mov, err := uc.movementRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if mov == nil {
		return nil, domain.ErrNotFound
	}
	resp := uc.toResponse(mov)
	return &resp, nil
}

func (uc *MovementUseCase) toResponse(mov *entity.Movement) dto.MovementResponse {
	resp := dto.MovementResponse{
		ID:             mov.ID,
		Type:           mov.Type,
		StageID:        mov.StageID,
		SubstageID:     mov.SubstageID,
		LocationID:     mov.LocationID,
		LocationName:   mov.LocationName,
		FromLocationID: mov.FromLocationID,
		ToLocationID:   mov.ToLocationID,
		Responsible:    mov.Responsible,
		Observations:   mov.Observations,
		Cost:           mov.Cost,
		Date:           mov.Date,
	}
	for _, line := range mov.Lines {
		name := "Desconocido"
		if p, err := uc.productRepo.GetByID(line.ProductID); err == nil && p != nil {
			name = p.Name
		}
		resp.Lines = append(resp.Lines, dto.MovementLineResponse{
			ProductID:   line.ProductID,
			ProductName: name,
			Quantity:    line.Quantity,
			Unit:        line.Unit,
			UnitPrice:   line.UnitPrice,
			Cost:        line.Cost(),
		})
	}
	if mov.StageID != "" {
		resp.StageName = "Desconocida"
		if s, err := uc.stageRepo.GetByID(mov.StageID); err == nil && s != nil {
			resp.StageName = s.Name
		}
	}
	if mov.SubstageID != "" {
		resp.SubstageName = "Desconocida"
		if s, err := uc.substageRepo.GetByID(mov.SubstageID); err == nil && s != nil {
			resp.SubstageName = s.Name
		}
	}
	return resp
}

// parseDate acepta RFC 3339 o YYYY-MM-DD.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Time{}, domain.ErrInvalidInput
}
