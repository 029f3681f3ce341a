package service

import (
	"context"
	"errors"

	"rapifarma/internal/dto"
	"rapifarma/internal/finanzas"
	"rapifarma/internal/model"
	"rapifarma/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type BancoService interface {
	Crear(ctx context.Context, req dto.CrearBancoRequest) (*dto.BancoResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.BancoResponse, error)
	Listar(ctx context.Context) ([]dto.BancoResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarBancoRequest) (*dto.BancoResponse, error)
	Desactivar(ctx context.Context, id uuid.UUID) error
	// RegistrarMovimiento appends one ledger entry. Depositos add to the
	// balance; transferencias, cheques y retiros subtract and are rejected
	// when the account lacks funds.
	RegistrarMovimiento(ctx context.Context, bancoID uuid.UUID, tipo string, req dto.RegistrarMovimientoRequest) (*dto.MovimientoBancoResponse, error)
	ListarMovimientos(ctx context.Context, req dto.FiltroMovimientosRequest) ([]dto.MovimientoBancoResponse, error)
	// Conciliar re-plays the ledger from the saldo inicial and compares the
	// projection against the stored disponible.
	Conciliar(ctx context.Context, bancoID uuid.UUID) (*dto.ConciliacionBancoResponse, error)
}

type bancoService struct {
	repo repository.BancoRepository
}

func NewBancoService(repo repository.BancoRepository) BancoService {
	return &bancoService{repo: repo}
}

func (s *bancoService) Crear(ctx context.Context, req dto.CrearBancoRequest) (*dto.BancoResponse, error) {
	farmaciaID, err := parseUUIDPtr(req.FarmaciaID)
	if err != nil {
		return nil, err
	}
	b := &model.Banco{
		FarmaciaID:   farmaciaID,
		Nombre:       req.Nombre,
		NumeroCuenta: req.NumeroCuenta,
		Divisa:       req.Divisa,
		SaldoInicial: req.Disponible,
		Disponible:   req.Disponible,
		Activo:       true,
	}
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}
	resp := toBancoResponse(b)
	return &resp, nil
}

func (s *bancoService) Obtener(ctx context.Context, id uuid.UUID) (*dto.BancoResponse, error) {
	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("banco no encontrado")
	}
	resp := toBancoResponse(b)
	return &resp, nil
}

func (s *bancoService) Listar(ctx context.Context) ([]dto.BancoResponse, error) {
	bancos, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.BancoResponse, len(bancos))
	for i := range bancos {
		resp[i] = toBancoResponse(&bancos[i])
	}
	return resp, nil
}

func (s *bancoService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarBancoRequest) (*dto.BancoResponse, error) {
	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("banco no encontrado")
	}
	if req.Nombre != "" {
		b.Nombre = req.Nombre
	}
	if req.NumeroCuenta != nil {
		b.NumeroCuenta = req.NumeroCuenta
	}
	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}
	resp := toBancoResponse(b)
	return &resp, nil
}

func (s *bancoService) Desactivar(ctx context.Context, id uuid.UUID) error {
	return s.repo.SoftDelete(ctx, id)
}

func (s *bancoService) RegistrarMovimiento(ctx context.Context, bancoID uuid.UUID, tipo string, req dto.RegistrarMovimientoRequest) (*dto.MovimientoBancoResponse, error) {
	switch tipo {
	case finanzas.MovimientoDeposito, finanzas.MovimientoTransferencia,
		finanzas.MovimientoCheque, finanzas.MovimientoRetiro:
	default:
		return nil, errors.New("tipo de movimiento inválido")
	}

	banco, err := s.repo.FindByID(ctx, bancoID)
	if err != nil {
		return nil, errors.New("banco no encontrado")
	}
	if !banco.Activo {
		return nil, errors.New("la cuenta bancaria está inactiva")
	}
	fecha, err := parseFecha(req.Fecha)
	if err != nil {
		return nil, err
	}

	// Monto llega en la divisa de la cuenta; si el original venía en Bs y la
	// cuenta es USD, se convierte aquí con la tasa promedio y esa tasa queda
	// registrada en el movimiento.
	monto := req.Monto
	var tasaAplicada *decimal.Decimal
	if req.MontoEnBs != nil && req.TasaPromedio != nil && banco.Divisa == finanzas.DivisaUSD {
		monto = finanzas.Normalizar(*req.MontoEnBs, finanzas.DivisaBs, *req.TasaPromedio).Round(2)
		tasaAplicada = req.TasaPromedio
	}
	if !monto.IsPositive() {
		return nil, errors.New("el monto del movimiento debe ser mayor a cero")
	}

	mov := &model.MovimientoBanco{
		BancoID:      bancoID,
		FarmaciaID:   banco.FarmaciaID,
		Tipo:         tipo,
		Monto:        monto,
		TasaAplicada: tasaAplicada,
		Descripcion:  req.Descripcion,
		Referencia:   req.Referencia,
		Fecha:        fecha,
	}

	err = s.repo.RegistrarMovimiento(ctx, bancoID, mov, func(b *model.Banco) error {
		if tipo == finanzas.MovimientoDeposito {
			b.Disponible = b.Disponible.Add(monto)
			return nil
		}
		if err := finanzas.ValidarEgreso(b.Disponible, monto); err != nil {
			return err
		}
		b.Disponible = b.Disponible.Sub(monto)
		return nil
	})
	if err != nil {
		return nil, err
	}

	resp := toMovimientoResponse(mov)
	return &resp, nil
}

func (s *bancoService) ListarMovimientos(ctx context.Context, req dto.FiltroMovimientosRequest) ([]dto.MovimientoBancoResponse, error) {
	var bancoID, farmaciaID *uuid.UUID
	if req.BancoID != "" {
		id, err := uuid.Parse(req.BancoID)
		if err != nil {
			return nil, errors.New("bancoId inválido")
		}
		bancoID = &id
	}
	if req.FarmaciaID != "" {
		id, err := uuid.Parse(req.FarmaciaID)
		if err != nil {
			return nil, errors.New("farmaciaId inválido")
		}
		farmaciaID = &id
	}

	movs, err := s.repo.ListMovimientos(ctx, bancoID, farmaciaID)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.MovimientoBancoResponse, len(movs))
	for i := range movs {
		resp[i] = toMovimientoResponse(&movs[i])
	}
	return resp, nil
}

func (s *bancoService) Conciliar(ctx context.Context, bancoID uuid.UUID) (*dto.ConciliacionBancoResponse, error) {
	banco, err := s.repo.FindByID(ctx, bancoID)
	if err != nil {
		return nil, errors.New("banco no encontrado")
	}
	movs, err := s.repo.ListMovimientos(ctx, &bancoID, nil)
	if err != nil {
		return nil, err
	}

	aplicados := make([]finanzas.MovimientoAplicado, len(movs))
	for i, m := range movs {
		aplicados[i] = finanzas.MovimientoAplicado{Tipo: m.Tipo, Monto: m.Monto}
	}
	proyectado := finanzas.ProyectarSaldo(banco.SaldoInicial, aplicados)

	return &dto.ConciliacionBancoResponse{
		BancoID:    banco.ID.String(),
		Disponible: banco.Disponible,
		Proyectado: proyectado,
		Cuadrado:   proyectado.Equal(banco.Disponible),
	}, nil
}

func toBancoResponse(b *model.Banco) dto.BancoResponse {
	return dto.BancoResponse{
		ID:           b.ID.String(),
		FarmaciaID:   uuidStrPtr(b.FarmaciaID),
		Nombre:       b.Nombre,
		NumeroCuenta: b.NumeroCuenta,
		Divisa:       b.Divisa,
		Disponible:   b.Disponible,
		Activo:       b.Activo,
	}
}

func toMovimientoResponse(m *model.MovimientoBanco) dto.MovimientoBancoResponse {
	return dto.MovimientoBancoResponse{
		ID:           m.ID.String(),
		BancoID:      m.BancoID.String(),
		FarmaciaID:   uuidStrPtr(m.FarmaciaID),
		Tipo:         m.Tipo,
		Monto:        m.Monto,
		TasaAplicada: m.TasaAplicada,
		Descripcion:  m.Descripcion,
		Referencia:   m.Referencia,
		Fecha:        fechaStr(m.Fecha),
	}
}
