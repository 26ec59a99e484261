package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/posfin/pos-finanzas-api/internal/domain"
	"github.com/posfin/pos-finanzas-api/internal/domain/entity"
	"github.com/posfin/pos-finanzas-api/internal/domain/repository"
)

// Adaptadores para las tablas de referencia. Las búsquedas por nombre son
// case-insensitive: los datos sembrados a mano no siempre respetan mayúsculas.

var _ repository.StatusRepository = (*StatusRepo)(nil)

// StatusRepo implementación de StatusRepository sobre PostgreSQL.
type StatusRepo struct {
	q Querier
}

// NewStatusRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStatusRepository(q Querier) *StatusRepo {
	return &StatusRepo{q: q}
}

// GetByID obtiene un estado por ID.
func (r *StatusRepo) GetByID(id string) (*entity.Status, error) {
	var s entity.Status
	err := r.q.QueryRow(context.Background(),
		`SELECT id, estado FROM estados WHERE id = $1`, id,
	).Scan(&s.ID, &s.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get estado: %w", err)
	}
	return &s, nil
}

// FindByName busca un estado por nombre.
func (r *StatusRepo) FindByName(name string) (*entity.Status, error) {
	var s entity.Status
	err := r.q.QueryRow(context.Background(),
		`SELECT id, estado FROM estados WHERE LOWER(estado) = LOWER($1)`, name,
	).Scan(&s.ID, &s.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find estado: %w", err)
	}
	return &s, nil
}

var _ repository.LocationRepository = (*LocationRepo)(nil)

// LocationRepo implementación de LocationRepository sobre PostgreSQL.
type LocationRepo struct {
	q Querier
}

// NewLocationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLocationRepository(q Querier) *LocationRepo {
	return &LocationRepo{q: q}
}

// GetByID obtiene una ubicación por ID.
func (r *LocationRepo) GetByID(id string) (*entity.Location, error) {
	var l entity.Location
	err := r.q.QueryRow(context.Background(),
		`SELECT id, ubicacion FROM ubicaciones WHERE id = $1`, id,
	).Scan(&l.ID, &l.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get ubicación: %w", err)
	}
	return &l, nil
}

// FindFirst devuelve la primera ubicación registrada.
func (r *LocationRepo) FindFirst() (*entity.Location, error) {
	var l entity.Location
	err := r.q.QueryRow(context.Background(),
		`SELECT id, ubicacion FROM ubicaciones ORDER BY ubicacion ASC LIMIT 1`,
	).Scan(&l.ID, &l.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find ubicación: %w", err)
	}
	return &l, nil
}

var _ repository.PaymentMethodRepository = (*PaymentMethodRepo)(nil)

// PaymentMethodRepo implementación de PaymentMethodRepository sobre PostgreSQL.
type PaymentMethodRepo struct {
	q Querier
}

// NewPaymentMethodRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPaymentMethodRepository(q Querier) *PaymentMethodRepo {
	return &PaymentMethodRepo{q: q}
}

// GetByID obtiene un método de pago por ID.
func (r *PaymentMethodRepo) GetByID(id string) (*entity.PaymentMethod, error) {
	var m entity.PaymentMethod
	err := r.q.QueryRow(context.Background(),
		`SELECT id, metodo_pago FROM metodos_pago WHERE id = $1`, id,
	).Scan(&m.ID, &m.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get método de pago: %w", err)
	}
	return &m, nil
}

// FindByName busca un método de pago por nombre.
func (r *PaymentMethodRepo) FindByName(name string) (*entity.PaymentMethod, error) {
	var m entity.PaymentMethod
	err := r.q.QueryRow(context.Background(),
		`SELECT id, metodo_pago FROM metodos_pago WHERE LOWER(metodo_pago) = LOWER($1)`, name,
	).Scan(&m.ID, &m.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find método de pago: %w", err)
	}
	return &m, nil
}

var _ repository.MovementTypeRepository = (*MovementTypeRepo)(nil)

// MovementTypeRepo implementación de MovementTypeRepository sobre PostgreSQL.
type MovementTypeRepo struct {
	q Querier
}

// NewMovementTypeRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementTypeRepository(q Querier) *MovementTypeRepo {
	return &MovementTypeRepo{q: q}
}

// GetByID obtiene un tipo de movimiento por ID.
func (r *MovementTypeRepo) GetByID(id string) (*entity.MovementType, error) {
	var t entity.MovementType
	err := r.q.QueryRow(context.Background(),
		`SELECT id, movimiento FROM tipo_movimientos WHERE id = $1`, id,
	).Scan(&t.ID, &t.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get tipo de movimiento: %w", err)
	}
	return &t, nil
}

// FindByName busca un tipo de movimiento por nombre.
func (r *MovementTypeRepo) FindByName(name string) (*entity.MovementType, error) {
	var t entity.MovementType
	err := r.q.QueryRow(context.Background(),
		`SELECT id, movimiento FROM tipo_movimientos WHERE LOWER(movimiento) = LOWER($1)`, name,
	).Scan(&t.ID, &t.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find tipo de movimiento: %w", err)
	}
	return &t, nil
}

// Create persiste un tipo de movimiento (ej. "Compra" en su primer uso).
func (r *MovementTypeRepo) Create(movementType *entity.MovementType) error {
	_, err := r.q.Exec(context.Background(),
		`INSERT INTO tipo_movimientos (id, movimiento) VALUES ($1, $2)`,
		movementType.ID, movementType.Name,
	)
	if err != nil {
		if uniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert tipo de movimiento: %w", err)
	}
	return nil
}
