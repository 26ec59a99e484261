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

var _ repository.PersonRepository = (*PersonRepo)(nil)

// PersonRepo implementación de PersonRepository sobre PostgreSQL (usable con pool o tx).
type PersonRepo struct {
	q Querier
}

// NewPersonRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPersonRepository(q Querier) *PersonRepo {
	return &PersonRepo{q: q}
}

// Create persiste una persona (cliente o proveedor).
func (r *PersonRepo) Create(person *entity.Person) error {
	query := `
		INSERT INTO personas (id, nombre, apellido_paterno, apellido_materno, telefono, email, estados_id, fecha_registro)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		person.ID, person.Name, person.LastNameP, person.LastNameM,
		person.Phone, person.Email, person.StatusID, person.CreatedAt,
	)
	if err != nil {
		if uniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert persona: %w", err)
	}
	return nil
}

// GetByID obtiene una persona por ID.
func (r *PersonRepo) GetByID(id string) (*entity.Person, error) {
	query := `
		SELECT id, nombre, apellido_paterno, apellido_materno, telefono, email, estados_id, fecha_registro
		FROM personas WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// FindFirst devuelve la persona más antigua registrada (cliente por defecto).
func (r *PersonRepo) FindFirst() (*entity.Person, error) {
	query := `
		SELECT id, nombre, apellido_paterno, apellido_materno, telefono, email, estados_id, fecha_registro
		FROM personas ORDER BY fecha_registro ASC LIMIT 1`
	return r.scanOne(r.q.QueryRow(context.Background(), query))
}

// List lista personas con paginación.
func (r *PersonRepo) List(limit, offset int) ([]*entity.Person, error) {
	query := `
		SELECT id, nombre, apellido_paterno, apellido_materno, telefono, email, estados_id, fecha_registro
		FROM personas ORDER BY fecha_registro ASC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list personas: %w", err)
	}
	defer rows.Close()

	var people []*entity.Person
	for rows.Next() {
		var p entity.Person
		if err := rows.Scan(&p.ID, &p.Name, &p.LastNameP, &p.LastNameM, &p.Phone, &p.Email, &p.StatusID, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan persona: %w", err)
		}
		people = append(people, &p)
	}
	return people, rows.Err()
}

func (r *PersonRepo) scanOne(row pgx.Row) (*entity.Person, error) {
	var p entity.Person
	err := row.Scan(&p.ID, &p.Name, &p.LastNameP, &p.LastNameM, &p.Phone, &p.Email, &p.StatusID, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get persona: %w", err)
	}
	return &p, nil
}

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación de UserRepository sobre PostgreSQL.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador. Pasar pool o tx (Querier).
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

// Create persiste un usuario operador.
func (r *UserRepo) Create(user *entity.User) error {
	query := `
		INSERT INTO usuarios (id, nombre, contrasena, rol, estados_id, fecha_creacion)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		user.ID, user.Name, user.PasswordHash, user.Role, user.StatusID, user.CreatedAt,
	)
	if err != nil {
		if uniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert usuario: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID.
func (r *UserRepo) GetByID(id string) (*entity.User, error) {
	query := `
		SELECT id, nombre, contrasena, rol, estados_id, fecha_creacion
		FROM usuarios WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetByName obtiene un usuario por nombre (login).
func (r *UserRepo) GetByName(name string) (*entity.User, error) {
	query := `
		SELECT id, nombre, contrasena, rol, estados_id, fecha_creacion
		FROM usuarios WHERE nombre = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, name))
}

func (r *UserRepo) scanOne(row pgx.Row) (*entity.User, error) {
	var u entity.User
	err := row.Scan(&u.ID, &u.Name, &u.PasswordHash, &u.Role, &u.StatusID, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get usuario: %w", err)
	}
	return &u, nil
}
