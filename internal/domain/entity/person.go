package entity

import "time"

// Person representa clientes y proveedores del negocio.
type Person struct {
	ID        string
	Name      string
	LastNameP string // apellido paterno
	LastNameM string // apellido materno
	Phone     string
	Email     string
	StatusID  string
	CreatedAt time.Time
}

// FullName nombre completo para mostrar en tickets y órdenes.
func (p *Person) FullName() string {
	full := p.Name
	if p.LastNameP != "" {
		full += " " + p.LastNameP
	}
	if p.LastNameM != "" {
		full += " " + p.LastNameM
	}
	return full
}
