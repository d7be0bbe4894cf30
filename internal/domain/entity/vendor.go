package entity

import "time"

// Vendor representa un proveedor registrado explícitamente.
// Inmutable una vez creado: no existe operación de actualización.
type Vendor struct {
	ID        string
	Name      string
	Email     string // único; llave de resolución del correo entrante
	CreatedAt time.Time
}
