package dto

import "time"

// AddVendorRequest registro explícito de un proveedor.
type AddVendorRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// VendorResponse proveedor en respuestas.
type VendorResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}
