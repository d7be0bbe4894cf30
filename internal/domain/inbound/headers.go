// Package inbound define el contrato de parseo de cabeceras del correo entrante:
// la resolución de entidades basada en direcciones. Funciones puras, sin red ni
// dependencias de la capa HTTP, para que sean testeables de forma aislada.
//
// Gramática:
//
//	from: <cualquier texto> "<" dirección ">"      → dirección del proveedor
//	to:   local "+" rfpID "@" dominio              → id de la RFP (plus-addressing)
package inbound

import (
	"regexp"

	"github.com/jhoicas/procura-api/internal/domain"
)

var (
	// vendorAddressRe captura la dirección entre corchetes angulares del 'from'.
	vendorAddressRe = regexp.MustCompile(`<(.+)>`)
	// rfpIDRe captura el sufijo plus del local-part del 'to'.
	rfpIDRe = regexp.MustCompile(`\+(.+)@`)
)

// VendorAddress extrae la dirección del proveedor de la cabecera 'from'.
// Devuelve ErrMalformedFromHeader si no hay dirección entre <...>.
func VendorAddress(fromHeader string) (string, error) {
	m := vendorAddressRe.FindStringSubmatch(fromHeader)
	if m == nil {
		return "", domain.ErrMalformedFromHeader
	}
	return m[1], nil
}

// RFPID extrae el identificador de RFP embebido en la cabecera 'to' según la
// convención de plus-addressing (local+id@dominio).
// Devuelve ErrMalformedToHeader si la convención no está presente.
func RFPID(toHeader string) (string, error) {
	m := rfpIDRe.FindStringSubmatch(toHeader)
	if m == nil {
		return "", domain.ErrMalformedToHeader
	}
	return m[1], nil
}
