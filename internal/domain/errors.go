package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// Los handlers los mapean a códigos HTTP con errors.Is; los adaptadores
// los envuelven con fmt.Errorf("...: %w", ...) para conservar el contexto.
var (
	ErrNotFound       = errors.New("recurso no encontrado")
	ErrVendorNotFound = errors.New("proveedor no encontrado")
	ErrRFPNotFound    = errors.New("RFP no encontrada")
	ErrValidation     = errors.New("entrada inválida")
	ErrDuplicate      = errors.New("recurso duplicado")

	// ErrMalformedFromHeader y ErrMalformedToHeader son subtipos de validación:
	// la convención de direcciones del correo entrante no se cumple.
	ErrMalformedFromHeader = errors.New("cabecera 'from' sin dirección entre <...>")
	ErrMalformedToHeader   = errors.New("cabecera 'to' sin identificador de RFP (convención local+id@dominio)")

	// ErrExtractionFormat: el modelo de extracción devolvió algo que no es el
	// JSON acordado, o le faltan campos obligatorios tras el parseo.
	ErrExtractionFormat = errors.New("respuesta del modelo no cumple el formato JSON acordado")

	// ErrUpstream: un colaborador externo (modelo, SMTP) falló o no responde.
	// Un solo intento siempre; no hay política de reintentos.
	ErrUpstream = errors.New("servicio externo no disponible o con error")

	// ErrNoProposals: la recomendación no está definida sin propuestas.
	ErrNoProposals = errors.New("no hay propuestas para esta RFP")

	// ErrConflict: la transición de estado perdió la carrera (CAS sobre status).
	ErrConflict = errors.New("conflicto con el estado actual")
)
