package ports

import "context"

// OutboundEmail mensaje transaccional listo para despachar.
type OutboundEmail struct {
	To       string
	Subject  string
	HTMLBody string
	// ReplyTo lleva la dirección de ingesta con el id de la RFP codificado por
	// plus-addressing, para que la respuesta del proveedor caiga en el pipeline.
	ReplyTo string
}

// MailSender puerto de salida para el correo transaccional (solo envío).
// SendBatch despacha todos los mensajes como un único lote: o se entrega el
// lote al colaborador o falla completo (un intento, sin reintentos).
type MailSender interface {
	SendBatch(ctx context.Context, messages []OutboundEmail) error
}
