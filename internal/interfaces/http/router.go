package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/procura-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	VendorUC   *usecase.VendorUseCase
	RFPUC      *usecase.RFPUseCase
	ProposalUC *usecase.ProposalUseCase
	RecUC      *usecase.RecommendationUseCase
	PDFUC      *usecase.RFPPDFUseCase
	IngestUC   *usecase.IngestProposalUseCase
}

// Router registra las rutas de la API. Todas públicas: este servicio no
// modela autenticación.
func Router(app *fiber.App, deps RouterDeps) {
	// Vendors
	vendors := app.Group("/vendors")
	vendorHandler := NewVendorHandler(deps.VendorUC)
	vendors.Get("/", vendorHandler.List)
	vendors.Post("/add", vendorHandler.Add)

	// RFPs (ciclo de vida + recomendación + PDF)
	rfps := app.Group("/rfps")
	rfpHandler := NewRFPHandler(deps.RFPUC, deps.RecUC, deps.PDFUC)
	rfps.Get("/", rfpHandler.List)
	rfps.Post("/create-from-text", rfpHandler.CreateFromText)
	rfps.Get("/:id", rfpHandler.GetByID)
	rfps.Post("/:id/send", rfpHandler.Send)
	rfps.Post("/:id/recommendation", rfpHandler.Recommend)
	rfps.Get("/:id/pdf", rfpHandler.PDF)

	// Proposals (solo lectura; la escritura entra por el webhook)
	proposals := app.Group("/proposals")
	proposalHandler := NewProposalHandler(deps.ProposalUC)
	proposals.Get("/rfp/:rfpId", proposalHandler.ListByRFP)

	// Webhook de correo entrante
	email := app.Group("/api/email")
	emailHandler := NewEmailHandler(deps.IngestUC)
	email.Post("/receive", emailHandler.Receive)
}
