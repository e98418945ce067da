package http

import (
	"github.com/gofiber/fiber/v2"

	appledger "github.com/despensa/despensa-api/internal/application/ledger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Ledger *appledger.UseCase
	Query  *appledger.QueryUseCase
	PDF    *appledger.PDFUseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Libro de movimientos
	movements := api.Group("/movements")
	movementHandler := NewMovementHandler(deps.Ledger, deps.Query, deps.PDF)
	movements.Get("/", movementHandler.List)
	movements.Post("/", movementHandler.Create)
	movements.Get("/:id", movementHandler.GetByID)
	movements.Put("/:id", movementHandler.Update)
	movements.Delete("/:id", movementHandler.Delete)
	movements.Get("/:id/invoice", movementHandler.DownloadInvoicePDF)

	// Catálogo (solo lectura)
	ingredients := api.Group("/ingredients")
	ingredientHandler := NewIngredientHandler(deps.Query)
	ingredients.Get("/", ingredientHandler.List)
}
