package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hypermart/pos-backend/api/controllers"
	"github.com/hypermart/pos-backend/api/middleware"
	"github.com/hypermart/pos-backend/internal/catalog"
	"github.com/hypermart/pos-backend/internal/ledger"
	"github.com/hypermart/pos-backend/internal/pos"
	"github.com/hypermart/pos-backend/internal/receipts"
	"github.com/hypermart/pos-backend/internal/restock"
	"github.com/hypermart/pos-backend/internal/sales"
	"github.com/hypermart/pos-backend/pkg/config"
	"github.com/hypermart/pos-backend/pkg/db"
	"github.com/hypermart/pos-backend/pkg/logger"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	client *db.Client,
	catalogService catalog.Service,
	salesService sales.Service,
	ledgerService ledger.Service,
	restockService restock.Service,
	posManager *pos.Manager,
	receiptGen *receipts.Generator,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, client))
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/items", func(r chi.Router) {
			r.Get("/", controllers.CatalogList(catalogService, logg))
			r.Post("/", controllers.CatalogCreate(catalogService, logg))
			r.Get("/low-stock", controllers.CatalogLowStock(catalogService, logg))
			r.Get("/{itemId}", controllers.CatalogGet(catalogService, logg))
			r.Patch("/{itemId}", controllers.CatalogUpdate(catalogService, logg))
			r.Delete("/{itemId}", controllers.CatalogDelete(catalogService, logg))
		})

		r.Route("/carts", func(r chi.Router) {
			r.Post("/", controllers.PosOpenCart(posManager, logg))
			r.Route("/{sessionId}", func(r chi.Router) {
				r.Get("/", controllers.PosGetCart(posManager, logg))
				r.Delete("/", controllers.PosCloseCart(posManager, logg))
				r.Post("/items", controllers.PosAddItem(posManager, logg))
				r.Patch("/items/{itemId}", controllers.PosUpdateLine(posManager, logg))
				r.Delete("/items/{itemId}", controllers.PosRemoveLine(posManager, logg))
				r.Post("/clear", controllers.PosClearCart(posManager, logg))
				r.Post("/commit", controllers.PosCommit(posManager, logg))
			})
		})

		r.Route("/sales", func(r chi.Router) {
			r.Get("/", controllers.SalesList(salesService, logg))
			r.Get("/{invoiceNumber}", controllers.SalesGet(salesService, logg))
			r.Get("/{invoiceNumber}/receipt", controllers.SalesReceipt(salesService, receiptGen, logg))
		})

		r.Route("/ledger", func(r chi.Router) {
			r.Get("/", controllers.LedgerList(ledgerService, logg))
			r.Get("/export", controllers.LedgerExport(ledgerService, logg))
			r.Get("/{entryId}", controllers.LedgerGet(ledgerService, logg))
		})

		r.Post("/restock", controllers.RestockCreate(restockService, logg))
	})

	return r
}
