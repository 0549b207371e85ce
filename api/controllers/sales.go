package controllers

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hypermart/pos-backend/api/responses"
	"github.com/hypermart/pos-backend/internal/receipts"
	"github.com/hypermart/pos-backend/internal/sales"
	"github.com/hypermart/pos-backend/pkg/logger"
)

func SalesList(svc sales.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		list, err := svc.List(ctx, r.URL.Query().Get("from"), r.URL.Query().Get("to"))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

func SalesGet(svc sales.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		sale, err := svc.FindByInvoiceNumber(ctx, chi.URLParam(r, "invoiceNumber"))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, sale)
	}
}

func SalesReceipt(svc sales.Service, gen *receipts.Generator, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		invoiceNumber := chi.URLParam(r, "invoiceNumber")
		sale, err := svc.FindByInvoiceNumber(ctx, invoiceNumber)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		data, err := gen.Render(ctx, sale)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", invoiceNumber+".pdf"))
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(data); err != nil {
			if logg != nil {
				logg.Error(ctx, "writing receipt response", err)
			}
		}
	}
}
