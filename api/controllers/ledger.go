package controllers

import (
	"net/http"

	"github.com/hypermart/pos-backend/api/responses"
	"github.com/hypermart/pos-backend/internal/ledger"
	"github.com/hypermart/pos-backend/pkg/enums"
	"github.com/hypermart/pos-backend/pkg/logger"
)

func ledgerFilter(r *http.Request) ledger.Filter {
	q := r.URL.Query()
	return ledger.Filter{
		From: q.Get("from"),
		To:   q.Get("to"),
		Type: enums.LedgerEntryType(q.Get("type")),
	}
}

func LedgerList(svc ledger.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		entries, err := svc.List(ctx, ledgerFilter(r))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, entries)
	}
}

func LedgerGet(svc ledger.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		id, err := pathID(r, "entryId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		entry, err := svc.Get(ctx, id)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, entry)
	}
}

func LedgerExport(svc ledger.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		filter := ledgerFilter(r)

		// Validate before any bytes go out so errors still render as JSON.
		if _, err := svc.List(ctx, filter); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="ledger.csv"`)
		if err := svc.ExportCSV(ctx, filter, w); err != nil {
			if logg != nil {
				logg.Error(ctx, "streaming ledger export", err)
			}
		}
	}
}
