package controllers

import (
	"net/http"

	"github.com/hypermart/pos-backend/api/responses"
	"github.com/hypermart/pos-backend/api/validators"
	"github.com/hypermart/pos-backend/internal/restock"
	"github.com/hypermart/pos-backend/pkg/logger"
)

func RestockCreate(svc restock.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		var input restock.Input
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		result, err := svc.Restock(ctx, input)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		status := http.StatusOK
		if result.Created {
			status = http.StatusCreated
		}
		responses.WriteSuccessStatus(w, status, result)
	}
}
