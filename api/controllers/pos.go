package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hypermart/pos-backend/api/responses"
	"github.com/hypermart/pos-backend/api/validators"
	"github.com/hypermart/pos-backend/internal/pos"
	"github.com/hypermart/pos-backend/pkg/logger"
)

type posAddItemRequest struct {
	Term     string `json:"term" validate:"required"`
	Quantity int64  `json:"quantity" validate:"required,gt=0"`
}

type posUpdateLineRequest struct {
	Quantity int64 `json:"quantity" validate:"gte=0"`
}

type posCommitRequest struct {
	TableNumber *string `json:"table_number,omitempty"`
}

func PosOpenCart(manager *pos.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cart := manager.Open(r.Context())
		responses.WriteSuccessStatus(w, http.StatusCreated, cart)
	}
}

func PosGetCart(manager *pos.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		cart, err := manager.Get(ctx, chi.URLParam(r, "sessionId"))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, cart)
	}
}

func PosAddItem(manager *pos.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		var input posAddItemRequest
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		cart, err := manager.AddItem(ctx, chi.URLParam(r, "sessionId"), input.Term, input.Quantity)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, cart)
	}
}

func PosUpdateLine(manager *pos.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		itemID, err := pathID(r, "itemId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		var input posUpdateLineRequest
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		cart, err := manager.UpdateQuantity(ctx, chi.URLParam(r, "sessionId"), itemID, input.Quantity)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, cart)
	}
}

func PosRemoveLine(manager *pos.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		itemID, err := pathID(r, "itemId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		cart, err := manager.RemoveItem(ctx, chi.URLParam(r, "sessionId"), itemID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, cart)
	}
}

func PosClearCart(manager *pos.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		cart, err := manager.Clear(ctx, chi.URLParam(r, "sessionId"))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, cart)
	}
}

func PosCloseCart(manager *pos.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if err := manager.Close(ctx, chi.URLParam(r, "sessionId")); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "closed"})
	}
}

func PosCommit(manager *pos.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		var input posCommitRequest
		if r.ContentLength > 0 {
			if err := validators.DecodeJSONBody(r, &input); err != nil {
				responses.WriteError(ctx, logg, w, err)
				return
			}
		}
		result, err := manager.Commit(ctx, chi.URLParam(r, "sessionId"), input.TableNumber)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}
