package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/hypermart/pos-backend/internal/restock"
	"github.com/hypermart/pos-backend/pkg/db/models"
)

type stubRestockService struct {
	result *restock.Result
	err    error
	got    restock.Input
}

func (s *stubRestockService) Restock(ctx context.Context, input restock.Input) (*restock.Result, error) {
	s.got = input
	return s.result, s.err
}

func TestRestockCreateNewItem(t *testing.T) {
	svc := &stubRestockService{result: &restock.Result{
		Item:    &models.Item{ID: 3, Barcode: "999", Name: "999", Price: decimal.Zero, Quantity: 5},
		Created: true,
	}}
	handler := RestockCreate(svc, nil)

	body := strings.NewReader(`{"barcode":"999","quantity":5}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/restock", body)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d", resp.Code)
	}
	if svc.got.Barcode != "999" || svc.got.Quantity != 5 {
		t.Fatalf("unexpected input forwarded: %+v", svc.got)
	}

	var envelope struct {
		Data restock.Result `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !envelope.Data.Created {
		t.Fatal("expected created flag in response")
	}
}

func TestRestockCreateRejectsUnknownFields(t *testing.T) {
	handler := RestockCreate(&stubRestockService{}, nil)

	body := strings.NewReader(`{"barcode":"999","quantity":5,"bogus":true}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/restock", body)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestRestockCreateMissingQuantity(t *testing.T) {
	handler := RestockCreate(&stubRestockService{}, nil)

	body := strings.NewReader(`{"barcode":"999"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/restock", body)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}
