package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/kiranakart/backend/api/middleware"
	cartsvc "github.com/kiranakart/backend/internal/cart"
	pkgerrors "github.com/kiranakart/backend/pkg/errors"
)

type stubCartService struct {
	addCalled    bool
	addProductID uuid.UUID
	addQty       int
	updateQty    int
	updateItemID uuid.UUID
	removeItemID uuid.UUID
	clearCalled  bool
	listResult   *cartsvc.ListDTO
	err          error
}

func (s *stubCartService) Add(ctx context.Context, userID, productID uuid.UUID, qty int) error {
	s.addCalled = true
	s.addProductID = productID
	s.addQty = qty
	return s.err
}

func (s *stubCartService) UpdateQuantity(ctx context.Context, userID, itemID uuid.UUID, qty int) error {
	s.updateItemID = itemID
	s.updateQty = qty
	return s.err
}

func (s *stubCartService) Remove(ctx context.Context, userID, itemID uuid.UUID) error {
	s.removeItemID = itemID
	return s.err
}

func (s *stubCartService) Clear(ctx context.Context, userID uuid.UUID) error {
	s.clearCalled = true
	return s.err
}

func (s *stubCartService) List(ctx context.Context, userID uuid.UUID) (*cartsvc.ListDTO, error) {
	return s.listResult, s.err
}

func authedRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	return req.WithContext(middleware.WithUserID(req.Context(), uuid.NewString()))
}

func withURLParam(req *http.Request, key, value string) *http.Request {
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
}

func TestCartAddDefaultsQuantityToOne(t *testing.T) {
	svc := &stubCartService{}
	productID := uuid.New()

	req := authedRequest(http.MethodPost, "/cart", `{"product_id":"`+productID.String()+`"}`)
	rec := httptest.NewRecorder()
	CartAdd(svc, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if !svc.addCalled {
		t.Fatal("expected Add to be invoked")
	}
	if svc.addQty != 1 {
		t.Fatalf("expected default quantity 1, got %d", svc.addQty)
	}
	if svc.addProductID != productID {
		t.Fatalf("expected product %s, got %s", productID, svc.addProductID)
	}
}

func TestCartAddRequiresAuthContext(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/cart", strings.NewReader(`{"product_id":"`+uuid.NewString()+`"}`))
	rec := httptest.NewRecorder()
	CartAdd(&stubCartService{}, testLogger()).ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestCartUpdateItemRejectsZeroQuantity(t *testing.T) {
	svc := &stubCartService{}
	itemID := uuid.New()

	req := authedRequest(http.MethodPut, "/cart/"+itemID.String(), `{"quantity":0}`)
	req = withURLParam(req, "cartItemId", itemID.String())
	rec := httptest.NewRecorder()
	CartUpdateItem(svc, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for zero quantity, got %d", rec.Code)
	}
}

func TestCartUpdateItemPassesExactQuantity(t *testing.T) {
	svc := &stubCartService{}
	itemID := uuid.New()

	req := authedRequest(http.MethodPut, "/cart/"+itemID.String(), `{"quantity":4}`)
	req = withURLParam(req, "cartItemId", itemID.String())
	rec := httptest.NewRecorder()
	CartUpdateItem(svc, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if svc.updateQty != 4 || svc.updateItemID != itemID {
		t.Fatalf("unexpected update call: qty=%d item=%s", svc.updateQty, svc.updateItemID)
	}
}

func TestCartRemoveItemNotFound(t *testing.T) {
	svc := &stubCartService{err: pkgerrors.New(pkgerrors.CodeNotFound, "cart item not found")}
	itemID := uuid.New()

	req := authedRequest(http.MethodDelete, "/cart/"+itemID.String(), "")
	req = withURLParam(req, "cartItemId", itemID.String())
	rec := httptest.NewRecorder()
	CartRemoveItem(svc, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestCartClear(t *testing.T) {
	svc := &stubCartService{}
	req := authedRequest(http.MethodDelete, "/cart", "")
	rec := httptest.NewRecorder()
	CartClear(svc, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !svc.clearCalled {
		t.Fatal("expected Clear to be invoked")
	}
}
