package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/kiranakart/backend/api/middleware"
	ordersvc "github.com/kiranakart/backend/internal/orders"
	"github.com/kiranakart/backend/pkg/enums"
	pkgerrors "github.com/kiranakart/backend/pkg/errors"
)

type stubOrderService struct {
	placeInput  ordersvc.PlaceInput
	placeResult *ordersvc.DTO
	placeErr    error
	listResult  []ordersvc.DTO
	listErr     error
	statusInput ordersvc.StatusUpdateInput
	statusErr   error
}

func (s *stubOrderService) Place(ctx context.Context, userID uuid.UUID, input ordersvc.PlaceInput) (*ordersvc.DTO, error) {
	s.placeInput = input
	return s.placeResult, s.placeErr
}

func (s *stubOrderService) ListByUser(ctx context.Context, userID uuid.UUID) ([]ordersvc.DTO, error) {
	return s.listResult, s.listErr
}

func (s *stubOrderService) ListAll(ctx context.Context) ([]ordersvc.DTO, error) {
	return s.listResult, s.listErr
}

func (s *stubOrderService) UpdateStatus(ctx context.Context, orderID uuid.UUID, input ordersvc.StatusUpdateInput) (*ordersvc.DTO, error) {
	s.statusInput = input
	if s.statusErr != nil {
		return nil, s.statusErr
	}
	return &ordersvc.DTO{ID: orderID, Status: input.Status.String()}, nil
}

func TestOrderPlaceForcesCOD(t *testing.T) {
	svc := &stubOrderService{placeResult: &ordersvc.DTO{ID: uuid.New(), Status: enums.OrderStatusPending.String()}}

	body := `{"address":{"city":"Bengaluru","state":"Karnataka","pincode":"560001"}}`
	req := authedRequest(http.MethodPost, "/order/place", body)
	rec := httptest.NewRecorder()
	OrderPlace(svc, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if svc.placeInput.PaymentMethod != enums.PaymentCOD {
		t.Fatalf("expected forced COD, got %s", svc.placeInput.PaymentMethod)
	}
	if svc.placeInput.Payment != nil {
		t.Fatal("COD placement must not carry payment details")
	}
}

func TestOrderPlaceDetailedPassesPaymentTriple(t *testing.T) {
	svc := &stubOrderService{placeResult: &ordersvc.DTO{ID: uuid.New(), Status: enums.OrderStatusPending.String()}}

	body := `{
		"address":{"city":"Bengaluru","state":"Karnataka","pincode":"560001"},
		"payment_method":"razorpay",
		"payment":{"razorpay_order_id":"order_1","razorpay_payment_id":"pay_1","razorpay_signature":"abc"}
	}`
	req := authedRequest(http.MethodPost, "/order/place-detailed", body)
	rec := httptest.NewRecorder()
	OrderPlaceDetailed(svc, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if svc.placeInput.PaymentMethod != enums.PaymentRazorpay {
		t.Fatalf("expected razorpay method, got %s", svc.placeInput.PaymentMethod)
	}
	if svc.placeInput.Payment == nil || svc.placeInput.Payment.RazorpayOrderID != "order_1" {
		t.Fatalf("payment details not forwarded: %+v", svc.placeInput.Payment)
	}
}

func TestOrderPlaceUndeliverableSurfacesDetails(t *testing.T) {
	blocked := uuid.New()
	svc := &stubOrderService{placeErr: pkgerrors.New(pkgerrors.CodeStateConflict, "some items cannot be delivered to this address").
		WithDetails(map[string]any{"undeliverable_product_ids": []uuid.UUID{blocked}})}

	body := `{"address":{"city":"Bengaluru","state":"Karnataka","pincode":"560001"}}`
	req := authedRequest(http.MethodPost, "/order/place", body)
	rec := httptest.NewRecorder()
	OrderPlace(svc, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), blocked.String()) {
		t.Fatalf("expected undeliverable ids in body, got %s", rec.Body.String())
	}
}

func TestOrdersByUserForbidsOtherUsers(t *testing.T) {
	svc := &stubOrderService{}
	caller := uuid.New()
	other := uuid.New()

	req := httptest.NewRequest(http.MethodGet, "/order/user/"+other.String(), nil)
	ctx := middleware.WithUserID(req.Context(), caller.String())
	ctx = middleware.WithRole(ctx, enums.RoleBusiness.String())
	req = withURLParam(req.WithContext(ctx), "userId", other.String())
	rec := httptest.NewRecorder()
	OrdersByUser(svc, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestOrdersByUserAdminMayReadAnyone(t *testing.T) {
	svc := &stubOrderService{listResult: []ordersvc.DTO{}}
	caller := uuid.New()
	other := uuid.New()

	req := httptest.NewRequest(http.MethodGet, "/order/user/"+other.String(), nil)
	ctx := middleware.WithUserID(req.Context(), caller.String())
	ctx = middleware.WithRole(ctx, enums.RoleAdmin.String())
	req = withURLParam(req.WithContext(ctx), "userId", other.String())
	rec := httptest.NewRecorder()
	OrdersByUser(svc, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestOrderStatusUpdate(t *testing.T) {
	svc := &stubOrderService{}
	orderID := uuid.New()

	req := authedRequest(http.MethodPut, "/order/status/"+orderID.String(), `{"status":"confirmed"}`)
	req = withURLParam(req, "orderId", orderID.String())
	rec := httptest.NewRecorder()
	OrderStatusUpdate(svc, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if svc.statusInput.Status != enums.OrderStatusConfirmed {
		t.Fatalf("expected confirmed, got %s", svc.statusInput.Status)
	}
}
