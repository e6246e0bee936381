package httpserver

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/leademy-studio/shusha-rest/internal/domain"
	"github.com/leademy-studio/shusha-rest/internal/service/catalog"
)

type stubCatalogSvc struct {
	menu  *catalog.Menu
	err   error
	ready bool
}

func (s *stubCatalogSvc) Menu(context.Context) (*catalog.Menu, error) {
	return s.menu, s.err
}

func (s *stubCatalogSvc) Ready() bool {
	return s.ready
}

type stubOrderSvc struct {
	accepted *domain.Order
	err      error
	last     domain.Order
	calls    int
}

func (s *stubOrderSvc) Accept(_ context.Context, in domain.Order) (*domain.Order, error) {
	s.calls++
	s.last = in
	return s.accepted, s.err
}

type stubReservationSvc struct {
	accepted *domain.Reservation
	err      error
}

func (s *stubReservationSvc) Accept(_ context.Context, _ domain.Reservation) (*domain.Reservation, error) {
	return s.accepted, s.err
}

func logDiscard() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func testRouter(t *testing.T, deps Deps) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router, err := buildRouter(logDiscard(), deps, Options{})
	if err != nil {
		t.Fatalf("build router: %v", err)
	}
	return router
}

func TestCatalogHandler_OK(t *testing.T) {
	menu := &catalog.Menu{
		Items:           []domain.Product{{ID: "p1", Name: "Том ям", Price: 690, Category: "Супы"}},
		OrganizationID:  "org-1",
		TerminalGroupID: "tg-1",
	}
	router := testRouter(t, Deps{CatalogSvc: &stubCatalogSvc{menu: menu}})

	req := httptest.NewRequest(http.MethodGet, "/api/catalog", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	for _, want := range []string{`"organizationId":"org-1"`, `"terminalGroupId":"tg-1"`, `"Том ям"`} {
		if !strings.Contains(rec.Body.String(), want) {
			t.Fatalf("body missing %s: %s", want, rec.Body.String())
		}
	}
}

func TestCatalogHandler_Unavailable(t *testing.T) {
	router := testRouter(t, Deps{CatalogSvc: &stubCatalogSvc{err: catalog.ErrMenuUnavailable}})
	req := httptest.NewRequest(http.MethodGet, "/api/catalog", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}

const orderBody = `{
	"customer": {"name": "Анна", "phone": "+79261234567"},
	"delivery": {"method": "pickup"},
	"payment": "cash",
	"items": [{"id": "a", "name": "Хачапури", "price": 500, "quantity": 2}],
	"subtotal": 1000,
	"discount": 100,
	"total": 900
}`

func TestOrdersHandler_Created(t *testing.T) {
	orderSvc := &stubOrderSvc{accepted: &domain.Order{ID: "ord-1"}}
	router := testRouter(t, Deps{OrderSvc: orderSvc})

	req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(orderBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"id":"ord-1"`) || !strings.Contains(rec.Body.String(), `"status":"accepted"`) {
		t.Fatalf("unexpected ack: %s", rec.Body.String())
	}
	if orderSvc.last.Total != 900 || len(orderSvc.last.Items) != 1 || orderSvc.last.Items[0].Quantity != 2 {
		t.Fatalf("service received %+v", orderSvc.last)
	}
}

func TestOrdersHandler_MissingRequiredFields(t *testing.T) {
	orderSvc := &stubOrderSvc{accepted: &domain.Order{ID: "ord-1"}}
	router := testRouter(t, Deps{OrderSvc: orderSvc})

	body := `{"delivery": {"method": "pickup"}, "payment": "cash", "items": []}`
	req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if orderSvc.calls != 0 {
		t.Fatalf("binding failure must not reach the service")
	}
}

func TestOrdersHandler_ValidationFaultIs400(t *testing.T) {
	orderSvc := &stubOrderSvc{err: domain.ErrInvalidOrder}
	router := testRouter(t, Deps{OrderSvc: orderSvc})

	req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(orderBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestOrdersHandler_ServiceFailureIs500(t *testing.T) {
	orderSvc := &stubOrderSvc{err: errors.New("boom")}
	router := testRouter(t, Deps{OrderSvc: orderSvc})

	req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(orderBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}

func TestReservationsHandler_OK(t *testing.T) {
	router := testRouter(t, Deps{ReservationSvc: &stubReservationSvc{accepted: &domain.Reservation{ID: "res-1"}}})

	body := `{"date": "2026-09-01", "time": "19:00", "guests": 4, "phone": "+79261234567"}`
	req := httptest.NewRequest(http.MethodPost, "/api/reservations", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"success":true`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestReservationsHandler_RelayFailureIs500(t *testing.T) {
	router := testRouter(t, Deps{ReservationSvc: &stubReservationSvc{err: errors.New("relay down")}})

	body := `{"date": "2026-09-01", "time": "19:00", "guests": 4, "phone": "+79261234567"}`
	req := httptest.NewRequest(http.MethodPost, "/api/reservations", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"success":false`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestHealthAndReadiness(t *testing.T) {
	router := testRouter(t, Deps{CatalogSvc: &stubCatalogSvc{ready: false}})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("healthz = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("readyz before menu load = %d", rec.Code)
	}

	ready := testRouter(t, Deps{CatalogSvc: &stubCatalogSvc{ready: true}})
	rec = httptest.NewRecorder()
	ready.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("readyz after menu load = %d", rec.Code)
	}
}
