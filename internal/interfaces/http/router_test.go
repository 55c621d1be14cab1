package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/financas-casa/internal/application/dto"
	"github.com/jhoicas/financas-casa/internal/application/ledger"
	"github.com/jhoicas/financas-casa/internal/domain"
	"github.com/jhoicas/financas-casa/internal/domain/entity"
	domledger "github.com/jhoicas/financas-casa/internal/domain/ledger"
	apphttp "github.com/jhoicas/financas-casa/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Stubs de los casos de uso
// ──────────────────────────────────────────────────────────────────────────────

type stubAuth struct{}

func (stubAuth) Login(_ context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	if in.Password != "certa" {
		return nil, domain.ErrUnauthorized
	}
	return &dto.LoginResponse{Token: "tok", Person: in.Person, ExpiresIn: 60}, nil
}

type stubRecorder struct {
	purchase ledger.PurchaseInput
	limit    ledger.LimitInput
	err      error
}

func (s *stubRecorder) result() (*ledger.Result, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &ledger.Result{BatchID: "lote-1", Inserted: 3, Replicated: 1}, nil
}

func (s *stubRecorder) RecordPurchase(_ context.Context, in ledger.PurchaseInput) (*ledger.Result, error) {
	s.purchase = in
	return s.result()
}

func (s *stubRecorder) RecordBill(context.Context, ledger.BillInput) (*ledger.Result, error) {
	return s.result()
}

func (s *stubRecorder) RecordSalary(context.Context, ledger.SalaryInput) (*ledger.Result, error) {
	return s.result()
}

func (s *stubRecorder) RecordReceipt(context.Context, ledger.ReceiptInput) (*ledger.Result, error) {
	return s.result()
}

func (s *stubRecorder) RecordDeposit(context.Context, ledger.SavingsInput) (*ledger.Result, error) {
	return s.result()
}

func (s *stubRecorder) RecordWithdrawal(context.Context, ledger.SavingsInput) (*ledger.Result, error) {
	return s.result()
}

func (s *stubRecorder) SetLimit(_ context.Context, in ledger.LimitInput) (*entity.Limit, error) {
	s.limit = in
	if s.err != nil {
		return nil, s.err
	}
	month, err := entity.ParseMonthYear(in.MonthYear)
	if err != nil {
		return nil, err
	}
	return &entity.Limit{ID: 1, MonthStart: month.Start(), Person: entity.Person(in.Person), Amount: in.Amount}, nil
}

type stubReplicator struct {
	month entity.Month
}

func (s *stubReplicator) Replicate(_ context.Context, month entity.Month) (*ledger.Result, error) {
	s.month = month
	return &ledger.Result{BatchID: "lote-2", Replicated: 2}, nil
}

type stubViewer struct {
	months []ledger.MonthLedger
}

func (s *stubViewer) Overview(context.Context) ([]ledger.MonthLedger, error) {
	return s.months, nil
}

func (s *stubViewer) Month(_ context.Context, month entity.Month) (*ledger.MonthLedger, error) {
	for i := range s.months {
		if s.months[i].Month == month {
			return &s.months[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

type stubStatement struct{}

func (stubStatement) Generate(context.Context, entity.Month) ([]byte, error) {
	return []byte("%PDF-1.7"), nil
}

func sampleMonth() ledger.MonthLedger {
	rows := []entity.Movement{{
		ID:          1,
		Date:        time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC),
		Description: entity.SalaryDescription,
		Amount:      decimal.NewFromInt(5000),
		Kind:        entity.KindSalary,
		Person:      entity.PersonPtr(entity.PersonYuri),
	}}
	return ledger.MonthLedger{
		Month:     entity.NewMonth(2024, time.January),
		Movements: rows,
		Totals:    domledger.Fold(rows, decimal.Zero, decimal.Zero),
	}
}

func newTestApp(rec *stubRecorder, rep *stubReplicator) *fiber.App {
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AppName:    "financas-casa",
		AuthUC:     stubAuth{},
		RecorderUC: rec,
		Replicator: rep,
		ViewerUC:   &stubViewer{months: []ledger.MonthLedger{sampleMonth()}},
		Statement:  stubStatement{},
		JWTSecret:  testJWTSecret,
	})
	return app
}

func send(t *testing.T, app *fiber.App, method, path, auth string, body any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestRouter_Health(t *testing.T) {
	resp := send(t, newTestApp(&stubRecorder{}, &stubReplicator{}), http.MethodGet, "/health", "", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRouter_Login(t *testing.T) {
	app := newTestApp(&stubRecorder{}, &stubReplicator{})

	resp := send(t, app, http.MethodPost, "/api/auth/login", "", map[string]string{"person": "Yuri", "password": "certa"})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = send(t, app, http.MethodPost, "/api/auth/login", "", map[string]string{"person": "Yuri", "password": "errada"})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = send(t, app, http.MethodPost, "/api/auth/login", "", map[string]string{"person": "Yuri"})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRouter_RequiresToken(t *testing.T) {
	resp := send(t, newTestApp(&stubRecorder{}, &stubReplicator{}), http.MethodGet, "/api/ledger", "", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRouter_RecordPurchase(t *testing.T) {
	rec := &stubRecorder{}
	app := newTestApp(rec, &stubReplicator{})

	resp := send(t, app, http.MethodPost, "/api/purchases", bearerFor(t, "Yuri"), map[string]any{
		"description":        "Geladeira",
		"installment_amount": "250.50",
		"person":             "Yuri",
		"payment_method":     "Credit",
		"installments":       3,
	})
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var out dto.RecordResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "lote-1", out.BatchID)
	assert.Equal(t, 3, out.Inserted)

	assert.Equal(t, "Geladeira", rec.purchase.Description)
	assert.True(t, decimal.RequireFromString("250.50").Equal(rec.purchase.InstallmentAmount))
	assert.Equal(t, 3, rec.purchase.Installments)
}

func TestRouter_PersonDefaultsToToken(t *testing.T) {
	rec := &stubRecorder{}
	app := newTestApp(rec, &stubReplicator{})
	auth := bearerFor(t, "Marcos")

	resp := send(t, app, http.MethodPost, "/api/purchases", auth, map[string]any{
		"description": "Fogão", "installment_amount": "900", "installments": 2,
	})
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "Marcos", rec.purchase.Person)

	resp = send(t, app, http.MethodPost, "/api/purchases", auth, map[string]any{
		"description": "Fogão", "installment_amount": "900", "installments": 2, "person": "Yuri",
	})
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "Yuri", rec.purchase.Person, "la persona del cuerpo tiene prioridad")

	resp = send(t, app, http.MethodPut, "/api/limits", auth, map[string]any{"month": "06/2024", "amount": 800})
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Marcos", rec.limit.Person)
}

func TestRouter_ErrorMapping(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   string
	}{
		{domain.ErrValidation, http.StatusBadRequest, "VALIDATION"},
		{domain.ErrConstraint, http.StatusConflict, "CONSTRAINT"},
		{domain.ErrConnection, http.StatusServiceUnavailable, "DB_UNAVAILABLE"},
		{assert.AnError, http.StatusInternalServerError, "INTERNAL"},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			app := newTestApp(&stubRecorder{err: tt.err}, &stubReplicator{})
			resp := send(t, app, http.MethodPost, "/api/bills", bearerFor(t, "Marcos"), map[string]any{
				"description": "Luz", "person": "Marcos", "due_day": 10, "amount": 200,
			})
			defer resp.Body.Close()
			assert.Equal(t, tt.status, resp.StatusCode)

			var out dto.ErrorResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
			assert.Equal(t, tt.code, out.Code)
		})
	}
}

func TestRouter_InvalidBody(t *testing.T) {
	app := newTestApp(&stubRecorder{}, &stubReplicator{})
	req := httptest.NewRequest(http.MethodPost, "/api/salaries", bytes.NewBufferString("{"))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", bearerFor(t, "Yuri"))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRouter_SetLimit(t *testing.T) {
	rec := &stubRecorder{}
	app := newTestApp(rec, &stubReplicator{})

	resp := send(t, app, http.MethodPut, "/api/limits", bearerFor(t, "Yuri"), map[string]any{
		"person": "Yuri", "month": "05/2024", "amount": 1500,
	})
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out dto.LimitResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "05/2024", out.Month)
	assert.Equal(t, "05/2024", rec.limit.MonthYear)
}

func TestRouter_Replicate(t *testing.T) {
	rep := &stubReplicator{}
	app := newTestApp(&stubRecorder{}, rep)

	resp := send(t, app, http.MethodPost, "/api/replications", bearerFor(t, "Yuri"), map[string]string{"month": "02/2024"})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, entity.NewMonth(2024, time.February), rep.month)

	resp = send(t, app, http.MethodPost, "/api/replications", bearerFor(t, "Yuri"), map[string]string{"month": "2024-02"})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRouter_Ledger(t *testing.T) {
	app := newTestApp(&stubRecorder{}, &stubReplicator{})
	auth := bearerFor(t, "Marcos")

	resp := send(t, app, http.MethodGet, "/api/ledger", auth, nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var all []dto.MonthLedgerResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&all))
	require.Len(t, all, 1)
	assert.Equal(t, "01/2024", all[0].Month)
	assert.True(t, decimal.NewFromInt(5000).Equal(all[0].Totals.MonthTotal))
	assert.Len(t, all[0].Movements, 1)

	resp = send(t, app, http.MethodGet, "/api/ledger/2024/1", auth, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = send(t, app, http.MethodGet, "/api/ledger/2024/2", auth, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = send(t, app, http.MethodGet, "/api/ledger/2024/13", auth, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRouter_Statement(t *testing.T) {
	app := newTestApp(&stubRecorder{}, &stubReplicator{})
	resp := send(t, app, http.MethodGet, "/api/ledger/2024/1/statement.pdf", bearerFor(t, "Yuri"), nil)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	body, _ := io.ReadAll(resp.Body)
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")))
}
