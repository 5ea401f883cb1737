package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/vuelachile/schedgen/internal/domain"
	"github.com/vuelachile/schedgen/internal/generator"
)

type MockScheduleUseCase struct {
	mock.Mock
}

func (m *MockScheduleUseCase) Generate(ctx context.Context, params generator.RunParams) (*generator.Manifest, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*generator.Manifest), args.Error(1)
}

func (m *MockScheduleUseCase) LastManifest(ctx context.Context) (*generator.Manifest, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*generator.Manifest), args.Error(1)
}

func postGeneration(body string) (*httptest.ResponseRecorder, *gin.Context) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("POST", "/generations", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return w, c
}

func TestGenerationHandler_generate(t *testing.T) {
	mockService := &MockScheduleUseCase{}
	handler := NewGenerationHandler(mockService)

	w, c := postGeneration(`{"horizon_days": 7, "seed": 42}`)

	manifest := &generator.Manifest{RunID: "run-1", HorizonDays: 7, Seed: 42, FlightCount: 21, QuoteCount: 21}
	mockService.On("Generate", c.Request.Context(), mock.MatchedBy(func(p generator.RunParams) bool {
		return p.HorizonDays == 7 && p.Seed == 42
	})).Return(manifest, nil)

	handler.generate(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "run-1")
	mockService.AssertExpectations(t)
}

func TestGenerationHandler_generate_zeroTaxRate(t *testing.T) {
	mockService := &MockScheduleUseCase{}
	handler := NewGenerationHandler(mockService)

	w, c := postGeneration(`{"horizon_days": 7, "seed": 42, "tax_rate": 0}`)

	manifest := &generator.Manifest{RunID: "run-3", HorizonDays: 7, Seed: 42}
	mockService.On("Generate", c.Request.Context(), mock.MatchedBy(func(p generator.RunParams) bool {
		return p.TaxRate != nil && *p.TaxRate == 0
	})).Return(manifest, nil)

	handler.generate(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	mockService.AssertExpectations(t)
}

func TestGenerationHandler_generate_taxRateOmitted(t *testing.T) {
	mockService := &MockScheduleUseCase{}
	handler := NewGenerationHandler(mockService)

	w, c := postGeneration(`{"horizon_days": 7, "seed": 42}`)

	manifest := &generator.Manifest{RunID: "run-4", HorizonDays: 7, Seed: 42}
	mockService.On("Generate", c.Request.Context(), mock.MatchedBy(func(p generator.RunParams) bool {
		return p.TaxRate == nil
	})).Return(manifest, nil)

	handler.generate(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	mockService.AssertExpectations(t)
}

func TestGenerationHandler_generate_invalidHorizon(t *testing.T) {
	mockService := &MockScheduleUseCase{}
	handler := NewGenerationHandler(mockService)

	w, c := postGeneration(`{"horizon_days": 0}`)

	mockService.On("Generate", c.Request.Context(), mock.Anything).
		Return(nil, &domain.InvalidHorizonError{HorizonDays: 0})

	handler.generate(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGenerationHandler_generate_persistenceError(t *testing.T) {
	mockService := &MockScheduleUseCase{}
	handler := NewGenerationHandler(mockService)

	w, c := postGeneration(`{"horizon_days": 7}`)

	mockService.On("Generate", c.Request.Context(), mock.Anything).
		Return(nil, &domain.PersistenceError{Op: "commit", Err: assert.AnError})

	handler.generate(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestGenerationHandler_generate_badBody(t *testing.T) {
	mockService := &MockScheduleUseCase{}
	handler := NewGenerationHandler(mockService)

	w, c := postGeneration(`{"horizon_days": "seven"}`)

	handler.generate(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
}

func TestGenerationHandler_latest(t *testing.T) {
	mockService := &MockScheduleUseCase{}
	handler := NewGenerationHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/generations/latest", nil)

	manifest := &generator.Manifest{RunID: "run-2", FlightCount: 3}
	mockService.On("LastManifest", c.Request.Context()).Return(manifest, nil)

	handler.latest(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "run-2")
}

func TestGenerationHandler_latest_none(t *testing.T) {
	mockService := &MockScheduleUseCase{}
	handler := NewGenerationHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/generations/latest", nil)

	mockService.On("LastManifest", c.Request.Context()).Return(nil, nil)

	handler.latest(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, statusFor(&domain.CatalogEmptyError{Collection: "carriers"}))
	assert.Equal(t, http.StatusBadRequest, statusFor(&domain.NoEligibleCarrierError{Origin: "SCL", Destination: "LSC"}))
	assert.Equal(t, http.StatusBadRequest, statusFor(&domain.NoEligibleAircraftError{Origin: "SCL", Destination: "LSC"}))
	assert.Equal(t, http.StatusInternalServerError, statusFor(assert.AnError))
}
