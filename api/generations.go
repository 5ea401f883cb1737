package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/vuelachile/schedgen/internal/domain"
	"github.com/vuelachile/schedgen/internal/generator"
	"github.com/vuelachile/schedgen/internal/service/schedule"
)

type GenerationHandler struct {
	service schedule.ScheduleUseCase
}

func NewGenerationHandler(service schedule.ScheduleUseCase) *GenerationHandler {
	return &GenerationHandler{service: service}
}

func (h *GenerationHandler) Register(router *gin.RouterGroup) {
	router.POST("/", h.generate)
	router.GET("/latest", h.latest)
}

// generateRequest carries the per-run knobs. tax_rate is a pointer so an
// explicit 0 is distinguishable from the field being absent.
type generateRequest struct {
	HorizonDays    int      `json:"horizon_days"`
	Seed           int64    `json:"seed"`
	StartDate      string   `json:"start_date"`
	TaxRate        *float64 `json:"tax_rate"`
	LoadFactorMax  float64  `json:"load_factor_max"`
	PriceVariation float64  `json:"price_variation"`
}

func (h *GenerationHandler) generate(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	params := generator.RunParams{
		HorizonDays:    req.HorizonDays,
		Seed:           req.Seed,
		TaxRate:        req.TaxRate,
		LoadFactorMax:  req.LoadFactorMax,
		PriceVariation: req.PriceVariation,
	}
	if req.StartDate != "" {
		parsed, err := time.Parse("2006-01-02", req.StartDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start_date, expected YYYY-MM-DD"})
			return
		}
		params.StartDate = parsed
	}

	manifest, err := h.service.Generate(c.Request.Context(), params)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, manifest)
}

func (h *GenerationHandler) latest(c *gin.Context) {
	manifest, err := h.service.LastManifest(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if manifest == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no generation run recorded"})
		return
	}
	c.JSON(http.StatusOK, manifest)
}

// statusFor maps input-shaped failures to 400 and everything else, storage
// included, to 500.
func statusFor(err error) int {
	var (
		horizonErr  *domain.InvalidHorizonError
		emptyErr    *domain.CatalogEmptyError
		carrierErr  *domain.NoEligibleCarrierError
		aircraftErr *domain.NoEligibleAircraftError
	)
	switch {
	case errors.As(err, &horizonErr),
		errors.As(err, &emptyErr),
		errors.As(err, &carrierErr),
		errors.As(err, &aircraftErr):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
