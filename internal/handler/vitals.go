package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lifepulse/lifepulse-api/internal/analytics"
	"github.com/lifepulse/lifepulse-api/internal/model"
)

// VitalsHandler serves the height/weight/BMI endpoints.
type VitalsHandler struct {
	Vitals VitalsStore
}

func NewVitalsHandler(v VitalsStore) *VitalsHandler {
	return &VitalsHandler{Vitals: v}
}

type vitalsReq struct {
	HeightCm float64 `json:"height"`
	WeightKg float64 `json:"weight"`
}

// Record computes the BMI for a height/weight submission and appends an
// immutable vitals record. Repeated calls create history entries; no
// update path exists.
func (h *VitalsHandler) Record(c echo.Context) error {
	var req vitalsReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.HeightCm <= 0 || req.WeightKg <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "height and weight are required and must be positive"})
	}

	v := model.VitalsProfile{
		UserID:   userID(c),
		HeightCm: req.HeightCm,
		WeightKg: req.WeightKg,
		BMI:      analytics.BMI(req.HeightCm, req.WeightKg),
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Vitals.Insert(ctx, &v); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "server error"})
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"id":          v.ID,
		"height":      v.HeightCm,
		"weight":      v.WeightKg,
		"bmi":         v.BMI,
		"category":    analytics.BMICategory(v.BMI),
		"recorded_at": v.RecordedAt,
	})
}

// History returns the user's vitals records, newest first.
func (h *VitalsHandler) History(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	records, err := h.Vitals.History(ctx, userID(c))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "server error"})
	}
	if records == nil {
		records = []model.VitalsProfile{}
	}
	return c.JSON(http.StatusOK, records)
}
