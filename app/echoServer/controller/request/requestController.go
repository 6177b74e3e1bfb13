package request

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"equiploan/service/faults"
	rs "equiploan/service/request"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc rs.Service
	V   *validator.Validate
	Log *slog.Logger
}

// POST /v1/requests
func (h *Controller) Create(c echo.Context) error {
	var req CreateRequestReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "validation error",
			"errors":  err.Error(),
		})
	}
	start, _ := time.ParseInLocation("2006-01-02", req.StartDate, time.UTC)
	end, _ := time.ParseInLocation("2006-01-02", req.EndDate, time.UTC)
	uid, _ := c.Get("user_id").(int64)

	id, err := h.Svc.Submit(c.Request().Context(), uid, req.EquipmentID, start, end)
	if err != nil {
		switch faults.CodeOf(err) {
		case faults.Validation:
			return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
		case faults.NotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "equipment not found"})
		case faults.Unavailable:
			return c.JSON(http.StatusConflict, echo.Map{"message": "equipment not available"})
		default:
			h.Log.Error("request create", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"request_id": id,
		"status":     "PENDING",
	})
}

// POST /v1/requests/:id/review  (approver)
func (h *Controller) Review(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req ReviewReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}

	if err := h.Svc.Review(c.Request().Context(), id, rs.Decision(req.Decision)); err != nil {
		switch faults.CodeOf(err) {
		case faults.Validation:
			return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
		case faults.NotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "request not found"})
		case faults.InvalidState:
			return c.JSON(http.StatusConflict, echo.Map{"message": "request already reviewed"})
		case faults.Unavailable:
			return c.JSON(http.StatusConflict, echo.Map{"message": "equipment no longer available"})
		default:
			h.Log.Error("request review", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"message": req.Decision + "d"})
}

// GET /v1/requests/pending  (approver)
func (h *Controller) Pending(c echo.Context) error {
	rows, err := h.Svc.Pending(c.Request().Context())
	if err != nil {
		h.Log.Error("pending requests", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}
