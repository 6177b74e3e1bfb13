package loan

import (
	"log/slog"
	"net/http"
	"strconv"

	"equiploan/model"
	"equiploan/service/faults"
	loansvc "equiploan/service/loan"

	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc loansvc.Service
	Log *slog.Logger
}

// POST /v1/loans/:id/return
func (h *Controller) Return(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	uid, _ := c.Get("user_id").(int64)
	role, _ := c.Get("role").(string)

	if err := h.Svc.Return(c.Request().Context(), uid, model.Role(role), id); err != nil {
		switch faults.CodeOf(err) {
		case faults.NotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "loan not found"})
		case faults.Forbidden:
			return c.JSON(http.StatusForbidden, echo.Map{"message": "not your loan"})
		case faults.InvalidState:
			return c.JSON(http.StatusConflict, echo.Map{"message": "loan already returned"})
		default:
			h.Log.Error("loan return", "loan_id", id, "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "returned"})
}

// GET /v1/loans/my
func (h *Controller) MyLoans(c echo.Context) error {
	uid, _ := c.Get("user_id").(int64)
	rows, err := h.Svc.MyLoans(c.Request().Context(), uid)
	if err != nil {
		h.Log.Error("my loans", "user_id", uid, "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}
