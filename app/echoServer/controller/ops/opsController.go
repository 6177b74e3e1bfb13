package ops

import (
	"log/slog"
	"net/http"

	overduesvc "equiploan/service/overdue"
	"equiploan/util/clock"

	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc overduesvc.Service
	Clk clock.Clock
	Log *slog.Logger
}

// POST /v1/ops/overdue-sweep  (approver)
// Manual trigger for the same sweep the background ticker runs.
func (h *Controller) OverdueSweep(c echo.Context) error {
	res, err := h.Svc.RunDailyCheck(c.Request().Context(), h.Clk.Now())
	if err != nil {
		h.Log.Error("overdue sweep", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": res})
}
