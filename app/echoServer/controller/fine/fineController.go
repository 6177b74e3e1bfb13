package fine

import (
	"log/slog"
	"net/http"
	"strconv"

	"equiploan/model"
	"equiploan/service/faults"
	finesvc "equiploan/service/fine"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc finesvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// Pay a fine
// @Summary      Pay fine
// @Description  Charge the card token through the payment gateway and settle the fine
// @Tags         fines
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path  int         true  "Fine ID"
// @Param        payload  body  PayFineReq  true  "Payment payload"
// @Success      200  {object}  map[string]any
// @Failure      402  {object}  map[string]any "charge declined or failed"
// @Failure      404  {object}  map[string]any
// @Failure      409  {object}  map[string]any "fine already paid"
// @Router       /v1/fines/{id}/pay [post]
func (h *Controller) Pay(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req PayFineReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}
	uid, _ := c.Get("user_id").(int64)
	role, _ := c.Get("role").(string)

	paid, err := h.Svc.Pay(c.Request().Context(), uid, model.Role(role), id, req.CardToken)
	if err != nil {
		switch faults.CodeOf(err) {
		case faults.NotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "fine not found"})
		case faults.Forbidden:
			return c.JSON(http.StatusForbidden, echo.Map{"message": "not your fine"})
		case faults.InvalidState:
			return c.JSON(http.StatusConflict, echo.Map{"message": "fine already paid"})
		case faults.Payment:
			return c.JSON(http.StatusPaymentRequired, echo.Map{"message": err.Error()})
		default:
			h.Log.Error("fine pay", "fine_id", id, "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"data": paid})
}

// GET /v1/fines/my
func (h *Controller) MyFines(c echo.Context) error {
	uid, _ := c.Get("user_id").(int64)
	rows, err := h.Svc.MyFines(c.Request().Context(), uid)
	if err != nil {
		h.Log.Error("my fines", "user_id", uid, "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}
