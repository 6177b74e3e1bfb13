package equipment

import (
	"log/slog"
	"net/http"
	"strconv"

	equipsvc "equiploan/service/equipment"
	"equiploan/service/faults"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc equipsvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// Create equipment
// @Summary      Register equipment
// @Description  Add a new piece of equipment to the catalog (approver only)
// @Tags         equipment
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body  CreateEquipmentReq  true  "Equipment payload"
// @Success      201  {object}  map[string]any
// @Failure      400  {object}  map[string]any
// @Failure      403  {object}  map[string]any
// @Router       /v1/equipment [post]
func (h *Controller) Create(c echo.Context) error {
	var req CreateEquipmentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}

	id, err := h.Svc.Create(c.Request().Context(), req.Name, req.Category)
	if err != nil {
		if faults.CodeOf(err) == faults.Validation {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
		}
		h.Log.Error("equipment create", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"equipment_id": id})
}

// GET /v1/equipment
func (h *Controller) List(c echo.Context) error {
	rows, err := h.Svc.List(c.Request().Context())
	if err != nil {
		h.Log.Error("equipment list", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

// GET /v1/equipment/available
func (h *Controller) ListAvailable(c echo.Context) error {
	rows, err := h.Svc.ListAvailable(c.Request().Context())
	if err != nil {
		h.Log.Error("equipment available list", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

// GET /v1/equipment/:id
func (h *Controller) Detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	eq, err := h.Svc.Detail(c.Request().Context(), id)
	if err != nil {
		if faults.CodeOf(err) == faults.NotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "equipment not found"})
		}
		h.Log.Error("equipment detail", "id", id, "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": eq})
}
