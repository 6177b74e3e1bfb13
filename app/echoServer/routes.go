package echoServer

import (
	"net/http"

	"equiploan/app/echoServer/controller/auth"
	"equiploan/app/echoServer/controller/equipment"
	"equiploan/app/echoServer/controller/fine"
	"equiploan/app/echoServer/controller/loan"
	"equiploan/app/echoServer/controller/ops"
	"equiploan/app/echoServer/controller/request"
	"equiploan/app/echoServer/jwtx"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
)

type C struct {
	Auth      *auth.Controller
	Equipment *equipment.Controller
	Request   *request.Controller
	Loan      *loan.Controller
	Fine      *fine.Controller
	Ops       *ops.Controller
	JWTSecret string
}

func Register(e *echo.Echo, c C) {
	// Public
	pub := e.Group("/v1")
	pub.POST("/users/register", c.Auth.Register)
	pub.POST("/users/login", c.Auth.Login)

	// Auth
	authg := e.Group("/v1")
	authg.Use(echojwt.WithConfig(echojwt.Config{
		SigningKey: []byte(c.JWTSecret),

		NewClaimsFunc: func(c echo.Context) jwt.Claims { return jwt.MapClaims{} },
		TokenLookup:   "header:Authorization",
	}))
	// user_id + role extraction
	authg.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			uid, err := jwtx.UserIDFromContext(ctx)
			if err != nil {
				return ctx.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
			}
			role, err := jwtx.RoleFromContext(ctx)
			if err != nil {
				return ctx.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
			}
			ctx.Set("user_id", uid)
			ctx.Set("role", role)
			return next(ctx)
		}
	})

	// Equipment catalog
	authg.GET("/equipment", c.Equipment.List)
	authg.GET("/equipment/available", c.Equipment.ListAvailable)
	authg.GET("/equipment/:id", c.Equipment.Detail)

	// Requests
	authg.POST("/requests", c.Request.Create)

	// Loans
	authg.POST("/loans/:id/return", c.Loan.Return)
	authg.GET("/loans/my", c.Loan.MyLoans)

	// Fines
	authg.POST("/fines/:id/pay", c.Fine.Pay)
	authg.GET("/fines/my", c.Fine.MyFines)

	// Approver-only
	apv := authg.Group("", RequireRole("approver"))
	apv.POST("/equipment", c.Equipment.Create)
	apv.GET("/requests/pending", c.Request.Pending)
	apv.POST("/requests/:id/review", c.Request.Review)
	apv.POST("/ops/overdue-sweep", c.Ops.OverdueSweep)
}
