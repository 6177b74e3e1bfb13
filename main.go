// Package main equipment loan API.
//
// @title           Equipment Loan API
// @version         1.0
// @description     Equipment borrowing service (catalog, requests, loans, fines).
// @BasePath        /
// @schemes         http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description  Use:  Bearer <JWT>
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"equiploan/app/echoServer"
	authctrl "equiploan/app/echoServer/controller/auth"
	equipctrl "equiploan/app/echoServer/controller/equipment"
	finectrl "equiploan/app/echoServer/controller/fine"
	loanctrl "equiploan/app/echoServer/controller/loan"
	opsctrl "equiploan/app/echoServer/controller/ops"
	requestctrl "equiploan/app/echoServer/controller/request"
	"equiploan/app/echoServer/validation"
	"equiploan/config"
	"equiploan/policy"
	equiprepo "equiploan/repository/equipment"
	finerepo "equiploan/repository/fine"
	loanrepo "equiploan/repository/loan"
	mailrepo "equiploan/repository/mail"
	paymentrepo "equiploan/repository/payment"
	personrepo "equiploan/repository/person"
	requestrepo "equiploan/repository/request"
	authsvc "equiploan/service/auth"
	"equiploan/service/availability"
	equipsvc "equiploan/service/equipment"
	finesvc "equiploan/service/fine"
	loansvc "equiploan/service/loan"
	overduesvc "equiploan/service/overdue"
	requestsvc "equiploan/service/request"
	"equiploan/util/clock"
	"equiploan/util/database"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
)

func main() {

	cfg := config.Load()
	ctx := context.Background()

	// logger
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// DB: *sql.DB
	db, err := database.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.InitSchema(ctx, db); err != nil {
		log.Error("schema init failed", "err", err)
		os.Exit(1)
	}

	// repos
	pr := personrepo.New(db)
	er := equiprepo.New(db)
	rr := requestrepo.New(db)
	lr := loanrepo.New(db)
	sr := loanrepo.NewSweep(db)
	fr := finerepo.New(db)
	gateway := paymentrepo.NewHTTP(cfg.PaymentAPIURL, cfg.PaymentAPIKey)

	var mail mailrepo.Sender
	if cfg.MailAPIURL != "" {
		mail = mailrepo.NewHTTP(cfg.MailAPIURL, cfg.MailAPIKey)
	} else {
		mail = mailrepo.NewLog(log)
	}

	// policies
	var due policy.DueDatePolicy = policy.NewFixedDays(cfg.DefaultLoanDays)
	if len(cfg.CategoryLoanDays) > 0 {
		due = policy.NewCategoryBased(cfg.CategoryLoanDays, cfg.DefaultLoanDays)
	}
	fines := policy.DailyRate{CentsPerDay: cfg.FineCentsPerDay, GraceDays: cfg.FineGraceDays}

	clk := clock.System()

	// services
	as := authsvc.New(pr, cfg.JWTSecret)
	es := equipsvc.New(er)
	ls := loansvc.New(lr, due, clk)
	rs := requestsvc.New(rr, availability.NewChecker(rr), ls, mail, clk, log)
	ovs := overduesvc.New(sr, fines, mail, log)
	fs := finesvc.New(fr, gateway, mail, cfg.Currency, clk, log)

	// controllers
	v := validator.New()
	authC := &authctrl.Controller{Svc: as, V: v, Log: log}
	equipC := &equipctrl.Controller{Svc: es, V: v, Log: log}
	requestC := &requestctrl.Controller{Svc: rs, V: v, Log: log}
	loanC := &loanctrl.Controller{Svc: ls, Log: log}
	fineC := &finectrl.Controller{Svc: fs, V: v, Log: log}
	opsC := &opsctrl.Controller{Svc: ovs, Clk: clk, Log: log}

	// background overdue sweep
	go func() {
		t := time.NewTicker(cfg.SweepInterval)
		defer t.Stop()
		for range t.C {
			res, err := ovs.RunDailyCheck(ctx, clk.Now())
			if err != nil {
				log.Error("overdue sweep failed", "err", err)
				continue
			}
			log.Info("overdue sweep done",
				"scanned", res.Scanned,
				"marked_overdue", res.MarkedOverdue,
				"fines_created", res.FinesCreated,
			)
		}
	}()

	// echo
	e := echo.New()
	echoServer.RegisterMiddlewares(e)
	e.Validator = validation.New()

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]any{
			"status":  "ok",
			"message": "Service is healthy and connected",
		})
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	echoServer.Register(e, echoServer.C{
		Auth:      authC,
		Equipment: equipC,
		Request:   requestC,
		Loan:      loanC,
		Fine:      fineC,
		Ops:       opsC,

		JWTSecret: cfg.JWTSecret,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}

	log.Info("starting server", "port", port, "env", cfg.Env)

	e.Logger.Fatal(e.Start(":" + port))
}
