package config

import "time"

type App struct {
	Port        string `env:"APP_PORT" envDefault:"8080"`
	DatabaseURL string `env:"DATABASE_URL,required"`
	JWTSecret   string `env:"JWT_SECRET" envDefault:"local_dev_secret"`
	Env         string `env:"APP_ENV" envDefault:"dev"`

	PaymentAPIURL string `env:"PAYMENT_API_URL,required"`
	PaymentAPIKey string `env:"PAYMENT_API_KEY"`
	MailAPIURL    string `env:"MAIL_API_URL"`
	MailAPIKey    string `env:"MAIL_API_KEY"`

	// Fine charges are always in this one currency, integer cents.
	Currency string `env:"FINE_CURRENCY" envDefault:"USD"`

	DefaultLoanDays  int            `env:"DEFAULT_LOAN_DAYS" envDefault:"7"`
	CategoryLoanDays map[string]int `env:"CATEGORY_LOAN_DAYS"`
	FineCentsPerDay  int64          `env:"FINE_CENTS_PER_DAY" envDefault:"500"`
	FineGraceDays    int            `env:"FINE_GRACE_DAYS" envDefault:"0"`

	SweepInterval time.Duration `env:"SWEEP_INTERVAL" envDefault:"24h"`
}
