package httpx

import (
	"net"
	"net/http"
	"time"
)

// Shared client for the payment and mail collaborators. The 10s overall
// timeout is the bounded-charge guarantee: a timed-out charge surfaces
// as a payment failure and the fine stays unpaid.
var defaultClient = &http.Client{
	Timeout: 10 * time.Second,
	Transport: &http.Transport{
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        100,
		MaxConnsPerHost:     100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
	},
}

func Client() *http.Client { return defaultClient }
