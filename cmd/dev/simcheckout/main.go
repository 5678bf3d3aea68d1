// simcheckout replays the provider's success redirect against a local server:
// it calls the payment-confirmation endpoint with a checkout session id, the
// same way the frontend does after the customer returns from checkout.
// Running it twice for the same session demonstrates the idempotent result.
package main

import (
	"flag"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"
)

func main() {
	var (
		endpoint = flag.String("url", "", "confirm endpoint (defaults to http://localhost<HTTP_ADDR>/v1/payments/success)")
		session  = flag.String("session", "", "checkout session id (cs_...)")
		token    = flag.String("token", "", "bearer identity token")
		repeat   = flag.Int("repeat", 1, "number of times to replay the confirmation")
	)
	flag.Parse()

	if *session == "" {
		fmt.Fprintln(os.Stderr, "missing -session")
		os.Exit(2)
	}
	if *token == "" {
		fmt.Fprintln(os.Stderr, "missing -token")
		os.Exit(2)
	}

	if *endpoint == "" {
		httpAddr := os.Getenv("HTTP_ADDR")
		if httpAddr == "" {
			httpAddr = ":8081"
		}
		if len(httpAddr) > 0 && httpAddr[0] == ':' {
			*endpoint = "http://localhost" + httpAddr + "/v1/payments/success"
		} else {
			*endpoint = "http://localhost:8081/v1/payments/success"
		}
	}

	u := *endpoint + "?session_id=" + url.QueryEscape(*session)
	c := &http.Client{Timeout: 10 * time.Second}

	for i := 0; i < *repeat; i++ {
		req, err := http.NewRequest(http.MethodPatch, u, nil)
		if err != nil {
			fmt.Fprintf(os.Stderr, "new request: %v\n", err)
			os.Exit(2)
		}
		req.Header.Set("Authorization", "Bearer "+*token)

		resp, err := c.Do(req)
		if err != nil {
			fmt.Fprintf(os.Stderr, "patch: %v\n", err)
			os.Exit(1)
		}
		body, _ := io.ReadAll(resp.Body)
		_ = resp.Body.Close()

		fmt.Printf("attempt=%d status=%d\n%s\n", i+1, resp.StatusCode, string(body))
	}
}
