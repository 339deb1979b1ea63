// Package wait blocks integration suites until the events-api answers.
package wait

import (
	"fmt"
	"net/http"
	"time"
)

const pollEvery = 200 * time.Millisecond

// HTTP200 polls url (normally /healthz) until it answers 200 or timeout
// passes. The error names the last status or transport error seen.
func HTTP200(url string, timeout time.Duration) error {
	client := &http.Client{Timeout: 2 * time.Second}
	deadline := time.Now().Add(timeout)

	last := "no response"
	for time.Now().Before(deadline) {
		resp, err := client.Get(url)
		if err != nil {
			last = err.Error()
		} else {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return nil
			}
			last = resp.Status
		}
		time.Sleep(pollEvery)
	}
	return fmt.Errorf("events-api not ready at %s after %s: %s", url, timeout, last)
}
