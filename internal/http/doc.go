// Package http provides the HTTP client used for lyrics provider requests.
//
// The Client in this package handles:
//   - User-Agent and provider-specific headers
//   - Timeout handling
//   - Bounded retries with exponential backoff on transient failures
//
// # Basic Usage
//
//	client := http.NewClient(10*time.Second, http.DefaultRetryPolicy(), logger)
//	client.SetHeader("authority", "apic-desktop.musixmatch.com")
//
//	body, err := client.Get(ctx, baseURL+"/token.get", url.Values{"app_id": {appID}})
//
// # Errors
//
// Non-200 responses surface as *StatusError. Use errors.As to inspect the
// status code:
//
//	var statusErr *http.StatusError
//	if errors.As(err, &statusErr) && statusErr.Code == 404 {
//	    // ...
//	}
package http
