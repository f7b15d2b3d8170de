package myhttp

import (
	"fmt"
	"net/http"
	"os"
)

// HostnameWithScheme returns the public base URL of this application, used
// to compose the callback URLs handed to service providers.
func HostnameWithScheme(r *http.Request) string {
	if applicationURL := os.Getenv("APPLICATION_URL"); applicationURL != "" {
		return applicationURL
	}

	scheme := "https"
	if r.TLS == nil {
		scheme = "http"
	}

	return fmt.Sprintf("%s://%s", scheme, r.Host)
}
