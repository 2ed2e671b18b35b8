package gravatar

import (
	"context"
	"fmt"
	"net/http"
)

// HTTPChecker checks avatar URLs with a HEAD request. Only 200 OK counts as
// an existing avatar.
type HTTPChecker struct {
	Client *http.Client
}

// DefaultChecker is used by profiles built without WithChecker.
var DefaultChecker Checker = &HTTPChecker{
	Client: &http.Client{Timeout: DefaultTimeout},
}

func (c *HTTPChecker) Check(ctx context.Context, rawURL string) (bool, error) {
	client := c.Client
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, rawURL, nil)
	if err != nil {
		return false, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return false, fmt.Errorf("failed to perform request: %w", err)
	}
	defer resp.Body.Close()

	return resp.StatusCode == http.StatusOK, nil
}

// Exists reports whether the service has an avatar for the address. It
// returns false without network access when no address is set, and false
// when the check fails for any reason.
func (p *Profile) Exists(ctx context.Context) bool {
	if !p.hasHash {
		return false
	}
	checker := p.checker
	if checker == nil {
		checker = DefaultChecker
	}
	ok, err := checker.Check(ctx, p.existsURL())
	if err != nil {
		return false
	}
	return ok
}
