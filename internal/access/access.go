// Package access restricts the service to callers from allowed Entra ID
// tenants, as identified by the App Service authentication principal header.
package access

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"slices"

	"github.com/itchyny/gojq"
)

// PrincipalHeader carries the base64-encoded client principal injected by
// App Service authentication.
const PrincipalHeader = "X-Ms-Client-Principal"

// TenantClaim is the claim type holding the caller's tenant ID.
const TenantClaim = "http://schemas.microsoft.com/identity/claims/tenantid"

// DeniedMessage is returned to refused callers.
const DeniedMessage = "Access denied."

// ErrMalformedPrincipal is returned when the principal header cannot be decoded.
var ErrMalformedPrincipal = errors.New("malformed client principal")

var tenantQuery = mustCompile(`.claims[]? | select(.typ == $claim) | .val`)

func mustCompile(src string) *gojq.Code {
	q, err := gojq.Parse(src)
	if err != nil {
		panic(err)
	}
	code, err := gojq.Compile(q, gojq.WithVariables([]string{"$claim"}))
	if err != nil {
		panic(err)
	}
	return code
}

// TenantIDs returns every tenant ID claim in an encoded principal.
func TenantIDs(principal string) ([]string, error) {
	raw, err := base64.StdEncoding.DecodeString(principal)
	if err != nil {
		if raw, err = base64.RawStdEncoding.DecodeString(principal); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedPrincipal, err)
		}
	}

	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPrincipal, err)
	}

	var ids []string
	iter := tenantQuery.Run(doc, TenantClaim)
	for {
		v, ok := iter.Next()
		if !ok {
			break
		}
		if err, ok := v.(error); ok {
			return nil, fmt.Errorf("%w: %v", ErrMalformedPrincipal, err)
		}
		if s, ok := v.(string); ok {
			ids = append(ids, s)
		}
	}
	return ids, nil
}

// IsAuthorizedTenant reports whether the principal carries a tenant claim
// listed in allowed.
func IsAuthorizedTenant(principal string, allowed []string) (bool, error) {
	ids, err := TenantIDs(principal)
	if err != nil {
		return false, err
	}
	for _, id := range ids {
		if slices.Contains(allowed, id) {
			return true, nil
		}
	}
	return false, nil
}

// Checker applies the tenant allow-list to HTTP requests.
type Checker struct {
	tenants []string
}

// NewChecker creates a checker. An empty list disables the check.
func NewChecker(tenants []string) *Checker {
	return &Checker{tenants: slices.Clone(tenants)}
}

// Enabled reports whether any tenant is configured.
func (c *Checker) Enabled() bool { return len(c.tenants) > 0 }

// Allow reports whether a request with the given principal header may
// proceed. Requests without the header are allowed, since the check only
// applies behind App Service authentication.
func (c *Checker) Allow(principal string) bool {
	if !c.Enabled() || principal == "" {
		return true
	}
	ok, err := IsAuthorizedTenant(principal, c.tenants)
	if err != nil {
		slog.Warn("rejecting malformed client principal", "error", err)
		return false
	}
	return ok
}

// Middleware refuses requests from tenants outside the allow-list with 403.
func (c *Checker) Middleware(next http.Handler) http.Handler {
	if !c.Enabled() {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !c.Allow(r.Header.Get(PrincipalHeader)) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusForbidden)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": DeniedMessage})
			return
		}
		next.ServeHTTP(w, r)
	})
}
