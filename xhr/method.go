package xhr

import (
	"fmt"
	"net/http"
	"strings"
)

// NormalizeMethod validates method and upper-cases the methods browsers
// normalize. Other tokens, PATCH included, are kept as given.
func NormalizeMethod(method string) (string, error) {
	if !validToken(method) {
		return "", fmt.Errorf("%w: %q", ErrInvalidMethod, method)
	}

	upper := strings.ToUpper(method)
	switch upper {
	case http.MethodConnect, http.MethodTrace, "TRACK":
		return "", fmt.Errorf("%w: %s is forbidden", ErrInvalidMethod, upper)
	case http.MethodDelete,
		http.MethodGet,
		http.MethodHead,
		http.MethodOptions,
		http.MethodPost,
		http.MethodPut:
		return upper, nil
	default:
		return method, nil
	}
}

// validToken reports whether s is a non-empty RFC 7230 token.
func validToken(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case strings.IndexByte("!#$%&'*+-.^_`|~", c) >= 0:
		default:
			return false
		}
	}
	return true
}
