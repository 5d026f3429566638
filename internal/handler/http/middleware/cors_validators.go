package middleware

import (
	"strings"
)

// OriginValidator decides whether an Origin may receive CORS headers.
type OriginValidator interface {
	IsAllowed(origin string) bool

	// GetAllowedOrigins returns a copy of the configured origins for logging.
	GetAllowedOrigins() []string
}

// WildcardValidator allows every non-empty origin.
type WildcardValidator struct{}

// IsAllowed implements OriginValidator.
func (WildcardValidator) IsAllowed(origin string) bool {
	return origin != ""
}

// GetAllowedOrigins implements OriginValidator.
func (WildcardValidator) GetAllowedOrigins() []string {
	return []string{"*"}
}

// WhitelistValidator allows an exact set of origins. Matching ignores case
// and a trailing slash.
type WhitelistValidator struct {
	allowed map[string]struct{}
	ordered []string
}

// NewWhitelistValidator builds a validator from origins, skipping blanks.
func NewWhitelistValidator(origins []string) *WhitelistValidator {
	v := &WhitelistValidator{allowed: make(map[string]struct{}, len(origins))}
	for _, o := range origins {
		o = normalizeOrigin(o)
		if o == "" {
			continue
		}
		if _, dup := v.allowed[o]; dup {
			continue
		}
		v.allowed[o] = struct{}{}
		v.ordered = append(v.ordered, o)
	}
	return v
}

// IsAllowed implements OriginValidator.
func (v *WhitelistValidator) IsAllowed(origin string) bool {
	origin = normalizeOrigin(origin)
	if origin == "" {
		return false
	}
	_, ok := v.allowed[origin]
	return ok
}

// GetAllowedOrigins implements OriginValidator.
func (v *WhitelistValidator) GetAllowedOrigins() []string {
	out := make([]string, len(v.ordered))
	copy(out, v.ordered)
	return out
}

func normalizeOrigin(o string) string {
	return strings.TrimSuffix(strings.ToLower(strings.TrimSpace(o)), "/")
}
