package signal

import (
	"errors"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dkeye/roomchat/internal/domain"
)

// errorMessage turns a core error into the text of an error event.
// persistenceMsg names the failed operation for store errors.
func errorMessage(err error, persistenceMsg string) string {
	switch {
	case errors.Is(err, domain.ErrAuthMissing):
		return "Missing token"
	case errors.Is(err, domain.ErrAuthInvalid):
		return "Invalid token"
	case errors.Is(err, domain.ErrUnauthorized):
		return "Unauthorized"
	case errors.Is(err, domain.ErrRateLimited):
		return "Rate limit exceeded"
	case errors.Is(err, domain.ErrValidation):
		detail := strings.TrimPrefix(err.Error(), domain.ErrValidation.Error()+": ")
		return capitalize(detail)
	case errors.Is(err, domain.ErrPersistence):
		if persistenceMsg != "" {
			return persistenceMsg
		}
		return "Storage unavailable"
	case errors.Is(err, errUnknownType):
		return "Unknown event type"
	default:
		return "Internal error"
	}
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
