package adapters

import (
	"strconv"
	"strings"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
)

// ParseTimeout accepts Go duration strings ("90s", "2m") and bare integers,
// which are taken as seconds. An empty value yields fallback.
func ParseTimeout(value string, fallback time.Duration) (time.Duration, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return fallback, nil
	}
	if seconds, err := strconv.Atoi(trimmed); err == nil {
		if seconds < 0 {
			return 0, invalidTimeout(trimmed, nil)
		}
		return time.Duration(seconds) * time.Second, nil
	}
	parsed, err := time.ParseDuration(trimmed)
	if err != nil || parsed < 0 {
		return 0, invalidTimeout(trimmed, err)
	}
	return parsed, nil
}

func invalidTimeout(value string, cause error) error {
	builder := errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg("invalid timeout: " + value)
	if cause != nil {
		return builder.WithCause(cause)
	}
	return builder
}
