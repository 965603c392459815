package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/rileyhilliard/savebutton/internal/errors"
)

// ParseDelay parses a duration flag. Bare numbers are milliseconds.
func ParseDelay(flag string) (time.Duration, error) {
	if ms, err := strconv.Atoi(flag); err == nil {
		return time.Duration(ms) * time.Millisecond, nil
	}

	duration, err := time.ParseDuration(flag)
	if err != nil {
		return 0, errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("'%s' doesn't look like a valid duration", flag),
			"Try something like 3s, 1500ms, or 1500.")
	}
	return duration, nil
}
