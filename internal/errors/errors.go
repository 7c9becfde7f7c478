package errors

import (
	"fmt"
	"os"

	"github.com/julianstephens/mindful/internal/logger"
)

var exit = os.Exit

// Format prefixes err with "Error: " for display on stderr.
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Fatal logs err, prints it to stderr and exits with status 1. A nil err is a no-op.
func Fatal(err error) {
	if err == nil {
		return
	}
	logger.Error("Command failed", "error", err)
	fmt.Fprintln(os.Stderr, Format(err))
	exit(1)
}
