package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/quentinrf/plant-monitor/services/crop-service/internal/domain"
)

// Exit codes for different failure modes
const (
	ExitSuccess    = 0 // Command completed
	ExitError      = 1 // Configuration or runtime error
	ExitBadReading = 2 // Reading outside the supported ranges
)

func main() {
	if err := execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

// exitCode maps a command error onto the process exit status
func exitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, domain.ErrOutOfRange):
		return ExitBadReading
	default:
		return ExitError
	}
}
