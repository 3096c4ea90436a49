// Command imagestudio is the batch processing front end for the image
// transformation core.
//
// It exposes the same configuration surface the interactive editor uses and
// routes everything through transform.Apply, so a batch run and a GUI
// session with equal parameters produce byte-identical output.
package main

import (
	"errors"
	"log"
	"os"

	"github.com/imagestudio/imagestudio/internal/imgio"
	"github.com/imagestudio/imagestudio/internal/transform"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// Exit codes, one per error kind, so scripts can tell failures apart.
const (
	exitOK            = 0
	exitFailure       = 1
	exitNotFound      = 2
	exitDecode        = 3
	exitEncode        = 4
	exitConfiguration = 5
	exitResourceLimit = 6
)

func main() {
	// Diagnostics go to stderr; stdout carries command output only.
	log.SetOutput(os.Stderr)
	log.SetFlags(0)

	root := newRootCmd()
	if err := root.Execute(); err != nil {
		log.Printf("imagestudio: %v", err)
		os.Exit(exitCode(err))
	}
}

// exitCode maps the error taxonomy onto distinct process exit codes.
func exitCode(err error) int {
	var (
		notFound *imgio.NotFoundError
		decode   *imgio.DecodeError
		encode   *imgio.EncodeError
		limit    *imgio.ResourceLimitError
		config   *transform.ConfigurationError
	)
	switch {
	case err == nil:
		return exitOK
	case errors.As(err, &notFound):
		return exitNotFound
	case errors.As(err, &decode):
		return exitDecode
	case errors.As(err, &encode):
		return exitEncode
	case errors.As(err, &config):
		return exitConfiguration
	case errors.As(err, &limit):
		return exitResourceLimit
	default:
		return exitFailure
	}
}
