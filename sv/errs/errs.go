// Package errs defines the error kinds raised by the structural-variation
// caller. Non-fatal kinds are accumulated as counters; fatal kinds abort the
// run.
package errs

import (
	"fmt"

	"github.com/grailbio/base/errors"
)

// Kind classifies an error raised anywhere in the sv pipeline.
type Kind int

const (
	// ConfigError indicates a missing or invalid configuration flag.
	ConfigError Kind = iota
	// MaskLoadError indicates an unreadable or malformed mask file.
	MaskLoadError
	// AlignerIOError indicates the external aligner produced no records, or
	// terminated abnormally.
	AlignerIOError
	// PoorLibraryError indicates the background-noise threshold could not be
	// satisfied at sigma <= 3 during fragment-size inference.
	PoorLibraryError
	// NonDeconvolvableLibraryError indicates the inferred inward and outward
	// insert-size intervals overlap.
	NonDeconvolvableLibraryError
	// MalformedRecord is non-fatal: the record is skipped and counted.
	MalformedRecord
)

func (k Kind) String() string {
	switch k {
	case ConfigError:
		return "ConfigError"
	case MaskLoadError:
		return "MaskLoadError"
	case AlignerIOError:
		return "AlignerIOError"
	case PoorLibraryError:
		return "PoorLibraryError"
	case NonDeconvolvableLibraryError:
		return "NonDeconvolvableLibraryError"
	case MalformedRecord:
		return "MalformedRecord"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// IsFatal reports whether an error of the given kind should terminate the
// run with exit code 1. Only MalformedRecord is non-fatal: it is counted and
// logged, never returned to the caller.
func IsFatal(k Kind) bool {
	return k != MalformedRecord
}

// E builds an error tagged with kind and wrapping the supplied context,
// following the same errors.E(...) convention used across the rest of this
// codebase for attaching structured context to an error chain.
func E(k Kind, args ...interface{}) error {
	all := make([]interface{}, 0, len(args)+1)
	all = append(all, k.String())
	all = append(all, args...)
	return errors.E(all...)
}
