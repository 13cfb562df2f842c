package commands

import (
	"fmt"
	"io"

	pseudonymDomain "github.com/allisson/ecdc/internal/pseudonym/domain"
	pseudonymUseCase "github.com/allisson/ecdc/internal/pseudonym/usecase"
)

// RunSelfTest runs the reference vectors and, when cfg is non-nil, round trips
// under cfg. It prints one line per case and returns ErrSelfTestFailed when
// any case fails.
//
// skipReason explains why cfg is nil. It is printed instead of the round trips
// and returned once the reference vectors have run, so a missing secret still
// fails the command.
func RunSelfTest(writer io.Writer, cfg *pseudonymDomain.Config, skipReason error) error {
	report := pseudonymUseCase.RunSelfTest(cfg)

	_, _ = fmt.Fprintln(writer, "Reference vectors (use their own secrets/tweaks, independent from env):")
	for _, c := range report.Reference {
		_, _ = fmt.Fprintf(writer, "  %s\n", c)
	}

	_, _ = fmt.Fprintln(writer)
	_, _ = fmt.Fprintln(writer, "Roundtrips with current config (from env/flags):")
	switch {
	case cfg == nil:
		_, _ = fmt.Fprintf(writer, "  skipped: %v\n", skipReason)
	case report.ConfigErr != nil:
		_, _ = fmt.Fprintf(writer, "  Error: %v\n", report.ConfigErr)
	default:
		for _, c := range report.RoundTrips {
			_, _ = fmt.Fprintf(writer, "  %s\n", c)
		}
	}

	if err := report.Err(); err != nil {
		return err
	}
	if cfg == nil && skipReason != nil {
		return skipReason
	}
	_, _ = fmt.Fprintln(writer)
	_, _ = fmt.Fprintln(writer, "All checks passed")
	return nil
}
