package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	pseudonymDomain "github.com/allisson/ecdc/internal/pseudonym/domain"
	pseudonymService "github.com/allisson/ecdc/internal/pseudonym/service"
	pseudonymUseCase "github.com/allisson/ecdc/internal/pseudonym/usecase"
)

// NewEngineBridge prepares cfg and returns an enabled bridge over it.
func NewEngineBridge(cfg pseudonymDomain.Config, logger *slog.Logger) (pseudonymUseCase.IDBridge, error) {
	prepared, err := pseudonymService.Prepare(cfg)
	if err != nil {
		return nil, err
	}
	return pseudonymUseCase.NewIDBridge(prepared, logger), nil
}

// RunEncodeUser prints the public identifier of tid.
func RunEncodeUser(ctx context.Context, bridge pseudonymUseCase.IDBridge, writer io.Writer, tid int64) error {
	uid, err := bridge.EncodeUser(ctx, tid)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(writer, uid)
	return nil
}

// RunDecodeUser prints the raw user ID behind uid.
func RunDecodeUser(ctx context.Context, bridge pseudonymUseCase.IDBridge, writer io.Writer, uid string) error {
	tid, err := bridge.DecodeUser(ctx, uid)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(writer, tid)
	return nil
}

// RunEncodeChat prints the public identifier of the negative chat ID tgid.
func RunEncodeChat(ctx context.Context, bridge pseudonymUseCase.IDBridge, writer io.Writer, tgid int64) error {
	ugid, err := bridge.EncodeChat(ctx, tgid)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(writer, ugid)
	return nil
}

// RunDecodeChat prints the raw chat ID behind ugid.
func RunDecodeChat(ctx context.Context, bridge pseudonymUseCase.IDBridge, writer io.Writer, ugid string) error {
	tgid, err := bridge.DecodeChat(ctx, ugid)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(writer, tgid)
	return nil
}

type resolveChatOutput struct {
	Reference *string `json:"reference"`
	TGID      *int64  `json:"tgid"`
}

// RunResolveChat resolves a chat reference in either raw or public form.
// A nil reference prints "null".
func RunResolveChat(
	ctx context.Context,
	bridge pseudonymUseCase.IDBridge,
	writer io.Writer,
	reference *string,
	format string,
) error {
	tgid, err := bridge.ResolveChatReference(ctx, reference)
	if err != nil {
		return err
	}

	return writeOutput(writer, format, resolveChatOutput{Reference: reference, TGID: tgid}, func(w io.Writer) {
		if tgid == nil {
			_, _ = fmt.Fprintln(w, "null")
			return
		}
		_, _ = fmt.Fprintln(w, *tgid)
	})
}

type adminRecipientsOutput struct {
	Configured int     `json:"configured"`
	Recipients []int64 `json:"recipients"`
}

// RunAdminRecipients prints the raw user ID of every decodable admin entry,
// one per line. Undecodable entries are logged and skipped by the bridge.
func RunAdminRecipients(
	ctx context.Context,
	bridge pseudonymUseCase.IDBridge,
	admins pseudonymDomain.AdminSet,
	writer io.Writer,
	format string,
) error {
	recipients := bridge.ResolveAdminRecipients(ctx, admins)
	if recipients == nil {
		recipients = []int64{}
	}

	output := adminRecipientsOutput{Configured: len(admins), Recipients: recipients}
	return writeOutput(writer, format, output, func(w io.Writer) {
		for _, r := range recipients {
			_, _ = fmt.Fprintln(w, strconv.FormatInt(r, 10))
		}
	})
}
