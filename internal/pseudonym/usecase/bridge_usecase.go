package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	pseudonymDomain "github.com/allisson/ecdc/internal/pseudonym/domain"
	pseudonymService "github.com/allisson/ecdc/internal/pseudonym/service"
)

// idBridge implements IDBridge on top of a prepared key context.
type idBridge struct {
	prepared *pseudonymService.Prepared
	logger   *slog.Logger
}

// NewIDBridge creates an IDBridge. A nil prepared context selects pass-through mode.
func NewIDBridge(prepared *pseudonymService.Prepared, logger *slog.Logger) IDBridge {
	if logger == nil {
		logger = slog.Default()
	}
	return &idBridge{
		prepared: prepared,
		logger:   logger,
	}
}

func (b *idBridge) Enabled() bool {
	return b.prepared != nil
}

// EncodeUser encrypts tid on the 12-digit domain and formats it.
func (b *idBridge) EncodeUser(_ context.Context, tid int64) (string, error) {
	if !b.Enabled() {
		return strconv.FormatInt(tid, 10), nil
	}

	uid, err := b.prepared.EncryptUser(tid)
	if err != nil {
		return "", err
	}
	return pseudonymDomain.FormatUser(uid), nil
}

// DecodeUser parses uid, requiring exactly 12 digits, and decrypts it.
func (b *idBridge) DecodeUser(_ context.Context, uid string) (int64, error) {
	if !b.Enabled() {
		return parseRaw(uid)
	}

	n, err := pseudonymDomain.ParseUser(uid)
	if err != nil {
		return 0, err
	}
	return b.prepared.DecryptUser(n)
}

// NormalizeUser returns uid unchanged in pass-through mode.
func (b *idBridge) NormalizeUser(_ context.Context, uid string) (string, error) {
	if !b.Enabled() {
		return uid, nil
	}
	return pseudonymDomain.NormalizeUser(uid)
}

func (b *idBridge) BuildIdentity(ctx context.Context, tid int64) (pseudonymDomain.UserIdentity, error) {
	uid, err := b.EncodeUser(ctx, tid)
	if err != nil {
		return pseudonymDomain.UserIdentity{}, err
	}
	return pseudonymDomain.UserIdentity{TID: tid, UID: uid}, nil
}

// EncodeChat encrypts |tgid| on the 16-digit domain. tgid must be negative.
func (b *idBridge) EncodeChat(_ context.Context, tgid int64) (string, error) {
	if !b.Enabled() {
		return strconv.FormatInt(tgid, 10), nil
	}

	if tgid >= 0 {
		return "", fmt.Errorf("%w: chat id must be negative, got %d", pseudonymDomain.ErrOutOfDomain, tgid)
	}

	n, err := b.prepared.EncryptChat(-tgid)
	if err != nil {
		return "", err
	}
	return pseudonymDomain.FormatChat(n), nil
}

// DecodeChat decrypts ugid and restores the negative sign.
func (b *idBridge) DecodeChat(_ context.Context, ugid string) (int64, error) {
	if !b.Enabled() {
		return parseRaw(ugid)
	}

	n, err := pseudonymDomain.ParseChat(ugid)
	if err != nil {
		return 0, err
	}

	abs, err := b.prepared.DecryptChat(n)
	if err != nil {
		return 0, err
	}
	return -abs, nil
}

// IsAdmin compares the public form of tid against admins when enabled, and the
// raw decimal form otherwise.
func (b *idBridge) IsAdmin(ctx context.Context, tid int64, admins pseudonymDomain.AdminSet) bool {
	if len(admins) == 0 {
		return false
	}

	if !b.Enabled() {
		return admins.Contains(strconv.FormatInt(tid, 10))
	}

	uid, err := b.EncodeUser(ctx, tid)
	if err != nil {
		return false
	}
	return admins.ContainsUID(uid)
}

// ResolveChatReference disambiguates by digit count: exactly 16 digits is a
// public identifier, anything else is parsed as a raw chat ID.
func (b *idBridge) ResolveChatReference(ctx context.Context, reference *string) (*int64, error) {
	if reference == nil {
		return nil, nil
	}

	ref := strings.TrimSpace(*reference)
	if b.Enabled() && len(pseudonymDomain.StripDigits(ref)) == pseudonymDomain.ChatDomain.Width {
		tgid, err := b.DecodeChat(ctx, ref)
		if err != nil {
			return nil, err
		}
		return &tgid, nil
	}

	tgid, err := strconv.ParseInt(ref, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", pseudonymDomain.ErrUnsupportedChatReference, *reference)
	}
	return &tgid, nil
}

func (b *idBridge) ResolveAdminRecipients(ctx context.Context, admins pseudonymDomain.AdminSet) []int64 {
	recipients := make([]int64, 0, len(admins))
	for i, entry := range admins {
		tid, err := b.DecodeUser(ctx, strings.TrimSpace(entry))
		if err != nil {
			b.logger.Warn("skipping invalid admin identifier",
				slog.Int("index", i),
				slog.Bool("id_encryption_enabled", b.Enabled()),
				slog.Any("error", err),
			)
			continue
		}
		recipients = append(recipients, tid)
	}
	return recipients
}

// parseRaw parses a raw decimal identifier used in pass-through mode.
func parseRaw(s string) (int64, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a decimal identifier", pseudonymDomain.ErrInvalidFormat, s)
	}
	return n, nil
}
