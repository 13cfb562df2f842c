package usecase

import (
	"context"
	"time"

	"github.com/allisson/ecdc/internal/metrics"
	pseudonymDomain "github.com/allisson/ecdc/internal/pseudonym/domain"
)

const metricsDomain = "pseudonym"

// idBridgeWithMetrics decorates IDBridge with metrics instrumentation.
type idBridgeWithMetrics struct {
	next    IDBridge
	metrics metrics.BusinessMetrics
}

// NewIDBridgeWithMetrics wraps an IDBridge with metrics recording.
func NewIDBridgeWithMetrics(bridge IDBridge, m metrics.BusinessMetrics) IDBridge {
	return &idBridgeWithMetrics{
		next:    bridge,
		metrics: m,
	}
}

func (d *idBridgeWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}

	d.metrics.RecordOperation(ctx, metricsDomain, operation, status)
	d.metrics.RecordDuration(ctx, metricsDomain, operation, time.Since(start), status)
}

func (d *idBridgeWithMetrics) Enabled() bool {
	return d.next.Enabled()
}

// EncodeUser records metrics for user encoding operations.
func (d *idBridgeWithMetrics) EncodeUser(ctx context.Context, tid int64) (string, error) {
	start := time.Now()
	uid, err := d.next.EncodeUser(ctx, tid)
	d.record(ctx, "user_encode", start, err)
	return uid, err
}

// DecodeUser records metrics for user decoding operations.
func (d *idBridgeWithMetrics) DecodeUser(ctx context.Context, uid string) (int64, error) {
	start := time.Now()
	tid, err := d.next.DecodeUser(ctx, uid)
	d.record(ctx, "user_decode", start, err)
	return tid, err
}

// NormalizeUser records metrics for user normalization operations.
func (d *idBridgeWithMetrics) NormalizeUser(ctx context.Context, uid string) (string, error) {
	start := time.Now()
	normalized, err := d.next.NormalizeUser(ctx, uid)
	d.record(ctx, "user_normalize", start, err)
	return normalized, err
}

// BuildIdentity records metrics for identity construction.
func (d *idBridgeWithMetrics) BuildIdentity(
	ctx context.Context,
	tid int64,
) (pseudonymDomain.UserIdentity, error) {
	start := time.Now()
	identity, err := d.next.BuildIdentity(ctx, tid)
	d.record(ctx, "user_identity", start, err)
	return identity, err
}

// EncodeChat records metrics for chat encoding operations.
func (d *idBridgeWithMetrics) EncodeChat(ctx context.Context, tgid int64) (string, error) {
	start := time.Now()
	ugid, err := d.next.EncodeChat(ctx, tgid)
	d.record(ctx, "chat_encode", start, err)
	return ugid, err
}

// DecodeChat records metrics for chat decoding operations.
func (d *idBridgeWithMetrics) DecodeChat(ctx context.Context, ugid string) (int64, error) {
	start := time.Now()
	tgid, err := d.next.DecodeChat(ctx, ugid)
	d.record(ctx, "chat_decode", start, err)
	return tgid, err
}

// IsAdmin records metrics for admin checks. The check itself never fails.
func (d *idBridgeWithMetrics) IsAdmin(ctx context.Context, tid int64, admins pseudonymDomain.AdminSet) bool {
	start := time.Now()
	ok := d.next.IsAdmin(ctx, tid, admins)
	d.record(ctx, "admin_check", start, nil)
	return ok
}

// ResolveChatReference records metrics for chat reference resolution.
func (d *idBridgeWithMetrics) ResolveChatReference(ctx context.Context, reference *string) (*int64, error) {
	start := time.Now()
	tgid, err := d.next.ResolveChatReference(ctx, reference)
	d.record(ctx, "chat_resolve", start, err)
	return tgid, err
}

// ResolveAdminRecipients records metrics for admin recipient resolution.
func (d *idBridgeWithMetrics) ResolveAdminRecipients(
	ctx context.Context,
	admins pseudonymDomain.AdminSet,
) []int64 {
	start := time.Now()
	recipients := d.next.ResolveAdminRecipients(ctx, admins)
	d.record(ctx, "admin_recipients", start, nil)
	return recipients
}
