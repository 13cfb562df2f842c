package usecase

import (
	"context"
	"fmt"
	"strconv"

	pseudonymDomain "github.com/allisson/ecdc/internal/pseudonym/domain"
	pseudonymService "github.com/allisson/ecdc/internal/pseudonym/service"
)

// ReferenceVector is a published (secret, tweak, tid) -> uid mapping computed
// with SHA-256 and 200000 iterations.
type ReferenceVector struct {
	Secret string
	Tweak  string
	TID    int64
	UID    string
}

// ReferenceVectors must reproduce exactly on every build.
var ReferenceVectors = []ReferenceVector{
	{Secret: "qwerty123", Tweak: "123", TID: 12_345_678, UID: "5377-6196-7198"},
	{Secret: "qwerty123", Tweak: "123", TID: 123_456_789, UID: "8678-9607-3662"},
	{Secret: "correct horse battery staple", Tweak: "prod", TID: 42, UID: "3467-7244-0811"},
}

var (
	userRoundTripSamples = []int64{0, 42, 12_345_678, 999_999_999_999}
	chatRoundTripSamples = []int64{-1, -100, -1_001_234_567_890, -9_999_999_999_999_999}
)

// SelfTestCase is the outcome of one self-test vector or round trip.
type SelfTestCase struct {
	Label  string
	Input  string
	Output string
	Back   string
	Passed bool
	Err    error
}

func (c SelfTestCase) String() string {
	status := "OK"
	if !c.Passed {
		status = "FAIL"
	}
	if c.Err != nil {
		return fmt.Sprintf("%s%s -> Error: %v  [%s]", c.Label, c.Input, c.Err, status)
	}
	return fmt.Sprintf("%s%s -> %s -> %s  [%s]", c.Label, c.Input, c.Output, c.Back, status)
}

// SelfTestReport collects every case run by RunSelfTest.
type SelfTestReport struct {
	Reference  []SelfTestCase
	RoundTrips []SelfTestCase
	// ConfigErr is set when the supplied configuration could not be prepared.
	ConfigErr error
}

// Passed reports whether every case passed.
func (r SelfTestReport) Passed() bool {
	if r.ConfigErr != nil {
		return false
	}
	for _, c := range r.Reference {
		if !c.Passed {
			return false
		}
	}
	for _, c := range r.RoundTrips {
		if !c.Passed {
			return false
		}
	}
	return true
}

// Err returns ErrSelfTestFailed when any case failed.
func (r SelfTestReport) Err() error {
	if r.Passed() {
		return nil
	}
	return pseudonymDomain.ErrSelfTestFailed
}

// RunSelfTest runs the reference vectors under their own configurations, then
// user and chat round trips under cfg. cfg may be nil to skip round trips.
func RunSelfTest(cfg *pseudonymDomain.Config) SelfTestReport {
	ctx := context.Background()
	report := SelfTestReport{}

	prepared := make(map[pseudonymDomain.Config]*pseudonymService.Prepared)
	for _, v := range ReferenceVectors {
		vcfg := pseudonymDomain.Config{
			Secret:     v.Secret,
			Tweak:      v.Tweak,
			KDF:        pseudonymDomain.KDFSHA256,
			Iterations: pseudonymDomain.DefaultIterations,
		}
		label := fmt.Sprintf("secret=%q tweak=%q tid=", v.Secret, v.Tweak)
		c := SelfTestCase{Label: label, Input: strconv.FormatInt(v.TID, 10)}

		p, ok := prepared[vcfg]
		if !ok {
			var err error
			if p, err = pseudonymService.Prepare(vcfg); err != nil {
				c.Err = err
				report.Reference = append(report.Reference, c)
				continue
			}
			prepared[vcfg] = p
		}

		bridge := NewIDBridge(p, nil)
		c.Output, c.Err = bridge.EncodeUser(ctx, v.TID)
		if c.Err == nil {
			var back int64
			back, c.Err = bridge.DecodeUser(ctx, c.Output)
			c.Back = strconv.FormatInt(back, 10)
			c.Passed = c.Err == nil && c.Output == v.UID && back == v.TID
		}
		report.Reference = append(report.Reference, c)
	}

	if cfg == nil {
		return report
	}

	p, err := pseudonymService.Prepare(*cfg)
	if err != nil {
		report.ConfigErr = err
		return report
	}
	bridge := NewIDBridge(p, nil)

	for _, tid := range userRoundTripSamples {
		c := SelfTestCase{Label: "tid=", Input: strconv.FormatInt(tid, 10)}
		c.Output, c.Err = bridge.EncodeUser(ctx, tid)
		if c.Err == nil {
			var back int64
			back, c.Err = bridge.DecodeUser(ctx, c.Output)
			c.Back = strconv.FormatInt(back, 10)
			c.Passed = c.Err == nil && back == tid
		}
		report.RoundTrips = append(report.RoundTrips, c)
	}

	for _, tgid := range chatRoundTripSamples {
		c := SelfTestCase{Label: "tgid=", Input: strconv.FormatInt(tgid, 10)}
		c.Output, c.Err = bridge.EncodeChat(ctx, tgid)
		if c.Err == nil {
			var back int64
			back, c.Err = bridge.DecodeChat(ctx, c.Output)
			c.Back = strconv.FormatInt(back, 10)
			c.Passed = c.Err == nil && back == tgid
		}
		report.RoundTrips = append(report.RoundTrips, c)
	}

	return report
}
