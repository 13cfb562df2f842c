package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pseudonymDomain "github.com/allisson/ecdc/internal/pseudonym/domain"
)

func TestPrepare_ReferenceVectors(t *testing.T) {
	tests := []struct {
		secret string
		tweak  string
		tid    int64
		uid    string
	}{
		{"qwerty123", "123", 12_345_678, "5377-6196-7198"},
		{"qwerty123", "123", 123_456_789, "8678-9607-3662"},
		{"correct horse battery staple", "prod", 42, "3467-7244-0811"},
	}

	for _, tt := range tests {
		t.Run(tt.uid, func(t *testing.T) {
			cfg := pseudonymDomain.Config{
				Secret:     tt.secret,
				Tweak:      tt.tweak,
				KDF:        pseudonymDomain.KDFSHA256,
				Iterations: 200_000,
			}
			prepared, err := Prepare(cfg)
			require.NoError(t, err)

			y, err := prepared.EncryptUser(tt.tid)
			require.NoError(t, err)
			assert.Equal(t, tt.uid, pseudonymDomain.FormatUser(y))

			back, err := prepared.DecryptUser(y)
			require.NoError(t, err)
			assert.Equal(t, tt.tid, back)
		})
	}
}

func TestPrepare_ChatVectors(t *testing.T) {
	prepared, err := Prepare(pseudonymDomain.Config{
		Secret:     "qwerty123",
		Tweak:      "123",
		KDF:        pseudonymDomain.KDFSHA256,
		Iterations: 200_000,
	})
	require.NoError(t, err)

	tests := []struct {
		abs  int64
		ugid string
	}{
		{1_001_234_567_890, "-2833-6527-1273-2326"},
		{1, "-8606-7971-5817-7784"},
		{9_999_999_999_999_999, "-6763-7294-8688-8834"},
	}

	for _, tt := range tests {
		y, err := prepared.EncryptChat(tt.abs)
		require.NoError(t, err)
		assert.Equal(t, tt.ugid, pseudonymDomain.FormatChat(y))

		back, err := prepared.DecryptChat(y)
		require.NoError(t, err)
		assert.Equal(t, tt.abs, back)
	}
}

func TestPrepare_Normalization(t *testing.T) {
	prepared, err := Prepare(pseudonymDomain.Config{
		Secret:     "  qwerty123 ",
		Tweak:      " 123\n",
		KDF:        "SHA256",
		Iterations: 200_000,
	})
	require.NoError(t, err)

	assert.Equal(t, "123", prepared.Tweak())
	assert.Equal(t, pseudonymDomain.KDFSHA256, prepared.KDF())
	assert.Equal(t, 200_000, prepared.Iterations())

	y, err := prepared.EncryptUser(12_345_678)
	require.NoError(t, err)
	assert.Equal(t, "5377-6196-7198", pseudonymDomain.FormatUser(y))
}

func TestPrepare_Deterministic(t *testing.T) {
	cfg := pseudonymDomain.Config{Secret: "test-secret", Tweak: "default", KDF: "sha256", Iterations: 1000}

	a, err := Prepare(cfg)
	require.NoError(t, err)
	b, err := Prepare(cfg)
	require.NoError(t, err)

	for _, tid := range []int64{0, 42, 12_345_678, 999_999_999_999} {
		ya, err := a.EncryptUser(tid)
		require.NoError(t, err)
		yb, err := b.EncryptUser(tid)
		require.NoError(t, err)
		assert.Equal(t, ya, yb)
	}

	y, err := a.EncryptUser(42)
	require.NoError(t, err)
	assert.Equal(t, "5163-5393-6396", pseudonymDomain.FormatUser(y))
}

func TestPrepare_SHA1(t *testing.T) {
	prepared, err := Prepare(pseudonymDomain.Config{
		Secret:     "qwerty123",
		Tweak:      "123",
		KDF:        pseudonymDomain.KDFSHA1,
		Iterations: 200_000,
	})
	require.NoError(t, err)

	y, err := prepared.EncryptUser(12_345_678)
	require.NoError(t, err)
	assert.Equal(t, "9640-9719-6607", pseudonymDomain.FormatUser(y))
}

func TestPrepare_ConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		cfg     pseudonymDomain.Config
		wantErr error
	}{
		{
			name:    "Error_EmptySecret",
			cfg:     pseudonymDomain.Config{Secret: "", Iterations: 10},
			wantErr: pseudonymDomain.ErrMissingSecret,
		},
		{
			name:    "Error_BlankSecret",
			cfg:     pseudonymDomain.Config{Secret: "   ", Iterations: 10},
			wantErr: pseudonymDomain.ErrMissingSecret,
		},
		{
			name:    "Error_ZeroIterations",
			cfg:     pseudonymDomain.Config{Secret: "s", Iterations: 0},
			wantErr: pseudonymDomain.ErrInvalidIterations,
		},
		{
			name:    "Error_UnsupportedKDF",
			cfg:     pseudonymDomain.Config{Secret: "s", KDF: "sha512", Iterations: 10},
			wantErr: pseudonymDomain.ErrUnsupportedKDF,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prepared, err := Prepare(tt.cfg)
			assert.Nil(t, prepared)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
