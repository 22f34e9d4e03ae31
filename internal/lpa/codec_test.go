package lpa

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/spec-kit/esim-activation-service/pkg/util"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want ParsedCode
	}{
		{
			name: "basic",
			in:   "LPA:1$smdp.example.com$ABC123",
			want: ParsedCode{Server: "smdp.example.com", Code: "ABC123"},
		},
		{
			name: "with confirmation",
			in:   "LPA:1$smdp.example.com$ABC123$SECRET",
			want: ParsedCode{Server: "smdp.example.com", Code: "ABC123", Confirmation: "SECRET"},
		},
		{
			name: "empty confirmation segment",
			in:   "LPA:1$smdp.example.com$ABC123$",
			want: ParsedCode{Server: "smdp.example.com", Code: "ABC123"},
		},
		{
			name: "prefix is case-insensitive",
			in:   "lpa:1$SMDP.Example.Com$abc123",
			want: ParsedCode{Server: "SMDP.Example.Com", Code: "abc123"},
		},
		{
			name: "surrounding whitespace stripped",
			in:   "  LPA:1$smdp.example.com$ABC123\n",
			want: ParsedCode{Server: "smdp.example.com", Code: "ABC123"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseInvalid(t *testing.T) {
	t.Parallel()

	invalid := []string{
		"",
		"LPA:1",
		"LPA:1$",
		"LPA:1$server",
		"LPA:1$server$",
		"LPA:1$$code",
		"LPA:2$server$code",
		"1$server$code",
		"scanned garbage",
		"LPA:1$server$code$extra$segment",
	}

	for _, in := range invalid {
		got, err := Parse(in)
		require.Errorf(t, err, "input %q", in)
		assert.True(t, apperrors.IsCode(err, "INVALID_FORMAT"), "input %q", in)
		assert.Zero(t, got)
	}
}

func TestRenderRoundTrip(t *testing.T) {
	t.Parallel()

	codes := []string{
		"LPA:1$smdp.example.com$ABC123",
		"LPA:1$smdp.example.com$ABC123$SECRET",
		"lpa:1$SMDP.Example.Com$abc-123",
		"  LPA:1$rsp.truphone.com$QR-G-5C-1LS-1W1Z9P7  ",
	}

	for _, code := range codes {
		first, err := Parse(code)
		require.NoError(t, err)

		second, err := Parse(first.Render())
		require.NoError(t, err)
		assert.Equal(t, first, second, "round-trip of %q", code)
	}
}

func TestRenderOmitsEmptyConfirmation(t *testing.T) {
	t.Parallel()

	parsed, err := Parse("LPA:1$smdp.example.com$ABC123$")
	require.NoError(t, err)
	assert.Equal(t, "LPA:1$smdp.example.com$ABC123", parsed.Render())
}

func TestActivationURL(t *testing.T) {
	t.Parallel()

	got := ActivationURL("LPA:1$smdp.example.com$ABC123")
	assert.Equal(t,
		"https://esimsetup.apple.com/esim_qrcode_provisioning?carddata=LPA%3A1%24smdp.example.com%24ABC123",
		got)

	// Not re-validated: any string is encoded as-is.
	assert.Equal(t,
		"https://esimsetup.apple.com/esim_qrcode_provisioning?carddata=not-a-code",
		ActivationURL("not-a-code"))
}
