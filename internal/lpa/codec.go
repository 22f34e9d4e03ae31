// Package lpa parses and renders carrier provisioning codes in the
// LPA:1$<server>$<code>[$<confirmation>] activation-code format.
package lpa

import (
	"net/url"
	"regexp"
	"strings"

	apperrors "github.com/spec-kit/esim-activation-service/pkg/util"
)

// activationBaseURL is the external provisioning endpoint the rendered code
// is handed to.
const activationBaseURL = "https://esimsetup.apple.com/esim_qrcode_provisioning?carddata="

// codePattern matches the activation-code format. The LPA:1 prefix and the
// delimiters are case-insensitive; captured segments keep their case.
var codePattern = regexp.MustCompile(`(?i)^LPA:1\$([^$]+)\$([^$]+)(?:\$([^$]*))?$`)

// ParsedCode holds the captured segments of a valid provisioning code.
type ParsedCode struct {
	Server       string
	Code         string
	Confirmation string
}

// Parse validates a provisioning code and returns its segments. Leading and
// trailing whitespace is stripped before matching. Malformed input yields an
// INVALID_FORMAT domain error, never a partial match.
func Parse(code string) (ParsedCode, error) {
	match := codePattern.FindStringSubmatch(strings.TrimSpace(code))
	if match == nil {
		return ParsedCode{}, apperrors.NewInvalidFormat("invalid provisioning code")
	}
	return ParsedCode{
		Server:       match[1],
		Code:         match[2],
		Confirmation: match[3],
	}, nil
}

// Render reconstructs the canonical code string. The confirmation segment and
// its delimiter are omitted when empty, so Render is a left inverse of Parse
// for any code that round-trips.
func (p ParsedCode) Render() string {
	s := "LPA:1$" + p.Server + "$" + p.Code
	if p.Confirmation != "" {
		s += "$" + p.Confirmation
	}
	return s
}

// ActivationURL percent-encodes the code string onto the external activation
// endpoint. No validation happens here: callers pass already-validated codes
// and own validation at the boundary.
func ActivationURL(code string) string {
	return activationBaseURL + url.QueryEscape(strings.TrimSpace(code))
}
