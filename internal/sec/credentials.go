package sec

import (
	"encoding/base64"
	"log/slog"
	"strings"
	"unicode/utf8"
)

const basicScheme = "Basic"

// Credentials is the username and password pair presented by a client. The
// password is never included when logged.
type Credentials struct {
	Username string
	Password string
}

// LogValue satisfies [slog.LogValuer].
func (c Credentials) LogValue() slog.Value {
	return slog.GroupValue(slog.String("username", c.Username))
}

// ParseBasicAuth extracts the credentials from the value of an Authorization
// header using the Basic scheme. The scheme is case-insensitive and surrounding
// whitespace is ignored. Only the first colon of the decoded payload separates
// the username from the password.
//
// False is returned if the value is empty, uses a different scheme, is not
// valid base64, is not valid UTF-8, or has no colon.
func ParseBasicAuth(header string) (creds Credentials, ok bool) {
	scheme, payload, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, basicScheme) {
		return creds, false
	}
	payload = strings.TrimLeft(payload, " ")
	// the decoder skips newlines, so reject them along with inner spaces
	if payload == "" || strings.ContainsAny(payload, " \r\n") {
		return creds, false
	}

	decoded, err := base64.StdEncoding.Strict().DecodeString(payload)
	if err != nil {
		return creds, false
	}
	if !utf8.Valid(decoded) {
		return creds, false
	}

	username, password, found := strings.Cut(string(decoded), ":")
	if !found {
		return creds, false
	}
	return Credentials{Username: username, Password: password}, true
}

// BasicAuthHeader encodes creds as an Authorization header value. It is the
// inverse of [ParseBasicAuth].
func BasicAuthHeader(creds Credentials) string {
	return basicScheme + " " + base64.StdEncoding.EncodeToString([]byte(creds.Username+":"+creds.Password))
}
