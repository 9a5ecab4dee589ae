package sec

import (
	"encoding/base64"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseBasicAuth(t *testing.T) {
	t.Parallel()

	encode := func(s string) string { return base64.StdEncoding.EncodeToString([]byte(s)) }

	tests := []struct {
		name   string
		header string
		want   Credentials
		wantOK bool
	}{
		{
			name:   "valid",
			header: "Basic " + encode("joe@smith.com:joepassword"),
			want:   Credentials{Username: "joe@smith.com", Password: "joepassword"},
			wantOK: true,
		},
		{
			name:   "scheme is case-insensitive",
			header: "bAsIc " + encode("joe@smith.com:pw"),
			want:   Credentials{Username: "joe@smith.com", Password: "pw"},
			wantOK: true,
		},
		{
			name:   "extra whitespace",
			header: "  Basic   " + encode("joe@smith.com:pw") + " ",
			want:   Credentials{Username: "joe@smith.com", Password: "pw"},
			wantOK: true,
		},
		{
			name:   "colons belong to the password",
			header: "Basic " + encode("a@b.c:p:a:ss"),
			want:   Credentials{Username: "a@b.c", Password: "p:a:ss"},
			wantOK: true,
		},
		{
			name:   "empty password",
			header: "Basic " + encode("a@b.c:"),
			want:   Credentials{Username: "a@b.c"},
			wantOK: true,
		},
		{
			name:   "unpadded base64",
			header: "Basic " + strings.TrimRight(encode("a@b.c:pw1"), "="),
		},
		{
			name:   "embedded newline",
			header: "Basic " + encode("a@b.c:pw1")[:4] + "\r\n" + encode("a@b.c:pw1")[4:],
		},
		{
			name:   "empty",
			header: "",
		},
		{
			name:   "scheme only",
			header: "Basic",
		},
		{
			name:   "scheme and space only",
			header: "Basic ",
		},
		{
			name:   "other scheme",
			header: "Bearer " + encode("a@b.c:pw"),
		},
		{
			name:   "no colon",
			header: "Basic " + encode("a@b.c"),
		},
		{
			name:   "invalid base64",
			header: "Basic !!!not-base64!!!",
		},
		{
			name:   "invalid utf-8",
			header: "Basic " + base64.StdEncoding.EncodeToString([]byte{'a', ':', 0xff, 0xfe}),
		},
		{
			name:   "multiple tokens",
			header: "Basic " + encode("a@b.c:pw") + " " + encode("x:y"),
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			creds, ok := ParseBasicAuth(test.header)
			assert.Equal(t, test.wantOK, ok)
			assert.Equal(t, test.want, creds)
		})
	}
}

func TestBasicAuthHeader(t *testing.T) {
	t.Parallel()

	creds := Credentials{Username: "sally@jones.com", Password: "s:e:c:r:e:t"}
	actual, ok := ParseBasicAuth(BasicAuthHeader(creds))
	assert.True(t, ok)
	assert.Equal(t, creds, actual)
}

func TestCredentials_LogValue(t *testing.T) {
	t.Parallel()

	var buf strings.Builder
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	logger.Info("test", slog.Any("creds", Credentials{Username: "joe", Password: "hunter2"}))

	assert.Contains(t, buf.String(), "creds.username=joe")
	assert.NotContains(t, buf.String(), "hunter2")
}
