package pagination

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testCursor struct {
	AfterID uint64 `json:"after_id" validate:"required"`
}

func TestToToken(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cursor  testCursor
		wantErr bool
	}{
		{
			name:    "valid cursor",
			cursor:  testCursor{AfterID: 42},
			wantErr: false,
		},
		{
			name:    "invalid cursor missing required field",
			cursor:  testCursor{},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			tkn, err := ToToken(tt.cursor)
			if tt.wantErr {
				var tokenErr TokenError
				require.ErrorAs(t, err, &tokenErr)
				assert.Empty(t, tkn)
			} else {
				require.NoError(t, err)
				assert.NotEmpty(t, tkn)
			}
		})
	}
}

func TestFromToken(t *testing.T) {
	t.Parallel()

	validToken, err := ToToken(testCursor{AfterID: 42})
	require.NoError(t, err)

	// {"after_id":0} fails the required check
	zeroToken := tokenEncoding.EncodeToString([]byte(`{"after_id":0}`))

	tests := []struct {
		name    string
		token   string
		want    testCursor
		wantErr bool
	}{
		{
			name:  "valid token",
			token: validToken,
			want:  testCursor{AfterID: 42},
		},
		{
			name:    "invalid base64",
			token:   "not-valid-base64!!!",
			wantErr: true,
		},
		{
			name:    "invalid json",
			token:   tokenEncoding.EncodeToString([]byte("{")),
			wantErr: true,
		},
		{
			name:    "wrong field type",
			token:   tokenEncoding.EncodeToString([]byte(`{"after_id":"abc"}`)),
			wantErr: true,
		},
		{
			name:    "fails validation",
			token:   zeroToken,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cursor, err := FromToken[testCursor](tt.token)
			if tt.wantErr {
				var tokenErr TokenError
				require.ErrorAs(t, err, &tokenErr)
				assert.Equal(t, "invalid pagination token", err.Error())
				assert.Error(t, errors.Unwrap(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, cursor)
		})
	}
}
