package sec

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanModify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		identity uint64
		owner    uint64
		want     bool
	}{
		{name: "owner", identity: 42, owner: 42, want: true},
		{name: "other user", identity: 7, owner: 42, want: false},
		{name: "no identity", identity: 0, owner: 42, want: false},
		{name: "no identity or owner", identity: 0, owner: 0, want: false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, test.want, CanModify(test.identity, test.owner))
		})
	}
}
