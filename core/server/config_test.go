package server_test

import (
	"testing"

	"listkit/core/server"

	"github.com/stretchr/testify/assert"
)

func TestConfig_ReorderPolicy(t *testing.T) {
	tests := []struct {
		name      string
		cfg       server.Config
		wantMove  bool
		wantCross bool
	}{
		{"Disabled", server.Config{}, false, false},
		{"InGroupOnly", server.Config{ReorderEnabled: true}, true, false},
		{"CrossGroup", server.Config{ReorderEnabled: true, AllowCrossGroup: true}, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tt.cfg.ReorderPolicy()
			assert.Equal(t, tt.wantMove, p.Enabled)
			assert.Equal(t, tt.wantCross, p.AllowCrossSection)
		})
	}
}
