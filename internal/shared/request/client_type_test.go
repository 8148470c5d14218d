package request

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveClientType(t *testing.T) {
	tests := []struct {
		name   string
		header string
		ua     string
		want   ClientType
	}{
		{"explicit web", "web", "", ClientWeb},
		{"explicit mobile wins over ua", "MOBILE", "Mozilla/5.0", ClientMobile},
		{"browser ua", "", "Mozilla/5.0 (X11; Linux x86_64)", ClientWeb},
		{"android ua", "", "Mozilla/5.0 (Linux; Android 14)", ClientMobile},
		{"curl", "", "curl/8.4.0", ClientAPI},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveClientType(tt.header, tt.ua))
		})
	}
}
