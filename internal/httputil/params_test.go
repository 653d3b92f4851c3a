package httputil_test

import (
	"net/http/httptest"
	"testing"

	"github.com/vovandreevik/Automation-of-the-Dean-office/internal/httputil"

	"github.com/stretchr/testify/assert"
)

func TestListParams(t *testing.T) {
	tests := []struct {
		name       string
		url        string
		wantOffset int
		wantLimit  int
	}{
		{"Defaults", "/groups", 0, 10000},
		{"Both", "/groups?skip=20&limit=50", 20, 50},
		{"SkipOnly", "/groups?skip=5", 5, 10000},
		{"LimitOnly", "/groups?limit=3", 0, 3},
		{"NegativeSkipIgnored", "/groups?skip=-1", 0, 10000},
		{"ZeroLimitIgnored", "/groups?limit=0", 0, 10000},
		{"MalformedIgnored", "/groups?skip=abc&limit=xyz", 0, 10000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			offset, limit := httputil.ListParams(httptest.NewRequest("GET", tt.url, nil))
			assert.Equal(t, tt.wantOffset, offset)
			assert.Equal(t, tt.wantLimit, limit)
		})
	}
}
