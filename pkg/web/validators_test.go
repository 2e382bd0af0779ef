package web

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_ParseOptionalInt(t *testing.T) {
	logger := slog.New(slog.DiscardHandler)
	testCases := []struct {
		name       string
		target     string
		expectOK   bool
		expected   int64
		expectCode int
	}{
		{name: "absent falls back to default", target: "/products", expectOK: true, expected: 50},
		{name: "present and valid", target: "/products?limit=7", expectOK: true, expected: 7},
		{name: "negative is parsed, clamping is the caller's concern", target: "/products?limit=-3", expectOK: true, expected: -3},
		{name: "not a number", target: "/products?limit=ten", expectOK: false, expectCode: http.StatusBadRequest},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			req := httptest.NewRequest(http.MethodGet, tc.target, nil)
			rr := httptest.NewRecorder()

			// when
			value, ok := ParseOptionalInt(req, rr, logger, "limit", 50)

			// then
			assert.Equal(t, tc.expectOK, ok)
			if !tc.expectOK {
				assert.Equal(t, tc.expectCode, rr.Code)
				return
			}
			assert.Equal(t, tc.expected, value)
		})
	}
}
