package web

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_ParseObjectID(t *testing.T) {
	logger := slog.New(slog.DiscardHandler)
	testCases := []struct {
		name       string
		id         string
		expectOK   bool
		expectCode int
	}{
		{name: "valid 24-hex id", id: "64b2f0e4a1b2c3d4e5f60718", expectOK: true},
		{name: "uppercase hex accepted", id: "64B2F0E4A1B2C3D4E5F60718", expectOK: true},
		{name: "too short", id: "abc", expectOK: false, expectCode: http.StatusBadRequest},
		{name: "too long", id: "64b2f0e4a1b2c3d4e5f60718ff", expectOK: false, expectCode: http.StatusBadRequest},
		{name: "right length, non-hex", id: "zzzzzzzzzzzzzzzzzzzzzzzz", expectOK: false, expectCode: http.StatusBadRequest},
		{name: "empty", id: "", expectOK: false, expectCode: http.StatusBadRequest},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			req := httptest.NewRequest(http.MethodGet, "/products/x", nil)
			req.SetPathValue("id", tc.id)
			rr := httptest.NewRecorder()

			// when
			id, ok := ParseObjectID(rr, req, logger)

			// then
			assert.Equal(t, tc.expectOK, ok)
			if !tc.expectOK {
				assert.Equal(t, tc.expectCode, rr.Code)
				return
			}
			assert.Equal(t, strings.ToLower(tc.id), id.Hex(), "hex form should round-trip")
		})
	}
}
