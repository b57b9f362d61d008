package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractToken(t *testing.T) {
	cases := []struct {
		name   string
		header string
		cookie string
		want   string
	}{
		{"bearer header", "Bearer abc", "", "abc"},
		{"cookie only", "", "xyz", "xyz"},
		{"header wins over cookie", "Bearer abc", "xyz", "abc"},
		{"malformed header falls back to cookie", "Token abc", "xyz", "xyz"},
		{"malformed header without cookie", "Token abc", "", ""},
		{"nothing", "", "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/tasks", nil)
			if tc.header != "" {
				r.Header.Set("Authorization", tc.header)
			}
			if tc.cookie != "" {
				r.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: tc.cookie})
			}

			assert.Equal(t, tc.want, extractToken(r))
		})
	}
}
