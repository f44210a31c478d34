package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemoteAddrExtractor(t *testing.T) {
	tests := []struct {
		remote  string
		want    string
		wantErr bool
	}{
		{"192.168.1.1:54321", "192.168.1.1", false},
		{"[2001:db8::1]:8080", "2001:db8::1", false},
		{"10.0.0.1", "10.0.0.1", false},
		{"not-an-address", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.remote, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			req.RemoteAddr = tt.remote
			got, err := (&RemoteAddrExtractor{}).ExtractIP(req)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseTrustedProxies(t *testing.T) {
	cfg, err := ParseTrustedProxies(false, "garbage")
	require.NoError(t, err)
	assert.False(t, cfg.Enabled)

	cfg, err = ParseTrustedProxies(true, "10.0.0.0/8, 192.168.1.1 ,2001:db8::1")
	require.NoError(t, err)
	require.Len(t, cfg.AllowedCIDRs, 3)
	assert.Equal(t, 32, cfg.AllowedCIDRs[1].Bits())
	assert.Equal(t, 128, cfg.AllowedCIDRs[2].Bits())

	_, err = ParseTrustedProxies(true, "")
	assert.Error(t, err)

	_, err = ParseTrustedProxies(true, "10.0.0.0/99")
	assert.Error(t, err)
}

func TestTrustedProxyExtractor(t *testing.T) {
	cfg, err := ParseTrustedProxies(true, "10.0.0.0/8")
	require.NoError(t, err)
	e := NewTrustedProxyExtractor(*cfg)

	tests := []struct {
		name   string
		remote string
		xff    string
		xri    string
		want   string
	}{
		{"trusted proxy with XFF", "10.0.0.5:80", "203.0.113.7, 10.0.0.5", "", "203.0.113.7"},
		{"trusted proxy with X-Real-IP", "10.0.0.5:80", "", "203.0.113.8", "203.0.113.8"},
		{"trusted proxy with bad XFF", "10.0.0.5:80", "junk", "", "10.0.0.5"},
		{"untrusted peer spoofing XFF", "198.51.100.1:80", "203.0.113.7", "", "198.51.100.1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			req.RemoteAddr = tt.remote
			if tt.xff != "" {
				req.Header.Set("X-Forwarded-For", tt.xff)
			}
			if tt.xri != "" {
				req.Header.Set("X-Real-IP", tt.xri)
			}
			got, err := e.ExtractIP(req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTrustedProxyExtractor_Disabled(t *testing.T) {
	e := NewTrustedProxyExtractor(TrustedProxyConfig{})
	req := httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = "10.0.0.5:80"
	req.Header.Set("X-Forwarded-For", "203.0.113.7")

	got, err := e.ExtractIP(req)
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.5", got)
}
