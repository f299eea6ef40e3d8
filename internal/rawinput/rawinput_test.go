package rawinput

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetect(t *testing.T) {
	cases := []struct {
		name string
		in   string
		raw  bool
		kind string
	}{
		{"md5", "d41d8cd98f00b204e9800998ecf8427e", true, "MD5"},
		{"sha1", "da39a3ee5e6b4b0d3255bfef95601890afd80709", true, "SHA1"},
		{"sha256", strings.Repeat("ab", 32), true, "SHA256"},
		{"ipv4", "8.8.8.8", true, "IP"},
		{"two ips", "8.8.8.8 1.1.1.1", true, "IP"},
		{"domain", "example.com", true, "DOMAIN"},
		{"subdomain", "mail.example.co.uk", true, "DOMAIN"},
		{"url", "https://malicious.example.com/payload?id=2", true, "URL"},
		{"http url", "http://example.com", true, "URL"},
		{"mixed tokens", "8.8.8.8 hello", false, ""},
		{"mixed kinds", "8.8.8.8 example.com", false, ""},
		{"free text", "find malicious PDFs seen last week", false, ""},
		{"empty", "", false, ""},
		{"whitespace only", "   \t ", false, ""},
		{"hash with salt word", "d41d8cd98f00b204e9800998ecf8427e reversed", false, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			raw, kind := Detect(tc.in)
			assert.Equal(t, tc.raw, raw)
			assert.Equal(t, tc.kind, kind)
		})
	}
}

// Multiple hashes of the same family are still raw, one token of another
// family breaks the run.
func TestDetectHomogeneousTokens(t *testing.T) {
	md5 := "d41d8cd98f00b204e9800998ecf8427e"
	sha1 := "da39a3ee5e6b4b0d3255bfef95601890afd80709"

	raw, kind := Detect(md5 + " " + md5)
	assert.True(t, raw)
	assert.Equal(t, "MD5", kind)

	raw, kind = Detect(md5 + " " + sha1)
	assert.False(t, raw)
	assert.Equal(t, "", kind)
}
