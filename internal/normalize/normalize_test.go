package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestText(t *testing.T) {
	assert.Equal(t, "Mumbai, Thane", Text("  Mumbai, \n\t Thane  "))
	assert.Equal(t, "", Text(" \n "))
}

func TestFold(t *testing.T) {
	assert.Equal(t, "bengaluru", Fold("  Bengalūru "))
	assert.Equal(t, "work from home", Fold("Work From Home"))
}

func TestAbsoluteURL(t *testing.T) {
	tests := []struct {
		href     string
		expected string
	}{
		{"https://other.test/x", "https://other.test/x"},
		{"/internship/detail/abc123", "https://internshala.com/internship/detail/abc123"},
		{"internship/detail/abc123", "https://internshala.com/internship/detail/abc123"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, AbsoluteURL("https://internshala.com/", tt.href), tt.href)
	}
}

func TestLastPathSegment(t *testing.T) {
	assert.Equal(t, "web-dev-intern-at-acme1700000", LastPathSegment("/internship/detail/web-dev-intern-at-acme1700000?utm=x"))
	assert.Equal(t, "abc", LastPathSegment("https://internshala.com/detail/abc#top"))
	assert.Equal(t, "", LastPathSegment("/detail/"))
}
