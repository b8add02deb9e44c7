package cli

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetSimpleText(t *testing.T) {
	in := bufio.NewReader(strings.NewReader("hello world\n"))
	var out bytes.Buffer
	got, err := GetSimpleText(in, "Name?", &out)
	if err != nil || got != "hello world" {
		t.Fatalf("got %q, err=%v", got, err)
	}
}

func TestGetSimpleTextEOF(t *testing.T) {
	in := bufio.NewReader(strings.NewReader("lastline"))
	var out bytes.Buffer
	got, err := GetSimpleText(in, "Name?", &out)
	if err != nil || got != "lastline" {
		t.Fatalf("got %q, err=%v", got, err)
	}
}

func TestGetMultiline_DoubleEnter(t *testing.T) {
	in := bufio.NewReader(strings.NewReader("a\nb\n\n\n"))
	var out bytes.Buffer
	got, err := GetMultiline(in, "Enter text", &out)
	if err != nil {
		t.Fatal(err)
	}
	want := "a\nb"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func rdr(s string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(s))
}

func TestGetAttachmentPaths(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "Unix newlines, stop on empty line",
			input:    "/tmp/a.jpg\n/tmp/b.mp4\n\n",
			expected: []string{"/tmp/a.jpg", "/tmp/b.mp4"},
		},
		{
			name:     "Windows CRLF, stop on empty line",
			input:    "/tmp/a.jpg\r\n/tmp/b.mp4\r\n\r\n",
			expected: []string{"/tmp/a.jpg", "/tmp/b.mp4"},
		},
		{
			name:     "Immediate blank line gives empty slice",
			input:    "\n",
			expected: []string{},
		},
		{
			name:     "EOF without trailing blank line",
			input:    "/tmp/a.jpg\n/tmp/b.mp4",
			expected: []string{"/tmp/a.jpg", "/tmp/b.mp4"},
		},
		{
			name:     "Spaces are preserved (no trimming except CR/LF)",
			input:    " with space.png \n\n",
			expected: []string{" with space.png "},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got, err := GetAttachmentPaths(rdr(tc.input))
			require.NoError(t, err)
			require.Equal(t, tc.expected, got)
		})
	}
}
