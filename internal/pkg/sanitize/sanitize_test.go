package sanitize

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidFileType(t *testing.T) {
	tests := []struct {
		filename string
		valid    bool
	}{
		{"notes.txt", true},
		{"README.md", true},
		{"report.pdf", true},
		{"thesis.docx", true},
		{"ARCHIVE.TXT", true},
		{"image.png", false},
		{"script.sh", false},
		{"noextension", false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.valid, ValidFileType(tt.filename), "filename=%q", tt.filename)
	}
}

func TestValidFileSize(t *testing.T) {
	assert.True(t, ValidFileSize(1024, MaxUploadBytes))
	assert.True(t, ValidFileSize(MaxUploadBytes, MaxUploadBytes))
	assert.False(t, ValidFileSize(MaxUploadBytes+1, MaxUploadBytes))

	// Non-positive limit falls back to the default.
	assert.True(t, ValidFileSize(MaxUploadBytes, 0))
	assert.False(t, ValidFileSize(MaxUploadBytes+1, 0))
}

func TestValidUserPrompt(t *testing.T) {
	tests := []struct {
		name   string
		prompt string
		valid  bool
	}{
		{"empty prompt allowed", "", true},
		{"normal prompt", "create a 3-day bootcamp", true},
		{"max length", strings.Repeat("a", MaxPromptLength), true},
		{"over max length", strings.Repeat("a", MaxPromptLength+1), false},
		{"script tag", "hello <script>alert(1)</script>", false},
		{"script tag mixed case", "hello <SCRIPT>", false},
		{"javascript scheme", "javascript:alert(1)", false},
		{"html data uri", "data:text/html,payload", false},
		{"vbscript scheme", "vbscript:msgbox", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, ValidUserPrompt(tt.prompt))
		})
	}
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "notes.txt", Filename("notes.txt"))
	assert.Equal(t, "__etc_passwd", Filename("../etc/passwd"))
	assert.Equal(t, "a_b_c.txt", Filename(`a\b|c.txt`))

	long := strings.Repeat("x", 200) + ".txt"
	sanitized := Filename(long)
	assert.LessOrEqual(t, len(sanitized), 100)
	assert.True(t, strings.HasSuffix(sanitized, ".txt"))
}

func TestText(t *testing.T) {
	assert.Equal(t, "hello world", Text("hello\x00 world"))

	capped := Text(strings.Repeat("a", MaxTextLength+50))
	assert.Len(t, capped, MaxTextLength)
}
