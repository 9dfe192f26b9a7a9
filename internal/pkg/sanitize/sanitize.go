package sanitize

import (
	"path/filepath"
	"strings"
)

const (
	MaxUploadBytes  = 10 * 1024 * 1024
	MaxPromptLength = 1000
	MaxTextLength   = 1000000
)

var allowedExtensions = map[string]bool{
	".txt":  true,
	".md":   true,
	".pdf":  true,
	".docx": true,
}

var dangerousPromptPatterns = []string{
	"<script",
	"javascript:",
	"data:text/html",
	"vbscript:",
}

var dangerousFilenameChars = []string{
	"..", "/", "\\", "<", ">", ":", "\"", "|", "?", "*",
}

// ValidFileType reports whether the filename carries an allowed extension.
func ValidFileType(filename string) bool {
	return allowedExtensions[strings.ToLower(filepath.Ext(filename))]
}

// ValidFileSize reports whether size is within the upload limit.
func ValidFileSize(size int64, maxSize int64) bool {
	if maxSize <= 0 {
		maxSize = MaxUploadBytes
	}
	return size <= maxSize
}

// ValidUserPrompt checks length and a basic deny-list of injection markers.
// Empty prompts are allowed; the pipeline falls back to a default structure.
func ValidUserPrompt(prompt string) bool {
	if prompt == "" {
		return true
	}
	if len(prompt) > MaxPromptLength {
		return false
	}
	lower := strings.ToLower(prompt)
	for _, pattern := range dangerousPromptPatterns {
		if strings.Contains(lower, pattern) {
			return false
		}
	}
	return true
}

// Filename strips path traversal characters and caps the length.
func Filename(filename string) string {
	sanitized := filename
	for _, ch := range dangerousFilenameChars {
		sanitized = strings.ReplaceAll(sanitized, ch, "_")
	}
	if len(sanitized) > 100 {
		ext := filepath.Ext(sanitized)
		name := strings.TrimSuffix(sanitized, ext)
		if len(name) > 95 {
			name = name[:95]
		}
		sanitized = name + ext
	}
	return sanitized
}

// Text removes null bytes and caps content length to guard memory.
func Text(text string) string {
	text = strings.ReplaceAll(text, "\x00", "")
	if len(text) > MaxTextLength {
		text = text[:MaxTextLength]
	}
	return text
}
