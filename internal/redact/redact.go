// Package redact scrubs likely credentials from a diff before it is sent
// to the completion service.
package redact

import "regexp"

const placeholder = "[REDACTED]"

// secretPatterns are regex heuristics for credential shapes that show up
// in diffs. False positives cost a little review quality; false negatives
// leak secrets to a third party, so the patterns lean aggressive.
var secretPatterns = []*regexp.Regexp{
	// Assignments of keys/secrets/tokens/passwords
	regexp.MustCompile(`(?i)(api[_-]?key|secret|token|password|passwd|credential)\s*[:=]\s*["']?([A-Za-z0-9/+=_-]{16,})["']?`),
	// AWS access key IDs
	regexp.MustCompile(`AKIA[0-9A-Z]{16}`),
	// Bearer tokens
	regexp.MustCompile(`(?i)Bearer\s+[A-Za-z0-9._-]{20,}`),
	// JWTs
	regexp.MustCompile(`eyJ[A-Za-z0-9_-]{10,}\.eyJ[A-Za-z0-9_-]{10,}\.[A-Za-z0-9_-]{10,}`),
	// Private key blocks
	regexp.MustCompile(`-----BEGIN\s+(RSA\s+)?PRIVATE KEY-----`),
	// GitHub tokens
	regexp.MustCompile(`gh[pousr]_[A-Za-z0-9_]{36,}`),
	// Groq API keys
	regexp.MustCompile(`gsk_[A-Za-z0-9]{20,}`),
	// OpenAI-style API keys
	regexp.MustCompile(`sk-[A-Za-z0-9_-]{20,}`),
}

// Secrets replaces detected secrets in text with a fixed placeholder.
func Secrets(text string) string {
	result := text
	for _, pat := range secretPatterns {
		result = pat.ReplaceAllString(result, placeholder)
	}
	return result
}
