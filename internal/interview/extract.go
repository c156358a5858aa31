package interview

import (
	"regexp"
	"sort"
	"strings"
)

var (
	emailPattern = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	phonePattern = regexp.MustCompile(`\+?\d[\d\s()-]{7,}\d`)
	nonPhoneChar = regexp.MustCompile(`[^0-9+]`)
)

// DefaultVocabulary lists the technology and competency tokens recognized in
// free text when no vocabulary is configured.
var DefaultVocabulary = []string{
	"python", "javascript", "react", "node", "node.js", "sql",
	"postgres", "mysql", "java", "aws", "gcp", "azure",
	"docker", "kubernetes", "ui/ux", "figma", "sketch", "adobe xd",
	"photoshop", "illustrator", "canva", "product", "pm",
}

// Extractor pulls structured candidate fields out of raw chat text. All
// methods are best-effort: a miss is signaled by an empty result, never by
// an error.
type Extractor struct {
	vocabulary []string
}

// NewExtractor creates an Extractor recognizing skills from the provided
// vocabulary. An empty vocabulary falls back to DefaultVocabulary.
func NewExtractor(vocabulary []string) *Extractor {
	if len(vocabulary) == 0 {
		vocabulary = DefaultVocabulary
	}
	return &Extractor{vocabulary: vocabulary}
}

// Email returns the first well-formed email address found in text, or ""
// when there is none.
func (e *Extractor) Email(text string) string {
	return emailPattern.FindString(text)
}

// Phone returns the first phone-like digit run found in text with separators
// stripped, keeping a leading plus sign. Returns "" when there is none.
func (e *Extractor) Phone(text string) string {
	match := phonePattern.FindString(text)
	if match == "" {
		return ""
	}
	return nonPhoneChar.ReplaceAllString(match, "")
}

// Skills returns the vocabulary entries contained in text, case-insensitively,
// deduplicated and sorted. The "node" alias is normalized to "node.js".
func (e *Extractor) Skills(text string) []string {
	lowered := strings.ToLower(text)
	if strings.TrimSpace(lowered) == "" {
		return nil
	}

	seen := make(map[string]struct{}, len(e.vocabulary))
	found := make([]string, 0, len(e.vocabulary))
	for _, entry := range e.vocabulary {
		if !strings.Contains(lowered, strings.ToLower(entry)) {
			continue
		}
		skill := entry
		if skill == "node" {
			skill = "node.js"
		}
		if _, ok := seen[skill]; ok {
			continue
		}
		seen[skill] = struct{}{}
		found = append(found, skill)
	}

	sort.Strings(found)
	return found
}
