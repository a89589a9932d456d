package entities

import "strings"

// KeywordFilter excludes repositories whose name or readme mention a forbidden keyword.
type KeywordFilter struct {
	forbidden []string
}

// NewKeywordFilter lower-cases the forbidden keywords and drops blank entries.
func NewKeywordFilter(words []string) KeywordFilter {
	forbidden := make([]string, 0, len(words))
	for _, word := range words {
		word = strings.ToLower(strings.TrimSpace(word))
		if word != "" {
			forbidden = append(forbidden, word)
		}
	}
	return KeywordFilter{forbidden: forbidden}
}

// Excludes reports whether any forbidden keyword occurs, case-insensitively,
// in the repository full name or its readme text.
func (f KeywordFilter) Excludes(repo RepositoryMetadata) bool {
	haystack := strings.ToLower(repo.FullName + "\n" + repo.ReadmeText)
	for _, word := range f.forbidden {
		if strings.Contains(haystack, word) {
			return true
		}
	}
	return false
}
