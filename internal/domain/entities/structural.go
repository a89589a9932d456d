package entities

import "strings"

// DefaultMinResources is the minimum number of resource declarations a
// repository must carry to look like real infrastructure code.
const DefaultMinResources = 2

// StructuralFilter is a cheap textual pre-filter. It counts substrings instead
// of parsing, so it only screens out implausible content; the validator is the
// authority on correctness.
type StructuralFilter struct {
	MinResources  int
	ProviderToken string
}

// NewStructuralFilter applies the defaults to zero-valued settings.
func NewStructuralFilter(minResources int, providerToken string) StructuralFilter {
	if minResources <= 0 {
		minResources = DefaultMinResources
	}
	if providerToken == "" {
		providerToken = DefaultProviderToken
	}
	return StructuralFilter{MinResources: minResources, ProviderToken: providerToken}
}

// Check passes when the files hold at least MinResources resource declarations
// and mention the provider token at least once.
func (f StructuralFilter) Check(files []SourceFile) bool {
	resources := 0
	hasProvider := false
	for _, file := range files {
		resources += strings.Count(file.Content, resourceMarker)
		if strings.Contains(file.Content, f.ProviderToken) {
			hasProvider = true
		}
	}
	return resources >= f.MinResources && hasProvider
}
