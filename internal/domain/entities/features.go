package entities

import (
	"sort"
	"strings"
)

// Feature keys of the emitted vector. Downstream consumers read these names,
// so new keys may be added but existing ones are never renamed or removed.
const (
	FeatureNumFiles      = "num_files"
	FeatureNumResources  = "num_resources"
	FeatureNumModules    = "num_modules"
	FeatureNumVariables  = "num_variables"
	FeatureNumOutputs    = "num_outputs"
	FeatureNumDataBlocks = "num_data_blocks"

	tokenCountSuffix     = "_token_count"
	DefaultProviderToken = "aws_"
)

// Declaration markers counted as plain substrings.
const (
	resourceMarker = `resource "`
	moduleMarker   = `module "`
	variableMarker = `variable "`
	outputMarker   = `output "`
	dataMarker     = `data "`
)

// FeatureVector maps a feature name to its numeric value.
type FeatureVector map[string]float64

// Keys returns the feature names in lexical order.
func (v FeatureVector) Keys() []string {
	keys := make([]string, 0, len(v))
	for key := range v {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// ProviderFeatureKey derives the token-frequency key from the provider token,
// e.g. "aws_" becomes "aws_token_count".
func ProviderFeatureKey(token string) string {
	return strings.TrimSuffix(token, "_") + tokenCountSuffix
}

// FeatureExtractor computes the fixed-schema vector of a candidate's files.
type FeatureExtractor struct {
	providerToken string
}

// NewFeatureExtractor builds an extractor counting the given provider token;
// an empty token falls back to DefaultProviderToken.
func NewFeatureExtractor(providerToken string) FeatureExtractor {
	if providerToken == "" {
		providerToken = DefaultProviderToken
	}
	return FeatureExtractor{providerToken: providerToken}
}

// Extract counts declarations over the concatenated text of all files.
func (e FeatureExtractor) Extract(files []SourceFile) FeatureVector {
	contents := make([]string, 0, len(files))
	for _, file := range files {
		contents = append(contents, file.Content)
	}
	joined := strings.Join(contents, "\n")

	vector := FeatureVector{
		FeatureNumFiles:      float64(len(files)),
		FeatureNumResources:  float64(strings.Count(joined, resourceMarker)),
		FeatureNumModules:    float64(strings.Count(joined, moduleMarker)),
		FeatureNumVariables:  float64(strings.Count(joined, variableMarker)),
		FeatureNumOutputs:    float64(strings.Count(joined, outputMarker)),
		FeatureNumDataBlocks: float64(strings.Count(joined, dataMarker)),
	}
	vector[ProviderFeatureKey(e.providerToken)] = float64(strings.Count(joined, e.providerToken))
	return vector
}
