package entities

import (
	"crypto/sha256"
	"encoding/hex"
)

// SourceFile is one IaC file extracted from a repository at a fixed commit.
type SourceFile struct {
	Path    string // relative to the repository root
	SHA256  string // hex digest of the raw bytes, before decoding
	Content string
}

// NewSourceFile digests the raw bytes and keeps the decoded text alongside.
func NewSourceFile(path string, raw []byte, content string) SourceFile {
	return SourceFile{
		Path:    path,
		SHA256:  Digest(raw),
		Content: content,
	}
}

// Digest returns the lowercase hex SHA-256 of data.
func Digest(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
