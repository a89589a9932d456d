//go:build unit

package entities_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/rios0rios0/iaccrawl/internal/domain/entities"
)

func TestMonthsSince(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		pushedAt time.Time
		expected int
	}{
		{name: "should count whole 30-day months", pushedAt: now.AddDate(0, 0, -95), expected: 3},
		{name: "should round down a partial month", pushedAt: now.AddDate(0, 0, -29), expected: 0},
		{name: "should clamp a future push to zero", pushedAt: now.Add(48 * time.Hour), expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// given / when
			months := entities.MonthsSince(tt.pushedAt, now)

			// then
			assert.Equal(t, tt.expected, months)
		})
	}
}

func TestTreeEntryIsBlob(t *testing.T) {
	t.Parallel()

	t.Run("should only treat blobs as files", func(t *testing.T) {
		t.Parallel()

		// given
		blob := entities.TreeEntry{Path: "main.tf", Type: "blob"}
		dir := entities.TreeEntry{Path: "modules", Type: "tree"}
		submodule := entities.TreeEntry{Path: "vendor/x", Type: "commit"}

		// when / then
		assert.True(t, blob.IsBlob())
		assert.False(t, dir.IsBlob())
		assert.False(t, submodule.IsBlob())
	})
}
