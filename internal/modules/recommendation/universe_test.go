package recommendation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentchopra/chopra/internal/domain"
)

func TestDefaultUniverse(t *testing.T) {
	universe := DefaultUniverse()
	require.NotEmpty(t, universe)

	seen := make(map[string]bool)
	for _, s := range universe {
		assert.NotEmpty(t, s.Symbol)
		assert.NotEmpty(t, s.Name)
		assert.GreaterOrEqual(t, s.Risk, 1)
		assert.LessOrEqual(t, s.Risk, 10)
		assert.False(t, seen[s.Symbol], "duplicate symbol %s", s.Symbol)
		seen[s.Symbol] = true
	}

	// Returned slice is a copy; mutating it must not affect later calls
	universe[0].Symbol = "MUTATED"
	assert.NotEqual(t, "MUTATED", DefaultUniverse()[0].Symbol)
}

func writeUniverseFile(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "universe.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadUniverse(t *testing.T) {
	path := writeUniverseFile(t, `
stocks:
  - symbol: AAPL
    name: Apple Inc.
    sector: Technology
    risk: 5
  - symbol: JNJ
    name: Johnson & Johnson
    sector: Healthcare
    risk: 2
`)

	universe, err := LoadUniverse(path)
	require.NoError(t, err)
	require.Len(t, universe, 2)

	assert.Equal(t, "AAPL", universe[0].Symbol)
	assert.Equal(t, domain.SectorTechnology, universe[0].Sector)
	assert.Equal(t, 5, universe[0].Risk)
	assert.Equal(t, "JNJ", universe[1].Symbol, "file order must be preserved")
}

func TestLoadUniverse_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"empty file", ""},
		{"no stocks", "stocks: []"},
		{"missing symbol", "stocks:\n  - name: Mystery\n    risk: 5"},
		{"risk too high", "stocks:\n  - symbol: WILD\n    risk: 11"},
		{"risk too low", "stocks:\n  - symbol: TAME\n    risk: 0"},
		{"duplicate symbol", "stocks:\n  - symbol: AAPL\n    risk: 5\n  - symbol: AAPL\n    risk: 6"},
		{"not yaml", "{{{"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeUniverseFile(t, tt.content)
			_, err := LoadUniverse(path)
			assert.Error(t, err)
		})
	}
}

func TestLoadUniverse_MissingFile(t *testing.T) {
	_, err := LoadUniverse(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
