package selector

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	require.NoError(t, Validate(DefaultOptions()))
	require.NoError(t, Validate(FetchedOptions()))

	tests := []struct {
		name string
		tree []Option
	}{
		{"empty", nil},
		{"missing label", []Option{{Value: "a"}}},
		{"nested missing value", []Option{{Value: "a", Label: "A", Children: []Option{{Label: "B"}}}}},
		{"duplicate sibling", []Option{{Value: "a", Label: "A"}, {Value: "a", Label: "A2"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, Validate(tt.tree), ErrInvalidOptions)
		})
	}
}

func TestLabelsAndFind(t *testing.T) {
	tree := DefaultOptions()
	assert.Equal(t, []string{"上海市", "徐汇区"}, Labels(tree, []string{"shanghai", "shanghai-xuhui"}))
	assert.Equal(t, []string{"上海市"}, Labels(tree, []string{"shanghai", "gone"}))
	assert.Empty(t, Labels(tree, []string{"gone", "shanghai-xuhui"}))

	children, ok := Find(tree, []string{"guangzhou"})
	require.True(t, ok)
	assert.Len(t, children, 4)
	_, ok = Find(tree, []string{"nowhere"})
	assert.False(t, ok)
}

func TestLeaves(t *testing.T) {
	leaves := Leaves(DefaultOptions())
	require.Len(t, leaves, 12)
	assert.Equal(t, "beijing", leaves[0][0].Value)
	assert.Equal(t, "beijing-dongcheng", leaves[0][1].Value)
	assert.Equal(t, "guangzhou-haizhu", leaves[11][1].Value)

	assert.Len(t, Leaves([]Option{{Value: "solo", Label: "Solo"}}), 1)
}

func TestLoadOptionsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "regions.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
- value: hangzhou
  label: 杭州市
  children:
    - {value: hangzhou-xihu, label: 西湖区}
    - {value: hangzhou-binjiang, label: 滨江区}
`), 0o600))

	tree, err := LoadOptionsFile(path)
	require.NoError(t, err)
	require.Len(t, tree, 1)
	assert.Equal(t, []string{"杭州市", "滨江区"}, Labels(tree, []string{"hangzhou", "hangzhou-binjiang"}))

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`[{"value": "x"}]`), 0o600))
	_, err = LoadOptionsFile(bad)
	require.ErrorIs(t, err, ErrInvalidOptions)
}
