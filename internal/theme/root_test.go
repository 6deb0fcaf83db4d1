package theme

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ensigniasec/regionpick/internal/responsive"
)

func TestRoot_ReceivesPublishedVariables(t *testing.T) {
	r := NewRoot()
	require.NoError(t, responsive.Publish(r, 1.125, responsive.DefaultConfig()))

	assert.Equal(t, "18px", r.FontSize())
	v, ok := r.Property("--spacing-md")
	require.True(t, ok)
	assert.Equal(t, "1.125rem", v)
	assert.Len(t, r.Properties(), 12)
	assert.Equal(t, uint64(13), r.Version())
}

func TestRoot_DetachFailsWrites(t *testing.T) {
	r := NewRoot()
	r.Detach()
	err := responsive.Publish(r, 1, responsive.DefaultConfig())
	require.ErrorIs(t, err, ErrDetached)
	require.ErrorIs(t, err, responsive.ErrPublish)
	assert.Empty(t, r.FontSize())
}

func TestRoot_RejectsBadValues(t *testing.T) {
	r := NewRoot()
	require.ErrorIs(t, r.SetRootFontSize("12em"), ErrBadValue)
	require.ErrorIs(t, r.SetProperty("spacing", "1rem"), ErrBadValue)
}

func TestRoot_Cells(t *testing.T) {
	r := NewRoot()
	assert.Equal(t, 7, r.Cells("--spacing-md", 7), "fallback before publish")

	require.NoError(t, r.SetProperty("--spacing-md", "1.5rem"))
	require.NoError(t, r.SetProperty("--broken", "abc"))
	assert.Equal(t, 3, r.Cells("--spacing-md", 0))
	assert.Equal(t, 4, r.Cells("--broken", 4))
}

func TestStyles_BorderFollowsRadius(t *testing.T) {
	small := NewRoot()
	require.NoError(t, responsive.Publish(small, 0.875, responsive.DefaultConfig()))
	assert.Equal(t, lipgloss.NormalBorder(), small.Styles().Panel.GetBorderStyle())

	large := NewRoot()
	require.NoError(t, responsive.Publish(large, 1.125, responsive.DefaultConfig()))
	st := large.Styles()
	assert.Equal(t, lipgloss.RoundedBorder(), st.Panel.GetBorderStyle())
	assert.True(t, st.Heading.GetBold())
	assert.Equal(t, 2, st.Panel.GetPaddingLeft())
	assert.Equal(t, 1, st.Gap)
}
