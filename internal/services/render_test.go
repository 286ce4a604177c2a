package services

import (
	"encoding/json"
	"testing"

	"github.com/AnshRaj112/biography-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContentForCoversEveryBlockType(t *testing.T) {
	for _, typ := range models.BlockTypes {
		content, err := ContentFor(DefaultBlock("x", typ, ""), 0)
		require.NoError(t, err, typ)
		assert.Equal(t, typ, content.blockType())
	}

	_, err := ContentFor(models.Block{Type: "poll"}, 0)
	assert.ErrorIs(t, err, ErrUnknownBlockType)
}

func TestMapContentLinksToSearch(t *testing.T) {
	b := DefaultBlock("m", models.BlockMap, "")
	b.Content = "Café de Flore, Paris"
	content, err := ContentFor(b, 0)
	require.NoError(t, err)
	m := content.(MapContent)
	assert.Equal(t, "https://www.google.com/maps/search/?api=1&query=Caf%C3%A9+de+Flore%2C+Paris", m.MapsURL)
}

func renderDoc() *models.ProfileDocument {
	inactive := DefaultBlock("off", models.BlockText, "")
	inactive.Active = false
	archived := DefaultBlock("gone", models.BlockText, "")
	archived.Archived = true
	members := DefaultBlock("secret", models.BlockLink, "")
	members.Visibility = models.VisibilityMember
	members.URL = "https://example.com/private"

	return &models.ProfileDocument{
		Theme: models.ThemeTerminal,
		Font:  models.FontMono,
		Blocks: []models.Block{
			DefaultBlock("hello", models.BlockText, ""),
			inactive,
			archived,
			members,
			DefaultBlock("stack", models.BlockStack, ""),
			DefaultBlock("inner", models.BlockMusic, "stack"),
			DefaultBlock("orphan", models.BlockText, "deleted-stack"),
		},
	}
}

func ids(grid *Grid) []string {
	out := make([]string, 0, len(grid.Blocks))
	for _, b := range grid.Blocks {
		out = append(out, b.ID)
	}
	return out
}

func TestRenderGridRootLevel(t *testing.T) {
	grid, err := RenderGrid(renderDoc(), "", Viewer{})
	require.NoError(t, err)

	assert.Equal(t, []string{"hello", "secret", "stack", "orphan"}, ids(grid))
	assert.True(t, grid.Blocks[1].Locked)
	assert.Nil(t, grid.Blocks[1].Content)
	assert.Equal(t, StackContent{Title: "New Collection", Subtitle: "Tap to open", Items: 1}, grid.Blocks[2].Content)

	assert.Equal(t, "font-mono", grid.Presentation.FontClass)
	assert.Equal(t, "bg-black text-[#33ff00]", grid.Presentation.Background)

	raw, err := json.Marshal(grid.Blocks[1])
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "example.com")
}

func TestRenderGridMemberBlocksForSignedInOrOwner(t *testing.T) {
	for _, v := range []Viewer{{SignedIn: true}, {IsOwner: true}} {
		grid, err := RenderGrid(renderDoc(), "", v)
		require.NoError(t, err)
		assert.False(t, grid.Blocks[1].Locked)
		assert.Equal(t, "https://example.com/private", grid.Blocks[1].Content.(LinkContent).URL)
	}
}

func TestRenderGridInsideStack(t *testing.T) {
	grid, err := RenderGrid(renderDoc(), "stack", Viewer{})
	require.NoError(t, err)
	assert.Equal(t, []string{"inner"}, ids(grid))
	assert.Equal(t, "", grid.ParentStackID)
	assert.Equal(t, "New Collection", grid.StackTitle)

	_, err = RenderGrid(renderDoc(), "hello", Viewer{})
	assert.ErrorIs(t, err, ErrBlockNotFound)
}

func TestPresentationFallsBackToMonochrome(t *testing.T) {
	p := PresentationFor("disco", "")
	assert.Equal(t, models.ThemeMonochrome, p.Theme)
	assert.Equal(t, "font-sans", p.FontClass)

	for _, th := range models.Themes {
		p := PresentationFor(th, models.FontSerif)
		assert.Equal(t, th, p.Theme)
		assert.NotEmpty(t, p.Background, th)
	}
	assert.True(t, PresentationFor(models.ThemeBrutalist, "").Decoration.Outlined)
}

func TestRandomThemeChanges(t *testing.T) {
	for i := 0; i < 50; i++ {
		next := RandomTheme(models.ThemeSwiss)
		assert.NotEqual(t, models.ThemeSwiss, next)
		assert.True(t, next.Valid())
	}
}
