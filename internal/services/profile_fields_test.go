package services

import (
	"testing"

	"github.com/AnshRaj112/biography-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateProfileField(t *testing.T) {
	doc := &models.ProfileDocument{Theme: models.ThemeMonochrome}

	require.NoError(t, UpdateProfileField(doc, "name", "Ada"))
	require.NoError(t, UpdateProfileField(doc, "font", "serif"))
	require.NoError(t, UpdateProfileField(doc, "privacy", "private"))
	assert.Equal(t, "Ada", doc.Name)
	assert.Equal(t, models.FontSerif, doc.Font)
	assert.Equal(t, models.PrivacyPrivate, doc.Privacy)

	assert.ErrorIs(t, UpdateProfileField(doc, "theme", "neon"), ErrFieldType)
	assert.Equal(t, models.ThemeMonochrome, doc.Theme)
	assert.ErrorIs(t, UpdateProfileField(doc, "name", 3), ErrFieldType)
	assert.ErrorIs(t, UpdateProfileField(doc, "friendCode", "ML-AAAAAA"), ErrImmutableField)
	assert.ErrorIs(t, UpdateProfileField(doc, "email", "x"), ErrUnknownField)
}

func TestTogglePrivacy(t *testing.T) {
	doc := &models.ProfileDocument{}
	assert.Equal(t, models.PrivacyPrivate, TogglePrivacy(doc))
	assert.Equal(t, models.PrivacyPublic, TogglePrivacy(doc))
}

func TestApplyUploadedImage(t *testing.T) {
	doc := &models.ProfileDocument{Blocks: []models.Block{DefaultBlock("img", models.BlockImage, "")}}

	require.NoError(t, ApplyUploadedImage(doc, "avatar", "https://cdn/a.png"))
	require.NoError(t, ApplyUploadedImage(doc, "img", "https://cdn/b.png"))
	assert.Equal(t, "https://cdn/a.png", doc.AvatarURL)
	assert.Equal(t, "https://cdn/b.png", doc.Blocks[0].ImageURL)
	assert.ErrorIs(t, ApplyUploadedImage(doc, "nope", "x"), ErrBlockNotFound)
}
