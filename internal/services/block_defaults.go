package services

import (
	"github.com/AnshRaj112/biography-backend/internal/models"
	"github.com/google/uuid"
)

// newBlockID returns a time-ordered id so that ids sort roughly by creation.
func newBlockID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// DefaultBlock builds a block of the given type with the editor's starter
// content and layout.
func DefaultBlock(id string, typ models.BlockType, parentID string) models.Block {
	b := models.Block{
		ID:         id,
		Type:       typ,
		ParentID:   parentID,
		Active:     true,
		Archived:   false,
		ColSpan:    1,
		RowSpan:    1,
		Style:      models.StyleLight,
		Filter:     models.FilterNone,
		Visibility: models.VisibilityPublic,
	}

	switch typ {
	case models.BlockText:
		b.Title, b.Subtitle = "New Interest", "Subtitle"
	case models.BlockContact:
		b.Title, b.Subtitle, b.URL = "+1 234 567 8900", "Call Me", "tel:"
	case models.BlockLink:
		b.Title, b.URL = "New Link", "https://"
	case models.BlockSocial:
		b.Title, b.URL = "Social", "https://"
	case models.BlockStatus:
		b.Title, b.Content = "Status Update", "What's on your mind?"
	case models.BlockVideo:
		b.Title, b.URL = "My Video", "https://youtube.com/..."
		b.ColSpan = 2
	case models.BlockMap:
		b.Title, b.Content = "My Spot", "New York, NY"
		b.ColSpan, b.RowSpan = 2, 2
	case models.BlockMusic:
		b.Title, b.Subtitle = "Song Title", "Artist"
	case models.BlockStack:
		b.Title, b.Subtitle = "New Collection", "Tap to open"
	case models.BlockTicTacToe:
		b.Title = "Play Me"
	case models.BlockWeather:
		b.Title = "Vibe Forecast"
	}
	return b
}

// QuickBlock is the minimal block created from the grid's quick-add bar.
func QuickBlock(id string, typ models.BlockType, parentID string) models.Block {
	b := models.Block{
		ID:         id,
		Type:       typ,
		ParentID:   parentID,
		Title:      "New Block",
		Active:     true,
		ColSpan:    1,
		RowSpan:    1,
		Style:      models.StyleLight,
		Filter:     models.FilterNone,
		Visibility: models.VisibilityPublic,
	}
	switch typ {
	case models.BlockLink:
		b.Title, b.URL = "New Link", "https://"
	case models.BlockImage:
		b.Title = "New Image"
	}
	return b
}
