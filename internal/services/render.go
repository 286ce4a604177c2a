package services

import (
	"fmt"
	"net/url"

	"github.com/AnshRaj112/biography-backend/internal/models"
	"github.com/rs/zerolog/log"
)

// Viewer describes who is looking at a grid.
type Viewer struct {
	IsOwner  bool
	SignedIn bool
}

// BlockContent is the type-specific payload of a rendered block. Every block
// type has exactly one content struct; ContentFor maps between them.
type BlockContent interface {
	blockType() models.BlockType
}

type LinkContent struct {
	Title    string `json:"title"`
	URL      string `json:"url"`
	ImageURL string `json:"imageUrl,omitempty"`
}

type ImageContent struct {
	Title    string             `json:"title,omitempty"`
	ImageURL string             `json:"imageUrl"`
	Filter   models.BlockFilter `json:"filter"`
}

type TextContent struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle,omitempty"`
}

type SocialContent struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

type ContactContent struct {
	Number string `json:"number"`
	Label  string `json:"label,omitempty"`
	URL    string `json:"url"`
}

type StatusContent struct {
	Title     string `json:"title"`
	Text      string `json:"text"`
	Timestamp string `json:"timestamp,omitempty"`
}

type VideoContent struct {
	Title    string `json:"title"`
	URL      string `json:"url"`
	ImageURL string `json:"imageUrl,omitempty"`
}

type MapContent struct {
	Title   string `json:"title"`
	Address string `json:"address"`
	MapsURL string `json:"mapsUrl"`
}

type MusicContent struct {
	Title    string `json:"title"`
	Artist   string `json:"artist,omitempty"`
	URL      string `json:"url,omitempty"`
	ImageURL string `json:"imageUrl,omitempty"`
}

type StackContent struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle,omitempty"`
	Items    int    `json:"items"`
}

type GameContent struct {
	Title string `json:"title"`
}

type WeatherContent struct {
	Title string `json:"title"`
}

func (LinkContent) blockType() models.BlockType    { return models.BlockLink }
func (ImageContent) blockType() models.BlockType   { return models.BlockImage }
func (TextContent) blockType() models.BlockType    { return models.BlockText }
func (SocialContent) blockType() models.BlockType  { return models.BlockSocial }
func (ContactContent) blockType() models.BlockType { return models.BlockContact }
func (StatusContent) blockType() models.BlockType  { return models.BlockStatus }
func (VideoContent) blockType() models.BlockType   { return models.BlockVideo }
func (MapContent) blockType() models.BlockType     { return models.BlockMap }
func (MusicContent) blockType() models.BlockType   { return models.BlockMusic }
func (StackContent) blockType() models.BlockType   { return models.BlockStack }
func (GameContent) blockType() models.BlockType    { return models.BlockTicTacToe }
func (WeatherContent) blockType() models.BlockType { return models.BlockWeather }

// MapsURL links an address to a map search.
func MapsURL(address string) string {
	return "https://www.google.com/maps/search/?api=1&query=" + url.QueryEscape(address)
}

// ContentFor builds the typed payload for a block. items is the number of
// visible children and only matters for stacks.
func ContentFor(b models.Block, items int) (BlockContent, error) {
	switch b.Type {
	case models.BlockLink:
		return LinkContent{Title: b.Title, URL: b.URL, ImageURL: b.ImageURL}, nil
	case models.BlockImage:
		return ImageContent{Title: b.Title, ImageURL: b.ImageURL, Filter: b.Filter}, nil
	case models.BlockText:
		return TextContent{Title: b.Title, Subtitle: b.Subtitle}, nil
	case models.BlockSocial:
		return SocialContent{Title: b.Title, URL: b.URL}, nil
	case models.BlockContact:
		return ContactContent{Number: b.Title, Label: b.Subtitle, URL: b.URL}, nil
	case models.BlockStatus:
		return StatusContent{Title: b.Title, Text: b.Content, Timestamp: b.Timestamp}, nil
	case models.BlockVideo:
		return VideoContent{Title: b.Title, URL: b.URL, ImageURL: b.ImageURL}, nil
	case models.BlockMap:
		return MapContent{Title: b.Title, Address: b.Content, MapsURL: MapsURL(b.Content)}, nil
	case models.BlockMusic:
		return MusicContent{Title: b.Title, Artist: b.Subtitle, URL: b.URL, ImageURL: b.ImageURL}, nil
	case models.BlockStack:
		return StackContent{Title: b.Title, Subtitle: b.Subtitle, Items: items}, nil
	case models.BlockTicTacToe:
		return GameContent{Title: b.Title}, nil
	case models.BlockWeather:
		return WeatherContent{Title: b.Title}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownBlockType, b.Type)
}

type RenderedBlock struct {
	ID      string             `json:"id"`
	Type    models.BlockType   `json:"type"`
	ColSpan int                `json:"colSpan"`
	RowSpan int                `json:"rowSpan"`
	Style   models.BlockStyle  `json:"style"`
	Filter  models.BlockFilter `json:"filter"`
	Locked  bool               `json:"locked"`
	Content BlockContent       `json:"content,omitempty"`
}

// Grid is one level of the profile as a viewer sees it.
type Grid struct {
	StackID       string          `json:"stackId,omitempty"`
	ParentStackID string          `json:"parentStackId,omitempty"`
	StackTitle    string          `json:"stackTitle,omitempty"`
	StackSubtitle string          `json:"stackSubtitle,omitempty"`
	Blocks        []RenderedBlock `json:"blocks"`
	Presentation  Presentation    `json:"presentation"`
}

// RenderGrid lays out the visible blocks of one level. stackID "" is the
// root, which also picks up blocks whose parent no longer exists. Inactive
// blocks are left out entirely; member-only blocks are locked, without
// content, for anonymous visitors.
func RenderGrid(doc *models.ProfileDocument, stackID string, v Viewer) (*Grid, error) {
	tree := NewBlockTree(doc)
	grid := &Grid{
		StackID:      stackID,
		Blocks:       make([]RenderedBlock, 0),
		Presentation: PresentationFor(doc.Theme, doc.Font),
	}

	if stackID != "" {
		stack, ok := tree.Find(stackID)
		if !ok || stack.Type != models.BlockStack {
			return nil, ErrBlockNotFound
		}
		grid.ParentStackID = stack.ParentID
		grid.StackTitle = stack.Title
		grid.StackSubtitle = stack.Subtitle
	}

	for _, b := range doc.Blocks {
		if b.Archived || !b.Active || !inLevel(tree, b, stackID) {
			continue
		}
		rb := RenderedBlock{
			ID:      b.ID,
			Type:    b.Type,
			ColSpan: b.ColSpan,
			RowSpan: b.RowSpan,
			Style:   b.Style,
			Filter:  b.Filter,
			Locked:  b.Visibility == models.VisibilityMember && !v.IsOwner && !v.SignedIn,
		}
		if !rb.Locked {
			content, err := ContentFor(b, tree.ChildCount(b.ID))
			if err != nil {
				log.Debug().Err(err).Str("block_id", b.ID).Msg("skipping block")
				continue
			}
			rb.Content = content
		}
		grid.Blocks = append(grid.Blocks, rb)
	}
	return grid, nil
}

func inLevel(tree *BlockTree, b models.Block, stackID string) bool {
	if b.ParentID == stackID {
		return true
	}
	if stackID == "" {
		_, parentExists := tree.Find(b.ParentID)
		return !parentExists
	}
	return false
}
