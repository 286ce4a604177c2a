package models

type BlockType string

const (
	BlockLink      BlockType = "link"
	BlockImage     BlockType = "image"
	BlockText      BlockType = "text"
	BlockSocial    BlockType = "social"
	BlockContact   BlockType = "contact"
	BlockStatus    BlockType = "status"
	BlockVideo     BlockType = "video"
	BlockMap       BlockType = "map"
	BlockMusic     BlockType = "music"
	BlockStack     BlockType = "stack"
	BlockTicTacToe BlockType = "tictactoe"
	BlockWeather   BlockType = "weather"
)

// BlockTypes lists every block type in display order.
var BlockTypes = []BlockType{
	BlockLink, BlockImage, BlockText, BlockSocial, BlockContact, BlockStatus,
	BlockVideo, BlockMap, BlockMusic, BlockStack, BlockTicTacToe, BlockWeather,
}

func (t BlockType) Valid() bool {
	for _, bt := range BlockTypes {
		if bt == t {
			return true
		}
	}
	return false
}

type BlockStyle string

const (
	StyleLight  BlockStyle = "light"
	StyleDark   BlockStyle = "dark"
	StyleAccent BlockStyle = "accent"
)

type BlockFilter string

const (
	FilterNone      BlockFilter = "none"
	FilterGrayscale BlockFilter = "grayscale"
	FilterContrast  BlockFilter = "contrast"
	FilterSepia     BlockFilter = "sepia"
	FilterBlur      BlockFilter = "blur"
	FilterVignette  BlockFilter = "vignette"
)

type Visibility string

const (
	VisibilityPublic Visibility = "public"
	VisibilityMember Visibility = "member"
)

// Block is one tile of the profile grid. Which of the optional text fields
// carry meaning depends on Type.
type Block struct {
	ID   string    `bson:"id" json:"id"`
	Type BlockType `bson:"type" json:"type"`

	// ParentID is the id of the enclosing stack; empty means root level.
	ParentID string `bson:"parentId,omitempty" json:"parentId,omitempty"`

	Title     string `bson:"title,omitempty" json:"title,omitempty"`
	Subtitle  string `bson:"subtitle,omitempty" json:"subtitle,omitempty"`
	Content   string `bson:"content,omitempty" json:"content,omitempty"`
	Timestamp string `bson:"timestamp,omitempty" json:"timestamp,omitempty"`
	URL       string `bson:"url,omitempty" json:"url,omitempty"`
	ImageURL  string `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`

	Active   bool `bson:"active" json:"active"`
	Archived bool `bson:"archived" json:"archived"`

	ColSpan    int         `bson:"colSpan" json:"colSpan"`
	RowSpan    int         `bson:"rowSpan" json:"rowSpan"`
	Style      BlockStyle  `bson:"style" json:"style"`
	Filter     BlockFilter `bson:"filter" json:"filter"`
	Visibility Visibility  `bson:"visibility" json:"visibility"`
}

// IsRoot reports whether the block sits at the top level of the grid.
func (b *Block) IsRoot() bool {
	return b.ParentID == ""
}
