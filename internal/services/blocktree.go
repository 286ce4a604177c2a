package services

import (
	"encoding/json"
	"fmt"

	"github.com/AnshRaj112/biography-backend/internal/models"
)

// BlockTree edits the block list of one profile document in place. Parent
// links are back-references (Block.ParentID); child lookups build an index
// on demand so recursive operations stay linear in the number of blocks.
type BlockTree struct {
	doc   *models.ProfileDocument
	newID func() string
}

func NewBlockTree(doc *models.ProfileDocument) *BlockTree {
	return &BlockTree{doc: doc, newID: newBlockID}
}

// ListVisible returns the non-archived blocks whose parent is parentID.
// An empty parentID selects the root level.
func (t *BlockTree) ListVisible(parentID string) []models.Block {
	out := make([]models.Block, 0)
	for _, b := range t.doc.Blocks {
		if !b.Archived && b.ParentID == parentID {
			out = append(out, b)
		}
	}
	return out
}

// Archived returns every archived block regardless of parent.
func (t *BlockTree) Archived() []models.Block {
	out := make([]models.Block, 0)
	for _, b := range t.doc.Blocks {
		if b.Archived {
			out = append(out, b)
		}
	}
	return out
}

// Find returns a copy of the block with the given id.
func (t *BlockTree) Find(id string) (models.Block, bool) {
	if i := t.indexOf(id); i >= 0 {
		return t.doc.Blocks[i], true
	}
	return models.Block{}, false
}

// ChildCount counts the non-archived direct children of a stack.
func (t *BlockTree) ChildCount(stackID string) int {
	n := 0
	for _, b := range t.doc.Blocks {
		if !b.Archived && b.ParentID == stackID {
			n++
		}
	}
	return n
}

// Add appends a block of the given type with editor defaults. It does not
// persist anything.
func (t *BlockTree) Add(typ models.BlockType, parentID string) (models.Block, error) {
	return t.add(DefaultBlock, typ, parentID)
}

// QuickAdd appends a minimal block as created from the grid's quick-add bar.
func (t *BlockTree) QuickAdd(typ models.BlockType, parentID string) (models.Block, error) {
	return t.add(QuickBlock, typ, parentID)
}

func (t *BlockTree) add(build func(string, models.BlockType, string) models.Block, typ models.BlockType, parentID string) (models.Block, error) {
	if !typ.Valid() {
		return models.Block{}, fmt.Errorf("%w: %q", ErrUnknownBlockType, typ)
	}
	if parentID != "" && !t.isStack(parentID) {
		return models.Block{}, ErrInvalidParent
	}
	b := build(t.newID(), typ, parentID)
	t.doc.Blocks = append(t.doc.Blocks, b)
	return b, nil
}

// UpdateField replaces one field of one block. Values are only checked for
// their JSON type; enum fields and spans accept any value of the right kind.
// parentId changes go through Reparent so the tree stays acyclic.
func (t *BlockTree) UpdateField(id, field string, value any) error {
	i := t.indexOf(id)
	if i < 0 {
		return ErrBlockNotFound
	}
	b := &t.doc.Blocks[i]

	switch field {
	case "id":
		return fmt.Errorf("%w: %s", ErrImmutableField, field)
	case "parentId":
		s, err := asString(field, value)
		if err != nil {
			return err
		}
		return t.Reparent(id, s)
	case "type":
		s, err := asString(field, value)
		if err != nil {
			return err
		}
		typ := models.BlockType(s)
		if !typ.Valid() {
			return fmt.Errorf("%w: %q", ErrUnknownBlockType, s)
		}
		if b.Type == models.BlockStack && typ != models.BlockStack && t.hasChildren(id) {
			return ErrStackNotEmpty
		}
		b.Type = typ
		return nil
	case "title", "subtitle", "content", "timestamp", "url", "imageUrl", "style", "filter", "visibility":
		s, err := asString(field, value)
		if err != nil {
			return err
		}
		setStringField(b, field, s)
		return nil
	case "active", "archived":
		v, ok := value.(bool)
		if !ok {
			return fmt.Errorf("%w: %s wants a boolean", ErrFieldType, field)
		}
		if field == "active" {
			b.Active = v
		} else {
			b.Archived = v
		}
		return nil
	case "colSpan", "rowSpan":
		n, err := asInt(field, value)
		if err != nil {
			return err
		}
		if field == "colSpan" {
			b.ColSpan = n
		} else {
			b.RowSpan = n
		}
		return nil
	}
	return fmt.Errorf("%w: %s", ErrUnknownField, field)
}

func setStringField(b *models.Block, field, s string) {
	switch field {
	case "title":
		b.Title = s
	case "subtitle":
		b.Subtitle = s
	case "content":
		b.Content = s
	case "timestamp":
		b.Timestamp = s
	case "url":
		b.URL = s
	case "imageUrl":
		b.ImageURL = s
	case "style":
		b.Style = models.BlockStyle(s)
	case "filter":
		b.Filter = models.BlockFilter(s)
	case "visibility":
		b.Visibility = models.Visibility(s)
	}
}

// Reparent moves a block under another stack, or to the root when parentID
// is empty. A stack cannot be moved into itself or into its own subtree.
func (t *BlockTree) Reparent(id, parentID string) error {
	i := t.indexOf(id)
	if i < 0 {
		return ErrBlockNotFound
	}
	if parentID != "" {
		if parentID == id || !t.isStack(parentID) {
			return ErrInvalidParent
		}
		inside, err := t.isDescendant(parentID, id)
		if err != nil {
			return err
		}
		if inside {
			return ErrInvalidParent
		}
	}
	t.doc.Blocks[i].ParentID = parentID
	return nil
}

// Archive soft-deletes a block. Only the archived flag changes.
func (t *BlockTree) Archive(id string) error {
	return t.setArchived(id, true)
}

// Restore reverses Archive.
func (t *BlockTree) Restore(id string) error {
	return t.setArchived(id, false)
}

func (t *BlockTree) setArchived(id string, archived bool) error {
	i := t.indexOf(id)
	if i < 0 {
		return ErrBlockNotFound
	}
	t.doc.Blocks[i].Archived = archived
	return nil
}

// RemoveRecursive deletes a block and every block whose parent chain leads
// back to it. It returns the number of blocks removed. Nesting depth is
// unbounded; a parent cycle removes nothing and returns ErrTreeCycle.
func (t *BlockTree) RemoveRecursive(id string) (int, error) {
	if t.indexOf(id) < 0 {
		return 0, ErrBlockNotFound
	}

	children := t.childIndex()
	doomed := map[string]struct{}{}
	frontier := []string{id}
	for len(frontier) > 0 {
		var next []string
		for _, cur := range frontier {
			if _, seen := doomed[cur]; seen {
				return 0, ErrTreeCycle
			}
			doomed[cur] = struct{}{}
			next = append(next, children[cur]...)
		}
		frontier = next
	}

	kept := t.doc.Blocks[:0:0]
	for _, b := range t.doc.Blocks {
		if _, gone := doomed[b.ID]; !gone {
			kept = append(kept, b)
		}
	}
	removed := len(t.doc.Blocks) - len(kept)
	t.doc.Blocks = kept
	return removed, nil
}

// PurgeArchived hard-deletes every archived block together with its subtree.
func (t *BlockTree) PurgeArchived() (int, error) {
	var ids []string
	for _, b := range t.doc.Blocks {
		if b.Archived {
			ids = append(ids, b.ID)
		}
	}
	total := 0
	for _, id := range ids {
		if t.indexOf(id) < 0 {
			// already removed as part of an archived ancestor
			continue
		}
		n, err := t.RemoveRecursive(id)
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}

// ParentOf returns the parent stack of a block, or "" for root blocks and
// unknown ids.
func (t *BlockTree) ParentOf(id string) string {
	if b, ok := t.Find(id); ok {
		return b.ParentID
	}
	return ""
}

func (t *BlockTree) indexOf(id string) int {
	for i := range t.doc.Blocks {
		if t.doc.Blocks[i].ID == id {
			return i
		}
	}
	return -1
}

func (t *BlockTree) isStack(id string) bool {
	b, ok := t.Find(id)
	return ok && b.Type == models.BlockStack
}

func (t *BlockTree) hasChildren(id string) bool {
	for _, b := range t.doc.Blocks {
		if b.ParentID == id {
			return true
		}
	}
	return false
}

func (t *BlockTree) childIndex() map[string][]string {
	idx := make(map[string][]string)
	for _, b := range t.doc.Blocks {
		if b.ParentID != "" {
			idx[b.ParentID] = append(idx[b.ParentID], b.ID)
		}
	}
	return idx
}

// isDescendant walks up from id and reports whether ancestorID is on the way.
func (t *BlockTree) isDescendant(id, ancestorID string) (bool, error) {
	parents := make(map[string]string, len(t.doc.Blocks))
	for _, b := range t.doc.Blocks {
		parents[b.ID] = b.ParentID
	}
	seen := make(map[string]struct{})
	for cur := id; cur != ""; cur = parents[cur] {
		if _, ok := seen[cur]; ok {
			return false, ErrTreeCycle
		}
		seen[cur] = struct{}{}
		if cur == ancestorID {
			return true, nil
		}
	}
	return false, nil
}

func asString(field string, value any) (string, error) {
	switch v := value.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	}
	return "", fmt.Errorf("%w: %s wants a string", ErrFieldType, field)
}

func asInt(field string, value any) (int, error) {
	switch v := value.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		if v == float64(int(v)) {
			return int(v), nil
		}
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return int(n), nil
		}
	}
	return 0, fmt.Errorf("%w: %s wants an integer", ErrFieldType, field)
}
