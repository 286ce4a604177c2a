package services

import (
	"fmt"
	"testing"

	"github.com/AnshRaj112/biography-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seqIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("b%d", n)
	}
}

func newTestTree(blocks ...models.Block) (*BlockTree, *models.ProfileDocument) {
	doc := &models.ProfileDocument{Blocks: blocks}
	t := NewBlockTree(doc)
	t.newID = seqIDs()
	return t, doc
}

func blk(id string, typ models.BlockType, parent string) models.Block {
	return DefaultBlock(id, typ, parent)
}

func TestBlockTreeAddUsesDefaults(t *testing.T) {
	tree, doc := newTestTree()

	b, err := tree.Add(models.BlockMap, "")
	require.NoError(t, err)
	assert.Equal(t, "b1", b.ID)
	assert.Equal(t, "My Spot", b.Title)
	assert.Equal(t, 2, b.ColSpan)
	assert.Equal(t, 2, b.RowSpan)
	assert.True(t, b.Active)
	assert.Len(t, doc.Blocks, 1)

	_, err = tree.Add(models.BlockType("poll"), "")
	assert.ErrorIs(t, err, ErrUnknownBlockType)
}

func TestBlockTreeAddRequiresStackParent(t *testing.T) {
	tree, _ := newTestTree(blk("s", models.BlockStack, ""), blk("t", models.BlockText, ""))

	_, err := tree.Add(models.BlockText, "t")
	assert.ErrorIs(t, err, ErrInvalidParent)
	_, err = tree.Add(models.BlockText, "missing")
	assert.ErrorIs(t, err, ErrInvalidParent)

	b, err := tree.QuickAdd(models.BlockLink, "s")
	require.NoError(t, err)
	assert.Equal(t, "s", b.ParentID)
	assert.Equal(t, "New Link", b.Title)
	assert.Equal(t, 1, tree.ChildCount("s"))
}

func TestBlockTreeListVisible(t *testing.T) {
	archived := blk("a", models.BlockText, "")
	archived.Archived = true
	tree, _ := newTestTree(
		blk("r1", models.BlockText, ""),
		blk("s", models.BlockStack, ""),
		blk("c1", models.BlockText, "s"),
		archived,
	)

	root := tree.ListVisible("")
	require.Len(t, root, 2)
	assert.Equal(t, "r1", root[0].ID)
	assert.Equal(t, "s", root[1].ID)

	inside := tree.ListVisible("s")
	require.Len(t, inside, 1)
	assert.Equal(t, "c1", inside[0].ID)

	assert.Len(t, tree.Archived(), 1)
}

func TestBlockTreeArchiveRestoreRoundTrip(t *testing.T) {
	original := blk("x", models.BlockMusic, "")
	tree, doc := newTestTree(original)

	require.NoError(t, tree.Archive("x"))
	assert.True(t, doc.Blocks[0].Archived)
	assert.Empty(t, tree.ListVisible(""))

	require.NoError(t, tree.Restore("x"))
	assert.Equal(t, original, doc.Blocks[0])

	assert.ErrorIs(t, tree.Archive("nope"), ErrBlockNotFound)
}

func TestBlockTreeUpdateField(t *testing.T) {
	tree, doc := newTestTree(blk("x", models.BlockText, ""))

	require.NoError(t, tree.UpdateField("x", "title", "Climbing"))
	require.NoError(t, tree.UpdateField("x", "colSpan", float64(2)))
	require.NoError(t, tree.UpdateField("x", "active", false))
	require.NoError(t, tree.UpdateField("x", "subtitle", nil))
	require.NoError(t, tree.UpdateField("x", "style", "neon"))

	b := doc.Blocks[0]
	assert.Equal(t, "Climbing", b.Title)
	assert.Equal(t, 2, b.ColSpan)
	assert.False(t, b.Active)
	assert.Empty(t, b.Subtitle)
	assert.Equal(t, models.BlockStyle("neon"), b.Style)

	assert.ErrorIs(t, tree.UpdateField("x", "id", "y"), ErrImmutableField)
	assert.ErrorIs(t, tree.UpdateField("x", "colour", "red"), ErrUnknownField)
	assert.ErrorIs(t, tree.UpdateField("x", "active", "yes"), ErrFieldType)
	assert.ErrorIs(t, tree.UpdateField("x", "rowSpan", 1.5), ErrFieldType)
	assert.ErrorIs(t, tree.UpdateField("x", "type", "poll"), ErrUnknownBlockType)
	assert.ErrorIs(t, tree.UpdateField("missing", "title", "x"), ErrBlockNotFound)
}

func TestBlockTreeStackTypeChangeNeedsEmptyStack(t *testing.T) {
	tree, doc := newTestTree(blk("s", models.BlockStack, ""), blk("c", models.BlockText, "s"))

	assert.ErrorIs(t, tree.UpdateField("s", "type", "text"), ErrStackNotEmpty)

	_, err := tree.RemoveRecursive("c")
	require.NoError(t, err)
	require.NoError(t, tree.UpdateField("s", "type", "text"))
	assert.Equal(t, models.BlockText, doc.Blocks[0].Type)
}

func TestBlockTreeReparentRejectsCycles(t *testing.T) {
	tree, doc := newTestTree(
		blk("outer", models.BlockStack, ""),
		blk("inner", models.BlockStack, "outer"),
		blk("leaf", models.BlockText, "inner"),
	)

	assert.ErrorIs(t, tree.Reparent("outer", "outer"), ErrInvalidParent)
	assert.ErrorIs(t, tree.Reparent("outer", "inner"), ErrInvalidParent)
	assert.ErrorIs(t, tree.UpdateField("outer", "parentId", "inner"), ErrInvalidParent)
	assert.ErrorIs(t, tree.Reparent("leaf", "leaf"), ErrInvalidParent)

	require.NoError(t, tree.Reparent("leaf", "outer"))
	assert.Equal(t, "outer", tree.ParentOf("leaf"))
	require.NoError(t, tree.UpdateField("inner", "parentId", ""))
	assert.Equal(t, "", doc.Blocks[1].ParentID)
}

func TestBlockTreeRemoveRecursive(t *testing.T) {
	tree, doc := newTestTree(
		blk("keep", models.BlockText, ""),
		blk("s1", models.BlockStack, ""),
		blk("s2", models.BlockStack, "s1"),
		blk("s3", models.BlockStack, "s2"),
		blk("deep", models.BlockLink, "s3"),
		blk("side", models.BlockText, "s1"),
		blk("other", models.BlockStack, ""),
		blk("otherChild", models.BlockText, "other"),
	)

	n, err := tree.RemoveRecursive("s1")
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	var ids []string
	for _, b := range doc.Blocks {
		ids = append(ids, b.ID)
	}
	assert.Equal(t, []string{"keep", "other", "otherChild"}, ids)

	_, err = tree.RemoveRecursive("s1")
	assert.ErrorIs(t, err, ErrBlockNotFound)
}

func TestBlockTreeRemoveRecursiveFailsClosedOnCycle(t *testing.T) {
	// a and b point at each other; only corrupt data can produce this.
	tree, doc := newTestTree(
		blk("a", models.BlockStack, "b"),
		blk("b", models.BlockStack, "a"),
		blk("c", models.BlockText, ""),
	)

	_, err := tree.RemoveRecursive("a")
	assert.ErrorIs(t, err, ErrTreeCycle)
	assert.Len(t, doc.Blocks, 3)
}

func TestBlockTreeDeepNestingStaysEditable(t *testing.T) {
	tree, doc := newTestTree()

	root, err := tree.Add(models.BlockStack, "")
	require.NoError(t, err)
	parent := root.ID
	for i := 0; i < 100; i++ {
		b, err := tree.Add(models.BlockStack, parent)
		require.NoError(t, err)
		parent = b.ID
	}
	leaf, err := tree.Add(models.BlockText, "")
	require.NoError(t, err)
	require.NoError(t, tree.Reparent(leaf.ID, parent))

	n, err := tree.RemoveRecursive(root.ID)
	require.NoError(t, err)
	assert.Equal(t, 102, n)
	assert.Empty(t, doc.Blocks)
}

func TestBlockTreePurgeArchivedDeepStack(t *testing.T) {
	tree, doc := newTestTree()

	root, err := tree.Add(models.BlockStack, "")
	require.NoError(t, err)
	parent := root.ID
	for i := 0; i < 40; i++ {
		b, err := tree.Add(models.BlockStack, parent)
		require.NoError(t, err)
		parent = b.ID
	}
	_, err = tree.Add(models.BlockText, "")
	require.NoError(t, err)
	require.NoError(t, tree.Archive(root.ID))

	n, err := tree.PurgeArchived()
	require.NoError(t, err)
	assert.Equal(t, 41, n)
	require.Len(t, doc.Blocks, 1)
	assert.Equal(t, models.BlockText, doc.Blocks[0].Type)
}

func TestBlockTreeReparentFailsClosedOnCycle(t *testing.T) {
	tree, doc := newTestTree(
		blk("a", models.BlockStack, "b"),
		blk("b", models.BlockStack, "a"),
		blk("c", models.BlockText, ""),
	)

	err := tree.Reparent("c", "a")
	assert.ErrorIs(t, err, ErrTreeCycle)
	assert.Equal(t, "", doc.Blocks[2].ParentID)
}

func TestBlockTreePurgeArchived(t *testing.T) {
	s := blk("s", models.BlockStack, "")
	s.Archived = true
	child := blk("c", models.BlockText, "s")
	child.Archived = true
	loose := blk("loose", models.BlockText, "")
	loose.Archived = true

	tree, doc := newTestTree(s, child, blk("live", models.BlockText, ""), loose)

	n, err := tree.PurgeArchived()
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	require.Len(t, doc.Blocks, 1)
	assert.Equal(t, "live", doc.Blocks[0].ID)
}
