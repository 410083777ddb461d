package commands

import (
	"context"

	"smartctx/internal/application/compiler"
	"smartctx/internal/domain"
	"smartctx/internal/ports"
)

// AddItemsCommand expands file/folder references and adds the resulting
// keys to a context as root items. Folder references expand recursively
// through the item source, subject to the ignore patterns.
type AddItemsCommand struct {
	source  ports.ItemSource
	Context *domain.SmartContext
	Refs    []string
	Ignore  []string
}

// NewAddItemsCommand creates a new AddItemsCommand.
func NewAddItemsCommand(source ports.ItemSource, sc *domain.SmartContext, refs, ignore []string) *AddItemsCommand {
	return &AddItemsCommand{
		source:  source,
		Context: sc,
		Refs:    refs,
		Ignore:  ignore,
	}
}

// Execute adds every expanded key and returns the keys added. References
// that expand to nothing are skipped, not fatal.
func (c *AddItemsCommand) Execute(ctx context.Context) ([]string, error) {
	var added []string
	for _, ref := range c.Refs {
		keys, err := c.source.Expand(ref, c.Ignore)
		if err != nil {
			continue
		}
		for _, key := range keys {
			mtime, size, _ := c.source.Stat(key)
			c.Context.AddItem(key, mtime, size)
			added = append(added, key)
		}
	}
	return added, nil
}

// ImportBlocksCommand reads a note, parses its smart-context reference
// blocks, and adds the referenced items to a context.
type ImportBlocksCommand struct {
	content ports.ContentProvider
	source  ports.ItemSource
	Context *domain.SmartContext
	NoteKey string
	Ignore  []string
}

// NewImportBlocksCommand creates a new ImportBlocksCommand.
func NewImportBlocksCommand(content ports.ContentProvider, source ports.ItemSource, sc *domain.SmartContext, noteKey string, ignore []string) *ImportBlocksCommand {
	return &ImportBlocksCommand{
		content: content,
		source:  source,
		Context: sc,
		NoteKey: noteKey,
		Ignore:  ignore,
	}
}

// Execute merges the note's reference-block items into the context.
func (c *ImportBlocksCommand) Execute(ctx context.Context) ([]string, error) {
	text, err := c.content.Read(ctx, c.NoteKey)
	if err != nil {
		return nil, err
	}
	refs := compiler.ParseReferenceBlocks(text)
	add := NewAddItemsCommand(c.source, c.Context, refs, c.Ignore)
	return add.Execute(ctx)
}
