package ir

import (
	"testing"

	"github.com/nalgeon/be"
)

func labelsOf(blocks []*BasicBlock) []string {
	out := make([]string, len(blocks))
	for i, bb := range blocks {
		out[i] = bb.Label
	}
	return out
}

func TestSplitBlocks(t *testing.T) {
	t.Run("while loop", func(t *testing.T) {
		res := mustEmit(t, "x = 0\nwhile x < 10 x = x + 1 end")
		blocks := SplitBlocks(res.Instructions)
		be.Equal(t, labelsOf(blocks), []string{"B0", "L0", "B2", "L1"})

		be.Equal(t, labelsOf(blocks[0].Successors), []string{"L0"})
		be.Equal(t, labelsOf(blocks[1].Successors), []string{"B2", "L1"})
		be.Equal(t, labelsOf(blocks[2].Successors), []string{"L0"})
		be.Equal(t, len(blocks[3].Successors), 0)

		be.Equal(t, labelsOf(blocks[1].Predecessors), []string{"B0", "B2"})
		be.Equal(t, len(blocks[1].Instructions), 3)
		be.Equal(t, blocks[2].Start, 4)
	})

	t.Run("function body skipped by fallthrough", func(t *testing.T) {
		res := mustEmit(t, "y = 0\nfunction f() return 1 end\nx = 1")
		blocks := SplitBlocks(res.Instructions)
		be.Equal(t, len(blocks), 4)

		be.Equal(t, labelsOf(blocks[0].Successors), []string{"B3"})
		be.Equal(t, len(blocks[1].Successors), 0)
		be.Equal(t, len(blocks[2].Successors), 0)
		be.Equal(t, labelsOf(blocks[3].Predecessors), []string{"B0"})
	})

	t.Run("terminators", func(t *testing.T) {
		res := mustEmit(t, "x = 1\nif x > 0 x = 2 end")
		blocks := SplitBlocks(res.Instructions)
		be.Equal(t, blocks[0].Terminator().String(), "if_false t0 goto L0")
		be.Equal(t, blocks[1].Terminator().String(), "goto L0")
		be.Equal(t, blocks[2].Terminator(), Instruction(nil))
	})

	t.Run("empty", func(t *testing.T) {
		be.Equal(t, len(SplitBlocks(nil)), 0)
	})
}
