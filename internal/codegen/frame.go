package codegen

import (
	"fmt"
	"strings"
)

// instructionBlock is a labeled, ordered sequence of emitted assembly
// lines, buffered before it is known how large the enclosing function's
// frame needs to be.
//
// Adapted from the teacher's ir.BasicBlock: same "ordered instruction
// list with a String() form" shape, but with the CFG bookkeeping
// (Successors/Predecessors/Dominated) dropped — those existed to serve
// SSA construction and optimization passes, and this generator lowers
// straight from the checked AST with neither.
type instructionBlock struct {
	lines []string
}

func newInstructionBlock() *instructionBlock {
	return &instructionBlock{}
}

func (b *instructionBlock) emit(format string, args ...interface{}) {
	b.lines = append(b.lines, "\t"+fmt.Sprintf(format, args...))
}

func (b *instructionBlock) label(name string) {
	b.lines = append(b.lines, name+":")
}

func (b *instructionBlock) String() string {
	var sb strings.Builder
	for _, l := range b.lines {
		sb.WriteString(l)
		sb.WriteString("\n")
	}
	return sb.String()
}

// Frame tracks one function's local-storage layout during code
// generation: the size already computed by name analysis, plus any
// synthetic slots the generator allocates for itself. Today the only
// synthetic slot is a repeat loop's counter (§4.4's while(counter-- > 0)
// desugaring); each is carved from a reserved band immediately below the
// analyzed locals so it can never collide with a name-analyzed offset.
type Frame struct {
	analyzedBytes  int
	syntheticCount int
}

func newFrame(analyzedBytes int) *Frame {
	return &Frame{analyzedBytes: analyzedBytes}
}

// allocSynthetic reserves the next word below every slot handed out so
// far (analyzed or synthetic) and returns its offset from $fp.
func (f *Frame) allocSynthetic() int {
	index := f.analyzedBytes/4 + f.syntheticCount
	f.syntheticCount++
	return -8 - 4*index
}

// totalBytes is the full local-frame size the entry sequence must
// reserve: the analyzed size plus every synthetic slot allocated while
// generating this function's body.
func (f *Frame) totalBytes() int {
	return f.analyzedBytes + 4*f.syntheticCount
}
