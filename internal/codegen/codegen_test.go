package codegen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestGenerate_ShortCircuitAndSkipsRightOperand covers §8 S4: `true && false`
// must branch away before the right operand's code ever runs.
func TestGenerate_ShortCircuitAndSkipsRightOperand(t *testing.T) {
	out := compile(t, `
bool b;
int main() {
	b = true && false;
	return 0;
}
`)
	beq := strings.Index(out, "beq $t0, $zero,")
	andIdx := strings.Index(out, "and $t0, $t0, $t1")
	assert.GreaterOrEqual(t, beq, 0, "expected a zero-branch guarding the right operand")
	assert.Greater(t, andIdx, beq, "and must appear after the branch, on the path it guards")
}

// TestGenerate_StringLiteralsAreInternedOnce covers §8 S5: two prints of
// the same literal must produce exactly one .asciiz entry.
func TestGenerate_StringLiteralsAreInternedOnce(t *testing.T) {
	out := compile(t, `
int main() {
	print "hi";
	print "hi";
	return 0;
}
`)
	assert.Equal(t, 1, strings.Count(out, `.asciiz "hi"`))
}

// TestGenerate_CallRestoresStackAndPushesResult covers §8 S6: after a
// two-argument call, $sp is restored by exactly 8 bytes and $v0 is
// pushed onto the expression stack.
func TestGenerate_CallRestoresStackAndPushesResult(t *testing.T) {
	out := compile(t, `
int f(int a, int b) {
	return a + b;
}
int main() {
	return call f(1, 2);
}
`)
	assert.Contains(t, out, "jal _f")
	assert.Contains(t, out, "addu $sp, $sp, 8")
	assert.Contains(t, out, "sw $v0, 0($sp)")
}

func TestGenerate_MainExitsViaSyscall10(t *testing.T) {
	out := compile(t, `
int main() {
	return 0;
}
`)
	mainIdx := strings.Index(out, "main:")
	assert.GreaterOrEqual(t, mainIdx, 0)
	tail := out[mainIdx:]
	assert.Contains(t, tail, "li $v0, 10")
	assert.Contains(t, tail, "syscall")
}

func TestGenerate_NonMainFunctionExitsViaJumpRegister(t *testing.T) {
	out := compile(t, `
int f() {
	return 1;
}
int main() {
	return call f();
}
`)
	fIdx := strings.Index(out, "_f:")
	mainIdx := strings.Index(out, "main:")
	assert.GreaterOrEqual(t, fIdx, 0)
	between := out[fIdx:mainIdx]
	assert.Contains(t, between, "jr $ra")
}

func TestGenerate_GlobalVarEmitsDataEntry(t *testing.T) {
	out := compile(t, `
int counter;
int main() {
	counter = 1;
	return 0;
}
`)
	assert.Contains(t, out, "_counter: .space 4")
	assert.True(t, strings.Index(out, ".data") < strings.Index(out, "_counter: .space 4"))
}

func TestGenerate_RepeatDesugarsToCountedLoop(t *testing.T) {
	out := compile(t, `
int main() {
	int i;
	repeat (3) {
		i = i + 1;
	}
	return 0;
}
`)
	// Desugared into a decrementing counted loop: a blez guard, a
	// decrement, and a jump back to the top (§9).
	assert.Contains(t, out, "blez $t0,")
	assert.Contains(t, out, "addi $t0, $t0, -1")
}

func TestGenerate_PrintIntUsesSyscall1AndPrintStringUsesSyscall4(t *testing.T) {
	out := compile(t, `
int main() {
	print 1;
	print "x";
	return 0;
}
`)
	assert.Contains(t, out, "li $v0, 1")
	assert.Contains(t, out, "li $v0, 4")
}

func TestGenerate_ReceiveReadsViaSyscall5(t *testing.T) {
	out := compile(t, `
int main() {
	int a;
	receive a;
	return 0;
}
`)
	assert.Contains(t, out, "li $v0, 5")
	assert.Contains(t, out, "sw $v0, 0($t0)")
}

func TestGenerate_PreIncAndPreDecMutateThroughAddress(t *testing.T) {
	out := compile(t, `
int main() {
	int a;
	a++;
	a--;
	return 0;
}
`)
	assert.Contains(t, out, "addi $t1, $t1, 1")
	assert.Contains(t, out, "addi $t1, $t1, -1")
}

// TestGenerate_NotReproducesDocumentedBug verifies `!x` lowers as
// negate-then-increment, not a true boolean complement (§9 design note).
func TestGenerate_NotReproducesDocumentedBug(t *testing.T) {
	out := compile(t, `
bool main_flag;
void main() {
	main_flag = !true;
}
`)
	idx := strings.Index(out, "sub $t0, $zero, $t0")
	assert.GreaterOrEqual(t, idx, 0)
	rest := out[idx:]
	assert.Contains(t, rest, "addi $t0, $t0, 1")
}

func TestGenerate_AssignmentIsAnExpressionYieldingItsValue(t *testing.T) {
	out := compile(t, `
int main() {
	int a;
	int b;
	a = b = 5;
	return 0;
}
`)
	assert.Contains(t, out, "sw $t1, 0($t0)")
	assert.Contains(t, out, "sw $t1, 0($t0)\n\tsw $t1, 0($sp)")
}

func TestGenerate_IfElseBranchesToDistinctLabels(t *testing.T) {
	out := compile(t, `
int main() {
	if (true) {
		print 1;
	} else {
		print 2;
	}
	return 0;
}
`)
	assert.Contains(t, out, "beq $t0, $zero,")
	assert.Contains(t, out, "j L")
}

func TestGenerate_StructFieldAccessStubsToZeroWithoutCrashing(t *testing.T) {
	out := compile(t, `
struct Point { int x; int y; };
void main() {
	struct Point p;
	int a;
	a = p.x;
}
`)
	assert.Contains(t, out, "li $t0, 0")
}

func TestGenerate_ArithmeticEvaluatesRightOperandFirst(t *testing.T) {
	out := compile(t, `
int main() {
	return 1 + 2;
}
`)
	assert.Contains(t, out, "li $t0, 2")
	assert.Contains(t, out, "add $t0, $t0, $t1")
	assert.Less(t, strings.Index(out, "li $t0, 2"), strings.Index(out, "li $t0, 1"))
}
