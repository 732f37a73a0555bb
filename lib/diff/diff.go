// Package diff computes character-granular edit scripts between two strings.
// A script fully partitions both strings into Retain, Insert and Delete
// spans in document order, which is what the replay scheduler relies on for
// its offset bookkeeping.
package diff

// maxMemoryMB bounds the memory the Myers search is allowed to use. Inputs
// whose worst-case trace would exceed it fall back to a coarse whole-span
// replacement, which is still a valid partition.
const maxMemoryMB = 128

// Diff computes the canonical edit script transforming a into b. It is pure
// and deterministic: the same pair of strings always yields the same script.
func Diff(a string, b string) Script {
	builder := NewBuilder()
	if a == b {
		builder.Retain(a)
		return builder.Script()
	}

	aUnits := Units(a)
	bUnits := Units(b)

	// Strip the common prefix and suffix first. Most replays touch a small
	// region of a large buffer, so this keeps the quadratic search tiny.
	prefix := commonPrefix(aUnits, bUnits)
	suffix := commonSuffix(aUnits[prefix:], bUnits[prefix:])

	prefixBytes := unitBytes(aUnits[:prefix])
	aSufStart := len(a) - unitBytes(aUnits[len(aUnits)-suffix:])
	bSufStart := len(b) - unitBytes(bUnits[len(bUnits)-suffix:])

	builder.Retain(a[:prefixBytes])

	aMid := aUnits[prefix : len(aUnits)-suffix]
	bMid := bUnits[prefix : len(bUnits)-suffix]

	switch {
	case len(aMid) == 0:
		builder.Insert(b[prefixBytes:bSufStart])
	case len(bMid) == 0:
		builder.Delete(a[prefixBytes:aSufStart])
	case exceedsMemoryBudget(len(aMid), len(bMid)):
		builder.Delete(a[prefixBytes:aSufStart])
		builder.Insert(b[prefixBytes:bSufStart])
	default:
		for _, op := range myersUnits(aMid, bMid) {
			switch op.kind {
			case Retain:
				builder.Retain(aMid[op.aIndex])
			case Delete:
				builder.Delete(aMid[op.aIndex])
			case Insert:
				builder.Insert(bMid[op.bIndex])
			}
		}
	}

	builder.Retain(a[aSufStart:])
	return builder.Script()
}

func commonPrefix(a []string, b []string) int {
	var n = 0
	for n < len(a) && n < len(b) && a[n] == b[n] {
		n++
	}
	return n
}

func commonSuffix(a []string, b []string) int {
	var n = 0
	for n < len(a) && n < len(b) && a[len(a)-1-n] == b[len(b)-1-n] {
		n++
	}
	return n
}

func unitBytes(units []string) int {
	var n = 0
	for _, u := range units {
		n += len(u)
	}
	return n
}

// exceedsMemoryBudget estimates the Myers trace size the way the search
// below allocates it: one V vector copy per edit distance step.
func exceedsMemoryBudget(n int, m int) bool {
	maxD := n + m
	estimatedBytes := int64(maxD) * int64(2*maxD+1) * 8
	return estimatedBytes/(1024*1024) > maxMemoryMB
}

// unitOp is one step of the unit-level alignment.
type unitOp struct {
	kind   OpKind
	aIndex int
	bIndex int
}

// myersUnits runs the Myers shortest-edit-script search over two unit
// slices. Tie-breaks are fixed (prefer stepping down over right when V
// values are equal), so the alignment is deterministic.
func myersUnits(a []string, b []string) []unitOp {
	n := len(a)
	m := len(b)

	maxD := n + m
	offset := maxD
	v := make([]int, 2*maxD+1)
	v[offset+1] = 0

	var trace [][]int

outer:
	for d := 0; d <= maxD; d++ {
		vCopy := make([]int, len(v))
		copy(vCopy, v)
		trace = append(trace, vCopy)

		for k := -d; k <= d; k += 2 {
			var x int
			if k == -d || (k != d && v[offset+k-1] < v[offset+k+1]) {
				x = v[offset+k+1]
			} else {
				x = v[offset+k-1] + 1
			}
			y := x - k

			for x < n && y < m && a[x] == b[y] {
				x++
				y++
			}
			v[offset+k] = x

			if x >= n && y >= m {
				break outer
			}
		}
	}

	// Backtrack from (n, m) through the saved V vectors.
	x := n
	y := m
	var ops []unitOp
	for d := len(trace) - 1; d >= 0; d-- {
		vd := trace[d]
		k := x - y

		var prevK int
		if k == -d || (k != d && vd[offset+k-1] < vd[offset+k+1]) {
			prevK = k + 1
		} else {
			prevK = k - 1
		}
		prevX := vd[offset+prevK]
		prevY := prevX - prevK

		for x > prevX && y > prevY {
			x--
			y--
			ops = append(ops, unitOp{kind: Retain, aIndex: x, bIndex: y})
		}
		if d > 0 {
			if x > prevX {
				x--
				ops = append(ops, unitOp{kind: Delete, aIndex: x})
			} else if y > prevY {
				y--
				ops = append(ops, unitOp{kind: Insert, bIndex: y})
			}
		}
	}

	for i, j := 0, len(ops)-1; i < j; i, j = i+1, j-1 {
		ops[i], ops[j] = ops[j], ops[i]
	}
	return ops
}
