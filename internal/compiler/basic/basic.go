// Package basic renders the linear instruction sequence as line-numbered
// BASIC text. No control-flow graph remains at this point; the only work
// left is numbering lines and resolving label anchors.
package basic

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/EthanVletter/Compiler-Crew/internal/compiler/ir"
)

const (
	DefaultStart = 10
	DefaultStep  = 10
)

// Converter assigns strictly increasing line numbers. Zero values fall
// back to the 10/10 default.
type Converter struct {
	Start int
	Step  int
}

// Convert renders each instruction as one numbered BASIC line and appends
// the final STOP. A LABEL renders nothing: it is an anchor resolving to
// the line number of the next rendered instruction, or to the STOP line
// when nothing follows it.
func (c Converter) Convert(code []ir.Instruction) string {
	start, step := c.Start, c.Step
	if start <= 0 {
		start = DefaultStart
	}
	if step <= 0 {
		step = DefaultStep
	}

	// First pass: number the rendered instructions and bind each label to
	// the line that follows it.
	numbers := make([]int, len(code))
	labelLines := make(map[int]int)
	var pending []int
	next := start
	for i, in := range code {
		if in.Op == ir.OpLabel {
			pending = append(pending, in.Target.(ir.Label).ID)
			continue
		}
		numbers[i] = next
		for _, id := range pending {
			labelLines[id] = next
		}
		pending = pending[:0]
		next += step
	}
	stopLine := next
	for _, id := range pending {
		labelLines[id] = stopLine
	}

	resolve := func(l ir.Label) string {
		return strconv.Itoa(labelLines[l.ID])
	}

	var out strings.Builder
	for i, in := range code {
		if in.Op == ir.OpLabel {
			continue
		}
		fmt.Fprintf(&out, "%d %s\n", numbers[i], in.Format(resolve))
	}
	fmt.Fprintf(&out, "%d STOP\n", stopLine)
	return out.String()
}
