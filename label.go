package go_javad

import (
	"fmt"

	"golang.org/x/tools/container/intsets"
)

// Label designates a position in the code of a method. Labels are integer handles handed out by a
// LabelArena, so the producer of visit calls and every checker it drives can agree on them.
type Label int

// NoLabel is the zero Label. It never designates a position.
const NoLabel Label = 0

func (l Label) String() string {
	return fmt.Sprintf("L%d", int(l))
}

// LabelArena allocates labels and records the instruction index each label is declared at.
// One arena is owned by the class being checked and handed to every method checker of that class.
type LabelArena struct {
	last      Label
	positions map[Label]int
}

func NewLabelArena() *LabelArena {
	return &LabelArena{positions: make(map[Label]int)}
}

// NewLabel returns a label distinct from every label previously returned by the arena.
func (a *LabelArena) NewLabel() Label {
	a.last++
	return a.last
}

// declare binds label to an instruction index. A label can be declared only once.
func (a *LabelArena) declare(label Label, index int) error {
	if _, ok := a.positions[label]; ok {
		return illegalState("Already visited label")
	}
	a.positions[label] = index
	if label > a.last {
		a.last = label
	}
	return nil
}

// position returns the instruction index label was declared at.
func (a *LabelArena) position(label Label) (int, bool) {
	index, ok := a.positions[label]
	return index, ok
}

// Position returns the instruction index label was declared at, if it was declared.
func (a *LabelArena) Position(label Label) (int, bool) {
	return a.position(label)
}

// labelSet is the set of labels referenced by the instructions of one method.
type labelSet struct {
	set intsets.Sparse
}

func (s *labelSet) add(labels ...Label) {
	for _, l := range labels {
		s.set.Insert(int(l))
	}
}

func (s *labelSet) has(label Label) bool {
	return s.set.Has(int(label))
}

func (s *labelSet) len() int {
	return s.set.Len()
}

// labels returns the referenced labels in increasing order.
func (s *labelSet) labels() []Label {
	var out []Label
	for _, x := range s.set.AppendTo(nil) {
		out = append(out, Label(x))
	}
	return out
}
