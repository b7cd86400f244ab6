package go_javad

import (
	"fmt"
	"io"
)

// StageKind is the kind of a pipeline stage.
type StageKind int

const (
	// CheckStage checks every call structurally.
	CheckStage StageKind = iota
	// DataFlowCheckStage checks every call structurally and analyzes the code of each method.
	DataFlowCheckStage
	// TraceStage prints every call.
	TraceStage
)

var stageKindNames = [...]string{"check", "dataflow", "trace"}

func (k StageKind) String() string {
	if k < 0 || int(k) >= len(stageKindNames) {
		return fmt.Sprintf("stage(%d)", int(k))
	}
	return stageKindNames[k]
}

// Stage is one step of a pipeline. Only the fields used by its kind are set.
type Stage struct {
	Kind     StageKind
	Options  []Option  // check stages
	Analyzer Analyzer  // data flow stage, nil selects StackAnalyzer
	Output   io.Writer // trace stage
}

func Check(opts ...Option) Stage {
	return Stage{Kind: CheckStage, Options: opts}
}

func DataFlowCheck(analyzer Analyzer, opts ...Option) Stage {
	return Stage{Kind: DataFlowCheckStage, Analyzer: analyzer, Options: opts}
}

func Trace(w io.Writer) Stage {
	return Stage{Kind: TraceStage, Output: w}
}

// NewPipeline chains the stages in front of sink. The first stage receives the calls first, and
// a call reaches the next stage only if the previous one accepted it. A nil sink discards.
func NewPipeline(sink ClassVisitor, stages ...Stage) ClassVisitor {
	next := classOrDiscard(sink)
	for i := len(stages) - 1; i >= 0; i-- {
		next = stages[i].wrap(next)
	}
	return next
}

func (s Stage) wrap(next ClassVisitor) ClassVisitor {
	switch s.Kind {
	case DataFlowCheckStage:
		opts := append([]Option{WithDataFlow(s.Analyzer)}, s.Options...)
		return NewClassChecker(next, opts...)
	case TraceStage:
		return NewClassTracer(s.Output, next)
	default:
		return NewClassChecker(next, s.Options...)
	}
}
