package go_javad

import "io"

// Option configures a ClassChecker or a MethodChecker.
type Option func(*options)

type options struct {
	analyzer    Analyzer
	diagnostics io.Writer
	labels      *LabelArena
}

func newOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithDataFlow records the code of every method and runs analyzer over it when the method ends.
// A nil analyzer selects StackAnalyzer.
func WithDataFlow(analyzer Analyzer) Option {
	return func(o *options) {
		if analyzer == nil {
			analyzer = StackAnalyzer{}
		}
		o.analyzer = analyzer
	}
}

// WithDiagnostics writes the per instruction dump of a failed data flow analysis to w.
func WithDiagnostics(w io.Writer) Option {
	return func(o *options) {
		o.diagnostics = w
	}
}

// WithLabels makes a MethodChecker record label positions in arena. A ClassChecker hands its own
// arena to every method checker it creates.
func WithLabels(arena *LabelArena) Option {
	return func(o *options) {
		o.labels = arena
	}
}
