package loosejson

// DefaultMaxDepth bounds container nesting when an option leaves MaxDepth
// at zero.
const DefaultMaxDepth = 1000

// Severity expresses how a non-fatal condition is handled.
type Severity int

const (
	Ignore Severity = iota
	Warn
	Error
)

// Strictness configures enforcement for conditions the grammar itself
// accepts.
type Strictness struct {
	OnDuplicateKey Severity // Ignore keeps the last value silently.
}

// DecodeOpt bundles decoding options.
type DecodeOpt struct {
	// Strict restricts the grammar to plain JSON (plus NaN, Infinity and a
	// leading '+').
	Strict bool
	// AllUnicode sends every string through the Unicode path.
	AllUnicode bool
	// MaxDepth limits container nesting; 0 means DefaultMaxDepth and a
	// negative value disables the limit.
	MaxDepth int
	// MaxBytes rejects larger inputs up front when positive.
	MaxBytes   int64
	Strictness Strictness
	// IssueSink receives warnings such as duplicate keys under Warn.
	IssueSink func(Issue)
}

// EncodeOpt bundles encoding options.
type EncodeOpt struct {
	MaxDepth int // same convention as DecodeOpt.MaxDepth
}

func lastDecodeOpt(opts []DecodeOpt) DecodeOpt {
	if len(opts) == 0 {
		return DecodeOpt{}
	}
	return opts[len(opts)-1]
}

func effectiveDepth(n int) int {
	switch {
	case n == 0:
		return DefaultMaxDepth
	case n < 0:
		return 0
	}
	return n
}
