package puzzle

// Default limits applied when an Options field is left at zero.
const (
	DefaultMaxTallyRows      = 500
	DefaultMaxTallyScan      = 1 << 22
	DefaultMaxPeriod         = 1_000_000
	DefaultMaxIterativeBound = 1_000_000_000
	DefaultChunkSize         = 1 << 16

	// hardIterativeLimit keeps a chunk sum inside int64 for any chunk size
	// up to DefaultChunkSize.
	hardIterativeLimit = 1 << 46
	// hardPeriodLimit keeps the sum over one period inside int64.
	hardPeriodLimit = 1 << 31
)

// Options tunes the work a puzzle or solver is willing to do.
type Options struct {
	// MaxTallyRows caps the running-tally table of an Explanation.
	MaxTallyRows int
	// MaxTallyScan caps how many numbers are scanned to build the tally.
	MaxTallyScan int64
	// MaxPeriod is the largest period walked element by element. Above it
	// the derivation and the periodic solver fall back or refuse.
	MaxPeriod int64
	// MaxIterativeBound is the largest bound the iterative solver accepts.
	MaxIterativeBound int64
	// ChunkSize is the number of values summed between context checks.
	ChunkSize int64
}

// DefaultOptions returns the limits used by the CLI and the server.
func DefaultOptions() Options {
	return Options{
		MaxTallyRows:      DefaultMaxTallyRows,
		MaxTallyScan:      DefaultMaxTallyScan,
		MaxPeriod:         DefaultMaxPeriod,
		MaxIterativeBound: DefaultMaxIterativeBound,
		ChunkSize:         DefaultChunkSize,
	}
}

func (o Options) withDefaults() Options {
	if o.MaxTallyRows <= 0 {
		o.MaxTallyRows = DefaultMaxTallyRows
	}
	if o.MaxTallyScan <= 0 {
		o.MaxTallyScan = DefaultMaxTallyScan
	}
	if o.MaxPeriod <= 0 {
		o.MaxPeriod = DefaultMaxPeriod
	}
	o.MaxPeriod = min(o.MaxPeriod, hardPeriodLimit)
	if o.MaxIterativeBound <= 0 {
		o.MaxIterativeBound = DefaultMaxIterativeBound
	}
	o.MaxIterativeBound = min(o.MaxIterativeBound, hardIterativeLimit)
	if o.ChunkSize <= 0 || o.ChunkSize > DefaultChunkSize {
		o.ChunkSize = DefaultChunkSize
	}
	return o
}
