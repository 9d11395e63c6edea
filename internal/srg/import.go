package srg

import (
	"log"
	"time"
)

// DefaultDescriptorCacheSize bounds the memo of resolved descriptors.
const DefaultDescriptorCacheSize = 16384

// Input holds the raw text tables of one import.
type Input struct {
	Mappings     []string // joined.tsrg
	Statics      []string // static_methods.txt
	Constructors []string // constructors.txt
}

type options struct {
	workers   int
	logger    *log.Logger
	verbose   bool
	progress  ProgressReporter
	cacheSize int
}

// Option configures Import and Deserialize.
type Option func(*options)

// WithWorkers limits the goroutines used by the parallel passes.
func WithWorkers(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.workers = n
		}
	}
}

// WithLogger sets the logger for summaries and, when verbose, per-line
// diagnostics.
func WithLogger(logger *log.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithVerbose logs every diagnostic as it is produced.
func WithVerbose(verbose bool) Option {
	return func(o *options) {
		o.verbose = verbose
	}
}

// WithProgress configures progress reporting.
func WithProgress(progress ProgressReporter) Option {
	return func(o *options) {
		if progress != nil {
			o.progress = progress
		}
	}
}

// WithDescriptorCacheSize sets the capacity of the resolved-descriptor
// memo. Zero disables it.
func WithDescriptorCacheSize(size int) Option {
	return func(o *options) {
		if size >= 0 {
			o.cacheSize = size
		}
	}
}

func newOptions(opts []Option) *options {
	o := &options{
		workers:   defaultWorkers(),
		logger:    log.Default(),
		progress:  noopProgress{},
		cacheSize: DefaultDescriptorCacheSize,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Import builds a database from raw mapping text. Unrecognized lines and
// unresolvable descriptor tokens are skipped and counted in the report; the
// only fatal condition is mapping text that does not start with a class
// header (ErrNoClassHeader).
func Import(in Input, opts ...Option) (*Database, *Report, error) {
	o := newOptions(opts)
	diags := &diagnostics{logger: o.logger, verbose: o.verbose}

	var statics map[int]struct{}
	o.timed(PassStatics, func() {
		statics = parseStatics(in.Statics, o.workers, diags, o.progress)
	})
	o.logger.Printf("Parsed %d static method declarations", len(statics))

	c := newClassifier(statics, diags)
	var err error
	o.timed(PassMappings, func() {
		err = c.run(in.Mappings, o.progress)
	})
	if err != nil {
		return nil, nil, err
	}

	var constructors map[int]Constructor
	o.timed(PassConstructors, func() {
		constructors = parseConstructors(c.classes, in.Constructors, o.workers, diags, o.progress)
	})
	o.logger.Printf("Found %d valid constructors", len(constructors))

	resolver, err := newDescriptorResolver(c.classes, diags, o.cacheSize)
	if err != nil {
		return nil, nil, err
	}
	defer resolver.close()

	t := &tables{
		classes:      c.classes,
		fields:       c.fields,
		enumValues:   c.enumValues,
		constructors: constructors,
	}
	o.timed(PassDescriptors, func() {
		o.progress.OnPassStart(PassDescriptors, c.numbered.Len()+len(c.named))

		numbered := resolveAll(resolver, c.numbered.Values(), o.workers)
		t.numbered = NewTable[int, Class, NumberedMethod]()
		for _, m := range numbered {
			t.numbered.Put(m.ID, m.Owner, m)
		}

		named := resolveAll(resolver, flatten(c.named), o.workers)
		t.named = make(map[string][]NamedMethod, len(c.named))
		for _, m := range named {
			t.named[m.Name] = append(t.named[m.Name], m)
		}

		t.numberedParams = buildParameters(numbered, o.workers)
		t.namedParams = buildParameters(named, o.workers)
		t.constructorParams = buildParameters(mapValues(constructors), o.workers)
	})

	db := t.freeze()
	report := &Report{
		StaticMethods: len(statics),
		Constructors:  len(constructors),
		Statistics:    db.Statistics(),
		Diagnostics:   diags.sorted(),
	}
	return db, report, nil
}

func (o *options) timed(pass Pass, fn func()) {
	start := time.Now()
	fn()
	o.progress.OnPassComplete(pass, time.Since(start))
}

func flatten[K comparable, V any](m map[K][]V) []V {
	var out []V
	for _, vs := range m {
		out = append(out, vs...)
	}
	return out
}

func mapValues[K comparable, V any](m map[K]V) []V {
	out := make([]V, 0, len(m))
	for _, v := range m {
		out = append(out, v)
	}
	return out
}
