package overlay

import (
	"errors"
	"fmt"
	"log"
	"regexp"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

var (
	// ErrUnknownSide indicates a side column other than 0, 1 or 2.
	ErrUnknownSide = errors.New("unknown side")

	// ErrMalformedLine indicates a data line that does not match its table.
	ErrMalformedLine = errors.New("malformed overlay line")
)

var (
	// field_<id>_name_,<name>,<side>,<desc> and func_<id>_name_,...
	memberPattern = regexp.MustCompile(`^(?:func|field)_(\d+)_[$\w/]+?_??,(.+?),(.+?),(.*)$`)

	// p_<id>_<index>_,<name>,<side>; p_i<id>_... names constructor parameters
	paramPattern = regexp.MustCompile(`^p_(i??)(\d+?)_(\d+?)_??,(.+?),(\d)$`)
)

const partitionSize = 512

// Input holds the raw lines of the three overlay tables.
type Input struct {
	Fields  []string // fields.csv
	Methods []string // methods.csv
	Params  []string // params.csv
}

type options struct {
	workers int
	logger  *log.Logger
	verbose bool
}

// Option configures Parse.
type Option func(*options)

// WithWorkers limits the goroutines used per table.
func WithWorkers(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.workers = n
		}
	}
}

// WithLogger sets the logger for skipped lines.
func WithLogger(logger *log.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithVerbose logs every skipped line.
func WithVerbose(verbose bool) Option {
	return func(o *options) {
		o.verbose = verbose
	}
}

// Parse builds an overlay database. Header lines are ignored; other lines
// that do not parse are skipped and counted. The three tables are read
// concurrently, each split across workers.
func Parse(in Input, opts ...Option) (*Database, error) {
	o := &options{workers: runtime.GOMAXPROCS(0), logger: log.Default()}
	for _, opt := range opts {
		opt(o)
	}

	p := &parser{
		options: o,
		fields:  make(map[int]located[Member]),
		methods: make(map[int]located[Member]),
		params:  make(map[int][]Parameter),
	}

	var g errgroup.Group
	g.Go(func() error {
		return p.table("fields", in.Fields, "searge", func(line int, text string) error {
			return p.member(KindField, p.fields, line, text)
		})
	})
	g.Go(func() error {
		return p.table("methods", in.Methods, "searge", func(line int, text string) error {
			return p.member(KindMethod, p.methods, line, text)
		})
	})
	g.Go(func() error {
		return p.table("params", in.Params, "param", p.param)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sortParameters(p.params)
	return &Database{
		fields:  unwrap(p.fields),
		methods: unwrap(p.methods),
		params:  p.params,
		skipped: int(p.skipped.Load()),
	}, nil
}

// located remembers the input line of a value so concurrent partitions
// resolve duplicate ids to the earliest line.
type located[V any] struct {
	value V
	line  int
}

type parser struct {
	*options
	mu      sync.Mutex
	fields  map[int]located[Member]
	methods map[int]located[Member]
	params  map[int][]Parameter
	skipped atomic.Int64
}

// table runs fn over every non-header line of lines. Parse errors from fn
// are counted and the line skipped.
func (p *parser) table(name string, lines []string, header string, fn func(line int, text string) error) error {
	var g errgroup.Group
	g.SetLimit(p.workers)
	for lo := 0; lo < len(lines); lo += partitionSize {
		hi := min(lo+partitionSize, len(lines))
		g.Go(func() error {
			for i := lo; i < hi; i++ {
				text := lines[i]
				if strings.HasPrefix(text, header) || strings.TrimSpace(text) == "" {
					continue
				}
				if err := fn(i+1, text); err != nil {
					p.skipped.Add(1)
					logSkip(p.logger, p.verbose, name, i+1, text, err)
				}
			}
			return nil
		})
	}
	return g.Wait()
}

func (p *parser) member(kind Kind, into map[int]located[Member], line int, text string) error {
	m := memberPattern.FindStringSubmatch(text)
	if m == nil {
		return ErrMalformedLine
	}
	id, err := strconv.Atoi(m[1])
	if err != nil {
		return fmt.Errorf("%w: id: %w", ErrMalformedLine, err)
	}
	side, err := ParseSide(m[3])
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if prev, ok := into[id]; ok && prev.line < line {
		return nil
	}
	into[id] = located[Member]{
		value: Member{Kind: kind, ID: id, Name: m[2], Side: side, Description: m[4]},
		line:  line,
	}
	return nil
}

func (p *parser) param(_ int, text string) error {
	m := paramPattern.FindStringSubmatch(text)
	if m == nil {
		return ErrMalformedLine
	}
	id, err := strconv.Atoi(m[2])
	if err != nil {
		return fmt.Errorf("%w: id: %w", ErrMalformedLine, err)
	}
	index, err := strconv.Atoi(m[3])
	if err != nil {
		return fmt.Errorf("%w: index: %w", ErrMalformedLine, err)
	}
	side, err := ParseSide(m[5])
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.params[id] = append(p.params[id], Parameter{
		MethodID:    id,
		Index:       index,
		Name:        m[4],
		Side:        side,
		Constructor: m[1] == "i",
	})
	return nil
}

func unwrap(m map[int]located[Member]) map[int]Member {
	out := make(map[int]Member, len(m))
	for id, v := range m {
		out[id] = v.value
	}
	return out
}
