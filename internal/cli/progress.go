package cli

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/mvp-joe/cartographer/internal/srg"
	"github.com/schollz/progressbar/v3"
)

// CLIProgressReporter draws one progress bar per import pass.
type CLIProgressReporter struct {
	quiet bool
	out   io.Writer

	mu   sync.Mutex
	bars map[srg.Pass]*progressbar.ProgressBar
}

// NewCLIProgressReporter creates a new CLI progress reporter.
func NewCLIProgressReporter(out io.Writer, quiet bool) *CLIProgressReporter {
	return &CLIProgressReporter{
		quiet: quiet,
		out:   out,
		bars:  make(map[srg.Pass]*progressbar.ProgressBar),
	}
}

var passDescriptions = map[srg.Pass]string{
	srg.PassStatics:      "Reading static methods",
	srg.PassMappings:     "Classifying mappings",
	srg.PassConstructors: "Reading constructors",
	srg.PassDescriptors:  "Resolving descriptors",
}

func (c *CLIProgressReporter) OnPassStart(pass srg.Pass, total int) {
	if c.quiet {
		return
	}
	out := c.out
	bar := progressbar.NewOptions(total,
		progressbar.OptionSetWriter(out),
		progressbar.OptionSetDescription(passDescriptions[pass]),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("lines/s"),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(out)
		}),
	)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.bars[pass] = bar
}

func (c *CLIProgressReporter) OnPassAdvance(pass srg.Pass, processed int) {
	if c.quiet {
		return
	}
	c.mu.Lock()
	bar := c.bars[pass]
	c.mu.Unlock()
	if bar != nil {
		bar.Add(processed)
	}
}

func (c *CLIProgressReporter) OnPassComplete(pass srg.Pass, duration time.Duration) {
	if c.quiet {
		return
	}
	c.mu.Lock()
	bar := c.bars[pass]
	delete(c.bars, pass)
	c.mu.Unlock()
	if bar != nil {
		bar.Finish()
	}
	fmt.Fprintf(c.out, "✓ %s pass took %.2fs\n", pass, duration.Seconds())
}

// formatNumber renders n with thousands separators.
func formatNumber(n int) string {
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}

	str := fmt.Sprintf("%d", n)
	var result string
	for i, c := range str {
		if i > 0 && (len(str)-i)%3 == 0 {
			result += ","
		}
		result += string(c)
	}
	return result
}
