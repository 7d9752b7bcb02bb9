package progress

import (
	"fmt"
	"io"
	"math"
	"os"
	"time"

	"github.com/mattn/go-isatty"

	"github.com/ccollicutt/lottostat/pkg/tally"
)

const (
	cursorUp  = "\x1b[1A"
	clearLine = "\x1b[K"
)

// Renderer draws progress frames for tally events.
type Renderer struct {
	out     io.Writer
	inPlace bool

	drawn bool
	limit float64
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithInPlace forces in-place redraw on or off, overriding terminal detection.
func WithInPlace(inPlace bool) Option {
	return func(r *Renderer) {
		r.inPlace = inPlace
	}
}

// NewRenderer creates a renderer writing to out. In-place redraw is
// enabled when out is a terminal.
func NewRenderer(out io.Writer, opts ...Option) *Renderer {
	r := &Renderer{
		out:     out,
		inPlace: isTerminal(out),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Observe handles one engine event. It satisfies tally.Observer.
func (r *Renderer) Observe(ev tally.Event) {
	switch {
	case ev.Done:
		r.draw(100, 0)
		if r.inPlace {
			fmt.Fprintln(r.out)
		}
	case !r.drawn || ev.RawPercent > r.limit:
		r.draw(ev.Percent, ev.ETA)
		r.limit = math.Ceil(ev.RawPercent)
	}
}

func (r *Renderer) draw(percent int, eta time.Duration) {
	if r.inPlace {
		if r.drawn {
			fmt.Fprint(r.out, "\r"+cursorUp)
		}
		fmt.Fprintf(r.out, "Progress: %d%%%s\nEstimated time left: %s%s", percent, clearLine, FormatETA(eta), clearLine)
	} else {
		fmt.Fprintf(r.out, "Progress: %d%%\nEstimated time left: %s\n", percent, FormatETA(eta))
	}
	r.drawn = true
}

// FormatETA formats d as hh:mm:ss. Hours are not wrapped at 24.
func FormatETA(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int64(d.Round(time.Second) / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, total/60%60, total%60)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
