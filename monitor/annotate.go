package monitor

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"procscope/models"
)

// AnnotationListener turns operator input lines into annotations anchored
// to the most recent sample. It runs concurrently with the sampler for the
// whole session and never blocks it; it shuts down when the run's context
// is cancelled and never triggers termination itself.
type AnnotationListener struct {
	series *models.TimeSeries
	in     io.Reader
	out    io.Writer
}

// NewAnnotationListener listens on in (normally stdin) and writes prompts
// and confirmations to out.
func NewAnnotationListener(series *models.TimeSeries, in io.Reader, out io.Writer) *AnnotationListener {
	return &AnnotationListener{series: series, in: in, out: out}
}

// Run listens until ctx is cancelled or the input closes. A non-empty line
// is recorded verbatim; a bare Enter prompts once for a label, and an empty
// follow-up synthesizes "Mark N". Labels arriving before the first sample
// exists are dropped, since there is nothing to anchor them to.
func (l *AnnotationListener) Run(ctx context.Context) {
	// A dedicated goroutine owns the blocking reads and feeds a bounded
	// mailbox, so the listener itself can always observe cancellation.
	lines := make(chan string, 8)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(l.in)
		for sc.Scan() {
			select {
			case lines <- strings.TrimSpace(sc.Text()):
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case line, ok := <-lines:
			if !ok {
				return
			}
			label := line
			if label == "" {
				fmt.Fprint(l.out, "\nAnnotation label: ")
				select {
				case <-ctx.Done():
					return
				case follow, ok := <-lines:
					if !ok {
						return
					}
					label = follow
				}
				if label == "" {
					label = fmt.Sprintf("Mark %d", l.series.AnnotationCount()+1)
				}
			}
			if l.series.Annotate(label) {
				fmt.Fprintf(l.out, "\nAnnotation added: %q\n", label)
			}
		}
	}
}
