package common

import (
	"fmt"
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Stopwatch reports the wall-clock time of one report section.
type Stopwatch struct {
	start    time.Time
	out      io.Writer
	observer prometheus.Observer
}

func RuntimeBenchmark[T any](out io.Writer, label string, functionUnderTest func() (T, error)) (T, error) {
	start := time.Now()
	result, err := functionUnderTest()
	elapsed := time.Since(start)
	fmt.Fprintf(out, "[BENCH] %s took %s\n", label, elapsed)
	return result, err
}

// NewStopwatch starts timing. observer may be nil when telemetry is off.
func NewStopwatch(out io.Writer, observer prometheus.Observer) *Stopwatch {
	return &Stopwatch{start: time.Now(), out: out, observer: observer}
}

func (stopwatch *Stopwatch) Elapsed() time.Duration {
	return time.Since(stopwatch.start)
}

// Close prints the elapsed seconds followed by the section rule.
func (stopwatch *Stopwatch) Close() {
	elapsed := stopwatch.Elapsed()
	if stopwatch.observer != nil {
		stopwatch.observer.Observe(elapsed.Seconds())
	}
	fmt.Fprintf(stopwatch.out, "\nThis took %v seconds.\n", elapsed.Seconds())
	fmt.Fprintln(stopwatch.out, SectionRule)
}

const SectionRule = "----------------------------------------"
