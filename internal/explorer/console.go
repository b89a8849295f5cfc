package explorer

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"tarediiran-industries.com/bikeshare-tools/internal/common"
	"tarediiran-industries.com/bikeshare-tools/internal/tripdata"
)

const (
	Greeting = "Hello! Let's explore some US bikeshare data!"

	CityPrompt  = "Please enter a city (chicago, new york city, washington): "
	MonthPrompt = "Please enter a month (all, january, february, ... , june): "
	DayPrompt   = "Please enter a day of week (all, monday, tuesday, ... sunday): "

	InvalidCity  = "Invalid input. Please enter a city from Chicago, New York City, and Washington."
	InvalidMonth = "Invalid input. Please enter a month (all, january, february, ... , june)."
	InvalidDay   = "Invalid input. Please enter a day of week (all, monday, tuesday, ... sunday)."
)

type lineResult struct {
	line string
	err  error
}

// Console reads answers line by line and writes prompts to out.
// Reads run on a goroutine so a cancelled context releases a blocked prompt;
// a read abandoned that way is handed to the next Ask.
type Console struct {
	in      *bufio.Reader
	out     io.Writer
	pending chan lineResult
}

func NewConsole(in io.Reader, out io.Writer) *Console {
	return &Console{in: bufio.NewReader(in), out: out}
}

func (console *Console) Out() io.Writer {
	return console.out
}

// Ask prints prompt and returns the next input line without surrounding space.
// A final line without a newline is still returned; io.EOF only once input is exhausted.
// Cancelling ctx unblocks Ask; a line typed after that is handed to the next call.
func (console *Console) Ask(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	fmt.Fprint(console.out, prompt)

	if console.pending == nil {
		pending := make(chan lineResult, 1)
		console.pending = pending
		go func() {
			line, err := console.in.ReadString('\n')
			pending <- lineResult{line: line, err: err}
		}()
	}

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case result := <-console.pending:
		console.pending = nil
		if result.err != nil && !(errors.Is(result.err, io.EOF) && result.line != "") {
			return "", result.err
		}
		return strings.TrimSpace(result.line), nil
	}
}

// AskUntilValid re-prompts after printing invalid until parse accepts the answer.
func (console *Console) AskUntilValid(ctx context.Context, prompt, invalid string, parse func(string) (string, error)) (string, error) {
	for {
		answer, err := console.Ask(ctx, prompt)
		if err != nil {
			return "", err
		}

		value, err := parse(answer)
		if err == nil {
			return value, nil
		}
		fmt.Fprintln(console.out, invalid)
	}
}

// CollectFilters asks for city, month and day in turn.
func CollectFilters(ctx context.Context, console *Console) (tripdata.Selection, error) {
	var selection tripdata.Selection
	var err error

	fmt.Fprintln(console.out, Greeting)

	if selection.City, err = console.AskUntilValid(ctx, CityPrompt, InvalidCity, tripdata.ParseCity); err != nil {
		return tripdata.Selection{}, err
	}
	if selection.Month, err = console.AskUntilValid(ctx, MonthPrompt, InvalidMonth, tripdata.ParseMonth); err != nil {
		return tripdata.Selection{}, err
	}
	if selection.Day, err = console.AskUntilValid(ctx, DayPrompt, InvalidDay, tripdata.ParseDay); err != nil {
		return tripdata.Selection{}, err
	}

	fmt.Fprintln(console.out, common.SectionRule)
	return selection, nil
}
