package explorer

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"tarediiran-industries.com/bikeshare-tools/internal/tripdata"
)

const (
	PageSize = 5

	FirstPagePrompt = "Do you want to check the first 5 lines of the dataset?(Yes, No):"
	NextPagePrompt  = "Do you want to check the next 5 lines of the dataset?(Yes, No):"
	NoMoreData      = "There is no more data to display."
)

func wantsMore(answer string) bool {
	answer = strings.ToLower(answer)
	return answer == "yes" || answer == "y"
}

// Preview pages through the table's raw columns while the user answers yes or y.
// A yes after the last page prints NoMoreData and ends the preview.
func Preview(ctx context.Context, console *Console, table *tripdata.Table) error {
	answer, err := console.Ask(ctx, FirstPagePrompt)
	if err != nil {
		return err
	}

	for offset := 0; wantsMore(answer); offset += PageSize {
		if offset >= table.Len() {
			fmt.Fprintln(console.Out(), NoMoreData)
			return nil
		}

		if err := PrintRows(console.Out(), table, offset, min(offset+PageSize, table.Len())); err != nil {
			return err
		}

		if answer, err = console.Ask(ctx, NextPagePrompt); err != nil {
			return err
		}
	}
	return nil
}

// PrintRows writes trips [from, to) as an aligned table keyed by source row position.
func PrintRows(out io.Writer, table *tripdata.Table, from, to int) error {
	writer := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	header := append([]string{""}, table.Columns...)
	fmt.Fprintln(writer, strings.Join(header, "\t"))

	for _, trip := range table.Trips[from:to] {
		cells := append([]string{strconv.Itoa(trip.Position)}, trip.Record...)
		fmt.Fprintln(writer, strings.Join(cells, "\t"))
	}

	return writer.Flush()
}
