package report

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"

	"stepview/internal/aws"
)

// TableReporter renders result rows as a plain text table, for piping or
// non-interactive use.
type TableReporter struct {
	Writer io.Writer
}

// Render writes the table. State machine names are wrapped in OSC 8
// hyperlinks pointing at the AWS console.
func (r TableReporter) Render(rows []aws.Row) error {
	table := tablewriter.NewWriter(r.Writer)
	table.SetHeader(aws.Columns())
	table.SetAutoWrapText(false)

	for _, row := range rows {
		values := row.Values()
		if row.Link != "" {
			values[0] = Hyperlink(row.Link, row.Name)
		}
		table.Append(values)
	}

	table.Render()
	return nil
}

// Hyperlink wraps text in an OSC 8 terminal hyperlink escape sequence.
func Hyperlink(url, text string) string {
	return fmt.Sprintf("\x1b]8;;%s\x1b\\%s\x1b]8;;\x1b\\", url, text)
}
