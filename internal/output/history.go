package output

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/inodb/vcfcheck/internal/duckdb"
)

// WriteHistory writes recorded runs as a tab-aligned table.
func WriteHistory(w io.Writer, runs []*duckdb.Run) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Checked\tFile\tStatus\tLines\tRule\tLine\tOptions")

	for _, run := range runs {
		res := run.Result
		status := "OK"
		var rule, line string
		if ve := res.ValidationError(); ve != nil {
			status = "FAIL"
			rule = string(ve.Rule)
			if ve.Line > 0 {
				line = fmt.Sprint(ve.Line)
			}
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\t%s\t%s\n",
			run.CheckedAt.Local().Format(time.DateTime),
			run.File.Path,
			status,
			res.Lines,
			rule,
			line,
			run.Options,
		)
	}

	return tw.Flush()
}
