package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/san-kum/sirsim/internal/epidemic"
)

// CSVHeader is the first record written by WriteCSV.
var CSVHeader = []string{"time", "S", "I", "R"}

// WriteCSV writes one record per sample of c.
func WriteCSV(w io.Writer, c *epidemic.Compartments) error {
	if c == nil || c.Len() == 0 {
		return fmt.Errorf("no data to export")
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return err
	}
	for k, t := range c.Times {
		s, i, r := c.At(k)
		row := []string{
			formatFloat(t),
			formatFloat(s),
			formatFloat(i),
			formatFloat(r),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}
