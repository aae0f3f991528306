package export

import (
	"encoding/csv"
	"io"

	"github.com/hyperifyio/vcftel/internal/extract"
)

func writeCSV(w io.Writer, res extract.Result) error {
	cw := csv.NewWriter(w)
	if res.Mode == extract.ModeNumbers {
		if err := cw.Write([]string{extract.FieldNumber}); err != nil {
			return err
		}
		for _, n := range res.Numbers {
			if err := cw.Write([]string{n}); err != nil {
				return err
			}
		}
		cw.Flush()
		return cw.Error()
	}

	cols := Columns(res.Records)
	if len(cols) > 0 {
		if err := cw.Write(cols); err != nil {
			return err
		}
	}
	row := make([]string, len(cols))
	for _, r := range res.Records {
		for i, c := range cols {
			row[i] = r[c]
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
