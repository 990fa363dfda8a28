package svp

import (
	"fmt"
	"io"
	"sort"

	"github.com/grailbio/svcaller/sv/config"
	"github.com/grailbio/svcaller/sv/fragment"
)

// WriteHistogram dumps h as bin*100 -> count pairs, one per line in
// ascending bin order, for library-QC inspection.
func WriteHistogram(w io.Writer, h fragment.Histogram) error {
	bins := make([]int, 0, len(h))
	for b := range h {
		bins = append(bins, b)
	}
	sort.Ints(bins)

	for _, b := range bins {
		line := fmt.Sprintf("%d\t%d", b*config.HistogramBinSize, h[b])
		if _, err := io.WriteString(w, line); err != nil {
			return err
		}
		if _, err := w.Write(newline); err != nil {
			return err
		}
	}
	return nil
}
