package svp

import (
	"fmt"
	"io"

	"github.com/grailbio/svcaller/sv/cluster"
	"github.com/grailbio/svcaller/sv/emit"
)

// BEDWriter dumps intra-chromosomal events (everything but CTX) as BED
// records.
type BEDWriter struct {
	w   io.Writer
	err error
}

// NewBEDWriter constructs a BED writer over w.
func NewBEDWriter(w io.Writer) *BEDWriter { return &BEDWriter{w: w} }

// Write emits ev as a BED line if it is intra-chromosomal; CTX events are
// silently skipped (they belong in BEDPE).
func (w *BEDWriter) Write(name string, ev emit.Event) error {
	if ev.Type == cluster.CTX {
		return w.err
	}
	w.writeln(fmt.Sprintf("%s\t%d\t%d\t%s\t%d\t.", ev.C1, ev.P1, ev.P2, name, ev.Size))
	return w.err
}

func (w *BEDWriter) writeln(line string) {
	if w.err != nil {
		return
	}
	_, w.err = io.WriteString(w.w, line)
	if w.err == nil {
		_, w.err = w.w.Write(newline)
	}
}

// BEDPEWriter dumps inter-chromosomal (CTX) events as BEDPE records.
type BEDPEWriter struct {
	w   io.Writer
	err error
}

// NewBEDPEWriter constructs a BEDPE writer over w.
func NewBEDPEWriter(w io.Writer) *BEDPEWriter { return &BEDPEWriter{w: w} }

// Write emits ev as a BEDPE line if it is a CTX event; anything else is
// silently skipped.
func (w *BEDPEWriter) Write(name string, ev emit.Event) error {
	if ev.Type != cluster.CTX {
		return w.err
	}
	w.writeln(fmt.Sprintf("%s\t%d\t%d\t%s\t%d\t%d\t%s\t.\t%c\t%c",
		ev.C1, ev.P1, ev.P1+1, ev.C2, ev.P2, ev.P2+1, name, ev.O1, ev.O2))
	return w.err
}

func (w *BEDPEWriter) writeln(line string) {
	if w.err != nil {
		return
	}
	_, w.err = io.WriteString(w.w, line)
	if w.err == nil {
		_, w.err = w.w.Write(newline)
	}
}
