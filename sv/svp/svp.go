// Package svp serializes classified emit.Event records to the output
// surfaces the specification delegates to external collaborators: SVP,
// BED/BEDPE, link/tile visualization files and a histogram dump. None of
// these files contain calling logic; they are pure formatters, in the
// shape of encoding/fastq's scanner/writer split (one file per format
// concern).
package svp

import (
	"fmt"
	"io"

	"github.com/grailbio/svcaller/sv/emit"
)

var newline = []byte{'\n'}

// tagDictionary is the fixed annotation-tag set every SVP header declares.
var tagDictionary = []string{"TY", "O1", "O2", "NR", "MG", "CTX"}

// Writer emits one SVP line per event (two for CTX), accumulating the
// first write error and refusing subsequent writes once set.
type Writer struct {
	w       io.Writer
	program string
	source  string
	prefix  string
	err     error
}

// NewWriter constructs an SVP writer. program and source populate the
// header's provenance fields; prefix is the sv_name annotation prefix
// (default "SV").
func NewWriter(w io.Writer, program, source, prefix string) *Writer {
	return &Writer{w: w, program: program, source: source, prefix: prefix}
}

// WriteHeader writes the SVP header: program name, source file, and the
// {TY,O1,O2,NR,MG,CTX} tag dictionary.
func (w *Writer) WriteHeader() error {
	w.writeln(fmt.Sprintf("##program=%s", w.program))
	w.writeln(fmt.Sprintf("##source=%s", w.source))
	for _, t := range tagDictionary {
		w.writeln(fmt.Sprintf("##tag=%s", t))
	}
	w.writeln(fmt.Sprintf("#chrom1\tpos1\tchrom2\tpos2\tsize\tname\ttag"))
	return w.err
}

// Write serializes a single event. CTX events are written by the caller
// twice, once per mate half of the pair emit.Classify already produced.
func (w *Writer) Write(name string, n int, ev emit.Event) error {
	tag := fmt.Sprintf("TY=%s;O1=%c;O2=%c;NR=%d;MG=%d;CTX=%d",
		ev.Type, byte(ev.O1), byte(ev.O2), ev.AnnotationNR, boolInt(ev.Merge), boolInt(ev.MateOf != nil))
	line := fmt.Sprintf("%s\t%d\t%s\t%d\t%d\t%s_%s_%d",
		ev.C1, ev.P1, ev.C2, ev.P2, ev.Size, w.prefix, name, n)
	w.writeln(line + "\t" + tag)
	return w.err
}

func (w *Writer) writeln(line string) {
	if w.err != nil {
		return
	}
	_, w.err = io.WriteString(w.w, line)
	if w.err == nil {
		_, w.err = w.w.Write(newline)
	}
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
