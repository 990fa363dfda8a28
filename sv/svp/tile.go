package svp

import (
	"fmt"
	"io"

	"github.com/grailbio/svcaller/sv/emit"
)

// TileWriter emits the paired link/tile visualization files the
// specification's output surface calls for: one "link" line connecting the
// two breakpoint anchors, and one "tile" line per anchor giving its own
// coordinate. Two writers, not one, because downstream visualization
// tooling consumes them as separate tracks.
type TileWriter struct {
	link, tile io.Writer
	err        error
}

// NewTileWriter constructs a writer pair over the link and tile streams.
func NewTileWriter(link, tile io.Writer) *TileWriter {
	return &TileWriter{link: link, tile: tile}
}

// Write emits ev's link and tile lines.
func (w *TileWriter) Write(name string, ev emit.Event) error {
	w.writeln(w.link, fmt.Sprintf("%s\t%d\t%s\t%d\t%s\t%d", ev.C1, ev.P1, ev.C2, ev.P2, name, ev.Size))
	w.writeln(w.tile, fmt.Sprintf("%s\t%d\t%s_1\t%d", ev.C1, ev.P1, name, ev.Count))
	w.writeln(w.tile, fmt.Sprintf("%s\t%d\t%s_2\t%d", ev.C2, ev.P2, name, ev.Count))
	return w.err
}

func (w *TileWriter) writeln(dst io.Writer, line string) {
	if w.err != nil {
		return
	}
	_, w.err = io.WriteString(dst, line)
	if w.err == nil {
		_, w.err = dst.Write(newline)
	}
}
