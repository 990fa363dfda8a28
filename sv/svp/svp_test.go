package svp

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grailbio/svcaller/sv/cluster"
	"github.com/grailbio/svcaller/sv/emit"
	"github.com/grailbio/svcaller/sv/fragment"
	"github.com/grailbio/svcaller/sv/record"
)

func sampleEvent() emit.Event {
	return emit.Event{
		Type: cluster.DEL,
		C1: "chr1", C2: "chr1",
		P1: 100100, P2: 110000,
		O1: record.Forward, O2: record.Reverse,
		Size: 5000, Count: 10,
	}
}

func TestWriterHeaderAndLine(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, "svcall", "test.bam", "SV")
	require.NoError(t, w.WriteHeader())
	require.NoError(t, w.Write("del", 0, sampleEvent()))

	out := buf.String()
	assert.Contains(t, out, "##program=svcall")
	assert.Contains(t, out, "TY=DEL")
	assert.Contains(t, out, "chr1\t100100\tchr1\t110000\t5000")
}

func TestWriterStickyError(t *testing.T) {
	w := NewWriter(failingWriter{}, "p", "s", "SV")
	err := w.WriteHeader()
	assert.Error(t, err)
	// Once set, further writes are no-ops returning the same error.
	err2 := w.Write("x", 0, sampleEvent())
	assert.Equal(t, err, err2)
}

func TestBEDSkipsCTX(t *testing.T) {
	var buf bytes.Buffer
	w := NewBEDWriter(&buf)
	ctx := sampleEvent()
	ctx.Type = cluster.CTX
	require.NoError(t, w.Write("x", ctx))
	assert.Empty(t, buf.String())

	require.NoError(t, w.Write("y", sampleEvent()))
	assert.True(t, strings.HasPrefix(buf.String(), "chr1\t100100\t110000"))
}

func TestBEDPEOnlyCTX(t *testing.T) {
	var buf bytes.Buffer
	w := NewBEDPEWriter(&buf)
	require.NoError(t, w.Write("x", sampleEvent()))
	assert.Empty(t, buf.String())

	ctx := sampleEvent()
	ctx.Type = cluster.CTX
	require.NoError(t, w.Write("y", ctx))
	assert.NotEmpty(t, buf.String())
}

func TestWriteHistogram(t *testing.T) {
	var buf bytes.Buffer
	h := fragment.Histogram{2: 5, 0: 1}
	require.NoError(t, WriteHistogram(&buf, h))
	assert.Equal(t, "0\t1\n200\t5\n", buf.String())
}

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) { return 0, assertErr }

var assertErr = errWriteFailed{}

type errWriteFailed struct{}

func (errWriteFailed) Error() string { return "write failed" }
