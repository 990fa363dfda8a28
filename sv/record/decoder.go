package record

import (
	"io"

	"github.com/grailbio/base/log"
	"github.com/grailbio/hts/bam"
)

// Decoder streams Aligned tuples out of a BAM file, in arrival order, with
// no rewind. It is the concrete stand-in for the "external aligner
// collaborator" described by the specification: callers that already have
// their own record source can skip this type entirely and feed
// FromRecord/Admissible results straight into package mask and cluster.
type Decoder struct {
	br *bam.Reader

	// Malformed counts records skipped because this package can't normalize
	// them (their reference or mate-reference is nil). A record the BAM
	// reader itself fails to decode is not counted here: Next returns that
	// error and the stream ends. The caller surfaces this count as an
	// advisory log line.
	Malformed int
}

// NewDecoder wraps r as a BAM stream. shards controls internal BGZF block
// decompression parallelism and has no bearing on correctness.
func NewDecoder(r io.Reader, shards int) (*Decoder, error) {
	br, err := bam.NewReader(r, shards)
	if err != nil {
		return nil, err
	}
	return &Decoder{br: br}, nil
}

// Close releases the underlying BAM reader.
func (d *Decoder) Close() error { return d.br.Close() }

// Next returns the next admissible Aligned record, skipping records that
// fail the flag filter or lack a reference or mate-reference. Any error
// from the underlying BAM reader, including a record it could not parse,
// is returned as is; io.EOF is returned once the stream is exhausted.
func (d *Decoder) Next() (Aligned, error) {
	for {
		r, err := d.br.Read()
		if err != nil {
			return Aligned{}, err
		}
		if !Admissible(r) {
			continue
		}
		a, ok := FromRecord(r)
		if !ok {
			d.Malformed++
			log.Error.Printf("skipping malformed record %q: missing reference", r.Name)
			continue
		}
		return a, nil
	}
}

// Drain reads every admissible record from d, invoking fn for each. It
// returns AlignerIOError-flavored behavior to the caller by surfacing
// whether any record at all was produced, via the returned count.
func Drain(d *Decoder, fn func(Aligned)) (count int, err error) {
	for {
		a, err := d.Next()
		if err == io.EOF {
			return count, nil
		}
		if err != nil {
			return count, err
		}
		fn(a)
		count++
	}
}
