// Package mask loads a genomic exclusion mask (a set of chrom/start/end
// intervals) and answers point-containment queries against it. Intervals
// are merged per chromosome, then indexed in a left-leaning red-black
// tree keyed by start position — the same github.com/biogo/store/llrb
// structure this stack's own shard index uses, queried here with Floor to
// find the one interval that could possibly contain a given point without
// re-scanning the interval list per record.
package mask

import (
	"bufio"
	"context"
	"sort"
	"strconv"
	"strings"

	"github.com/biogo/store/llrb"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/log"
	"github.com/klauspost/compress/gzip"

	"github.com/grailbio/svcaller/sv/errs"
)

type interval struct {
	start, end int // inclusive on both ends, as read from the mask file
}

// Compare orders intervals by start, satisfying llrb.Comparable.
func (iv interval) Compare(c2 llrb.Comparable) int {
	return iv.start - c2.(interval).start
}

// Set is an immutable, per-chromosome union of masked intervals.
type Set struct {
	byChrom map[string]*llrb.Tree
}

// Empty returns a Set with no masked intervals; Contains always reports
// false against it.
func Empty() *Set { return &Set{byChrom: map[string]*llrb.Tree{}} }

// Load reads a tab-separated chrom/start/end mask file, one interval per
// line, inclusive bounds, transparently gzip-decompressing when path ends
// in ".gz". Local paths and any scheme grailbio/base/file registers
// (e.g. blob storage) both work, since reads go through file.Open rather
// than os.Open directly.
func Load(ctx context.Context, path string) (*Set, error) {
	f, err := file.Open(ctx, path)
	if err != nil {
		return nil, errs.E(errs.MaskLoadError, path, err)
	}
	defer f.Close(ctx) // nolint: errcheck

	var r = f.Reader(ctx)
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(r)
		if err != nil {
			return nil, errs.E(errs.MaskLoadError, path, err)
		}
		defer gz.Close()
		r = gz
	}

	raw := map[string][]interval{}
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 3 {
			log.Error.Printf("%s:%d: malformed mask line, skipping: %q", path, lineNo, line)
			continue
		}
		start, err1 := strconv.Atoi(fields[1])
		end, err2 := strconv.Atoi(fields[2])
		if err1 != nil || err2 != nil || end < start {
			log.Error.Printf("%s:%d: malformed mask coordinates, skipping: %q", path, lineNo, line)
			continue
		}
		raw[fields[0]] = append(raw[fields[0]], interval{start: start, end: end})
	}
	if err := scanner.Err(); err != nil {
		return nil, errs.E(errs.MaskLoadError, path, err)
	}

	s := &Set{byChrom: make(map[string]*llrb.Tree, len(raw))}
	for chrom, ivs := range raw {
		sort.Slice(ivs, func(i, j int) bool { return ivs[i].start < ivs[j].start })
		tree := &llrb.Tree{}
		for _, iv := range merge(ivs) {
			tree.Insert(iv)
		}
		s.byChrom[chrom] = tree
	}
	return s, nil
}

func merge(ivs []interval) []interval {
	if len(ivs) == 0 {
		return nil
	}
	out := make([]interval, 0, len(ivs))
	cur := ivs[0]
	for _, iv := range ivs[1:] {
		if iv.start <= cur.end+1 {
			if iv.end > cur.end {
				cur.end = iv.end
			}
			continue
		}
		out = append(out, cur)
		cur = iv
	}
	return append(out, cur)
}

// Contains reports whether pos (1-based, inclusive) lies inside any masked
// interval on chrom. The only interval that can possibly contain pos is
// the one with the largest start <= pos, found by Floor in O(log n).
func (s *Set) Contains(chrom string, pos int) bool {
	tree, ok := s.byChrom[chrom]
	if !ok {
		return false
	}
	c := tree.Floor(interval{start: pos})
	if c == nil {
		return false
	}
	iv := c.(interval)
	return pos <= iv.end
}
