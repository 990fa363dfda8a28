// Package call wires every stage of the structural-variation pipeline —
// decode, filter, (optional) fragment-size inference, streaming cluster,
// post-pass, classify — into a single entry point driven by a
// config.Config. cmd/svcall runs the pipeline only through Run; beyond it,
// cmd/svcall uses just sv/config and the sv/svp writers.
package call

import (
	"context"

	"github.com/grailbio/base/file"
	"github.com/grailbio/base/log"

	"github.com/grailbio/svcaller/sv/cluster"
	"github.com/grailbio/svcaller/sv/config"
	"github.com/grailbio/svcaller/sv/emit"
	"github.com/grailbio/svcaller/sv/errs"
	"github.com/grailbio/svcaller/sv/fragment"
	"github.com/grailbio/svcaller/sv/mask"
	"github.com/grailbio/svcaller/sv/postpass"
	"github.com/grailbio/svcaller/sv/record"
)

// Result is the outcome of a single run: the classified events ready for
// sv/svp serialization, plus the histogram (populated only in auto
// profile) for library-QC dumps.
type Result struct {
	Events     []emit.Event
	Histogram  fragment.Histogram
	Malformed  int
	NumRecords int
}

// Run executes the pipeline end to end against cfg. It is the single
// place auto-vs-lite profile selection happens: in lite profile the four
// insert-size bounds are taken from cfg directly and the BAM is read once;
// in auto profile the BAM is read twice, once to build the template-length
// histogram fragment.Infer needs, once for the real clustering pass.
func Run(ctx context.Context, cfg *config.Config) (*Result, error) {
	if cfg.BAMFile == "" {
		return nil, errs.E(errs.ConfigError, "bam_file is required")
	}
	if cfg.Lite {
		if cfg.InwardMax == 0 && cfg.OutwardMax == 0 {
			return nil, errs.E(errs.ConfigError, "lite profile requires inward/outward bounds")
		}
	}

	m := mask.Empty()
	if cfg.MaskBED != "" {
		loaded, err := mask.Load(ctx, cfg.MaskBED)
		if err != nil {
			return nil, err
		}
		m = loaded
	}

	var hist fragment.Histogram
	if !cfg.Lite {
		var err error
		hist, err = buildHistogram(ctx, cfg.BAMFile)
		if err != nil {
			return nil, err
		}
		bounds, err := fragment.Infer(hist, cfg)
		if err != nil {
			return nil, err
		}
		cfg.InwardMin, cfg.InwardMax = bounds.InwardMin, bounds.InwardMax
		cfg.OutwardMin, cfg.OutwardMax = bounds.OutwardMin, bounds.OutwardMax
		log.Debug.Printf("inferred windows: inward=[%d,%d] outward=[%d,%d]",
			cfg.InwardMin, cfg.InwardMax, cfg.OutwardMin, cfg.OutwardMax)
	}

	filter := mask.NewFilter(m, cfg)
	clusterer := cluster.New(cfg)

	f, err := file.Open(ctx, cfg.BAMFile)
	if err != nil {
		return nil, errs.E(errs.AlignerIOError, cfg.BAMFile, err)
	}
	defer f.Close(ctx) // nolint: errcheck

	dec, err := record.NewDecoder(f.Reader(ctx), 1)
	if err != nil {
		return nil, errs.E(errs.AlignerIOError, cfg.BAMFile, err)
	}
	defer dec.Close() // nolint: errcheck

	count, err := record.Drain(dec, func(a record.Aligned) {
		if !filter.Keep(a) {
			return
		}
		clusterer.Add(a)
	})
	if err != nil {
		return nil, errs.E(errs.AlignerIOError, cfg.BAMFile, err)
	}
	if count == 0 {
		return nil, errs.E(errs.AlignerIOError, cfg.BAMFile, "no records produced")
	}

	buckets := clusterer.Buckets()
	if cfg.Parallel {
		postpass.RunParallel(buckets, cfg)
	} else {
		postpass.Run(buckets, cfg)
	}

	events := emit.Classify(buckets, cfg)

	return &Result{
		Events:     events,
		Histogram:  hist,
		Malformed:  dec.Malformed,
		NumRecords: count,
	}, nil
}

// buildHistogram runs the decode+filter pass needed solely to accumulate
// the absolute template-length histogram fragment.Infer consumes; no
// records are retained between this pass and the real clustering pass.
func buildHistogram(ctx context.Context, path string) (fragment.Histogram, error) {
	f, err := file.Open(ctx, path)
	if err != nil {
		return nil, errs.E(errs.AlignerIOError, path, err)
	}
	defer f.Close(ctx) // nolint: errcheck

	dec, err := record.NewDecoder(f.Reader(ctx), 1)
	if err != nil {
		return nil, errs.E(errs.AlignerIOError, path, err)
	}
	defer dec.Close() // nolint: errcheck

	var tlens []int
	_, err = record.Drain(dec, func(a record.Aligned) {
		tlens = append(tlens, a.TLen)
	})
	if err != nil {
		return nil, errs.E(errs.AlignerIOError, path, err)
	}
	return fragment.NewHistogram(tlens), nil
}
