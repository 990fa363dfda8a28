// svcall calls structural-variant breakpoints from discordant mate-pair
// alignments: a BAM stream in, SVP/BED/BEDPE/link-tile files out.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/vcontext"

	"github.com/grailbio/svcaller/sv/call"
	"github.com/grailbio/svcaller/sv/config"
	"github.com/grailbio/svcaller/sv/svp"
)

var (
	bamFile    = flag.String("bam", "", "Input BAM path (required)")
	lite       = flag.Bool("lite", false, "Lite profile: take -inward-min/-inward-max/-outward-min/-outward-max directly instead of inferring them")
	inwardMin  = flag.Int("inward-min", 0, "Lite profile: inward (FR) insert-size lower bound")
	inwardMax  = flag.Int("inward-max", 0, "Lite profile: inward (FR) insert-size upper bound")
	outwardMin = flag.Int("outward-min", 0, "Lite profile: outward (RF) insert-size lower bound")
	outwardMax = flag.Int("outward-max", 0, "Lite profile: outward (RF) insert-size upper bound")
	maskBED    = flag.String("mask-bed", "", "Optional chrom/start/end exclusion mask")
	minCount   = flag.Int("min-cluster-count", 2, "Minimum fused pairs for a cluster to be considered live")
	minMapQ    = flag.Int("min-mapping-quality", 0, "Reject records below this mapping quality")
	uniqueMap  = flag.Bool("unique-mapping", false, "Require the XT:A:U optional tag")
	svName     = flag.String("sv-name", "SV", "Annotation name prefix")
	qcFilter   = flag.Bool("qc-filter", false, "Enable QC de-duplication of overlapping clusters")
	parallel   = flag.Bool("parallel", false, "Sweep post-pass buckets on a worker pool instead of sequentially")
	outPrefix  = flag.String("out", "svcall", "Output path prefix for .svp/.bed/.bedpe/.link/.tile/.hist files")
	errFile    = flag.String("err", "", "Redirect diagnostic logging to this file instead of stderr")
)

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s -bam path.bam [options]\n", os.Args[0])
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage
	shutdown := grail.Init()
	defer shutdown()

	if *errFile != "" {
		f, err := os.Create(*errFile)
		if err != nil {
			log.Fatalf("could not open -err file %s: %v", *errFile, err)
		}
		log.SetOutput(f)
	}

	cfg := config.Default()
	cfg.BAMFile = *bamFile
	cfg.Lite = *lite
	cfg.InwardMin, cfg.InwardMax = *inwardMin, *inwardMax
	cfg.OutwardMin, cfg.OutwardMax = *outwardMin, *outwardMax
	cfg.MaskBED = *maskBED
	cfg.MinClusterCount = *minCount
	cfg.MinMappingQuality = *minMapQ
	cfg.UniqueMapping = *uniqueMap
	cfg.SVName = *svName
	cfg.QCFilter = *qcFilter
	cfg.Parallel = *parallel

	ctx := vcontext.Background()
	result, err := call.Run(ctx, &cfg)
	if err != nil {
		// Every error call.Run can return is one of the fatal kinds in
		// sv/errs (MalformedRecord never escapes Run; it is only counted).
		log.Fatalf("%v", err)
	}

	if err := writeOutputs(*outPrefix, &cfg, result); err != nil {
		log.Fatalf("writing outputs: %v", err)
	}
	log.Debug.Printf("wrote %d events from %d records (%d malformed skipped)",
		len(result.Events), result.NumRecords, result.Malformed)
}

func writeOutputs(prefix string, cfg *config.Config, result *call.Result) error {
	svpFile, err := os.Create(prefix + ".svp")
	if err != nil {
		return err
	}
	defer svpFile.Close() // nolint: errcheck

	bedFile, err := os.Create(prefix + ".bed")
	if err != nil {
		return err
	}
	defer bedFile.Close() // nolint: errcheck

	bedpeFile, err := os.Create(prefix + ".bedpe")
	if err != nil {
		return err
	}
	defer bedpeFile.Close() // nolint: errcheck

	linkFile, err := os.Create(prefix + ".link")
	if err != nil {
		return err
	}
	defer linkFile.Close() // nolint: errcheck

	tileFile, err := os.Create(prefix + ".tile")
	if err != nil {
		return err
	}
	defer tileFile.Close() // nolint: errcheck

	sw := svp.NewWriter(svpFile, "svcall", cfg.BAMFile, cfg.SVName)
	if err := sw.WriteHeader(); err != nil {
		return err
	}
	bw := svp.NewBEDWriter(bedFile)
	pw := svp.NewBEDPEWriter(bedpeFile)
	tw := svp.NewTileWriter(linkFile, tileFile)

	for i, ev := range result.Events {
		if err := sw.Write(cfg.SVName, i, ev); err != nil {
			return err
		}
		name := fmt.Sprintf("%s_%d", cfg.SVName, i)
		if err := bw.Write(name, ev); err != nil {
			return err
		}
		if err := pw.Write(name, ev); err != nil {
			return err
		}
		if err := tw.Write(name, ev); err != nil {
			return err
		}
	}

	if result.Histogram != nil {
		histFile, err := os.Create(prefix + ".hist")
		if err != nil {
			return err
		}
		defer histFile.Close() // nolint: errcheck
		if err := svp.WriteHistogram(histFile, result.Histogram); err != nil {
			return err
		}
	}
	return nil
}
