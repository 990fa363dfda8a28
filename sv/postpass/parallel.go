package postpass

import (
	"runtime"
	"sync"

	"github.com/grailbio/base/log"

	"github.com/grailbio/svcaller/sv/cluster"
	"github.com/grailbio/svcaller/sv/config"
)

// RunParallel is the throughput variant of Run: it sweeps every bucket on a
// fixed worker pool instead of sequentially. Buckets never interact during
// any of the three sweeps, so this changes nothing about the result, only
// the wall-clock cost of computing it.
func RunParallel(buckets []*cluster.Bucket, cfg *config.Config) {
	if !cfg.Parallel || len(buckets) <= 1 {
		Run(buckets, cfg)
		return
	}

	workers := runtime.GOMAXPROCS(0)
	if workers > len(buckets) {
		workers = len(buckets)
	}
	log.Debug.Printf("postpass: sweeping %d buckets across %d workers", len(buckets), workers)

	bucketCh := make(chan *cluster.Bucket, len(buckets))
	for _, b := range buckets {
		bucketCh <- b
	}
	close(bucketCh)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for b := range bucketCh {
				if cfg.QCFilter {
					qcDedup(b, cfg)
				}
				fuse(b, cfg)
				if b.Same() {
					pairInversions(b, cfg)
				}
			}
		}()
	}
	wg.Wait()
}
