// Package fragment infers the inward and outward insert-size windows of a
// mate-pair library from a histogram of absolute template lengths. It is
// skipped entirely in the "lite" profile, where the caller supplies the
// four bounds directly.
package fragment

import (
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/grailbio/svcaller/sv/config"
	"github.com/grailbio/svcaller/sv/errs"
)

// Histogram maps bin (floor(|tlen|/config.HistogramBinSize)) to the number
// of template lengths observed in that bin.
type Histogram map[int]int

// NewHistogram builds a Histogram from a stream of absolute template
// lengths.
func NewHistogram(tlens []int) Histogram {
	h := make(Histogram)
	for _, t := range tlens {
		h[t/config.HistogramBinSize]++
	}
	return h
}

// Bounds is the result of fragment-size inference: base-pair windows for
// the inward (FR) and outward (RF) insert-size populations.
type Bounds struct {
	InwardMin, InwardMax   int
	OutwardMin, OutwardMax int
}

// Infer discovers the two disjoint insert-size populations in h via a
// k-means(k=3) noise-floor estimate followed by a sigma-threshold peak walk,
// exactly as described by the specification. It mutates a working copy of
// h, never the caller's histogram.
func Infer(h Histogram, cfg *config.Config) (Bounds, error) {
	work := make(Histogram, len(h))
	for k, v := range h {
		work[k] = v
	}

	values := distinctValues(work)
	if len(values) == 0 {
		return Bounds{}, errs.E(errs.PoorLibraryError, "empty histogram")
	}

	noise := noiseCluster(values)

	var cutoff float64
	sigma := 0
	var peak1 int
	for {
		mean := stat.Mean(noise, nil)
		sd := stat.StdDev(noise, nil)
		cutoff = mean + float64(sigma)*sd

		peak1 = argmaxBin(work)
		if float64(work[peak1]) >= cutoff {
			break
		}
		sigma++
		if sigma > config.MaxSigma {
			return Bounds{}, errs.E(errs.PoorLibraryError,
				"background-noise threshold not satisfied at sigma<=3")
		}
	}

	first := widenAroundPeak(work, peak1, cutoff)
	for bin := first.min; bin <= first.max; bin++ {
		delete(work, bin)
	}

	if len(work) == 0 {
		return Bounds{}, errs.E(errs.PoorLibraryError, "no remaining signal for second peak")
	}
	peak2 := argmaxBin(work)
	second := widenAroundPeak(work, peak2, cutoff)

	if overlaps(first, second) {
		return Bounds{}, errs.E(errs.NonDeconvolvableLibraryError,
			"inferred inward and outward intervals overlap")
	}

	// By convention the first interval found is outward, the second inward;
	// swap if that leaves inward larger than outward (the smaller-mean
	// interval is always inward).
	outward, inward := first, second
	if inward.max > outward.max {
		inward, outward = outward, inward
	}

	b := Bounds{
		InwardMin:  expandMin(inward.min) * config.HistogramBinSize,
		InwardMax:  expandMax(inward.max) * config.HistogramBinSize,
		OutwardMin: expandMin(outward.min) * config.HistogramBinSize,
		OutwardMax: expandMax(outward.max) * config.HistogramBinSize,
	}
	return b, nil
}

// expandMin and expandMax widen a bin interval by one bin on each side; the
// lower bound never goes below bin 0.
func expandMin(bin int) int {
	if bin > 0 {
		return bin - 1
	}
	return 0
}

func expandMax(bin int) int { return bin + 1 }

type binRange struct{ min, max int }

func overlaps(a, b binRange) bool {
	return a.min <= b.max && b.min <= a.max
}

func argmaxBin(h Histogram) int {
	best := 0
	bestCount := -1
	// Deterministic order: iterate bins in ascending order so ties resolve
	// to the lowest bin, matching a stable argmax over a sorted domain.
	bins := make([]int, 0, len(h))
	for b := range h {
		bins = append(bins, b)
	}
	sort.Ints(bins)
	for _, b := range bins {
		if h[b] > bestCount {
			bestCount = h[b]
			best = b
		}
	}
	return best
}

// widenAroundPeak walks outward from peak in both directions while bins
// remain at or above cutoff, returning the widest such contiguous interval.
func widenAroundPeak(h Histogram, peak int, cutoff float64) binRange {
	lo, hi := peak, peak
	for float64(h[lo-1]) >= cutoff {
		if _, ok := h[lo-1]; !ok {
			break
		}
		lo--
	}
	for float64(h[hi+1]) >= cutoff {
		if _, ok := h[hi+1]; !ok {
			break
		}
		hi++
	}
	return binRange{min: lo, max: hi}
}

func distinctValues(h Histogram) []float64 {
	set := map[int]struct{}{}
	for _, v := range h {
		set[v] = struct{}{}
	}
	out := make([]float64, 0, len(set))
	for v := range set {
		out = append(out, float64(v))
	}
	sort.Float64s(out)
	return out
}

// noiseCluster runs k-means(k=config.KMeansK) over values and returns the
// members of the cluster with the smallest centroid — the background-noise
// floor.
func noiseCluster(values []float64) []float64 {
	k := config.KMeansK
	if len(values) < k {
		return values
	}

	centroids := make([]float64, k)
	lo, hi := values[0], values[len(values)-1]
	for i := range centroids {
		centroids[i] = lo + (hi-lo)*float64(i)/float64(k-1)
	}

	assignments := make([]int, len(values))
	for {
		for i, v := range values {
			best, bestDist := 0, -1.0
			for c, centroid := range centroids {
				d := (v - centroid) * (v - centroid)
				if bestDist < 0 || d < bestDist {
					bestDist = d
					best = c
				}
			}
			assignments[i] = best
		}

		newCentroids := make([]float64, k)
		counts := make([]int, k)
		for i, v := range values {
			c := assignments[i]
			newCentroids[c] += v
			counts[c]++
		}
		maxShift := 0.0
		for c := range newCentroids {
			if counts[c] == 0 {
				newCentroids[c] = centroids[c]
				continue
			}
			newCentroids[c] /= float64(counts[c])
			shift := newCentroids[c] - centroids[c]
			if shift < 0 {
				shift = -shift
			}
			if shift > maxShift {
				maxShift = shift
			}
		}
		centroids = newCentroids
		if maxShift < config.KMeansDelta {
			break
		}
	}

	noiseIdx := floats.MinIdx(centroids)
	var noise []float64
	for i, v := range values {
		if assignments[i] == noiseIdx {
			noise = append(noise, v)
		}
	}
	return noise
}
