package postpass

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/grailbio/svcaller/sv/cluster"
	"github.com/grailbio/svcaller/sv/config"
	"github.com/grailbio/svcaller/sv/record"
)

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.InwardMin, cfg.InwardMax = 0, 500
	cfg.OutwardMin, cfg.OutwardMax = 2000, 5000
	cfg.MinClusterCount = 2
	return &cfg
}

func delCluster(p1min, p1max, p2min, p2max int) *cluster.Cluster {
	return &cluster.Cluster{
		C1: "chr1", C2: "chr1",
		O1: record.Reverse, O2: record.Forward,
		P1Min: p1min, P1Max: p1max,
		P2Min: p2min, P2Max: p2max,
		Count: 10, QC: true,
	}
}

func TestOverlapsDirectMatch(t *testing.T) {
	a := delCluster(100000, 100100, 110000, 110100)
	b := delCluster(100050, 100150, 110050, 110150)
	assert.True(t, overlaps(a, b, false))
}

func TestOverlapsNoOverlap(t *testing.T) {
	a := delCluster(100000, 100100, 110000, 110100)
	b := delCluster(200000, 200100, 210000, 210100)
	assert.False(t, overlaps(a, b, false))
}

func TestQCDedupKeepsLargerCount(t *testing.T) {
	cfg := testConfig()
	a := delCluster(100000, 100100, 110000, 110100)
	a.Count = 5
	b := delCluster(100050, 100150, 110050, 110150)
	b.Count = 10
	bucket := cluster.NewBucketForTest("chr1-chr1", false, []*cluster.Cluster{a, b})

	qcDedup(bucket, cfg)
	assert.False(t, a.QC)
	assert.True(t, b.QC)
}

func TestFusablePredicate(t *testing.T) {
	cfg := testConfig()
	outward := &cluster.Cluster{
		C1: "chr1", C2: "chr1",
		O1: record.Reverse, O2: record.Forward,
		P1Min: 999800, P1Max: 1000200,
		P2Min: 1049800, P2Max: 1050200,
		Count: 5, QC: true, SeqLength: 100,
	}
	inward := &cluster.Cluster{
		C1: "chr1", C2: "chr1",
		O1: record.Forward, O2: record.Reverse,
		P1Min: 999900, P1Max: 1000100,
		P2Min: 1049900, P2Max: 1050100,
		Count: 5, QC: true, SeqLength: 100,
	}
	assert.True(t, fusable(outward, inward, cfg))
}

func TestInvPairableOppositeOrientation(t *testing.T) {
	cfg := testConfig()
	a := &cluster.Cluster{
		O1: record.Forward, O2: record.Forward,
		P1Min: 999800, P1Max: 1000200,
		P2Min: 1049800, P2Max: 1050200,
	}
	b := &cluster.Cluster{
		O1: record.Reverse, O2: record.Reverse,
		P1Min: 999850, P1Max: 1000250,
		P2Min: 1049850, P2Max: 1050250,
	}
	assert.True(t, invPairable(a, b, cfg))
}

func TestInvPairableSameOrientationRejected(t *testing.T) {
	cfg := testConfig()
	a := &cluster.Cluster{O1: record.Forward, O2: record.Forward, P1Min: 0, P1Max: 10, P2Min: 0, P2Max: 10}
	b := &cluster.Cluster{O1: record.Forward, O2: record.Forward, P1Min: 0, P1Max: 10, P2Min: 0, P2Max: 10}
	assert.False(t, invPairable(a, b, cfg))
}

func TestRunFusesOutwardAndInwardPair(t *testing.T) {
	cfg := testConfig()
	outward := &cluster.Cluster{
		C1: "chr1", C2: "chr1",
		O1: record.Reverse, O2: record.Forward,
		P1Min: 999500, P1Max: 1000500,
		P2Min: 1049500, P2Max: 1050500,
		Count: 5, QC: true, SeqLength: 100,
		ReadIDs:   cluster.NewReadIDSetForTest(),
		TypeTally: map[cluster.SVType]int{cluster.DEL: 5},
	}
	inward := &cluster.Cluster{
		C1: "chr1", C2: "chr1",
		O1: record.Forward, O2: record.Reverse,
		P1Min: 999900, P1Max: 1000100,
		P2Min: 1049900, P2Max: 1050100,
		Count: 5, QC: true, SeqLength: 100,
		ReadIDs:   cluster.NewReadIDSetForTest(),
		TypeTally: map[cluster.SVType]int{cluster.DEL: 5},
	}
	bucket := cluster.NewBucketForTest("chr1-chr1", false, []*cluster.Cluster{outward, inward})

	Run([]*cluster.Bucket{bucket}, cfg)

	clusters := bucket.Clusters()
	var survivor *cluster.Cluster
	nils := 0
	for _, c := range clusters {
		if c == nil {
			nils++
			continue
		}
		survivor = c
	}
	assert.Equal(t, 1, nils)
	if assert.NotNil(t, survivor) {
		assert.True(t, survivor.Merge)
		assert.Equal(t, 10, survivor.Count)
		assert.Equal(t, 999500, survivor.P1Min)
		assert.Equal(t, 1000500, survivor.P1Max)
		assert.Equal(t, 1049500, survivor.P2Min)
		assert.Equal(t, 1050500, survivor.P2Max)
	}
}

func TestRunPairsInversions(t *testing.T) {
	cfg := testConfig()
	a := &cluster.Cluster{
		C1: "chr1", C2: "chr1",
		O1: record.Forward, O2: record.Forward,
		P1Min: 999800, P1Max: 1000200,
		P2Min: 1049800, P2Max: 1050200,
		Count: 5, QC: true,
		TypeTally: map[cluster.SVType]int{cluster.INV: 5},
	}
	b := &cluster.Cluster{
		C1: "chr1", C2: "chr1",
		O1: record.Reverse, O2: record.Reverse,
		P1Min: 999850, P1Max: 1000250,
		P2Min: 1049850, P2Max: 1050250,
		Count: 5, QC: true,
		TypeTally: map[cluster.SVType]int{cluster.INV: 5},
	}
	bucket := cluster.NewBucketForTest("chr1-chr1", true, []*cluster.Cluster{a, b})

	Run([]*cluster.Bucket{bucket}, cfg)

	assert.True(t, a.InvMerge)
	assert.True(t, b.InvMerge)
	assert.True(t, a.InvRef.Valid)
	assert.Equal(t, 1, a.InvRef.Index)
	assert.True(t, b.InvRef.Valid)
	assert.Equal(t, 0, b.InvRef.Index)
}

func TestRunDELClusterStaysLive(t *testing.T) {
	cfg := testConfig()
	cl := cluster.New(cfg)
	for i := 0; i < 10; i++ {
		cl.Add(record.Aligned{
			ReadID: string(rune('a' + i)),
			C1: "chr1", P1: 100000 + i, O1: record.Reverse,
			C2: "chr1", P2: 110000 + i, O2: record.Forward,
			TLen: 10000, SeqLength: 100,
		})
	}
	buckets := cl.Buckets()
	Run(buckets, cfg)

	c := buckets[0].Clusters()[0]
	assert.True(t, c.QC)
	assert.Equal(t, 10, c.Count)
	assert.Equal(t, cluster.DEL, c.DominantType())
}
