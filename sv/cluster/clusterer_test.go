package cluster

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/grailbio/svcaller/sv/config"
	"github.com/grailbio/svcaller/sv/record"
)

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.InwardMin, cfg.InwardMax = 0, 500
	cfg.OutwardMin, cfg.OutwardMax = 2000, 5000
	return &cfg
}

func rfPair(readID string, p1, p2, tlen int) record.Aligned {
	return record.Aligned{
		ReadID: readID,
		C1: "chr1", P1: p1, O1: record.Reverse,
		C2: "chr1", P2: p2, O2: record.Forward,
		TLen: tlen, SeqLength: 100,
	}
}

func TestClustererMergesOverlappingDEL(t *testing.T) {
	cl := New(testConfig())
	for i := 0; i < 10; i++ {
		cl.Add(rfPair(idFor(i), 100000+i, 110000+i, 10000))
	}
	buckets := cl.Buckets()
	assert.Len(t, buckets, 1)
	clusters := buckets[0].Clusters()
	assert.Len(t, clusters, 1)
	assert.Equal(t, 10, clusters[0].Count)
	assert.Equal(t, DEL, clusters[0].DominantType())
}

func TestClustererIdempotentOnSameReadID(t *testing.T) {
	cl := New(testConfig())
	a := rfPair("r1", 100000, 110000, 10000)
	cl.Add(a)
	cl.Add(a)
	clusters := cl.Buckets()[0].Clusters()
	assert.Equal(t, 1, clusters[0].Count)
}

func TestClustererOpensNewClusterBeyondOutwardMax(t *testing.T) {
	cl := New(testConfig())
	cl.Add(rfPair("r1", 100000, 110000, 10000))
	// Far enough away that the post-merge range would exceed outward_max.
	cl.Add(rfPair("r2", 200000, 220000, 20000))
	clusters := cl.Buckets()[0].Clusters()
	assert.Len(t, clusters, 2)
}

func TestVoteTypeBoundaries(t *testing.T) {
	cfg := testConfig()
	unkLow := record.Aligned{C1: "chr1", C2: "chr1", O1: record.Reverse, O2: record.Forward, TLen: cfg.OutwardMin}
	unkHigh := record.Aligned{C1: "chr1", C2: "chr1", O1: record.Reverse, O2: record.Forward, TLen: cfg.OutwardMax}
	tUnkLow, _ := voteType(unkLow, cfg)
	tUnkHigh, _ := voteType(unkHigh, cfg)
	assert.Equal(t, UNK, tUnkLow)
	assert.Equal(t, UNK, tUnkHigh)

	ins := record.Aligned{C1: "chr1", C2: "chr1", O1: record.Reverse, O2: record.Forward, TLen: cfg.OutwardMin - 1}
	tIns, indel := voteType(ins, cfg)
	assert.Equal(t, INS, tIns)
	assert.Equal(t, 1, indel)
}

func idFor(i int) string {
	return string(rune('a'+i)) + "read"
}
