package mask

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/grailbio/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grailbio/svcaller/sv/config"
	"github.com/grailbio/svcaller/sv/record"
)

func writeMaskFile(t *testing.T, dir, contents string) string {
	path := filepath.Join(dir, "mask.bed")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))
	return path
}

func TestLoadAndContains(t *testing.T) {
	tempDir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()

	path := writeMaskFile(t, tempDir, "chr1\t100\t200\nchr1\t500\t600\nchr2\t10\t20\n")
	set, err := Load(context.Background(), path)
	require.NoError(t, err)

	assert.True(t, set.Contains("chr1", 150))
	assert.True(t, set.Contains("chr1", 100))
	assert.True(t, set.Contains("chr1", 200))
	assert.False(t, set.Contains("chr1", 250))
	assert.True(t, set.Contains("chr2", 15))
	assert.False(t, set.Contains("chr3", 15))
}

func TestLoadMergesAdjacentIntervals(t *testing.T) {
	tempDir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()

	path := writeMaskFile(t, tempDir, "chr1\t100\t200\nchr1\t201\t300\n")
	set, err := Load(context.Background(), path)
	require.NoError(t, err)
	assert.True(t, set.Contains("chr1", 200))
	assert.True(t, set.Contains("chr1", 201))
	assert.True(t, set.Contains("chr1", 250))
}

func TestLoadSkipsMalformedLines(t *testing.T) {
	tempDir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()

	path := writeMaskFile(t, tempDir, "chr1\t100\n# comment\nchr1\tbad\tbad\nchr1\t300\t400\n")
	set, err := Load(context.Background(), path)
	require.NoError(t, err)
	assert.True(t, set.Contains("chr1", 350))
}

func TestEmptyNeverContains(t *testing.T) {
	set := Empty()
	assert.False(t, set.Contains("chr1", 100))
}

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.InwardMin, cfg.InwardMax = 0, 500
	cfg.OutwardMin, cfg.OutwardMax = 2000, 5000
	return &cfg
}

func TestFilterRejectsMapQAndRemembersMate(t *testing.T) {
	cfg := testConfig()
	cfg.MinMappingQuality = 30
	f := NewFilter(Empty(), cfg)

	low := record.Aligned{ReadID: "r1", C1: "chr1", C2: "chr1", P1: 10, P2: 20, O1: record.Forward, O2: record.Reverse, TLen: 9999, MapQ: 10}
	assert.False(t, f.Keep(low))

	// The mate half of the same read, arriving later with a passing mapq,
	// must still be dropped.
	otherHalf := record.Aligned{ReadID: "r1", C1: "chr1", C2: "chr1", P1: 20, P2: 10, O1: record.Reverse, O2: record.Forward, TLen: 9999, MapQ: 40}
	assert.False(t, f.Keep(otherHalf))
}

func TestFilterRejectsConcordantFR(t *testing.T) {
	cfg := testConfig()
	f := NewFilter(Empty(), cfg)
	concordant := record.Aligned{ReadID: "r2", C1: "chr1", C2: "chr1", P1: 10, P2: 200, O1: record.Forward, O2: record.Reverse, TLen: 190, MapQ: 60}
	assert.False(t, f.Keep(concordant))
}

func TestFilterKeepsDiscordantRF(t *testing.T) {
	cfg := testConfig()
	f := NewFilter(Empty(), cfg)
	discordant := record.Aligned{ReadID: "r3", C1: "chr1", C2: "chr1", P1: 100000, P2: 110000, O1: record.Reverse, O2: record.Forward, TLen: 10000, MapQ: 60}
	assert.True(t, f.Keep(discordant))
}
