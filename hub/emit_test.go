package hub_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/eboileau/trackhub-utils/hub"
	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/testutil"
	"github.com/grailbio/testutil/assert"
	"github.com/grailbio/testutil/expect"
)

var testDescriptor = hub.Descriptor{
	Hub:        "myhub",
	ShortLabel: "My hub",
	LongLabel:  "My hub, long version",
	Genome:     "hg38",
	Email:      "user@example.org",
}

// emitFixture builds a two-format registry with one superTrack, backed by
// real files under dir.
func emitFixture(t *testing.T, dir string) (*hub.Registry, *hub.Forest) {
	t.Helper()
	for _, name := range []string{"b1.bb", "b2.bb", "w1.bw"} {
		assert.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(name), 0666))
	}
	reg, err := hub.Build([]hub.FormatFiles{
		{
			Format: hub.BigBed,
			Files: []hub.FileEntry{
				{Name: "b1", Path: filepath.Join(dir, "b1.bb")},
				{Name: "b2", Path: filepath.Join(dir, "b2.bb")},
			},
			Global: settings("trackType", "bigBed 12 +", "visibility", "dense"),
			PerFile: map[string]*hub.Settings{
				"b1": settings("shortLabel", "B1"),
			},
		},
		{
			Format: hub.BigWig,
			Files:  []hub.FileEntry{{Name: "w1", Path: filepath.Join(dir, "w1.bw")}},
			Global: settings("trackType", "bigWig", "color", "255,0,0"),
		},
	})
	assert.NoError(t, err)
	forest, err := hub.Resolve(reg, []hub.Group{
		{Name: "super1", Members: []string{"w1", "b1"}},
	})
	assert.NoError(t, err)
	return reg, forest
}

func readStaged(t *testing.T, dir, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(name)))
	assert.NoError(t, err)
	return string(data)
}

func TestEmit(t *testing.T) {
	tempDir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	reg, forest := emitFixture(t, tempDir)
	ctx := vcontext.Background()

	staging := filepath.Join(tempDir, "hub")
	assert.NoError(t, hub.Emit(ctx, testDescriptor, reg, forest, staging, hub.EmitOpts{}))

	expect.EQ(t, readStaged(t, staging, "hub.txt"),
		"hub myhub\n"+
			"shortLabel My hub\n"+
			"longLabel My hub, long version\n"+
			"genomesFile genomes.txt\n"+
			"email user@example.org\n")

	expect.EQ(t, readStaged(t, staging, "genomes.txt"),
		"genome hg38\n"+
			"trackDb hg38/trackDb.txt\n")

	expect.EQ(t, readStaged(t, staging, "hg38/trackDb.txt"),
		"track super1\n"+
			"superTrack on\n"+
			"shortLabel super1\n"+
			"longLabel super1\n"+
			"\n"+
			"track w1\n"+
			"parent super1\n"+
			"bigDataUrl w1.bw\n"+
			"type bigWig\n"+
			"color 255,0,0\n"+
			"\n"+
			"track b1\n"+
			"parent super1\n"+
			"bigDataUrl b1.bb\n"+
			"type bigBed 12 +\n"+
			"visibility dense\n"+
			"shortLabel B1\n"+
			"\n"+
			"track b2\n"+
			"bigDataUrl b2.bb\n"+
			"type bigBed 12 +\n"+
			"visibility dense\n")

	expect.EQ(t, readStaged(t, staging, "manifest.txt"),
		"hg38/b1.bb\t"+filepath.Join(tempDir, "b1.bb")+"\n"+
			"hg38/b2.bb\t"+filepath.Join(tempDir, "b2.bb")+"\n"+
			"hg38/w1.bw\t"+filepath.Join(tempDir, "w1.bw")+"\n")

	// Data files are staged next to the trackDb.
	expect.EQ(t, readStaged(t, staging, "hg38/b1.bb"), "b1.bb")
	expect.EQ(t, readStaged(t, staging, "hg38/w1.bw"), "w1.bw")
}

func TestEmitDeterministic(t *testing.T) {
	tempDir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	reg, forest := emitFixture(t, tempDir)
	ctx := vcontext.Background()

	first := filepath.Join(tempDir, "hub1")
	second := filepath.Join(tempDir, "hub2")
	assert.NoError(t, hub.Emit(ctx, testDescriptor, reg, forest, first, hub.EmitOpts{}))
	assert.NoError(t, hub.Emit(ctx, testDescriptor, reg, forest, second, hub.EmitOpts{}))
	for _, name := range []string{"hub.txt", "genomes.txt", "hg38/trackDb.txt", "manifest.txt"} {
		expect.EQ(t, readStaged(t, second, name), readStaged(t, first, name), "file %s", name)
	}
}

func TestEmitMissingFile(t *testing.T) {
	tempDir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	reg, forest := emitFixture(t, tempDir)
	ctx := vcontext.Background()
	assert.NoError(t, os.Remove(filepath.Join(tempDir, "b2.bb")))

	staging := filepath.Join(tempDir, "hub")
	err := hub.Emit(ctx, testDescriptor, reg, forest, staging, hub.EmitOpts{})
	var missing *hub.MissingFileError
	assert.True(t, errors.As(err, &missing), "got %v", err)
	expect.EQ(t, missing.Track, "b2")
	expect.EQ(t, missing.Path, filepath.Join(tempDir, "b2.bb"))

	// Nothing may be left behind, not even a partial directory.
	_, statErr := os.Stat(staging)
	expect.True(t, os.IsNotExist(statErr))
	entries, err := os.ReadDir(tempDir)
	assert.NoError(t, err)
	for _, e := range entries {
		expect.False(t, e.IsDir(), "unexpected directory %s", e.Name())
	}
}

func TestEmitExistingTarget(t *testing.T) {
	tempDir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	reg, forest := emitFixture(t, tempDir)
	ctx := vcontext.Background()

	staging := filepath.Join(tempDir, "hub")
	assert.NoError(t, hub.Emit(ctx, testDescriptor, reg, forest, staging, hub.EmitOpts{}))

	err := hub.Emit(ctx, testDescriptor, reg, forest, staging, hub.EmitOpts{})
	expect.NotNil(t, err)

	assert.NoError(t, hub.Emit(ctx, testDescriptor, reg, forest, staging, hub.EmitOpts{Overwrite: true}))
	expect.EQ(t, readStaged(t, staging, "genomes.txt"), "genome hg38\ntrackDb hg38/trackDb.txt\n")
}

func TestEmitLink(t *testing.T) {
	tempDir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	reg, forest := emitFixture(t, tempDir)
	ctx := vcontext.Background()

	staging := filepath.Join(tempDir, "hub")
	assert.NoError(t, hub.Emit(ctx, testDescriptor, reg, forest, staging, hub.EmitOpts{Link: true}))
	expect.EQ(t, readStaged(t, staging, "hg38/b2.bb"), "b2.bb")
}
