package hub_test

import (
	"errors"
	"testing"

	"github.com/eboileau/trackhub-utils/hub"
	"github.com/grailbio/testutil/assert"
	"github.com/grailbio/testutil/expect"
)

func testRegistry(t *testing.T, names ...string) *hub.Registry {
	t.Helper()
	var files []hub.FileEntry
	for _, n := range names {
		files = append(files, hub.FileEntry{Name: n, Path: "/tmp/" + n + ".bb"})
	}
	reg, err := hub.Build([]hub.FormatFiles{{
		Format: hub.BigBed,
		Files:  files,
		Global: settings("trackType", "bigBed 12 +"),
	}})
	assert.NoError(t, err)
	return reg
}

func TestResolveLinksChildren(t *testing.T) {
	reg := testRegistry(t, "b1", "b2", "b3")
	forest, err := hub.Resolve(reg, []hub.Group{
		{Name: "super1", Members: []string{"b2", "b1"}},
	})
	assert.NoError(t, err)
	expect.EQ(t, forest.Len(), 1)

	c, ok := forest.Container("super1")
	assert.True(t, ok)
	// Child order is display order and must follow the declaration.
	expect.EQ(t, c.Children, []string{"b2", "b1"})

	for name, parent := range map[string]string{"b1": "super1", "b2": "super1", "b3": ""} {
		track, _ := reg.Lookup(name)
		expect.EQ(t, track.Parent(), parent, "track %s", name)
	}
}

func TestResolveDefaultLabels(t *testing.T) {
	reg := testRegistry(t, "b1")
	forest, err := hub.Resolve(reg, []hub.Group{
		{Name: "super1", Members: []string{"b1"}},
	})
	assert.NoError(t, err)
	c, _ := forest.Container("super1")
	expect.EQ(t, c.Settings.Keys(), []string{"shortLabel", "longLabel"})
	v, _ := c.Settings.Get("shortLabel")
	expect.EQ(t, v, "super1")
}

func TestResolveExplicitLabels(t *testing.T) {
	reg := testRegistry(t, "b1")
	forest, err := hub.Resolve(reg, []hub.Group{
		{Name: "super1", Members: []string{"b1"}, Settings: settings("shortLabel", "S1")},
	})
	assert.NoError(t, err)
	c, _ := forest.Container("super1")
	v, _ := c.Settings.Get("shortLabel")
	expect.EQ(t, v, "S1")
	// longLabel still defaults to the container name.
	v, _ = c.Settings.Get("longLabel")
	expect.EQ(t, v, "super1")
}

func TestResolveUnknownMember(t *testing.T) {
	reg := testRegistry(t, "btrack1")
	forest, err := hub.Resolve(reg, []hub.Group{
		{Name: "super1", Members: []string{"btrack1", "wtrack1"}},
	})
	var unknown *hub.UnknownMemberError
	assert.True(t, errors.As(err, &unknown), "got %v", err)
	expect.EQ(t, unknown.Container, "super1")
	expect.EQ(t, unknown.Member, "wtrack1")
	// No partial container is retained.
	expect.Nil(t, forest)
}

func TestResolveDoubleAssignment(t *testing.T) {
	reg := testRegistry(t, "b1", "b2")
	_, err := hub.Resolve(reg, []hub.Group{
		{Name: "super1", Members: []string{"b1"}},
		{Name: "super2", Members: []string{"b2", "b1"}},
	})
	var double *hub.DoubleAssignmentError
	assert.True(t, errors.As(err, &double), "got %v", err)
	expect.EQ(t, double.Track, "b1")
	expect.EQ(t, double.First, "super1")
	expect.EQ(t, double.Second, "super2")
}

func TestResolveContainerNameCollision(t *testing.T) {
	reg := testRegistry(t, "b1", "b2")
	_, err := hub.Resolve(reg, []hub.Group{
		{Name: "b2", Members: []string{"b1"}},
	})
	var dup *hub.DuplicateNameError
	assert.True(t, errors.As(err, &dup), "got %v", err)
	expect.EQ(t, dup.Name, "b2")
}

func TestResolveContainerOrder(t *testing.T) {
	reg := testRegistry(t, "b1", "b2", "b3")
	forest, err := hub.Resolve(reg, []hub.Group{
		{Name: "super2", Members: []string{"b3"}},
		{Name: "super1", Members: []string{"b1"}},
	})
	assert.NoError(t, err)
	var names []string
	for _, c := range forest.Containers() {
		names = append(names, c.Name)
	}
	expect.EQ(t, names, []string{"super2", "super1"})
}
