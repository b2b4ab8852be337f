package hub

// Group is one named grouping declaration: a container name and its member
// tracks in display order. Settings may be nil, in which case the container
// gets default labels.
type Group struct {
	Name     string
	Members  []string
	Settings *Settings
}

// Forest is the resolved parent/child structure: containers in declaration
// order, each owning its member tracks. Tracks not claimed by any container
// remain roots.
type Forest struct {
	containers []*Container
	byName     map[string]*Container
}

// Resolve validates the grouping declarations against the registry and
// links each member track to its container. Container order follows the
// declaration order of the groupings; child order within a container
// follows the member list. Both orders are rendering-relevant and are
// preserved as given.
//
// On any error no forest is returned and no partial container is retained.
func Resolve(reg *Registry, groups []Group) (*Forest, error) {
	forest := &Forest{byName: map[string]*Container{}}
	owner := map[string]string{}
	for _, g := range groups {
		if _, ok := reg.Lookup(g.Name); ok {
			return nil, &DuplicateNameError{Name: g.Name, First: "track declarations", Second: "superTracks"}
		}
		if _, ok := forest.byName[g.Name]; ok {
			return nil, &DuplicateNameError{Name: g.Name, First: "superTracks", Second: "superTracks"}
		}
		// Validate the full member list before touching any track, so a
		// failed grouping leaves nothing behind.
		for _, member := range g.Members {
			if _, ok := reg.Lookup(member); !ok {
				return nil, &UnknownMemberError{Container: g.Name, Member: member}
			}
			if first, claimed := owner[member]; claimed {
				return nil, &DoubleAssignmentError{Track: member, First: first, Second: g.Name}
			}
			owner[member] = g.Name
		}
		c := &Container{
			Name:     g.Name,
			Settings: containerSettings(g),
		}
		for _, member := range g.Members {
			t, _ := reg.Lookup(member)
			t.parent = g.Name
			c.Children = append(c.Children, member)
		}
		forest.containers = append(forest.containers, c)
		forest.byName[g.Name] = c
	}
	return forest, nil
}

// containerSettings fills in the label defaults: a container missing
// shortLabel or longLabel is labelled with its own name. Container settings
// are never inherited from children.
func containerSettings(g Group) *Settings {
	s := NewSettings()
	if g.Settings != nil {
		s = g.Settings.Clone()
	}
	if !s.Has("shortLabel") {
		s.Set("shortLabel", g.Name)
	}
	if !s.Has("longLabel") {
		s.Set("longLabel", g.Name)
	}
	return s
}

// Containers returns the containers in declaration order.
func (f *Forest) Containers() []*Container {
	containers := make([]*Container, len(f.containers))
	copy(containers, f.containers)
	return containers
}

// Container returns the named container.
func (f *Forest) Container(name string) (*Container, bool) {
	c, ok := f.byName[name]
	return c, ok
}

// Len returns the number of containers.
func (f *Forest) Len() int { return len(f.containers) }
