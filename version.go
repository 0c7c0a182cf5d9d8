package versioned

// versionID identifies a version within one store. IDs are indexes into the
// store's version arena and are handed out in creation order, so a version's
// id is always greater than the ids of all its ancestors.
type versionID int32

// rootVersion is the empty version every store starts from. No entries are
// ever recorded at it.
const rootVersion versionID = -1

// versionChain is an append-only arena of versions. Each version is
// represented only by its parent's id; versions are never modified or
// removed once created.
type versionChain struct {
	parents []versionID
}

// newVersion creates a child of the given version.
func (c *versionChain) newVersion(parent versionID) versionID {
	if parent != rootVersion && int(parent) >= len(c.parents) {
		panic("bug! parent version is not in this chain")
	}
	id := versionID(len(c.parents))
	c.parents = append(c.parents, parent)
	return id
}

func (c *versionChain) parent(v versionID) versionID {
	return c.parents[v]
}

// count returns the number of versions created so far.
func (c *versionChain) count() int {
	return len(c.parents)
}

// compareVersions orders versions by creation.
func compareVersions(a, b versionID) int {
	if a < b {
		return -1
	} else if a > b {
		return 1
	}
	return 0
}

// isAncestor reports whether a is b or one of b's ancestors. Since ids only
// decrease toward the root, the walk stops as soon as it passes a.
func (c *versionChain) isAncestor(a, b versionID) bool {
	if a == rootVersion {
		return true
	}
	for b != rootVersion && compareVersions(b, a) >= 0 {
		if b == a {
			return true
		}
		b = c.parent(b)
	}
	return false
}
