package catalog

// FindCategory searches the tree depth-first for id.
func FindCategory(tree []Category, id string) (*Category, bool) {
	for i := range tree {
		if tree[i].ID == id {
			return &tree[i], true
		}
		if c, ok := FindCategory(tree[i].Subcategories, id); ok {
			return c, true
		}
	}
	return nil, false
}

// DescendantIDs returns id together with the ids of every category below it.
// An id missing from the tree still yields itself, so products tagged with a
// category the tree does not know about can be filtered on directly.
func DescendantIDs(tree []Category, id string) []string {
	c, ok := FindCategory(tree, id)
	if !ok {
		return []string{id}
	}
	ids := []string{}
	var walk func(Category)
	walk = func(c Category) {
		ids = append(ids, c.ID)
		for _, sub := range c.Subcategories {
			walk(sub)
		}
	}
	walk(*c)
	return ids
}

// buildCategoryTree assembles a tree from parent references. Nodes whose
// parent is unknown are treated as roots. Sibling order follows input order.
func buildCategoryTree(nodes []categoryRow) []Category {
	children := map[string][]categoryRow{}
	known := map[string]bool{}
	for _, n := range nodes {
		known[n.ID] = true
	}
	var roots []categoryRow
	for _, n := range nodes {
		if n.ParentID == "" || !known[n.ParentID] || n.ParentID == n.ID {
			roots = append(roots, n)
			continue
		}
		children[n.ParentID] = append(children[n.ParentID], n)
	}

	visited := map[string]bool{}
	var build func(categoryRow) Category
	build = func(n categoryRow) Category {
		visited[n.ID] = true
		c := Category{ID: n.ID, Name: n.Name}
		for _, child := range children[n.ID] {
			if visited[child.ID] {
				continue
			}
			c.Subcategories = append(c.Subcategories, build(child))
		}
		return c
	}
	tree := make([]Category, 0, len(roots))
	for _, r := range roots {
		tree = append(tree, build(r))
	}
	return tree
}

// categoryRow is the flat, adjacency-list form categories are stored in.
type categoryRow struct {
	ID       string
	Name     string
	ParentID string
}
