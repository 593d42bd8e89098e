package view

import (
	"sort"
	"strings"

	"projman/internal/models"
)

// FavoritesGroupKey is the reserved path for the favorites pseudo-group.
// The leading NUL keeps it from colliding with any user group name.
const FavoritesGroupKey = "\x00favorites"

// GroupNode is one level of the group hierarchy.
type GroupNode struct {
	Name     string // last path segment
	Path     string // full /-joined path
	Depth    int
	Children []*GroupNode
	Projects []*models.Project // projects attached to exactly this path
}

// TotalCount returns the number of projects in the node's entire subtree.
func (n *GroupNode) TotalCount() int {
	count := len(n.Projects)
	for _, child := range n.Children {
		count += child.TotalCount()
	}
	return count
}

// GroupTree is the hierarchical presentation of a flat project list.
// Favorites is a display lens: a favorited project appears there and at
// its normal position.
type GroupTree struct {
	Favorites []*models.Project
	Ungrouped []*models.Project
	Roots     []*GroupNode
}

// BuildGroupTree converts an already-sorted project sequence into a
// hierarchy. A project's group string is split on /, empty segments
// dropped; every prefix becomes a node and the project attaches only to
// the leaf. Siblings sort alphabetically at every depth, independent of
// the incoming project order.
func BuildGroupTree(projects []*models.Project) *GroupTree {
	tree := &GroupTree{}
	nodes := make(map[string]*GroupNode)

	for _, p := range projects {
		if p.IsFavorite {
			tree.Favorites = append(tree.Favorites, p)
		}

		segments := splitGroup(p.Group)
		if len(segments) == 0 {
			tree.Ungrouped = append(tree.Ungrouped, p)
			continue
		}

		currentPath := ""
		for depth, segment := range segments {
			parentPath := currentPath
			if currentPath == "" {
				currentPath = segment
			} else {
				currentPath = currentPath + "/" + segment
			}
			if _, ok := nodes[currentPath]; !ok {
				node := &GroupNode{Name: segment, Path: currentPath, Depth: depth}
				nodes[currentPath] = node
				if parentPath == "" {
					tree.Roots = append(tree.Roots, node)
				} else {
					parent := nodes[parentPath]
					parent.Children = append(parent.Children, node)
				}
			}
		}

		leaf := nodes[currentPath]
		leaf.Projects = append(leaf.Projects, p)
	}

	sortNodes(tree.Roots)
	return tree
}

func sortNodes(nodes []*GroupNode) {
	sort.SliceStable(nodes, func(i, j int) bool {
		return strings.ToLower(nodes[i].Name) < strings.ToLower(nodes[j].Name)
	})
	for _, n := range nodes {
		sortNodes(n.Children)
	}
}

func splitGroup(group string) []string {
	var segments []string
	for _, s := range strings.Split(group, "/") {
		if s != "" {
			segments = append(segments, s)
		}
	}
	return segments
}

// AllGroupPaths returns every distinct group path across the projects,
// including implicit ancestor paths, in no particular order.
func AllGroupPaths(projects []*models.Project) []string {
	seen := make(map[string]bool)
	var paths []string
	for _, p := range projects {
		segments := splitGroup(p.Group)
		currentPath := ""
		for _, segment := range segments {
			if currentPath == "" {
				currentPath = segment
			} else {
				currentPath = currentPath + "/" + segment
			}
			if !seen[currentPath] {
				seen[currentPath] = true
				paths = append(paths, currentPath)
			}
		}
	}
	return paths
}

// CollapseTargets returns every known group path equal to or nested
// under the given path, for recursive collapse/expand.
func CollapseTargets(path string, allPaths []string) []string {
	var targets []string
	for _, p := range allPaths {
		if p == path || strings.HasPrefix(p, path+"/") {
			targets = append(targets, p)
		}
	}
	return targets
}
