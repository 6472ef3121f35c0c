package services

import (
	"context"
	"fmt"

	"github.com/kamal-hamza/ax-cli/internal/core/domain"
	"github.com/kamal-hamza/ax-cli/internal/core/ports"
)

// maxHierarchyDepth caps recursive walks over the group tree so they
// terminate even on corrupt data.
const maxHierarchyDepth = 100

// HierarchyService keeps the asset parent/child graph a forest. Child →
// parent pointers are authoritative; the children index derived from them
// answers descendant queries.
type HierarchyService struct {
	store ports.LibraryStore
	clock ports.Clock
	path  string
}

// NewHierarchyService creates a hierarchy service bound to the library
// document at path.
func NewHierarchyService(store ports.LibraryStore, clock ports.Clock, path string) *HierarchyService {
	return &HierarchyService{
		store: store,
		clock: clock,
		path:  path,
	}
}

// WouldCreateCycle reports whether assigning child into parent would make
// the child its own ancestor. The ancestor walk tracks visited ids and
// stops on the first repeat, so it terminates even over corrupt data.
func WouldCreateCycle(lib *domain.Library, parentID, childID domain.AssetID) bool {
	if parentID == childID {
		return true
	}
	visited := map[domain.AssetID]bool{}
	current := parentID
	for !current.IsZero() {
		if current == childID {
			return true
		}
		if visited[current] {
			return false
		}
		visited[current] = true
		asset, ok := lib.Get(current)
		if !ok {
			return false
		}
		current = asset.ParentGroupID
	}
	return false
}

// WouldCreateCycle evaluates the cycle check against the current snapshot.
func (s *HierarchyService) WouldCreateCycle(ctx context.Context, parentID, childID domain.AssetID) bool {
	return WouldCreateCycle(s.store.Load(ctx, s.path), parentID, childID)
}

// MaxDepth returns the depth of the subtree rooted at id: 1 for a leaf,
// capped defensively at maxHierarchyDepth.
func (s *HierarchyService) MaxDepth(ctx context.Context, id domain.AssetID) int {
	lib := s.store.Load(ctx, s.path)
	return subtreeDepth(lib, id, 1)
}

func subtreeDepth(lib *domain.Library, id domain.AssetID, depth int) int {
	if depth >= maxHierarchyDepth {
		return maxHierarchyDepth
	}
	max := depth
	for _, childID := range lib.ChildrenOf(id) {
		if d := subtreeDepth(lib, childID, depth+1); d > max {
			max = d
		}
	}
	return max
}

// RootAssets returns the ids of all top-level assets.
func (s *HierarchyService) RootAssets(ctx context.Context) []domain.AssetID {
	lib := s.store.Load(ctx, s.path)
	var roots []domain.AssetID
	for _, asset := range lib.All() {
		if asset.ParentGroupID.IsZero() {
			roots = append(roots, asset.ID)
		}
	}
	return roots
}

// Descendants returns every id reachable from root via child pointers,
// breadth-first. The visited set deduplicates ids even when the data is
// malformed.
func (s *HierarchyService) Descendants(ctx context.Context, rootID domain.AssetID) []domain.AssetID {
	lib := s.store.Load(ctx, s.path)
	visited := map[domain.AssetID]bool{rootID: true}
	var out []domain.AssetID
	queue := lib.ChildrenOf(rootID)
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		if visited[id] {
			continue
		}
		visited[id] = true
		out = append(out, id)
		queue = append(queue, lib.ChildrenOf(id)...)
	}
	return out
}

// AncestorPath returns the chain of group ids from the root down to the
// asset's direct parent. An empty slice means the asset is top-level.
func (s *HierarchyService) AncestorPath(ctx context.Context, id domain.AssetID) []domain.AssetID {
	lib := s.store.Load(ctx, s.path)
	visited := map[domain.AssetID]bool{id: true}
	var reversed []domain.AssetID
	asset, ok := lib.Get(id)
	if !ok {
		return nil
	}
	current := asset.ParentGroupID
	for !current.IsZero() && !visited[current] && len(reversed) < maxHierarchyDepth {
		visited[current] = true
		reversed = append(reversed, current)
		parent, ok := lib.Get(current)
		if !ok {
			break
		}
		current = parent.ParentGroupID
	}
	// Walked child→root; the contract is root→parent.
	path := make([]domain.AssetID, len(reversed))
	for i, ancestor := range reversed {
		path[len(reversed)-1-i] = ancestor
	}
	return path
}

// CreateGroup creates and persists a new empty group asset.
func (s *HierarchyService) CreateGroup(ctx context.Context, name string) (domain.Asset, error) {
	group, err := domain.NewAsset(name, s.clock.Now())
	if err != nil {
		return domain.Asset{}, err
	}
	group = group.WithGroupFlag(true)

	lib := s.store.Load(ctx, s.path)
	lib.Put(group)
	if err := s.store.Save(ctx, lib, s.path); err != nil {
		return domain.Asset{}, err
	}
	return group, nil
}

// AddToGroup assigns child into group, rejecting assignments that would
// create a cycle.
func (s *HierarchyService) AddToGroup(ctx context.Context, childID, groupID domain.AssetID) error {
	lib := s.store.Load(ctx, s.path)
	child, ok := lib.Get(childID)
	if !ok {
		return fmt.Errorf("%w: child %s", domain.ErrNotFound, childID)
	}
	if !lib.Has(groupID) {
		return fmt.Errorf("%w: group %s", domain.ErrNotFound, groupID)
	}
	if WouldCreateCycle(lib, groupID, childID) {
		return fmt.Errorf("%w: adding %s to %s would create a cycle", domain.ErrIntegrityViolation, childID, groupID)
	}
	lib.Put(child.WithParent(groupID))
	return s.store.Save(ctx, lib, s.path)
}

// Disband detaches every child of the group, making them top-level. The
// group itself and the children are kept.
func (s *HierarchyService) Disband(ctx context.Context, groupID domain.AssetID) error {
	lib := s.store.Load(ctx, s.path)
	if !lib.Has(groupID) {
		return fmt.Errorf("%w: group %s", domain.ErrNotFound, groupID)
	}
	for _, childID := range lib.ChildrenOf(groupID) {
		if child, ok := lib.Get(childID); ok {
			lib.Put(child.WithoutParent())
		}
	}
	return s.store.Save(ctx, lib, s.path)
}

// RemoveFromGroup makes a single child top-level again.
func (s *HierarchyService) RemoveFromGroup(ctx context.Context, childID domain.AssetID) error {
	lib := s.store.Load(ctx, s.path)
	child, ok := lib.Get(childID)
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrNotFound, childID)
	}
	if child.ParentGroupID.IsZero() {
		return nil
	}
	lib.Put(child.WithoutParent())
	return s.store.Save(ctx, lib, s.path)
}

// GroupChildren returns the assets directly inside a group, in child-name
// order.
func (s *HierarchyService) GroupChildren(ctx context.Context, groupID domain.AssetID) ([]domain.Asset, error) {
	lib := s.store.Load(ctx, s.path)
	if !lib.Has(groupID) {
		return nil, fmt.Errorf("%w: group %s", domain.ErrNotFound, groupID)
	}
	ids := lib.ChildrenOf(groupID)
	out := make([]domain.Asset, 0, len(ids))
	for _, id := range ids {
		if asset, ok := lib.Get(id); ok {
			out = append(out, asset)
		}
	}
	return out, nil
}
