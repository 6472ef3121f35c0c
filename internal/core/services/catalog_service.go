package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/kamal-hamza/ax-cli/internal/core/domain"
	"github.com/kamal-hamza/ax-cli/internal/core/ports"
)

// CatalogService provides typed CRUD over the library's asset map. It
// enforces identity and basic shape rules; cross-entity integrity is the
// hierarchy service's job.
//
// Every mutation follows the same pattern: load the current library
// snapshot, derive a new asset value reflecting the change, and write the
// whole library back through the store. Two concurrent callers can race
// (last writer wins); that limitation is accepted, not mitigated.
type CatalogService struct {
	store ports.LibraryStore
	clock ports.Clock
	path  string
}

// NewCatalogService creates a catalog service bound to the library
// document at path.
func NewCatalogService(store ports.LibraryStore, clock ports.Clock, path string) *CatalogService {
	return &CatalogService{
		store: store,
		clock: clock,
		path:  path,
	}
}

// Add inserts an asset. Adding an id that already exists silently
// overwrites the stored asset, i.e. it redirects to Update. Double-add is
// therefore indistinguishable from an intentional overwrite.
func (s *CatalogService) Add(ctx context.Context, asset domain.Asset) error {
	if asset.ID.IsZero() {
		return fmt.Errorf("%w: asset has no id", domain.ErrInvalidArgument)
	}
	if err := domain.ValidateName(asset.Metadata.Name); err != nil {
		return err
	}

	lib := s.store.Load(ctx, s.path)
	lib.Put(asset)
	return s.store.Save(ctx, lib, s.path)
}

// Update replaces an existing asset.
func (s *CatalogService) Update(ctx context.Context, asset domain.Asset) error {
	if asset.ID.IsZero() {
		return fmt.Errorf("%w: asset has no id", domain.ErrInvalidArgument)
	}
	lib := s.store.Load(ctx, s.path)
	if !lib.Has(asset.ID) {
		return fmt.Errorf("%w: %s", domain.ErrNotFound, asset.ID)
	}
	lib.Put(asset)
	return s.store.Save(ctx, lib, s.path)
}

// Remove deletes an asset. Children of a removed group become top-level;
// only Disband detaches children while keeping the group.
func (s *CatalogService) Remove(ctx context.Context, id domain.AssetID) error {
	lib := s.store.Load(ctx, s.path)
	if !lib.Has(id) {
		return fmt.Errorf("%w: %s", domain.ErrNotFound, id)
	}
	for _, childID := range lib.ChildrenOf(id) {
		if child, ok := lib.Get(childID); ok {
			lib.Put(child.WithoutParent())
		}
	}
	lib.Remove(id)
	return s.store.Save(ctx, lib, s.path)
}

// Get retrieves one asset by id.
func (s *CatalogService) Get(ctx context.Context, id domain.AssetID) (domain.Asset, error) {
	lib := s.store.Load(ctx, s.path)
	asset, ok := lib.Get(id)
	if !ok {
		return domain.Asset{}, fmt.Errorf("%w: %s", domain.ErrNotFound, id)
	}
	return asset, nil
}

// GetAll returns every asset ordered by name.
func (s *CatalogService) GetAll(ctx context.Context) []domain.Asset {
	return s.store.Load(ctx, s.path).All()
}

// FindByText returns assets whose name, description, or author contains
// the query (case-insensitive substring).
func (s *CatalogService) FindByText(ctx context.Context, query string) []domain.Asset {
	query = strings.ToLower(query)
	return s.filter(ctx, func(a domain.Asset) bool {
		return strings.Contains(strings.ToLower(a.Metadata.Name), query) ||
			strings.Contains(strings.ToLower(a.Metadata.Description), query) ||
			strings.Contains(strings.ToLower(a.Metadata.AuthorName), query)
	})
}

// FindByTag returns assets carrying the exact tag.
func (s *CatalogService) FindByTag(ctx context.Context, tag string) []domain.Asset {
	return s.filter(ctx, func(a domain.Asset) bool {
		return a.HasTag(tag)
	})
}

// FindByType returns assets with the exact asset type.
func (s *CatalogService) FindByType(ctx context.Context, assetType string) []domain.Asset {
	return s.filter(ctx, func(a domain.Asset) bool {
		return a.Metadata.AssetType == assetType
	})
}

// Favorites returns all assets flagged as favorite.
func (s *CatalogService) Favorites(ctx context.Context) []domain.Asset {
	return s.filter(ctx, func(a domain.Asset) bool {
		return a.State.IsFavorite
	})
}

// Archived returns all archived assets.
func (s *CatalogService) Archived(ctx context.Context) []domain.Asset {
	return s.filter(ctx, func(a domain.Asset) bool {
		return a.State.IsArchived
	})
}

// Tag appends tags to an asset.
func (s *CatalogService) Tag(ctx context.Context, id domain.AssetID, tags ...string) error {
	return s.derive(ctx, id, func(a domain.Asset) domain.Asset {
		return a.WithAddedTags(s.clock.Now(), tags...)
	})
}

// Untag removes tags from an asset.
func (s *CatalogService) Untag(ctx context.Context, id domain.AssetID, tags ...string) error {
	return s.derive(ctx, id, func(a domain.Asset) domain.Asset {
		return a.WithRemovedTags(s.clock.Now(), tags...)
	})
}

// SetFavorite flips the favorite flag.
func (s *CatalogService) SetFavorite(ctx context.Context, id domain.AssetID, favorite bool) error {
	return s.derive(ctx, id, func(a domain.Asset) domain.Asset {
		return a.WithFavorite(favorite)
	})
}

// SetArchived flips the archived flag.
func (s *CatalogService) SetArchived(ctx context.Context, id domain.AssetID, archived bool) error {
	return s.derive(ctx, id, func(a domain.Asset) domain.Asset {
		return a.WithArchived(archived)
	})
}

// Touch updates the last-accessed timestamp.
func (s *CatalogService) Touch(ctx context.Context, id domain.AssetID) error {
	return s.derive(ctx, id, func(a domain.Asset) domain.Asset {
		return a.WithLastAccessed(s.clock.Now())
	})
}

// KnownTags returns the suggestion registry of tags.
func (s *CatalogService) KnownTags(ctx context.Context) []string {
	lib := s.store.Load(ctx, s.path)
	out := make([]string, len(lib.Tags))
	copy(out, lib.Tags)
	return out
}

// KnownAssetTypes returns the suggestion registry of asset types.
func (s *CatalogService) KnownAssetTypes(ctx context.Context) []string {
	lib := s.store.Load(ctx, s.path)
	out := make([]string, len(lib.AssetTypes))
	copy(out, lib.AssetTypes)
	return out
}

// derive re-fetches the snapshot, applies the derivation to the named
// asset, and persists. Callers doing read-modify-write must go through
// here so the derivation always sees the freshest snapshot.
func (s *CatalogService) derive(ctx context.Context, id domain.AssetID, fn func(domain.Asset) domain.Asset) error {
	lib := s.store.Load(ctx, s.path)
	asset, ok := lib.Get(id)
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrNotFound, id)
	}
	lib.Put(fn(asset))
	return s.store.Save(ctx, lib, s.path)
}

func (s *CatalogService) filter(ctx context.Context, keep func(domain.Asset) bool) []domain.Asset {
	var out []domain.Asset
	for _, asset := range s.store.Load(ctx, s.path).All() {
		if keep(asset) {
			out = append(out, asset)
		}
	}
	return out
}
