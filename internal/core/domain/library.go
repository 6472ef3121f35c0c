package domain

import (
	"sort"
	"strings"
	"time"
)

// Library is the aggregate root of the catalog: the full asset map plus
// auxiliary registries of known tags and asset types. The registries feed
// suggestions only; nothing enforces membership.
//
// The children index is derived state. It is rebuilt from the authoritative
// child→parent pointers on load and kept current by Put/Remove, so the
// persisted childAssetIds arrays can never drift from the parent references.
type Library struct {
	LastUpdated time.Time         `json:"lastUpdated"`
	Assets      map[AssetID]Asset `json:"assets"`
	Tags        []string          `json:"tags"`
	AssetTypes  []string          `json:"assetTypes"`

	children map[AssetID][]AssetID
}

// NewLibrary creates an empty library.
func NewLibrary() *Library {
	return &Library{
		Assets:     make(map[AssetID]Asset),
		Tags:       []string{},
		AssetTypes: []string{},
		children:   make(map[AssetID][]AssetID),
	}
}

// Get retrieves an asset by id.
func (l *Library) Get(id AssetID) (Asset, bool) {
	asset, ok := l.Assets[id]
	return asset, ok
}

// Has reports whether an asset with the id exists.
func (l *Library) Has(id AssetID) bool {
	_, ok := l.Assets[id]
	return ok
}

// Count returns the number of assets in the library.
func (l *Library) Count() int {
	return len(l.Assets)
}

// Put inserts or replaces an asset and keeps the children index current.
func (l *Library) Put(asset Asset) {
	if l.Assets == nil {
		l.Assets = make(map[AssetID]Asset)
	}
	if previous, ok := l.Assets[asset.ID]; ok && previous.ParentGroupID != asset.ParentGroupID {
		l.unindexChild(previous.ParentGroupID, asset.ID)
	}
	l.Assets[asset.ID] = asset
	if !asset.ParentGroupID.IsZero() {
		l.indexChild(asset.ParentGroupID, asset.ID)
	}
	l.registerMetadata(asset)
}

// Remove deletes an asset and drops it from the children index. It does
// not touch the asset's own children; disbanding is a hierarchy operation.
func (l *Library) Remove(id AssetID) {
	asset, ok := l.Assets[id]
	if !ok {
		return
	}
	l.unindexChild(asset.ParentGroupID, id)
	delete(l.children, id)
	delete(l.Assets, id)
}

// All returns every asset, ordered by name (case-insensitive) with the id
// as tie-break so output is deterministic.
func (l *Library) All() []Asset {
	assets := make([]Asset, 0, len(l.Assets))
	for _, asset := range l.Assets {
		assets = append(assets, asset)
	}
	sort.Slice(assets, func(i, j int) bool {
		ni := strings.ToLower(assets[i].Metadata.Name)
		nj := strings.ToLower(assets[j].Metadata.Name)
		if ni != nj {
			return ni < nj
		}
		return assets[i].ID < assets[j].ID
	})
	return assets
}

// ChildrenOf returns the ids of the assets whose parent is the given group,
// ordered by child name then id.
func (l *Library) ChildrenOf(id AssetID) []AssetID {
	ids := l.children[id]
	out := make([]AssetID, len(ids))
	copy(out, ids)
	l.sortByName(out)
	return out
}

// RebuildIndex recomputes the children index from parent references. The
// store calls this after every load; the persisted childAssetIds arrays are
// deliberately ignored.
func (l *Library) RebuildIndex() {
	l.children = make(map[AssetID][]AssetID)
	if l.Assets == nil {
		l.Assets = make(map[AssetID]Asset)
	}
	if l.Tags == nil {
		l.Tags = []string{}
	}
	if l.AssetTypes == nil {
		l.AssetTypes = []string{}
	}
	for id, asset := range l.Assets {
		// The map key is authoritative for the id; assets arriving from
		// JSON have an empty ID field.
		if asset.ID != id {
			asset.ID = id
			l.Assets[id] = asset
		}
		if asset.ParentGroupID.IsZero() {
			continue
		}
		if !l.Has(asset.ParentGroupID) {
			// Dangling parent reference in a hand-edited document: treat
			// the asset as top-level rather than losing it.
			asset.ParentGroupID = ""
			l.Assets[id] = asset
			continue
		}
		l.indexChild(asset.ParentGroupID, id)
	}
}

// Normalize refreshes every asset's persisted ChildAssetIDs array from the
// index and sorts the registries. The store calls this before marshaling.
func (l *Library) Normalize() {
	for id, asset := range l.Assets {
		asset.ChildAssetIDs = l.ChildrenOf(id)
		l.Assets[id] = asset
	}
	sort.Strings(l.Tags)
	sort.Strings(l.AssetTypes)
}

// RegisterTag records a tag in the suggestion registry (case-sensitive
// exact dedup).
func (l *Library) RegisterTag(tag string) {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return
	}
	for _, existing := range l.Tags {
		if existing == tag {
			return
		}
	}
	l.Tags = append(l.Tags, tag)
}

// RegisterAssetType records an asset type in the suggestion registry.
func (l *Library) RegisterAssetType(assetType string) {
	assetType = strings.TrimSpace(assetType)
	if assetType == "" {
		return
	}
	for _, existing := range l.AssetTypes {
		if existing == assetType {
			return
		}
	}
	l.AssetTypes = append(l.AssetTypes, assetType)
}

// Clone deep-copies the library so a cached snapshot can be handed out
// while a caller derives a mutated successor.
func (l *Library) Clone() *Library {
	out := NewLibrary()
	out.LastUpdated = l.LastUpdated
	for id, asset := range l.Assets {
		out.Assets[id] = asset
	}
	out.Tags = cloneStrings(l.Tags)
	out.AssetTypes = cloneStrings(l.AssetTypes)
	out.RebuildIndex()
	return out
}

func (l *Library) registerMetadata(asset Asset) {
	for _, tag := range asset.Metadata.Tags {
		l.RegisterTag(tag)
	}
	if asset.Metadata.AssetType != "" {
		l.RegisterAssetType(asset.Metadata.AssetType)
	}
}

func (l *Library) indexChild(parent, child AssetID) {
	if l.children == nil {
		l.children = make(map[AssetID][]AssetID)
	}
	for _, existing := range l.children[parent] {
		if existing == child {
			return
		}
	}
	l.children[parent] = append(l.children[parent], child)
}

func (l *Library) unindexChild(parent, child AssetID) {
	if parent.IsZero() {
		return
	}
	ids := l.children[parent]
	for i, existing := range ids {
		if existing == child {
			l.children[parent] = append(ids[:i], ids[i+1:]...)
			return
		}
	}
}

func (l *Library) sortByName(ids []AssetID) {
	sort.Slice(ids, func(i, j int) bool {
		ai, aok := l.Assets[ids[i]]
		aj, bok := l.Assets[ids[j]]
		if !aok || !bok {
			return ids[i] < ids[j]
		}
		ni := strings.ToLower(ai.Metadata.Name)
		nj := strings.ToLower(aj.Metadata.Name)
		if ni != nj {
			return ni < nj
		}
		return ids[i] < ids[j]
	})
}
