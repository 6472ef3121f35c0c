package domain

import (
	"fmt"
	"strings"
	"time"
)

// MaxNameLength is the ceiling for asset names. Longer names are rejected
// on construction and flagged by the validation engine.
const MaxNameLength = 200

// Metadata holds the descriptive fields of an asset.
type Metadata struct {
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	AuthorName   string    `json:"authorName"`
	AssetType    string    `json:"assetType"`
	Tags         []string  `json:"tags"`
	Dependencies []string  `json:"dependencies"`
	CreatedDate  time.Time `json:"createdDate"`
	ModifiedDate time.Time `json:"modifiedDate"`
}

// FileInfo holds the on-disk facts about an asset's source file.
type FileInfo struct {
	FilePath      string   `json:"filePath"`
	ThumbnailPath string   `json:"thumbnailPath"`
	FileSizeBytes int64    `json:"fileSizeBytes"`
	ImportFiles   []string `json:"importFiles"`
}

// AssetState holds the boolean flags of an asset.
type AssetState struct {
	IsFavorite bool `json:"isFavorite"`
	IsGroup    bool `json:"isGroup"`
	IsArchived bool `json:"isArchived"`
}

// BoothItem records marketplace provenance for assets imported from a
// storefront listing. It is optional; a nil pointer means no provenance.
type BoothItem struct {
	ItemURL     string `json:"itemUrl"`
	FileName    string `json:"fileName"`
	DownloadURL string `json:"downloadUrl"`
	ItemTitle   string `json:"itemTitle"`
	AuthorName  string `json:"authorName"`
	Price       string `json:"price"`
	ImageURL    string `json:"imageUrl"`
}

// Asset is the central entity of the library: one cataloged item with
// metadata, file facts, state flags, hierarchy role, and provenance.
//
// Assets are treated as immutable values. Mutation happens exclusively by
// deriving a new value through the With* constructors; callers never share
// an asset they mutate in place. ChildAssetIDs is part of the persisted
// document shape but is regenerated from parent references at save time and
// ignored on load; the parent pointer is authoritative.
type Asset struct {
	ID            AssetID    `json:"-"`
	ParentGroupID AssetID    `json:"parentGroupId"`
	Metadata      Metadata   `json:"metadata"`
	FileInfo      FileInfo   `json:"fileInfo"`
	State         AssetState `json:"state"`
	BoothItem     *BoothItem `json:"boothItem"`
	LastAccessed  time.Time  `json:"lastAccessed"`
	ChildAssetIDs []AssetID  `json:"childAssetIds"`
}

// NewAsset creates a fresh asset with a generated id and both timestamps
// set to now.
func NewAsset(name string, now time.Time) (Asset, error) {
	if err := ValidateName(name); err != nil {
		return Asset{}, err
	}
	return Asset{
		ID: NewAssetID(),
		Metadata: Metadata{
			Name:         name,
			Tags:         []string{},
			Dependencies: []string{},
			CreatedDate:  now,
			ModifiedDate: now,
		},
		FileInfo:     FileInfo{ImportFiles: []string{}},
		LastAccessed: now,
	}, nil
}

// ValidateName checks the shape of an asset name.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidArgument)
	}
	if len(name) > MaxNameLength {
		return fmt.Errorf("%w: name too long (max %d characters)", ErrInvalidArgument, MaxNameLength)
	}
	return nil
}

// IsVisibleInList reports whether the asset appears in flat (non-nested)
// listings. Grouped children surface only through group-children queries.
func (a Asset) IsVisibleInList() bool {
	return a.ParentGroupID.IsZero()
}

// HasTag reports whether the asset carries the tag (case-sensitive).
func (a Asset) HasTag(tag string) bool {
	for _, t := range a.Metadata.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// WithName derives a copy with a new name and a refreshed modified date.
func (a Asset) WithName(name string, now time.Time) Asset {
	b := a.clone()
	b.Metadata.Name = name
	b.Metadata.ModifiedDate = now
	return b
}

// WithDescription derives a copy with a new description.
func (a Asset) WithDescription(description string, now time.Time) Asset {
	b := a.clone()
	b.Metadata.Description = description
	b.Metadata.ModifiedDate = now
	return b
}

// WithAuthor derives a copy with a new author name.
func (a Asset) WithAuthor(author string, now time.Time) Asset {
	b := a.clone()
	b.Metadata.AuthorName = author
	b.Metadata.ModifiedDate = now
	return b
}

// WithAssetType derives a copy with a new asset type tag.
func (a Asset) WithAssetType(assetType string, now time.Time) Asset {
	b := a.clone()
	b.Metadata.AssetType = strings.TrimSpace(assetType)
	b.Metadata.ModifiedDate = now
	return b
}

// WithAddedTags derives a copy with the given tags appended. Tags are
// trimmed; duplicates (case-sensitive exact match) are dropped while the
// original casing of existing tags is preserved.
func (a Asset) WithAddedTags(now time.Time, tags ...string) Asset {
	b := a.clone()
	changed := false
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" || b.HasTag(tag) {
			continue
		}
		b.Metadata.Tags = append(b.Metadata.Tags, tag)
		changed = true
	}
	if changed {
		b.Metadata.ModifiedDate = now
	}
	return b
}

// WithRemovedTags derives a copy with the given tags removed
// (case-sensitive exact match).
func (a Asset) WithRemovedTags(now time.Time, tags ...string) Asset {
	b := a.clone()
	kept := make([]string, 0, len(b.Metadata.Tags))
	changed := false
	for _, existing := range b.Metadata.Tags {
		remove := false
		for _, tag := range tags {
			if existing == strings.TrimSpace(tag) {
				remove = true
				break
			}
		}
		if remove {
			changed = true
			continue
		}
		kept = append(kept, existing)
	}
	b.Metadata.Tags = kept
	if changed {
		b.Metadata.ModifiedDate = now
	}
	return b
}

// WithAddedDependencies derives a copy with free-form dependency references
// appended, trimmed and deduplicated the same way as tags.
func (a Asset) WithAddedDependencies(now time.Time, deps ...string) Asset {
	b := a.clone()
	changed := false
	for _, dep := range deps {
		dep = strings.TrimSpace(dep)
		if dep == "" {
			continue
		}
		exists := false
		for _, existing := range b.Metadata.Dependencies {
			if existing == dep {
				exists = true
				break
			}
		}
		if exists {
			continue
		}
		b.Metadata.Dependencies = append(b.Metadata.Dependencies, dep)
		changed = true
	}
	if changed {
		b.Metadata.ModifiedDate = now
	}
	return b
}

// WithFileInfo derives a copy with replaced file facts.
func (a Asset) WithFileInfo(info FileInfo, now time.Time) Asset {
	b := a.clone()
	b.FileInfo = info
	b.FileInfo.ImportFiles = cloneStrings(info.ImportFiles)
	b.Metadata.ModifiedDate = now
	return b
}

// WithParent derives a copy assigned to a group.
func (a Asset) WithParent(parent AssetID) Asset {
	b := a.clone()
	b.ParentGroupID = parent
	return b
}

// WithoutParent derives a top-level copy.
func (a Asset) WithoutParent() Asset {
	b := a.clone()
	b.ParentGroupID = ""
	return b
}

// WithFavorite derives a copy with the favorite flag set.
func (a Asset) WithFavorite(favorite bool) Asset {
	b := a.clone()
	b.State.IsFavorite = favorite
	return b
}

// WithArchived derives a copy with the archived flag set.
func (a Asset) WithArchived(archived bool) Asset {
	b := a.clone()
	b.State.IsArchived = archived
	return b
}

// WithGroupFlag derives a copy marked (or unmarked) as a group container.
func (a Asset) WithGroupFlag(isGroup bool) Asset {
	b := a.clone()
	b.State.IsGroup = isGroup
	return b
}

// WithBoothItem derives a copy with marketplace provenance attached.
// Passing nil clears the provenance.
func (a Asset) WithBoothItem(item *BoothItem) Asset {
	b := a.clone()
	if item == nil {
		b.BoothItem = nil
		return b
	}
	copied := *item
	b.BoothItem = &copied
	return b
}

// WithLastAccessed derives a copy with the bookkeeping timestamp updated.
func (a Asset) WithLastAccessed(t time.Time) Asset {
	b := a.clone()
	b.LastAccessed = t
	return b
}

// clone deep-copies the asset so derived values never alias the slices or
// provenance record of the original.
func (a Asset) clone() Asset {
	b := a
	b.Metadata.Tags = cloneStrings(a.Metadata.Tags)
	b.Metadata.Dependencies = cloneStrings(a.Metadata.Dependencies)
	b.FileInfo.ImportFiles = cloneStrings(a.FileInfo.ImportFiles)
	if a.BoothItem != nil {
		item := *a.BoothItem
		b.BoothItem = &item
	}
	if a.ChildAssetIDs != nil {
		b.ChildAssetIDs = append([]AssetID(nil), a.ChildAssetIDs...)
	}
	return b
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
