package services

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/kamal-hamza/ax-cli/internal/core/domain"
	"github.com/kamal-hamza/ax-cli/internal/core/ports"
)

// FieldMask selects which asset fields a basic query matches against.
type FieldMask uint8

const (
	FieldName FieldMask = 1 << iota
	FieldDescription
	FieldAuthor
	FieldTags
	FieldPath
	FieldType

	FieldAll = FieldName | FieldDescription | FieldAuthor | FieldTags | FieldPath | FieldType
)

// BasicCriteria is one free-text query applied across a field bitmask.
type BasicCriteria struct {
	Query         string
	Fields        FieldMask
	CaseSensitive bool
	UseRegexp     bool
}

// DateRange filters a timestamp. A disabled range matches every value;
// an enabled range matches iff From ≤ value ≤ To.
type DateRange struct {
	Enabled bool
	From    time.Time
	To      time.Time
}

// Matches reports whether t falls inside the range.
func (r DateRange) Matches(t time.Time) bool {
	if !r.Enabled {
		return true
	}
	return !t.Before(r.From) && !t.After(r.To)
}

// SizeRange filters a byte size with the same enabled-flag semantics as
// DateRange.
type SizeRange struct {
	Enabled bool
	Min     int64
	Max     int64
}

// Matches reports whether size falls inside the range.
func (r SizeRange) Matches(size int64) bool {
	if !r.Enabled {
		return true
	}
	return size >= r.Min && size <= r.Max
}

// AdvancedCriteria combines independent sub-conditions. Populated
// sub-conditions combine with AND unless MatchAny flips the top level to
// OR. The tag-set and type-set AND/OR toggles are independent of the
// top-level toggle. ExcludeGroups is an unconditional filter, never part
// of the OR combination.
type AdvancedCriteria struct {
	Name        string
	Description string
	Author      string

	Tags         []string
	TagsMatchAll bool

	AssetTypes    []string
	TypesMatchAll bool

	Created  DateRange
	Modified DateRange
	Size     SizeRange

	FavoritesOnly bool
	ExcludeGroups bool

	MatchAny bool
}

// SortCriterion names a sortable asset field.
type SortCriterion int

const (
	SortByName SortCriterion = iota
	SortByCreated
	SortByModified
	SortBySize
	SortByAuthor
	SortByType
)

// SortDirection orders a sort ascending or descending.
type SortDirection int

const (
	Ascending SortDirection = iota
	Descending
)

// SortSpec is one (criterion, direction) pair.
type SortSpec struct {
	Criterion SortCriterion
	Direction SortDirection
}

// SearchResult carries an ordered id list plus timing metadata. It
// supports incremental refinement through Add and Remove so interactive
// callers can adjust a result set without re-running the query.
type SearchResult struct {
	IDs     []domain.AssetID
	Total   int
	Query   string
	Elapsed time.Duration
}

// Add appends an id unless it is already present.
func (r *SearchResult) Add(id domain.AssetID) {
	for _, existing := range r.IDs {
		if existing == id {
			return
		}
	}
	r.IDs = append(r.IDs, id)
	r.Total = len(r.IDs)
}

// Remove drops an id, preserving order.
func (r *SearchResult) Remove(id domain.AssetID) {
	for i, existing := range r.IDs {
		if existing == id {
			r.IDs = append(r.IDs[:i], r.IDs[i+1:]...)
			r.Total = len(r.IDs)
			return
		}
	}
}

// Contains reports whether an id is in the result.
func (r *SearchResult) Contains(id domain.AssetID) bool {
	for _, existing := range r.IDs {
		if existing == id {
			return true
		}
	}
	return false
}

// SearchService evaluates declarative criteria against the library and
// returns ordered id lists. Queries are a single linear scan per call,
// with no persistent index. That is the trade-off for a human-curated,
// single-machine catalog.
type SearchService struct {
	store ports.LibraryStore
	path  string
}

// NewSearchService creates a search service bound to the library document
// at path.
func NewSearchService(store ports.LibraryStore, path string) *SearchService {
	return &SearchService{store: store, path: path}
}

// SearchBasic evaluates a free-text query over the field mask. Flat
// results only ever include top-level assets.
func (s *SearchService) SearchBasic(ctx context.Context, criteria BasicCriteria, sorts ...SortSpec) (*SearchResult, error) {
	start := time.Now()

	match, err := compileTextMatcher(criteria)
	if err != nil {
		return nil, err
	}
	fields := criteria.Fields
	if fields == 0 {
		fields = FieldAll
	}

	var matched []domain.Asset
	for _, asset := range s.store.Load(ctx, s.path).All() {
		if !asset.IsVisibleInList() {
			continue
		}
		if matchesFields(asset, fields, match) {
			matched = append(matched, asset)
		}
	}

	sortAssets(matched, sorts)
	return newResult(matched, criteria.Query, time.Since(start)), nil
}

// SearchAdvanced evaluates independent sub-conditions combined with
// AND (default) or OR.
func (s *SearchService) SearchAdvanced(ctx context.Context, criteria AdvancedCriteria, sorts ...SortSpec) (*SearchResult, error) {
	start := time.Now()

	predicates := buildPredicates(criteria)

	var matched []domain.Asset
	for _, asset := range s.store.Load(ctx, s.path).All() {
		if !asset.IsVisibleInList() {
			continue
		}
		if criteria.ExcludeGroups && asset.State.IsGroup {
			continue
		}
		if matchesPredicates(asset, predicates, criteria.MatchAny) {
			matched = append(matched, asset)
		}
	}

	sortAssets(matched, sorts)
	return newResult(matched, criteria.Name, time.Since(start)), nil
}

func newResult(assets []domain.Asset, query string, elapsed time.Duration) *SearchResult {
	ids := make([]domain.AssetID, len(assets))
	for i, asset := range assets {
		ids[i] = asset.ID
	}
	return &SearchResult{
		IDs:     ids,
		Total:   len(ids),
		Query:   query,
		Elapsed: elapsed,
	}
}

// compileTextMatcher returns the string predicate for a basic query:
// substring by default, full regexp when requested.
func compileTextMatcher(criteria BasicCriteria) (func(string) bool, error) {
	query := criteria.Query
	if query == "" {
		return func(string) bool { return true }, nil
	}

	if criteria.UseRegexp {
		pattern := query
		if !criteria.CaseSensitive {
			pattern = "(?i)" + pattern
		}
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("%w: bad search pattern %q: %v", domain.ErrInvalidArgument, query, err)
		}
		return re.MatchString, nil
	}

	if criteria.CaseSensitive {
		return func(text string) bool {
			return strings.Contains(text, query)
		}, nil
	}
	lowered := strings.ToLower(query)
	return func(text string) bool {
		return strings.Contains(strings.ToLower(text), lowered)
	}, nil
}

func matchesFields(asset domain.Asset, fields FieldMask, match func(string) bool) bool {
	if fields&FieldName != 0 && match(asset.Metadata.Name) {
		return true
	}
	if fields&FieldDescription != 0 && match(asset.Metadata.Description) {
		return true
	}
	if fields&FieldAuthor != 0 && match(asset.Metadata.AuthorName) {
		return true
	}
	if fields&FieldTags != 0 {
		for _, tag := range asset.Metadata.Tags {
			if match(tag) {
				return true
			}
		}
	}
	if fields&FieldPath != 0 && match(asset.FileInfo.FilePath) {
		return true
	}
	if fields&FieldType != 0 && match(asset.Metadata.AssetType) {
		return true
	}
	return false
}

// buildPredicates collects one predicate per populated sub-condition.
// Disabled ranges are not populated: they would trivially satisfy an OR.
func buildPredicates(criteria AdvancedCriteria) []func(domain.Asset) bool {
	var predicates []func(domain.Asset) bool

	if criteria.Name != "" {
		query := strings.ToLower(criteria.Name)
		predicates = append(predicates, func(a domain.Asset) bool {
			return strings.Contains(strings.ToLower(a.Metadata.Name), query)
		})
	}
	if criteria.Description != "" {
		query := strings.ToLower(criteria.Description)
		predicates = append(predicates, func(a domain.Asset) bool {
			return strings.Contains(strings.ToLower(a.Metadata.Description), query)
		})
	}
	if criteria.Author != "" {
		query := strings.ToLower(criteria.Author)
		predicates = append(predicates, func(a domain.Asset) bool {
			return strings.Contains(strings.ToLower(a.Metadata.AuthorName), query)
		})
	}

	if len(criteria.Tags) > 0 {
		tags := criteria.Tags
		all := criteria.TagsMatchAll
		predicates = append(predicates, func(a domain.Asset) bool {
			return matchesSet(tags, all, a.HasTag)
		})
	}
	if len(criteria.AssetTypes) > 0 {
		types := criteria.AssetTypes
		all := criteria.TypesMatchAll
		predicates = append(predicates, func(a domain.Asset) bool {
			return matchesSet(types, all, func(t string) bool {
				return a.Metadata.AssetType == t
			})
		})
	}

	if criteria.Created.Enabled {
		r := criteria.Created
		predicates = append(predicates, func(a domain.Asset) bool {
			return r.Matches(a.Metadata.CreatedDate)
		})
	}
	if criteria.Modified.Enabled {
		r := criteria.Modified
		predicates = append(predicates, func(a domain.Asset) bool {
			return r.Matches(a.Metadata.ModifiedDate)
		})
	}
	if criteria.Size.Enabled {
		r := criteria.Size
		predicates = append(predicates, func(a domain.Asset) bool {
			return r.Matches(a.FileInfo.FileSizeBytes)
		})
	}

	if criteria.FavoritesOnly {
		predicates = append(predicates, func(a domain.Asset) bool {
			return a.State.IsFavorite
		})
	}
	return predicates
}

func matchesPredicates(asset domain.Asset, predicates []func(domain.Asset) bool, matchAny bool) bool {
	if len(predicates) == 0 {
		return true
	}
	if matchAny {
		for _, p := range predicates {
			if p(asset) {
				return true
			}
		}
		return false
	}
	for _, p := range predicates {
		if !p(asset) {
			return false
		}
	}
	return true
}

// matchesSet applies the per-set AND/OR toggle: all requires every wanted
// value, any requires at least one.
func matchesSet(wanted []string, all bool, has func(string) bool) bool {
	if all {
		for _, w := range wanted {
			if !has(w) {
				return false
			}
		}
		return true
	}
	for _, w := range wanted {
		if has(w) {
			return true
		}
	}
	return false
}

// sortAssets orders by the primary spec, falls through to the secondary on
// ties, and keeps input order for full ties (stable sort).
func sortAssets(assets []domain.Asset, sorts []SortSpec) {
	if len(sorts) == 0 {
		return
	}
	sort.SliceStable(assets, func(i, j int) bool {
		for _, spec := range sorts {
			if cmp := compareAssets(assets[i], assets[j], spec); cmp != 0 {
				return cmp < 0
			}
		}
		return false
	})
}

func compareAssets(a, b domain.Asset, spec SortSpec) int {
	var cmp int
	switch spec.Criterion {
	case SortByCreated:
		cmp = a.Metadata.CreatedDate.Compare(b.Metadata.CreatedDate)
	case SortByModified:
		cmp = a.Metadata.ModifiedDate.Compare(b.Metadata.ModifiedDate)
	case SortBySize:
		switch {
		case a.FileInfo.FileSizeBytes < b.FileInfo.FileSizeBytes:
			cmp = -1
		case a.FileInfo.FileSizeBytes > b.FileInfo.FileSizeBytes:
			cmp = 1
		}
	case SortByAuthor:
		cmp = strings.Compare(strings.ToLower(a.Metadata.AuthorName), strings.ToLower(b.Metadata.AuthorName))
	case SortByType:
		cmp = strings.Compare(strings.ToLower(a.Metadata.AssetType), strings.ToLower(b.Metadata.AssetType))
	default:
		cmp = strings.Compare(strings.ToLower(a.Metadata.Name), strings.ToLower(b.Metadata.Name))
	}
	if spec.Direction == Descending {
		cmp = -cmp
	}
	return cmp
}
