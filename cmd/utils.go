package cmd

import (
	"context"
	"fmt"
	"path/filepath"

	fuzzyfinder "github.com/ktr0731/go-fuzzyfinder"

	"github.com/kamal-hamza/ax-cli/internal/core/domain"
	"github.com/kamal-hamza/ax-cli/internal/core/services"
)

// parseSortSpec maps a config/flag sort name to a search sort spec.
func parseSortSpec(name string, reverse bool) services.SortSpec {
	spec := services.SortSpec{Criterion: services.SortByName}
	switch name {
	case "created":
		spec.Criterion = services.SortByCreated
	case "modified":
		spec.Criterion = services.SortByModified
	case "size":
		spec.Criterion = services.SortBySize
	case "author":
		spec.Criterion = services.SortByAuthor
	case "type":
		spec.Criterion = services.SortByType
	}
	if reverse {
		spec.Direction = services.Descending
	}
	return spec
}

// formatSize renders a byte count for humans.
func formatSize(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

// parentDir returns the directory containing a file path.
func parentDir(path string) string {
	return filepath.Dir(path)
}

// resolveAsset finds one asset from a query string. An empty query opens
// the fuzzy finder; an exact id wins; otherwise the best text match is
// used.
func resolveAsset(ctx context.Context, query string) (domain.Asset, error) {
	if query == "" {
		return pickAsset(catalogService.GetAll(ctx))
	}

	if id, err := domain.ParseAssetID(query); err == nil {
		if asset, err := catalogService.Get(ctx, id); err == nil {
			return asset, nil
		}
	}

	matches := catalogService.FindByText(ctx, query)
	switch len(matches) {
	case 0:
		return domain.Asset{}, fmt.Errorf("no assets found matching: %s", query)
	case 1:
		return matches[0], nil
	default:
		return pickAsset(matches)
	}
}

// pickAsset opens an interactive fuzzy finder over the given assets.
func pickAsset(assets []domain.Asset) (domain.Asset, error) {
	if len(assets) == 0 {
		return domain.Asset{}, fmt.Errorf("library is empty")
	}

	idx, err := fuzzyfinder.Find(
		assets,
		func(i int) string { return assets[i].Metadata.Name },
		fuzzyfinder.WithPreviewWindow(func(i, w, h int) string {
			if i == -1 {
				return ""
			}
			a := assets[i]
			return fmt.Sprintf("Name: %s\nType: %s\nAuthor: %s\nTags: %v\n\n%s",
				a.Metadata.Name, a.Metadata.AssetType, a.Metadata.AuthorName,
				a.Metadata.Tags, a.Metadata.Description)
		}),
	)
	if err != nil {
		return domain.Asset{}, fmt.Errorf("selection cancelled")
	}
	return assets[idx], nil
}
