package services

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/kamal-hamza/ax-cli/internal/core/domain"
	"github.com/kamal-hamza/ax-cli/internal/core/ports"
)

// Validation ceilings. Crossing one produces a finding, never an error.
const (
	nameWarnLength        = 100
	descriptionWarnLength = 1000
	authorWarnLength      = 100

	// largeFileThreshold marks assets whose source file is big enough to
	// slow imports and thumbnailing. Advisory only.
	largeFileThreshold = int64(1) << 30
)

// ValidationService produces leveled, per-field findings over assets
// without mutating anything. Validators always return a (possibly empty)
// report; an empty report means fully valid. Used for import sanity checks
// and whole-library audits, not as a gate on every mutation.
type ValidationService struct {
	fs    ports.FileSystem
	clock ports.Clock
}

// NewValidationService creates a validation service. The file system
// dependency backs the referenced-file-exists check.
func NewValidationService(fs ports.FileSystem, clock ports.Clock) *ValidationService {
	return &ValidationService{fs: fs, clock: clock}
}

// ValidateAsset runs every per-asset check. The library parameter feeds
// the parent-chain check; pass the snapshot the asset came from.
func (s *ValidationService) ValidateAsset(lib *domain.Library, asset domain.Asset) domain.Findings {
	var findings domain.Findings
	findings = append(findings, s.checkIdentity(asset)...)
	findings = append(findings, s.checkMetadata(asset)...)
	findings = append(findings, s.checkFileInfo(asset)...)
	findings = append(findings, s.checkAssetType(asset)...)
	findings = append(findings, s.checkGroup(lib, asset)...)
	findings = append(findings, s.checkBoothItem(asset)...)
	return findings
}

// ValidateLibrary audits every asset and adds library-wide checks:
// case-insensitive duplicate names are tolerated but flagged.
func (s *ValidationService) ValidateLibrary(lib *domain.Library) domain.Findings {
	var findings domain.Findings
	seen := make(map[string]domain.AssetID)
	for _, asset := range lib.All() {
		findings = append(findings, s.ValidateAsset(lib, asset)...)

		key := strings.ToLower(strings.TrimSpace(asset.Metadata.Name))
		if key == "" {
			continue
		}
		if firstID, dup := seen[key]; dup {
			findings = append(findings, domain.Finding{
				AssetID: asset.ID,
				Field:   "metadata.name",
				Level:   domain.LevelWarning,
				Message: fmt.Sprintf("duplicate name %q (also used by %s)", asset.Metadata.Name, firstID),
			})
		} else {
			seen[key] = asset.ID
		}
	}
	return findings
}

func (s *ValidationService) checkIdentity(asset domain.Asset) domain.Findings {
	var findings domain.Findings
	if asset.ID.IsZero() {
		findings = append(findings, domain.Finding{
			AssetID: asset.ID,
			Field:   "id",
			Level:   domain.LevelCritical,
			Message: "asset has no id",
		})
		return findings
	}
	if _, err := domain.ParseAssetID(asset.ID.String()); err != nil {
		findings = append(findings, domain.Finding{
			AssetID: asset.ID,
			Field:   "id",
			Level:   domain.LevelError,
			Message: "malformed asset id",
		})
	}
	return findings
}

func (s *ValidationService) checkMetadata(asset domain.Asset) domain.Findings {
	var findings domain.Findings
	meta := asset.Metadata
	id := asset.ID

	if strings.TrimSpace(meta.Name) == "" {
		findings = append(findings, domain.Finding{
			AssetID: id, Field: "metadata.name", Level: domain.LevelError,
			Message: "name is empty",
		})
	} else if len(meta.Name) > nameWarnLength {
		findings = append(findings, domain.Finding{
			AssetID: id, Field: "metadata.name", Level: domain.LevelWarning,
			Message: fmt.Sprintf("name longer than %d characters", nameWarnLength),
		})
	}

	if len(meta.Description) > descriptionWarnLength {
		findings = append(findings, domain.Finding{
			AssetID: id, Field: "metadata.description", Level: domain.LevelWarning,
			Message: fmt.Sprintf("description longer than %d characters", descriptionWarnLength),
		})
	}

	if strings.TrimSpace(meta.AuthorName) == "" {
		findings = append(findings, domain.Finding{
			AssetID: id, Field: "metadata.authorName", Level: domain.LevelInfo,
			Message: "author name is empty",
		})
	} else if len(meta.AuthorName) > authorWarnLength {
		findings = append(findings, domain.Finding{
			AssetID: id, Field: "metadata.authorName", Level: domain.LevelWarning,
			Message: fmt.Sprintf("author name longer than %d characters", authorWarnLength),
		})
	}

	for _, tag := range meta.Tags {
		if strings.TrimSpace(tag) == "" {
			findings = append(findings, domain.Finding{
				AssetID: id, Field: "metadata.tags", Level: domain.LevelWarning,
				Message: "blank tag entry",
			})
			break
		}
	}
	for _, dep := range meta.Dependencies {
		if strings.TrimSpace(dep) == "" {
			findings = append(findings, domain.Finding{
				AssetID: id, Field: "metadata.dependencies", Level: domain.LevelWarning,
				Message: "blank dependency entry",
			})
			break
		}
	}

	now := s.clock.Now()
	if meta.CreatedDate.After(now) {
		findings = append(findings, domain.Finding{
			AssetID: id, Field: "metadata.createdDate", Level: domain.LevelWarning,
			Message: "created date is in the future",
		})
	}
	if !meta.ModifiedDate.IsZero() && meta.ModifiedDate.Before(meta.CreatedDate) {
		findings = append(findings, domain.Finding{
			AssetID: id, Field: "metadata.modifiedDate", Level: domain.LevelError,
			Message: "modified date is before created date",
		})
	}
	return findings
}

func (s *ValidationService) checkFileInfo(asset domain.Asset) domain.Findings {
	var findings domain.Findings
	info := asset.FileInfo
	id := asset.ID

	// Groups are containers; they have no source file of their own.
	if asset.State.IsGroup && info.FilePath == "" {
		return nil
	}

	if strings.TrimSpace(info.FilePath) == "" {
		findings = append(findings, domain.Finding{
			AssetID: id, Field: "fileInfo.filePath", Level: domain.LevelCritical,
			Message: "file path is empty",
		})
		return findings
	}

	if _, err := s.fs.Stat(info.FilePath); err != nil {
		findings = append(findings, domain.Finding{
			AssetID: id, Field: "fileInfo.filePath", Level: domain.LevelError,
			Message: fmt.Sprintf("referenced file does not exist: %s", info.FilePath),
		})
	}

	if info.FileSizeBytes <= 0 {
		findings = append(findings, domain.Finding{
			AssetID: id, Field: "fileInfo.fileSizeBytes", Level: domain.LevelWarning,
			Message: "file size is zero or negative",
		})
	} else if info.FileSizeBytes > largeFileThreshold {
		findings = append(findings, domain.Finding{
			AssetID: id, Field: "fileInfo.fileSizeBytes", Level: domain.LevelWarning,
			Message: "file is very large; imports and previews may be slow",
		})
	}
	return findings
}

func (s *ValidationService) checkAssetType(asset domain.Asset) domain.Findings {
	if strings.TrimSpace(asset.Metadata.AssetType) != "" {
		return nil
	}
	return domain.Findings{{
		AssetID: asset.ID, Field: "metadata.assetType", Level: domain.LevelWarning,
		Message: "asset type is empty",
	}}
}

// checkGroup re-verifies acyclicity along the parent chain, capped at
// maxHierarchyDepth hops before declaring the data likely circular.
func (s *ValidationService) checkGroup(lib *domain.Library, asset domain.Asset) domain.Findings {
	var findings domain.Findings
	id := asset.ID

	hops := 0
	current := asset.ParentGroupID
	for !current.IsZero() {
		hops++
		if current == id || hops >= maxHierarchyDepth {
			findings = append(findings, domain.Finding{
				AssetID: id, Field: "parentGroupId", Level: domain.LevelCritical,
				Message: "parent chain is likely circular",
			})
			break
		}
		parent, ok := lib.Get(current)
		if !ok {
			findings = append(findings, domain.Finding{
				AssetID: id, Field: "parentGroupId", Level: domain.LevelError,
				Message: fmt.Sprintf("parent group %s does not exist", current),
			})
			break
		}
		current = parent.ParentGroupID
	}

	if asset.State.IsGroup && asset.ParentGroupID.IsZero() && strings.TrimSpace(asset.Metadata.Name) == "" {
		findings = append(findings, domain.Finding{
			AssetID: id, Field: "metadata.name", Level: domain.LevelWarning,
			Message: "top-level group has no name",
		})
	}
	return findings
}

func (s *ValidationService) checkBoothItem(asset domain.Asset) domain.Findings {
	item := asset.BoothItem
	if item == nil {
		return nil
	}
	var findings domain.Findings
	id := asset.ID

	if strings.TrimSpace(item.ItemURL) == "" {
		findings = append(findings, domain.Finding{
			AssetID: id, Field: "boothItem.itemUrl", Level: domain.LevelWarning,
			Message: "marketplace item has no source URL",
		})
	} else if parsed, err := url.Parse(item.ItemURL); err != nil || parsed.Scheme == "" || parsed.Host == "" {
		findings = append(findings, domain.Finding{
			AssetID: id, Field: "boothItem.itemUrl", Level: domain.LevelError,
			Message: fmt.Sprintf("malformed source URL: %s", item.ItemURL),
		})
	}

	if strings.TrimSpace(item.FileName) == "" {
		findings = append(findings, domain.Finding{
			AssetID: id, Field: "boothItem.fileName", Level: domain.LevelWarning,
			Message: "marketplace item has no file name",
		})
	}
	return findings
}
