package services

import (
	"strings"
	"testing"
	"time"

	"github.com/kamal-hamza/ax-cli/internal/core/domain"
	"github.com/kamal-hamza/ax-cli/internal/core/ports/mocks"
)

func newValidationFixture(t *testing.T) (*ValidationService, *mocks.MockFileSystem, *mocks.MockClock) {
	t.Helper()
	fs := mocks.NewMockFileSystem()
	clock := mocks.NewMockClock(time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC))
	return NewValidationService(fs, clock), fs, clock
}

// validAsset builds an asset that passes every check: real file, author,
// type, sane dates.
func validAsset(t *testing.T, fs *mocks.MockFileSystem) domain.Asset {
	t.Helper()
	fs.Seed("/files/hat.zip", []byte("zip"), time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	created := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	asset := makeAsset(t, "hat-1", "Fluffy Hat")
	asset = asset.WithAuthor("HatSmith", created)
	asset = asset.WithAssetType("Accessory", created)
	asset = asset.WithFileInfo(domain.FileInfo{FilePath: "/files/hat.zip", FileSizeBytes: 2048}, created)
	return asset
}

func hasFinding(findings domain.Findings, field string, level domain.Level) bool {
	for _, f := range findings {
		if f.Field == field && f.Level == level {
			return true
		}
	}
	return false
}

func TestValidateAssetClean(t *testing.T) {
	svc, fs, _ := newValidationFixture(t)
	lib := domain.NewLibrary()
	asset := validAsset(t, fs)
	lib.Put(asset)

	if findings := svc.ValidateAsset(lib, asset); len(findings) != 0 {
		t.Errorf("clean asset produced findings: %v", findings)
	}
}

func TestValidateAssetFieldChecks(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*testing.T, *mocks.MockFileSystem, domain.Asset) domain.Asset
		wantField string
		wantLevel domain.Level
	}{
		{
			name: "missing id is critical",
			mutate: func(t *testing.T, fs *mocks.MockFileSystem, a domain.Asset) domain.Asset {
				a.ID = ""
				return a
			},
			wantField: "id", wantLevel: domain.LevelCritical,
		},
		{
			name: "empty name is an error",
			mutate: func(t *testing.T, fs *mocks.MockFileSystem, a domain.Asset) domain.Asset {
				a.Metadata.Name = "  "
				return a
			},
			wantField: "metadata.name", wantLevel: domain.LevelError,
		},
		{
			name: "very long name is a warning",
			mutate: func(t *testing.T, fs *mocks.MockFileSystem, a domain.Asset) domain.Asset {
				a.Metadata.Name = strings.Repeat("x", 150)
				return a
			},
			wantField: "metadata.name", wantLevel: domain.LevelWarning,
		},
		{
			name: "very long description is a warning",
			mutate: func(t *testing.T, fs *mocks.MockFileSystem, a domain.Asset) domain.Asset {
				return a.WithDescription(strings.Repeat("x", 1200), a.Metadata.ModifiedDate)
			},
			wantField: "metadata.description", wantLevel: domain.LevelWarning,
		},
		{
			name: "empty author is informational",
			mutate: func(t *testing.T, fs *mocks.MockFileSystem, a domain.Asset) domain.Asset {
				a.Metadata.AuthorName = ""
				return a
			},
			wantField: "metadata.authorName", wantLevel: domain.LevelInfo,
		},
		{
			name: "blank tag entry is a warning",
			mutate: func(t *testing.T, fs *mocks.MockFileSystem, a domain.Asset) domain.Asset {
				a.Metadata.Tags = []string{"cute", "  "}
				return a
			},
			wantField: "metadata.tags", wantLevel: domain.LevelWarning,
		},
		{
			name: "future created date is a warning",
			mutate: func(t *testing.T, fs *mocks.MockFileSystem, a domain.Asset) domain.Asset {
				a.Metadata.CreatedDate = time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
				a.Metadata.ModifiedDate = a.Metadata.CreatedDate
				return a
			},
			wantField: "metadata.createdDate", wantLevel: domain.LevelWarning,
		},
		{
			name: "modified before created is an error",
			mutate: func(t *testing.T, fs *mocks.MockFileSystem, a domain.Asset) domain.Asset {
				a.Metadata.ModifiedDate = a.Metadata.CreatedDate.Add(-time.Hour)
				return a
			},
			wantField: "metadata.modifiedDate", wantLevel: domain.LevelError,
		},
		{
			name: "empty file path is critical",
			mutate: func(t *testing.T, fs *mocks.MockFileSystem, a domain.Asset) domain.Asset {
				a.FileInfo.FilePath = ""
				return a
			},
			wantField: "fileInfo.filePath", wantLevel: domain.LevelCritical,
		},
		{
			name: "missing file is an error",
			mutate: func(t *testing.T, fs *mocks.MockFileSystem, a domain.Asset) domain.Asset {
				a.FileInfo.FilePath = "/files/deleted.zip"
				return a
			},
			wantField: "fileInfo.filePath", wantLevel: domain.LevelError,
		},
		{
			name: "zero size is a warning",
			mutate: func(t *testing.T, fs *mocks.MockFileSystem, a domain.Asset) domain.Asset {
				a.FileInfo.FileSizeBytes = 0
				return a
			},
			wantField: "fileInfo.fileSizeBytes", wantLevel: domain.LevelWarning,
		},
		{
			name: "huge file is a warning",
			mutate: func(t *testing.T, fs *mocks.MockFileSystem, a domain.Asset) domain.Asset {
				a.FileInfo.FileSizeBytes = 2 << 30
				return a
			},
			wantField: "fileInfo.fileSizeBytes", wantLevel: domain.LevelWarning,
		},
		{
			name: "empty asset type is a warning",
			mutate: func(t *testing.T, fs *mocks.MockFileSystem, a domain.Asset) domain.Asset {
				a.Metadata.AssetType = ""
				return a
			},
			wantField: "metadata.assetType", wantLevel: domain.LevelWarning,
		},
		{
			name: "marketplace item without URL is a warning",
			mutate: func(t *testing.T, fs *mocks.MockFileSystem, a domain.Asset) domain.Asset {
				return a.WithBoothItem(&domain.BoothItem{FileName: "hat.zip"})
			},
			wantField: "boothItem.itemUrl", wantLevel: domain.LevelWarning,
		},
		{
			name: "malformed marketplace URL is an error",
			mutate: func(t *testing.T, fs *mocks.MockFileSystem, a domain.Asset) domain.Asset {
				return a.WithBoothItem(&domain.BoothItem{ItemURL: "not a url", FileName: "hat.zip"})
			},
			wantField: "boothItem.itemUrl", wantLevel: domain.LevelError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, fs, _ := newValidationFixture(t)
			lib := domain.NewLibrary()
			asset := tt.mutate(t, fs, validAsset(t, fs))
			lib.Put(asset)

			findings := svc.ValidateAsset(lib, asset)
			if !hasFinding(findings, tt.wantField, tt.wantLevel) {
				t.Errorf("findings = %v, want %s at %s", findings, tt.wantField, tt.wantLevel)
			}
		})
	}
}

func TestValidateGroupSkipsFileChecks(t *testing.T) {
	svc, _, _ := newValidationFixture(t)
	lib := domain.NewLibrary()

	group := makeAsset(t, "group-1", "Outfits").WithGroupFlag(true)
	group = group.WithAuthor("Curator", group.Metadata.CreatedDate)
	group = group.WithAssetType("Group", group.Metadata.CreatedDate)
	lib.Put(group)

	findings := svc.ValidateAsset(lib, group)
	if hasFinding(findings, "fileInfo.filePath", domain.LevelCritical) {
		t.Errorf("group without a file must not be flagged: %v", findings)
	}
}

func TestValidateDanglingParent(t *testing.T) {
	svc, fs, _ := newValidationFixture(t)
	lib := domain.NewLibrary()

	asset := validAsset(t, fs)
	asset.ParentGroupID = "no-such-group"
	// Bypass Put so the dangling reference survives into validation.
	lib.Assets[asset.ID] = asset

	findings := svc.ValidateAsset(lib, asset)
	if !hasFinding(findings, "parentGroupId", domain.LevelError) {
		t.Errorf("findings = %v, want parentGroupId error", findings)
	}
}

func TestValidateCircularParentChain(t *testing.T) {
	svc, fs, _ := newValidationFixture(t)
	lib := domain.NewLibrary()

	a := validAsset(t, fs)
	a.ID = "a"
	a.ParentGroupID = "b"
	b := validAsset(t, fs)
	b.ID = "b"
	b.ParentGroupID = "a"
	lib.Assets["a"] = a
	lib.Assets["b"] = b

	findings := svc.ValidateAsset(lib, a)
	if !hasFinding(findings, "parentGroupId", domain.LevelCritical) {
		t.Errorf("findings = %v, want circular-chain critical", findings)
	}
}

func TestValidateLibraryDuplicateNames(t *testing.T) {
	svc, fs, _ := newValidationFixture(t)
	lib := domain.NewLibrary()

	first := validAsset(t, fs)
	first.ID = "hat-1"
	second := validAsset(t, fs)
	second.ID = "hat-2"
	second.Metadata.Name = "fluffy hat" // differs only in case
	lib.Put(first)
	lib.Put(second)

	findings := svc.ValidateLibrary(lib)
	if !hasFinding(findings, "metadata.name", domain.LevelWarning) {
		t.Errorf("findings = %v, want duplicate-name warning", findings)
	}
}
