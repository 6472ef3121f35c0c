package domain

import (
	"strings"
	"testing"
	"time"
)

func TestNewAsset(t *testing.T) {
	now := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		assetName   string
		expectError bool
	}{
		{"valid name", "Fluffy Hat", false},
		{"empty name", "", true},
		{"whitespace only", "   ", true},
		{"name at limit", strings.Repeat("a", MaxNameLength), false},
		{"name over limit", strings.Repeat("a", MaxNameLength+1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			asset, err := NewAsset(tt.assetName, now)
			if tt.expectError {
				if err == nil {
					t.Errorf("expected error for name %q, got nil", tt.assetName)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if asset.ID.IsZero() {
				t.Error("expected a generated id")
			}
			if !asset.Metadata.CreatedDate.Equal(now) || !asset.Metadata.ModifiedDate.Equal(now) {
				t.Error("expected both timestamps set to now")
			}
		})
	}
}

func TestAssetDeriveDoesNotMutateOriginal(t *testing.T) {
	now := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)
	original, _ := NewAsset("Hat", now)
	original = original.WithAddedTags(now, "cute")

	later := now.Add(time.Hour)
	derived := original.WithName("Better Hat", later)
	derived = derived.WithAddedTags(later, "winter")

	if original.Metadata.Name != "Hat" {
		t.Errorf("original name changed: %q", original.Metadata.Name)
	}
	if len(original.Metadata.Tags) != 1 {
		t.Errorf("original tags changed: %v", original.Metadata.Tags)
	}
	if !original.Metadata.ModifiedDate.Equal(now) {
		t.Error("original modified date changed")
	}
	if derived.Metadata.Name != "Better Hat" || len(derived.Metadata.Tags) != 2 {
		t.Errorf("derived asset incomplete: %q %v", derived.Metadata.Name, derived.Metadata.Tags)
	}
	if !derived.Metadata.ModifiedDate.Equal(later) {
		t.Error("derived modified date not refreshed")
	}
	if derived.ID != original.ID {
		t.Error("derive must keep the id")
	}
}

func TestWithAddedTags(t *testing.T) {
	now := time.Now()
	asset, _ := NewAsset("Hat", now)

	tests := []struct {
		name     string
		existing []string
		added    []string
		expected []string
	}{
		{"adds new tags", nil, []string{"cute", "winter"}, []string{"cute", "winter"}},
		{"dedupes exact matches", []string{"cute"}, []string{"cute", "winter"}, []string{"cute", "winter"}},
		{"case-sensitive, Cute is distinct", []string{"cute"}, []string{"Cute"}, []string{"cute", "Cute"}},
		{"trims whitespace", nil, []string{"  cute  "}, []string{"cute"}},
		{"drops blank entries", nil, []string{"", "  ", "cute"}, []string{"cute"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := asset.WithAddedTags(now, tt.existing...)
			a = a.WithAddedTags(now, tt.added...)
			if len(a.Metadata.Tags) != len(tt.expected) {
				t.Fatalf("tags = %v, want %v", a.Metadata.Tags, tt.expected)
			}
			for i, tag := range tt.expected {
				if a.Metadata.Tags[i] != tag {
					t.Errorf("tags[%d] = %q, want %q", i, a.Metadata.Tags[i], tag)
				}
			}
		})
	}
}

func TestWithRemovedTags(t *testing.T) {
	now := time.Now()
	asset, _ := NewAsset("Hat", now)
	asset = asset.WithAddedTags(now, "cute", "winter", "leather")

	asset = asset.WithRemovedTags(now, "winter", "missing")

	if len(asset.Metadata.Tags) != 2 {
		t.Fatalf("tags = %v, want 2 entries", asset.Metadata.Tags)
	}
	if asset.HasTag("winter") {
		t.Error("winter should be removed")
	}
	if !asset.HasTag("cute") || !asset.HasTag("leather") {
		t.Error("unrelated tags must survive removal")
	}
}

func TestHasTagIsCaseSensitive(t *testing.T) {
	now := time.Now()
	asset, _ := NewAsset("Hat", now)
	asset = asset.WithAddedTags(now, "Cute")

	if !asset.HasTag("Cute") {
		t.Error("expected exact match to hit")
	}
	if asset.HasTag("cute") {
		t.Error("tag matching must be case-sensitive")
	}
}

func TestIsVisibleInList(t *testing.T) {
	now := time.Now()
	asset, _ := NewAsset("Hat", now)

	if !asset.IsVisibleInList() {
		t.Error("top-level asset must be visible")
	}

	grouped := asset.WithParent("group-1")
	if grouped.IsVisibleInList() {
		t.Error("grouped asset must be hidden from flat listings")
	}

	released := grouped.WithoutParent()
	if !released.IsVisibleInList() {
		t.Error("asset released from its group must be visible again")
	}
}

func TestWithBoothItem(t *testing.T) {
	now := time.Now()
	asset, _ := NewAsset("Hat", now)

	item := &BoothItem{ItemURL: "https://example.booth.pm/items/123", ItemTitle: "Hat"}
	withItem := asset.WithBoothItem(item)
	if withItem.BoothItem == nil || withItem.BoothItem.ItemTitle != "Hat" {
		t.Fatal("booth item not attached")
	}

	// The stored item is a copy; mutating the caller's value must not
	// leak into the asset.
	item.ItemTitle = "changed"
	if withItem.BoothItem.ItemTitle != "Hat" {
		t.Error("booth item aliases caller memory")
	}

	cleared := withItem.WithBoothItem(nil)
	if cleared.BoothItem != nil {
		t.Error("nil must clear provenance")
	}
	if withItem.BoothItem == nil {
		t.Error("clearing a derived copy must not affect the source")
	}
}

func TestWithFileInfo(t *testing.T) {
	now := time.Now()
	asset, _ := NewAsset("Hat", now)

	later := now.Add(time.Minute)
	updated := asset.WithFileInfo(FileInfo{FilePath: "/files/hat.zip", FileSizeBytes: 2048}, later)

	if updated.FileInfo.FilePath != "/files/hat.zip" || updated.FileInfo.FileSizeBytes != 2048 {
		t.Errorf("file info not applied: %+v", updated.FileInfo)
	}
	if !updated.Metadata.ModifiedDate.Equal(later) {
		t.Error("modified date must refresh on file info change")
	}
	if asset.FileInfo.FilePath != "" {
		t.Error("original must be unchanged")
	}
}
