package domain

import (
	"testing"
	"time"
)

func testAsset(t *testing.T, id AssetID, name string) Asset {
	t.Helper()
	asset, err := NewAsset(name, time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("NewAsset(%q): %v", name, err)
	}
	asset.ID = id
	return asset
}

func TestLibraryPutAndChildrenIndex(t *testing.T) {
	lib := NewLibrary()

	group := testAsset(t, "group-1", "Outfits").WithGroupFlag(true)
	hat := testAsset(t, "hat-1", "Hat").WithParent("group-1")
	boots := testAsset(t, "boots-1", "Boots").WithParent("group-1")

	lib.Put(group)
	lib.Put(hat)
	lib.Put(boots)

	children := lib.ChildrenOf("group-1")
	if len(children) != 2 {
		t.Fatalf("children = %v, want 2", children)
	}
	// Name order: Boots before Hat.
	if children[0] != "boots-1" || children[1] != "hat-1" {
		t.Errorf("children order = %v, want [boots-1 hat-1]", children)
	}

	// Reparenting through Put moves the index entry.
	lib.Put(testAsset(t, "group-2", "Winter").WithGroupFlag(true))
	lib.Put(hat.WithoutParent().WithParent("group-2"))

	if got := lib.ChildrenOf("group-1"); len(got) != 1 || got[0] != "boots-1" {
		t.Errorf("group-1 children after move = %v, want [boots-1]", got)
	}
	if got := lib.ChildrenOf("group-2"); len(got) != 1 || got[0] != "hat-1" {
		t.Errorf("group-2 children after move = %v, want [hat-1]", got)
	}
}

func TestLibraryRemove(t *testing.T) {
	lib := NewLibrary()
	lib.Put(testAsset(t, "group-1", "Outfits").WithGroupFlag(true))
	lib.Put(testAsset(t, "hat-1", "Hat").WithParent("group-1"))

	lib.Remove("hat-1")

	if lib.Has("hat-1") {
		t.Error("removed asset still present")
	}
	if got := lib.ChildrenOf("group-1"); len(got) != 0 {
		t.Errorf("children after remove = %v, want none", got)
	}

	// Removing an unknown id is a no-op.
	lib.Remove("missing")
	if lib.Count() != 1 {
		t.Errorf("count = %d, want 1", lib.Count())
	}
}

func TestLibraryAllOrdering(t *testing.T) {
	lib := NewLibrary()
	lib.Put(testAsset(t, "b", "zebra"))
	lib.Put(testAsset(t, "a", "Apple"))
	lib.Put(testAsset(t, "c", "apple"))

	all := lib.All()
	if len(all) != 3 {
		t.Fatalf("len = %d, want 3", len(all))
	}
	// Case-insensitive name order, id tie-break.
	if all[0].ID != "a" || all[1].ID != "c" || all[2].ID != "b" {
		t.Errorf("order = [%s %s %s], want [a c b]", all[0].ID, all[1].ID, all[2].ID)
	}
}

func TestRebuildIndex(t *testing.T) {
	lib := NewLibrary()
	// Simulate a freshly unmarshaled document: ids only in map keys,
	// no index, stale ChildAssetIDs, one dangling parent.
	group := testAsset(t, "", "Outfits").WithGroupFlag(true)
	hat := testAsset(t, "", "Hat")
	hat.ParentGroupID = "group-1"
	orphan := testAsset(t, "", "Orphan")
	orphan.ParentGroupID = "no-such-group"
	group.ChildAssetIDs = []AssetID{"bogus"}

	lib.Assets["group-1"] = group
	lib.Assets["hat-1"] = hat
	lib.Assets["orphan-1"] = orphan

	lib.RebuildIndex()

	if got, _ := lib.Get("hat-1"); got.ID != "hat-1" {
		t.Errorf("id not filled from map key: %q", got.ID)
	}
	if got := lib.ChildrenOf("group-1"); len(got) != 1 || got[0] != "hat-1" {
		t.Errorf("children = %v, want [hat-1]", got)
	}
	repaired, _ := lib.Get("orphan-1")
	if !repaired.ParentGroupID.IsZero() {
		t.Errorf("dangling parent not repaired: %q", repaired.ParentGroupID)
	}
}

func TestNormalize(t *testing.T) {
	lib := NewLibrary()
	lib.Put(testAsset(t, "group-1", "Outfits").WithGroupFlag(true))
	lib.Put(testAsset(t, "hat-1", "Hat").WithParent("group-1"))
	lib.Put(testAsset(t, "boots-1", "Boots").WithParent("group-1"))
	lib.RegisterTag("winter")
	lib.RegisterTag("cute")

	lib.Normalize()

	group, _ := lib.Get("group-1")
	if len(group.ChildAssetIDs) != 2 || group.ChildAssetIDs[0] != "boots-1" {
		t.Errorf("ChildAssetIDs = %v, want [boots-1 hat-1]", group.ChildAssetIDs)
	}
	hat, _ := lib.Get("hat-1")
	if len(hat.ChildAssetIDs) != 0 {
		t.Errorf("leaf ChildAssetIDs = %v, want empty", hat.ChildAssetIDs)
	}
	if lib.Tags[0] != "cute" || lib.Tags[1] != "winter" {
		t.Errorf("tags not sorted: %v", lib.Tags)
	}
}

func TestRegisterTagDedup(t *testing.T) {
	lib := NewLibrary()
	lib.RegisterTag("cute")
	lib.RegisterTag("cute")
	lib.RegisterTag("  cute  ")
	lib.RegisterTag("Cute")
	lib.RegisterTag("")

	if len(lib.Tags) != 2 {
		t.Errorf("tags = %v, want [cute Cute]", lib.Tags)
	}
}

func TestLibraryClone(t *testing.T) {
	lib := NewLibrary()
	lib.Put(testAsset(t, "group-1", "Outfits").WithGroupFlag(true))
	lib.Put(testAsset(t, "hat-1", "Hat").WithParent("group-1"))

	snapshot := lib.Clone()
	lib.Remove("hat-1")
	lib.RegisterTag("new-tag")

	if !snapshot.Has("hat-1") {
		t.Error("clone affected by removal from the source")
	}
	if got := snapshot.ChildrenOf("group-1"); len(got) != 1 {
		t.Errorf("clone children = %v, want [hat-1]", got)
	}
	for _, tag := range snapshot.Tags {
		if tag == "new-tag" {
			t.Error("clone shares the tag registry with the source")
		}
	}
}
