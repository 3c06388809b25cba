package core

import "testing"

func testPickerItems() []PickerItem {
	return []PickerItem{
		{ID: "identity", Label: "Identity Core", Section: "vault"},
		{ID: "vault", Label: "Encrypted Vault", Section: "vault"},
		{ID: "decompiler", Label: "Decompiler", Section: "toolkit"},
		{ID: "capture", Label: "Proto Capture", Section: "toolkit"},
	}
}

func TestPickerFiltersAndKeepsSectionOrder(t *testing.T) {
	p := NewPicker("Go to", testPickerItems())
	p.HandleKey("t")
	items := p.Items()
	if len(items) != 3 {
		t.Fatalf("expected 3 matches for %q, got %+v", p.Query(), items)
	}
	if items[0].Section != "vault" || items[len(items)-1].Section != "toolkit" {
		t.Fatalf("sections reordered: %+v", items)
	}
	p.HandleKey("backspace")
	if len(p.Items()) != 4 {
		t.Fatalf("clearing the query should restore all items")
	}
}

func TestPickerCursorAndSelection(t *testing.T) {
	p := NewPicker("Go to", testPickerItems())
	if res := p.HandleKey("up"); res.Action != PickerActionNone {
		t.Fatalf("cursor at top should not move")
	}
	p.HandleKey("down")
	p.HandleKey("ctrl+n")
	res := p.HandleKey("enter")
	if res.Action != PickerActionSelected || res.Item.ID != "decompiler" {
		t.Fatalf("unexpected selection %+v", res)
	}
	if res := p.HandleKey("esc"); res.Action != PickerActionCancelled {
		t.Fatalf("esc should cancel")
	}
}

func TestPickerLettersFilterInsteadOfMoving(t *testing.T) {
	p := NewPicker("Go to", testPickerItems())
	if res := p.HandleKey("j"); res.Action != PickerActionNone || p.Query() != "j" {
		t.Fatalf("j should extend the query, got %q", p.Query())
	}
	if len(p.Items()) != 0 {
		t.Fatalf("no module title contains j")
	}
}

func TestPickerMoveToAndEmptySelection(t *testing.T) {
	p := NewPicker("Go to", testPickerItems())
	p.MoveTo("capture")
	if item, ok := p.CurrentItem(); !ok || item.ID != "capture" {
		t.Fatalf("MoveTo failed: %+v", item)
	}
	p.SetQuery("zzz")
	if res := p.HandleKey("enter"); res.Action != PickerActionNone {
		t.Fatalf("enter on empty list should do nothing")
	}
}

func TestFuzzyMatchScorePrefersPrefix(t *testing.T) {
	_, prefix := fuzzyMatchScore("vault", "va")
	_, inner := fuzzyMatchScore("encrypted vault", "va")
	if prefix <= inner {
		t.Fatalf("prefix score %d should beat inner %d", prefix, inner)
	}
	if ok, _ := fuzzyMatchScore("vault", "xv"); ok {
		t.Fatalf("non-subsequence should not match")
	}
}
