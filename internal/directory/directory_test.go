package directory

import (
	"sort"
	"testing"
	"time"
)

func TestSeededEntries(t *testing.T) {
	d := Seeded()
	entries := d.List()
	if len(entries) != 3 {
		t.Fatalf("len = %d, want 3", len(entries))
	}
	if _, ok := d.Find("admin@storefront.local"); !ok {
		t.Fatal("seeded admin missing")
	}
}

func TestFindIsCaseInsensitive(t *testing.T) {
	d := Seeded()
	e, ok := d.Find("ADMIN@Storefront.LOCAL")
	if !ok {
		t.Fatal("case-insensitive lookup failed")
	}
	if e.Role != "ADMIN" {
		t.Fatalf("role = %s, want ADMIN", e.Role)
	}
}

func TestAddReplacesByEmail(t *testing.T) {
	d := Seeded()
	d.Add(Entry{Email: "Demo@storefront.local", Name: "Renamed", Role: "USER", JoinedAt: time.Now().UTC()})

	entries := d.List()
	if len(entries) != 3 {
		t.Fatalf("len = %d after replace, want 3", len(entries))
	}
	e, _ := d.Find("demo@storefront.local")
	if e.Name != "Renamed" {
		t.Fatalf("name = %s, want Renamed", e.Name)
	}

	d.Add(Entry{Email: "new@storefront.local", Name: "Anna", Role: "USER"})
	if got := len(d.List()); got != 4 {
		t.Fatalf("len = %d after add, want 4", got)
	}
}

func TestListSortedAndCopied(t *testing.T) {
	d := Seeded()
	entries := d.List()
	if !sort.SliceIsSorted(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name }) {
		t.Fatal("list not sorted by name")
	}
	entries[0].Name = "mutated"
	if fresh := d.List(); fresh[0].Name == "mutated" {
		t.Fatal("List exposes internal slice")
	}
}
