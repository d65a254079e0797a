package gathermate

import (
	"testing"

	"github.com/pfrederiksen/herb-scraper/internal/herb"
)

func intPtr(v int) *int { return &v }

func TestBuild(t *testing.T) {
	records := []*herb.Record{
		{
			HerbName: "mycobloom",
			HerbCode: intPtr(1439),
			Data: map[string][]herb.MapBlock{
				"100": {{UIMapID: 100, Coords: []herb.Coord{{0.1, 0.1}, {0.5, 0.25}}}},
			},
		},
		{
			HerbName: "luredrop",
			HerbCode: intPtr(1455),
			Data: map[string][]herb.MapBlock{
				"2248": {{UIMapID: 2248, Coords: []herb.Coord{{0.3, 0.3}}}},
				"2214": {{UIMapID: 2214, Coords: nil}},
			},
		},
	}

	table := Build(records, BuildOptions{})

	if got := table.MapIDs(); len(got) != 2 || got[0] != 100 || got[1] != 2248 {
		t.Errorf("MapIDs() = %v, want [100 2248]", got)
	}
	if table.Len() != 3 {
		t.Errorf("Len() = %d, want 3", table.Len())
	}

	code, ok := table.Get(100, 1_000_100_000)
	if !ok || *code != 1439 {
		t.Errorf("Get(100, 1000100000) = (%v, %v), want 1439", code, ok)
	}
	code, ok = table.Get(2248, Encode(0.3, 0.3))
	if !ok || *code != 1455 {
		t.Errorf("Get(2248, ...) = (%v, %v), want 1455", code, ok)
	}
}

func TestBuild_Unresolved(t *testing.T) {
	records := []*herb.Record{
		{
			HerbName: "new-herb",
			Data: map[string][]herb.MapBlock{
				"2248": {{UIMapID: 2248, Coords: []herb.Coord{{0.1, 0.2}}}},
			},
		},
	}

	if table := Build(records, BuildOptions{}); table.Len() != 0 {
		t.Errorf("default Build kept %d unresolved nodes, want 0", table.Len())
	}

	table := Build(records, BuildOptions{KeepUnresolved: true})
	code, ok := table.Get(2248, Encode(0.1, 0.2))
	if !ok {
		t.Fatal("KeepUnresolved dropped the node")
	}
	if code != nil {
		t.Errorf("code = %d, want nil", *code)
	}
}

func TestBuild_CollisionLastWriterWins(t *testing.T) {
	records := []*herb.Record{
		{HerbName: "orbinid", HerbCode: intPtr(1463), Data: map[string][]herb.MapBlock{
			"5": {{UIMapID: 5, Coords: []herb.Coord{{0.12341, 0.5}}}},
		}},
		{HerbName: "lush-orbinid", HerbCode: intPtr(1464), Data: map[string][]herb.MapBlock{
			"5": {{UIMapID: 5, Coords: []herb.Coord{{0.12339, 0.5}}}},
		}},
	}

	table := Build(records, BuildOptions{})

	if table.Len() != 1 {
		t.Fatalf("Len() = %d, want 1 colliding node", table.Len())
	}
	code, _ := table.Get(5, Encode(0.1234, 0.5))
	if code == nil || *code != 1464 {
		t.Errorf("collision kept %v, want later record 1464", code)
	}
}

func TestBuild_Idempotent(t *testing.T) {
	raw := herb.RawCapture{
		HerbName: "mycobloom",
		RawData:  `{"a":[{"uiMapId":2248,"coords":[[10,20],[30,40]]}],"b":[{"uiMapId":2214,"coords":[[50,60]]}]}`,
	}

	once := herb.NewAggregator(herb.DefaultResolver(), nil)
	if err := once.Add(raw); err != nil {
		t.Fatal(err)
	}
	twice := herb.NewAggregator(herb.DefaultResolver(), nil)
	for i := 0; i < 2; i++ {
		if err := twice.Add(raw); err != nil {
			t.Fatal(err)
		}
	}

	a := Build(once.Records(), BuildOptions{})
	b := Build(twice.Records(), BuildOptions{})

	if a.Len() != b.Len() {
		t.Fatalf("Len() = %d vs %d", a.Len(), b.Len())
	}
	for _, mapID := range a.MapIDs() {
		for _, loc := range a.Locations(mapID) {
			ca, _ := a.Get(mapID, loc)
			cb, ok := b.Get(mapID, loc)
			if !ok || *ca != *cb {
				t.Errorf("map %d loc %d differs after re-adding capture", mapID, loc)
			}
		}
	}
}

func TestTable_Locations(t *testing.T) {
	table := NewTable()
	table.Set(1, 300, intPtr(1))
	table.Set(1, 100, intPtr(1))
	table.Set(1, 200, intPtr(1))

	locs := table.Locations(1)
	want := []int64{100, 200, 300}
	for i := range want {
		if locs[i] != want[i] {
			t.Errorf("Locations() = %v, want %v", locs, want)
			break
		}
	}
	if len(table.Locations(42)) != 0 {
		t.Error("Locations() of unknown map should be empty")
	}
}
