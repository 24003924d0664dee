package mall

import (
	"errors"
	"testing"

	"github.com/Faultbox/mallmap/pkg/math"
)

func TestBuildDefault(t *testing.T) {
	scene, err := BuildDefault()
	if err != nil {
		t.Fatalf("BuildDefault: %v", err)
	}

	if scene.Group.Len() != len(DefaultStores) {
		t.Fatalf("store count = %d, want %d", scene.Group.Len(), len(DefaultStores))
	}
	if len(scene.Group.Bounds()) != scene.Group.Len() {
		t.Errorf("bounds count = %d, want %d", len(scene.Group.Bounds()), scene.Group.Len())
	}

	for i, s := range scene.Group.Stores {
		def := DefaultStores[i]
		if s.Name != def.Name || s.Color != def.Color {
			t.Errorf("store %d = %q/%06x, want %q/%06x", i, s.Name, s.Color, def.Name, def.Color)
		}
		want := math.Vec3{X: def.X, Y: 50, Z: def.Z}
		if s.Position != want {
			t.Errorf("%s position = %v, want %v", s.Name, s.Position, want)
		}
		if size := s.Bounds.Max.Sub(s.Bounds.Min); size != StoreSize {
			t.Errorf("%s size = %v, want %v", s.Name, size, StoreSize)
		}
		if s.Bounds.Center() != want {
			t.Errorf("%s bounds center = %v, want %v", s.Name, s.Bounds.Center(), want)
		}
	}
}

func TestBuildStoreBounds(t *testing.T) {
	scene, err := Build([]StoreSpec{{Name: "Verizon", X: 150, Z: 100, Color: 0xdbeafe}}, DefaultRoute)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	b := scene.Group.Stores[0].Bounds
	if b.Min != (math.Vec3{X: 90, Y: 0, Z: 60}) || b.Max != (math.Vec3{X: 210, Y: 100, Z: 140}) {
		t.Errorf("bounds = %+v", b)
	}
}

func TestBuildSharesRoute(t *testing.T) {
	route := []math.Vec3{{X: 0, Y: 50, Z: 200}, {X: -150, Y: 50, Z: 80}}
	scene, err := Build(nil, route)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if &scene.Route[0] != &route[0] {
		t.Error("scene route should reference the caller's points")
	}
	if scene.Group.Len() != 0 {
		t.Errorf("store count = %d, want 0", scene.Group.Len())
	}
}

func TestBuildRejectsShortRoute(t *testing.T) {
	for _, route := range [][]math.Vec3{nil, {{X: 1}}} {
		_, err := Build(DefaultStores, route)
		if !errors.Is(err, ErrRouteTooShort) {
			t.Errorf("Build with %d points: err = %v, want ErrRouteTooShort", len(route), err)
		}
	}
}

func TestDefaultTablesStayInSync(t *testing.T) {
	// Not enforced by Build; the tables are maintained by hand in parallel.
	if len(DefaultRoute) != len(DefaultStores) {
		t.Errorf("route has %d points for %d stores", len(DefaultRoute), len(DefaultStores))
	}
	for _, p := range DefaultRoute {
		if p.Y != StoreHeight {
			t.Errorf("route point %v is off the walking height %v", p, StoreHeight)
		}
	}
}
