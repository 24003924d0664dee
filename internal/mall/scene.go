// Package mall builds the mall map scene and drives its marker and hover state.
package mall

import (
	"errors"
	"fmt"

	"github.com/Faultbox/mallmap/internal/engine/picking"
	"github.com/Faultbox/mallmap/pkg/math"
)

// ErrRouteTooShort is returned when a route has fewer than two points.
var ErrRouteTooShort = errors.New("route needs at least 2 points")

// Store box dimensions and placement shared by every store.
var (
	StoreSize   = math.Vec3{X: 120, Y: 100, Z: 80}
	StoreHeight = float32(50) // Y of the box center
)

// StoreSpec is one row of the store table.
type StoreSpec struct {
	Name  string
	X, Z  float32
	Color uint32 // 0xRRGGBB
}

// DefaultStores is the fixed store table.
var DefaultStores = []StoreSpec{
	{Name: "Main Entrance", X: 0, Z: 200, Color: 0xffffff},
	{Name: "Verizon", X: 150, Z: 100, Color: 0xdbeafe},
	{Name: "AT&T", X: -150, Z: 80, Color: 0xfff1cc},
	{Name: "MediaMarkt", X: 200, Z: -100, Color: 0xe6f0ff},
	{Name: "Nike Store", X: -300, Z: -200, Color: 0xdbeafe},
	{Name: "Starbucks", X: 300, Z: -50, Color: 0xfff7ed},
	{Name: "Bank", X: 400, Z: 200, Color: 0xc7f9cc},
	{Name: "Apple Store", X: 450, Z: -200, Color: 0xe6f0ff},
	{Name: "McCafe", X: 0, Z: -300, Color: 0xfff7ed},
}

// DefaultRoute is the walking route. It is authored by hand alongside
// DefaultStores; keep the two in visual correspondence when editing either.
var DefaultRoute = []math.Vec3{
	{X: 0, Y: 50, Z: 200},
	{X: -150, Y: 50, Z: 80},
	{X: 0, Y: 50, Z: 50},
	{X: 200, Y: 50, Z: -100},
	{X: -300, Y: 50, Z: -200},
	{X: 300, Y: 50, Z: -50},
	{X: 400, Y: 50, Z: 200},
	{X: 450, Y: 50, Z: -200},
	{X: 0, Y: 50, Z: -300},
}

// Store is a placed store volume. Immutable after Build.
type Store struct {
	Name     string
	Position math.Vec3
	Color    uint32
	Bounds   picking.AABB
}

// Group holds the store volumes visited by both rendering and picking.
type Group struct {
	Stores []Store
	bounds []picking.AABB
}

// Add appends a store to the group.
func (g *Group) Add(s Store) {
	g.Stores = append(g.Stores, s)
	g.bounds = append(g.bounds, s.Bounds)
}

// Len returns the number of stores.
func (g *Group) Len() int {
	return len(g.Stores)
}

// Bounds returns the store volumes in insertion order.
func (g *Group) Bounds() []picking.AABB {
	return g.bounds
}

// Slab is a static box such as the floor.
type Slab struct {
	Center math.Vec3
	Size   math.Vec3
	Color  uint32
}

// Marker describes the sphere that walks the route.
type Marker struct {
	Radius         float32
	WidthSegments  int
	HeightSegments int
	Color          uint32
}

// Scene is everything the map draws. Built once at startup.
type Scene struct {
	Background uint32
	Floor      Slab
	Group      Group
	Route      []math.Vec3
	RouteColor uint32
	Marker     Marker
}

// Build places one store box per table row and attaches the route.
// The route slice is shared, not copied; callers must not mutate it.
func Build(stores []StoreSpec, route []math.Vec3) (*Scene, error) {
	if len(route) < 2 {
		return nil, fmt.Errorf("building scene: %w (got %d)", ErrRouteTooShort, len(route))
	}

	s := &Scene{
		Background: 0xf7fafc,
		Floor: Slab{
			Center: math.Vec3{X: 0, Y: -10, Z: 0},
			Size:   math.Vec3{X: 1600, Y: 20, Z: 1000},
			Color:  0xf7fafc,
		},
		Route:      route,
		RouteColor: 0x0b5cff,
		Marker: Marker{
			Radius:         15,
			WidthSegments:  16,
			HeightSegments: 16,
			Color:          0xff0000,
		},
	}

	for _, def := range stores {
		pos := math.Vec3{X: def.X, Y: StoreHeight, Z: def.Z}
		s.Group.Add(Store{
			Name:     def.Name,
			Position: pos,
			Color:    def.Color,
			Bounds:   picking.BoxAABB(pos, StoreSize),
		})
	}

	return s, nil
}

// BuildDefault builds the scene from DefaultStores and DefaultRoute.
func BuildDefault() (*Scene, error) {
	return Build(DefaultStores, DefaultRoute)
}
