// Package testmodels holds sample types parsed by the Go source loader tests.
package testmodels

import "github.com/nieomylnieja/refdoc/internal/testmodels/geometry"

// Entity is the base of every simulated object.
// It is placed at a [geometry.Vector].
type Entity struct {
	// ID identifies the entity.
	ID int
	// Position is where the entity stands.
	Position geometry.Vector
	hidden   bool
}

// Move shifts the entity by delta.
func (e *Entity) Move(delta geometry.Vector) {
	e.Position = e.Position.Add(delta)
}

func (e *Entity) reset() { e.hidden = false }

// Player is an [Entity] controlled by a human.
//
// Deprecated: Use Bot instead.
type Player struct {
	Entity
	// Team the player plays for.
	Team Team
	// Friends of the player.
	Friends []*Player
	Name    string // Name is not picked up from trailing comments.
}

// NewPlayer creates a player of the given team.
func NewPlayer(name string, team Team) *Player {
	return &Player{Name: name, Team: team}
}

// Follow makes the player follow target.
func (p *Player) Follow(target *Entity, distance float64) (bool, error) {
	return target != nil && distance > 0, nil
}

// Team is a side in a match.
type Team int

const (
	// TeamRed plays on the left.
	TeamRed Team = iota
	// TeamBlue plays on the right.
	TeamBlue
	teamNone
)

// Handler reacts to player actions.
type Handler interface {
	Handle(p *Player) error
}

// Registry stores items by name.
type Registry[T any] struct {
	Items map[string]T
}

// Lookup returns the registered item.
func Lookup[T any](r Registry[T], name string) (T, bool) {
	v, ok := r.Items[name]
	return v, ok
}

type internalState struct{}
