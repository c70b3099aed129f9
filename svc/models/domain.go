package models

import "fmt"

// Entity is a member of a closed, finite entity domain (an experiment,
// a model, anything whose quality is under dispute). Identity is the
// index alone; equality is structural.
type Entity struct {
	Index int `json:"index"`
}

func NewEntity(index int) Entity {
	return Entity{Index: index}
}

func (e Entity) String() string {
	return fmt.Sprintf("E%d", e.Index)
}

type Outcome int32

const (
	OutcomeInvalid Outcome = iota
	OutcomePositive
	OutcomeNegative
)

func (o Outcome) String() string {
	switch o {
	case OutcomePositive:
		return "positive"
	case OutcomeNegative:
		return "negative"
	default:
		return "invalid"
	}
}

// ParseOutcome maps an outcome name back to its enum value. Names outside
// the closed domain are a caller error.
func ParseOutcome(name string) (Outcome, error) {
	switch name {
	case "positive":
		return OutcomePositive, nil
	case "negative":
		return OutcomeNegative, nil
	default:
		return OutcomeInvalid, fmt.Errorf("unknown outcome %q", name)
	}
}

// AllOutcomes enumerates the closed outcome domain. The checkers rely on
// this enumeration visiting every value exactly once.
func AllOutcomes() []Outcome {
	return []Outcome{OutcomePositive, OutcomeNegative}
}

// EntityDomain is a closed entity set E0..E(n-1). Construction cannot
// fail; the domain is closed by definition.
type EntityDomain struct {
	entities []Entity
}

func NewEntityDomain(size int) EntityDomain {
	entities := make([]Entity, size)
	for i := range entities {
		entities[i] = NewEntity(i)
	}
	return EntityDomain{entities: entities}
}

// Entities returns the exhaustive enumeration of the domain.
func (d EntityDomain) Entities() []Entity {
	out := make([]Entity, len(d.entities))
	copy(out, d.entities)
	return out
}

func (d EntityDomain) Size() int {
	return len(d.entities)
}

func (d EntityDomain) Contains(e Entity) bool {
	return e.Index >= 0 && e.Index < len(d.entities)
}
