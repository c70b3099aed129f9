package models

// ObservationFunc is the fixed mapping from entities to the outcomes they
// actually produced. Must be pure and total over the scenario's domain.
type ObservationFunc func(Entity) Outcome

// ExternalCriterion is a quality judgment defined independently of the
// observation function. The type cannot enforce that independence; which
// judgments qualify is a modeling contract documented where the criterion
// is defined.
type ExternalCriterion func(Entity) bool

// Worldview bundles the two interdependent judgments: which entities are
// good, and which outcomes are correct. A worldview has no identity
// beyond its two functions; both must be pure and total over the
// scenario's closed domains. No validation happens at construction; a
// non-total function is a caller error, surfaced when tables are
// compiled, not here.
type Worldview struct {
	JudgesGood    func(Entity) bool
	JudgesCorrect func(Outcome) bool
}
