// Package epistemology defines the contract for judging worldview
// assignments against observed outcomes.
//
// Modeling assumption carried over from the underlying argument: every
// external criterion is itself contested, i.e. someone can always reject
// the grounding as question-begging. That claim has no computational
// content (the source treats "contested" as a vacuous tautology, true of
// any criterion), so it is recorded here as documentation rather than as
// an executable check.
package epistemology

import "regress-core/svc/models"

// Epistemology is the decision surface higher layers depend on. All
// methods are pure, total and terminating over closed finite domains.
type Epistemology interface {

	// IsConsistent decides whether a worldview's two judgments agree on
	// every entity in the domain under the given observation function.
	IsConsistent(w models.Worldview, observe models.ObservationFunc, domain models.EntityDomain) bool

	// DisagreeOnOutcome decides whether two worldviews differ on the
	// correctness of at least one outcome.
	DisagreeOnOutcome(w1, w2 models.Worldview) bool

	// BuildGroundedWorldview constructs a worldview from an external
	// criterion, with the existential-witness guarantee that outcomes
	// produced by criterion-good entities are deemed correct.
	BuildGroundedWorldview(criterion models.ExternalCriterion, observe models.ObservationFunc, domain models.EntityDomain) models.Worldview

	// Underdetermined decides the combined regress property for a pair of
	// worldviews and one observation function.
	Underdetermined(w1, w2 models.Worldview, observe models.ObservationFunc, domain models.EntityDomain) bool
}
