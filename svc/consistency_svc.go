package svc

import (
	"regress-core/svc/models"
)

// ConsistencyService decides the structural properties of worldviews over
// closed finite domains. Every check is an exhaustive, terminating
// enumeration; there is no heuristic search and no state between calls.
type ConsistencyService struct{}

func NewConsistencyService() *ConsistencyService {
	return &ConsistencyService{}
}

// IsConsistent reports whether the worldview agrees with itself under the
// given observation function: for every entity in the domain, the quality
// judgment must match the correctness judgment of the entity's observed
// outcome. Enumeration stops at the first counterexample; the result is a
// universally quantified conjunction, so short-circuiting does not change it.
func (s *ConsistencyService) IsConsistent(w models.Worldview, observe models.ObservationFunc, domain models.EntityDomain) bool {
	for _, e := range domain.Entities() {
		if w.JudgesGood(e) != w.JudgesCorrect(observe(e)) {
			return false
		}
	}
	return true
}

// DisagreeOnOutcome reports whether the two worldviews differ on the
// correctness of at least one outcome. A single witness suffices.
func (s *ConsistencyService) DisagreeOnOutcome(w1, w2 models.Worldview) bool {
	for _, o := range models.AllOutcomes() {
		if w1.JudgesCorrect(o) != w2.JudgesCorrect(o) {
			return true
		}
	}
	return false
}

// BuildGroundedWorldview reconstructs a worldview from an external
// criterion: the quality judgment is the criterion itself, and an outcome
// is deemed correct iff some criterion-good entity actually produced it.
// By construction, the observed outcome of any criterion-good entity is
// always deemed correct (existential witness). Entities the criterion
// judges bad are not covered by that guarantee.
func (s *ConsistencyService) BuildGroundedWorldview(criterion models.ExternalCriterion, observe models.ObservationFunc, domain models.EntityDomain) models.Worldview {
	entities := domain.Entities()
	return models.Worldview{
		JudgesGood: func(e models.Entity) bool {
			return criterion(e)
		},
		JudgesCorrect: func(o models.Outcome) bool {
			for _, e := range entities {
				if criterion(e) && observe(e) == o {
					return true
				}
			}
			return false
		},
	}
}

// Underdetermined is the formal regress statement: both worldviews are
// individually consistent with the same observations, yet they disagree
// on at least one correctness judgment. The evidence alone cannot pick
// between them.
func (s *ConsistencyService) Underdetermined(w1, w2 models.Worldview, observe models.ObservationFunc, domain models.EntityDomain) bool {
	return s.IsConsistent(w1, observe, domain) &&
		s.IsConsistent(w2, observe, domain) &&
		s.DisagreeOnOutcome(w1, w2)
}
