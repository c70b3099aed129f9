package models

import "fmt"

// WorldviewTable is the storable form of a worldview: explicit truth
// tables keyed by entity index and outcome name. Compile turns it into
// the functional form, failing fast if the table is not total over the
// scenario's domains.
type WorldviewTable struct {
	Name             string          `json:"name"`
	GoodByEntity     map[int]bool    `json:"good_by_entity"`
	CorrectByOutcome map[string]bool `json:"correct_by_outcome"`
}

func (t WorldviewTable) Compile(domain EntityDomain) (Worldview, error) {
	good := make(map[int]bool, domain.Size())
	for _, e := range domain.Entities() {
		v, ok := t.GoodByEntity[e.Index]
		if !ok {
			return Worldview{}, fmt.Errorf("worldview %q is not total: no quality judgment for %s", t.Name, e)
		}
		good[e.Index] = v
	}
	correct := make(map[Outcome]bool, len(AllOutcomes()))
	for _, o := range AllOutcomes() {
		v, ok := t.CorrectByOutcome[o.String()]
		if !ok {
			return Worldview{}, fmt.Errorf("worldview %q is not total: no correctness judgment for outcome %q", t.Name, o)
		}
		correct[o] = v
	}
	return Worldview{
		JudgesGood:    func(e Entity) bool { return good[e.Index] },
		JudgesCorrect: func(o Outcome) bool { return correct[o] },
	}, nil
}

// ObservationTable maps entity indices to outcome names. Compile
// validates totality over the domain and that every outcome name belongs
// to the closed outcome domain.
type ObservationTable map[int]string

func (t ObservationTable) Compile(domain EntityDomain) (ObservationFunc, error) {
	observed := make(map[int]Outcome, domain.Size())
	for _, e := range domain.Entities() {
		name, ok := t[e.Index]
		if !ok {
			return nil, fmt.Errorf("observation function is not total: no outcome for %s", e)
		}
		o, err := ParseOutcome(name)
		if err != nil {
			return nil, fmt.Errorf("observation for %s is out of range: %v", e, err)
		}
		observed[e.Index] = o
	}
	return func(e Entity) Outcome { return observed[e.Index] }, nil
}

// CriterionTable is the storable form of an external criterion.
type CriterionTable map[int]bool

func (t CriterionTable) Compile(domain EntityDomain) (ExternalCriterion, error) {
	judged := make(map[int]bool, domain.Size())
	for _, e := range domain.Entities() {
		v, ok := t[e.Index]
		if !ok {
			return nil, fmt.Errorf("criterion is not total: no judgment for %s", e)
		}
		judged[e.Index] = v
	}
	return func(e Entity) bool { return judged[e.Index] }, nil
}

// Scenario is the value object the driver operates on: one observation
// function, one or more candidate worldviews, and optionally an external
// criterion to ground a worldview from. Immutable once stored.
type Scenario struct {
	ID                    string           `json:"id"`
	Name                  string           `json:"name"`
	Description           string           `json:"description"`
	DomainSize            int              `json:"domain_size"`
	Observations          ObservationTable `json:"observations"`
	Worldviews            []WorldviewTable `json:"worldviews"`
	Criterion             CriterionTable   `json:"criterion,omitempty"`
	ExpectUnderdetermined bool             `json:"expect_underdetermined"`
}

// WorldviewVerdict is the consistency result for one named worldview.
type WorldviewVerdict struct {
	Name       string `json:"name"`
	Consistent bool   `json:"consistent"`
}

// DisagreementVerdict is the pairwise disagreement result for two
// worldviews, identified by name.
type DisagreementVerdict struct {
	FirstName  string `json:"first_name"`
	SecondName string `json:"second_name"`
	Disagree   bool   `json:"disagree"`
}

// GroundingVerdict reports the worldview reconstructed from the external
// criterion: which outcomes it deems correct, and whether it is
// consistent with the scenario's observations.
type GroundingVerdict struct {
	Consistent       bool            `json:"consistent"`
	CorrectByOutcome map[string]bool `json:"correct_by_outcome"`
}

// ScenarioReport is the end-to-end result of running a scenario:
// per-worldview consistency, pairwise disagreement, and whether the
// evidence underdetermines the choice of worldview (at least one pair of
// individually consistent, mutually disagreeing worldviews).
type ScenarioReport struct {
	ScenarioID           string                `json:"scenario_id"`
	ScenarioName         string                `json:"scenario_name"`
	Worldviews           []WorldviewVerdict    `json:"worldview_verdicts"`
	Disagreements        []DisagreementVerdict `json:"disagreement_verdicts"`
	Underdetermined      bool                  `json:"underdetermined"`
	Grounding            *GroundingVerdict     `json:"grounding,omitempty"`
	MatchesExpected      bool                  `json:"matches_expected"`
	Narrative            string                `json:"narrative,omitempty"`
	GeneratedAtMillisUTC int64                 `json:"generated_at_millis_utc"`
}
