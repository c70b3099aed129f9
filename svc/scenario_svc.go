package svc

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	ai "regress-core/ai"
	"regress-core/db"
	"regress-core/epistemology"
	"regress-core/svc/models"
)

const (
	scenarioKey = "Scenario"
	reportKey   = "ScenarioReport"
)

// ScenarioService is the driver around the consistency kernel: it stores
// scenarios, runs the checks for each, and records the resulting reports.
type ScenarioService struct {
	kvStore  *db.KeyValueStore
	epi      epistemology.Epistemology
	narrator *ai.NarrativeHelper
}

func NewScenarioService(kvStore *db.KeyValueStore, narrator *ai.NarrativeHelper) *ScenarioService {
	return &ScenarioService{
		kvStore:  kvStore,
		epi:      NewConsistencyService(),
		narrator: narrator,
	}
}

// CreateScenario validates and stores a new scenario. Validation compiles
// every table against the scenario's domain, so a non-total table or an
// out-of-range outcome fails here, at setup, not during a run.
func (ss *ScenarioService) CreateScenario(input *models.CreateScenarioInput) (*models.CreateScenarioOutput, error) {
	scenario := models.Scenario{
		ID:                    "scenario-" + uuid.New().String(),
		Name:                  input.Name,
		Description:           input.Description,
		DomainSize:            input.DomainSize,
		Observations:          input.Observations,
		Worldviews:            input.Worldviews,
		Criterion:             input.Criterion,
		ExpectUnderdetermined: input.ExpectUnderdetermined,
	}

	if err := ValidateScenario(scenario); err != nil {
		log.Printf("CreateScenario rejected scenario %q: %v", input.Name, err)
		return nil, err
	}

	if err := ss.kvStore.Store(scenario.ID, scenarioKey, scenario, 1); err != nil {
		return nil, err
	}

	return &models.CreateScenarioOutput{Scenario: scenario}, nil
}

// ValidateScenario compiles every table in the scenario, returning the
// first contract violation found.
func ValidateScenario(scenario models.Scenario) error {
	if scenario.DomainSize <= 0 {
		return fmt.Errorf("scenario %q has an empty entity domain", scenario.Name)
	}
	if len(scenario.Worldviews) == 0 && scenario.Criterion == nil {
		return fmt.Errorf("scenario %q has no worldviews and no criterion to check", scenario.Name)
	}

	domain := models.NewEntityDomain(scenario.DomainSize)
	if _, err := scenario.Observations.Compile(domain); err != nil {
		return err
	}
	for _, wt := range scenario.Worldviews {
		if _, err := wt.Compile(domain); err != nil {
			return err
		}
	}
	if scenario.Criterion != nil {
		if _, err := scenario.Criterion.Compile(domain); err != nil {
			return err
		}
	}
	return nil
}

// RunScenario loads a stored scenario, runs every check, and stores the
// resulting report as a new version (unless DryRun is set).
func (ss *ScenarioService) RunScenario(input *models.RunScenarioInput) (*models.RunScenarioOutput, error) {
	scenario, err := ss.getScenario(input.ScenarioID)
	if err != nil {
		return nil, err
	}

	report, err := ss.evaluate(*scenario)
	if err != nil {
		return nil, err
	}

	if input.WithNarrative && ss.narrator != nil {
		narrative, err := ss.narrator.ExplainReport(*report)
		if err != nil {
			log.Printf("Error generating narrative for scenario %s: %v", scenario.ID, err)
			narrative = ai.FallbackNarrative(*report)
		}
		report.Narrative = narrative
	}

	if !input.DryRun {
		version := ss.kvStore.LatestVersion(scenario.ID, reportKey) + 1
		if err := ss.kvStore.Store(scenario.ID, reportKey, *report, version); err != nil {
			return nil, err
		}
	}

	return &models.RunScenarioOutput{Report: *report}, nil
}

// evaluate runs the kernel over one scenario. The underdetermination flag
// is the end-to-end conjunction: some pair of worldviews is individually
// consistent with the observations while disagreeing on an outcome.
func (ss *ScenarioService) evaluate(scenario models.Scenario) (*models.ScenarioReport, error) {
	domain := models.NewEntityDomain(scenario.DomainSize)

	observe, err := scenario.Observations.Compile(domain)
	if err != nil {
		return nil, err
	}

	worldviews := make([]models.Worldview, len(scenario.Worldviews))
	verdicts := make([]models.WorldviewVerdict, len(scenario.Worldviews))
	for i, wt := range scenario.Worldviews {
		w, err := wt.Compile(domain)
		if err != nil {
			return nil, err
		}
		worldviews[i] = w
		verdicts[i] = models.WorldviewVerdict{
			Name:       wt.Name,
			Consistent: ss.epi.IsConsistent(w, observe, domain),
		}
	}

	var disagreements []models.DisagreementVerdict
	underdetermined := false
	for i := 0; i < len(worldviews); i++ {
		for j := i + 1; j < len(worldviews); j++ {
			disagreements = append(disagreements, models.DisagreementVerdict{
				FirstName:  scenario.Worldviews[i].Name,
				SecondName: scenario.Worldviews[j].Name,
				Disagree:   ss.epi.DisagreeOnOutcome(worldviews[i], worldviews[j]),
			})
			if ss.epi.Underdetermined(worldviews[i], worldviews[j], observe, domain) {
				underdetermined = true
			}
		}
	}

	report := &models.ScenarioReport{
		ScenarioID:           scenario.ID,
		ScenarioName:         scenario.Name,
		Worldviews:           verdicts,
		Disagreements:        disagreements,
		Underdetermined:      underdetermined,
		MatchesExpected:      underdetermined == scenario.ExpectUnderdetermined,
		GeneratedAtMillisUTC: time.Now().UnixMilli(),
	}

	if scenario.Criterion != nil {
		criterion, err := scenario.Criterion.Compile(domain)
		if err != nil {
			return nil, err
		}
		grounded := ss.epi.BuildGroundedWorldview(criterion, observe, domain)
		correctByOutcome := make(map[string]bool, len(models.AllOutcomes()))
		for _, o := range models.AllOutcomes() {
			correctByOutcome[o.String()] = grounded.JudgesCorrect(o)
		}
		report.Grounding = &models.GroundingVerdict{
			Consistent:       ss.epi.IsConsistent(grounded, observe, domain),
			CorrectByOutcome: correctByOutcome,
		}
	}

	return report, nil
}

// GetScenarioReport returns the latest stored report for a scenario.
func (ss *ScenarioService) GetScenarioReport(input *models.GetScenarioReportInput) (*models.GetScenarioReportOutput, error) {
	raw, err := ss.kvStore.Retrieve(input.ScenarioID, reportKey)
	if err != nil {
		return nil, fmt.Errorf("no report for scenario %s: %w", input.ScenarioID, err)
	}
	report, ok := raw.(*models.ScenarioReport)
	if !ok {
		return nil, fmt.Errorf("stored report for scenario %s has unexpected type %T", input.ScenarioID, raw)
	}
	return &models.GetScenarioReportOutput{Report: *report}, nil
}

// ListScenarios returns the latest version of every stored scenario.
func (ss *ScenarioService) ListScenarios(input *models.ListScenariosInput) (*models.ListScenariosOutput, error) {
	raws, err := ss.kvStore.ListByKey(scenarioKey)
	if err != nil {
		return nil, err
	}
	scenarios := make([]models.Scenario, 0, len(raws))
	for _, raw := range raws {
		scenario, ok := raw.(*models.Scenario)
		if !ok {
			return nil, fmt.Errorf("stored scenario has unexpected type %T", raw)
		}
		scenarios = append(scenarios, *scenario)
	}
	return &models.ListScenariosOutput{Scenarios: scenarios}, nil
}

func (ss *ScenarioService) getScenario(scenarioID string) (*models.Scenario, error) {
	raw, err := ss.kvStore.Retrieve(scenarioID, scenarioKey)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", scenarioID, err)
	}
	scenario, ok := raw.(*models.Scenario)
	if !ok {
		return nil, fmt.Errorf("stored scenario %s has unexpected type %T", scenarioID, raw)
	}
	return scenario, nil
}
