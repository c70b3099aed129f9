package models

// CreateScenarioInput represents an input to register a new scenario.
type CreateScenarioInput struct {
	Name                  string           `json:"name"`
	Description           string           `json:"description"`
	DomainSize            int              `json:"domain_size"`
	Observations          ObservationTable `json:"observations"`
	Worldviews            []WorldviewTable `json:"worldviews"`
	Criterion             CriterionTable   `json:"criterion,omitempty"`
	ExpectUnderdetermined bool             `json:"expect_underdetermined"`
}

// RunScenarioInput represents an input to run all checks for a stored scenario.
type RunScenarioInput struct {
	ScenarioID    string `json:"scenario_id"`
	DryRun        bool   `json:"dry_run"`
	WithNarrative bool   `json:"with_narrative"`
}

// GetScenarioReportInput represents an input to fetch the latest report for a scenario.
type GetScenarioReportInput struct {
	ScenarioID string `json:"scenario_id"`
}

// ListScenariosInput represents an input to list all stored scenarios.
type ListScenariosInput struct{}
