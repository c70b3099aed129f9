package models

// CreateScenarioOutput represents an output after registering a scenario.
type CreateScenarioOutput struct {
	Scenario Scenario `json:"scenario"`
}

// RunScenarioOutput represents an output after running a scenario's checks.
type RunScenarioOutput struct {
	Report ScenarioReport `json:"report"`
}

// GetScenarioReportOutput represents an output containing the latest report.
type GetScenarioReportOutput struct {
	Report ScenarioReport `json:"report"`
}

// ListScenariosOutput represents an output containing all stored scenarios.
type ListScenariosOutput struct {
	Scenarios []Scenario `json:"scenarios"`
}
