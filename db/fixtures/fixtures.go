package fixture_models

// ScenarioFixture is the YAML schema for predefined scenarios.
type ScenarioFixture struct {
	Scenarios []ScenarioExample `yaml:"scenarios"`
}

type ScenarioExample struct {
	Name                  string             `yaml:"name"`
	Description           string             `yaml:"description"`
	DomainSize            int                `yaml:"domain_size"`
	Observations          map[int]string     `yaml:"observations"`
	Worldviews            []WorldviewExample `yaml:"worldviews"`
	Criterion             map[int]bool       `yaml:"criterion,omitempty"`
	ExpectUnderdetermined bool               `yaml:"expect_underdetermined"`
}

type WorldviewExample struct {
	Name             string          `yaml:"name"`
	GoodByEntity     map[int]bool    `yaml:"good_by_entity"`
	CorrectByOutcome map[string]bool `yaml:"correct_by_outcome"`
}
