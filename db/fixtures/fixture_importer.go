package fixture_models

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"

	"regress-core/db"
	"regress-core/svc/models"
)

// FixtureScenarioID returns the deterministic ID used for a fixture
// scenario, so tests and local tooling can address them without listing.
func FixtureScenarioID(name string) string {
	return "fixture-scenario-" + name
}

// ImportFixtures imports the predefined scenarios into the given KeyValueStore.
func ImportFixtures(kvStore *db.KeyValueStore) error {
	// Get the directory of this source file
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		return fmt.Errorf("failed to get current file path")
	}
	currentDir := filepath.Dir(filename)

	yamlFilePath := filepath.Join(currentDir, "scenario_fixture.yaml")

	yamlFile, err := os.ReadFile(yamlFilePath)
	if err != nil {
		return fmt.Errorf("error reading YAML file: %v", err)
	}

	var fixture ScenarioFixture
	if err := yaml.Unmarshal(yamlFile, &fixture); err != nil {
		return fmt.Errorf("error unmarshaling YAML: %v", err)
	}

	for _, example := range fixture.Scenarios {
		worldviews := make([]models.WorldviewTable, len(example.Worldviews))
		for i, wv := range example.Worldviews {
			worldviews[i] = models.WorldviewTable{
				Name:             wv.Name,
				GoodByEntity:     wv.GoodByEntity,
				CorrectByOutcome: wv.CorrectByOutcome,
			}
		}

		scenario := models.Scenario{
			ID:                    FixtureScenarioID(example.Name),
			Name:                  example.Name,
			Description:           example.Description,
			DomainSize:            example.DomainSize,
			Observations:          models.ObservationTable(example.Observations),
			Worldviews:            worldviews,
			Criterion:             models.CriterionTable(example.Criterion),
			ExpectUnderdetermined: example.ExpectUnderdetermined,
		}

		if err := kvStore.Store(scenario.ID, "Scenario", scenario, 1); err != nil {
			return fmt.Errorf("error storing fixture scenario %q: %v", example.Name, err)
		}
	}

	return nil
}
