package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ai "regress-core/ai"
	"regress-core/db"
	fixture_models "regress-core/db/fixtures"
	"regress-core/server"
	svc "regress-core/svc"
	"regress-core/svc/models"
)

func newFixtureService(t *testing.T) *svc.ScenarioService {
	kvStore := db.NewKeyValueStore()
	require.NoError(t, fixture_models.ImportFixtures(kvStore))
	return svc.NewScenarioService(kvStore, ai.NewNarrativeHelper(""))
}

// The regress property end to end: both fixture worldviews are
// individually consistent with the same observation function, and they
// disagree on at least one outcome, so the evidence alone cannot settle
// which assignment is correct.
func TestFixtureRegressScenarioIsUnderdetermined(t *testing.T) {
	ss := newFixtureService(t)

	ran, err := ss.RunScenario(&models.RunScenarioInput{
		ScenarioID: fixture_models.FixtureScenarioID("circular-regress"),
	})
	require.NoError(t, err)

	report := ran.Report
	require.Len(t, report.Worldviews, 2)
	for _, wv := range report.Worldviews {
		assert.True(t, wv.Consistent, "worldview %q should be consistent", wv.Name)
	}
	require.Len(t, report.Disagreements, 1)
	assert.True(t, report.Disagreements[0].Disagree)
	assert.True(t, report.Underdetermined)
	assert.True(t, report.MatchesExpected)
}

func TestFixtureGroundedScenarioBreaksTheTie(t *testing.T) {
	ss := newFixtureService(t)

	ran, err := ss.RunScenario(&models.RunScenarioInput{
		ScenarioID:    fixture_models.FixtureScenarioID("externally-grounded"),
		WithNarrative: true,
	})
	require.NoError(t, err)

	report := ran.Report
	assert.False(t, report.Underdetermined)
	assert.True(t, report.MatchesExpected)
	require.NotNil(t, report.Grounding)
	assert.True(t, report.Grounding.Consistent)
	assert.True(t, report.Grounding.CorrectByOutcome["positive"])
	assert.False(t, report.Grounding.CorrectByOutcome["negative"])
	assert.NotEmpty(t, report.Narrative)
}

func TestListFixtureScenarios(t *testing.T) {
	ss := newFixtureService(t)

	listed, err := ss.ListScenarios(&models.ListScenariosInput{})
	require.NoError(t, err)
	assert.Len(t, listed.Scenarios, 2)
}

func TestScenarioAPIOverHTTP(t *testing.T) {
	kvStore := db.NewKeyValueStore()
	require.NoError(t, fixture_models.ImportFixtures(kvStore))

	srv, _, port := server.RunServer(kvStore, "")
	defer srv.Close()

	base := fmt.Sprintf("http://localhost:%s", port)
	apiKey := uuid.New().String()
	client := &http.Client{}

	doRequest := func(method, url string, body []byte) *http.Response {
		req, err := http.NewRequest(method, url, bytes.NewReader(body))
		require.NoError(t, err)
		req.Header.Set("x-api-key", apiKey)
		req.Header.Set("Content-Type", "application/json")
		resp, err := client.Do(req)
		require.NoError(t, err)
		return resp
	}

	// Requests without an API key are rejected.
	resp, err := http.Get(base + "/v1/scenarios")
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	// The fixture scenarios are listed.
	resp = doRequest(http.MethodGet, base+"/v1/scenarios", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var listed models.ListScenariosOutput
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&listed))
	resp.Body.Close()
	assert.Len(t, listed.Scenarios, 2)

	// Running the regress fixture reports underdetermination.
	runURL := fmt.Sprintf("%s/v1/scenarios/%s/run", base, fixture_models.FixtureScenarioID("circular-regress"))
	resp = doRequest(http.MethodPost, runURL, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var ran models.RunScenarioOutput
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&ran))
	resp.Body.Close()
	assert.True(t, ran.Report.Underdetermined)
	assert.True(t, ran.Report.MatchesExpected)

	// The stored report is retrievable.
	reportURL := fmt.Sprintf("%s/v1/scenarios/%s/report", base, fixture_models.FixtureScenarioID("circular-regress"))
	resp = doRequest(http.MethodGet, reportURL, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var got models.GetScenarioReportOutput
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	resp.Body.Close()
	assert.True(t, got.Report.Underdetermined)

	// Unknown scenarios return 404.
	resp = doRequest(http.MethodPost, base+"/v1/scenarios/scenario-missing/run", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	// New scenarios can be created and run over the API.
	createBody, err := json.Marshal(models.CreateScenarioInput{
		Name:       "api-created",
		DomainSize: 1,
		Observations: models.ObservationTable{
			0: "positive",
		},
		Worldviews: []models.WorldviewTable{
			{
				Name:             "only",
				GoodByEntity:     map[int]bool{0: true},
				CorrectByOutcome: map[string]bool{"positive": true, "negative": false},
			},
		},
		ExpectUnderdetermined: false,
	})
	require.NoError(t, err)
	resp = doRequest(http.MethodPost, base+"/v1/scenarios", createBody)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var created models.CreateScenarioOutput
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	resp.Body.Close()

	resp = doRequest(http.MethodPost, fmt.Sprintf("%s/v1/scenarios/%s/run", base, created.Scenario.ID), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&ran))
	resp.Body.Close()
	assert.False(t, ran.Report.Underdetermined)
	assert.True(t, ran.Report.MatchesExpected)
}
