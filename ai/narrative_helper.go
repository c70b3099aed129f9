package ai_helper

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"regress-core/svc/models"
)

const REGRESS_PRIMER = `You explain verification results for a circular-definition regress.
Two predicates are defined in terms of each other: an entity is "good" when it produces correct outcomes,
and an outcome is "correct" when it is produced by good entities. A worldview is one candidate assignment
of both predicates. A worldview is consistent when, for every entity, its quality judgment matches the
correctness judgment of the outcome that entity actually produced. When two worldviews are each consistent
with the same observations yet disagree on some outcome, the observations underdetermine the choice between
them; only an external criterion, itself open to dispute, can break the tie.
Write a short plain-language summary of the report you are given. Do not use markdown.`

type LLMModel string

const (
	GPT_LATEST LLMModel = openai.GPT4oMini
)

// NarrativeHelper turns a scenario report into plain-language commentary.
// Without an API key it falls back to a deterministic summary, so the
// engine's results never depend on the LLM being reachable.
type NarrativeHelper struct {
	client *openai.Client
}

// Constructor for NarrativeHelper
func NewNarrativeHelper(apiKey string) *NarrativeHelper {
	if apiKey == "" {
		return &NarrativeHelper{}
	}
	return &NarrativeHelper{
		client: openai.NewClient(apiKey),
	}
}

func (nh *NarrativeHelper) ExplainReport(report models.ScenarioReport) (string, error) {
	if nh.client == nil {
		return FallbackNarrative(report), nil
	}

	response, err := nh.client.CreateChatCompletion(context.Background(), openai.ChatCompletionRequest{
		Model: string(GPT_LATEST),
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: REGRESS_PRIMER},
			{Role: openai.ChatMessageRoleUser, Content: FallbackNarrative(report)},
		},
	})
	if err != nil {
		return "", err
	}
	return response.Choices[0].Message.Content, nil
}

// FallbackNarrative renders the report as deterministic prose. It doubles
// as the prompt body for the LLM path.
func FallbackNarrative(report models.ScenarioReport) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Scenario %q:", report.ScenarioName)
	for _, wv := range report.Worldviews {
		if wv.Consistent {
			fmt.Fprintf(&sb, " worldview %q is self-consistent with the observations.", wv.Name)
		} else {
			fmt.Fprintf(&sb, " worldview %q contradicts itself under the observations.", wv.Name)
		}
	}
	for _, d := range report.Disagreements {
		if d.Disagree {
			fmt.Fprintf(&sb, " Worldviews %q and %q disagree on at least one outcome.", d.FirstName, d.SecondName)
		}
	}
	if report.Underdetermined {
		sb.WriteString(" The observations underdetermine the choice of worldview.")
	} else {
		sb.WriteString(" The observations do not exhibit underdetermination here.")
	}
	if report.Grounding != nil {
		if report.Grounding.Consistent {
			sb.WriteString(" The externally grounded worldview is consistent with the observations.")
		} else {
			sb.WriteString(" The externally grounded worldview is not consistent with the observations.")
		}
	}
	return sb.String()
}
