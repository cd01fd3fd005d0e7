package trajectory

import (
	"os"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
)

// Duplicate keys in source records are tolerated rather than rejected; where
// a field is read, the last occurrence wins.
var jsonOpts = json.JoinOptions(jsontext.AllowDuplicateNames(true))

// baseStateView captures the two top-level regions of base_state.json that
// feed the summary. Both stay raw so that a malformed region degrades only
// the fields derived from it.
type baseStateView struct {
	Agent jsontext.Value `json:"agent"`
	Stats jsontext.Value `json:"stats"`
}

// agentView is the slice of the agent region the summary reads. ID stays raw:
// a missing key and a present-but-unusable value both fall back to defaults.
type agentView struct {
	ID  jsontext.Value `json:"id"`
	LLM jsontext.Value `json:"llm"`
}

// llmView is the slice of the llm region the summary and detail read.
type llmView struct {
	Model jsontext.Value `json:"model"`
}

// statsView mirrors the nested path to the accumulated token counters:
// stats.usage_to_metrics.agent.accumulated_token_usage. Any missing link
// leaves the counters at zero.
type statsView struct {
	UsageToMetrics usageMetricsView `json:"usage_to_metrics"`
}

type usageMetricsView struct {
	Agent agentUsageView `json:"agent"`
}

type agentUsageView struct {
	AccumulatedTokenUsage tokenUsageView `json:"accumulated_token_usage"`
}

type tokenUsageView struct {
	PromptTokens     int64 `json:"prompt_tokens"`
	CompletionTokens int64 `json:"completion_tokens"`
	ReasoningTokens  int64 `json:"reasoning_tokens"`
	CacheReadTokens  int64 `json:"cache_read_tokens"`
}

// decodeValue decodes a captured raw value into a narrow view, reporting
// whether the value was present and shaped as expected.
func decodeValue[T any](raw jsontext.Value) (T, bool) {
	var v T
	if len(raw) == 0 {
		return v, false
	}
	if err := json.Unmarshal(raw, &v, jsonOpts); err != nil {
		var zero T
		return zero, false
	}
	return v, true
}

// readBaseState reads and decodes base_state.json into the narrow view.
// A missing, unreadable or malformed file reports false; callers keep their
// defaults in that case.
func readBaseState(path string) (baseStateView, bool) {
	var view baseStateView
	data, err := os.ReadFile(path)
	if err != nil {
		return view, false
	}
	if err := json.Unmarshal(data, &view, jsonOpts); err != nil {
		return baseStateView{}, false
	}
	return view, true
}
