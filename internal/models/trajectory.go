// Package models defines the JSON records trajview writes for the static viewer.
package models

import "github.com/go-json-experiment/json/jsontext"

// TrajectorySummary is one entry of the data/trajectories.json index.
// Every field is recomputed from source on every build; the viewer's list
// page renders these directly.
type TrajectorySummary struct {
	ID                    string         `json:"id"`
	Title                 string         `json:"title"`
	Model                 jsontext.Value `json:"model"` // raw value from the snapshot, null when absent
	Created               string         `json:"created"`
	EventCount            int            `json:"eventCount"`
	PromptTokens          int64          `json:"promptTokens"`
	CompletionTokens      int64          `json:"completionTokens"`
	ReasoningTokens       int64          `json:"reasoningTokens"`
	CacheReadTokens       int64          `json:"cacheReadTokens"`
	CachePct              int            `json:"cachePct"`
	TotalTokens           int64          `json:"totalTokens"`
	AvgAgentTurnTime      float64        `json:"avgAgentTurnTime"`
	TotalConversationTime float64        `json:"totalConversationTime"`
}

// TrajectoryDetail is the data/<id>/trajectory.json record. BaseState carries
// the source snapshot verbatim and is present only when the snapshot parsed.
// Model is present only when the snapshot has an agent.llm object, and is
// null when that object names no model.
type TrajectoryDetail struct {
	ID         string         `json:"id"`
	Created    string         `json:"created"`
	EventCount int            `json:"eventCount"`
	BaseState  jsontext.Value `json:"baseState,omitzero"`
	Model      jsontext.Value `json:"model,omitzero"`
}
