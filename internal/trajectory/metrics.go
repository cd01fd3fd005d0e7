package trajectory

import (
	"math"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"

	"github.com/trajview-io/trajview/internal/models"
)

// eventMeta is the slice of an event record the duration metrics read.
type eventMeta struct {
	Timestamp string `json:"timestamp"`
	Source    string `json:"source"`
}

// readEventMetas parses every event file it can, silently dropping the rest,
// and returns the events sorted stably by raw timestamp string. Events
// without a timestamp sort first.
func readEventMetas(src Source) []eventMeta {
	var events []eventMeta
	for _, path := range eventFiles(src.EventsDir()) {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var meta eventMeta
		if err := json.Unmarshal(data, &meta, jsonOpts); err != nil {
			continue
		}
		events = append(events, meta)
	}
	slices.SortStableFunc(events, func(a, b eventMeta) int {
		return strings.Compare(a.Timestamp, b.Timestamp)
	})
	return events
}

// conversationSeconds sums the positive gaps between consecutive events,
// excluding gaps that follow a user event (time spent waiting on the user is
// not conversation time). Pairs with a missing or unparsable endpoint
// contribute nothing.
func conversationSeconds(events []eventMeta) float64 {
	var total float64
	for i := 1; i < len(events); i++ {
		prev := events[i-1]
		curr := events[i]
		if prev.Source == "user" {
			continue
		}
		if prev.Timestamp == "" || curr.Timestamp == "" {
			continue
		}
		prevT, err := ParseTimestamp(prev.Timestamp)
		if err != nil {
			continue
		}
		currT, err := ParseTimestamp(curr.Timestamp)
		if err != nil {
			continue
		}
		if d := currT.Sub(prevT).Seconds(); d > 0 {
			total += d
		}
	}
	return round1(total)
}

// avgAgentTurnSeconds averages the gap from each agent event back to the
// event that triggered it. The trigger is the previous event carrying a
// timestamp, whatever its source and whether or not that timestamp parses;
// events without a timestamp neither sample nor advance the trigger.
func avgAgentTurnSeconds(events []eventMeta) float64 {
	var turns []float64
	lastTrigger := ""
	for _, ev := range events {
		if ev.Timestamp == "" {
			continue
		}
		if ev.Source == "agent" && lastTrigger != "" {
			curr, currErr := ParseTimestamp(ev.Timestamp)
			prev, prevErr := ParseTimestamp(lastTrigger)
			if currErr == nil && prevErr == nil {
				if d := curr.Sub(prev).Seconds(); d > 0 {
					turns = append(turns, d)
				}
			}
		}
		lastTrigger = ev.Timestamp
	}

	if len(turns) == 0 {
		return 0
	}
	var sum float64
	for _, d := range turns {
		sum += d
	}
	return round1(sum / float64(len(turns)))
}

// Summarize computes the index record for one trajectory. Failures inside
// the trajectory (unreadable base state, bad event files) degrade the
// affected fields to their defaults instead of failing the build.
func Summarize(src Source) models.TrajectorySummary {
	sum := models.TrajectorySummary{
		ID:      src.ID,
		Title:   src.ID,
		Model:   jsontext.Value("null"),
		Created: src.ModTime.Format(time.ANSIC),
	}

	if view, ok := readBaseState(src.BaseStatePath()); ok {
		if agent, ok := decodeValue[agentView](view.Agent); ok {
			if title, ok := decodeValue[*string](agent.ID); ok && title != nil {
				sum.Title = *title
			}
			if llm, ok := decodeValue[llmView](agent.LLM); ok && len(llm.Model) > 0 {
				sum.Model = llm.Model
			}
		}
		if stats, ok := decodeValue[statsView](view.Stats); ok {
			usage := stats.UsageToMetrics.Agent.AccumulatedTokenUsage
			sum.PromptTokens = usage.PromptTokens
			sum.CompletionTokens = usage.CompletionTokens
			sum.ReasoningTokens = usage.ReasoningTokens
			sum.CacheReadTokens = usage.CacheReadTokens
		}
	}

	sum.TotalTokens = sum.PromptTokens + sum.CompletionTokens
	if sum.PromptTokens > 0 {
		sum.CachePct = int(math.Round(float64(sum.CacheReadTokens) / float64(sum.PromptTokens) * 100))
	}

	sum.EventCount = len(eventFiles(src.EventsDir()))
	events := readEventMetas(src)
	sum.TotalConversationTime = conversationSeconds(events)
	sum.AvgAgentTurnTime = avgAgentTurnSeconds(events)
	return sum
}
