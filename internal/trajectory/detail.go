package trajectory

import (
	"log"
	"os"
	"time"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"

	"github.com/trajview-io/trajview/internal/models"
)

// BuildDetail assembles the data/<id>/trajectory.json record. The id,
// created and eventCount fields are always present; the raw base state and
// the model are attached only when base_state.json parses.
func BuildDetail(src Source) models.TrajectoryDetail {
	detail := models.TrajectoryDetail{
		ID:      src.ID,
		Created: src.ModTime.Format(time.ANSIC),
	}

	if data, err := os.ReadFile(src.BaseStatePath()); err == nil {
		var raw jsontext.Value
		if err := json.Unmarshal(data, &raw, jsonOpts); err == nil {
			detail.BaseState = raw
			if view, ok := decodeValue[baseStateView](raw); ok {
				detail.Model = modelValue(view)
			}
		}
	}

	detail.EventCount = len(eventFiles(src.EventsDir()))
	return detail
}

// modelValue extracts agent.llm.model from a parsed snapshot. A missing
// agent or llm reads as an empty object, so the model comes out as an
// explicit null; a present non-object makes the model unknowable and yields
// nothing, dropping the field from the record.
func modelValue(view baseStateView) jsontext.Value {
	var agent agentView
	if len(view.Agent) > 0 {
		if view.Agent.Kind() != '{' {
			return nil
		}
		agent, _ = decodeValue[agentView](view.Agent)
	}
	if len(agent.LLM) > 0 {
		if agent.LLM.Kind() != '{' {
			return nil
		}
		llm, _ := decodeValue[llmView](agent.LLM)
		if len(llm.Model) > 0 {
			return llm.Model
		}
	}
	return jsontext.Value("null")
}

// ReadEvents loads every event file of the trajectory in ascending filename
// order, keeping each record verbatim. Files that cannot be read or parsed
// are skipped with a warning. The result is never nil.
func ReadEvents(src Source) []jsontext.Value {
	events := make([]jsontext.Value, 0)
	for _, path := range eventFiles(src.EventsDir()) {
		data, err := os.ReadFile(path)
		if err != nil {
			log.Printf("Warning: failed to read event %s: %v", path, err)
			continue
		}
		var raw jsontext.Value
		if err := json.Unmarshal(data, &raw, jsonOpts); err != nil {
			log.Printf("Warning: failed to parse event %s: %v", path, err)
			continue
		}
		events = append(events, raw)
	}
	return events
}
