package resolve

import (
	"encoding/json"
	"strings"

	"github.com/actually-app/actually/core/types"
)

// ParseModelOutput recovers a {reply, actions} object from the model's raw
// text. The model is asked for bare JSON but may wrap it in commentary or
// code fences, so we take the substring between the first '{' and the last
// '}' and try that. If nothing parses, the whole raw text becomes the reply
// and the action list is empty. Best effort: pathological nested braces can
// still defeat this, which degrades the same way.
func ParseModelOutput(raw string) (string, []types.ActionInput) {
	reply := strings.TrimSpace(raw)
	actions := []types.ActionInput{}

	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end <= start {
		return reply, actions
	}

	var out struct {
		Reply   json.RawMessage   `json:"reply"`
		Actions []json.RawMessage `json:"actions"`
	}
	if err := json.Unmarshal([]byte(raw[start:end+1]), &out); err != nil {
		return reply, actions
	}

	var replyStr string
	if err := json.Unmarshal(out.Reply, &replyStr); err == nil {
		reply = strings.TrimSpace(replyStr)
	}

	return reply, normalizeActions(out.Actions)
}

// normalizeActions keeps every element that is a non-null object with a
// "type" field. Other fields are carried over as-is; mistyped ones are
// dropped rather than failing the element. Unknown action types survive here
// and are ignored by the executor.
func normalizeActions(raws []json.RawMessage) []types.ActionInput {
	actions := []types.ActionInput{}
	for _, raw := range raws {
		var probe map[string]any
		if err := json.Unmarshal(raw, &probe); err != nil || probe == nil {
			continue
		}
		typ, _ := probe["type"].(string)
		if typ == "" {
			continue
		}

		var action types.ActionInput
		_ = json.Unmarshal(raw, &action)
		action.Type = typ
		actions = append(actions, action)
	}
	return actions
}
