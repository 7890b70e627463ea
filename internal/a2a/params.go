package a2a

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/BerylCAtieno/content-studio-agent/internal/studio"
)

// keyAliases maps every accepted parameter name to its canonical key.
var keyAliases = map[string]string{
	"product":      "product",
	"product_id":   "product",
	"producto":     "product",
	"platform":     "platform",
	"plataforma":   "platform",
	"type":         "type",
	"content_type": "type",
	"tipo":         "type",
	"tone":         "tone",
	"tono":         "tone",
	"length":       "length",
	"longitud":     "length",
}

var listCommands = map[string]bool{
	"products":      true,
	"productos":     true,
	"list products": true,
}

// request is what the caller asked for: either the product list or a
// generation.
type request struct {
	listProducts bool
	input        studio.GenerateInput
}

// parseParams reads "key: value, key: value" text. Pairs may also be
// separated by newlines or semicolons. Unknown keys are ignored.
func parseParams(text string) map[string]string {
	text = strings.TrimSpace(text)
	data := make(map[string]string)

	pairs := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == '\n' || r == ';'
	})
	for _, pair := range pairs {
		parts := strings.SplitN(pair, ":", 2)
		if len(parts) != 2 {
			continue
		}
		key := strings.ToLower(strings.TrimSpace(parts[0]))
		key = strings.ReplaceAll(key, " ", "_")
		canonical, ok := keyAliases[key]
		if !ok {
			continue
		}
		if value := strings.TrimSpace(parts[1]); value != "" {
			data[canonical] = value
		}
	}
	return data
}

// dataParams reads the same keys from a JSON object part.
func dataParams(obj map[string]any) map[string]string {
	data := make(map[string]string)
	for k, v := range obj {
		canonical, ok := keyAliases[strings.ToLower(k)]
		if !ok || v == nil {
			continue
		}
		if value := strings.TrimSpace(fmt.Sprint(v)); value != "" {
			data[canonical] = value
		}
	}
	return data
}

func toInput(data map[string]string) studio.GenerateInput {
	return studio.GenerateInput{
		ProductID:   data["product"],
		Platform:    data["platform"],
		ContentType: data["type"],
		Tone:        data["tone"],
		Length:      data["length"],
	}
}

// extractRequest walks the message parts. Data objects and key: value text
// are merged, later parts winning. A data array is treated as conversation
// history and only its most recent text entry is read.
func extractRequest(msg A2AMessage) request {
	merged := make(map[string]string)
	var req request

	apply := func(text string) {
		text = cleanText(text)
		if text == "" {
			return
		}
		if listCommands[strings.ToLower(text)] {
			req.listProducts = true
			return
		}
		for k, v := range parseParams(text) {
			merged[k] = v
		}
	}

	for _, part := range msg.Parts {
		switch part.Kind {
		case "text":
			apply(part.Text)
		case "data":
			switch v := part.Data.(type) {
			case map[string]any:
				for k, val := range dataParams(v) {
					merged[k] = val
				}
			case []any:
				if text := lastHistoryText(v); text != "" {
					apply(text)
				}
			case string:
				var obj map[string]any
				if err := json.Unmarshal([]byte(v), &obj); err == nil {
					for k, val := range dataParams(obj) {
						merged[k] = val
					}
				}
			}
		}
	}

	req.input = toInput(merged)
	return req
}

func lastHistoryText(items []any) string {
	for i := len(items) - 1; i >= 0; i-- {
		item, ok := items[i].(map[string]any)
		if !ok {
			continue
		}
		if kind, _ := item["kind"].(string); kind != "text" {
			continue
		}
		if text, _ := item["text"].(string); cleanText(text) != "" {
			return text
		}
	}
	return ""
}

func cleanText(text string) string {
	text = strings.ReplaceAll(text, "<p>", "")
	text = strings.ReplaceAll(text, "</p>", "")
	return strings.TrimSpace(text)
}
