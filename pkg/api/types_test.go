package api

import (
	"encoding/json"
	"slices"
	"testing"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

func TestNewModelList(t *testing.T) {
	names := []string{"gpt-4o-mini", "o3-mini", "claude-3-haiku-20240307"}
	list := NewModelList(names, 1700000000000)

	if list.Object != ObjectList {
		t.Errorf("Object = %q, want %q", list.Object, ObjectList)
	}
	for _, name := range names {
		count := 0
		for _, m := range list.Data {
			if m.ID == name {
				count++
				if m.Object != ObjectModel || m.OwnedBy != ModelOwner || m.Created != 1700000000000 {
					t.Errorf("descriptor for %q = %+v", name, m)
				}
			}
		}
		if count != 1 {
			t.Errorf("model %q listed %d times, want 1", name, count)
		}
	}
}

func TestModelListJSONKeys(t *testing.T) {
	data, err := json.Marshal(NewModelList([]string{"gpt-4o-mini"}, 1700000000000))
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var got struct {
		Object string           `json:"object"`
		Data   []map[string]any `json:"data"`
	}
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if len(got.Data) != 1 {
		t.Fatalf("data = %d entries, want 1", len(got.Data))
	}
	keys := make([]string, 0, len(got.Data[0]))
	for k := range got.Data[0] {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	if want := []string{"created", "id", "object", "owned_by"}; !slices.Equal(keys, want) {
		t.Errorf("descriptor keys = %v, want %v", keys, want)
	}
	if got.Data[0]["created"] != float64(1700000000000) {
		t.Errorf("created = %v", got.Data[0]["created"])
	}
}

func TestRouteErrorJSON(t *testing.T) {
	data, err := json.Marshal(NewRouteError([]string{"gpt-4o-mini"}))
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var got map[string]any
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if got["action"] != "error" {
		t.Errorf("action = %v, want error", got["action"])
	}
	if got["status"] != float64(404) {
		t.Errorf("status = %v, want 404", got["status"])
	}
	if got["usage"] != RouteUsage {
		t.Errorf("usage = %v", got["usage"])
	}
	models, _ := got["models"].([]any)
	if len(models) != 1 || models[0] != "gpt-4o-mini" {
		t.Errorf("models = %v", got["models"])
	}
}

func TestMessageText(t *testing.T) {
	tests := []struct {
		name string
		msg  openai.ChatCompletionMessage
		want string
	}{
		{"plain", openai.ChatCompletionMessage{Role: "user", Content: "hi"}, "hi"},
		{"empty", openai.ChatCompletionMessage{Role: "user"}, ""},
		{
			"multi part",
			openai.ChatCompletionMessage{Role: "user", MultiContent: []openai.ChatMessagePart{
				{Type: openai.ChatMessagePartTypeText, Text: "first"},
				{Type: openai.ChatMessagePartTypeImageURL, ImageURL: &openai.ChatMessageImageURL{URL: "http://x"}},
				{Type: openai.ChatMessagePartTypeText, Text: "second"},
			}},
			"first\nsecond",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MessageText(tt.msg); got != tt.want {
				t.Errorf("MessageText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNewCompletionID(t *testing.T) {
	now := time.UnixMilli(1700000000123)
	if got := NewCompletionID(now); got != "chatcmpl-1700000000123" {
		t.Errorf("NewCompletionID() = %q", got)
	}
}
