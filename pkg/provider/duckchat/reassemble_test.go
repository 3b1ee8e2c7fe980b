package duckchat

import "testing"

func TestReassemble(t *testing.T) {
	tests := []struct {
		name          string
		raw           string
		wantContent   string
		wantFragments int
		wantSkipped   int
	}{
		{
			name:          "two fragments then done",
			raw:           "data: {\"message\":\"Hel\"}\ndata: {\"message\":\"lo\"}\ndata: [DONE]\n",
			wantContent:   "Hello",
			wantFragments: 2,
		},
		{
			name:          "lines without message are ignored",
			raw:           "data: {\"role\":\"assistant\"}\n\ndata: {\"message\":\"Hi\"}\n",
			wantContent:   "Hi",
			wantFragments: 1,
		},
		{
			name:          "null message contributes empty text",
			raw:           "data: {\"message\":null}\ndata: {\"message\":\"x\"}\n",
			wantContent:   "x",
			wantFragments: 2,
		},
		{
			name:          "unparseable line is skipped",
			raw:           "data: {\"message\":\"A\"}\ndata: {\"message\": broken\ndata: {\"message\":\"B\"}\n",
			wantContent:   "AB",
			wantFragments: 2,
			wantSkipped:   1,
		},
		{
			name:        "message line without data prefix is unparseable",
			raw:         "message: oops\n",
			wantSkipped: 1,
		},
		{
			name:          "payload stops at next data prefix",
			raw:           "data: {\"message\":\"one\"} data: {\"message\":\"two\"}\n",
			wantContent:   "one",
			wantFragments: 1,
		},
		{
			name:          "carriage returns are tolerated",
			raw:           "data: {\"message\":\"a\"}\r\ndata: {\"message\":\"b\"}\r\n",
			wantContent:   "ab",
			wantFragments: 2,
		},
		{
			name:        "plain text body",
			raw:         "upstream is down",
			wantContent: "",
		},
		{
			name:        "empty body",
			raw:         "",
			wantContent: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Reassemble(tt.raw)
			if got.Content != tt.wantContent {
				t.Errorf("Content = %q, want %q", got.Content, tt.wantContent)
			}
			if got.Fragments != tt.wantFragments {
				t.Errorf("Fragments = %d, want %d", got.Fragments, tt.wantFragments)
			}
			if got.Skipped != tt.wantSkipped {
				t.Errorf("Skipped = %d, want %d", got.Skipped, tt.wantSkipped)
			}
		})
	}
}

func TestReassembleIsPure(t *testing.T) {
	raw := "data: {\"message\":\"same\"}\n"
	first := Reassemble(raw)
	second := Reassemble(raw)
	if first != second {
		t.Errorf("Reassemble not deterministic: %+v vs %+v", first, second)
	}
}

func TestClassifyLine(t *testing.T) {
	tests := []struct {
		line     string
		wantOK   bool
		wantKind LineKind
		wantText string
	}{
		{"", false, 0, ""},
		{"data: [DONE]", false, 0, ""},
		{`data: {"message":"hi"}`, true, LineFragment, "hi"},
		{`data: {"message":42}`, true, LineFragment, "42"},
		{`data: {"action":"success","message":""}`, true, LineFragment, ""},
		{`data: {"message"`, true, LineUnparseable, ""},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			l, ok := ClassifyLine(tt.line)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if l.Kind != tt.wantKind {
				t.Errorf("Kind = %v, want %v", l.Kind, tt.wantKind)
			}
			if l.Text != tt.wantText {
				t.Errorf("Text = %q, want %q", l.Text, tt.wantText)
			}
		})
	}
}

func TestLineKindString(t *testing.T) {
	if LineFragment.String() != "fragment" {
		t.Errorf("LineFragment = %q", LineFragment.String())
	}
	if LineUnparseable.String() != "unparseable" {
		t.Errorf("LineUnparseable = %q", LineUnparseable.String())
	}
}
