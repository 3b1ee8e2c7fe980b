package duckchat

import (
	"strings"

	"github.com/tidwall/gjson"
)

// LineKind classifies a considered stream line.
type LineKind int

const (
	// LineFragment is a line whose payload parsed; its message text
	// (possibly empty) joins the reply.
	LineFragment LineKind = iota
	// LineUnparseable is a line that mentions "message" but whose payload
	// is not valid JSON. It is skipped.
	LineUnparseable
)

// String returns the metric label for the kind.
func (k LineKind) String() string {
	if k == LineFragment {
		return "fragment"
	}
	return "unparseable"
}

// Line is the classification of one considered stream line.
type Line struct {
	Kind LineKind
	Text string
}

const dataPrefix = "data: "

// ClassifyLine inspects one line of the upstream body. Lines that do not
// contain "message" are not considered and ok is false. For considered
// lines the payload is the text after the first "data: " up to the next
// one. A missing or null message field yields an empty fragment.
func ClassifyLine(line string) (l Line, ok bool) {
	if !strings.Contains(line, "message") {
		return Line{}, false
	}

	_, after, found := strings.Cut(line, dataPrefix)
	if !found {
		return Line{Kind: LineUnparseable}, true
	}
	payload, _, _ := strings.Cut(after, dataPrefix)
	payload = strings.TrimSpace(payload)

	if !gjson.Valid(payload) {
		return Line{Kind: LineUnparseable}, true
	}

	msg := gjson.Get(payload, "message")
	if !msg.Exists() || msg.Type == gjson.Null {
		return Line{Kind: LineFragment}, true
	}
	return Line{Kind: LineFragment, Text: msg.String()}, true
}

// Reassembly is the outcome of Reassemble.
type Reassembly struct {
	Content   string
	Fragments int
	Skipped   int
}

// Reassemble splits raw on "\n", classifies each line and concatenates
// fragment texts in order with no separator.
func Reassemble(raw string) Reassembly {
	var (
		b   strings.Builder
		out Reassembly
	)
	for _, line := range strings.Split(raw, "\n") {
		l, ok := ClassifyLine(line)
		if !ok {
			continue
		}
		switch l.Kind {
		case LineFragment:
			out.Fragments++
			b.WriteString(l.Text)
		case LineUnparseable:
			out.Skipped++
		}
	}
	out.Content = b.String()
	return out
}
