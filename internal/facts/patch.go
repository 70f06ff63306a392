package facts

import "strings"

// Default marker and anchor of a profile README.
const (
	DefaultMarker = "- ⚡ Fun fact **"
	DefaultAnchor = "- 📫 How to reach me **"

	payloadEnd = "**"
)

// Outcome describes what a patch did to a document.
type Outcome int

const (
	// Unchanged means neither the marker nor the anchor was found.
	Unchanged Outcome = iota
	// Replaced means at least one existing marker line got the new fact.
	Replaced
	// Inserted means a marker line was added after the anchor line.
	Inserted
)

func (o Outcome) String() string {
	switch o {
	case Replaced:
		return "replaced"
	case Inserted:
		return "inserted"
	default:
		return "unchanged"
	}
}

// Result is a patched document.
type Result struct {
	Content  string
	Outcome  Outcome
	Previous string // payload of the first replaced marker line
	Line     int    // 1-based line of the first replaced or inserted marker, 0 when unchanged
}

// Patcher rewrites the fact line of a text document.
type Patcher struct {
	// Marker opens the fact line. The payload runs up to the next "**".
	Marker string
	// Anchor identifies the line after which a missing fact line is inserted.
	Anchor string
}

// NewPatcher returns a Patcher with the default marker and the given anchor.
// An empty anchor selects DefaultAnchor.
func NewPatcher(anchor string) Patcher {
	if anchor == "" {
		anchor = DefaultAnchor
	}
	return Patcher{Marker: DefaultMarker, Anchor: anchor}
}

// Patch puts fact into every marker line of doc, or inserts a marker line after the anchor.
func (p Patcher) Patch(doc, fact string) Result {
	lines := strings.Split(doc, "\n")
	res := Result{Outcome: Unchanged}

	for i, line := range lines {
		patched, previous, ok := p.replaceAll(line, fact)
		if !ok {
			continue
		}
		if res.Outcome == Unchanged {
			res.Outcome = Replaced
			res.Previous = previous
			res.Line = i + 1
		}
		lines[i] = patched
	}
	if res.Outcome == Replaced {
		res.Content = strings.Join(lines, "\n")
		return res
	}

	for i, line := range lines {
		if !strings.Contains(line, p.Anchor) {
			continue
		}
		inserted := p.Marker + fact + payloadEnd
		if strings.HasSuffix(line, "\r") {
			inserted += "\r"
		}
		out := make([]string, 0, len(lines)+1)
		out = append(out, lines[:i+1]...)
		out = append(out, inserted)
		out = append(out, lines[i+1:]...)
		res.Outcome = Inserted
		res.Line = i + 2
		res.Content = strings.Join(out, "\n")
		return res
	}

	res.Content = doc
	return res
}

// replaceAll rewrites the payload of every terminated marker in line.
// previous is the first payload replaced; ok reports whether any was.
func (p Patcher) replaceAll(line, fact string) (patched, previous string, ok bool) {
	var b strings.Builder
	rest := line
	for {
		start := strings.Index(rest, p.Marker)
		if start < 0 {
			break
		}
		head := start + len(p.Marker)
		end := strings.Index(rest[head:], payloadEnd)
		if end < 0 {
			break
		}
		if !ok {
			previous = rest[head : head+end]
			ok = true
		}
		b.WriteString(rest[:head])
		b.WriteString(fact)
		b.WriteString(payloadEnd)
		rest = rest[head+end+len(payloadEnd):]
	}
	if !ok {
		return line, "", false
	}
	b.WriteString(rest)
	return b.String(), previous, true
}
