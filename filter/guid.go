package filter

import "github.com/google/uuid"

// GUIDAssigner gives every object without an explicit object_guid a
// fresh random one, using the same value for its begin and end events.
type GUIDAssigner struct {
	next    Filter
	stack   []string
	newGUID func() string
}

// AssignGUIDs returns a GUIDAssigner forwarding to next.
func AssignGUIDs(next Filter) *GUIDAssigner {
	return &GUIDAssigner{next: next, newGUID: uuid.NewString}
}

func hasGUID(params *Parameters) bool {
	v, ok := params.Value(ParameterGUID)
	return ok && FormatValue(v) != ""
}

func (g *GUIDAssigner) BeginWikiDocument(name string, params *Parameters) error {
	return g.next.BeginWikiDocument(name, params)
}

func (g *GUIDAssigner) EndWikiDocument(name string, params *Parameters) error {
	return g.next.EndWikiDocument(name, params)
}

func (g *GUIDAssigner) BeginWikiObject(name string, params *Parameters) error {
	if hasGUID(params) {
		g.stack = append(g.stack, "")
		return g.next.BeginWikiObject(name, params)
	}
	guid := g.newGUID()
	g.stack = append(g.stack, guid)
	return g.next.BeginWikiObject(name, params.Clone().Set(ParameterGUID, guid))
}

func (g *GUIDAssigner) EndWikiObject(name string, params *Parameters) error {
	n := len(g.stack)
	if n == 0 {
		return g.next.EndWikiObject(name, params)
	}
	guid := g.stack[n-1]
	g.stack = g.stack[:n-1]
	if guid == "" || hasGUID(params) {
		return g.next.EndWikiObject(name, params)
	}
	return g.next.EndWikiObject(name, params.Clone().Set(ParameterGUID, guid))
}

func (g *GUIDAssigner) OnWikiObjectProperty(name string, value any, params *Parameters) error {
	return g.next.OnWikiObjectProperty(name, value, params)
}
