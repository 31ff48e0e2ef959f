package filter

// Recorder is a Filter that keeps every event it receives.
type Recorder struct {
	events []Event
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Events returns the recorded events.
func (r *Recorder) Events() []Event {
	return r.events
}

// Reset drops all recorded events.
func (r *Recorder) Reset() {
	r.events = r.events[:0]
}

func (r *Recorder) add(t EventType, k Kind, name string, value any, params *Parameters) error {
	r.events = append(r.events, Event{
		Type:   t,
		Kind:   k,
		Name:   name,
		Params: params.Clone(),
		Value:  value,
	})
	return nil
}

func (r *Recorder) BeginWikiDocument(name string, params *Parameters) error {
	return r.add(EventBegin, KindWikiDocument, name, nil, params)
}

func (r *Recorder) EndWikiDocument(name string, params *Parameters) error {
	return r.add(EventEnd, KindWikiDocument, name, nil, params)
}

func (r *Recorder) BeginWikiObject(name string, params *Parameters) error {
	return r.add(EventBegin, KindWikiObject, name, nil, params)
}

func (r *Recorder) EndWikiObject(name string, params *Parameters) error {
	return r.add(EventEnd, KindWikiObject, name, nil, params)
}

func (r *Recorder) OnWikiObjectProperty(name string, value any, params *Parameters) error {
	return r.add(EventOn, KindWikiObjectProperty, name, value, params)
}
