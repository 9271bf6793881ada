package render

// Recorder is a Terminal that keeps every intent. Tests use it to count
// render calls per category.
type Recorder struct {
	Inits    int
	Cleanups int
	Intents  []Intent
}

func (r *Recorder) Initialize() error {
	r.Inits++
	return nil
}

func (r *Recorder) Cleanup() error {
	r.Cleanups++
	return nil
}

func (r *Recorder) Draw(in Intent) error {
	r.Intents = append(r.Intents, in)
	return nil
}

// Count returns how many intents of category c were drawn.
func (r *Recorder) Count(c Category) int {
	n := 0
	for _, in := range r.Intents {
		if in.Category == c {
			n++
		}
	}
	return n
}

// Last returns the most recent intent.
func (r *Recorder) Last() (Intent, bool) {
	if len(r.Intents) == 0 {
		return Intent{}, false
	}
	return r.Intents[len(r.Intents)-1], true
}

// Reset forgets recorded intents.
func (r *Recorder) Reset() { r.Intents = nil }
