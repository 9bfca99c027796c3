package repl

// Entry is one remembered input and its outcome.
type Entry struct {
	Input  string
	Result string
}

// History maps inputs to their last result, in first-seen order. A
// positive limit evicts the oldest entries.
type History struct {
	limit  int
	order  []string
	values map[string]string
}

func NewHistory(limit int) *History {
	return &History{limit: limit, values: map[string]string{}}
}

// Record stores result under input. Re-recording an input updates it in place.
func (h *History) Record(input, result string) {
	if _, seen := h.values[input]; !seen {
		h.order = append(h.order, input)
	}
	h.values[input] = result
	for h.limit > 0 && len(h.order) > h.limit {
		delete(h.values, h.order[0])
		h.order = h.order[1:]
	}
}

func (h *History) Lookup(input string) (string, bool) {
	v, ok := h.values[input]
	return v, ok
}

func (h *History) Len() int { return len(h.order) }

func (h *History) Entries() []Entry {
	out := make([]Entry, len(h.order))
	for i, k := range h.order {
		out[i] = Entry{Input: k, Result: h.values[k]}
	}
	return out
}
