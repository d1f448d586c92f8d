package punctuation

// Pair is an opening and closing delimiter. A pair whose Open and Close are
// equal is symmetric, like a straight double quote.
type Pair struct {
	Open  string
	Close string
}

// Symmetric reports whether the pair opens and closes with the same text.
func (p Pair) Symmetric() bool {
	return p.Open == p.Close
}

// WesternPairs are the delimiters tracked for most Latin-script languages.
var WesternPairs = []Pair{
	{Open: "(", Close: ")"},
	{Open: `"`, Close: `"`},
	{Open: "[", Close: "]"},
}

// SpanishPairs extends WesternPairs with inverted question and exclamation
// marks, which open a clause closed by the regular mark.
var SpanishPairs = append(append([]Pair(nil), WesternPairs...),
	Pair{Open: "¿", Close: "?"},
	Pair{Open: "¡", Close: "!"},
)

// tracker follows one delimiter pair.
type tracker interface {
	feed(text string)
	pending() (closer string, ok bool)
	reset()
}

// toggle tracks a symmetric pair by parity.
type toggle struct {
	mark  string
	count int
}

func (t *toggle) feed(text string) {
	if text == t.mark {
		t.count++
	}
}

func (t *toggle) pending() (string, bool) {
	return t.mark, t.count%2 == 1
}

func (t *toggle) reset() { t.count = 0 }

// counter tracks an asymmetric pair. Unmatched closes are counted but never
// make the pair pending.
type counter struct {
	open, close    string
	opened, closed int
}

func (c *counter) feed(text string) {
	switch text {
	case c.open:
		c.opened++
	case c.close:
		c.closed++
	}
}

func (c *counter) pending() (string, bool) {
	return c.close, c.opened > c.closed
}

func (c *counter) reset() {
	c.opened, c.closed = 0, 0
}

// Stack tracks unclosed paired delimiters for one sentence in progress.
// The zero value tracks nothing; use NewStack.
type Stack struct {
	trackers []tracker
}

// NewStack creates a Stack for pairs. With no pairs it uses SpanishPairs.
func NewStack(pairs ...Pair) *Stack {
	if len(pairs) == 0 {
		pairs = SpanishPairs
	}

	s := &Stack{trackers: make([]tracker, 0, len(pairs))}
	for _, p := range pairs {
		if p.Symmetric() {
			s.trackers = append(s.trackers, &toggle{mark: p.Open})
		} else {
			s.trackers = append(s.trackers, &counter{open: p.Open, close: p.Close})
		}
	}
	return s
}

// Feed records text. Text that is not a configured delimiter is ignored.
func (s *Stack) Feed(text string) {
	for _, t := range s.trackers {
		t.feed(text)
	}
}

// Pending returns the closing delimiters still expected, in pair order.
func (s *Stack) Pending() []string {
	var out []string
	for _, t := range s.trackers {
		if closer, ok := t.pending(); ok {
			out = append(out, closer)
		}
	}
	return out
}

// Balanced reports whether no delimiter is pending.
func (s *Stack) Balanced() bool {
	for _, t := range s.trackers {
		if _, ok := t.pending(); ok {
			return false
		}
	}
	return true
}

// Reset clears all counts.
func (s *Stack) Reset() {
	for _, t := range s.trackers {
		t.reset()
	}
}
