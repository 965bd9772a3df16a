package engine

import (
	"strconv"
	"strings"
)

// Tracker enforces the nesting limit and follows the JSON Pointer of the
// node being processed. The decoder and the encoder each own one per call.
type Tracker struct {
	MaxDepth int
	depth    int
	paths    []string
}

// NewTracker returns a Tracker rooted at the document. maxDepth <= 0 means
// unlimited.
func NewTracker(maxDepth int) *Tracker {
	return &Tracker{MaxDepth: maxDepth}
}

// Enter records one more level of container nesting and reports whether the
// limit still holds. Every Enter must be matched by Leave.
func (t *Tracker) Enter() bool {
	t.depth++
	return t.MaxDepth <= 0 || t.depth <= t.MaxDepth
}

// Leave undoes Enter.
func (t *Tracker) Leave() {
	if t.depth > 0 {
		t.depth--
	}
}

// Depth is the current nesting level.
func (t *Tracker) Depth() int { return t.depth }

// PushKey descends into an object member.
func (t *Tracker) PushKey(key string) {
	t.paths = append(t.paths, joinJSONPointer(t.top(), key))
}

// PushIndex descends into an array element.
func (t *Tracker) PushIndex(i int) {
	t.paths = append(t.paths, joinJSONPointer(t.top(), strconv.Itoa(i)))
}

// Pop undoes the last PushKey or PushIndex.
func (t *Tracker) Pop() {
	if n := len(t.paths); n > 0 {
		t.paths = t.paths[:n-1]
	}
}

// Pointer renders the current location; the document root is "/".
func (t *Tracker) Pointer() string {
	return normalizeIssuePath(t.top())
}

// ChildPointer renders the location of key under the current node without
// descending into it.
func (t *Tracker) ChildPointer(key string) string {
	return joinJSONPointer(t.top(), key)
}

func (t *Tracker) top() string {
	if n := len(t.paths); n > 0 {
		return t.paths[n-1]
	}
	return ""
}

func normalizeIssuePath(p string) string {
	if p == "" {
		return "/"
	}
	return p
}

var jsonPointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

func escapeJSONPointerToken(s string) string {
	return jsonPointerEscaper.Replace(s)
}

func joinJSONPointer(base, token string) string {
	return base + "/" + escapeJSONPointerToken(token)
}
