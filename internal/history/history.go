// Package history keeps the calculator's newest-first list of calculations in a
// storage key and moves it in and out of JSON export files.
package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"
)

const (
	KeyHistory   = "calculatorHistory"
	KeyTheme     = "calculatorTheme"
	KeyAngleMode = "calculatorAngleMode"

	DefaultLimit = 50

	// TimestampLayout matches the en-US locale string browsers produce.
	TimestampLayout = "1/2/2006, 3:04:05 PM"
)

var ErrInvalidFormat = errors.New("invalid history file format")

type Entry struct {
	Expression string `json:"expression"`
	Result     string `json:"result"`
	Timestamp  string `json:"timestamp"`
}

// Store is the key/value persistence history is saved through.
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string) error
}

type History struct {
	store Store
	limit int
	now   func() time.Time

	mu      sync.Mutex
	entries []Entry
}

func New(store Store, limit int) *History {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &History{store: store, limit: limit, now: time.Now}
}

// Load replaces the in-memory list with the stored one. A missing key is an empty history.
func (h *History) Load() error {
	raw, ok := h.store.Get(KeyHistory)
	var entries []Entry
	if ok && raw != "" {
		if err := json.Unmarshal([]byte(raw), &entries); err != nil {
			return fmt.Errorf("decode %s: %w", KeyHistory, err)
		}
	}
	h.mu.Lock()
	h.entries = entries
	h.mu.Unlock()
	return nil
}

// Add records a calculation at the front, dropping the oldest past the limit.
func (h *History) Add(expression, result string) (Entry, error) {
	e := Entry{Expression: expression, Result: result, Timestamp: h.now().Format(TimestampLayout)}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = append([]Entry{e}, h.entries...)
	if len(h.entries) > h.limit {
		h.entries = h.entries[:h.limit]
	}
	return e, h.saveLocked()
}

func (h *History) Entries() []Entry {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]Entry(nil), h.entries...)
}

func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}

func (h *History) Clear() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = nil
	return h.saveLocked()
}

func (h *History) saveLocked() error {
	entries := h.entries
	if entries == nil {
		entries = []Entry{}
	}
	raw, err := json.Marshal(entries)
	if err != nil {
		return err
	}
	return h.store.Set(KeyHistory, string(raw))
}

type exportFile struct {
	History  []Entry `json:"history"`
	Exported string  `json:"exported"`
}

// Export writes {"history": [...], "exported": <RFC 3339 time>}.
func (h *History) Export(w io.Writer) error {
	file := exportFile{History: h.Entries(), Exported: h.now().UTC().Format(time.RFC3339)}
	if file.History == nil {
		file.History = []Entry{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(file)
}

// Import replaces the history with the entries of an exported file and saves it.
func (h *History) Import(r io.Reader) (int, error) {
	entries, err := decodeExport(r)
	if err != nil {
		return 0, err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = entries
	return len(entries), h.saveLocked()
}

func decodeExport(r io.Reader) ([]Entry, error) {
	var file struct {
		History *[]Entry `json:"history"`
	}
	if err := json.NewDecoder(r).Decode(&file); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	if file.History == nil {
		return nil, ErrInvalidFormat
	}
	return *file.History, nil
}

// Record adds a calculation, discarding the entry; it lets History act as a
// session recorder.
func (h *History) Record(expression, result string) error {
	_, err := h.Add(expression, result)
	return err
}
