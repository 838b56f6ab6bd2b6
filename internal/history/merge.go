package history

import (
	"fmt"
	"io/fs"
	"os"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/cespare/xxhash/v2"
)

// Fingerprint identifies an entry by content for de-duplication.
func (e Entry) Fingerprint() uint64 {
	d := xxhash.New()
	_, _ = d.WriteString(e.Expression)
	_, _ = d.Write([]byte{0})
	_, _ = d.WriteString(e.Result)
	_, _ = d.Write([]byte{0})
	_, _ = d.WriteString(e.Timestamp)
	return d.Sum64()
}

// Merge appends entries not already present (by fingerprint) after the current
// ones, keeps the limit, and saves. It returns how many were added.
func (h *History) Merge(entries []Entry) (int, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	seen := make(map[uint64]bool, len(h.entries))
	for _, e := range h.entries {
		seen[e.Fingerprint()] = true
	}
	added := 0
	for _, e := range entries {
		fp := e.Fingerprint()
		if seen[fp] {
			continue
		}
		seen[fp] = true
		h.entries = append(h.entries, e)
		added++
	}
	if len(h.entries) > h.limit {
		h.entries = h.entries[:h.limit]
	}
	return added, h.saveLocked()
}

// ImportGlob merges every export file under root matching pattern, such as
// "backups/**/*.json". Files are visited in lexical order.
func (h *History) ImportGlob(root, pattern string) (int, error) {
	fsys := os.DirFS(root)
	matches, err := doublestar.Glob(fsys, pattern)
	if err != nil {
		return 0, fmt.Errorf("glob %q: %w", pattern, err)
	}
	sort.Strings(matches)
	var all []Entry
	for _, m := range matches {
		entries, err := readExport(fsys, m)
		if err != nil {
			return 0, fmt.Errorf("%s: %w", m, err)
		}
		all = append(all, entries...)
	}
	return h.Merge(all)
}

func readExport(fsys fs.FS, name string) ([]Entry, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return decodeExport(f)
}
