// Package store keeps the launch history and the pinned applications.
package store

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/jmylchreest/tilemenu/internal/model"
)

// ChangeType indicates the type of history change.
type ChangeType int

const (
	// ChangeTypeAdd indicates records were added.
	ChangeTypeAdd ChangeType = iota
	// ChangeTypeClear indicates all records were cleared.
	ChangeTypeClear
	// ChangeTypePrune indicates records were pruned.
	ChangeTypePrune
)

// ChangeEvent signals history content changes.
type ChangeEvent struct {
	Type  ChangeType
	Count int
}

// ErrHistoryClosed is returned when operations are attempted on a closed history.
var ErrHistoryClosed = errors.New("history is closed")

// Usage summarizes the launches of one application.
type Usage struct {
	DesktopID    string `json:"desktop_id" yaml:"desktop_id"`
	Name         string `json:"name" yaml:"name"`
	Count        int    `json:"count" yaml:"count"`
	LastLaunched int64  `json:"last_launched" yaml:"last_launched"`
}

// History holds launch records in launch order with thread-safe operations.
type History struct {
	mu      sync.RWMutex
	records []model.LaunchRecord
	index   map[string]bool // record id -> present

	persistence Persistence
	subscribers []chan ChangeEvent
	closed      bool
}

// NewHistory creates a History. If persistence is not nil it is used to
// store records; call Hydrate to load existing ones.
func NewHistory(persistence Persistence) *History {
	return &History{
		index:       make(map[string]bool),
		persistence: persistence,
	}
}

// OpenHistory opens the JSONL history at path and loads it.
func OpenHistory(path string) (*History, error) {
	p, err := NewJSONLPersistence(path)
	if err != nil {
		return nil, err
	}
	h := NewHistory(p)
	if err := h.Hydrate(); err != nil {
		p.Close()
		return nil, err
	}
	return h, nil
}

// Record appends a launch of app to the history.
func (h *History) Record(app *model.Application) (*model.LaunchRecord, error) {
	r, err := model.NewLaunchRecord(app)
	if err != nil {
		return nil, err
	}
	if err := h.Add(*r); err != nil {
		return nil, err
	}
	return r, nil
}

// Add appends an existing record. Records with a known id are ignored.
func (h *History) Add(r model.LaunchRecord) error {
	if err := r.Validate(); err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return ErrHistoryClosed
	}
	if h.index[r.ID] {
		return nil
	}

	h.records = append(h.records, r)
	h.index[r.ID] = true

	if h.persistence != nil {
		if err := h.persistence.Append(r); err != nil {
			return err
		}
	}

	h.notifyChange(ChangeEvent{Type: ChangeTypeAdd, Count: 1})
	return nil
}

// All returns a copy of every record, oldest first.
func (h *History) All() []model.LaunchRecord {
	h.mu.RLock()
	defer h.mu.RUnlock()

	out := make([]model.LaunchRecord, len(h.records))
	copy(out, h.records)
	return out
}

// Count returns the number of records.
func (h *History) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.records)
}

// Counts returns the number of launches per desktop ID.
func (h *History) Counts() map[string]int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	counts := make(map[string]int)
	for _, r := range h.records {
		counts[r.DesktopID]++
	}
	return counts
}

// Usage returns per-application launch statistics, most launched first with
// ties broken by the most recent launch and then by desktop ID.
func (h *History) Usage() []Usage {
	h.mu.RLock()
	byID := make(map[string]*Usage)
	for _, r := range h.records {
		u, ok := byID[r.DesktopID]
		if !ok {
			u = &Usage{DesktopID: r.DesktopID}
			byID[r.DesktopID] = u
		}
		u.Count++
		if r.LaunchedAt >= u.LastLaunched {
			u.LastLaunched = r.LaunchedAt
			u.Name = r.Name
		}
	}
	h.mu.RUnlock()

	usage := make([]Usage, 0, len(byID))
	for _, u := range byID {
		usage = append(usage, *u)
	}
	sort.Slice(usage, func(i, j int) bool {
		a, b := usage[i], usage[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		if a.LastLaunched != b.LastLaunched {
			return a.LastLaunched > b.LastLaunched
		}
		return a.DesktopID < b.DesktopID
	})
	return usage
}

// Favourites returns up to n desktop IDs ordered as in Usage. n <= 0 means
// no limit.
func (h *History) Favourites(n int) []string {
	usage := h.Usage()
	if n > 0 && len(usage) > n {
		usage = usage[:n]
	}
	ids := make([]string, 0, len(usage))
	for _, u := range usage {
		ids = append(ids, u.DesktopID)
	}
	return ids
}

// Prune removes records older than olderThan (0 disables the age limit) and
// then keeps at most keep of the newest records (0 disables the count
// limit). It returns the number of records removed.
func (h *History) Prune(olderThan time.Duration, keep int) (int, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return 0, ErrHistoryClosed
	}

	kept := make([]model.LaunchRecord, 0, len(h.records))
	if olderThan > 0 {
		cutoff := time.Now().Add(-olderThan).Unix()
		for _, r := range h.records {
			if r.LaunchedAt >= cutoff {
				kept = append(kept, r)
			}
		}
	} else {
		kept = append(kept, h.records...)
	}

	if keep > 0 && len(kept) > keep {
		sort.SliceStable(kept, func(i, j int) bool {
			return kept[i].LaunchedAt < kept[j].LaunchedAt
		})
		kept = kept[len(kept)-keep:]
	}

	removed := len(h.records) - len(kept)
	if removed == 0 {
		return 0, nil
	}

	if h.persistence != nil {
		if err := h.persistence.Rewrite(kept); err != nil {
			return 0, err
		}
	}

	h.records = kept
	h.index = make(map[string]bool, len(kept))
	for _, r := range kept {
		h.index[r.ID] = true
	}

	h.notifyChange(ChangeEvent{Type: ChangeTypePrune, Count: removed})
	return removed, nil
}

// Clear removes every record.
func (h *History) Clear() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return ErrHistoryClosed
	}

	count := len(h.records)
	h.records = nil
	h.index = make(map[string]bool)

	if h.persistence != nil {
		if err := h.persistence.Clear(); err != nil {
			return err
		}
	}

	h.notifyChange(ChangeEvent{Type: ChangeTypeClear, Count: count})
	return nil
}

// Hydrate loads records from persistence, skipping ids already present.
func (h *History) Hydrate() error {
	if h.persistence == nil {
		return nil
	}

	records, err := h.persistence.Load()
	if err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	added := 0
	for _, r := range records {
		if h.index[r.ID] {
			continue
		}
		h.records = append(h.records, r)
		h.index[r.ID] = true
		added++
	}

	if added > 0 {
		h.notifyChange(ChangeEvent{Type: ChangeTypeAdd, Count: added})
	}
	return nil
}

// Subscribe returns a channel receiving change events.
func (h *History) Subscribe() <-chan ChangeEvent {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan ChangeEvent, 16)
	h.subscribers = append(h.subscribers, ch)
	return ch
}

// Unsubscribe removes and closes a channel returned by Subscribe.
func (h *History) Unsubscribe(ch <-chan ChangeEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for i, sub := range h.subscribers {
		if sub == ch {
			close(sub)
			h.subscribers = append(h.subscribers[:i], h.subscribers[i+1:]...)
			return
		}
	}
}

// Close closes subscriber channels and the persistence.
func (h *History) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return nil
	}
	h.closed = true

	for _, ch := range h.subscribers {
		close(ch)
	}
	h.subscribers = nil

	if h.persistence != nil {
		return h.persistence.Close()
	}
	return nil
}

// notifyChange sends a change event to all subscribers (non-blocking).
// Callers hold h.mu.
func (h *History) notifyChange(event ChangeEvent) {
	for _, ch := range h.subscribers {
		select {
		case ch <- event:
		default:
			// Channel full, skip
		}
	}
}
