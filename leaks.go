package lifecycle

import (
	"fmt"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"
	"weak"

	"go.uber.org/zap"
)

// The leak registry is process-wide: every manager registers itself at
// construction and deregisters on Clean. References are weak, so the
// registry never keeps an abandoned manager alive; runtime.AddCleanup
// prunes entries whose manager was collected without ever being cleaned.

type leakEntry struct {
	created time.Time
	name    string
	ref     weak.Pointer[Manager]
	trace   []uintptr
}

var (
	leakMu  sync.Mutex
	leakTab = make(map[string]*leakEntry)
)

func registerManager(m *Manager) {
	e := &leakEntry{
		ref:     weak.Make(m),
		name:    m.name,
		created: time.Now(),
		trace:   callers(3),
	}
	leakMu.Lock()
	leakTab[m.id] = e
	leakMu.Unlock()

	runtime.AddCleanup(m, deregisterManager, m.id)
}

func deregisterManager(id string) {
	leakMu.Lock()
	delete(leakTab, id)
	leakMu.Unlock()
}

// Leak describes one outstanding, un-cleaned manager.
type Leak struct {
	ID    string
	Name  string
	Age   time.Duration
	Trace string
}

// Leaks returns every live manager that has not been cleaned, oldest
// first. Entries whose manager was already collected are skipped. This is
// a diagnostic sweep, not a hot path.
func Leaks() []Leak {
	leakMu.Lock()
	defer leakMu.Unlock()

	var out []Leak
	for id, e := range leakTab {
		m := e.ref.Value()
		if m == nil || m.IsCleaned() {
			continue
		}
		out = append(out, Leak{
			ID:    id,
			Name:  e.name,
			Age:   time.Since(e.created),
			Trace: formatTrace(e.trace),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Age > out[j].Age })
	return out
}

// ReportLeaks logs every outstanding manager with its creation trace as a
// candidate leak.
func ReportLeaks() {
	for _, l := range Leaks() {
		Logger().Warn("manager never cleaned",
			zap.String("id", l.ID),
			zap.String("name", l.Name),
			zap.Duration("age", l.Age),
			zap.String("created_at", l.Trace))
	}
}

func callers(skip int) []uintptr {
	pcs := make([]uintptr, 16)
	n := runtime.Callers(skip, pcs)
	return pcs[:n]
}

func formatTrace(pcs []uintptr) string {
	if len(pcs) == 0 {
		return ""
	}
	var b strings.Builder
	frames := runtime.CallersFrames(pcs)
	for {
		f, more := frames.Next()
		fmt.Fprintf(&b, "%s (%s:%d)", f.Function, f.File, f.Line)
		if !more {
			break
		}
		b.WriteString(" <- ")
	}
	return b.String()
}
