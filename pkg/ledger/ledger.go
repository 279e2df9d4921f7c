// Package ledger tracks the calendar block created for each scheduled task,
// so repeat scheduling updates the existing event and the overdue sweep knows
// which blocks have lapsed.
package ledger

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Block is one scheduled calendar block owned by a task.
type Block struct {
	EventID string    `json:"event_id"`
	Summary string    `json:"summary"`
	Start   time.Time `json:"start"`
	End     time.Time `json:"end"`
}

type Ledger struct {
	Blocks map[string]Block `json:"blocks"`
	Path   string           `json:"-"`

	mu    sync.Mutex
	dirty bool
}

func New() (*Ledger, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	return NewAt(filepath.Join(home, ".config", "slotta", "blocks.json"))
}

// NewAt opens or creates a ledger at an explicit path.
func NewAt(path string) (*Ledger, error) {
	l := &Ledger{
		Blocks: make(map[string]Block),
		Path:   path,
	}
	if _, err := os.Stat(path); err == nil {
		if err := l.load(); err != nil {
			return nil, err
		}
	}
	return l, nil
}

func (l *Ledger) load() error {
	f, err := os.Open(l.Path)
	if err != nil {
		return err
	}
	defer f.Close()
	return json.NewDecoder(f).Decode(l)
}

func (l *Ledger) Save() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.dirty {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(l.Path), 0700); err != nil {
		return err
	}

	f, err := os.Create(l.Path)
	if err != nil {
		return err
	}
	defer f.Close()

	encoder := json.NewEncoder(f)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(l); err != nil {
		return err
	}
	l.dirty = false
	return nil
}

// Get returns the block for a task, if one is recorded.
func (l *Ledger) Get(taskID string) (Block, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	b, ok := l.Blocks[taskID]
	return b, ok
}

// Set records or replaces the block for a task.
func (l *Ledger) Set(taskID string, b Block) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if old, exists := l.Blocks[taskID]; !exists || old != b {
		l.Blocks[taskID] = b
		l.dirty = true
	}
}

func (l *Ledger) Remove(taskID string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, exists := l.Blocks[taskID]; exists {
		delete(l.Blocks, taskID)
		l.dirty = true
	}
}

// Sweep removes and returns blocks whose window ended before now. The caller
// marks each swept block's calendar event as overdue.
func (l *Ledger) Sweep(now time.Time) []Block {
	l.mu.Lock()
	defer l.mu.Unlock()

	var swept []Block
	for taskID, b := range l.Blocks {
		if b.End.Before(now) {
			swept = append(swept, b)
			delete(l.Blocks, taskID)
			l.dirty = true
		}
	}
	return swept
}
