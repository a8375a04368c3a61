// Package store keeps the per-session state: every processed document with
// its extraction result, plus the conversation history. Nothing here survives
// a process restart.
package store

import (
	"sync"

	"github.com/boddupallykavya9-cloud/FINANCIAL-DOC-QA-ASSISTANT/internal/models"
)

// Entry is one processed document: its metadata, the raw parse snapshot kept
// for later summarization, and the structured metric mapping.
type Entry struct {
	Document models.Document
	Raw      models.RawDocument
	Metrics  *models.MetricMapping
}

// Store accumulates entries in processing order. Re-processing replaces the
// whole document set; it is never merged incrementally. The mutex is here
// because the HTTP layer serves concurrently; request semantics stay
// strictly sequential.
type Store struct {
	mu      sync.RWMutex
	order   []string
	entries map[string]*Entry
	history []models.ConversationTurn
}

func New() *Store {
	return &Store{entries: make(map[string]*Entry)}
}

// ReplaceAll swaps the entire document set for the given batch, preserving
// the batch's order. A file name appearing twice keeps its last entry.
func (s *Store) ReplaceAll(entries []*Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.order = s.order[:0]
	s.entries = make(map[string]*Entry, len(entries))
	for _, e := range entries {
		if _, ok := s.entries[e.Document.FileName]; !ok {
			s.order = append(s.order, e.Document.FileName)
		}
		s.entries[e.Document.FileName] = e
	}
}

// Reset clears every stored document. Conversation turns are append-only and
// survive a reset.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.order = nil
	s.entries = make(map[string]*Entry)
}

func (s *Store) Get(name string) (*Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[name]
	return e, ok
}

// Entries returns the stored entries in processing order.
func (s *Store) Entries() []*Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Entry, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, s.entries[name])
	}
	return out
}

func (s *Store) Documents() []models.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Document, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, s.entries[name].Document)
	}
	return out
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

func (s *Store) AppendTurn(turn models.ConversationTurn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = append(s.history, turn)
}

// Conversation returns a copy of the recorded turns in ask order.
func (s *Store) Conversation() []models.ConversationTurn {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.ConversationTurn, len(s.history))
	copy(out, s.history)
	return out
}
