package store

import (
	"testing"

	"github.com/boddupallykavya9-cloud/FINANCIAL-DOC-QA-ASSISTANT/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(name string) *Entry {
	return &Entry{
		Document: models.Document{FileName: name},
		Metrics:  models.NewMetricMapping(),
	}
}

func TestReplaceAllKeepsOrder(t *testing.T) {
	s := New()
	s.ReplaceAll([]*Entry{entry("b.pdf"), entry("a.xlsx"), entry("c.pdf")})

	docs := s.Documents()
	require.Len(t, docs, 3)
	assert.Equal(t, "b.pdf", docs[0].FileName)
	assert.Equal(t, "a.xlsx", docs[1].FileName)
	assert.Equal(t, "c.pdf", docs[2].FileName)
}

func TestReplaceAllIsWholesale(t *testing.T) {
	s := New()
	s.ReplaceAll([]*Entry{entry("old.pdf")})
	s.ReplaceAll([]*Entry{entry("new.pdf")})

	require.Equal(t, 1, s.Len())
	_, ok := s.Get("old.pdf")
	assert.False(t, ok)
	_, ok = s.Get("new.pdf")
	assert.True(t, ok)
}

func TestReplaceAllDuplicateNamesLastWins(t *testing.T) {
	first := entry("dup.pdf")
	second := entry("dup.pdf")
	second.Document.MetricGroups = 2

	s := New()
	s.ReplaceAll([]*Entry{first, second})

	require.Equal(t, 1, s.Len())
	got, ok := s.Get("dup.pdf")
	require.True(t, ok)
	assert.Equal(t, 2, got.Document.MetricGroups)
}

func TestResetClearsDocumentsKeepsConversation(t *testing.T) {
	s := New()
	s.ReplaceAll([]*Entry{entry("a.pdf")})
	s.AppendTurn(models.ConversationTurn{Question: "q", Answer: "a"})

	s.Reset()

	assert.Equal(t, 0, s.Len())
	assert.Len(t, s.Conversation(), 1)
}

func TestConversationAppendOnlyOrder(t *testing.T) {
	s := New()
	s.AppendTurn(models.ConversationTurn{Question: "first"})
	s.AppendTurn(models.ConversationTurn{Question: "second"})

	turns := s.Conversation()
	require.Len(t, turns, 2)
	assert.Equal(t, "first", turns[0].Question)
	assert.Equal(t, "second", turns[1].Question)

	// Mutating the returned slice must not affect the store.
	turns[0].Question = "mutated"
	assert.Equal(t, "first", s.Conversation()[0].Question)
}
