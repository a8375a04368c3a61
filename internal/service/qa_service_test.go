package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/boddupallykavya9-cloud/FINANCIAL-DOC-QA-ASSISTANT/internal/models"
	"github.com/boddupallykavya9-cloud/FINANCIAL-DOC-QA-ASSISTANT/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeCompleter struct {
	text    string
	err     error
	called  bool
	prompts []string
}

func (f *fakeCompleter) Complete(_ context.Context, prompt string) (string, error) {
	f.called = true
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	return f.text, nil
}

func storeWithRevenue(t *testing.T) *store.Store {
	t.Helper()

	series := models.NewPeriodSeries()
	series.Set("2022", 100.0)
	series.Set("2023", 150.0)
	set := models.NewMetricSet()
	set.Set("revenue", series)
	mapping := models.NewMetricMapping()
	mapping.Set(models.KindIncomeStatement, set)

	st := store.New()
	st.ReplaceAll([]*store.Entry{{
		Document: models.Document{FileName: "report.pdf"},
		Metrics:  mapping,
	}})
	return st
}

func TestAskConfidentAnswerSkipsBackend(t *testing.T) {
	st := storeWithRevenue(t)
	fake := &fakeCompleter{text: "should not be used"}
	qa := NewQAService(st, fake, 0.6, time.Second, zap.NewNop())

	resp := qa.Ask(context.Background(), "What was revenue in 2023?", ScopeAll)

	assert.Equal(t, 0.9, resp.Confidence)
	assert.Equal(t, string(models.SourceRuleBased), resp.Source)
	assert.False(t, fake.called)
	assert.Empty(t, resp.Warning)
}

func TestAskLowConfidenceUsesBackend(t *testing.T) {
	st := storeWithRevenue(t)
	fake := &fakeCompleter{text: "EBITDA is not reported in this document."}
	qa := NewQAService(st, fake, 0.6, time.Second, zap.NewNop())

	resp := qa.Ask(context.Background(), "What was ebitda?", ScopeAll)

	require.True(t, fake.called)
	assert.Equal(t, "EBITDA is not reported in this document.", resp.Answer)
	assert.Equal(t, string(models.SourceGenerativeFallback), resp.Source)
	// Confidence stays the rule-based score.
	assert.Equal(t, 0.4, resp.Confidence)

	require.Len(t, fake.prompts, 1)
	assert.Contains(t, fake.prompts[0], "Document: report.pdf")
	assert.Contains(t, fake.prompts[0], "What was ebitda?")
}

func TestAskBackendFailureKeepsRuleBasedAnswer(t *testing.T) {
	st := storeWithRevenue(t)
	fake := &fakeCompleter{err: errors.New("connection refused")}
	qa := NewQAService(st, fake, 0.6, time.Second, zap.NewNop())

	resp := qa.Ask(context.Background(), "What was ebitda?", ScopeAll)

	assert.Equal(t, string(models.SourceRuleBased), resp.Source)
	assert.Equal(t, 0.4, resp.Confidence)
	assert.Contains(t, resp.Warning, "connection refused")
	assert.NotEmpty(t, resp.Answer)
}

func TestAskNoBackendConfigured(t *testing.T) {
	st := storeWithRevenue(t)
	qa := NewQAService(st, nil, 0.6, time.Second, zap.NewNop())

	resp := qa.Ask(context.Background(), "What was ebitda?", ScopeAll)

	assert.Equal(t, string(models.SourceRuleBased), resp.Source)
	assert.Empty(t, resp.Warning)
}

func TestAskScopedToUnknownDocument(t *testing.T) {
	st := storeWithRevenue(t)
	qa := NewQAService(st, nil, 0.6, time.Second, zap.NewNop())

	resp := qa.Ask(context.Background(), "What was revenue?", "missing.pdf")

	assert.Equal(t, 0.0, resp.Confidence)
}

func TestAskScopedToOneDocument(t *testing.T) {
	st := storeWithRevenue(t)
	qa := NewQAService(st, nil, 0.6, time.Second, zap.NewNop())

	resp := qa.Ask(context.Background(), "What was revenue in 2023?", "report.pdf")

	assert.Equal(t, 0.9, resp.Confidence)
	assert.Contains(t, resp.Answer, "150")
}

func TestAskRecordsConversationTurns(t *testing.T) {
	st := storeWithRevenue(t)
	qa := NewQAService(st, nil, 0.6, time.Second, zap.NewNop())

	qa.Ask(context.Background(), "What was revenue?", ScopeAll)
	qa.Ask(context.Background(), "What was ebitda?", ScopeAll)

	turns := qa.Conversation()
	require.Len(t, turns, 2)
	assert.Equal(t, "What was revenue?", turns[0].Question)
	assert.Equal(t, models.SourceRuleBased, turns[0].Source)
	assert.Equal(t, "What was ebitda?", turns[1].Question)
}
