package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"faqbot/models"
)

func TestEscalationLogger_Escalate(t *testing.T) {
	store := &memoryStore{}
	l := NewEscalationLogger(store, time.Second, discardLogger())

	require.NoError(t, l.Escalate(context.Background(), "banana"))

	records := store.Records()
	require.Len(t, records, 1)
	assert.Equal(t, "banana", records[0].Question)
	assert.Equal(t, models.StatusPending, records[0].Status)
	assert.Equal(t, "memory", l.StoreName())
}

func TestEscalationLogger_StoreFailureWrapsErrStore(t *testing.T) {
	store := &memoryStore{AppendErr: errors.New("quota exceeded")}
	l := NewEscalationLogger(store, time.Second, discardLogger())

	err := l.Escalate(context.Background(), "banana")

	assert.ErrorIs(t, err, ErrStore)
	assert.Contains(t, err.Error(), "quota exceeded")
}

func TestEscalationLogger_SurvivesCanceledRequest(t *testing.T) {
	store := &memoryStore{}
	l := NewEscalationLogger(store, time.Second, discardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, l.Escalate(ctx, "client went away"))
	require.Len(t, store.ctxErrs, 1)
	assert.NoError(t, store.ctxErrs[0])
	assert.Len(t, store.Records(), 1)
}

func TestEscalationLogger_List(t *testing.T) {
	store := &memoryStore{}
	l := NewEscalationLogger(store, time.Second, discardLogger())
	ctx := context.Background()

	require.NoError(t, l.Escalate(ctx, "first"))
	require.NoError(t, l.Escalate(ctx, "second"))

	records, err := l.List(ctx, models.StatusPending, 10)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "second", records[0].Question)
	assert.Equal(t, "first", records[1].Question)
}

func TestEscalationLogger_ListFailureWrapsErrStore(t *testing.T) {
	store := &memoryStore{ListErr: errors.New("index missing")}
	l := NewEscalationLogger(store, time.Second, discardLogger())

	_, err := l.List(context.Background(), models.StatusPending, 10)

	assert.ErrorIs(t, err, ErrStore)
	assert.Contains(t, err.Error(), "index missing")
}
