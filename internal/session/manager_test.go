package session

import (
	"context"
	"testing"

	"playground/internal/generator"
	"playground/internal/models"
	"playground/internal/orchestrator"
	"playground/internal/runner"
	"playground/internal/services"
	"playground/internal/storage"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager() (*Manager, *storage.MemoryRepository) {
	clk := clock.New()
	orch := orchestrator.New(services.NewMockServices(generator.NewSeeded(1), clk, "testnet"))
	repo := storage.NewMemoryRepository(clk)
	return NewManager(runner.New(orch, nil, clk, nil), repo, clk), repo
}

func TestManager_CreateGetList(t *testing.T) {
	m, _ := newTestManager()
	defer m.Shutdown(context.Background())

	a := m.Create()
	b := m.Create()
	assert.NotEqual(t, a.ID(), b.ID())
	assert.Contains(t, a.State().Editor(TabContract), "HelloWorld")

	got, err := m.Get(a.ID())
	require.NoError(t, err)
	assert.Same(t, a, got)

	assert.ElementsMatch(t, []string{a.ID(), b.ID()}, m.List())

	_, err = m.Get("missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestManager_Close(t *testing.T) {
	ctx := context.Background()
	m, repo := newTestManager()

	c := m.Create()
	h, err := c.Trigger(ctx, models.KindCompile)
	require.NoError(t, err)
	<-h.Done()

	count, err := repo.CountOperations(ctx, models.OperationFilter{SessionID: c.ID()})
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	require.NoError(t, m.Close(ctx, c.ID()))
	assert.ErrorIs(t, m.Close(ctx, c.ID()), ErrSessionNotFound)
	assert.Empty(t, m.List())

	count, err = repo.CountOperations(ctx, models.OperationFilter{SessionID: c.ID()})
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestManager_Shutdown(t *testing.T) {
	m, _ := newTestManager()
	m.Create()
	m.Create()

	m.Shutdown(context.Background())
	assert.Empty(t, m.List())
}

func TestManager_RequireCompile(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager()
	defer m.Shutdown(ctx)

	m.SetRequireCompile(true)
	c := m.Create()

	_, err := c.Trigger(ctx, models.KindDeploy)
	assert.ErrorIs(t, err, ErrNotCompiled)

	h, err := c.Trigger(ctx, models.KindCompile)
	require.NoError(t, err)
	<-h.Done()

	_, err = c.Trigger(ctx, models.KindDeploy)
	assert.NoError(t, err)
}
