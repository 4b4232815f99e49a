package pipeline

import (
	"context"
	"errors"
	"testing"
	"time"

	"playground/internal/generator"
	"playground/internal/models"
	"playground/internal/orchestrator"
	"playground/internal/runner"
	"playground/internal/services"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingInvoker struct{}

func (failingInvoker) Process(ctx context.Context, req *models.OperationRequest) (models.Payload, error) {
	return nil, errors.New("contract trapped")
}
func (failingInvoker) Kind() models.OperationKind { return models.KindInvoke }
func (failingInvoker) Name() string               { return "FailingInvoker" }

func newRunner(extra ...services.Service) *runner.Runner {
	clk := clock.New()
	svcs := append(services.NewMockServices(generator.NewRandom(), clk, "testnet"), extra...)
	return runner.New(orchestrator.New(svcs), nil, clk, nil)
}

func requests(r *runner.Runner, kind models.OperationKind, n int) []*models.OperationRequest {
	reqs := make([]*models.OperationRequest, n)
	for i := range reqs {
		reqs[i] = r.NewRequest(kind, "", "")
	}
	return reqs
}

func TestOrderer_EmitsInSequence(t *testing.T) {
	var got []int
	o := NewOrderer(func(out *Outcome) error {
		got = append(got, out.Sequence)
		return nil
	})

	require.NoError(t, o.Add(&Outcome{Sequence: 2}))
	require.NoError(t, o.Add(&Outcome{Sequence: 1}))
	assert.Empty(t, got)
	assert.Equal(t, 2, o.PendingCount())

	require.NoError(t, o.Add(&Outcome{Sequence: 0}))
	assert.Equal(t, []int{0, 1, 2}, got)
	assert.Equal(t, 3, o.NextExpected())
	assert.Equal(t, 0, o.PendingCount())
}

func TestOrderer_StopsOnEmitError(t *testing.T) {
	boom := errors.New("stdout closed")
	o := NewOrderer(func(out *Outcome) error { return boom })

	assert.ErrorIs(t, o.Add(&Outcome{Sequence: 0}), boom)
}

func TestPipeline_Run(t *testing.T) {
	r := newRunner()
	reqs := requests(r, models.KindDeploy, 12)

	var emitted []*Outcome
	err := New(Config{WorkerCount: 3}, r).Run(context.Background(), reqs, func(out *Outcome) error {
		emitted = append(emitted, out)
		return nil
	})
	require.NoError(t, err)
	require.Len(t, emitted, len(reqs))

	ids := make(map[string]bool)
	for i, out := range emitted {
		assert.Equal(t, i, out.Sequence)
		assert.Same(t, reqs[i], out.Request)
		require.NoError(t, out.Err)

		deploy := out.Result.Payload.(*models.DeployResult)
		assert.False(t, ids[deploy.ContractID], "contract ids must be unique")
		ids[deploy.ContractID] = true
		assert.Less(t, out.WorkerID, 3)
	}
}

func TestPipeline_FailuresAreEmitted(t *testing.T) {
	r := newRunner(failingInvoker{})
	reqs := requests(r, models.KindInvoke, 4)

	var messages []string
	err := New(Config{}, r).Run(context.Background(), reqs, func(out *Outcome) error {
		messages = append(messages, runner.ErrorMessage(out.Err))
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"contract trapped", "contract trapped", "contract trapped", "contract trapped"}, messages)
}

func TestPipeline_FailFast(t *testing.T) {
	r := newRunner(failingInvoker{})
	reqs := requests(r, models.KindInvoke, 4)

	err := New(Config{WorkerCount: 1, FailFast: true}, r).Run(context.Background(), reqs, func(out *Outcome) error {
		return nil
	})
	assert.Equal(t, "contract trapped", runner.ErrorMessage(err))
}

func TestPipeline_EmitErrorCancelsOutstanding(t *testing.T) {
	clk := clock.New()
	orch := orchestrator.New(services.NewMockServices(generator.NewRandom(), clk, "testnet"))
	r := runner.New(orch, nil, clk, map[models.OperationKind]time.Duration{
		models.KindCompile: 0,
		models.KindDeploy:  time.Hour,
	})

	reqs := []*models.OperationRequest{
		r.NewRequest(models.KindCompile, "", ""),
		r.NewRequest(models.KindDeploy, "", ""),
		r.NewRequest(models.KindDeploy, "", ""),
	}

	boom := errors.New("stdout closed")
	done := make(chan error, 1)
	go func() {
		done <- New(Config{}, r).Run(context.Background(), reqs, func(out *Outcome) error {
			return boom
		})
	}()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, boom)
	case <-time.After(2 * time.Second):
		t.Fatal("Run kept waiting on requests after emit failed")
	}
}

func TestPipeline_Empty(t *testing.T) {
	err := New(Config{WorkerCount: 4}, newRunner()).Run(context.Background(), nil, func(out *Outcome) error {
		t.Fatal("emit called for an empty batch")
		return nil
	})
	assert.NoError(t, err)
}
