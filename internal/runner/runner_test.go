package runner

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"playground/internal/generator"
	"playground/internal/models"
	"playground/internal/orchestrator"
	"playground/internal/retry"
	"playground/internal/services"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/suite"
)

var (
	hashPattern       = regexp.MustCompile(`^[0-9a-f]{64}$`)
	contractIDPattern = regexp.MustCompile(`^C[0-9a-f]{55}$`)
)

type brokenCompiler struct{ err error }

func (b brokenCompiler) Process(ctx context.Context, req *models.OperationRequest) (models.Payload, error) {
	return nil, b.err
}
func (b brokenCompiler) Kind() models.OperationKind { return models.KindCompile }
func (b brokenCompiler) Name() string               { return "BrokenCompiler" }

type RunnerSuite struct {
	suite.Suite
	ctx    context.Context
	clock  *clock.Mock
	runner *Runner
}

func TestRunnerSuite(t *testing.T) {
	suite.Run(t, new(RunnerSuite))
}

func (s *RunnerSuite) SetupTest() {
	s.ctx = context.Background()
	s.clock = clock.NewMock()
	s.clock.Set(time.Date(2024, 8, 15, 9, 0, 0, 0, time.UTC))

	orch := orchestrator.New(services.NewMockServices(generator.NewSeeded(99), s.clock, "testnet"))
	s.runner = New(orch, retry.NewNoRetryStrategy(), s.clock, DefaultDelays())
}

// await waits in real time for p, failing the test if it never resolves
func (s *RunnerSuite) await(p *Pending) (*models.OperationResult, error) {
	select {
	case <-p.Done():
		return p.Result()
	case <-time.After(2 * time.Second):
		s.FailNow("operation never resolved")
		return nil, nil
	}
}

func (s *RunnerSuite) assertPending(p *Pending) {
	// give the worker goroutine a chance to misbehave
	time.Sleep(5 * time.Millisecond)
	select {
	case <-p.Done():
		s.Fail("operation resolved before its delay")
	default:
	}
	_, err := p.Result()
	s.ErrorIs(err, ErrNotDone)
}

func (s *RunnerSuite) TestCompile_WaitsForDelay() {
	p := s.runner.Submit(s.ctx, s.runner.NewRequest(models.KindCompile, "pub struct HelloWorld;", ""))

	s.clock.Add(1499 * time.Millisecond)
	s.assertPending(p)

	s.clock.Add(time.Millisecond)
	res, err := s.await(p)
	s.Require().NoError(err)

	s.Equal(models.KindCompile, res.Kind)
	s.Equal(p.Request.ID, res.RequestID)
	s.True(res.Success)

	payload := res.Payload.(*models.CompileResult)
	s.True(payload.Success)
	s.GreaterOrEqual(payload.WasmSize, 50000)
	s.Less(payload.WasmSize, 150000)
	s.Regexp(hashPattern, payload.ContractHash)
	s.Equal("2024-08-15T09:00:01.500Z", payload.Timestamp)
	s.Equal(s.clock.Now().UTC(), res.CompletedAt)
}

func (s *RunnerSuite) TestDeploy_WaitsForDelay() {
	p := s.runner.Submit(s.ctx, s.runner.NewRequest(models.KindDeploy, "", ""))

	s.clock.Add(1999 * time.Millisecond)
	s.assertPending(p)

	s.clock.Add(time.Millisecond)
	res, err := s.await(p)
	s.Require().NoError(err)

	payload := res.Payload.(*models.DeployResult)
	s.Equal("testnet", payload.Network)
	s.Regexp(contractIDPattern, payload.ContractID)
	s.Regexp(hashPattern, payload.TransactionHash)
}

func (s *RunnerSuite) TestInvoke_WaitsForDelay() {
	p := s.runner.Submit(s.ctx, s.runner.NewRequest(models.KindInvoke, "hello('Dev')", ""))

	s.clock.Add(999 * time.Millisecond)
	s.assertPending(p)

	s.clock.Add(time.Millisecond)
	res, err := s.await(p)
	s.Require().NoError(err)

	payload := res.Payload.(*models.InvokeResult)
	s.NotEmpty(payload.Result)
	s.GreaterOrEqual(payload.GasUsed, 100)
	s.Less(payload.GasUsed, 1100)
	s.Regexp(hashPattern, payload.TransactionHash)
}

func (s *RunnerSuite) TestKindsResolveIndependently() {
	compile := s.runner.Submit(s.ctx, s.runner.NewRequest(models.KindCompile, "", ""))
	deploy := s.runner.Submit(s.ctx, s.runner.NewRequest(models.KindDeploy, "", ""))
	invoke := s.runner.Submit(s.ctx, s.runner.NewRequest(models.KindInvoke, "", ""))

	s.clock.Add(time.Second)
	_, err := s.await(invoke)
	s.NoError(err)
	s.assertPending(compile)
	s.assertPending(deploy)

	s.clock.Add(500 * time.Millisecond)
	_, err = s.await(compile)
	s.NoError(err)
	s.assertPending(deploy)

	s.clock.Add(500 * time.Millisecond)
	_, err = s.await(deploy)
	s.NoError(err)
}

func (s *RunnerSuite) TestConcurrentDeploysAreIndependent() {
	first := s.runner.Submit(s.ctx, s.runner.NewRequest(models.KindDeploy, "same", ""))
	second := s.runner.Submit(s.ctx, s.runner.NewRequest(models.KindDeploy, "same", ""))

	s.clock.Add(DefaultDeployDelay)

	r1, err := s.await(first)
	s.Require().NoError(err)
	r2, err := s.await(second)
	s.Require().NoError(err)

	d1 := r1.Payload.(*models.DeployResult)
	d2 := r2.Payload.(*models.DeployResult)
	s.Regexp(contractIDPattern, d1.ContractID)
	s.Regexp(contractIDPattern, d2.ContractID)
	s.NotEqual(d1.ContractID, d2.ContractID)
	s.NotEqual(d1.TransactionHash, d2.TransactionHash)
	s.NotEqual(r1.RequestID, r2.RequestID)
}

func (s *RunnerSuite) TestCancel() {
	p := s.runner.Submit(s.ctx, s.runner.NewRequest(models.KindCompile, "", ""))
	p.Cancel()

	_, err := s.await(p)
	s.ErrorIs(err, context.Canceled)

	var failure *OperationFailure
	s.Require().ErrorAs(err, &failure)
	s.Equal(models.KindCompile, failure.Kind)
	s.Equal(p.Request.ID, failure.RequestID)
}

func (s *RunnerSuite) TestSubmitContextCancelled() {
	ctx, cancel := context.WithCancel(s.ctx)
	p := s.runner.Submit(ctx, s.runner.NewRequest(models.KindInvoke, "", ""))
	cancel()

	_, err := s.await(p)
	s.ErrorIs(err, context.Canceled)
}

func (s *RunnerSuite) TestWaitGivesUpWithoutCancelling() {
	p := s.runner.Submit(s.ctx, s.runner.NewRequest(models.KindInvoke, "", ""))

	ctx, cancel := context.WithTimeout(s.ctx, 5*time.Millisecond)
	defer cancel()
	_, err := p.Wait(ctx)
	s.ErrorIs(err, context.DeadlineExceeded)

	s.clock.Add(DefaultInvokeDelay)
	res, err := s.await(p)
	s.NoError(err)
	s.True(res.Success)
}

func (s *RunnerSuite) TestBackendFailure() {
	orch := orchestrator.New([]services.Service{brokenCompiler{err: errors.New("wasm validation failed")}})
	r := New(orch, nil, s.clock, DefaultDelays())

	p := r.Submit(s.ctx, r.NewRequest(models.KindCompile, "", ""))
	s.clock.Add(DefaultCompileDelay)

	res, err := s.await(p)
	s.Nil(res)

	var failure *OperationFailure
	s.Require().ErrorAs(err, &failure)
	s.Equal("wasm validation failed", ErrorMessage(err))
}

func (s *RunnerSuite) TestDelay() {
	s.Equal(DefaultCompileDelay, s.runner.Delay(models.KindCompile))
	s.Equal(DefaultDeployDelay, s.runner.Delay(models.KindDeploy))
	s.Equal(DefaultInvokeDelay, s.runner.Delay(models.KindInvoke))
}

func (s *RunnerSuite) TestNewRequest() {
	req := s.runner.NewRequest(models.KindDeploy, "src", "session-1")

	s.NotEmpty(req.ID)
	s.Equal("session-1", req.SessionID)
	s.Equal("src", req.Input)
	s.Equal(s.clock.Now().UTC(), req.IssuedAt)
}

func TestErrorMessage(t *testing.T) {
	if got := ErrorMessage(nil); got != "" {
		t.Errorf("ErrorMessage(nil) = %q", got)
	}
	if got := ErrorMessage(errors.New("plain")); got != "plain" {
		t.Errorf("ErrorMessage(plain) = %q", got)
	}

	wrapped := &OperationFailure{Kind: models.KindDeploy, RequestID: "r1", Err: errors.New("insufficient balance")}
	if got := ErrorMessage(wrapped); got != "insufficient balance" {
		t.Errorf("ErrorMessage(failure) = %q", got)
	}
	if wrapped.Error() != "deploy operation r1 failed: insufficient balance" {
		t.Errorf("unexpected Error(): %q", wrapped.Error())
	}
}
