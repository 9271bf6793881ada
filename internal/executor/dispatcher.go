package executor

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/studiowebux/blueline/internal/logger"
	"github.com/studiowebux/blueline/internal/types"
)

// ErrClosed is returned by Submit after Close.
var ErrClosed = errors.New("dispatcher closed")

// Completion carries the outcome of one submitted request.
type Completion struct {
	ID      string
	Profile string
	Request *types.HttpRequest
	Result  *types.RequestResult
}

// ExecuteFunc performs one request. Execute is the production value.
type ExecuteFunc func(ctx context.Context, req *types.HttpRequest, profile *types.Profile) (*types.RequestResult, error)

// Dispatcher runs requests off the input goroutine. Only one request is in
// flight: submitting a new one cancels the previous, whose completion is
// dropped.
type Dispatcher struct {
	exec    ExecuteFunc
	results chan Completion

	root  context.Context
	stop  context.CancelFunc
	group *errgroup.Group

	mu        sync.Mutex
	currentID string
	cancel    context.CancelFunc
	closed    bool
}

// NewDispatcher creates a dispatcher. A nil exec uses Execute.
func NewDispatcher(exec ExecuteFunc) *Dispatcher {
	if exec == nil {
		exec = Execute
	}
	root, stop := context.WithCancel(context.Background())
	group, groupCtx := errgroup.WithContext(root)
	return &Dispatcher{
		exec:    exec,
		results: make(chan Completion, 1),
		root:    groupCtx,
		stop:    stop,
		group:   group,
	}
}

// Results delivers completions. It is closed by Close.
func (d *Dispatcher) Results() <-chan Completion {
	return d.results
}

// Submit starts req and returns its ID. Any request still in flight is
// canceled.
func (d *Dispatcher) Submit(req *types.HttpRequest, profile *types.Profile) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return "", ErrClosed
	}
	if d.cancel != nil {
		logger.L().Debug("superseding request", zap.String("id", d.currentID))
		d.cancel()
	}

	id := uuid.NewString()
	profileName := ""
	if profile != nil {
		profileName = profile.Name
	}
	log := logger.L().With(zap.String("id", id), zap.String("profile", profileName))

	ctx, cancel := context.WithCancel(logger.NewContext(d.root, log))
	d.currentID = id
	d.cancel = cancel

	log.Info("dispatching request",
		zap.String("method", req.Method),
		zap.String("url", req.URL))
	log.Debug("request headers", zap.Strings("headers", req.HeaderList()))

	d.group.Go(func() error {
		defer cancel()
		result, err := d.exec(ctx, req, profile)
		if err != nil {
			result = &types.RequestResult{Error: err.Error()}
		}
		if !d.finish(id) {
			log.Debug("dropping superseded result")
			return nil
		}
		select {
		case d.results <- Completion{ID: id, Profile: profileName, Request: req, Result: result}:
		case <-d.root.Done():
		}
		return nil
	})

	return id, nil
}

// finish clears the in-flight slot if id still owns it.
func (d *Dispatcher) finish(id string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.currentID != id {
		return false
	}
	d.currentID = ""
	d.cancel = nil
	return true
}

// inFlight returns the ID of the running request, or "".
func (d *Dispatcher) inFlight() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.currentID
}

// Close cancels outstanding work, waits for it and closes Results.
func (d *Dispatcher) Close() error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return nil
	}
	d.closed = true
	d.mu.Unlock()

	d.stop()
	err := d.group.Wait()
	close(d.results)
	return err
}
