package quickcall

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"call-console/internal/calls"
	"call-console/internal/orchestrator"
)

const (
	defaultInterval    = 3 * time.Second
	defaultRecentLimit = 5
)

// API is the slice of the orchestrator client the controller drives.
type API interface {
	CreateCall(ctx context.Context, in calls.NewCall) (calls.Call, error)
	InitiateCall(ctx context.Context, id string) (calls.ActionResult, error)
	GetCall(ctx context.Context, id string) (calls.Call, error)
	HangupCall(ctx context.Context, id string) (calls.ActionResult, error)
	ListCalls(ctx context.Context) ([]calls.Call, error)
}

type Options struct {
	Interval    time.Duration
	NewTicker   TickerFactory
	Clock       func() time.Time
	RecentLimit int
	Logger      *slog.Logger
}

// Controller owns the single quick-call session of the console.
//
// Every mutation happens under mu. gen is bumped whenever the active call id
// changes or is cleared; results of remote calls started under an older gen
// are dropped.
type Controller struct {
	api         API
	interval    time.Duration
	newTicker   TickerFactory
	clock       func() time.Time
	recentLimit int
	log         *slog.Logger

	mu         sync.Mutex
	session    Session
	gen        uint64
	cancelPoll context.CancelFunc
	pollDone   chan struct{}
	recent     []calls.Call
	subs       map[chan Session]struct{}
	closed     bool
}

func NewController(api API, opts Options) *Controller {
	c := &Controller{
		api:         api,
		interval:    opts.Interval,
		newTicker:   opts.NewTicker,
		clock:       opts.Clock,
		recentLimit: opts.RecentLimit,
		log:         opts.Logger,
		session:     Session{Status: StatusIdle, Events: []Event{}},
		subs:        map[chan Session]struct{}{},
	}
	if c.interval <= 0 {
		c.interval = defaultInterval
	}
	if c.newTicker == nil {
		c.newTicker = NewTimeTicker
	}
	if c.clock == nil {
		c.clock = time.Now
	}
	if c.recentLimit <= 0 {
		c.recentLimit = defaultRecentLimit
	}
	if c.log == nil {
		c.log = slog.Default()
	}
	return c
}

// Submit starts a new quick call, discarding whatever session came before.
// The returned session reflects the state once creation and initiation have
// been answered. Remote failures are recorded on the session and also returned.
func (c *Controller) Submit(ctx context.Context, req Request) (Session, error) {
	req.PhoneNumber = strings.TrimSpace(req.PhoneNumber)
	req.ClientName = strings.TrimSpace(req.ClientName)
	req.Scenario = strings.TrimSpace(req.Scenario)
	if req.PhoneNumber == "" || req.ClientName == "" || req.Scenario == "" {
		return Session{}, ErrInvalidRequest
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return Session{}, ErrClosed
	}
	c.stopPollLocked()
	c.gen++
	gen := c.gen
	r := req
	c.session = Session{Status: StatusDialing, Events: []Event{}, Request: &r}
	c.appendLocked(msgInitiating)
	c.publishLocked()
	c.mu.Unlock()

	created, err := c.api.CreateCall(ctx, calls.NewCall{
		PhoneNumber: req.PhoneNumber,
		ClientName:  req.ClientName,
		Scenario:    req.Scenario,
	})

	c.mu.Lock()
	if c.gen != gen {
		c.mu.Unlock()
		return c.Snapshot(), ErrSuperseded
	}
	if err != nil {
		c.failLocked(err)
		out := c.session.clone()
		c.mu.Unlock()
		c.log.Warn("quick call creation failed", "err", err)
		return out, err
	}
	c.session.CallID = created.ID
	c.publishLocked()
	c.mu.Unlock()

	_, err = c.api.InitiateCall(ctx, created.ID)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gen != gen {
		return c.session.clone(), ErrSuperseded
	}
	if err != nil {
		c.gen++
		c.session.CallID = ""
		c.failLocked(err)
		c.log.Warn("quick call initiate failed", "call_id", created.ID, "err", err)
		return c.session.clone(), err
	}

	c.session.Status = StatusConnected
	c.appendLocked(msgConnected)
	c.startPollLocked(created.ID, gen)
	c.publishLocked()
	c.log.Info("quick call connected", "call_id", created.ID)
	return c.session.clone(), nil
}

// Hangup ends the active call. It is refused until the initiate request has
// been answered. A failed hangup is recorded as an event and leaves the state
// alone. When polling already saw the call finish, the outcome event stays last.
func (c *Controller) Hangup(ctx context.Context) (Session, error) {
	c.mu.Lock()
	if !c.session.Active() {
		c.mu.Unlock()
		return Session{}, ErrNoActiveCall
	}
	id := c.session.CallID
	gen := c.gen
	c.mu.Unlock()

	_, err := c.api.HangupCall(ctx, id)

	c.mu.Lock()
	if c.gen != gen {
		out := c.session.clone()
		c.mu.Unlock()
		return out, ErrSuperseded
	}
	if err != nil {
		c.appendLocked("Failed to hang up: " + err.Error())
		c.publishLocked()
		out := c.session.clone()
		c.mu.Unlock()
		c.log.Warn("quick call hangup failed", "call_id", id, "err", err)
		return out, err
	}
	c.stopPollLocked()
	c.gen++
	if c.session.Status != StatusEnded {
		c.session.Status = StatusEnded
		c.appendLocked(msgEnded)
		c.publishLocked()
	}
	out := c.session.clone()
	c.mu.Unlock()

	c.refreshRecent(ctx)
	return out, nil
}

// Reset drops the session and returns to idle with an empty event log.
func (c *Controller) Reset() Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopPollLocked()
	c.gen++
	c.session = Session{Status: StatusIdle, Events: []Event{}}
	c.publishLocked()
	return c.session.clone()
}

// Close stops polling and closes subscriber channels. It waits for the poll
// goroutine to exit.
func (c *Controller) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	done := c.pollDone
	c.stopPollLocked()
	c.gen++
	for ch := range c.subs {
		close(ch)
	}
	c.subs = map[chan Session]struct{}{}
	c.mu.Unlock()

	if done != nil {
		<-done
	}
}

func (c *Controller) Snapshot() Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session.clone()
}

// RecentCalls returns the list cached at the last refresh.
func (c *Controller) RecentCalls() []calls.Call {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]calls.Call, len(c.recent))
	copy(out, c.recent)
	return out
}

// RefreshRecent reloads the recent calls list from the orchestrator.
func (c *Controller) RefreshRecent(ctx context.Context) ([]calls.Call, error) {
	list, err := c.api.ListCalls(ctx)
	if err != nil {
		return nil, err
	}
	if len(list) > c.recentLimit {
		list = list[:c.recentLimit]
	}
	c.mu.Lock()
	c.recent = list
	c.mu.Unlock()
	return c.RecentCalls(), nil
}

// Subscribe delivers a snapshot after every change. Slow readers only see the
// latest one. The returned func unsubscribes.
func (c *Controller) Subscribe() (<-chan Session, func()) {
	ch := make(chan Session, 1)

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		close(ch)
		return ch, func() {}
	}
	c.subs[ch] = struct{}{}
	ch <- c.session.clone()
	c.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			c.mu.Lock()
			defer c.mu.Unlock()
			if _, ok := c.subs[ch]; ok {
				delete(c.subs, ch)
				close(ch)
			}
		})
	}
}

func (c *Controller) startPollLocked(id string, gen uint64) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	c.cancelPoll = cancel
	c.pollDone = done
	t := c.newTicker(c.interval)
	go c.poll(ctx, t, id, gen, done)
}

func (c *Controller) stopPollLocked() {
	if c.cancelPoll != nil {
		c.cancelPoll()
		c.cancelPoll = nil
		c.pollDone = nil
	}
}

func (c *Controller) poll(ctx context.Context, t Ticker, id string, gen uint64, done chan struct{}) {
	defer close(done)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C():
			if !c.pollOnce(ctx, id, gen) {
				return
			}
		}
	}
}

// pollOnce applies one status read. It returns false once polling should stop.
func (c *Controller) pollOnce(ctx context.Context, id string, gen uint64) bool {
	call, err := c.api.GetCall(ctx, id)

	c.mu.Lock()
	if c.gen != gen || ctx.Err() != nil {
		c.mu.Unlock()
		return false
	}

	if err != nil {
		if errors.Is(err, orchestrator.ErrUnauthorized) {
			c.stopPollLocked()
			c.appendLocked(msgSessionEnd)
			c.publishLocked()
			c.mu.Unlock()
			return false
		}
		c.mu.Unlock()
		c.log.Warn("quick call poll failed", "call_id", id, "err", err)
		return true
	}

	switch call.Status {
	case calls.CallStatusInProgress:
		if c.session.Status == StatusDialing || c.session.Status == StatusIdle {
			c.session.Status = StatusRinging
			c.appendLocked(msgRinging)
			c.publishLocked()
		}
		c.mu.Unlock()
		return true

	case calls.CallStatusCompleted:
		c.stopPollLocked()
		c.session.Status = StatusEnded
		c.appendLocked(completionMessage(call.Outcome))
		c.publishLocked()
		c.mu.Unlock()
		c.refreshRecent(context.Background())
		return false

	case calls.CallStatusFailed:
		c.stopPollLocked()
		c.session.Status = StatusEnded
		c.appendLocked(msgFailed)
		c.publishLocked()
		c.mu.Unlock()
		c.refreshRecent(context.Background())
		return false
	}

	c.mu.Unlock()
	return true
}

func (c *Controller) refreshRecent(ctx context.Context) {
	if _, err := c.RefreshRecent(ctx); err != nil {
		c.log.Warn("recent calls refresh failed", "err", err)
	}
}

func (c *Controller) failLocked(err error) {
	c.session.Status = StatusIdle
	c.session.Error = err.Error()
	c.appendLocked("Error: " + err.Error())
	c.publishLocked()
}

func (c *Controller) appendLocked(msg string) {
	c.session.Events = append(c.session.Events, Event{Message: msg, Timestamp: c.clock().UTC()})
}

func (c *Controller) publishLocked() {
	snap := c.session.clone()
	for ch := range c.subs {
		select {
		case ch <- snap:
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- snap:
			default:
			}
		}
	}
}

func completionMessage(o calls.Outcome) string {
	if o == calls.OutcomeSuccessful {
		return msgSucceeded
	}
	return fmt.Sprintf("Call completed with outcome: %s", o)
}
