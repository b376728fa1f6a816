package runtime

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"termframe"
	"termframe/cursor"
	"termframe/diff"
	"termframe/framerate"
	"termframe/sgr"
)

// Writer is the terminal-output side of the external terminal-driver
// collaborator: the Runtime writes one accumulated byte slice per
// render tick.
type Writer interface {
	Write(p []byte) (int, error)
}

// Restorer is the terminal-driver collaborator's cleanup surface,
// invoked by Shutdown (on an explicit quit command, and when Run's
// context is canceled). A panic outside the recovered component calls
// does not go through Shutdown, so Restore is not invoked on that path.
// Each step must be independently guarded: a failure in one does not
// prevent the Runtime from attempting the rest.
type Restorer interface {
	Restore() error
}

// Executor runs a Command's side effect out of band and calls deliver
// with its result when done. ctx is canceled once a result has been
// delivered; when the command's Timeout elapses, in which case the
// Runtime itself delivers ErrTimeout to the component; and when the
// Runtime shuts down, in which case nothing is delivered.
type Executor interface {
	Execute(ctx context.Context, cmd Command, deliver func(result any))
}

type timeoutError struct{}

func (timeoutError) Error() string { return "timeout" }

// ErrTimeout is delivered to a component as the result of a command
// that exceeded its Timeout.
var ErrTimeout error = timeoutError{}

type componentEntry struct {
	component Component
	state     any
	parent    ComponentID
	hasParent bool
}

type queuedMessage struct {
	id ComponentID
	m  Message
}

type pendingCommand struct {
	componentID ComponentID
	command     Command
	cancel      context.CancelFunc
}

// Options configures a Runtime.
type Options struct {
	FPS              framerate.FPS
	MessageQueueSize int // 0 = unbounded
	Logger           *slog.Logger
	Spatial          SpatialIndex
	Executor         Executor
}

// Runtime is the event -> message -> update -> frame dispatch loop
// described by the rendering core: single-threaded-cooperative event
// dispatch, message processing, and command bookkeeping, serialized
// onto one coordinator goroutine; the render callback that goroutine
// invokes may itself write to buffers that other goroutines also write
// to concurrently (disjoint regions).
type Runtime struct {
	mu         sync.Mutex
	components map[ComponentID]*componentEntry
	focused    ComponentID
	queue      []queuedMessage
	queueMax   int
	queueDrops uint64
	pending    map[CommandID]pendingCommand
	nextCmdID  uint64

	dirty        atomic.Bool
	shuttingDown atomic.Bool

	bufMgr  *termframe.BufferManager
	limiter *framerate.Limiter
	writer  Writer
	restore Restorer
	spatial SpatialIndex
	exec    Executor
	logger  *slog.Logger

	cursorOpt *cursor.Optimizer
	seqBuf    *sgr.SequenceBuffer

	events chan Event
	done   chan struct{}
}

// New constructs a Runtime with root as the :root component, initially
// focused, owning a BufferManager sized rows x cols.
func New(root Component, rows, cols int, writer Writer, restore Restorer, opts Options) (*Runtime, error) {
	bufMgr, err := termframe.NewBufferManager(rows, cols)
	if err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	fps := opts.FPS
	if fps == 0 {
		fps = framerate.FPS60
	}

	rt := &Runtime{
		components: map[ComponentID]*componentEntry{
			RootID: {component: root, state: root.Init()},
		},
		focused: RootID,
		pending: make(map[CommandID]pendingCommand),
		bufMgr:  bufMgr,
		writer:  writer,
		restore: restore,
		spatial: opts.Spatial,
		exec:    opts.Executor,
		logger:  logger,
		events:  make(chan Event, 64),
		done:    make(chan struct{}),

		cursorOpt: cursor.NewOptimizer(cursor.Pos{Row: 1, Col: 1}),
		seqBuf:    sgr.NewSequenceBuffer(),
		queueMax:  opts.MessageQueueSize,
	}
	rt.limiter = framerate.NewLimiter(fps, rt.renderTick)
	return rt, nil
}

// Dispatch submits an externally-produced event for routing. It is
// safe to call from any goroutine (e.g. the input-parsing collaborator).
func (rt *Runtime) Dispatch(e Event) {
	if rt.shuttingDown.Load() {
		return
	}
	select {
	case rt.events <- e:
	case <-rt.done:
	}
}

// Run starts the coordinator goroutine: it drains dispatched events
// into component queues and drives the FramerateLimiter until ctx is
// canceled or Shutdown is called.
func (rt *Runtime) Run(ctx context.Context) {
	rt.limiter.Start()
	defer rt.limiter.Stop()
	for {
		select {
		case <-ctx.Done():
			rt.Shutdown()
			return
		case <-rt.done:
			return
		case e := <-rt.events:
			rt.handleEvent(e)
		}
	}
}

// handleEvent applies the Runtime's routing rules (spec.md §4.9):
// Key/Paste to the focused component, Mouse via the spatial index (or
// root), Resize/Focus/Tick broadcast to every component.
func (rt *Runtime) handleEvent(e Event) {
	switch e.Kind {
	case EventKey, EventPaste:
		rt.routeToOne(rt.currentFocused(), e)
	case EventMouse:
		id, lx, ly, ok := RootID, e.X, e.Y, false
		if rt.spatial != nil {
			if sid, slx, sly, sok := rt.spatial.ComponentAt(e.X, e.Y); sok {
				id, lx, ly, ok = sid, slx, sly, true
			}
		}
		translated := e
		if ok {
			translated.X, translated.Y = lx, ly
		}
		rt.routeToOne(id, translated)
	case EventResize:
		rt.handleResize(e)
		rt.broadcast(e)
	case EventFocus, EventTick:
		rt.broadcast(e)
	default:
		// Unknown kinds are ignored.
	}
}

func (rt *Runtime) currentFocused() ComponentID {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	return rt.focused
}

func (rt *Runtime) broadcast(e Event) {
	rt.mu.Lock()
	ids := make([]ComponentID, 0, len(rt.components))
	for id := range rt.components {
		ids = append(ids, id)
	}
	rt.mu.Unlock()
	for _, id := range ids {
		rt.routeToOne(id, e)
	}
}

// routeToOne calls EventToMsg on one component, applying the
// propagate/ignore/msg result, and recovers from any panic by logging
// and leaving the component's state untouched (spec.md §7).
func (rt *Runtime) routeToOne(id ComponentID, e Event) {
	entry := rt.lookup(id)
	if entry == nil {
		return
	}
	result := rt.safeEventToMsg(id, entry, e)
	switch result.Kind {
	case ResultIgnore:
		return
	case ResultMsg:
		rt.enqueue(id, result.Msg)
	case ResultPropagate:
		rt.mu.Lock()
		parent, hasParent := entry.parent, entry.hasParent
		rt.mu.Unlock()
		if hasParent {
			rt.routeToOne(parent, e)
		}
	}
}

func (rt *Runtime) safeEventToMsg(id ComponentID, entry *componentEntry, e Event) (result EventResult) {
	defer func() {
		if r := recover(); r != nil {
			rt.logger.Error("component event_to_msg panicked", "component", id, "panic", r)
			result = Ignore()
		}
	}()
	rt.mu.Lock()
	comp, state := entry.component, entry.state
	rt.mu.Unlock()
	return comp.EventToMsg(e, state)
}

func (rt *Runtime) lookup(id ComponentID) *componentEntry {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	return rt.components[id]
}

// enqueue appends (id, m) to the message queue, dropping the newest
// entry and counting the drop if the queue is bounded and full.
func (rt *Runtime) enqueue(id ComponentID, m Message) {
	rt.mu.Lock()
	if rt.queueMax > 0 && len(rt.queue) >= rt.queueMax {
		rt.queueDrops++
		rt.mu.Unlock()
		return
	}
	rt.queue = append(rt.queue, queuedMessage{id: id, m: m})
	rt.mu.Unlock()
}

// RegisterComponent adds a child component, reachable by id, whose
// EventToMsg Propagate results forward to parent.
func (rt *Runtime) RegisterComponent(id ComponentID, c Component, parent ComponentID) {
	rt.mu.Lock()
	rt.components[id] = &componentEntry{component: c, state: c.Init(), parent: parent, hasParent: true}
	rt.mu.Unlock()
}

// Focus changes which component receives Key/Paste events.
func (rt *Runtime) Focus(id ComponentID) {
	rt.mu.Lock()
	rt.focused = id
	rt.mu.Unlock()
}

// drainMessages atomically flushes the entire queue into a local list,
// per spec.md's "drain the entire queue" step.
func (rt *Runtime) drainMessages() []queuedMessage {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	drained := rt.queue
	rt.queue = nil
	return drained
}

// processMessages drains the queue, applies Update to each message in
// order, marks dirty on state changes, and executes any resulting
// commands. Called once per render tick and on explicit Sync.
func (rt *Runtime) processMessages() {
	for _, qm := range rt.drainMessages() {
		if rt.shuttingDown.Load() {
			return
		}
		rt.applyOne(qm)
	}
}

// Sync forces an out-of-band message drain, per spec.md's "drained
// once per render tick, and on explicit sync".
func (rt *Runtime) Sync() { rt.processMessages() }

func (rt *Runtime) applyOne(qm queuedMessage) {
	entry := rt.lookup(qm.id)
	if entry == nil {
		return
	}
	result, changed := rt.safeUpdate(qm.id, entry, qm.m)
	if changed {
		rt.dirty.Store(true)
		rt.limiter.MarkDirty()
	}
	for _, cmd := range result.Commands {
		if cmd.Type == CmdQuit {
			rt.Shutdown()
			return
		}
		if cmd.Type == CmdNone {
			continue
		}
		rt.runCommand(qm.id, cmd)
	}
}

func (rt *Runtime) safeUpdate(id ComponentID, entry *componentEntry, m Message) (result UpdateResult, changed bool) {
	defer func() {
		if r := recover(); r != nil {
			rt.logger.Error("component update panicked", "component", id, "panic", r)
			changed = false
		}
	}()
	rt.mu.Lock()
	comp, oldState := entry.component, entry.state
	rt.mu.Unlock()
	result = comp.Update(m, oldState)
	changed = result.State != oldState
	if changed {
		rt.mu.Lock()
		entry.state = result.State
		rt.mu.Unlock()
	}
	return result, changed
}

func (rt *Runtime) runCommand(id ComponentID, cmd Command) {
	if rt.exec == nil {
		return
	}
	rt.mu.Lock()
	rt.nextCmdID++
	cmdID := CommandID(rt.nextCmdID)
	ctx, cancel := context.WithCancel(context.Background())
	if cmd.Timeout > 0 {
		var timeoutCancel context.CancelFunc
		ctx, timeoutCancel = context.WithTimeout(ctx, cmd.Timeout)
		prev := cancel
		cancel = func() { timeoutCancel(); prev() }
	}
	rt.pending[cmdID] = pendingCommand{componentID: id, command: cmd, cancel: cancel}
	rt.mu.Unlock()

	deliver := func(result any) {
		rt.commandResult(cmdID, result)
	}
	go func() {
		rt.exec.Execute(ctx, cmd, deliver)
		<-ctx.Done()
		if ctx.Err() == context.DeadlineExceeded {
			rt.commandResult(cmdID, ErrTimeout)
		}
	}()
}

// commandResult removes the pending entry and enqueues result as a
// message to its originating component, per the OnResult callback if
// set.
func (rt *Runtime) commandResult(id CommandID, result any) {
	rt.mu.Lock()
	pc, ok := rt.pending[id]
	if ok {
		delete(rt.pending, id)
	}
	rt.mu.Unlock()
	if !ok {
		return
	}
	if pc.cancel != nil {
		pc.cancel()
	}
	msg := result
	if pc.command.OnResult != nil {
		msg = pc.command.OnResult(result)
	}
	rt.enqueue(pc.componentID, msg)
}

// handleResize resizes the BufferManager and clears the terminal,
// per spec.md's resize-handling contract. The Resize event itself is
// broadcast by the caller after this returns.
func (rt *Runtime) handleResize(e Event) {
	if err := rt.bufMgr.Resize(e.Height, e.Width); err != nil {
		rt.logger.Error("resize failed", "error", err)
		return
	}
	if rt.writer != nil {
		rt.writer.Write([]byte("\x1b[2J"))
	}
	rt.cursorOpt.SetPosition(cursor.Pos{Row: 1, Col: 1})
	rt.dirty.Store(true)
	rt.limiter.MarkDirty()
	rt.limiter.RenderImmediate()
}

// renderTick is the FramerateLimiter's render callback: drain
// messages, and if dirty, re-render, diff against the previous buffer,
// encode, flush to the writer in one call, and swap.
func (rt *Runtime) renderTick() {
	rt.processMessages()
	if rt.shuttingDown.Load() || !rt.dirty.Load() {
		return
	}

	root := rt.lookup(RootID)
	tree := rt.safeView(RootID, root)

	current := rt.bufMgr.Current()
	termframe.Rasterize(current, tree)

	ops := diff.Diff(current, rt.bufMgr.Previous())
	payload := sgr.EncodeFrame(rt.seqBuf, ops, rt.cursorOpt)
	if len(payload) > 0 && rt.writer != nil {
		rt.writer.Write(payload)
	}
	rt.bufMgr.Swap()
	rt.dirty.Store(false)
}

// safeView calls a component's View, substituting the render-error
// placeholder on panic so the frame is never lost.
func (rt *Runtime) safeView(id ComponentID, entry *componentEntry) (tree termframe.RenderNode) {
	defer func() {
		if r := recover(); r != nil {
			rt.logger.Error("component view panicked", "component", id, "panic", r)
			tree = termframe.RenderErrorNode()
		}
	}()
	if entry == nil {
		return termframe.RenderErrorNode()
	}
	rt.mu.Lock()
	comp, state := entry.component, entry.state
	rt.mu.Unlock()
	return comp.View(state)
}

// Shutdown initiates graceful shutdown: subsequent events and messages
// are discarded, pending commands are canceled, and the terminal is
// restored through the Restorer. Only this call restores the terminal;
// the Runtime recovers panics only inside the per-component
// EventToMsg/Update/View calls.
func (rt *Runtime) Shutdown() {
	if !rt.shuttingDown.CompareAndSwap(false, true) {
		return
	}
	rt.mu.Lock()
	for id, pc := range rt.pending {
		if pc.cancel != nil {
			pc.cancel()
		}
		delete(rt.pending, id)
	}
	rt.queue = nil
	rt.mu.Unlock()

	if rt.restore != nil {
		if err := rt.restore.Restore(); err != nil {
			rt.logger.Error("terminal restore failed", "error", err)
		}
	}
	close(rt.done)
}

// BufferManager exposes the Runtime's buffer manager, for drivers that
// need to read the current frame directly (e.g. an inline-mode writer
// computing how many lines it used).
func (rt *Runtime) BufferManager() *termframe.BufferManager { return rt.bufMgr }

// Limiter exposes the Runtime's FramerateLimiter, for callers that want
// direct pause/resume/stats access.
func (rt *Runtime) Limiter() *framerate.Limiter { return rt.limiter }
