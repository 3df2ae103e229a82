package feed

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/tui-balance/internal/balance"
)

const (
	readLimit    = 4 << 10
	pongWait     = 60 * time.Second
	pingInterval = 25 * time.Second
	writeWait    = 10 * time.Second
)

var upgrader = websocket.Upgrader{
	// Renderers are served from anywhere, including file:// pages.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Conn is a client connection as seen by the hub. Send is only called
// from the loop goroutine.
type Conn interface {
	Send([]byte) error
	Close() error
}

// Options configures a Hub.
type Options struct {
	TickRate     int
	StepMode     balance.StepMode
	InitialSpeed float64
	// RestartAfter starts a new run this long after a crash. Zero waits
	// for a client reset.
	RestartAfter time.Duration
	Logger       *log.Logger
}

// Hub runs one shared simulation on a ticker goroutine and fans its
// snapshots out to every connected client. All simulation and client-set
// access happens on that goroutine; connection handlers hand work over
// through the scheduler.
type Hub struct {
	loop   *balance.Loop
	sched  *balance.TickerScheduler
	opts   Options
	logger *log.Logger

	ctx    context.Context
	cancel context.CancelFunc

	clients map[int]Conn
	nextID  int
}

// NewHub creates a hub around sim. Call Run to start ticking.
func NewHub(sim *balance.Simulator, opts Options) *Hub {
	if opts.TickRate <= 0 {
		opts.TickRate = 60
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	ctx, cancel := context.WithCancel(context.Background())
	h := &Hub{
		sched:   balance.NewTickerScheduler(time.Second / time.Duration(opts.TickRate)),
		opts:    opts,
		logger:  logger,
		ctx:     ctx,
		cancel:  cancel,
		clients: make(map[int]Conn),
	}
	h.loop = balance.NewLoop(sim, opts.TickRate,
		balance.WithScheduler(h.sched),
		balance.WithStepMode(opts.StepMode),
		balance.WithLogger(logger),
		balance.WithObserver(h.broadcastState),
		balance.OnCrash(h.onCrash),
	)
	return h
}

// Run starts the first run and processes ticks and client work until ctx
// is canceled.
func (h *Hub) Run(ctx context.Context) error {
	stop := context.AfterFunc(ctx, h.cancel)
	defer stop()
	defer h.cancel()

	speed := h.opts.InitialSpeed
	if speed == 0 {
		speed = h.loop.Live().Speed
	}
	h.loop.Start(speed)
	h.logger.Info("feed started", "tick_hz", h.opts.TickRate)

	err := h.sched.Run(h.ctx)

	for id, c := range h.clients {
		_ = c.Close()
		delete(h.clients, id)
	}
	h.logger.Info("feed stopped")
	return err
}

// Do runs task on the loop goroutine. It fails once the hub has stopped.
func (h *Hub) Do(task func()) error {
	return h.sched.Do(h.ctx, task)
}

func (h *Hub) broadcastState(s balance.Snapshot) {
	h.broadcast(MsgState, NewState(s))
}

func (h *Hub) onCrash(reason balance.CrashReason) {
	snap := h.loop.Snapshot()
	h.logger.Info("rider fell", "reason", reason, "score", snap.Score)
	h.broadcast(MsgCrash, Crash{Reason: reason.String(), Score: snap.Score})

	if h.opts.RestartAfter > 0 {
		time.AfterFunc(h.opts.RestartAfter, func() {
			//nolint:errcheck // Hub may have stopped; nothing to restart then
			h.Do(h.restartIfCrashed)
		})
	}
}

func (h *Hub) restartIfCrashed() {
	if !h.loop.Live().Running {
		h.loop.Reset()
	}
}

func (h *Hub) broadcast(t string, payload any) {
	if len(h.clients) == 0 {
		return
	}
	b, err := Encode(t, payload)
	if err != nil {
		h.logger.Error("encode failed", "type", t, "err", err)
		return
	}

	var failed []int
	for id, c := range h.clients {
		if err := c.Send(b); err != nil {
			failed = append(failed, id)
		}
	}
	for _, id := range failed {
		h.logger.Warn("dropping client", "client", id)
		h.leave(id)
	}
}

// join registers c and greets it with the scenario and current state.
func (h *Hub) join(c Conn) int {
	h.nextID++
	id := h.nextID
	h.clients[id] = c

	p := h.loop.Params()
	for _, msg := range []struct {
		t string
		p any
	}{
		{MsgWelcome, Welcome{
			TickHz:         h.opts.TickRate,
			CrashThreshold: p.CrashThreshold,
			SteerLimit:     p.SteerLimit,
			MinSpeed:       p.MinSpeed,
			MaxSpeed:       p.MaxSpeed,
		}},
		{MsgState, NewState(h.loop.Snapshot())},
	} {
		if b, err := Encode(msg.t, msg.p); err == nil {
			_ = c.Send(b)
		}
	}
	h.logger.Info("client joined", "client", id, "clients", len(h.clients))
	return id
}

func (h *Hub) leave(id int) {
	c, ok := h.clients[id]
	if !ok {
		return
	}
	_ = c.Close()
	delete(h.clients, id)
	h.logger.Info("client left", "client", id, "clients", len(h.clients))
}

// handle applies one client frame. Runs on the loop goroutine.
func (h *Hub) handle(env Envelope) {
	switch env.T {
	case MsgPointer:
		p, err := DecodePayload[Pointer](env)
		if err != nil {
			h.logger.Debug("bad pointer frame", "err", err)
			return
		}
		h.loop.OnPointerMove(p.X, p.W)
	case MsgSpeed:
		s, err := DecodePayload[Speed](env)
		if err != nil {
			h.logger.Debug("bad speed frame", "err", err)
			return
		}
		h.loop.SetSpeed(s.V)
	case MsgReset:
		h.loop.Reset()
	default:
		h.logger.Debug("unknown frame", "type", env.T)
	}
}

// ServeHTTP upgrades the request to a WebSocket and serves one client.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("upgrade failed", "remote", r.RemoteAddr, "err", err)
		return
	}
	c := &wsConn{ws: ws}
	defer c.Close()

	ws.SetReadLimit(readLimit)
	_ = ws.SetReadDeadline(time.Now().Add(pongWait))
	ws.SetPongHandler(func(string) error {
		return ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	joined := make(chan int, 1)
	if err := h.Do(func() { joined <- h.join(c) }); err != nil {
		return
	}
	var id int
	select {
	case id = <-joined:
	case <-h.ctx.Done():
		return
	}
	defer func() {
		//nolint:errcheck // Hub gone means the client set is gone too
		h.Do(func() { h.leave(id) })
	}()

	done := make(chan struct{})
	defer close(done)
	go c.pingLoop(done)

	for {
		_, msg, err := ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Debug("read failed", "client", id, "err", err)
			}
			return
		}
		env, err := DecodeEnvelope(msg)
		if err != nil {
			h.logger.Debug("bad frame", "client", id, "err", err)
			continue
		}
		if err := h.Do(func() { h.handle(env) }); err != nil {
			return
		}
	}
}

// wsConn adapts a gorilla connection to Conn.
type wsConn struct {
	ws *websocket.Conn
}

func (c *wsConn) Send(b []byte) error {
	_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
	return c.ws.WriteMessage(websocket.TextMessage, b)
}

func (c *wsConn) Close() error {
	return c.ws.Close()
}

// pingLoop keeps the connection alive. WriteControl is safe to call
// concurrently with Send.
func (c *wsConn) pingLoop(done <-chan struct{}) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if err := c.ws.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}
