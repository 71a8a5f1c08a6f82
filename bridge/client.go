package bridge

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"nightfall/application"
	"nightfall/domain"
	"nightfall/utils"
)

const (
	instrumentationName = "nightfall/bridge"
	leaveTimeout        = time.Second
)

var (
	// ErrBackpressure は書き込みチャネルが満杯の場合に返されるエラーです。
	ErrBackpressure = errors.New("write channel is full, apply backpressure")
	// ErrInitializationFailed はクライアントの初期化に失敗した場合に返されるエラーです。
	ErrInitializationFailed = errors.New("failed to initialize bridge client")
	// ErrSessionIdle はホストからの受信が途絶えた場合に返されるエラーです。
	ErrSessionIdle = errors.New("host session is idle")
	// ErrClosed はクライアントが既に閉じられている場合に返されるエラーです。
	ErrClosed = errors.New("bridge client closed")
)

// Options はクライアントの動作設定です。
type Options struct {
	IdleTimeout  time.Duration // 0 以下なら監視しない
	PingInterval time.Duration // 0 以下なら ping を送らない
	WriteBuffer  int
}

// Client はホストエンジンとチームの意思決定をつなぐ1接続分のエンドポイントです。
// 受信したフレームは readLoop の単一ゴルーチンで順に処理されるため、
// エージェントのコールバックが並行に呼ばれることはありません。
type Client struct {
	session   *domain.Session
	transport domain.Transport
	team      *application.Team
	opts      Options

	writeCh chan []byte
	seq     atomic.Uint32

	tracer    trace.Tracer
	decisions metric.Int64Counter
	dropped   metric.Int64Counter
}

func NewClient(transport domain.Transport, team *application.Team, opts Options) (*Client, error) {
	if transport == nil || team == nil {
		return nil, ErrInitializationFailed
	}
	if opts.WriteBuffer <= 0 {
		opts.WriteBuffer = 256
	}

	meter := otel.Meter(instrumentationName)
	decisions, err := meter.Int64Counter("bridge.decisions",
		metric.WithDescription("Decisions returned to the host engine."))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInitializationFailed, err)
	}
	dropped, err := meter.Int64Counter("bridge.frames.dropped",
		metric.WithDescription("Host frames dropped because they could not be handled."))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInitializationFailed, err)
	}

	return &Client{
		session:   domain.NewSession(),
		transport: transport,
		team:      team,
		opts:      opts,
		writeCh:   make(chan []byte, opts.WriteBuffer),
		tracer:    otel.Tracer(instrumentationName),
		decisions: decisions,
		dropped:   dropped,
	}, nil
}

// SessionID はホストから割り当てられたセッションIDを返します。
func (c *Client) SessionID() domain.SessionID {
	return c.session.ID()
}

// Run はホストとの接続が切れるか ctx がキャンセルされるまでブロックします。
// ctx のキャンセルによる終了では nil を返します。
func (c *Client) Run(ctx context.Context) error {
	if c.session.IsClosed() {
		return ErrClosed
	}
	defer c.close()

	// ループは親 ctx のキャンセル後も leave を送り終えるまで動かす
	loopCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	defer cancel()

	parent := ctx
	eg, ctx := errgroup.WithContext(loopCtx)
	eg.Go(func() error {
		return c.leaveLoop(parent, ctx)
	})
	eg.Go(func() error {
		return c.ownerLoop(ctx)
	})
	eg.Go(func() error {
		return c.readLoop(ctx)
	})
	eg.Go(func() error {
		return c.writeLoop(ctx)
	})
	if c.opts.PingInterval > 0 {
		hb := NewHeartbeat(c.opts.PingInterval, c.session, c.Send)
		eg.Go(func() error {
			hb.Run(ctx)
			return nil
		})
	}

	err := eg.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// Send は書き込みチャネルへ data を積みます。満杯なら ErrBackpressure を返します。
func (c *Client) Send(data []byte) error {
	select {
	case c.writeCh <- data:
		return nil
	default:
		return ErrBackpressure
	}
}

func (c *Client) nextSeq() uint16 {
	return uint16(c.seq.Add(1))
}

// leaveLoop は parent がキャンセルされたらホストへ leave を送り、全ループを止めます。
func (c *Client) leaveLoop(parent, ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-parent.Done():
	}

	if id := c.session.ID(); !id.IsZero() {
		wctx, cancel := context.WithTimeout(ctx, leaveTimeout)
		defer cancel()
		if err := c.transport.Write(wctx, domain.EncodeControlMessage(id, c.nextSeq(), domain.ControlSubTypeLeave)); err != nil {
			slog.DebugContext(ctx, "failed to send leave", "sessionID", id, "err", err)
		}
	}
	return context.Canceled
}

// ownerLoop はセッションの死活を監視します。
func (c *Client) ownerLoop(ctx context.Context) error {
	if c.opts.IdleTimeout <= 0 {
		<-ctx.Done()
		return ctx.Err()
	}
	ticker := time.NewTicker(c.opts.IdleTimeout / 4)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if idle, reason := c.session.IsIdle(c.opts.IdleTimeout); idle && reason.Has(domain.IdleRead) {
				slog.WarnContext(ctx, "host session idle", "sessionID", c.session.ID(), "reason", reason)
				return fmt.Errorf("%w: %s", ErrSessionIdle, reason)
			}
		}
	}
}

func (c *Client) readLoop(ctx context.Context) error {
	for {
		data, err := c.transport.Read(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("read: %w", err)
		}
		c.session.TouchRead()
		c.handleData(ctx, data)
	}
}

func (c *Client) writeLoop(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case data := <-c.writeCh:
			if err := c.transport.Write(ctx, data); err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				return fmt.Errorf("write: %w", err)
			}
		}
	}
}

func (c *Client) close() {
	if !c.session.Close() {
		return
	}
	if err := c.transport.Close(1000, "bye"); err != nil {
		slog.Debug("transport close failed", "err", err)
	}
}

func (c *Client) handleData(ctx context.Context, data []byte) {
	frame, err := domain.ParseFrame(data)
	if err != nil {
		c.drop(ctx, "parse", err)
		return
	}

	sessionID := domain.SessionIDFromBytes(frame.Header.SessionID)
	isAssign := frame.Payload.DataType == domain.DataTypeControl &&
		domain.ControlSubType(frame.Payload.SubType) == domain.ControlSubTypeAssign
	if !isAssign {
		if c.session.ID().IsZero() {
			c.drop(ctx, "unassigned", nil)
			return
		}
		if sessionID != c.session.ID() {
			slog.WarnContext(ctx, "session ID mismatch", "expected", c.session.ID(), "got", sessionID)
			c.drop(ctx, "session_mismatch", nil)
			return
		}
	}

	switch frame.Payload.DataType {
	case domain.DataTypeControl:
		c.handleControl(ctx, frame)
	case domain.DataTypeTick:
		c.handleTick(ctx, frame)
	case domain.DataTypeLevelup:
		c.handleLevelup(ctx, frame)
	default:
		slog.WarnContext(ctx, "unknown data type", "dataType", frame.Payload.DataType)
		c.drop(ctx, "unknown_type", nil)
	}
}

func (c *Client) handleControl(ctx context.Context, frame *domain.Frame) {
	switch domain.ControlSubType(frame.Payload.SubType) {
	case domain.ControlSubTypeAssign:
		sessionID := domain.SessionIDFromBytes(frame.Header.SessionID)
		c.session.Assign(sessionID)
		slog.InfoContext(ctx, "session assigned", "sessionID", sessionID)

		join := domain.JoinBody{Team: c.team.Name, Heroes: c.team.Heroes()}
		msg, err := domain.EncodeMessage(sessionID, c.nextSeq(), domain.DataTypeControl, uint8(domain.ControlSubTypeJoin), join)
		if err != nil {
			slog.ErrorContext(ctx, "failed to encode join", "err", err)
			return
		}
		c.send(ctx, msg, "join")
	case domain.ControlSubTypePing:
		c.send(ctx, domain.EncodeControlMessage(c.session.ID(), frame.Header.Seq, domain.ControlSubTypePong), "pong")
	case domain.ControlSubTypePong:
		c.session.TouchPong()
	case domain.ControlSubTypeError:
		var body domain.ErrorBody
		if err := frame.DecodeBody(&body); err != nil {
			c.drop(ctx, "error_body", err)
			return
		}
		slog.WarnContext(ctx, "host reported error", "message", body.Message)
	default:
		slog.WarnContext(ctx, "unknown control subtype", "subType", frame.Payload.SubType)
	}
}

func (c *Client) handleTick(ctx context.Context, frame *domain.Frame) {
	var snap domain.Snapshot
	if err := frame.DecodeBody(&snap); err != nil {
		c.drop(ctx, "tick_body", err)
		return
	}
	if !utils.FiniteSnapshot(&snap) {
		c.drop(ctx, "non_finite", nil)
		return
	}

	ctx, span := c.tracer.Start(ctx, "team.run", trace.WithAttributes(
		attribute.Float64("t", snap.T),
		attribute.Int("seq", int(frame.Header.Seq)),
	))
	moves := c.team.Run(ctx, &snap)
	span.SetAttributes(attribute.Int("moves", len(moves)))
	span.End()

	msg, err := domain.EncodeMessage(c.session.ID(), frame.Header.Seq, domain.DataTypeCommand, 0, domain.CommandBody(moves))
	if err != nil {
		slog.ErrorContext(ctx, "failed to encode command", "err", err)
		return
	}
	c.decisions.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", "run")))
	c.send(ctx, msg, "command")
}

func (c *Client) handleLevelup(ctx context.Context, frame *domain.Frame) {
	if domain.LevelupSubType(frame.Payload.SubType) != domain.LevelupSubTypeRequest {
		slog.WarnContext(ctx, "unexpected levelup subtype", "subType", frame.Payload.SubType)
		return
	}
	var req domain.LevelupRequest
	if err := frame.DecodeBody(&req); err != nil {
		c.drop(ctx, "levelup_body", err)
		return
	}

	ctx, span := c.tracer.Start(ctx, "team.levelup", trace.WithAttributes(attribute.Float64("t", req.T)))
	choice, err := c.team.Levelup(ctx, req.T, req.Info, req.Players)
	if err != nil {
		span.RecordError(err)
		span.End()
		slog.WarnContext(ctx, "levelup failed", "err", err)
		return
	}
	span.SetAttributes(attribute.String("hero", choice.Hero), attribute.String("stat", choice.Choice.String()))
	span.End()

	msg, err := domain.EncodeMessage(c.session.ID(), frame.Header.Seq, domain.DataTypeLevelup, uint8(domain.LevelupSubTypeChoice), choice)
	if err != nil {
		slog.ErrorContext(ctx, "failed to encode levelup choice", "err", err)
		return
	}
	c.decisions.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", "levelup")))
	c.send(ctx, msg, "levelup")
}

func (c *Client) send(ctx context.Context, msg []byte, kind string) {
	if err := c.Send(msg); err != nil {
		slog.WarnContext(ctx, "reply dropped", "kind", kind, "err", err)
	}
}

func (c *Client) drop(ctx context.Context, reason string, err error) {
	slog.DebugContext(ctx, "frame dropped", "reason", reason, "err", err)
	c.dropped.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", reason)))
}
