package llm

import "go.uber.org/zap"

// CallEvent describes one completed completion call.
type CallEvent struct {
	Model     string
	LatencyMs int64
	Success   bool
	ErrorCode string
}

// Observer receives completion-call telemetry.
type Observer interface {
	OnCallComplete(e CallEvent)
}

// NoopObserver discards all events.
type NoopObserver struct{}

func (NoopObserver) OnCallComplete(CallEvent) {}

// ZapObserver logs completion calls through a zap logger.
type ZapObserver struct {
	Logger *zap.Logger
}

func (o ZapObserver) OnCallComplete(e CallEvent) {
	if o.Logger == nil {
		return
	}
	if e.Success {
		o.Logger.Debug("completion call",
			zap.String("model", e.Model),
			zap.Int64("latency_ms", e.LatencyMs),
		)
		return
	}
	o.Logger.Warn("completion call failed",
		zap.String("model", e.Model),
		zap.Int64("latency_ms", e.LatencyMs),
		zap.String("error_code", e.ErrorCode),
	)
}
