package log

import "context"

type key int

const logContextKey key = iota

// WithContext 把日志器放入 ctx.
func (l *zapLogger) WithContext(ctx context.Context) context.Context {
	return context.WithValue(ctx, logContextKey, l)
}

// WithContext 把全局日志器放入 ctx.
func WithContext(ctx context.Context) context.Context {
	return std.WithContext(ctx)
}

// FromContext 取出 ctx 中的日志器，不存在时返回全局日志器.
func FromContext(ctx context.Context) Logger {
	if ctx != nil {
		if l, ok := ctx.Value(logContextKey).(Logger); ok {
			return l
		}
	}
	return std
}

// KeyRequestID 是请求 ID 在上下文中的键.
const KeyRequestID = "requestID"

// L 返回 ctx 对应的日志器，并带上 ctx 中的请求 ID.
func L(ctx context.Context) Logger {
	lg := FromContext(ctx)
	if ctx == nil {
		return lg
	}
	if rid := ctx.Value(KeyRequestID); rid != nil {
		lg = lg.WithValues(KeyRequestID, rid)
	}
	return lg
}
