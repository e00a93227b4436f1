// Package log 是项目统一的日志门面，底层使用 zap.
//
// 包级函数 Info/Infof/Infow 等直接写全局日志器；Logger 接口用于
// 需要携带上下文字段（WithValues/WithName）或通过 context 传递的场景.
package log

import (
	"context"
	"fmt"
	stdlog "log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ifkeeper/keeper-commons-utils/log/klog"
	logruslogger "github.com/ifkeeper/keeper-commons-utils/log/logrus"
)

// InfoLogger 输出非错误日志.
type InfoLogger interface {
	Info(msg string, keysAndValues ...interface{})
	Infof(format string, args ...interface{})
	Enabled() bool
}

// Logger 是带上下文能力的日志器.
type Logger interface {
	InfoLogger
	Error(err error, msg string, keysAndValues ...interface{})
	Errorf(format string, args ...interface{})
	Warn(msg string, keysAndValues ...interface{})
	Debug(msg string, keysAndValues ...interface{})

	// V 返回指定详细程度的 InfoLogger，级别越高越次要，只允许 0 和 1.
	V(level int) InfoLogger
	Write(p []byte) (n int, err error)
	WithValues(keysAndValues ...interface{}) Logger
	WithName(name string) Logger
	WithContext(ctx context.Context) context.Context
	Flush()
}

var _ Logger = &zapLogger{}

var disabledInfoLogger = &noopInfoLogger{}

type noopInfoLogger struct{}

func (l *noopInfoLogger) Enabled() bool                    { return false }
func (l *noopInfoLogger) Info(_ string, _ ...interface{})  {}
func (l *noopInfoLogger) Infof(_ string, _ ...interface{}) {}

type infoLogger struct {
	level zapcore.Level
	log   *zap.Logger
}

func (l *infoLogger) Enabled() bool { return true }

func (l *infoLogger) Info(msg string, keysAndValues ...interface{}) {
	if ce := l.log.Check(l.level, msg); ce != nil {
		ce.Write(handleFields(l.log, keysAndValues)...)
	}
}

func (l *infoLogger) Infof(format string, args ...interface{}) {
	if ce := l.log.Check(l.level, fmt.Sprintf(format, args...)); ce != nil {
		ce.Write()
	}
}

type zapLogger struct {
	zapLogger *zap.Logger
	infoLogger
}

// handleFields 把 key/value 列表转换为 zap.Field，非法输入通过 DPanic 报告并截断.
func handleFields(l *zap.Logger, args []interface{}, additional ...zap.Field) []zap.Field {
	if len(args) == 0 {
		return additional
	}

	fields := make([]zap.Field, 0, len(args)/2+len(additional))
	for i := 0; i < len(args); {
		if _, ok := args[i].(zap.Field); ok {
			l.DPanic("strongly-typed Zap Field passed to logr", zap.Any("zap field", args[i]))
			break
		}
		if i == len(args)-1 {
			l.DPanic("odd number of arguments passed as key-value pairs for logging", zap.Any("ignored key", args[i]))
			break
		}

		key, val := args[i], args[i+1]
		keyStr, ok := key.(string)
		if !ok {
			l.DPanic("non-string key argument passed to logging, ignoring all later arguments", zap.Any("invalid key", key))
			break
		}
		fields = append(fields, zap.Any(keyStr, val))
		i += 2
	}

	return append(fields, additional...)
}

var (
	std = New(NewOptions())
	mu  sync.Mutex
)

// Init 用 opts 替换全局日志器，并把 klog、logrus 标准日志器与标准库 log 重定向过来.
func Init(opts *Options) {
	mu.Lock()
	defer mu.Unlock()
	std = New(opts)
	klog.InitLogger(std.zapLogger)
	logruslogger.Redirect(logrus.StandardLogger(), std.zapLogger)
	zap.RedirectStdLog(std.zapLogger)
}

// New 按 opts 构造日志器，非法的格式或不可写的路径会导致 panic.
func New(opts *Options) *zapLogger {
	if opts == nil {
		opts = NewOptions()
	}

	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(opts.Level)); err != nil {
		zapLevel = zapcore.InfoLevel
	}

	encodeLevel := zapcore.CapitalLevelEncoder
	if opts.Format == consoleFormat && opts.EnableColor {
		encodeLevel = zapcore.CapitalColorLevelEncoder
	}

	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "timestamp",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "message",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    encodeLevel,
		EncodeTime:     timeEncoder,
		EncodeDuration: milliSecondsDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
		EncodeName:     zapcore.FullNameEncoder,
	}

	var encoder zapcore.Encoder
	switch strings.ToLower(opts.Format) {
	case consoleFormat:
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	case jsonFormat:
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	default:
		panic(fmt.Sprintf("unsupported log format: %s", opts.Format))
	}

	stdCore := zapcore.NewCore(encoder, openSinks(opts.OutputPaths),
		zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
			return lvl < zapcore.ErrorLevel && lvl >= zapLevel
		}))
	errCore := zapcore.NewCore(encoder, openSinks(opts.ErrorOutputPaths),
		zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
			return lvl >= zapcore.ErrorLevel && lvl >= zapLevel
		}))

	zapOpts := []zap.Option{zap.AddStacktrace(zapcore.PanicLevel), zap.AddCallerSkip(1)}
	if opts.EnableCaller {
		zapOpts = append(zapOpts, zap.AddCaller())
	}
	l := zap.New(zapcore.NewTee(stdCore, errCore), zapOpts...).Named(opts.Name)

	return &zapLogger{
		zapLogger:  l,
		infoLogger: infoLogger{log: l, level: zapcore.InfoLevel},
	}
}

func openSinks(paths []string) zapcore.WriteSyncer {
	writers := make([]zapcore.WriteSyncer, 0, len(paths))
	for _, path := range paths {
		switch path {
		case "stdout":
			writers = append(writers, zapcore.Lock(os.Stdout))
		case "stderr":
			writers = append(writers, zapcore.Lock(os.Stderr))
		default:
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				panic(fmt.Sprintf("create log directory: %v", err))
			}
			f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
			if err != nil {
				panic(fmt.Sprintf("open log file: %v", err))
			}
			writers = append(writers, zapcore.AddSync(f))
		}
	}
	return zapcore.NewMultiWriteSyncer(writers...)
}

// NewLogger 把 zap.Logger 包装成 Logger.
func NewLogger(l *zap.Logger) Logger {
	return &zapLogger{
		zapLogger:  l,
		infoLogger: infoLogger{log: l, level: zapcore.InfoLevel},
	}
}

// StdErrLogger 返回写到 error 级别的标准库 *log.Logger.
func StdErrLogger() *stdlog.Logger {
	l, err := zap.NewStdLogAt(std.zapLogger, zapcore.ErrorLevel)
	if err != nil {
		return nil
	}
	return l
}

// StdInfoLogger 返回写到 info 级别的标准库 *log.Logger.
func StdInfoLogger() *stdlog.Logger {
	l, err := zap.NewStdLogAt(std.zapLogger, zapcore.InfoLevel)
	if err != nil {
		return nil
	}
	return l
}

func (l *zapLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	if ce := l.zapLogger.Check(zapcore.ErrorLevel, msg); ce != nil {
		ce.Write(handleFields(l.zapLogger, keysAndValues, zap.Error(err))...)
	}
}

func (l *zapLogger) Errorf(format string, args ...interface{}) {
	l.zapLogger.Sugar().Errorf(format, args...)
}

func (l *zapLogger) Warn(msg string, keysAndValues ...interface{}) {
	if ce := l.zapLogger.Check(zapcore.WarnLevel, msg); ce != nil {
		ce.Write(handleFields(l.zapLogger, keysAndValues)...)
	}
}

func (l *zapLogger) Debug(msg string, keysAndValues ...interface{}) {
	if ce := l.zapLogger.Check(zapcore.DebugLevel, msg); ce != nil {
		ce.Write(handleFields(l.zapLogger, keysAndValues)...)
	}
}

func (l *zapLogger) V(level int) InfoLogger {
	if level < 0 || level > 1 {
		panic("valid log level is [0, 1]")
	}
	lvl := zapcore.Level(-1 * level)
	if l.zapLogger.Core().Enabled(lvl) {
		return &infoLogger{level: lvl, log: l.zapLogger}
	}
	return disabledInfoLogger
}

func (l *zapLogger) Write(p []byte) (n int, err error) {
	l.zapLogger.Info(string(p))
	return len(p), nil
}

func (l *zapLogger) WithValues(keysAndValues ...interface{}) Logger {
	return NewLogger(l.zapLogger.With(handleFields(l.zapLogger, keysAndValues)...))
}

func (l *zapLogger) WithName(name string) Logger {
	return NewLogger(l.zapLogger.Named(name))
}

func (l *zapLogger) Flush() {
	_ = l.zapLogger.Sync()
}

// ZapLogger 返回全局日志器底层的 *zap.Logger，供 gorm、logrus 等适配层使用.
func ZapLogger() *zap.Logger { return std.zapLogger }

// CheckIntLevel 供 klog 风格的整数级别使用：小于 5 视为 info，否则视为 debug.
func CheckIntLevel(level int32) bool {
	lvl := zapcore.InfoLevel
	if level >= 5 {
		lvl = zapcore.DebugLevel
	}
	return std.zapLogger.Check(lvl, "") != nil
}

func V(level int) InfoLogger { return std.V(level) }
func WithValues(keysAndValues ...interface{}) Logger { return std.WithValues(keysAndValues...) }
func WithName(s string) Logger { return std.WithName(s) }
func Flush() { std.Flush() }

func Debug(msg string, fields ...Field) { std.zapLogger.Debug(msg, fields...) }
func Debugf(format string, v ...interface{}) { std.zapLogger.Sugar().Debugf(format, v...) }
func Debugw(msg string, keysAndValues ...interface{}) { std.zapLogger.Sugar().Debugw(msg, keysAndValues...) }

func Info(msg string, fields ...Field) { std.zapLogger.Info(msg, fields...) }
func Infof(format string, v ...interface{}) { std.zapLogger.Sugar().Infof(format, v...) }
func Infow(msg string, keysAndValues ...interface{}) { std.zapLogger.Sugar().Infow(msg, keysAndValues...) }

func Warn(msg string, fields ...Field) { std.zapLogger.Warn(msg, fields...) }
func Warnf(format string, v ...interface{}) { std.zapLogger.Sugar().Warnf(format, v...) }
func Warnw(msg string, keysAndValues ...interface{}) { std.zapLogger.Sugar().Warnw(msg, keysAndValues...) }

func Error(msg string, fields ...Field) { std.zapLogger.Error(msg, fields...) }
func Errorf(format string, v ...interface{}) { std.zapLogger.Sugar().Errorf(format, v...) }
func Errorw(msg string, keysAndValues ...interface{}) { std.zapLogger.Sugar().Errorw(msg, keysAndValues...) }

func Fatal(msg string, fields ...Field) { std.zapLogger.Fatal(msg, fields...) }
func Fatalf(format string, v ...interface{}) { std.zapLogger.Sugar().Fatalf(format, v...) }
func Fatalw(msg string, keysAndValues ...interface{}) { std.zapLogger.Sugar().Fatalw(msg, keysAndValues...) }
