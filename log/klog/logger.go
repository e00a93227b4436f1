// Package klog 把 k8s.io/klog 的输出转发到 zap.
package klog

import (
	"flag"

	"go.uber.org/zap"
	"k8s.io/klog"
)

// InitLogger 按严重级别把 klog 输出重定向到 zapLogger.
func InitLogger(zapLogger *zap.Logger) {
	fs := flag.NewFlagSet("klog", flag.ContinueOnError)
	klog.InitFlags(fs)
	defer klog.Flush()

	klog.SetOutputBySeverity("INFO", &writer{write: zapLogger.Info})
	klog.SetOutputBySeverity("WARNING", &writer{write: zapLogger.Warn})
	klog.SetOutputBySeverity("ERROR", &writer{write: zapLogger.Error})
	klog.SetOutputBySeverity("FATAL", &writer{write: zapLogger.Fatal})

	_ = fs.Set("skip_headers", "true")
	_ = fs.Set("logtostderr", "false")
}

type writer struct {
	write func(msg string, fields ...zap.Field)
}

func (w *writer) Write(p []byte) (int, error) {
	msg := string(p)
	if n := len(msg); n > 0 && msg[n-1] == '\n' {
		msg = msg[:n-1]
	}
	w.write(msg)
	return len(p), nil
}
