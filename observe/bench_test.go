package observe

import (
	"context"
	"io"
	"testing"
)

func BenchmarkLogger_Info(b *testing.B) {
	logger := NewLoggerWithWriter("info", io.Discard)
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		logger.Info(ctx, "snippet stored",
			Field{Key: "snippet_id", Value: "hello-world"},
			Field{Key: "size", Value: 412},
		)
	}
}

func BenchmarkLogger_FilteredOut(b *testing.B) {
	logger := NewLoggerWithWriter("error", io.Discard)
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		logger.Debug(ctx, "blob listed")
	}
}

func BenchmarkLogger_WithRequestID(b *testing.B) {
	logger := NewLoggerWithWriter("info", io.Discard)
	ctx := WithRequestID(context.Background(), "1b7a2c9e")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		logger.Info(ctx, "snippet read", Field{Key: "snippet_id", Value: "hello-world"})
	}
}

func BenchmarkLogger_Redaction(b *testing.B) {
	logger := NewLoggerWithWriter("info", io.Discard)
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		logger.Info(ctx, "backend configured",
			Field{Key: "connection_string", Value: "AccountName=dev;AccountKey=hunter2"},
		)
	}
}

func BenchmarkLogger_With(b *testing.B) {
	logger := NewLoggerWithWriter("info", io.Discard)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = logger.With(Field{Key: "module", Value: "snippets"})
	}
}
