package jsonstream

import (
	"context"
	"strings"
	"testing"
)

func benchmarkInput(n int) string {
	var b strings.Builder
	b.WriteString(`{"results":[`)
	for i := 0; i < n; i++ {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(`{"id":`)
		b.WriteString(strings.Repeat("9", 1+i%5))
		b.WriteString(`,"name":"item","tags":["a","b","c"],"active":true}`)
	}
	b.WriteString(`],"meta":{"total":`)
	b.WriteString(strings.Repeat("9", 4))
	b.WriteString(`}}`)
	return b.String()
}

func BenchmarkVisitSelective(b *testing.B) {
	input := []byte(benchmarkInput(1000))
	b.SetBytes(int64(len(input)))
	b.ReportAllocs()

	schema := Object(map[string]Schema{
		"results": Array(Object(map[string]Schema{
			"id": Leaf(func(ctx context.Context, v any) error { return nil }),
		})),
	})

	for i := 0; i < b.N; i++ {
		src := &sliceSource{chunks: [][]byte{input}}
		if err := Visit(context.Background(), src, schema); err != nil {
			b.Fatalf("Visit: unexpected error: %v", err)
		}
	}
}

func BenchmarkVisitWholeDocument(b *testing.B) {
	input := []byte(benchmarkInput(1000))
	b.SetBytes(int64(len(input)))
	b.ReportAllocs()

	var schema Schema
	schema = Leaf(func(ctx context.Context, v any) error { return nil })

	for i := 0; i < b.N; i++ {
		src := &sliceSource{chunks: [][]byte{input}}
		if err := Visit(context.Background(), src, schema); err != nil {
			b.Fatalf("Visit: unexpected error: %v", err)
		}
	}
}

func BenchmarkScannerFeed(b *testing.B) {
	input := []byte(benchmarkInput(1000))
	b.SetBytes(int64(len(input)))
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		s := NewScanner()
		s.Feed(input)
		s.End()
	}
}
