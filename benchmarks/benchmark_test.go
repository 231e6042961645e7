package benchmarks_test

import (
	"bytes"
	"fmt"
	"strconv"
	"testing"

	"github.com/reoring/docskema"
	"github.com/reoring/docskema/codec"
	g "github.com/reoring/docskema/dsl"
	"github.com/reoring/docskema/rules"
	"github.com/reoring/docskema/source"
)

// ---- Helpers ----

func itemKind(tb testing.TB) *docskema.Schema {
	tb.Helper()
	s, err := g.Kind("item").
		Field("id", g.Str()).Required().
		Field("name", g.Str()).Validate(rules.MinLen(1)).
		Field("age", g.Int()).
		Field("active", g.Bool()).
		Field("price", g.Custom(codec.Decimal())).
		Field("meta", g.Object().Field("score", g.Number()).Node()).
		Field("labels", g.Map(docskema.TypeString, g.Str())).
		Field("title", g.I18n(g.Str())).I18n().
		Build()
	if err != nil {
		tb.Fatalf("kind build failed: %v", err)
	}
	return s
}

func itemDoc(i, labels int) docskema.Document {
	l := make(map[string]any, labels)
	for k := 0; k < labels; k++ {
		l["k"+strconv.Itoa(k)] = "v" + strconv.Itoa(i)
	}
	return docskema.Document{
		"id":     fmt.Sprintf("obj_%d", i),
		"name":   fmt.Sprintf("n%d", i),
		"age":    int64(i),
		"active": i%2 == 0,
		"price":  strconv.Itoa(i) + ".5",
		"meta":   map[string]any{"score": int64(i)},
		"labels": l,
		"title":  map[string]any{"en": "t", "fr": "t"},
	}
}

func itemJSON(labels int) []byte {
	var buf bytes.Buffer
	b, _ := source.Encode(itemDoc(1, labels), source.Options{})
	buf.Write(b)
	return buf.Bytes()
}

// ---- Benchmarks ----

func Benchmark_Validate_Small(b *testing.B) {
	s := itemKind(b)
	doc := itemDoc(1, 4)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := s.Validate(doc); err != nil {
			b.Fatal(err)
		}
	}
}

func Benchmark_Validate_ManyLabels_Accumulate(b *testing.B) {
	s := itemKind(b)
	doc := itemDoc(1, 1000)
	opt := docskema.ValidateOpt{Mode: docskema.ModeAccumulate}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if iss := s.Check(doc, opt); len(iss) > 0 {
			b.Fatal(iss)
		}
	}
}

func Benchmark_Skeleton(b *testing.B) {
	s := itemKind(b)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = s.Skeleton(nil)
	}
}

func Benchmark_ToStorage_ToDomain(b *testing.B) {
	s := itemKind(b)
	doc := itemDoc(1, 4)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		st, err := s.ToStorage(doc)
		if err != nil {
			b.Fatal(err)
		}
		if _, err := s.ToDomain(st); err != nil {
			b.Fatal(err)
		}
	}
}

func Benchmark_DecodeAndValidate(b *testing.B) {
	for _, labels := range []int{4, 256} {
		b.Run(fmt.Sprintf("labels=%d", labels), func(b *testing.B) {
			s := itemKind(b)
			data := itemJSON(labels)
			opt := source.Options{OnDuplicateKey: source.Error, MaxDepth: 16}
			b.ReportAllocs()
			b.SetBytes(int64(len(data)))
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				doc, err := source.DecodeBytes(data, opt)
				if err != nil {
					b.Fatal(err)
				}
				if err := s.Validate(doc); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
