package extract

import (
	"strings"
	"testing"
)

// Benchmark both extraction modes on address books of increasing size.
func BenchmarkFromText(b *testing.B) {
	small := makeBook(1)
	medium := makeBook(500)
	large := makeBook(10000)

	for _, tc := range []struct {
		name string
		text string
	}{{"small", small}, {"medium", medium}, {"large", large}} {
		b.Run(tc.name+"/records", func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				_ = FromText(tc.text, Options{})
			}
		})
		b.Run(tc.name+"/numbers", func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				_ = FromText(tc.text, Options{OnlyNumbers: true, IncludePrefix: true})
			}
		})
	}
}

func makeBook(contacts int) string {
	builder := new(strings.Builder)
	for i := 0; i < contacts; i++ {
		builder.WriteString(sampleCard)
		builder.WriteString("\n\n")
	}
	return builder.String()
}

const sampleCard = "BEGIN:VCARD\nVERSION:3.0\nFN:John Doe\nTEL:+358-40-123-4567\nTEL:0401234567\nEMAIL:john.doe@example.com\nNOTE:met at 10:30\nEND:VCARD"
