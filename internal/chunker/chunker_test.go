package chunker

import (
	"errors"
	"strings"
	"testing"

	"github.com/switchboard-labs/switchboard/internal/core/domain"
)

func TestNew(t *testing.T) {
	t.Run("default values", func(t *testing.T) {
		c, err := New()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if c.Size() != DefaultChunkSize {
			t.Errorf("expected size %d, got %d", DefaultChunkSize, c.Size())
		}
		if c.Overlap() != DefaultChunkOverlap {
			t.Errorf("expected overlap %d, got %d", DefaultChunkOverlap, c.Overlap())
		}
	})

	t.Run("custom values", func(t *testing.T) {
		c, err := New(WithSize(100), WithOverlap(20))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if c.Size() != 100 || c.Overlap() != 20 {
			t.Errorf("expected (100, 20), got (%d, %d)", c.Size(), c.Overlap())
		}
	})

	t.Run("overlap equal to size", func(t *testing.T) {
		_, err := New(WithSize(100), WithOverlap(100))
		if !errors.Is(err, domain.ErrInvalidConfiguration) {
			t.Errorf("expected ErrInvalidConfiguration, got %v", err)
		}
	})

	t.Run("overlap above size", func(t *testing.T) {
		_, err := New(WithSize(100), WithOverlap(150))
		if !errors.Is(err, domain.ErrInvalidConfiguration) {
			t.Errorf("expected ErrInvalidConfiguration, got %v", err)
		}
	})

	t.Run("negative overlap", func(t *testing.T) {
		_, err := New(WithSize(100), WithOverlap(-1))
		if !errors.Is(err, domain.ErrInvalidConfiguration) {
			t.Errorf("expected ErrInvalidConfiguration, got %v", err)
		}
	})

	t.Run("zero size", func(t *testing.T) {
		_, err := New(WithSize(0), WithOverlap(0))
		if !errors.Is(err, domain.ErrInvalidConfiguration) {
			t.Errorf("expected ErrInvalidConfiguration, got %v", err)
		}
	})
}

func TestSplit_Empty(t *testing.T) {
	c, _ := New()
	if spans := c.Split(""); len(spans) != 0 {
		t.Errorf("expected no spans for empty text, got %d", len(spans))
	}
}

func TestSplit_ShortText(t *testing.T) {
	c, _ := New(WithSize(100), WithOverlap(20))
	spans := c.Split("hello")
	if len(spans) != 1 || spans[0] != "hello" {
		t.Errorf("expected single span 'hello', got %v", spans)
	}
}

func TestSplit_Bounds(t *testing.T) {
	c, _ := New(WithSize(50), WithOverlap(10))
	text := strings.Repeat("abcdefghij", 31) + "xyz" // 313 chars

	spans := c.Split(text)
	if len(spans) == 0 {
		t.Fatal("expected spans")
	}
	for i, span := range spans {
		if n := len([]rune(span)); n > 50 {
			t.Errorf("span %d has %d chars, want <= 50", i, n)
		}
	}
}

func TestSplit_OverlapShared(t *testing.T) {
	c, _ := New(WithSize(40), WithOverlap(15))
	text := strings.Repeat("0123456789", 20) // 200 chars

	spans := c.Split(text)
	for i := 0; i+1 < len(spans); i++ {
		a := []rune(spans[i])
		b := []rune(spans[i+1])
		tail := string(a[len(a)-15:])
		head := string(b[:15])
		if tail != head {
			t.Errorf("spans %d/%d share %q vs %q, want identical overlap", i, i+1, tail, head)
		}
	}
}

func TestSplit_Reconstructs(t *testing.T) {
	c, _ := New(WithSize(64), WithOverlap(16))
	text := strings.Repeat("the quick brown fox jumps over the lazy dog. ", 12)

	spans := c.Split(text)
	var b strings.Builder
	for i, span := range spans {
		r := []rune(span)
		if i == 0 {
			b.WriteString(span)
			continue
		}
		b.WriteString(string(r[16:]))
	}
	if b.String() != text {
		t.Error("concatenating unique spans does not reconstruct the original text")
	}
}

func TestSplit_Deterministic(t *testing.T) {
	c, _ := New(WithSize(30), WithOverlap(5))
	text := strings.Repeat("determinism matters here ", 9)

	first := c.Split(text)
	second := c.Split(text)
	if len(first) != len(second) {
		t.Fatalf("span counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("span %d differs between runs", i)
		}
	}
}

func TestSplit_MultibyteRunes(t *testing.T) {
	c, _ := New(WithSize(10), WithOverlap(2))
	text := strings.Repeat("héllø wörld ", 5)

	spans := c.Split(text)
	for i, span := range spans {
		if n := len([]rune(span)); n > 10 {
			t.Errorf("span %d has %d runes, want <= 10", i, n)
		}
		if !strings.Contains(text, span) {
			t.Errorf("span %d is not a substring of the input", i)
		}
	}
}

func TestChunkDocument(t *testing.T) {
	c, _ := New(WithSize(20), WithOverlap(4))
	doc := &domain.Document{
		ID:      "doc-1",
		Title:   "Test",
		Content: strings.Repeat("chunk me please. ", 6),
	}

	chunks := c.ChunkDocument(doc)
	if len(chunks) == 0 {
		t.Fatal("expected chunks")
	}
	seen := make(map[string]bool)
	for i, chunk := range chunks {
		if chunk.DocumentID != "doc-1" {
			t.Errorf("chunk %d references %q, want doc-1", i, chunk.DocumentID)
		}
		if chunk.Sequence != i {
			t.Errorf("chunk %d has sequence %d", i, chunk.Sequence)
		}
		if chunk.ID == "" || seen[chunk.ID] {
			t.Errorf("chunk %d has missing or duplicate ID", i)
		}
		seen[chunk.ID] = true
	}
}
