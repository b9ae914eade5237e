package docstore

import (
	"reflect"
	"testing"

	"marketbrief/internal/domain"
)

func TestNormalizeFieldPriority(t *testing.T) {
	tests := []struct {
		name    string
		article domain.Article
		want    string
		ok      bool
	}{
		{
			name:    "text wins over content and summary",
			article: domain.Article{Text: "from text", Content: "from content", Summary: "from summary"},
			want:    "from text",
			ok:      true,
		},
		{
			name:    "content when text empty",
			article: domain.Article{Content: "from content", Summary: "from summary"},
			want:    "from content",
			ok:      true,
		},
		{
			name:    "summary as last body candidate",
			article: domain.Article{Summary: "from summary"},
			want:    "from summary",
			ok:      true,
		},
		{
			name:    "title prefix composition",
			article: domain.Article{Title: "Samsung", Content: "Samsung earnings up"},
			want:    "Samsung. Samsung earnings up",
			ok:      true,
		},
		{
			name:    "title stands in for missing body",
			article: domain.Article{Title: "Samsung"},
			want:    "Samsung. Samsung",
			ok:      true,
		},
		{
			name:    "all fields empty",
			article: domain.Article{Title: "", Text: ""},
			ok:      false,
		},
		{
			name:    "whitespace only",
			article: domain.Article{Title: "   ", Text: " \t\n"},
			ok:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Normalize(tt.article)
			if ok != tt.ok {
				t.Fatalf("Normalize() ok = %v, want %v", ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Errorf("Normalize() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNewCorpusDropsEmptyRecords(t *testing.T) {
	corpus := NewCorpus([]domain.Article{
		{Title: "", Text: ""},
		{Text: "Tesla reports record deliveries"},
		{Title: " ", Summary: "  "},
	})
	if corpus.Len() != 1 {
		t.Fatalf("expected 1 indexed doc, got %d", corpus.Len())
	}
	if corpus.Docs[0] != "Tesla reports record deliveries" {
		t.Errorf("unexpected indexed text: %q", corpus.Docs[0])
	}
}

func TestNewCorpusPreservesOrderWithoutDedup(t *testing.T) {
	articles := []domain.Article{
		{Text: "alpha"},
		{Text: "beta"},
		{Text: "alpha"},
	}
	corpus := NewCorpus(articles)
	want := []string{"alpha", "beta", "alpha"}
	if !reflect.DeepEqual(corpus.Docs, want) {
		t.Errorf("corpus docs = %v, want %v", corpus.Docs, want)
	}
}

func TestNewCorpusReplaceSemantics(t *testing.T) {
	articles := []domain.Article{{Text: "one"}, {Text: "two"}}

	first := NewCorpus(articles)
	second := NewCorpus(articles)

	if second.Len() != first.Len() {
		t.Errorf("rebuilding from the same input changed size: %d vs %d", second.Len(), first.Len())
	}
	if !reflect.DeepEqual(first.Docs, second.Docs) {
		t.Errorf("rebuilding from the same input changed contents")
	}
}

func TestNewCorpusEmptyInput(t *testing.T) {
	corpus := NewCorpus(nil)
	if !corpus.Empty() {
		t.Errorf("expected empty corpus for nil input")
	}
	corpus = NewCorpus([]domain.Article{})
	if !corpus.Empty() {
		t.Errorf("expected empty corpus for empty input")
	}
}
