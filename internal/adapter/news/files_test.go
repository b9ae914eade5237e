package news

import (
	"os"
	"path/filepath"
	"testing"

	"marketbrief/internal/domain"
)

func articleWithTitle(title string) domain.Article {
	return domain.Article{Title: title, Text: "body for " + title}
}

func TestFileSourceLoadsJSONAndText(t *testing.T) {
	dir := t.TempDir()

	writeFile(t, dir, "one.json", `{"title": "Samsung", "content": "Samsung earnings up"}`)
	writeFile(t, dir, "many.json", `[{"text": "first"}, {"summary": "second"}]`)
	writeFile(t, dir, "note.txt", "Tesla reports record deliveries")
	writeFile(t, dir, "skipped.html", "<p>not matched</p>")

	src := NewFileSource(nil, testLogger())
	articles, err := src.Load(dir)
	if err != nil {
		t.Fatal(err)
	}

	if len(articles) != 4 {
		t.Fatalf("expected 4 articles, got %d: %+v", len(articles), articles)
	}

	byTitle := make(map[string]domain.Article)
	for _, a := range articles {
		byTitle[a.Title] = a
	}
	if byTitle["Samsung"].Content != "Samsung earnings up" {
		t.Errorf("json article not loaded: %+v", byTitle["Samsung"])
	}
	if byTitle["note"].Text != "Tesla reports record deliveries" {
		t.Errorf("text article not loaded: %+v", byTitle["note"])
	}
}

func TestFileSourceHonorsIncludeGlobs(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.json", `{"text": "match"}`)
	writeFile(t, dir, "b.txt", "no match")

	src := NewFileSource([]string{"**/*.json"}, testLogger())
	articles, err := src.Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(articles) != 1 {
		t.Fatalf("expected only json files, got %d articles", len(articles))
	}
}

func TestFileSourceSkipsMalformedJSON(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "bad.json", `{not json`)
	writeFile(t, dir, "good.json", `{"text": "fine"}`)

	src := NewFileSource(nil, testLogger())
	articles, err := src.Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(articles) != 1 || articles[0].Text != "fine" {
		t.Errorf("expected the malformed file to be skipped, got %+v", articles)
	}
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}
