package docstore

import (
	"strings"

	"marketbrief/internal/domain"
)

// Normalize maps a raw article record to the text that gets indexed. The
// body is the first non-empty of Text, Content, Summary; if all are blank
// the title stands in for the body. A present title is prefixed as
// "{title}. {body}". The second return is false when the record carries no
// usable text at all.
func Normalize(a domain.Article) (string, bool) {
	body := strings.TrimSpace(firstNonEmpty(a.Text, a.Content, a.Summary))
	if body == "" {
		body = strings.TrimSpace(a.Title)
	}

	text := body
	if title := strings.TrimSpace(a.Title); title != "" {
		text = title + ". " + body
	}

	if strings.TrimSpace(text) == "" {
		return "", false
	}
	return text, true
}

// NewCorpus builds a fresh corpus from raw articles. Records without usable
// text are dropped; insertion order is preserved and nothing is deduplicated.
// The returned value fully replaces whatever corpus the caller held before.
func NewCorpus(articles []domain.Article) domain.Corpus {
	docs := make([]string, 0, len(articles))
	for _, a := range articles {
		if text, ok := Normalize(a); ok {
			docs = append(docs, text)
		}
	}
	return domain.Corpus{Docs: docs}
}

func firstNonEmpty(candidates ...string) string {
	for _, c := range candidates {
		if strings.TrimSpace(c) != "" {
			return c
		}
	}
	return ""
}
