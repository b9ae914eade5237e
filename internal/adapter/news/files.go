package news

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/sirupsen/logrus"

	"marketbrief/internal/domain"
)

// FileSource loads articles from a local directory, for offline runs and
// canned demo corpora. JSON files unmarshal directly into article records
// (single object or array); any other matched file becomes an article whose
// title is the file name and whose body is the file contents.
type FileSource struct {
	includes []string
	log      *logrus.Entry
}

func NewFileSource(includes []string, log *logrus.Entry) *FileSource {
	if len(includes) == 0 {
		includes = []string{"**/*.json", "**/*.txt", "**/*.md"}
	}
	return &FileSource{includes: includes, log: log}
}

// Load reads all matching files under root, in lexical walk order.
func (s *FileSource) Load(root string) ([]domain.Article, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	var articles []domain.Article
	err = filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}

		relPath, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		if !s.matches(relPath) {
			return nil
		}

		loaded, err := s.loadFile(path)
		if err != nil {
			s.log.WithError(err).WithField("path", relPath).Warn("skipping article file")
			return nil
		}
		articles = append(articles, loaded...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return articles, nil
}

func (s *FileSource) matches(path string) bool {
	for _, pattern := range s.includes {
		matched, err := doublestar.Match(pattern, path)
		if err == nil && matched {
			return true
		}
	}
	return false
}

func (s *FileSource) loadFile(path string) ([]domain.Article, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if strings.EqualFold(filepath.Ext(path), ".json") {
		trimmed := strings.TrimSpace(string(data))
		if strings.HasPrefix(trimmed, "[") {
			var many []domain.Article
			if err := json.Unmarshal(data, &many); err != nil {
				return nil, err
			}
			return many, nil
		}
		var one domain.Article
		if err := json.Unmarshal(data, &one); err != nil {
			return nil, err
		}
		return []domain.Article{one}, nil
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return []domain.Article{{Title: name, Text: string(data)}}, nil
}
