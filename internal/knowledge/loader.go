package knowledge

import (
	"os"
	"path/filepath"
	"strings"
)

// LoadDir reads every .md and .txt file under dir. A missing directory or an
// unreadable file is not an error; those documents are simply absent.
func LoadDir(dir string) []Document {
	var docs []Document

	_ = filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if ext != ".md" && ext != ".txt" {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		docs = append(docs, Document{
			ID:   strings.TrimSuffix(info.Name(), filepath.Ext(info.Name())),
			Path: path,
			Text: string(data),
		})
		return nil
	})

	return docs
}
