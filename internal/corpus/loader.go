package corpus

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// LoadDir reads supplemental passages from dir.
//
// Supported extensions: .txt and .md are read as-is; .html and .htm have
// their visible text extracted. Files are processed in lexical filename
// order so that derived document IDs are stable across runs. Empty files and
// unsupported extensions are skipped.
func LoadDir(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading docs dir %s: %w", dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	var passages []string
	for _, name := range names {
		path := filepath.Join(dir, name)

		var text string
		switch strings.ToLower(filepath.Ext(name)) {
		case ".txt", ".md":
			raw, err := os.ReadFile(path) // #nosec G304 -- path is under the configured docs dir
			if err != nil {
				return nil, fmt.Errorf("reading %s: %w", path, err)
			}
			text = string(raw)
		case ".html", ".htm":
			text, err = extractHTMLText(path)
			if err != nil {
				return nil, err
			}
		default:
			continue
		}

		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		passages = append(passages, text)
	}
	return passages, nil
}

// extractHTMLText returns the visible text of an HTML file with whitespace
// collapsed.
func extractHTMLText(path string) (string, error) {
	f, err := os.Open(path) // #nosec G304 -- path is under the configured docs dir
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	doc, err := goquery.NewDocumentFromReader(f)
	if err != nil {
		return "", fmt.Errorf("parsing %s: %w", path, err)
	}

	doc.Find("script, style").Remove()
	return strings.Join(strings.Fields(doc.Text()), " "), nil
}
