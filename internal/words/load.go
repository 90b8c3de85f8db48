// internal/words/load.go
//
// Word-list loading. Load reads the answers and allowed lists from
// environment-provided files or falls back to the embedded defaults, once
// at process start.
//
// Environment variables:
//   WORDS_ANSWERS_FILE=/path/to/answers.txt
//   WORDS_ALLOWED_FILE=/path/to/allowed.txt
//
// If only one of the two is set, that list serves as both pool and
// dictionary. Files hold one word per line; blank lines and '#' comments
// are skipped.

package words

import (
	"bufio"
	"embed"
	"fmt"
	"os"
	"strings"
)

//go:embed data/answers.txt data/allowed.txt
var dataFS embed.FS

// Load builds a Bank from env-configured files or the embedded defaults.
func Load(opts ...Option) (*Bank, error) {
	answersPath := os.Getenv("WORDS_ANSWERS_FILE")
	allowedPath := os.Getenv("WORDS_ALLOWED_FILE")

	switch {
	case answersPath != "" && allowedPath != "":
		ans, err := readWordFile(answersPath)
		if err != nil {
			return nil, err
		}
		all, err := readWordFile(allowedPath)
		if err != nil {
			return nil, err
		}
		return New(ans, all, opts...)

	case answersPath == "" && allowedPath != "":
		all, err := readWordFile(allowedPath)
		if err != nil {
			return nil, err
		}
		return New(all, all, opts...)

	case answersPath != "" && allowedPath == "":
		ans, err := readWordFile(answersPath)
		if err != nil {
			return nil, err
		}
		return New(ans, ans, opts...)

	default:
		ans, err := readEmbedded("data/answers.txt")
		if err != nil {
			return nil, err
		}
		all, err := readEmbedded("data/allowed.txt")
		if err != nil {
			return nil, err
		}
		return New(ans, all, opts...)
	}
}

// readWordFile loads one word per line from a file on disk.
func readWordFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read word list: %w", err)
	}
	defer f.Close()

	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if w := cleanLine(sc.Text()); w != "" {
			out = append(out, w)
		}
	}
	return out, sc.Err()
}

// readEmbedded loads one of the compiled-in default lists.
func readEmbedded(name string) ([]string, error) {
	raw, err := dataFS.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("embedded word list: %w", err)
	}
	var out []string
	for _, line := range strings.Split(string(raw), "\n") {
		if w := cleanLine(line); w != "" {
			out = append(out, w)
		}
	}
	return out, nil
}

// cleanLine trims a raw line and drops comments.
func cleanLine(s string) string {
	s = strings.TrimSpace(s)
	if s == "" || strings.HasPrefix(s, "#") {
		return ""
	}
	return Normalize(s)
}
