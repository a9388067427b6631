// Package solutions stores solved deals on disk: one sol_<n> file per
// solution, two lines each — the encoded deck and the encoded solution.
// The files are the source of truth; re-running a solved deck reads the
// answer back instead of searching.
package solutions

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
)

// Store is a directory of sol_<n> files.
type Store struct {
	dir string
}

func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

func (s *Store) path(n int) string {
	return filepath.Join(s.dir, fmt.Sprintf("sol_%d", n))
}

// Lookup scans sol_0, sol_1, ... for a file whose first line matches
// the encoded deck and returns its stored solution. ok is false when no
// file matches.
func (s *Store) Lookup(encodedDeck string) (solution string, ok bool, err error) {
	for n := 0; ; n++ {
		f, err := os.Open(s.path(n))
		if errors.Is(err, os.ErrNotExist) {
			return "", false, nil
		}
		if err != nil {
			return "", false, err
		}
		sc := bufio.NewScanner(f)
		var lines []string
		for sc.Scan() && len(lines) < 2 {
			lines = append(lines, strings.TrimRight(sc.Text(), "\r"))
		}
		scanErr := sc.Err()
		f.Close()
		if scanErr != nil {
			return "", false, scanErr
		}
		if len(lines) == 2 && lines[0] == encodedDeck {
			log.Debug().Str("file", s.path(n)).Msg("found existing solution")
			return lines[1], true, nil
		}
	}
}

// Save writes the deck and solution to the lowest non-existing index
// and returns the file path.
func (s *Store) Save(encodedDeck, solution string) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", err
	}
	for n := 0; ; n++ {
		p := s.path(n)
		f, err := os.OpenFile(p, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if errors.Is(err, os.ErrExist) {
			continue
		}
		if err != nil {
			return "", err
		}
		_, werr := fmt.Fprintf(f, "%s\n%s\n", encodedDeck, solution)
		cerr := f.Close()
		if werr != nil {
			return "", werr
		}
		if cerr != nil {
			return "", cerr
		}
		log.Debug().Str("file", p).Msg("saved solution")
		return p, nil
	}
}
