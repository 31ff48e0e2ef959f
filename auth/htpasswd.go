package auth

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// HTPasswdID is the identifier of the htpasswd file service.
const HTPasswdID = "htpasswd"

// LoadHTPasswd reads "user:hash" lines into a new Standard service. Blank
// lines and lines starting with '#' are skipped. Only bcrypt hashes are
// accepted.
func LoadHTPasswd(r io.Reader) (*Standard, error) {
	s := NewStandard(0)
	sc := bufio.NewScanner(r)
	n := 0
	for sc.Scan() {
		n++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		user, hash, ok := strings.Cut(line, ":")
		if !ok || user == "" {
			return nil, fmt.Errorf("line %d: expected user:hash", n)
		}
		if err := s.SetHash(user, hash); err != nil {
			return nil, fmt.Errorf("line %d: %w", n, err)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return s, nil
}

// HTPasswd returns a Constructor loading the htpasswd file at path. A
// non empty realm replaces DefaultRealm.
func HTPasswd(path, realm string) Constructor {
	return func() (Service, error) {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		s, err := LoadHTPasswd(f)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		if realm != "" {
			s.WithRealm(realm)
		}
		return s, nil
	}
}
