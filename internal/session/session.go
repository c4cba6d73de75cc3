// Package session holds the per-module unlock state of a running client.
//
// A Session is built once at start-up from the configured gates and passed
// to the view models that need it. It keeps casual users out of sensitive
// modules such as payroll; it is not an access control mechanism.
package session

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"sync"
)

var ErrBadCredentials = errors.New("invalid username or password")

// Gate is the credential pair that unlocks one module.
type Gate struct {
	Module   string
	User     string
	Password string
}

// ParseGates reads "module:user:password" entries separated by commas.
// Blank entries are skipped.
func ParseGates(s string) ([]Gate, error) {
	var gates []Gate
	for _, entry := range strings.Split(s, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, ":", 3)
		if len(parts) != 3 || parts[0] == "" || parts[1] == "" {
			return nil, fmt.Errorf("invalid gate %q: want module:user:password", entry)
		}
		gates = append(gates, Gate{Module: parts[0], User: parts[1], Password: parts[2]})
	}
	return gates, nil
}

// Session tracks which gated modules are unlocked. Modules without a gate
// are always unlocked.
type Session struct {
	mu       sync.RWMutex
	gates    map[string]Gate
	unlocked map[string]bool
}

func New(gates []Gate) *Session {
	s := &Session{
		gates:    make(map[string]Gate, len(gates)),
		unlocked: make(map[string]bool, len(gates)),
	}
	for _, g := range gates {
		s.gates[g.Module] = g
	}
	return s
}

// Gated reports whether the module requires unlocking.
func (s *Session) Gated(module string) bool {
	_, ok := s.gates[module]
	return ok
}

// Unlock opens module when the credentials match its gate.
func (s *Session) Unlock(module, user, password string) error {
	g, ok := s.gates[module]
	if !ok {
		return nil
	}
	userOK := subtle.ConstantTimeCompare([]byte(user), []byte(g.User)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(g.Password)) == 1
	if !userOK || !passOK {
		return ErrBadCredentials
	}
	s.mu.Lock()
	s.unlocked[module] = true
	s.mu.Unlock()
	return nil
}

func (s *Session) Unlocked(module string) bool {
	if !s.Gated(module) {
		return true
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.unlocked[module]
}

func (s *Session) Lock(module string) {
	s.mu.Lock()
	delete(s.unlocked, module)
	s.mu.Unlock()
}

// LockAll closes every module, e.g. on shutdown or logout.
func (s *Session) LockAll() {
	s.mu.Lock()
	clear(s.unlocked)
	s.mu.Unlock()
}
