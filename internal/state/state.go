package state

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// PageState records what a page looked like when it was last generated
type PageState struct {
	MTime  int64  `json:"mtime"`
	Hash   string `json:"hash"`
	Output string `json:"output"`
}

// State is the incremental build state of one site
type State struct {
	Pages        map[string]*PageState `json:"pages"`
	TemplateHash string                `json:"template_hash"`
	LastBuildID  string                `json:"last_build_id,omitempty"`
	LastBuild    time.Time             `json:"last_build,omitempty"`
}

// NewState creates a new empty state
func NewState() *State {
	return &State{
		Pages: make(map[string]*PageState),
	}
}

// Load reads state from the state file
func Load(path string) (*State, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewState(), nil
		}
		return nil, err
	}

	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed to parse state: %w", err)
	}

	if state.Pages == nil {
		state.Pages = make(map[string]*PageState)
	}

	return &state, nil
}

// Save writes state to the state file
func (s *State) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}

	return nil
}

// ComputeHash computes SHA256 hash of a file
func ComputeHash(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}

	return fmt.Sprintf("sha256:%x", h.Sum(nil)), nil
}

// HasChanged checks if a page source has changed since it was last generated
// Uses hybrid mtime + hash approach
func (s *State) HasChanged(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return false, err
	}

	page, exists := s.Pages[path]
	if !exists {
		return true, nil
	}

	// Fast path: check mtime first
	if info.ModTime().Unix() == page.MTime {
		return false, nil
	}

	// mtime changed, compute hash to check for actual content changes
	hash, err := ComputeHash(path)
	if err != nil {
		return false, err
	}

	return hash != page.Hash, nil
}

// TemplateChanged reports whether the template differs from the one the
// tracked pages were generated with, and returns its current hash
func (s *State) TemplateChanged(path string) (bool, string, error) {
	hash, err := ComputeHash(path)
	if err != nil {
		return false, "", err
	}
	return hash != s.TemplateHash, hash, nil
}

// Update records a page source and the output file generated from it
func (s *State) Update(path, output string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}

	hash, err := ComputeHash(path)
	if err != nil {
		return err
	}

	s.Pages[path] = &PageState{
		MTime:  info.ModTime().Unix(),
		Hash:   hash,
		Output: output,
	}

	return nil
}

// Forget drops pages whose sources are not in keep and returns their
// recorded outputs
func (s *State) Forget(keep map[string]bool) []string {
	var outputs []string
	for path, page := range s.Pages {
		if !keep[path] {
			outputs = append(outputs, page.Output)
			delete(s.Pages, path)
		}
	}
	return outputs
}

// Reset clears every tracked page
func (s *State) Reset() {
	s.Pages = make(map[string]*PageState)
	s.TemplateHash = ""
}

// RecordBuild stamps the state with the id and time of a finished build
func (s *State) RecordBuild(buildID string, at time.Time) {
	s.LastBuildID = buildID
	s.LastBuild = at
}

// GetMTime returns the recorded modification time for a page
func (s *State) GetMTime(path string) time.Time {
	if page, exists := s.Pages[path]; exists {
		return time.Unix(page.MTime, 0)
	}
	return time.Time{}
}
