package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"slices"
)

// PinFile manages the list of pinned desktop IDs.
type PinFile struct {
	path string
}

type pinData struct {
	Pinned []string `json:"pinned"`
}

// NewPinFile creates a new PinFile.
func NewPinFile(path string) *PinFile {
	return &PinFile{path: path}
}

// Load reads the pinned desktop IDs. A missing file yields no pins.
func (p *PinFile) Load() ([]string, error) {
	data, err := os.ReadFile(p.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var pd pinData
	if err := json.Unmarshal(data, &pd); err != nil {
		return nil, err
	}
	return pd.Pinned, nil
}

// Save writes the pinned desktop IDs.
func (p *PinFile) Save(ids []string) error {
	if err := os.MkdirAll(filepath.Dir(p.path), 0755); err != nil {
		return err
	}

	if ids == nil {
		ids = []string{}
	}
	data, err := json.MarshalIndent(pinData{Pinned: ids}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(p.path, data, 0600)
}

// Add pins id. It reports whether the list changed.
func (p *PinFile) Add(id string) (bool, error) {
	ids, err := p.Load()
	if err != nil {
		return false, err
	}
	if slices.Contains(ids, id) {
		return false, nil
	}
	return true, p.Save(append(ids, id))
}

// Remove unpins id. It reports whether the list changed.
func (p *PinFile) Remove(id string) (bool, error) {
	ids, err := p.Load()
	if err != nil {
		return false, err
	}
	i := slices.Index(ids, id)
	if i < 0 {
		return false, nil
	}
	return true, p.Save(slices.Delete(ids, i, i+1))
}

// Toggle pins id when unpinned and unpins it otherwise. It returns the new
// pinned state.
func (p *PinFile) Toggle(id string) (bool, error) {
	ids, err := p.Load()
	if err != nil {
		return false, err
	}
	if slices.Contains(ids, id) {
		_, err := p.Remove(id)
		return false, err
	}
	_, err = p.Add(id)
	return true, err
}
