// Package manifest records what a build consumed and produced.
package manifest

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/sitebuilder/internal/config"
	"git.home.luguber.info/inful/sitebuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/sitebuilder/internal/page"
	"git.home.luguber.info/inful/sitebuilder/internal/pipeline"
	"git.home.luguber.info/inful/sitebuilder/internal/version"
)

// BuildManifest represents a complete record of a build's inputs and outputs.
type BuildManifest struct {
	ID        string    `json:"id"`
	Version   string    `json:"version"`
	Timestamp time.Time `json:"timestamp"`
	Inputs    Inputs    `json:"inputs"`
	Outputs   Outputs   `json:"outputs"`
	Status    string    `json:"status"`
	Duration  int64     `json:"duration_ms"`
}

// Inputs captures all inputs to the build.
type Inputs struct {
	Directory   string `json:"directory"`
	ConfigHash  string `json:"config_hash"`
	SourceFiles int    `json:"source_files"`
	Parsed      int    `json:"parsed"`
	Skipped     int    `json:"skipped"`
}

// Outputs captures all outputs from the build.
type Outputs struct {
	Directory   string       `json:"directory"`
	Pages       []PageRecord `json:"pages"`
	StaticFiles int          `json:"static_files"`
}

// PageRecord describes one written page.
type PageRecord struct {
	Path        string    `json:"path"`
	Kind        page.Kind `json:"kind"`
	Title       string    `json:"title,omitempty"`
	Summary     string    `json:"summary,omitempty"`
	Fingerprint string    `json:"fingerprint,omitempty"`
	Bytes       int       `json:"bytes"`
}

// FromReport builds the manifest of a finished build.
func FromReport(report *pipeline.Report, cfg *config.Config) (*BuildManifest, error) {
	configHash, err := hashConfig(cfg)
	if err != nil {
		return nil, err
	}

	m := &BuildManifest{
		ID:        report.BuildID,
		Version:   version.Version,
		Timestamp: report.Start.UTC(),
		Inputs: Inputs{
			Directory:   cfg.Input,
			ConfigHash:  configHash,
			SourceFiles: report.Files,
			Parsed:      report.Parsed,
			Skipped:     report.Skipped,
		},
		Outputs: Outputs{
			Directory:   cfg.Output,
			Pages:       make([]PageRecord, 0, len(report.Pages)),
			StaticFiles: report.StaticFiles,
		},
		Status:   string(report.Outcome),
		Duration: report.Duration().Milliseconds(),
	}

	for _, p := range report.Pages {
		rec := PageRecord{
			Path:  p.Path,
			Kind:  p.Kind(),
			Title: p.Title(),
			Bytes: len(p.Contents),
		}
		switch meta := p.Metadata.(type) {
		case page.PostMeta:
			rec.Summary, rec.Fingerprint = meta.Summary, meta.Fingerprint
		case page.DocumentMeta:
			rec.Summary, rec.Fingerprint = meta.Summary, meta.Fingerprint
		}
		m.Outputs.Pages = append(m.Outputs.Pages, rec)
	}
	sort.Slice(m.Outputs.Pages, func(i, j int) bool { return m.Outputs.Pages[i].Path < m.Outputs.Pages[j].Path })
	return m, nil
}

func hashConfig(cfg *config.Config) (string, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return "", errors.InternalError("cannot encode configuration for hashing").WithCause(err).Build()
	}
	return fmt.Sprintf("%x", sha256.Sum256(data)), nil
}

// ToJSON serializes the manifest to JSON.
func (m *BuildManifest) ToJSON() ([]byte, error) {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal manifest: %w", err)
	}
	return data, nil
}

// FromJSON deserializes a manifest from JSON.
func FromJSON(data []byte) (*BuildManifest, error) {
	var m BuildManifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("unmarshal manifest: %w", err)
	}
	return &m, nil
}

// WriteFile writes the manifest as indented JSON.
func (m *BuildManifest) WriteFile(path string) error {
	data, err := m.ToJSON()
	if err != nil {
		return errors.InternalError("cannot encode manifest").WithCause(err).Build()
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o600); err != nil {
		return errors.IOError("cannot write manifest").WithPath(path).WithCause(err).Build()
	}
	return nil
}

// Hash computes a deterministic hash of the configuration and the content
// fingerprints of every page. Two builds with equal hashes rendered the same
// sources with the same settings.
func (m *BuildManifest) Hash() (string, error) {
	type entry struct {
		Path        string `json:"path"`
		Fingerprint string `json:"fingerprint"`
	}
	hashInput := struct {
		ConfigHash string  `json:"config_hash"`
		Pages      []entry `json:"pages"`
	}{ConfigHash: m.Inputs.ConfigHash}
	for _, p := range m.Outputs.Pages {
		hashInput.Pages = append(hashInput.Pages, entry{Path: p.Path, Fingerprint: p.Fingerprint})
	}

	data, err := json.Marshal(hashInput)
	if err != nil {
		return "", fmt.Errorf("marshal for hash: %w", err)
	}
	return fmt.Sprintf("%x", sha256.Sum256(data)), nil
}
