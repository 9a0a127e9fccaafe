// Package skills provides the curated skill dictionary: canonical skill
// names, their categories, and the surface-form variants they appear under
// in resumes and job descriptions.
package skills

import (
	"embed"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jonathan/resume-fit/internal/schemas"
	"github.com/jonathan/resume-fit/internal/textnorm"
	"github.com/jonathan/resume-fit/internal/types"
)

//go:embed dictionary.yaml
var defaultDictionary embed.FS

// dictionaryFile is the on-disk/embedded YAML layout.
type dictionaryFile struct {
	Version string             `json:"version" yaml:"version"`
	Skills  []types.SkillEntry `json:"skills" yaml:"skills"`
}

// Dictionary is the loaded, read-only skill dictionary. It is built once at
// process start and safe for concurrent use.
type Dictionary struct {
	version   string
	entries   []types.SkillEntry
	byVariant map[string]int // normalized surface form -> index into entries
	maxTokens int            // longest variant, in normalized tokens
}

// Default loads the embedded dictionary shipped with the binary.
func Default(norm *textnorm.Normalizer) (*Dictionary, error) {
	data, err := defaultDictionary.ReadFile("dictionary.yaml")
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded dictionary: %w", err)
	}
	return parse(norm, data)
}

// Load reads a dictionary from a YAML file. The file is validated against
// the dictionary schema before use; a malformed file is rejected outright
// rather than partially loaded.
func Load(norm *textnorm.Normalizer, path string) (*Dictionary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dictionary file %s: %w", path, err)
	}
	return parse(norm, data)
}

func parse(norm *textnorm.Normalizer, data []byte) (*Dictionary, error) {
	var file dictionaryFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse dictionary YAML: %w", err)
	}
	if err := schemas.ValidateDictionary(file); err != nil {
		return nil, err
	}

	d := &Dictionary{
		version:   file.Version,
		entries:   file.Skills,
		byVariant: make(map[string]int),
	}

	for i, entry := range d.entries {
		forms := append([]string{entry.Name}, entry.Variants...)
		for _, form := range forms {
			key := norm.NormalizePhrase(form)
			if key == "" {
				continue
			}
			if prev, exists := d.byVariant[key]; exists && prev != i {
				return nil, fmt.Errorf("dictionary variant %q maps to both %q and %q",
					form, d.entries[prev].Name, entry.Name)
			}
			d.byVariant[key] = i
			if n := len(strings.Fields(key)); n > d.maxTokens {
				d.maxTokens = n
			}
		}
	}

	return d, nil
}

// Version returns the dictionary's declared version string.
func (d *Dictionary) Version() string { return d.version }

// Len returns the number of canonical entries.
func (d *Dictionary) Len() int { return len(d.entries) }

// MaxPhraseTokens returns the token length of the longest surface form,
// which bounds the n-gram window the phrase matcher needs to scan.
func (d *Dictionary) MaxPhraseTokens() int { return d.maxTokens }

// Lookup resolves a normalized phrase key to its canonical entry.
func (d *Dictionary) Lookup(normalizedPhrase string) (*types.SkillEntry, bool) {
	idx, ok := d.byVariant[normalizedPhrase]
	if !ok {
		return nil, false
	}
	return &d.entries[idx], true
}

// Canonicalize attempts a best-effort match of a free-form candidate phrase
// against the dictionary: first an exact normalized lookup, then a
// case-insensitive substring match against all surface forms. It is used to
// resolve recognizer spans that have no exact dictionary hit; candidates
// that still fail resolve to nothing rather than inventing a new entry.
func (d *Dictionary) Canonicalize(norm *textnorm.Normalizer, candidate string) (*types.SkillEntry, bool) {
	key := norm.NormalizePhrase(candidate)
	if key == "" {
		return nil, false
	}
	if entry, ok := d.Lookup(key); ok {
		return entry, true
	}

	// Substring fallback: the candidate contains a known surface form as a
	// whole token run ("expert Python programming" -> "python"). Prefer the
	// longest matching form so "machine learning" beats "learning"; equal
	// lengths tie-break on the form itself so a candidate always resolves
	// to the same entry regardless of map iteration order.
	padded := " " + key + " "
	bestForm := ""
	bestIdx := -1
	for form, idx := range d.byVariant {
		if !strings.Contains(padded, " "+form+" ") {
			continue
		}
		if len(form) > len(bestForm) || (len(form) == len(bestForm) && form < bestForm) {
			bestForm = form
			bestIdx = idx
		}
	}
	if bestIdx < 0 {
		return nil, false
	}
	return &d.entries[bestIdx], true
}

// Entries returns the canonical entries sorted by name. The slice is a copy;
// the dictionary itself never changes after load.
func (d *Dictionary) Entries() []types.SkillEntry {
	out := make([]types.SkillEntry, len(d.entries))
	copy(out, d.entries)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
