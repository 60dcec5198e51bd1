// Package rulestore loads and saves the selector and legacy rule
// configuration. The on-disk document is JSON, TOML or YAML (chosen by
// file extension); loaded rules are normalized before the layout engine
// ever sees them, so the engine can assume trimmed names, non-negative
// priorities and fallback counts that are either positive or absent.
package rulestore

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	kjson "github.com/knadh/koanf/parsers/json"
	ktoml "github.com/knadh/koanf/parsers/toml"
	kyaml "github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/MaratAhmetzyanov83/ElTool-sub000/pkg/errors"
	"github.com/MaratAhmetzyanov83/ElTool-sub000/pkg/logging"
	"github.com/MaratAhmetzyanov83/ElTool-sub000/pkg/types"
)

// SelectorRuleRecord mirrors the on-disk shape of one selector rule.
type SelectorRuleRecord struct {
	Priority        int    `json:"Priority" toml:"Priority" yaml:"Priority" koanf:"Priority"`
	SourceBlockName string `json:"SourceBlockName" toml:"SourceBlockName" yaml:"SourceBlockName" koanf:"SourceBlockName"`
	VisibilityValue string `json:"VisibilityValue,omitempty" toml:"VisibilityValue,omitempty" yaml:"VisibilityValue,omitempty" koanf:"VisibilityValue"`
	LayoutBlockName string `json:"LayoutBlockName" toml:"LayoutBlockName" yaml:"LayoutBlockName" koanf:"LayoutBlockName"`
	FallbackModules int    `json:"FallbackModules,omitempty" toml:"FallbackModules,omitempty" yaml:"FallbackModules,omitempty" koanf:"FallbackModules"`
}

// LegacyRuleRecord mirrors the on-disk shape of one legacy rule.
type LegacyRuleRecord struct {
	DeviceKey       string `json:"DeviceKey" toml:"DeviceKey" yaml:"DeviceKey" koanf:"DeviceKey"`
	LayoutBlockName string `json:"LayoutBlockName" toml:"LayoutBlockName" yaml:"LayoutBlockName" koanf:"LayoutBlockName"`
	FallbackModules int    `json:"FallbackModules,omitempty" toml:"FallbackModules,omitempty" yaml:"FallbackModules,omitempty" koanf:"FallbackModules"`
}

// Document is the on-disk rule configuration.
type Document struct {
	Rules       []SelectorRuleRecord `json:"Rules" toml:"Rules" yaml:"Rules" koanf:"Rules"`
	LegacyRules []LegacyRuleRecord   `json:"LegacyRules,omitempty" toml:"LegacyRules,omitempty" yaml:"LegacyRules,omitempty" koanf:"LegacyRules"`
}

// RuleSet is the normalized, in-memory form the layout engine consumes.
type RuleSet struct {
	Selector []types.SelectorRule
	Legacy   []types.LegacyRule
}

// Load reads and normalizes a rule file. The returned warnings describe
// rules that were dropped or adjusted during normalization.
func Load(path string) (RuleSet, []string, error) {
	doc, err := LoadDocument(path)
	if err != nil {
		return RuleSet{}, nil, err
	}
	set, warnings := Normalize(doc)

	logger := logging.GetLogger("rulestore")
	logger.Info().
		Str("path", path).
		Int("selectorRules", len(set.Selector)).
		Int("legacyRules", len(set.Legacy)).
		Int("warnings", len(warnings)).
		Msg("Rule file loaded")

	return set, warnings, nil
}

// LoadDocument reads the raw rule document without normalization.
func LoadDocument(path string) (Document, error) {
	parser, err := parserFor(path)
	if err != nil {
		return Document{}, err
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), parser); err != nil {
		return Document{}, errors.Wrapf(err, errors.ErrRuleLoad, "failed to load rule file %s", path)
	}

	var doc Document
	if err := k.Unmarshal("", &doc); err != nil {
		return Document{}, errors.Wrapf(err, errors.ErrRuleParse, "failed to parse rule file %s", path)
	}
	return doc, nil
}

// Save writes a rule set to disk in the format chosen by the path's
// extension.
func Save(path string, set RuleSet) error {
	doc := toDocument(set)

	var data []byte
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		data, err = json.MarshalIndent(doc, "", "  ")
	case ".toml":
		data, err = toml.Marshal(doc)
	case ".yaml", ".yml":
		data, err = yaml.Marshal(doc)
	default:
		return errors.Newf(errors.ErrRuleFormat, "unsupported rule file format %q", filepath.Ext(path))
	}
	if err != nil {
		return errors.Wrapf(err, errors.ErrRuleSave, "failed to encode rule file %s", path)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrRuleSave, "failed to write rule file %s", path)
	}
	return nil
}

func parserFor(path string) (koanf.Parser, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return kjson.Parser(), nil
	case ".toml":
		return ktoml.Parser(), nil
	case ".yaml", ".yml":
		return kyaml.Parser(), nil
	default:
		return nil, errors.Newf(errors.ErrRuleFormat, "unsupported rule file format %q", filepath.Ext(path))
	}
}

func toDocument(set RuleSet) Document {
	doc := Document{
		Rules:       make([]SelectorRuleRecord, 0, len(set.Selector)),
		LegacyRules: make([]LegacyRuleRecord, 0, len(set.Legacy)),
	}
	for _, rule := range set.Selector {
		doc.Rules = append(doc.Rules, SelectorRuleRecord{
			Priority:        rule.Priority,
			SourceBlockName: rule.SourceBlockName,
			VisibilityValue: rule.VisibilityValue,
			LayoutBlockName: rule.LayoutBlockName,
			FallbackModules: rule.FallbackModules,
		})
	}
	for _, rule := range set.Legacy {
		doc.LegacyRules = append(doc.LegacyRules, LegacyRuleRecord{
			DeviceKey:       rule.DeviceKey,
			LayoutBlockName: rule.LayoutBlockName,
			FallbackModules: rule.FallbackModules,
		})
	}
	return doc
}
