// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package parse splits repository files into front matter and body.
// YAML front matter (between "---" lines) keeps its key order; TOML front
// matter (between "+++" lines) is decoded with keys sorted. Files without
// front matter parse to empty metadata and their full text as body.
package parse

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/docsearch/pkg/types"
)

// Stage is the stage name recorded on parse failures.
const Stage = "parse"

// Failure kinds.
const (
	KindYAML       = "yaml"
	KindTOML       = "toml"
	KindNotMapping = "not-mapping"
)

// ParseError reports why a file's front matter was rejected.
type ParseError struct {
	// Kind is one of KindYAML, KindTOML, KindNotMapping.
	Kind string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s front matter: %v", e.Kind, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Result holds the outcome of a batch parse.
type Result struct {
	Documents []types.ParsedDocument
	Failures  []types.Failure
}

// HasFailures reports whether any file was skipped.
func (r Result) HasFailures() bool {
	return len(r.Failures) > 0
}

// ParseAll parses files in order. Files that fail are logged at warn level,
// collected in Result.Failures, and left out of Result.Documents.
func ParseAll(files []types.RawRepositoryFile, log zerolog.Logger) Result {
	var result Result
	for _, f := range files {
		doc, err := Parse(f)
		if err != nil {
			kind := KindYAML
			var pe *ParseError
			if errors.As(err, &pe) {
				kind = pe.Kind
			}
			log.Warn().Str("file", f.Filename).Str("kind", kind).Err(err).Msg("skipping unparseable file")
			result.Failures = append(result.Failures, types.Failure{
				Item:  f.Filename,
				Stage: Stage,
				Kind:  kind,
				Err:   err,
			})
			continue
		}
		result.Documents = append(result.Documents, doc)
	}

	log.Info().
		Str("stage", Stage).
		Int("documents", len(result.Documents)).
		Int("failed", len(result.Failures)).
		Msg("parsed documents")
	return result
}

// Parse splits one file into metadata and body. The file's own name is
// stored under types.KeyFilename, replacing any front-matter value.
func Parse(f types.RawRepositoryFile) (types.ParsedDocument, error) {
	var fm frontMatter
	body, err := frontmatter.Parse(strings.NewReader(f.Content), &fm, formats...)
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) {
			return types.ParsedDocument{}, pe
		}
		return types.ParsedDocument{}, &ParseError{Kind: KindYAML, Err: err}
	}

	meta := fm.meta
	if meta == nil {
		meta = types.NewMetadata(1)
	}
	meta.Set(types.KeyFilename, f.Filename)

	return types.ParsedDocument{
		Filename: f.Filename,
		Metadata: meta,
		Body:     strings.TrimSpace(string(body)),
	}, nil
}

// frontMatter receives the decoded header from one of formats.
type frontMatter struct {
	meta *types.Metadata
}

var formats = []*frontmatter.Format{
	frontmatter.NewFormat("---", "---", unmarshalYAML),
	frontmatter.NewFormat("+++", "+++", unmarshalTOML),
}

func unmarshalYAML(data []byte, v any) error {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return &ParseError{Kind: KindYAML, Err: err}
	}
	meta, err := types.MetadataFromNode(&node)
	if err != nil {
		return &ParseError{Kind: KindNotMapping, Err: err}
	}
	v.(*frontMatter).meta = meta
	return nil
}

func unmarshalTOML(data []byte, v any) error {
	var fields map[string]any
	if err := toml.Unmarshal(data, &fields); err != nil {
		return &ParseError{Kind: KindTOML, Err: err}
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	meta := types.NewMetadata(len(keys))
	for _, k := range keys {
		meta.Set(k, fields[k])
	}
	v.(*frontMatter).meta = meta
	return nil
}
