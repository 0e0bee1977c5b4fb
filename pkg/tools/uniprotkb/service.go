// Package uniprotkb exposes UniProtKB lookups as MCP tools.
package uniprotkb

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/theapemachine/mcp-server-uniprot/pkg/tools"
	"github.com/theapemachine/mcp-server-uniprot/pkg/uniprot"
)

const (
	// DefaultSearchSize is used when a search does not ask for a size.
	DefaultSearchSize = 10
	// MaxSearchSize is the largest page UniProt serves.
	MaxSearchSize = 500
	// DefaultSearchFields are returned for every search hit unless overridden.
	DefaultSearchFields = "accession,id,protein_name,gene_names,organism_name,length"
)

// textFormats maps the non-JSON entry formats to the Accept header they need.
var textFormats = map[string]string{
	"fasta": "text/plain",
	"txt":   "text/plain",
	"gff":   "text/plain",
	"xml":   "application/xml",
}

// Service implements the UniProtKB tool functions. Each call makes at most one
// request through the client.
type Service struct {
	client  *uniprot.Client
	logger  *log.Logger
	baseURL string
	policy  uniprot.Policy
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithBaseURL points the service at another UniProt deployment.
func WithBaseURL(baseURL string) ServiceOption {
	return func(s *Service) {
		if baseURL != "" {
			s.baseURL = strings.TrimRight(baseURL, "/")
		}
	}
}

// WithPolicy sets how failures reach the caller.
func WithPolicy(policy uniprot.Policy) ServiceOption {
	return func(s *Service) {
		if policy != "" {
			s.policy = policy
		}
	}
}

// WithLogger sets the logger used for response shape problems.
func WithLogger(logger *log.Logger) ServiceOption {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewService wraps client.
func NewService(client *uniprot.Client, opts ...ServiceOption) *Service {
	s := &Service{
		client:  client,
		logger:  log.New(io.Discard),
		baseURL: uniprot.BaseURL,
		policy:  uniprot.PolicyDowngrade,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// FetchByAccession returns the UniProtKB entry for accession. With format "json"
// (or empty) the decoded entry is passed through; other formats come back as
// {accession, format, content}.
func (s *Service) FetchByAccession(ctx context.Context, accession, format string) (any, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = "json"
	}

	req := uniprot.Request{
		URL: s.baseURL + "/uniprotkb/" + url.PathEscape(accession),
	}

	if format != "json" {
		accept, ok := textFormats[format]
		if !ok {
			return nil, tools.WrapError(tools.ErrInvalidParams, fmt.Errorf("unsupported format %q", format))
		}

		req.URL += "." + format
		req.Format = uniprot.FormatText
		req.Headers = map[string]string{"Accept": accept}
	}

	result := s.client.Do(ctx, req)
	if result.Absent() {
		return s.entityFailure(result.Failure, "Unable to fetch data for accession "+accession+".")
	}

	if result.IsText {
		return map[string]any{
			"accession": accession,
			"format":    format,
			"content":   result.Text,
		}, nil
	}

	if result.Data == nil {
		s.logger.Error("entry response is empty", "accession", accession)
		return s.entityFailure(uniprot.ShapeFailure("entry"), "Unable to fetch data for accession "+accession+".")
	}

	return result.Data, nil
}

// Search runs a UniProtKB query and returns the hits in the order received.
// A failed call or a response without results yields an empty list.
func (s *Service) Search(ctx context.Context, query string, size int, fields string) ([]any, error) {
	if size <= 0 {
		size = DefaultSearchSize
	}
	if size > MaxSearchSize {
		size = MaxSearchSize
	}

	if fields = strings.TrimSpace(fields); fields == "" {
		fields = DefaultSearchFields
	}

	result := s.client.Do(ctx, uniprot.Request{
		URL: s.baseURL + "/uniprotkb/search",
		Query: map[string]any{
			"query":  query,
			"fields": fields,
			"size":   size,
			"format": "json",
		},
	})
	if result.Absent() {
		return s.listFailure(result.Failure)
	}

	body, _ := result.Data.(map[string]any)
	results, ok := body["results"].([]any)
	if !ok {
		s.logger.Error("search response has no results list", "query", query)
		return s.listFailure(uniprot.ShapeFailure("results"))
	}

	return results, nil
}

// FetchSequences downloads FASTA for a comma separated list of accessions and
// returns {"sequences": {accession: sequence}}.
func (s *Service) FetchSequences(ctx context.Context, accessions string) (any, error) {
	ids := SplitAccessions(accessions)
	joined := strings.Join(ids, ",")

	escaped := make([]string, len(ids))
	for i, id := range ids {
		escaped[i] = url.PathEscape(id)
	}

	result := s.client.Do(ctx, uniprot.Request{
		URL:     s.baseURL + "/uniprotkb/" + strings.Join(escaped, ",") + ".fasta",
		Headers: map[string]string{"Accept": "text/plain"},
		Format:  uniprot.FormatText,
	})
	if result.Absent() {
		return s.entityFailure(result.Failure, "Unable to fetch sequences for "+joined+".")
	}

	return map[string]any{
		"sequences": uniprot.ParseFASTA(result.Text),
	}, nil
}

// FetchFeatures returns the sequence features of an entry, optionally limited
// to one category. "all" or an empty type asks for every category.
func (s *Service) FetchFeatures(ctx context.Context, accession, featureType string) (any, error) {
	req := uniprot.Request{
		URL: s.baseURL + "/uniprotkb/" + url.PathEscape(accession) + "/features",
	}

	if featureType = strings.TrimSpace(featureType); featureType != "" && !strings.EqualFold(featureType, "all") {
		req.Query = map[string]any{"categories": featureType}
	}

	result := s.client.Do(ctx, req)
	if result.Absent() {
		return s.entityFailure(result.Failure, "Unable to fetch features for accession "+accession+".")
	}

	if result.Data == nil {
		s.logger.Error("features response is empty", "accession", accession)
		return s.entityFailure(uniprot.ShapeFailure("features"), "Unable to fetch features for accession "+accession+".")
	}

	return result.Data, nil
}

// SplitAccessions splits a comma separated accession list, dropping blanks.
func SplitAccessions(accessions string) []string {
	var ids []string
	for _, id := range strings.Split(accessions, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

func (s *Service) entityFailure(failure *uniprot.Failure, message string) (any, error) {
	if s.policy == uniprot.PolicySurface {
		return nil, failure
	}
	return map[string]any{"error": message}, nil
}

func (s *Service) listFailure(failure *uniprot.Failure) ([]any, error) {
	if s.policy == uniprot.PolicySurface {
		return nil, failure
	}
	return []any{}, nil
}
