// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/pdiddy/citation-engine/internal/citation"
	"github.com/pdiddy/citation-engine/pkg/types"
)

type formatRequest struct {
	Reference *types.Reference `json:"reference"`
	Style     string           `json:"style"`
	Format    string           `json:"format,omitempty"`
}

type formatResponse struct {
	FormattedReference string `json:"formatted_reference"`
}

type searchRequest struct {
	Query      string `json:"q"`
	MaxResults int    `json:"max_results,omitempty"`
	Style      string `json:"style,omitempty"`
	Format     string `json:"format,omitempty"`
}

type stylesResponse struct {
	Styles  []types.Style        `json:"styles"`
	Formats []types.OutputFormat `json:"formats"`
}

func (s *Server) handleFormat(w http.ResponseWriter, r *http.Request) {
	var req formatRequest
	if err := s.decode(w, r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.Reference == nil {
		http.Error(w, "missing reference", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Style) == "" {
		http.Error(w, "missing style", http.StatusBadRequest)
		return
	}

	style, format, err := s.parseStyleFormat(req.Style, req.Format)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, formatResponse{
		FormattedReference: citation.Format(*req.Reference, style, format),
	})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := s.decode(w, r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		http.Error(w, "missing query", http.StatusBadRequest)
		return
	}

	var style types.Style
	var format types.OutputFormat
	withCitation := strings.TrimSpace(req.Style) != ""
	if withCitation {
		var err error
		if style, format, err = s.parseStyleFormat(req.Style, req.Format); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	if s.searcher == nil {
		http.Error(w, "search is not configured", http.StatusServiceUnavailable)
		return
	}

	results, err := s.searcher.Search(r.Context(), req.Query, req.MaxResults)
	if err != nil {
		s.log.Warn().Err(err).Str("query", req.Query).Msg("search failed")
		http.Error(w, fmt.Sprintf("Failed to search PubMed: %v", err), http.StatusInternalServerError)
		return
	}
	if results == nil {
		results = []types.SearchResult{}
	}
	if withCitation {
		for i := range results {
			results[i].FormattedReference = citation.Format(results[i].Reference(), style, format)
		}
	}

	writeJSON(w, http.StatusOK, results)
}

func (s *Server) handleStyles(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, stylesResponse{
		Styles:  types.Styles(),
		Formats: types.OutputFormats(),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	io.WriteString(w, "ok")
}

// decode reads a JSON body of at most MaxBodyBytes into v.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) error {
	body := http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
	if err := json.NewDecoder(body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			return fmt.Errorf("request body exceeds %d bytes", tooLarge.Limit)
		case errors.Is(err, io.EOF):
			return errors.New("empty request body")
		default:
			return fmt.Errorf("invalid request body: %v", err)
		}
	}
	return nil
}

func (s *Server) parseStyleFormat(styleName, formatName string) (types.Style, types.OutputFormat, error) {
	style, err := types.ParseStyle(styleName)
	if err != nil {
		return 0, "", err
	}
	if strings.TrimSpace(formatName) == "" {
		return style, s.cfg.DefaultFormat, nil
	}
	format, err := types.ParseOutputFormat(formatName)
	if err != nil {
		return 0, "", err
	}
	return style, format, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
