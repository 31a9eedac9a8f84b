// Package analyzer is the client for the external document-analysis service,
// which turns an uploaded file into page-segmented text plus basic
// statistics. The service owns extraction; this package only speaks its
// HTTP API and converts responses into documents.
package analyzer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/abiiranathan/docsearch/document"
	"github.com/google/uuid"
)

// DefaultBaseURL is where the analysis service listens locally.
const DefaultBaseURL = "http://localhost:8001"

// Section of extracted text, one per page.
type Section struct {
	Type       string `json:"type"`
	PageNumber int    `json:"page_number"` // 1-based
	Content    string `json:"content"`
	WordCount  int    `json:"word_count"`
	CharCount  int    `json:"char_count"`
	Error      string `json:"error,omitempty"` // Set when this page failed to extract.
}

// ExtractResponse is the payload of POST /extract-text.
type ExtractResponse struct {
	DocumentID  string            `json:"document_id"`
	Filename    string            `json:"filename"`
	TextContent string            `json:"text_content"`
	PageCount   int               `json:"page_count"`
	WordCount   int               `json:"word_count"`
	Metadata    map[string]string `json:"metadata"`
	Sections    []Section         `json:"sections"`
}

// BasicStats summarizes a document.
type BasicStats struct {
	PageCount       int     `json:"page_count"`
	WordCount       int     `json:"word_count"`
	SentenceCount   int     `json:"sentence_count"`
	ParagraphCount  int     `json:"paragraph_count"`
	AvgWordsPerPage float64 `json:"avg_words_per_page"`
}

// AnalyzeResponse is the payload of POST /analyze-document.
type AnalyzeResponse struct {
	DocumentID        string            `json:"document_id"`
	Filename          string            `json:"filename"`
	BasicStats        BasicStats        `json:"basic_stats"`
	TextContent       string            `json:"text_content"`
	Metadata          map[string]string `json:"metadata"`
	Sections          []Section         `json:"sections"`
	AnalysisTimestamp int64             `json:"analysis_timestamp"`
}

// serviceError is the FastAPI error envelope.
type serviceError struct {
	Detail string `json:"detail"`
}

// Client talks to one analysis service instance.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates a client for the service at baseURL, falling back to
// DefaultBaseURL when empty.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 60 * time.Second},
	}
}

// Health checks that the service is reachable and reports itself healthy.
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("analysis service unreachable: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("analysis service unhealthy: %s", resp.Status)
	}
	return nil
}

// ExtractText uploads the file and returns its extracted text and sections.
func (c *Client) ExtractText(ctx context.Context, path string) (*ExtractResponse, error) {
	var out ExtractResponse
	if err := c.upload(ctx, "/extract-text", path, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AnalyzeDocument uploads the file and returns the full analysis, including
// basic statistics.
func (c *Client) AnalyzeDocument(ctx context.Context, path string) (*AnalyzeResponse, error) {
	var out AnalyzeResponse
	if err := c.upload(ctx, "/analyze-document", path, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// upload sends the file as a multipart form and decodes the JSON response
// into out. Non-2xx responses are turned into errors carrying the service's
// detail message.
func (c *Client) upload(ctx context.Context, endpoint, path string, out any) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("unable to open %s: %v", path, err)
	}
	defer file.Close()

	var body bytes.Buffer
	form := multipart.NewWriter(&body)

	part, err := form.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, file); err != nil {
		return fmt.Errorf("unable to read %s: %v", path, err)
	}
	if err := form.WriteField("document_id", "doc_"+uuid.NewString()); err != nil {
		return err
	}
	if err := form.Close(); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+endpoint, &body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", form.FormDataContentType())

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("analysis request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var svcErr serviceError
		if json.NewDecoder(resp.Body).Decode(&svcErr) == nil && svcErr.Detail != "" {
			return fmt.Errorf("analysis failed: %s", svcErr.Detail)
		}
		return fmt.Errorf("analysis failed: %s", resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("unable to decode analysis response: %v", err)
	}
	return nil
}

// Document converts the analysis into a searchable document.
func (r *AnalyzeResponse) Document() document.Document {
	return document.Document{
		ID:       r.DocumentID,
		Name:     r.Filename,
		Sections: convertSections(r.Sections),
		Text:     r.TextContent,
		Analysis: document.Analysis{
			Status: document.AnalysisFull,
			Stats: document.Stats{
				PageCount:       r.BasicStats.PageCount,
				WordCount:       r.BasicStats.WordCount,
				SentenceCount:   r.BasicStats.SentenceCount,
				ParagraphCount:  r.BasicStats.ParagraphCount,
				AvgWordsPerPage: r.BasicStats.AvgWordsPerPage,
			},
		},
	}
}

// Document converts the extraction into a searchable document. Without the
// analysis step only the text and sections are available.
func (r *ExtractResponse) Document() document.Document {
	return document.Document{
		ID:       r.DocumentID,
		Name:     r.Filename,
		Sections: convertSections(r.Sections),
		Text:     r.TextContent,
		Analysis: document.Analysis{Status: document.AnalysisTextOnly},
	}
}

func convertSections(sections []Section) []document.Section {
	out := make([]document.Section, 0, len(sections))
	for _, s := range sections {
		out = append(out, document.Section{
			PageNumber: s.PageNumber,
			Content:    s.Content,
			WordCount:  s.WordCount,
			CharCount:  s.CharCount,
		})
	}
	return out
}
