package cli

// Config holds the configuration for the CLI.
type Config struct {
	// Max files analyzed at a time.
	// Large values will increase load on the analysis service.
	// Default is 10.
	MaxConcurrency int

	// The name of the file to store the document snapshot.
	Index string

	// The directory of documents to analyze.
	Directory string

	// Free-text search query.
	Query string

	// Conversational question.
	Question string

	// Base URL of the external document-analysis service.
	AnalyzerURL string

	// Server port. default is 8080.
	Port int
}

var DefaultConfig = Config{
	MaxConcurrency: 10,
	Port:           8080,
	AnalyzerURL:    "",
}
