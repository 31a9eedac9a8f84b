package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"

	"github.com/abiiranathan/docsearch/analyzer"
	"github.com/abiiranathan/docsearch/chat"
	"github.com/abiiranathan/docsearch/search"
	"github.com/abiiranathan/goflag"
)

func printResults(resp search.Response) {
	for _, result := range resp.Results {
		fmt.Printf("%s Page: %d [%.2f]: %s\n",
			result.DocumentName, result.PageNumber, result.Score, result.Excerpt)
	}
	if len(resp.Suggestions) > 0 {
		fmt.Printf("Related: %v\n", resp.Suggestions)
	}
	fmt.Printf("%d results in %dms\n", resp.TotalResults, resp.SearchTimeMs)
}

func printAnswer(answer chat.Answer) {
	fmt.Println(answer.Message.Content)
	for _, ref := range answer.References {
		fmt.Printf("  - %s Page: %d (%.0f%%)\n", ref.DocumentName, ref.PageNumber, ref.Confidence)
	}
	for _, q := range answer.RelatedQuestions {
		fmt.Printf("  ? %s\n", q)
	}
}

func ValidateIndex(index string) {
	stat, err := os.Stat(index)
	if err != nil {
		log.Fatalln("The file you specified for the index does not exist")
	}

	if stat.Size() == 0 {
		log.Fatalf("The file you specified for the index is empty. Run the `analyze` command to generate a snapshot\n")
	}
	log.Printf("Using index: %s [%d bytes]\n", index, stat.Size())
}

func loadEngine(index string) *search.Engine {
	ValidateIndex(index)

	docs, err := search.Deserialize(index)
	if err != nil {
		log.Fatalf("unable to deserialize %s: %v\n", index, err)
	}

	engine := search.NewEngine()
	engine.SetDocuments(docs)
	return engine
}

// Analyze every supported file under the configured directory through the
// external analysis service and serialize the resulting snapshot.
func analyzeDirectory(config *Config) {
	files, err := analyzer.WalkDir(config.Directory, []string{".pdf"})
	if err != nil {
		log.Fatalf("unable to load files at %s: %v\n", config.Directory, err)
	}
	log.Printf("Found %d files in %s\n", len(files), config.Directory)

	client := analyzer.NewClient(analyzerURL(config))
	if err := client.Health(context.Background()); err != nil {
		log.Fatalln(err)
	}

	results := client.AnalyzeAll(context.Background(), files, config.MaxConcurrency)
	for _, result := range results {
		if result.Err != nil {
			log.Printf("unable to analyze %s: %v\n", result.Path, result.Err)
		}
	}

	if err := search.Serialize(config.Index, analyzer.Documents(results)); err != nil {
		log.Fatalln(err)
	}
	log.Printf("Snapshot written to %s\n", config.Index)
}

func analyzerURL(config *Config) string {
	if config.AnalyzerURL != "" {
		return config.AnalyzerURL
	}
	if url := os.Getenv("DOCSEARCH_ANALYZER_URL"); url != "" {
		return url
	}
	return analyzer.DefaultBaseURL
}

func DefineFlags(config *Config, runserver func()) *goflag.Context {
	// Use the home folder/index.bin as default index.
	home, err := os.UserHomeDir()
	if err != nil {
		log.Fatalf("os.UserHomeDir() unable failed: %v\n", err)
	}

	// Create the index file if it does not exist.
	config.Index = filepath.Join(home, "index.bin")
	if _, err := os.Stat(config.Index); err != nil {
		// if the file does not exist, create it.
		if errors.Is(err, fs.ErrNotExist) {
			_, err = os.Create(config.Index)
			if err != nil {
				log.Fatalln(err)
			}
		}
	}

	// Flags required by multiple subcomands
	indexFlag := goflag.Flag{
		FlagType:  goflag.FlagFilePath,
		Name:      "index",
		ShortName: "i",
		Value:     &config.Index,
		Usage:     "The path of the serialized document snapshot",
		Required:  false,
		Validator: nil,
	}

	queryFlag := goflag.Flag{
		FlagType:  goflag.FlagString,
		Name:      "query",
		ShortName: "q",
		Value:     &config.Query,
		Usage:     "The free-text search query",
		Required:  true,
		Validator: nil,
	}

	// Create flag context.
	ctx := goflag.NewContext()

	// global flags
	ctx.AddFlag(goflag.FlagInt, "concurrency", "c",
		&config.MaxConcurrency,
		"No of files to be analyzed at once",
		false, goflag.Min(1), goflag.Max(100))

	ctx.AddFlag(goflag.FlagString, "analyzer", "a",
		&config.AnalyzerURL,
		"Base URL of the document analysis service",
		false)

	// register subcommands
	ctx.AddSubCommand("analyze", "Analyze a folder of documents into a snapshot", func() {
		analyzeDirectory(config)
	}).AddFlag(goflag.FlagDirPath, "directory", "d", &config.Directory, "The directory to analyze", true).
		AddFlagPtr(&indexFlag)

	ctx.AddSubCommand("search", "Search the analyzed documents", func() {
		engine := loadEngine(config.Index)
		printResults(engine.Search(config.Query))
	}).AddFlagPtr(&indexFlag).AddFlagPtr(&queryFlag)

	ctx.AddSubCommand("ask", "Ask a question about the analyzed documents", func() {
		assistant := chat.NewAssistant(loadEngine(config.Index))
		printAnswer(assistant.AskQuestion(config.Question))
	}).AddFlagPtr(&indexFlag).
		AddFlag(goflag.FlagString, "question", "Q", &config.Question, "The question to answer", true)

	// Run server
	ctx.AddSubCommand("runserver", "Start an Http server for search and chat", runserver).
		AddFlag(goflag.FlagInt, "port", "p", &config.Port, "The port to run the server on", false).
		AddFlagPtr(&indexFlag)

	return ctx
}
