package chat

import (
	"fmt"
	"slices"
	"strings"

	"github.com/bbalet/stopwords"
	"github.com/jdkato/prose/v2"
)

var questionTemplates = []string{
	"What does the document say about %s?",
	"Can you explain %s in more detail?",
	"Where is %s mentioned?",
}

// RelatedQuestions proposes follow-up questions from the excerpts that
// grounded an answer. Nouns are extracted from the excerpt text, filtered
// against stopwords and the words of the original question, frequency-ranked
// and filled into question templates.
func RelatedQuestions(question string, references []Reference, limit int) []string {
	if len(references) == 0 || limit <= 0 {
		return nil
	}

	asked := make(map[string]struct{})
	for _, w := range strings.Fields(strings.ToLower(question)) {
		asked[w] = struct{}{}
	}

	var excerpts strings.Builder
	for _, ref := range references {
		excerpts.WriteString(ref.Excerpt)
		excerpts.WriteString(". ")
	}

	nouns := topNouns(excerpts.String(), asked, limit)
	questions := make([]string, 0, len(nouns))
	for i, noun := range nouns {
		questions = append(questions, fmt.Sprintf(questionTemplates[i%len(questionTemplates)], noun))
	}
	return questions
}

const (
	nounSingular = "NN"
	nounPlural   = "NNS"
)

// topNouns POS-tags the text and returns the most frequent nouns not present
// in the exclude set.
func topNouns(text string, exclude map[string]struct{}, limit int) []string {
	cleaned := stopwords.CleanString(text, "en", false)
	doc, err := prose.NewDocument(cleaned, prose.WithExtraction(false), prose.WithSegmentation(false))
	if err != nil {
		return nil
	}

	freq := make(map[string]int)
	for _, token := range doc.Tokens() {
		if token.Tag != nounSingular && token.Tag != nounPlural {
			continue
		}
		word := strings.ToLower(token.Text)
		if len(word) < 4 {
			continue
		}
		if _, skip := exclude[word]; skip {
			continue
		}
		freq[word]++
	}
	if len(freq) == 0 {
		return nil
	}

	words := make([]string, 0, len(freq))
	for w := range freq {
		words = append(words, w)
	}
	slices.SortFunc(words, func(a, b string) int {
		if freq[a] != freq[b] {
			return freq[b] - freq[a]
		}
		return strings.Compare(a, b)
	})

	if len(words) > limit {
		words = words[:limit]
	}
	return words
}
