package routes

import (
	"encoding/json"
	"net/http"

	"github.com/abiiranathan/docsearch/chat"
	"github.com/abiiranathan/docsearch/search"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// Search handles GET /search?query=... An empty query returns an empty
// result set, not an error.
func Search(engine *search.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query().Get("query")
		writeJSON(w, http.StatusOK, engine.Search(query))
	}
}

type askRequest struct {
	Question string `json:"question"`
}

// Ask handles POST /ask with a JSON body {"question": "..."}.
func Ask(assistant *chat.Assistant) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req askRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{
				"message": "Invalid request body",
			})
			return
		}
		writeJSON(w, http.StatusOK, assistant.AskQuestion(req.Question))
	}
}

// History handles GET /history.
func History(assistant *chat.Assistant) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		messages := assistant.History()
		if messages == nil {
			messages = []chat.Message{}
		}
		writeJSON(w, http.StatusOK, messages)
	}
}

// ClearHistory handles DELETE /history.
func ClearHistory(assistant *chat.Assistant) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		assistant.ClearHistory()
		w.WriteHeader(http.StatusNoContent)
	}
}

// DocumentSummary describes one document in the working set.
type DocumentSummary struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Pages    int    `json:"pages"`
	Analysis string `json:"analysis"`
}

// Documents handles GET /documents: the current snapshot, including
// documents whose analysis failed.
func Documents(engine *search.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		docs := engine.Documents()
		summaries := make([]DocumentSummary, 0, len(docs))
		for _, doc := range docs {
			summaries = append(summaries, DocumentSummary{
				ID:       doc.ID,
				Name:     doc.Name,
				Pages:    len(doc.Sections),
				Analysis: doc.Analysis.Status.String(),
			})
		}
		writeJSON(w, http.StatusOK, summaries)
	}
}

// Health handles GET /health.
func Health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
