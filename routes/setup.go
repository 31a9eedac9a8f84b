package routes

import (
	"net/http"

	"github.com/abiiranathan/docsearch/chat"
	"github.com/abiiranathan/docsearch/search"
)

func SetupRoutes(mux *http.ServeMux, engine *search.Engine, assistant *chat.Assistant) {
	// Ranked excerpt search
	mux.HandleFunc("GET /search", Search(engine))

	// Conversational question answering
	mux.HandleFunc("POST /ask", Ask(assistant))

	// Conversation history
	mux.HandleFunc("GET /history", History(assistant))
	mux.HandleFunc("DELETE /history", ClearHistory(assistant))

	// Current document snapshot
	mux.HandleFunc("GET /documents", Documents(engine))

	// Liveness
	mux.HandleFunc("GET /health", Health())
}
