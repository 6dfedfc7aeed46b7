// File: internal/handlers/router.go
package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
)

// NewRouter wires the chat routes onto a fresh mux router.
func NewRouter(chatHandler *ChatHandler) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	}).Methods("GET")

	r.HandleFunc("/", chatHandler.Home).Methods("GET")
	r.HandleFunc("/chat/{id:[0-9]+}", chatHandler.ViewChat).Methods("GET")
	r.HandleFunc("/new_chat", chatHandler.NewChat).Methods("GET")
	r.HandleFunc("/send/{id:[0-9]+}", chatHandler.SendMessage).Methods("POST")
	r.HandleFunc("/delete/{id:[0-9]+}", chatHandler.DeleteChat).Methods("POST")

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		renderErrorPage(w, http.StatusNotFound, "Page Not Found", "The page you are looking for does not exist.")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		renderErrorPage(w, http.StatusMethodNotAllowed, "Method Not Allowed", "The method is not allowed for this resource.")
	})

	return r
}
