package api

import (
	"net/http"

	"github.com/gorilla/mux"
)

func NewRouter(handler *ReadingHandler) http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/", handler.HandleIndex).Methods(http.MethodGet)
	r.HandleFunc("/upload", handler.HandleUpload).Methods(http.MethodPost)
	r.HandleFunc("/healthz", handler.HandleHealth).Methods(http.MethodGet)
	return r
}
