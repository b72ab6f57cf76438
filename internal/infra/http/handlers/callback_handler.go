package handlers

import (
	"io"
	"log"
	"net/http"
)

// CallbackHandler is a pure sink for generation API callbacks. Completion is
// detected by polling, not by this endpoint.
type CallbackHandler struct{}

func NewCallbackHandler() *CallbackHandler {
	return &CallbackHandler{}
}

func (h *CallbackHandler) Handle(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Printf("generation callback: failed to read body: %v", err)
	} else if len(body) > 0 {
		log.Printf("generation callback: %s", body)
	}

	w.WriteHeader(http.StatusOK)
}
