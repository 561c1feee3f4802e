package completion

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
)

type errorBody struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// Handler serves completions over HTTP. It accepts a POSTed JSON Request
// and answers with a JSON Response or an error body.
func Handler(svc *Service) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.Header().Set("Allow", http.MethodPost)
			writeJSON(w, http.StatusMethodNotAllowed, errorBody{Error: "Method not allowed"})
			return
		}

		var req Request
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorBody{Error: "Invalid request body", Details: err.Error()})
			return
		}

		resp, err := svc.Generate(r.Context(), req)
		switch {
		case err == nil:
			writeJSON(w, http.StatusOK, resp)
		case errors.Is(err, ErrPromptRequired):
			writeJSON(w, http.StatusBadRequest, errorBody{Error: "Prompt is required"})
		case errors.Is(err, ErrNotConfigured):
			writeJSON(w, http.StatusInternalServerError, errorBody{Error: "API key configuration error"})
		default:
			writeJSON(w, http.StatusInternalServerError, errorBody{
				Error:   "Failed to generate content",
				Details: strings.TrimPrefix(err.Error(), "generate content: "),
			})
		}
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
