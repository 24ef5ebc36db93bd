package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"studentmoney/internal/core"
)

// Records travel through the endpoint as raw JSON objects. The endpoint
// assigns identity and merges patches without interpreting the rest of the
// schema; validation is the caller's job, mirroring the client forms.
type record map[string]any

func listKey(userID string, kind core.Kind) string {
	return fmt.Sprintf("user:%s:%s", userID, kind)
}

func (s *Server) loadList(r *http.Request, userID string, kind core.Kind) ([]record, error) {
	raw, found, err := s.store.Get(r.Context(), listKey(userID, kind))
	if err != nil {
		return nil, fmt.Errorf("load %s list: %w", kind, err)
	}
	if !found {
		return []record{}, nil
	}
	var list []record
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("decode %s list: %w", kind, err)
	}
	if list == nil {
		list = []record{}
	}
	return list, nil
}

func (s *Server) saveList(r *http.Request, userID string, kind core.Kind, list []record) error {
	raw, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("encode %s list: %w", kind, err)
	}
	if err := s.store.Set(r.Context(), listKey(userID, kind), raw); err != nil {
		return fmt.Errorf("store %s list: %w", kind, err)
	}
	return nil
}

func pathKind(w http.ResponseWriter, r *http.Request) (core.Kind, bool) {
	kind := core.Kind(r.PathValue("kind"))
	if !kind.Valid() {
		writeError(w, http.StatusNotFound, "Unknown collection")
		return "", false
	}
	return kind, true
}

func (s *Server) handleListRecords(w http.ResponseWriter, r *http.Request) {
	user, ok := s.authenticate(w, r)
	if !ok {
		return
	}
	kind, ok := pathKind(w, r)
	if !ok {
		return
	}

	list, err := s.loadList(r, user.ID, kind)
	if err != nil {
		slog.ErrorContext(r.Context(), "List records failed", "error", err, "kind", kind, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "Failed to fetch "+kind.Plural())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{kind.Plural(): list})
}

func (s *Server) handleCreateRecord(w http.ResponseWriter, r *http.Request) {
	user, ok := s.authenticate(w, r)
	if !ok {
		return
	}
	kind, ok := pathKind(w, r)
	if !ok {
		return
	}

	var draft record
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	list, err := s.loadList(r, user.ID, kind)
	if err != nil {
		slog.ErrorContext(r.Context(), "Create record failed", "error", err, "kind", kind, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "Failed to create "+kind.Singular())
		return
	}

	draft["id"] = uuid.NewString()
	draft["userId"] = user.ID
	draft["createdAt"] = time.Now().UTC().Format(time.RFC3339)
	if kind == core.KindCategories {
		// user-created categories are never default
		draft["isDefault"] = false
	}

	list = append(list, draft)
	if err := s.saveList(r, user.ID, kind, list); err != nil {
		slog.ErrorContext(r.Context(), "Create record failed", "error", err, "kind", kind, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "Failed to create "+kind.Singular())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{kind.Singular(): draft})
}

func (s *Server) handleUpdateRecord(w http.ResponseWriter, r *http.Request) {
	user, ok := s.authenticate(w, r)
	if !ok {
		return
	}
	kind, ok := pathKind(w, r)
	if !ok {
		return
	}
	id := r.PathValue("id")

	var patch record
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	list, err := s.loadList(r, user.ID, kind)
	if err != nil {
		slog.ErrorContext(r.Context(), "Update record failed", "error", err, "kind", kind, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "Failed to update "+kind.Singular())
		return
	}

	index := -1
	for i, rec := range list {
		if rec["id"] == id {
			index = i
			break
		}
	}
	if index == -1 {
		writeError(w, http.StatusNotFound, capitalizedSingular(kind)+" not found")
		return
	}

	if kind == core.KindCategories {
		if isDefault, _ := list[index]["isDefault"].(bool); isDefault {
			writeError(w, http.StatusBadRequest, "Cannot edit default category")
			return
		}
	}

	// shallow merge, identity fields win
	for k, v := range patch {
		if k == "id" || k == "createdAt" {
			continue
		}
		list[index][k] = v
	}

	if err := s.saveList(r, user.ID, kind, list); err != nil {
		slog.ErrorContext(r.Context(), "Update record failed", "error", err, "kind", kind, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "Failed to update "+kind.Singular())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{kind.Singular(): list[index]})
}

func (s *Server) handleDeleteRecord(w http.ResponseWriter, r *http.Request) {
	user, ok := s.authenticate(w, r)
	if !ok {
		return
	}
	kind, ok := pathKind(w, r)
	if !ok {
		return
	}
	id := r.PathValue("id")

	list, err := s.loadList(r, user.ID, kind)
	if err != nil {
		slog.ErrorContext(r.Context(), "Delete record failed", "error", err, "kind", kind, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "Failed to delete "+kind.Singular())
		return
	}

	if kind == core.KindCategories {
		for _, rec := range list {
			if rec["id"] == id {
				if isDefault, _ := rec["isDefault"].(bool); isDefault {
					writeError(w, http.StatusBadRequest, "Cannot delete default category")
					return
				}
				break
			}
		}
	}

	// removal of an absent id is a successful no-op
	filtered := list[:0]
	for _, rec := range list {
		if rec["id"] != id {
			filtered = append(filtered, rec)
		}
	}

	if err := s.saveList(r, user.ID, kind, filtered); err != nil {
		slog.ErrorContext(r.Context(), "Delete record failed", "error", err, "kind", kind, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "Failed to delete "+kind.Singular())
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func capitalizedSingular(kind core.Kind) string {
	s := kind.Singular()
	if s == "" {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}
