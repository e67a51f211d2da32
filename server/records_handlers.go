package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog/hlog"

	autherrors "github.com/jrsteele09/studyflow-auth/internal/errors"
	"github.com/jrsteele09/studyflow-auth/records"
)

// RecordMessageResponse acknowledges a record mutation
type RecordMessageResponse struct {
	Message string `json:"message"`
	ID      string `json:"id"`
}

type RecordSearchResponse struct {
	Query   string           `json:"query"`
	Count   int              `json:"count"`
	Results []records.Record `json:"results"`
}

func (s *Server) ListRecordsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := s.records.List()
		if err != nil {
			s.writeError(w, r, err, "")
			return
		}
		writeJSON(w, http.StatusOK, list)
	}
}

// SearchRecordsHandler matches q against record names and note text (GET /records/search?q=)
func (s *Server) SearchRecordsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := strings.TrimSpace(r.URL.Query().Get("q"))
		if query == "" {
			s.writeError(w, r, autherrors.ErrMissingField, "Query parameter cannot be blank")
			return
		}

		results, err := s.records.Search(query)
		if err != nil {
			s.writeError(w, r, err, "")
			return
		}
		writeJSON(w, http.StatusOK, RecordSearchResponse{
			Query:   query,
			Count:   len(results),
			Results: results,
		})
	}
}

func (s *Server) GetRecordHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		record, err := s.records.Get(id)
		if err != nil {
			s.writeError(w, r, err, recordMessage(err, id))
			return
		}
		writeJSON(w, http.StatusOK, record)
	}
}

// CreateRecordHandler stores a new record owned by the calling identity (POST /records)
func (s *Server) CreateRecordHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var record records.Record
		if err := decodeJSONBody(w, r, s.schemas.recordCreate, &record); err != nil {
			s.writeError(w, r, err, "")
			return
		}

		identity, _ := IdentityFromContext(r.Context())
		record.CreatedBy = identity.Username

		created, err := s.records.Create(record)
		if err != nil {
			s.writeError(w, r, err, recordMessage(err, record.ID))
			return
		}

		hlog.FromRequest(r).Info().Str("record_id", created.ID).Str("username", identity.Username).
			Str("auth_method", AuthMethodFromContext(r.Context())).Msg("record created")
		writeJSON(w, http.StatusCreated, RecordMessageResponse{
			Message: "Record created successfully",
			ID:      created.ID,
		})
	}
}

func (s *Server) UpdateRecordHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		var update records.Update
		if err := decodeJSONBody(w, r, s.schemas.recordUpdate, &update); err != nil {
			s.writeError(w, r, err, "")
			return
		}

		if _, err := s.records.Update(id, update); err != nil {
			s.writeError(w, r, err, recordMessage(err, id))
			return
		}
		writeJSON(w, http.StatusOK, RecordMessageResponse{
			Message: "Record updated successfully",
			ID:      id,
		})
	}
}

func (s *Server) DeleteRecordHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		if err := s.records.Delete(id); err != nil {
			s.writeError(w, r, err, recordMessage(err, id))
			return
		}
		writeJSON(w, http.StatusOK, RecordMessageResponse{
			Message: "Record deleted successfully",
			ID:      id,
		})
	}
}

func recordMessage(err error, id string) string {
	switch {
	case autherrors.Is(err, autherrors.ErrNotFound):
		return fmt.Sprintf("Record with ID '%s' not found", id)
	case autherrors.Is(err, autherrors.ErrConflict):
		return fmt.Sprintf("Record with ID '%s' already exists", id)
	}
	return ""
}
