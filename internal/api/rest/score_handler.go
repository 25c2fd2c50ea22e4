package rest

import (
	"net/http"

	"carrental-backend/internal/service"
)

type appendScoreRequest struct {
	ClientID      int32  `json:"client_id" validate:"required"`
	ReservationID int32  `json:"reservation_id"`
	Delta         int32  `json:"delta" validate:"gte=-20,lte=20"`
	Reason        string `json:"reason" validate:"required"`
	Comment       string `json:"comment"`
}

func (s *Server) handleAppendScore(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req appendScoreRequest
	if err := s.decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	entry, err := s.scores.Append(r.Context(), actor, service.AppendScoreInput{
		ClientID:      req.ClientID,
		ReservationID: req.ReservationID,
		Delta:         req.Delta,
		Reason:        req.Reason,
		Comment:       req.Comment,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

func (s *Server) handleCurrentScore(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	score, err := s.scores.CurrentScore(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int32{"score": score})
}

func (s *Server) handleScoreHistory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	entries, total, err := s.scores.History(r.Context(), id, queryInt32(r, "page", 1), queryInt32(r, "page_size", 10))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse{Items: entries, Total: total})
}
