package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	auth "github.com/mathhub/mathhub/internal/auth/middleware"
	"github.com/mathhub/mathhub/internal/submission"
)

type validateReq struct {
	ExamID      string            `json:"examId"`
	UserAnswers map[string]string `json:"-"`
	TimeTaken   int               `json:"timeTaken,omitempty"` // seconds
}

// decodeValidateReq accepts each answer as "a,c" or ["a","c"];
// arrays are joined so the scorer sees one representation.
func decodeValidateReq(r *http.Request) (validateReq, error) {
	var body struct {
		validateReq
		RawAnswers map[string]json.RawMessage `json:"userAnswers"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return validateReq{}, fmt.Errorf("%w: bad json: %v", submission.ErrInvalidInput, err)
	}
	req := body.validateReq
	if body.RawAnswers == nil {
		return req, nil
	}
	req.UserAnswers = make(map[string]string, len(body.RawAnswers))
	for qid, raw := range body.RawAnswers {
		if string(raw) == "null" {
			continue // cleared answer: not attempted
		}
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			req.UserAnswers[qid] = s
			continue
		}
		var list []string
		if err := json.Unmarshal(raw, &list); err != nil {
			return validateReq{}, fmt.Errorf("%w: answer for %s must be a string or an array of strings", submission.ErrInvalidInput, qid)
		}
		req.UserAnswers[qid] = strings.Join(list, ",")
	}
	return req, nil
}

// POST /validate-answers {examId, userAnswers}
// Scores the answers without recording a result.
func ValidateAnswersHandler(svc *submission.Service, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, err := decodeValidateReq(r)
		if err != nil {
			fail(w, r, logger, err)
			return
		}
		res, err := svc.Validate(r.Context(), req.ExamID, req.UserAnswers)
		if err != nil {
			fail(w, r, logger, err)
			return
		}
		respondJSON(w, http.StatusOK, res)
	}
}

// POST /submissions {examId, userAnswers, timeTaken}
func SubmitHandler(svc *submission.Service, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, err := decodeValidateReq(r)
		if err != nil {
			fail(w, r, logger, err)
			return
		}
		res, err := svc.Submit(r.Context(), submission.Request{
			UserID:       auth.SubjectFromContext(r.Context()),
			ExamID:       req.ExamID,
			Answers:      req.UserAnswers,
			TimeTakenSec: req.TimeTaken,
		})
		if err != nil {
			fail(w, r, logger, err)
			return
		}
		respondJSON(w, http.StatusCreated, res)
	}
}
