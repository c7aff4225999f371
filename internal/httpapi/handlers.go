package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"chapter-quiz/internal/quiz"
)

const defaultResultsLimit = 10

func (a *API) HandleBanks(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, banksResponse{
		MultipleChoice: len(a.bankMC),
		TrueFalse:      len(a.bankTF),
		Total:          len(a.bankMC) + len(a.bankTF),
	})
}

func (a *API) HandleChapters(w http.ResponseWriter, r *http.Request) {
	catalog := quiz.BuildCatalog(a.bankMC, a.bankTF)

	response := chaptersResponse{Chapters: make([]chapterResponse, 0, catalog.Len())}
	for _, chapter := range catalog.Chapters() {
		count, _ := catalog.Count(chapter)
		response.Chapters = append(response.Chapters, chapterResponse{
			Chapter:        chapter,
			MultipleChoice: count.MultipleChoice,
			TrueFalse:      count.TrueFalse,
			Total:          count.Total,
		})
	}

	writeJSON(w, http.StatusOK, response)
}

func (a *API) HandleCounts(w http.ResponseWriter, r *http.Request) {
	mode, err := parseMode(r.URL.Query().Get("mode"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	catalog := catalogFor(a.bankMC, a.bankTF, parseChaptersParam(r))
	pool := quiz.CurrentPool(mode, catalog, a.bankMC, a.bankTF)
	counts := quiz.SensibleCounts(len(pool))

	writeJSON(w, http.StatusOK, countsResponse{
		PoolSize:     len(pool),
		Counts:       counts,
		DefaultCount: quiz.ResolveCount(0, counts, len(pool)),
	})
}

func (a *API) HandleStartSession(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var request startSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}

	mode, err := parseMode(request.Mode)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	catalog := catalogFor(a.bankMC, a.bankTF, request.Chapters)
	pool := quiz.CurrentPool(mode, catalog, a.bankMC, a.bankTF)

	count := request.Count
	if count <= 0 {
		count = quiz.ResolveCount(0, quiz.SensibleCounts(len(pool)), len(pool))
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	session, err := quiz.NewSession(pool, count, strings.TrimSpace(request.ChapterFilter), a.rng)
	if err != nil {
		if errors.Is(err, quiz.ErrNoQuestions) {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "no questions match your selection"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to start session"})
		return
	}

	live := &liveSession{
		id:            a.newSessionID(),
		mode:          mode,
		chapterFilter: strings.TrimSpace(request.ChapterFilter),
		session:       session,
		createdAt:     time.Now().UTC(),
	}
	a.sessions[live.id] = live

	writeJSON(w, http.StatusCreated, toSessionView(live))
}

func (a *API) HandleSession(w http.ResponseWriter, r *http.Request) {
	a.mu.Lock()
	defer a.mu.Unlock()

	live, ok := a.lookupSession(chi.URLParam(r, "session_id"))
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "session not found"})
		return
	}

	writeJSON(w, http.StatusOK, toSessionView(live))
}

func (a *API) HandleAnswer(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var request answerRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	live, ok := a.lookupSession(chi.URLParam(r, "session_id"))
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "session not found"})
		return
	}

	session := live.session
	question, ok := session.Current()
	if !ok {
		writeJSON(w, http.StatusConflict, errorResponse{Error: "session already completed"})
		return
	}

	letter := quiz.NormalizeLetter(request.Answer)
	if letter == "" || letter[0] < 'A' {
		writeJSON(w, http.StatusOK, answerResponse{
			Status:       StatusInvalidLetter,
			CorrectCount: session.CorrectCount(),
			ScorePercent: session.ScorePercent(),
		})
		return
	}

	answerIndex := int(letter[0] - 'A')
	if answerIndex >= len(question.Answers) {
		writeJSON(w, http.StatusOK, answerResponse{
			Status:       StatusInvalidLetter,
			CorrectCount: session.CorrectCount(),
			ScorePercent: session.ScorePercent(),
		})
		return
	}

	outcome, applied := session.Answer(answerIndex)
	if !applied {
		// First answer wins; repeats echo the recorded outcome.
		correctIndex := question.CorrectIndex()
		writeJSON(w, http.StatusOK, answerResponse{
			Status:        StatusAlreadyAnswered,
			CorrectIndex:  &correctIndex,
			CorrectLetter: quiz.AnswerLetter(correctIndex),
			CorrectText:   question.Answers[correctIndex].Text,
			CorrectCount:  session.CorrectCount(),
			ScorePercent:  session.ScorePercent(),
		})
		return
	}

	status := StatusIncorrect
	if outcome.Correct {
		status = StatusCorrect
	}
	writeJSON(w, http.StatusOK, answerResponse{
		Status:        status,
		CorrectIndex:  &outcome.CorrectIndex,
		CorrectLetter: quiz.AnswerLetter(outcome.CorrectIndex),
		CorrectText:   question.Answers[outcome.CorrectIndex].Text,
		CorrectCount:  session.CorrectCount(),
		ScorePercent:  session.ScorePercent(),
	})
}

func (a *API) HandleAdvance(w http.ResponseWriter, r *http.Request) {
	a.mu.Lock()
	defer a.mu.Unlock()

	live, ok := a.lookupSession(chi.URLParam(r, "session_id"))
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "session not found"})
		return
	}

	live.session.Advance()

	if live.session.Completed() {
		a.archiveResult(r.Context(), live)
		writeJSON(w, http.StatusOK, advanceResponse{
			Completed: true,
			Summary:   toCompletionSummary(live),
		})
		return
	}

	view := toSessionView(live)
	writeJSON(w, http.StatusOK, advanceResponse{Session: &view})
}

func (a *API) HandleRetreat(w http.ResponseWriter, r *http.Request) {
	a.mu.Lock()
	defer a.mu.Unlock()

	live, ok := a.lookupSession(chi.URLParam(r, "session_id"))
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "session not found"})
		return
	}

	live.session.Retreat()
	writeJSON(w, http.StatusOK, toSessionView(live))
}

func (a *API) HandleSessionResults(w http.ResponseWriter, r *http.Request) {
	a.mu.Lock()
	defer a.mu.Unlock()

	live, ok := a.lookupSession(chi.URLParam(r, "session_id"))
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "session not found"})
		return
	}

	if !live.session.Completed() {
		writeJSON(w, http.StatusConflict, errorResponse{Error: "session is still in progress"})
		return
	}

	writeJSON(w, http.StatusOK, toCompletionSummary(live))
}

func (a *API) HandleDeleteSession(w http.ResponseWriter, r *http.Request) {
	a.mu.Lock()
	defer a.mu.Unlock()

	sessionID := chi.URLParam(r, "session_id")
	if _, ok := a.lookupSession(sessionID); !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "session not found"})
		return
	}

	delete(a.sessions, sessionID)
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) HandleArchivedResults(w http.ResponseWriter, r *http.Request) {
	if a.results == nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "results archive not configured"})
		return
	}

	limit, err := parseIntParam(r, "limit", defaultResultsLimit)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	results, err := a.results.ListRecentResults(r.Context(), limit)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to list results"})
		return
	}

	response := archivedResultsResponse{Results: make([]archivedResultResponse, 0, len(results))}
	for _, result := range results {
		response.Results = append(response.Results, toArchivedResult(result, true))
	}
	writeJSON(w, http.StatusOK, response)
}

func (a *API) HandleChapterAccuracy(w http.ResponseWriter, r *http.Request) {
	if a.results == nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "results archive not configured"})
		return
	}

	accuracies, err := a.results.ChapterAccuracy(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to aggregate chapters"})
		return
	}

	response := chapterAccuraciesResponse{Chapters: make([]chapterAccuracyResponse, 0, len(accuracies))}
	for _, entry := range accuracies {
		response.Chapters = append(response.Chapters, chapterAccuracyResponse{
			Chapter:  entry.Chapter,
			Correct:  entry.Correct,
			Total:    entry.Total,
			Accuracy: entry.Accuracy,
		})
	}
	writeJSON(w, http.StatusOK, response)
}

// archiveResult persists a completed run once, best-effort: a failing
// archive never blocks the completion response.
func (a *API) archiveResult(ctx context.Context, live *liveSession) {
	if a.results == nil || live.archived {
		return
	}
	live.archived = true

	result := quiz.ResultFromSession(a.newResultID(), live.mode, live.chapterFilter, live.session, time.Now().UTC())
	if err := a.results.SaveResult(ctx, result); err != nil {
		log.Printf("archive result %s failed: %v", result.ResultID, err)
	}
}
