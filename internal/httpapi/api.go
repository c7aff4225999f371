package httpapi

import (
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"chapter-quiz/internal/quiz"
)

// API serves the quiz engine over JSON. Sessions live server-side in a
// uuid-keyed registry; the core stays single-actor per session, so one
// registry lock serializes access.
type API struct {
	bankMC  []quiz.Question
	bankTF  []quiz.Question
	results quiz.ResultRepository

	mu       sync.Mutex
	sessions map[string]*liveSession
	rng      *rand.Rand
}

type liveSession struct {
	id            string
	mode          quiz.Mode
	chapterFilter string
	session       *quiz.Session
	createdAt     time.Time
	archived      bool
}

// NewAPI builds an API over normalized banks. results may be nil to disable
// the run archive.
func NewAPI(bankMC, bankTF []quiz.Question, results quiz.ResultRepository) *API {
	return NewSeededAPI(bankMC, bankTF, results, time.Now().UnixNano())
}

// NewSeededAPI is NewAPI with a fixed shuffle seed, for deterministic tests.
func NewSeededAPI(bankMC, bankTF []quiz.Question, results quiz.ResultRepository, seed int64) *API {
	return &API{
		bankMC:   bankMC,
		bankTF:   bankTF,
		results:  results,
		sessions: make(map[string]*liveSession),
		rng:      rand.New(rand.NewSource(seed)),
	}
}

func (a *API) lookupSession(sessionID string) (*liveSession, bool) {
	live, ok := a.sessions[sessionID]
	return live, ok
}

func (a *API) newSessionID() string {
	return "s_" + uuid.NewString()
}

func (a *API) newResultID() string {
	return "r_" + uuid.NewString()
}
