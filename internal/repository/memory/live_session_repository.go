package memory

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// LiveSession is a point-in-time copy of an open interview channel.
type LiveSession struct {
	InterviewID  uuid.UUID `json:"interview_id"`
	UserID       uuid.UUID `json:"user_id"`
	Title        string    `json:"title"`
	State        string    `json:"state"`
	UserTurns    int       `json:"user_turns"`
	TotalTurns   int       `json:"total_turns"`
	OpenedAt     time.Time `json:"opened_at"`
	LastActivity time.Time `json:"last_activity"`
}

type LiveSessionRepository struct {
	cache *cache.Cache
}

// NewLiveSessionRepository keeps snapshots for ttl after their last update so a
// session that dies without cleanup still ages out.
func NewLiveSessionRepository(ttl time.Duration) *LiveSessionRepository {
	return &LiveSessionRepository{
		cache: cache.New(ttl, 10*time.Minute),
	}
}

func (r *LiveSessionRepository) Save(s LiveSession) {
	r.cache.Set(s.InterviewID.String(), s, cache.DefaultExpiration)
}

func (r *LiveSessionRepository) Get(interviewID uuid.UUID) (LiveSession, bool) {
	if x, found := r.cache.Get(interviewID.String()); found {
		return x.(LiveSession), true
	}
	return LiveSession{}, false
}

func (r *LiveSessionRepository) Delete(interviewID uuid.UUID) {
	r.cache.Delete(interviewID.String())
}

// List returns unexpired snapshots, oldest first.
func (r *LiveSessionRepository) List() []LiveSession {
	items := r.cache.Items()
	out := make([]LiveSession, 0, len(items))
	for _, item := range items {
		out = append(out, item.Object.(LiveSession))
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].OpenedAt.Before(out[j].OpenedAt)
	})
	return out
}
