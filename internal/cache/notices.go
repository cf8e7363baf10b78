package cache

import (
	"sort"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"

	"github.com/dmussaku/mongodb-etl-poc/internal/model"
)

// DefaultNoticeTTL is how long a notice stays visible
const DefaultNoticeTTL = 10 * time.Second

// NoticeStore keeps transient action notices until their TTL elapses
type NoticeStore struct {
	data *gocache.Cache
	now  func() time.Time
}

// NewNoticeStore creates a store whose entries expire after ttl
func NewNoticeStore(ttl time.Duration) *NoticeStore {
	if ttl <= 0 {
		ttl = DefaultNoticeTTL
	}
	cleanupInterval := ttl / 2
	return &NoticeStore{
		data: gocache.New(ttl, cleanupInterval),
		now:  time.Now,
	}
}

// OnExpire registers fn to be called whenever a notice expires or is dismissed
func (s *NoticeStore) OnExpire(fn func(model.Notice)) {
	s.data.OnEvicted(func(_ string, value any) {
		if notice, ok := value.(model.Notice); ok {
			fn(notice)
		}
	})
}

// Add records a notice and returns it
func (s *NoticeStore) Add(level, message string, jobID int64) model.Notice {
	notice := model.Notice{
		ID:        uuid.NewString(),
		Level:     level,
		Message:   message,
		JobID:     jobID,
		CreatedAt: s.now(),
	}
	s.data.SetDefault(notice.ID, notice)
	return notice
}

// List returns live notices, oldest first
func (s *NoticeStore) List() []model.Notice {
	items := s.data.Items()
	notices := make([]model.Notice, 0, len(items))
	for _, item := range items {
		if notice, ok := item.Object.(model.Notice); ok {
			notices = append(notices, notice)
		}
	}
	sort.Slice(notices, func(i, j int) bool {
		return notices[i].CreatedAt.Before(notices[j].CreatedAt)
	})
	return notices
}

// Dismiss removes a notice before it expires. It reports whether the notice
// was still live.
func (s *NoticeStore) Dismiss(id string) bool {
	if _, ok := s.data.Get(id); !ok {
		return false
	}
	s.data.Delete(id)
	return true
}
