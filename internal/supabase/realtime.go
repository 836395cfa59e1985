package supabase

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/supabase-community/supabase-go"

	"valida-backend/internal/models"
)

// GenerationSnapshot is the row-level payload pushed to viewing sessions
// when a generation changes out of band (typically the workflow engine
// finishing an image after the original request already returned).
type GenerationSnapshot struct {
	GenerationID uuid.UUID               `json:"generation_id"`
	ImageURL     string                  `json:"image_url"`
	Status       models.GenerationStatus `json:"status"`
	UpdatedAt    time.Time               `json:"updated_at"`
}

// RealtimeClient fans row updates out to the websocket watch sessions. Each
// subscription is scoped to exactly one generation id. Delivery is
// at-least-once: the database also drives Supabase Realtime for clients
// subscribed there directly, so a browser may see the same snapshot twice
// and consumers must de-duplicate by comparing the incoming image_url with
// the last applied value.
type RealtimeClient struct {
	client *supabase.Client

	mu          sync.RWMutex
	subscribers map[uuid.UUID]map[chan GenerationSnapshot]struct{}
}

func NewRealtimeClient(client *supabase.Client) *RealtimeClient {
	return &RealtimeClient{
		client:      client,
		subscribers: make(map[uuid.UUID]map[chan GenerationSnapshot]struct{}),
	}
}

// Subscribe registers a watch on one generation. The returned cancel func
// must be called when the viewing session ends; it closes the channel.
func (r *RealtimeClient) Subscribe(generationID uuid.UUID) (<-chan GenerationSnapshot, func()) {
	ch := make(chan GenerationSnapshot, 8)

	r.mu.Lock()
	subs, ok := r.subscribers[generationID]
	if !ok {
		subs = make(map[chan GenerationSnapshot]struct{})
		r.subscribers[generationID] = subs
	}
	subs[ch] = struct{}{}
	r.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			r.mu.Lock()
			if subs, ok := r.subscribers[generationID]; ok {
				delete(subs, ch)
				if len(subs) == 0 {
					delete(r.subscribers, generationID)
				}
			}
			r.mu.Unlock()
			close(ch)
		})
	}

	return ch, cancel
}

// PublishGenerationUpdate delivers a snapshot to every watcher of the
// record. Sends never block the caller; a watcher whose buffer is full
// misses this event and catches up on the next one.
func (r *RealtimeClient) PublishGenerationUpdate(snapshot GenerationSnapshot) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for ch := range r.subscribers[snapshot.GenerationID] {
		select {
		case ch <- snapshot:
		default:
		}
	}
}

// SubscriberCount reports active watchers for a generation.
func (r *RealtimeClient) SubscriberCount(generationID uuid.UUID) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.subscribers[generationID])
}
