package api

import (
	"sync"

	"github.com/google/uuid"
)

// DefaultStoreCapacity bounds how many rendered prompts are kept.
const DefaultStoreCapacity = 1024

// PromptStore keeps recently rendered prompts so clients can fetch them by id.
// When full, the oldest entry is evicted.
type PromptStore struct {
	mu       sync.Mutex
	capacity int
	prompts  map[string]PromptResponse
	order    []string
}

func NewPromptStore(capacity int) *PromptStore {
	if capacity <= 0 {
		capacity = DefaultStoreCapacity
	}
	return &PromptStore{
		capacity: capacity,
		prompts:  make(map[string]PromptResponse),
	}
}

// Put assigns an id to resp, stores it and returns the stored copy.
func (s *PromptStore) Put(resp PromptResponse) PromptResponse {
	resp.ID = newPromptID()
	resp.Object = "prompt"

	s.mu.Lock()
	defer s.mu.Unlock()
	for len(s.order) >= s.capacity {
		delete(s.prompts, s.order[0])
		s.order = s.order[1:]
	}
	s.prompts[resp.ID] = resp
	s.order = append(s.order, resp.ID)
	return resp
}

func (s *PromptStore) Get(id string) (PromptResponse, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	resp, ok := s.prompts[id]
	return resp, ok
}

func (s *PromptStore) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.prompts[id]; !ok {
		return false
	}
	delete(s.prompts, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

func (s *PromptStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.prompts)
}

func newPromptID() string {
	return "prompt-" + uuid.NewString()
}
