// Package changelog holds the session-scoped log of mid-year budget
// change requests. Requests are append-only aside from status review.
package changelog

import (
	"fmt"
	"sync"
	"time"

	"github.com/mreyes/finboard/internal/model"
)

// Request types accepted by the submission form.
var RequestTypes = []string{
	"Add FTE",
	"Remove FTE",
	"Adjust Volume Target",
	"CAPEX Request",
	"Other",
}

// ValidRequestType reports whether t is one of the accepted types.
func ValidRequestType(t string) bool {
	for _, rt := range RequestTypes {
		if rt == t {
			return true
		}
	}
	return false
}

// ValidStatus reports whether s is a recognized review status.
func ValidStatus(s string) bool {
	return s == model.RequestPending || s == model.RequestApproved || s == model.RequestRejected
}

// Counts summarizes the log by review status.
type Counts struct {
	Total    int `json:"total"`
	Pending  int `json:"pending"`
	Approved int `json:"approved"`
	Rejected int `json:"rejected"`
}

// Store is the change-request log. Implementations must be safe for
// concurrent use; every bundle-serving session gets its own Store.
type Store interface {
	// Append assigns the next sequential ID and Pending status, records
	// the submission time, and returns the stored request.
	Append(req model.ChangeRequest) (model.ChangeRequest, error)
	// List returns all requests in submission order.
	List() []model.ChangeRequest
	// UpdateStatus moves a request to a new review status.
	UpdateStatus(id, status string) (model.ChangeRequest, error)
	// Counts summarizes the log by status.
	Counts() Counts
}

// MemoryStore is the in-memory Store. The zero value is not usable;
// construct with NewMemoryStore.
type MemoryStore struct {
	mu       sync.Mutex
	requests []model.ChangeRequest
	now      func() time.Time
}

// NewMemoryStore returns an empty in-memory log.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{now: time.Now}
}

// SetClock overrides the submission timestamp source. Test hook.
func (s *MemoryStore) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

func (s *MemoryStore) Append(req model.ChangeRequest) (model.ChangeRequest, error) {
	if req.Department == "" {
		return model.ChangeRequest{}, fmt.Errorf("change request: department is required")
	}
	if !ValidRequestType(req.RequestType) {
		return model.ChangeRequest{}, fmt.Errorf("change request: unknown request type %q", req.RequestType)
	}
	if req.Details == "" || req.Justification == "" {
		return model.ChangeRequest{}, fmt.Errorf("change request: details and justification are required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	req.ID = fmt.Sprintf("CR-%04d", len(s.requests)+1)
	req.SubmittedAt = s.now()
	req.Status = model.RequestPending
	s.requests = append(s.requests, req)
	return req, nil
}

func (s *MemoryStore) List() []model.ChangeRequest {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.ChangeRequest, len(s.requests))
	copy(out, s.requests)
	return out
}

func (s *MemoryStore) UpdateStatus(id, status string) (model.ChangeRequest, error) {
	if !ValidStatus(status) {
		return model.ChangeRequest{}, fmt.Errorf("change request: unknown status %q", status)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.requests {
		if s.requests[i].ID == id {
			s.requests[i].Status = status
			return s.requests[i], nil
		}
	}
	return model.ChangeRequest{}, fmt.Errorf("change request: no request %q", id)
}

func (s *MemoryStore) Counts() Counts {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := Counts{Total: len(s.requests)}
	for _, r := range s.requests {
		switch r.Status {
		case model.RequestPending:
			c.Pending++
		case model.RequestApproved:
			c.Approved++
		case model.RequestRejected:
			c.Rejected++
		}
	}
	return c
}
