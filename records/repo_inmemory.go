package records

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"

	autherrors "github.com/jrsteele09/studyflow-auth/internal/errors"
)

// InMemoryRepo is a thread-safe in-memory implementation of the Repo interface
type InMemoryRepo struct {
	mu      sync.RWMutex
	records map[string]*Record
	nowFunc func() time.Time
}

var _ Repo = (*InMemoryRepo)(nil)

func NewInMemoryRepo() *InMemoryRepo {
	return &InMemoryRepo{
		records: make(map[string]*Record),
		nowFunc: time.Now,
	}
}

func (r *InMemoryRepo) Create(record Record) (Record, error) {
	if record.ID == "" {
		return Record{}, errors.Wrap(autherrors.ErrMissingField, "[records.Create] id")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.records[record.ID]; exists {
		return Record{}, errors.Wrapf(autherrors.ErrConflict, "record with ID '%s'", record.ID)
	}

	now := r.nowFunc()
	stored := record.clone()
	stored.CreatedAt = now
	stored.UpdatedAt = now
	r.records[record.ID] = &stored
	return stored.clone(), nil
}

func (r *InMemoryRepo) Get(id string) (Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, exists := r.records[id]
	if !exists {
		return Record{}, errors.Wrapf(autherrors.ErrNotFound, "record with ID '%s'", id)
	}
	return record.clone(), nil
}

// List returns every record ordered by ID.
func (r *InMemoryRepo) List() ([]Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]Record, 0, len(r.records))
	for _, record := range r.records {
		list = append(list, record.clone())
	}
	sortByID(list)
	return list, nil
}

func (r *InMemoryRepo) Update(id string, update Update) (Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	record, exists := r.records[id]
	if !exists {
		return Record{}, errors.Wrapf(autherrors.ErrNotFound, "record with ID '%s'", id)
	}

	updated := record.clone()
	updated.Name = update.Name
	updated.File = update.File
	updated.Note = append([]Note{}, update.Note...)
	updated.Tags = append([]string{}, update.Tags...)
	updated.UpdatedAt = r.nowFunc()
	r.records[id] = &updated
	return updated.clone(), nil
}

func (r *InMemoryRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.records[id]; !exists {
		return errors.Wrapf(autherrors.ErrNotFound, "record with ID '%s'", id)
	}
	delete(r.records, id)
	return nil
}

// Search returns records whose name or any note contains query, ignoring case.
func (r *InMemoryRepo) Search(query string) ([]Record, error) {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil, errors.Wrap(autherrors.ErrMissingField, "[records.Search] query")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	results := []Record{}
	for _, record := range r.records {
		if matches(record, query) {
			results = append(results, record.clone())
		}
	}
	sortByID(results)
	return results, nil
}

func matches(record *Record, query string) bool {
	if strings.Contains(strings.ToLower(record.Name), query) {
		return true
	}
	for _, note := range record.Note {
		if strings.Contains(strings.ToLower(note.Data), query) {
			return true
		}
	}
	return false
}

func sortByID(list []Record) {
	sort.Slice(list, func(i, j int) bool {
		return list[i].ID < list[j].ID
	})
}
