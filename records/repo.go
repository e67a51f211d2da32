package records

// Repo stores records. Implementations must be safe for concurrent use.
type Repo interface {
	Create(record Record) (Record, error)
	Get(id string) (Record, error)
	List() ([]Record, error)
	Update(id string, update Update) (Record, error)
	Delete(id string) error
	Search(query string) ([]Record, error)
}
