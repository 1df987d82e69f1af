package repositories

// AttrRepository is the shared data-access contract for the two owned
// named-entity collections, tags and ingredients. Both are structurally
// identical, so one generic GORM implementation serves them.
type AttrRepository[T any] interface {
	Create(attr *T) error
	ListForUser(userID uint, assignedOnly bool) ([]T, error)
	GetByIDs(ids []uint) ([]T, error)
}
