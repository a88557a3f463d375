package domain

import (
	"time"

	"github.com/google/uuid"
)

// Category is a user-owned transaction category.
type Category struct {
	ID        uuid.UUID       `json:"id"`
	UserID    uuid.UUID       `json:"userId"`
	Name      string          `json:"name"`
	Icon      string          `json:"icon"`
	Color     string          `json:"color"`
	Type      TransactionType `json:"type"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// GlobalCategory is a shared, read-only category available to every user.
type GlobalCategory struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	Icon      string          `json:"icon"`
	Color     string          `json:"color"`
	Type      TransactionType `json:"type"`
	CreatedAt time.Time       `json:"createdAt"`
}

// CategoryRepository defines persistence operations for user categories.
// GetAllByUser returns rows ordered by type descending then name ascending,
// so income categories list before expense ones.
type CategoryRepository interface {
	Create(category *Category) (*Category, error)
	GetByID(userID, id uuid.UUID) (*Category, error)
	GetAllByUser(userID uuid.UUID) ([]*Category, error)
	Delete(userID, id uuid.UUID) error
	HasTransactions(userID, id uuid.UUID) (bool, error)
}

// GlobalCategoryRepository provides read access to the shared categories.
type GlobalCategoryRepository interface {
	GetAll() ([]*GlobalCategory, error)
	GetByID(id uuid.UUID) (*GlobalCategory, error)
}

// BuildCategoryIndex merges global and user categories into a snapshot
// lookup by ID. Globals are inserted first so that a user category sharing
// an ID wins; this is the single canonical resolution order for every
// consumer (transaction lists, dashboard, search).
func BuildCategoryIndex(globals []*GlobalCategory, userCats []*Category) map[uuid.UUID]CategorySnapshot {
	index := make(map[uuid.UUID]CategorySnapshot, len(globals)+len(userCats))
	for _, g := range globals {
		index[g.ID] = CategorySnapshot{Name: g.Name, Icon: g.Icon, Color: g.Color}
	}
	for _, c := range userCats {
		index[c.ID] = CategorySnapshot{Name: c.Name, Icon: c.Icon, Color: c.Color}
	}
	return index
}

// AttachCategories sets each transaction's Category from the index.
// Transactions whose category is in neither set keep a nil Category.
func AttachCategories(transactions []*Transaction, index map[uuid.UUID]CategorySnapshot) {
	for _, t := range transactions {
		if snap, ok := index[t.CategoryID]; ok {
			s := snap
			t.Category = &s
		} else {
			t.Category = nil
		}
	}
}
