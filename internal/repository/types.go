package repository

// ProductListFilter filters product list queries.
type ProductListFilter struct {
	Page         int
	PageSize     int
	CategoryID   string
	Search       string
	OnlyActive   bool
	WithCategory bool
	WithVariants bool
}

// OrderListFilter filters order list queries. SortBy accepts the column
// aliases understood by sortColumn; SortDesc picks the direction.
type OrderListFilter struct {
	Page     int
	PageSize int
	UserID   uint
	Status   string
	Search   string // matches order no or shipping address fields
	SortBy   string
	SortDesc bool
}

// ReviewListFilter filters review list queries.
type ReviewListFilter struct {
	Page      int
	PageSize  int
	ProductID uint
	UserID    uint
}
