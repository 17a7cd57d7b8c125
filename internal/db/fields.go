package db

// Product hash field names shared by the index schema, the filter builder,
// and the repository DTOs.
const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldCategory    = "category"
	FieldBrand       = "brand"
	FieldPrice       = "price"
	FieldRating      = "rating"
	FieldReviewCount = "review_count"
	FieldInStock     = "in_stock"
	FieldTags        = "tags"
	FieldVector      = "__vector"
	FieldVectorScore = "__vector_score"
)

// TagsSeparator splits the tags TAG field in product hashes.
const TagsSeparator = ","

// InStockTrue and InStockFalse are the stored values of the in_stock TAG field.
const (
	InStockTrue  = "1"
	InStockFalse = "0"
)
