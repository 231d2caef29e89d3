package importer

// ImportRequest carries the parameters of a partner feed import
type ImportRequest struct {
	URL string `json:"url" binding:"required,url"`
}

// ImportSummary reports what one feed reconciliation touched
type ImportSummary struct {
	Shop              string `json:"shop"`
	ShopCreated       bool   `json:"shop_created"`
	CategoriesCreated int    `json:"categories_created"`
	CategoriesSeen    int    `json:"categories_seen"`
	ProductsCreated   int    `json:"products_created"`
	ListingsCreated   int    `json:"listings_created"`
	ListingsUpdated   int    `json:"listings_updated"`
	ParametersWritten int    `json:"parameters_written"`
}
