package enums

import "fmt"

// ProductCategory is the fixed set of catalog categories.
type ProductCategory string

const (
	ProductCategorySkincare ProductCategory = "Skincare"
	ProductCategoryMakeup   ProductCategory = "Makeup"
	ProductCategoryParfum   ProductCategory = "Parfum"
	ProductCategoryOther    ProductCategory = "Lainnya"
)

var validProductCategories = []ProductCategory{
	ProductCategorySkincare,
	ProductCategoryMakeup,
	ProductCategoryParfum,
	ProductCategoryOther,
}

// String implements fmt.Stringer.
func (p ProductCategory) String() string {
	return string(p)
}

// IsValid reports whether the value is a known ProductCategory.
func (p ProductCategory) IsValid() bool {
	for _, candidate := range validProductCategories {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParseProductCategory converts raw input into a ProductCategory.
func ParseProductCategory(value string) (ProductCategory, error) {
	for _, candidate := range validProductCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid product category %q", value)
}
