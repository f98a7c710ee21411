package models

type UserRole string
type PropertyStatus string
type PropertyCategory string
type TestimonialStatus string
type TestimonialType string

const (
	UserRoleUser  UserRole = "user"
	UserRoleAgent UserRole = "agent"
	UserRoleAdmin UserRole = "admin"

	PropertyStatusPending   PropertyStatus = "pending"
	PropertyStatusAvailable PropertyStatus = "available"
	PropertyStatusRented    PropertyStatus = "rented"
	PropertyStatusSold      PropertyStatus = "sold"
	PropertyStatusInactive  PropertyStatus = "inactive"

	PropertyCategorySale    PropertyCategory = "sale"
	PropertyCategoryRent    PropertyCategory = "rent"
	PropertyCategoryStudent PropertyCategory = "student"

	TestimonialStatusPending  TestimonialStatus = "pending"
	TestimonialStatusApproved TestimonialStatus = "approved"
	TestimonialStatusRejected TestimonialStatus = "rejected"

	TestimonialTypeProperty TestimonialType = "property"
	TestimonialTypeAgency   TestimonialType = "agency"
)

// statusTranslations maps status values to their Arabic display text.
// Property types are stored already localized, only statuses need mapping.
var statusTranslations = map[PropertyStatus]string{
	PropertyStatusAvailable: "متاح",
	PropertyStatusRented:    "مؤجر",
	PropertyStatusSold:      "مباع",
	PropertyStatusPending:   "قيد المراجعة",
	PropertyStatusInactive:  "غير نشط",
}

// TranslateStatus returns the Arabic display text for a property status,
// falling back to the raw value for unknown statuses.
func TranslateStatus(status PropertyStatus) string {
	if t, ok := statusTranslations[status]; ok {
		return t
	}
	return string(status)
}

func (c PropertyCategory) Valid() bool {
	switch c {
	case PropertyCategorySale, PropertyCategoryRent, PropertyCategoryStudent:
		return true
	}
	return false
}
