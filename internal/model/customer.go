package model

// Customer is an optional buyer reference attached to a sale. Kept light:
// the POS only needs enough identity to look the customer up at checkout.
type Customer struct {
	BaseModel
	FullName string `gorm:"type:varchar(150);not null" json:"full_name" validate:"required"`
	Document string `gorm:"type:varchar(20);uniqueIndex;not null" json:"document" validate:"required"`
	Phone    string `gorm:"type:varchar(30)" json:"phone"`
}
