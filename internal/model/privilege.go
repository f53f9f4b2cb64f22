package model

// Privilege represents a permission that can be assigned to users
type Privilege struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Code string `gorm:"type:varchar(50);uniqueIndex;not null" json:"code"` // e.g., "product:create"
	Name string `gorm:"type:varchar(100)" json:"name"`                     // e.g., "Create Product"
}

// Default privileges for the system
var DefaultPrivileges = []Privilege{
	// User management
	{Code: "user:view", Name: "View User"},
	{Code: "user:create", Name: "Create User"},
	{Code: "user:update", Name: "Update User"},
	{Code: "user:delete", Name: "Delete User"},
	{Code: "user:update_privilege", Name: "Update User Privileges"},
	// Catalog management
	{Code: "product:view", Name: "View Product"},
	{Code: "product:create", Name: "Create Product"},
	{Code: "product:update", Name: "Update Product"},
	{Code: "product:delete", Name: "Delete Product"},
	{Code: "catalog:manage", Name: "Manage Categories, Brands and Units"},
	// Stock batches
	{Code: "batch:view", Name: "View Batch"},
	{Code: "batch:create", Name: "Receive Batch"},
	{Code: "batch:delete", Name: "Delete Batch"},
	// Point of sale
	{Code: "sale:view", Name: "View Sale"},
	{Code: "sale:create", Name: "Register Sale"},
	// Cash register closings
	{Code: "closing:view", Name: "View Cash Closing"},
	{Code: "closing:create", Name: "Perform Cash Closing"},
	// Finance
	{Code: "expense:view", Name: "View Expense"},
	{Code: "expense:create", Name: "Record Expense"},
	// Dashboard & reports
	{Code: "dashboard:view", Name: "View Dashboard"},
	{Code: "report:export", Name: "Export Reports"},
}
