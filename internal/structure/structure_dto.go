package structure

type CreateStructureRequest struct {
	Name          string  `json:"name" binding:"required"`
	Type          string  `json:"type" binding:"required"`
	Description   string  `json:"description"`
	ParentID      *string `json:"parent_id" binding:"omitempty,uuid"`
	ResponsibleID *string `json:"responsible_id" binding:"omitempty,uuid"`
	DepartmentID  string  `json:"department_id" binding:"required,uuid"`
}

type UpdateStructureRequest struct {
	Name          string  `json:"name" binding:"required"`
	Type          string  `json:"type" binding:"required"`
	Description   string  `json:"description"`
	ParentID      *string `json:"parent_id" binding:"omitempty,uuid"`
	ResponsibleID *string `json:"responsible_id" binding:"omitempty,uuid"`
}

type StructureResponse struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Type          string  `json:"type"`
	Description   string  `json:"description"`
	ParentID      *string `json:"parent_id,omitempty"`
	ResponsibleID *string `json:"responsible_id,omitempty"`
	DepartmentID  string  `json:"department_id"`
}

// StructureTreeNode is the recursive shape returned by the tree endpoint.
type StructureTreeNode struct {
	StructureResponse
	Children []StructureTreeNode `json:"children"`
}

// StructureEmployee is the projection of a person assigned to a structure.
type StructureEmployee struct {
	ID             string `json:"id"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	EmployeeNumber string `json:"employee_number"`
	Function       string `json:"function,omitempty"`
	EmploymentKind string `json:"employment_kind"`
}
