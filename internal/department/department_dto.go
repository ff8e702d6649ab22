package department

type CreateDepartmentRequest struct {
	Name        string `json:"name" binding:"required"`
	Kind        string `json:"kind" binding:"required,oneof=TEACHING ADMIN_TECHNICAL CONTRACT"`
	Description string `json:"description"`
}

type UpdateDepartmentRequest struct {
	Name        string `json:"name" binding:"required"`
	Kind        string `json:"kind" binding:"required,oneof=TEACHING ADMIN_TECHNICAL CONTRACT"`
	Description string `json:"description"`
}

type AssignChiefRequest struct {
	ChiefID string `json:"chief_id" binding:"required,uuid"`
}

type DepartmentResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Kind        string  `json:"kind"`
	ChiefID     *string `json:"chief_id,omitempty"`
	Description string  `json:"description"`
}
