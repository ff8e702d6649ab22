package person

import (
	"time"

	"github.com/google/uuid"
)

type CreatePersonRequest struct {
	FirstName     string `json:"first_name" binding:"required,min=2,max=100"`
	LastName      string `json:"last_name" binding:"required,min=2,max=100"`
	BirthDate     string `json:"birth_date" binding:"required"`
	BirthPlace    string `json:"birth_place" binding:"omitempty,max=100"`
	NationalID    string `json:"national_id" binding:"required,len=10,numeric"`
	Nationality   string `json:"nationality" binding:"omitempty,max=100"`
	Gender        string `json:"gender" binding:"required,oneof=MALE FEMALE"`
	MaritalStatus string `json:"marital_status" binding:"omitempty,max=50"`
	Address       string `json:"address" binding:"omitempty"`
	FatherName    string `json:"father_name" binding:"omitempty,max=100"`

	LastDiploma    string `json:"last_diploma" binding:"omitempty,max=200"`
	DiplomaCountry string `json:"diploma_country" binding:"omitempty,max=100"`
	DiplomaYear    int    `json:"diploma_year" binding:"omitempty,min=1950,max=2100"`
	Specialty      string `json:"specialty" binding:"omitempty,max=200"`

	Function       string `json:"function" binding:"omitempty,max=100"`
	EmploymentKind string `json:"employment_kind" binding:"required,oneof=TEACHING ADMIN_TECHNICAL CONTRACT"`
	HireDate       string `json:"hire_date" binding:"required"`

	DepartmentID uuid.UUID  `json:"department_id" binding:"required"`
	StructureID  *uuid.UUID `json:"structure_id" binding:"omitempty"`
	ManagerID    *uuid.UUID `json:"manager_id" binding:"omitempty"`
}

type UpdatePersonRequest struct {
	FirstName     *string `json:"first_name" binding:"omitempty,min=2,max=100"`
	LastName      *string `json:"last_name" binding:"omitempty,min=2,max=100"`
	BirthPlace    *string `json:"birth_place" binding:"omitempty,max=100"`
	Nationality   *string `json:"nationality" binding:"omitempty,max=100"`
	MaritalStatus *string `json:"marital_status" binding:"omitempty,max=50"`
	Address       *string `json:"address" binding:"omitempty"`
	FatherName    *string `json:"father_name" binding:"omitempty,max=100"`

	LastDiploma    *string `json:"last_diploma" binding:"omitempty,max=200"`
	DiplomaCountry *string `json:"diploma_country" binding:"omitempty,max=100"`
	DiplomaYear    *int    `json:"diploma_year" binding:"omitempty,min=1950,max=2100"`
	Specialty      *string `json:"specialty" binding:"omitempty,max=200"`

	Function       *string `json:"function" binding:"omitempty,max=100"`
	EmploymentKind *string `json:"employment_kind" binding:"omitempty,oneof=TEACHING ADMIN_TECHNICAL CONTRACT"`

	DepartmentID *uuid.UUID `json:"department_id" binding:"omitempty"`
	StructureID  *uuid.UUID `json:"structure_id" binding:"omitempty"`
	ManagerID    *uuid.UUID `json:"manager_id" binding:"omitempty"`
	Active       *bool      `json:"active" binding:"omitempty"`
}

type PersonFilter struct {
	DepartmentID   *uuid.UUID `form:"department_id"`
	StructureID    *uuid.UUID `form:"structure_id"`
	EmploymentKind string     `form:"employment_kind" binding:"omitempty,oneof=TEACHING ADMIN_TECHNICAL CONTRACT"`
	Active         *bool      `form:"active"`
	Search         string     `form:"search" binding:"omitempty,max=100"`
	Page           int        `form:"page,default=1" binding:"omitempty,min=1"`
	Limit          int        `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
}

type PersonResponse struct {
	ID             uuid.UUID  `json:"id"`
	FirstName      string     `json:"first_name"`
	LastName       string     `json:"last_name"`
	BirthDate      string     `json:"birth_date"`
	BirthPlace     string     `json:"birth_place,omitempty"`
	NationalID     string     `json:"national_id"`
	Nationality    string     `json:"nationality,omitempty"`
	Gender         string     `json:"gender"`
	MaritalStatus  string     `json:"marital_status,omitempty"`
	Address        string     `json:"address,omitempty"`
	FatherName     string     `json:"father_name,omitempty"`
	LastDiploma    string     `json:"last_diploma,omitempty"`
	DiplomaCountry string     `json:"diploma_country,omitempty"`
	DiplomaYear    int        `json:"diploma_year,omitempty"`
	Specialty      string     `json:"specialty,omitempty"`
	Function       string     `json:"function,omitempty"`
	EmploymentKind string     `json:"employment_kind"`
	EmployeeNumber string     `json:"employee_number"`
	HireDate       string     `json:"hire_date"`
	DepartmentID   uuid.UUID  `json:"department_id"`
	StructureID    *uuid.UUID `json:"structure_id,omitempty"`
	ManagerID      *uuid.UUID `json:"manager_id,omitempty"`
	Active         bool       `json:"active"`
	CreatedAt      time.Time  `json:"created_at"`
}

type GroupCount struct {
	Value string `json:"value"`
	Count int64  `json:"count"`
}

type PersonStatistics struct {
	Total         int64        `json:"total"`
	ByGender      []GroupCount `json:"by_gender"`
	ByNationality []GroupCount `json:"by_nationality"`
}

func ToPersonResponse(p *Person) PersonResponse {
	return PersonResponse{
		ID:             p.ID,
		FirstName:      p.FirstName,
		LastName:       p.LastName,
		BirthDate:      p.BirthDate.Format("2006-01-02"),
		BirthPlace:     p.BirthPlace,
		NationalID:     p.NationalID,
		Nationality:    p.Nationality,
		Gender:         p.Gender,
		MaritalStatus:  p.MaritalStatus,
		Address:        p.Address,
		FatherName:     p.FatherName,
		LastDiploma:    p.LastDiploma,
		DiplomaCountry: p.DiplomaCountry,
		DiplomaYear:    p.DiplomaYear,
		Specialty:      p.Specialty,
		Function:       p.Function,
		EmploymentKind: p.EmploymentKind,
		EmployeeNumber: p.EmployeeNumber,
		HireDate:       p.HireDate.Format("2006-01-02"),
		DepartmentID:   p.DepartmentID,
		StructureID:    p.StructureID,
		ManagerID:      p.ManagerID,
		Active:         p.Active,
		CreatedAt:      p.CreatedAt,
	}
}

func ToPersonResponseList(persons []Person) []PersonResponse {
	out := make([]PersonResponse, 0, len(persons))
	for i := range persons {
		out = append(out, ToPersonResponse(&persons[i]))
	}
	return out
}
