package scope

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Access is the resolved visibility of a principal. Exactly one of the
// three shapes applies: everything (All), one department (DepartmentID),
// or one person's own rows (PersonID). The zero value is an empty scope.
type Access struct {
	All          bool
	DepartmentID *uuid.UUID
	PersonID     *uuid.UUID
}

func (a Access) Empty() bool {
	return !a.All && a.DepartmentID == nil && a.PersonID == nil
}

// none is the always-false predicate used for empty scopes. Out-of-scope
// rows are indistinguishable from missing rows on purpose.
func none(db *gorm.DB) *gorm.DB {
	return db.Where("1 = 0")
}

// Persons scopes queries on the persons table.
func Persons(a Access) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		switch {
		case a.All:
			return db
		case a.DepartmentID != nil:
			return db.Where("persons.department_id = ?", *a.DepartmentID)
		case a.PersonID != nil:
			return db.Where("persons.id = ?", *a.PersonID)
		default:
			return none(db)
		}
	}
}

// OwnedByPerson scopes any table with a person_id column (absences,
// payrolls, documents, staff specializations).
func OwnedByPerson(a Access) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		switch {
		case a.All:
			return db
		case a.DepartmentID != nil:
			return db.Where(
				"person_id IN (SELECT id FROM persons WHERE department_id = ?)",
				*a.DepartmentID,
			)
		case a.PersonID != nil:
			return db.Where("person_id = ?", *a.PersonID)
		default:
			return none(db)
		}
	}
}

// Secondments match a chief's department through any of three relations:
// the origin structure, the destination structure, or the person moved.
func Secondments(a Access) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		switch {
		case a.All:
			return db
		case a.DepartmentID != nil:
			return db.Where(
				`origin_structure_id IN (SELECT id FROM structures WHERE department_id = @dept)
					OR destination_structure_id IN (SELECT id FROM structures WHERE department_id = @dept)
					OR person_id IN (SELECT id FROM persons WHERE department_id = @dept)`,
				map[string]any{"dept": *a.DepartmentID},
			)
		case a.PersonID != nil:
			return db.Where("person_id = ?", *a.PersonID)
		default:
			return none(db)
		}
	}
}

// Recruitments are department-owned. Employees are widened to the
// recruitments of their own department.
func Recruitments(a Access) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		switch {
		case a.All:
			return db
		case a.DepartmentID != nil:
			return db.Where("department_id = ?", *a.DepartmentID)
		case a.PersonID != nil:
			return db.Where(
				"department_id IN (SELECT department_id FROM persons WHERE id = ?)",
				*a.PersonID,
			)
		default:
			return none(db)
		}
	}
}

// Candidates follow their recruitment's department. Employees see none.
func Candidates(a Access) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		switch {
		case a.All:
			return db
		case a.DepartmentID != nil:
			return db.Where(
				"recruitment_id IN (SELECT id FROM recruitments WHERE department_id = ?)",
				*a.DepartmentID,
			)
		default:
			return none(db)
		}
	}
}

// Structures are department-owned; employees see their own department's.
func Structures(a Access) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		switch {
		case a.All:
			return db
		case a.DepartmentID != nil:
			return db.Where("department_id = ?", *a.DepartmentID)
		case a.PersonID != nil:
			return db.Where(
				"department_id IN (SELECT department_id FROM persons WHERE id = ?)",
				*a.PersonID,
			)
		default:
			return none(db)
		}
	}
}
