package rbac_test

import (
	"testing"

	"go-sirh/internal/rbac"

	"github.com/stretchr/testify/assert"
)

func TestNewEnforcer_Policy(t *testing.T) {
	e, err := rbac.NewEnforcer()
	assert.NoError(t, err)

	cases := []struct {
		name    string
		sub     string
		obj     string
		act     string
		allowed bool
	}{
		{"admin passes everything", "ORG_ADMIN", "payroll", "create", true},
		{"admin passes unknown actions too", "ORG_ADMIN", "account", "delete", true},

		// Chiefs manage payroll through the same actions the routes request.
		{"chief creates payroll", "CHIEF_TEACHING", "payroll", "create", true},
		{"chief updates payroll", "CHIEF_CONTRACT", "payroll", "update", true},

		{"chief upserts staff", "CHIEF_ADMIN_TECHNICAL", "staff", "update", true},
		{"chief builds structures", "CHIEF_TEACHING", "structure", "create", true},
		{"chief reshapes structures", "CHIEF_TEACHING", "structure", "update", true},
		{"chief removes structures", "CHIEF_CONTRACT", "structure", "delete", true},
		{"chief decides absences", "CHIEF_TEACHING", "absence", "approve", true},

		// Chiefs inherit the employee grants.
		{"chief reads payroll", "CHIEF_TEACHING", "payroll", "read", true},
		{"chief files an absence", "CHIEF_CONTRACT", "absence", "create", true},

		{"employee reads own slice", "EMPLOYEE", "person", "read", true},
		{"employee cannot create persons", "EMPLOYEE", "person", "create", false},
		{"employee cannot decide absences", "EMPLOYEE", "absence", "approve", false},
		{"employee cannot touch payroll writes", "EMPLOYEE", "payroll", "create", false},
		{"employee cannot build structures", "EMPLOYEE", "structure", "create", false},

		{"unknown role gets nothing", "VISITOR", "person", "read", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ok, err := e.Enforce(tc.sub, tc.obj, tc.act)
			assert.NoError(t, err)
			assert.Equal(t, tc.allowed, ok)
		})
	}
}
