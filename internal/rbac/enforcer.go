package rbac

import (
	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

// rbacModel grants ORG_ADMIN everything; other roles go through the
// role/resource/action policy table below.
const rbacModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == "ORG_ADMIN" || (g(r.sub, p.sub) && r.obj == p.obj && r.act == p.act)
`

// groupings collapse the three chief variants into one policy subject.
// Chiefs also inherit everything employees may do.
var groupings = [][]string{
	{"CHIEF_TEACHING", "CHIEF"},
	{"CHIEF_ADMIN_TECHNICAL", "CHIEF"},
	{"CHIEF_CONTRACT", "CHIEF"},
	{"CHIEF", "EMPLOYEE"},
	{"EMPLOYEE", "EMPLOYEE"},
}

// policies is the static action table for the closed role set. Row-level
// visibility is the scope resolver's job, not casbin's: a permitted action
// still only reaches rows inside the caller's scope.
var policies = [][]string{
	{"EMPLOYEE", "department", "read"},
	{"EMPLOYEE", "structure", "read"},
	{"EMPLOYEE", "person", "read"},
	{"EMPLOYEE", "staff", "read"},
	{"EMPLOYEE", "absence", "read"},
	{"EMPLOYEE", "absence", "create"},
	{"EMPLOYEE", "absence", "cancel"},
	{"EMPLOYEE", "payroll", "read"},
	{"EMPLOYEE", "document", "read"},
	{"EMPLOYEE", "document", "create"},
	{"EMPLOYEE", "secondment", "read"},
	{"EMPLOYEE", "recruitment", "read"},

	{"CHIEF", "person", "create"},
	{"CHIEF", "person", "update"},
	{"CHIEF", "person", "delete"},
	{"CHIEF", "staff", "update"},
	// Structure writes are open to chiefs; the structure service still
	// restricts them to the chief's own department.
	{"CHIEF", "structure", "create"},
	{"CHIEF", "structure", "update"},
	{"CHIEF", "structure", "delete"},
	{"CHIEF", "absence", "approve"},
	{"CHIEF", "payroll", "create"},
	{"CHIEF", "payroll", "update"},
	{"CHIEF", "document", "delete"},
	{"CHIEF", "secondment", "create"},
	{"CHIEF", "secondment", "update"},
	{"CHIEF", "recruitment", "create"},
	{"CHIEF", "recruitment", "update"},
	{"CHIEF", "candidate", "read"},
	{"CHIEF", "candidate", "update"},
	{"CHIEF", "candidate", "create"},
}

// NewEnforcer builds a synced enforcer preloaded with the static policy
// table. There is no runtime policy mutation.
func NewEnforcer() (*casbin.SyncedEnforcer, error) {
	m, err := model.NewModelFromString(rbacModel)
	if err != nil {
		return nil, err
	}

	e, err := casbin.NewSyncedEnforcer(m)
	if err != nil {
		return nil, err
	}

	for _, g := range groupings {
		if _, err := e.AddGroupingPolicy(g[0], g[1]); err != nil {
			return nil, err
		}
	}
	for _, p := range policies {
		if _, err := e.AddPolicy(p[0], p[1], p[2]); err != nil {
			return nil, err
		}
	}

	return e, nil
}
