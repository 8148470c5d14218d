package infra

import (
	"go-hrms/internal/domain"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

// ModelText is a plain ACL keyed on role names.
const ModelText = `[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && r.obj == p.obj && r.act == p.act
`

// NewEnforcer builds an in-memory enforcer seeded with permissions.
func NewEnforcer(permissions []domain.Permission) (*casbin.SyncedEnforcer, error) {
	m, err := model.NewModelFromString(ModelText)
	if err != nil {
		return nil, err
	}

	e, err := casbin.NewSyncedEnforcer(m)
	if err != nil {
		return nil, err
	}

	rules := make([][]string, 0, len(permissions))
	for _, p := range permissions {
		rules = append(rules, []string{string(p.Role), p.Resource, p.Action})
	}
	if len(rules) > 0 {
		if _, err := e.AddPolicies(rules); err != nil {
			return nil, err
		}
	}

	return e, nil
}
