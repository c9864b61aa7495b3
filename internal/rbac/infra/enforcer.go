package infra

import "github.com/casbin/casbin/v2"

// NewEnforcer memuat model RBAC tanpa policy file; policy diisi per
// company dari database lewat rbac.Service.LoadCompanyPolicy.
func NewEnforcer(modelPath string) (*casbin.Enforcer, error) {
	return casbin.NewEnforcer(modelPath)
}
