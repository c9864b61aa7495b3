package rbac

import (
	"errors"
	"fmt"
	"sync"

	"go-crm/internal/domain"

	"github.com/casbin/casbin/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=rbac_service.go -destination=mock/rbac_service_mock.go -package=mock
type Service interface {
	LoadCompanyPolicy(companyID string) error
	Enforce(req domain.EnforceRequest) (bool, error)

	ListRoles(companyID string) ([]domain.RoleResponse, error)
	GetRole(companyID, id string) (domain.RoleResponse, error)
	CreateRole(companyID string, req domain.CreateRoleRequest) (domain.RoleResponse, error)
	UpdateRole(companyID, id string, req domain.UpdateRoleRequest) (domain.RoleResponse, error)
	DeleteRole(companyID, id string) error
	ListPermissions() ([]domain.PermissionResponse, error)
}

type service struct {
	repo     Repository
	enforcer *casbin.Enforcer
	mu       sync.Mutex
	logger   *zap.Logger
}

func NewService(repo Repository, enforcer *casbin.Enforcer, logger ...*zap.Logger) Service {
	l := zap.L().Named("rbac.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rbac.service")
	}
	return &service{
		repo:     repo,
		enforcer: enforcer,
		logger:   l,
	}
}

func (s *service) LoadCompanyPolicy(companyID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.loadCompanyPolicyUnlocked(companyID)
}

// Policy selalu di-reload per enforce sehingga perubahan role/permission
// dari admin settings langsung berlaku tanpa restart.
func (s *service) loadCompanyPolicyUnlocked(companyID string) error {
	s.enforcer.ClearPolicy()

	employeeRoles, err := s.repo.GetEmployeeRoles(companyID)
	if err != nil {
		return err
	}

	for _, er := range employeeRoles {
		if _, err := s.enforcer.AddGroupingPolicy(er.EmployeeID, er.RoleID, companyID); err != nil {
			return err
		}
	}

	rolePerms, err := s.repo.GetRolePermissions(companyID)
	if err != nil {
		return err
	}

	for _, rp := range rolePerms {
		if _, err := s.enforcer.AddPolicy(rp.RoleID, companyID, rp.Resource, rp.Action); err != nil {
			return err
		}
	}

	s.logger.Debug("rbac policy loaded",
		zap.String("company_id", companyID),
		zap.Int("employee_roles", len(employeeRoles)),
		zap.Int("role_permissions", len(rolePerms)),
	)

	return nil
}

func (s *service) Enforce(req domain.EnforceRequest) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.loadCompanyPolicyUnlocked(req.CompanyID); err != nil {
		return false, err
	}

	allowed, err := s.enforcer.Enforce(
		req.EmployeeID,
		req.CompanyID,
		req.Resource,
		req.Action,
	)
	if err != nil {
		s.logger.Error("rbac enforce failed",
			zap.String("employee_id", req.EmployeeID),
			zap.String("company_id", req.CompanyID),
			zap.String("resource", req.Resource),
			zap.String("action", req.Action),
			zap.Error(err),
		)
		return false, err
	}

	s.logger.Debug("rbac enforce result",
		zap.String("employee_id", req.EmployeeID),
		zap.String("resource", req.Resource),
		zap.String("action", req.Action),
		zap.Bool("allowed", allowed),
	)

	return allowed, nil
}

func (s *service) ListRoles(companyID string) ([]domain.RoleResponse, error) {
	rows, err := s.repo.ListRoles(companyID)
	if err != nil {
		return nil, err
	}

	out := make([]domain.RoleResponse, 0, len(rows))
	for _, row := range rows {
		resp, err := s.roleToResponse(row)
		if err != nil {
			return nil, err
		}
		out = append(out, resp)
	}
	return out, nil
}

func (s *service) GetRole(companyID, id string) (domain.RoleResponse, error) {
	row, err := s.repo.GetRoleByID(id)
	if err != nil {
		return domain.RoleResponse{}, err
	}
	if row.CompanyID != companyID {
		return domain.RoleResponse{}, gorm.ErrRecordNotFound
	}
	return s.roleToResponse(*row)
}

func (s *service) CreateRole(companyID string, req domain.CreateRoleRequest) (domain.RoleResponse, error) {
	if existing, err := s.repo.GetRoleByName(companyID, req.Name); err == nil && existing != nil {
		return domain.RoleResponse{}, fmt.Errorf("role %q already exists", req.Name)
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.RoleResponse{}, err
	}

	row := &RoleRow{
		CompanyID:   companyID,
		Name:        req.Name,
		Description: req.Description,
	}
	if err := s.repo.CreateRole(row); err != nil {
		return domain.RoleResponse{}, err
	}

	if len(req.Permissions) > 0 {
		permIDs, err := s.resolvePermissionIDs(req.Permissions)
		if err != nil {
			return domain.RoleResponse{}, err
		}
		if err := s.repo.UpdateRolePermissions(row.ID, permIDs); err != nil {
			return domain.RoleResponse{}, err
		}
	}

	s.logger.Info("role created", zap.String("company_id", companyID), zap.String("role", req.Name))
	return s.roleToResponse(*row)
}

func (s *service) UpdateRole(companyID, id string, req domain.UpdateRoleRequest) (domain.RoleResponse, error) {
	row, err := s.repo.GetRoleByID(id)
	if err != nil {
		return domain.RoleResponse{}, err
	}
	if row.CompanyID != companyID {
		return domain.RoleResponse{}, gorm.ErrRecordNotFound
	}

	if req.Name != "" {
		row.Name = req.Name
	}
	if req.Description != "" {
		row.Description = req.Description
	}
	if err := s.repo.UpdateRole(row); err != nil {
		return domain.RoleResponse{}, err
	}

	if req.Permissions != nil {
		permIDs, err := s.resolvePermissionIDs(req.Permissions)
		if err != nil {
			return domain.RoleResponse{}, err
		}
		if err := s.repo.UpdateRolePermissions(row.ID, permIDs); err != nil {
			return domain.RoleResponse{}, err
		}
	}

	s.logger.Info("role updated", zap.String("role_id", id))
	return s.roleToResponse(*row)
}

func (s *service) DeleteRole(companyID, id string) error {
	row, err := s.repo.GetRoleByID(id)
	if err != nil {
		return err
	}
	if row.CompanyID != companyID {
		return gorm.ErrRecordNotFound
	}

	if err := s.repo.DeleteRole(id); err != nil {
		return err
	}

	s.logger.Info("role deleted", zap.String("role_id", id))
	return nil
}

func (s *service) ListPermissions() ([]domain.PermissionResponse, error) {
	rows, err := s.repo.ListPermissions()
	if err != nil {
		return nil, err
	}

	out := make([]domain.PermissionResponse, 0, len(rows))
	for _, p := range rows {
		out = append(out, domain.PermissionResponse{
			ID:       p.ID,
			Resource: p.Resource,
			Action:   p.Action,
			Label:    p.Label,
			Category: p.Category,
		})
	}
	return out, nil
}

func (s *service) roleToResponse(row RoleRow) (domain.RoleResponse, error) {
	perms, err := s.repo.GetPermissionsByRoleID(row.ID)
	if err != nil {
		return domain.RoleResponse{}, err
	}

	permStrings := make([]string, 0, len(perms))
	for _, p := range perms {
		permStrings = append(permStrings, p.Resource+":"+p.Action)
	}

	return domain.RoleResponse{
		ID:          row.ID,
		Name:        row.Name,
		Description: row.Description,
		Permissions: permStrings,
	}, nil
}

// resolvePermissionIDs menerjemahkan permission string "resource:action"
// menjadi id baris di tabel permissions. String yang tidak dikenal ditolak.
func (s *service) resolvePermissionIDs(permStrings []string) ([]string, error) {
	all, err := s.repo.ListPermissions()
	if err != nil {
		return nil, err
	}

	byName := make(map[string]string, len(all))
	for _, p := range all {
		byName[p.Resource+":"+p.Action] = p.ID
	}

	ids := make([]string, 0, len(permStrings))
	for _, ps := range permStrings {
		id, ok := byName[ps]
		if !ok {
			return nil, fmt.Errorf("unknown permission %q", ps)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
