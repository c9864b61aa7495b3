package rbac

import "gorm.io/gorm"

// Katalog permission dashboard. Dikelompokkan per kategori supaya
// halaman admin bisa merendernya per seksi.
var defaultPermissions = []PermissionRow{
	{Resource: "employee", Action: "read", Label: "View employees", Category: "Employees"},
	{Resource: "employee", Action: "create", Label: "Add employees", Category: "Employees"},
	{Resource: "employee", Action: "update", Label: "Edit employees", Category: "Employees"},
	{Resource: "employee", Action: "delete", Label: "Remove employees", Category: "Employees"},
	{Resource: "employee", Action: "export", Label: "Export employees", Category: "Employees"},

	{Resource: "lead", Action: "read", Label: "View leads", Category: "Leads"},
	{Resource: "lead", Action: "create", Label: "Add leads", Category: "Leads"},
	{Resource: "lead", Action: "update", Label: "Edit leads", Category: "Leads"},
	{Resource: "lead", Action: "delete", Label: "Remove leads", Category: "Leads"},
	{Resource: "lead", Action: "score", Label: "Run lead scoring", Category: "Leads"},
	{Resource: "lead", Action: "merge", Label: "Merge duplicate leads", Category: "Leads"},
	{Resource: "lead", Action: "export", Label: "Export leads", Category: "Leads"},

	{Resource: "attendance", Action: "read", Label: "View attendance", Category: "Attendance"},
	{Resource: "attendance", Action: "create", Label: "Check in / out", Category: "Attendance"},

	{Resource: "task", Action: "read", Label: "View tasks", Category: "Tasks"},
	{Resource: "task", Action: "create", Label: "Add tasks", Category: "Tasks"},
	{Resource: "task", Action: "update", Label: "Edit tasks", Category: "Tasks"},
	{Resource: "task", Action: "delete", Label: "Remove tasks", Category: "Tasks"},

	{Resource: "document", Action: "read", Label: "View documents", Category: "Documents"},
	{Resource: "document", Action: "manage", Label: "Manage documents", Category: "Documents"},

	{Resource: "note", Action: "read", Label: "View admin notes", Category: "Admin"},
	{Resource: "note", Action: "manage", Label: "Manage admin notes", Category: "Admin"},
	{Resource: "settings", Action: "read", Label: "View settings", Category: "Admin"},
	{Resource: "settings", Action: "manage", Label: "Manage settings", Category: "Admin"},
	{Resource: "role", Action: "read", Label: "View roles", Category: "Admin"},
	{Resource: "role", Action: "manage", Label: "Manage roles", Category: "Admin"},
}

// Bundle role bawaan. Dibuat sekali per company saat seed.
var defaultRoleBundles = map[string][]string{
	"Admin": nil, // nil berarti semua permission
	"HR": {
		"employee:read", "employee:create", "employee:update", "employee:delete", "employee:export",
		"attendance:read", "attendance:create",
		"document:read", "document:manage",
		"task:read", "task:create", "task:update",
		"note:read", "settings:read",
	},
	"Sales": {
		"lead:read", "lead:create", "lead:update", "lead:score", "lead:merge", "lead:export",
		"task:read", "task:create", "task:update",
		"attendance:create", "attendance:read", "settings:read",
	},
	"Viewer": {
		"employee:read", "lead:read", "task:read", "attendance:read", "document:read",
		"settings:read",
	},
}

// SeedDefaults memastikan katalog permission terisi dan company punya
// role bundle bawaan. Idempotent: baris yang sudah ada tidak disentuh.
func SeedDefaults(db *gorm.DB, companyID string) error {
	repo := NewRepository(db)

	for _, p := range defaultPermissions {
		var count int64
		if err := db.Table("permissions").
			Where("resource = ? AND action = ?", p.Resource, p.Action).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			row := p
			if err := db.Create(&row).Error; err != nil {
				return err
			}
		}
	}

	all, err := repo.ListPermissions()
	if err != nil {
		return err
	}
	byName := make(map[string]string, len(all))
	allIDs := make([]string, 0, len(all))
	for _, p := range all {
		byName[p.Resource+":"+p.Action] = p.ID
		allIDs = append(allIDs, p.ID)
	}

	for name, bundle := range defaultRoleBundles {
		if _, err := repo.GetRoleByName(companyID, name); err == nil {
			continue
		} else if err != gorm.ErrRecordNotFound {
			return err
		}

		role := &RoleRow{
			CompanyID:   companyID,
			Name:        name,
			Description: "Default " + name + " role",
		}
		if err := repo.CreateRole(role); err != nil {
			return err
		}

		ids := allIDs
		if bundle != nil {
			ids = make([]string, 0, len(bundle))
			for _, ps := range bundle {
				if id, ok := byName[ps]; ok {
					ids = append(ids, id)
				}
			}
		}
		if err := repo.UpdateRolePermissions(role.ID, ids); err != nil {
			return err
		}
	}

	return nil
}
