// Package permission holds the static role-to-capability table. Every
// mutating operation consults it; the table itself never changes at
// runtime.
package permission

import "github.com/landsuite/plot-erp/internal/domain"

// Capability is a named thing a role is allowed to do.
type Capability string

const (
	ReadOnly      Capability = "read_only"
	SettingsCRUD  Capability = "settings_crud"
	HoldPlot      Capability = "hold_plot"
	BookPlot      Capability = "book_plot"
	ReReleasePlot Capability = "re_release_plot"
	EditRates     Capability = "edit_rates"
	VerifyDocs    Capability = "verify_docs"
	DeleteEntity  Capability = "delete_entity"
)

var allCapabilities = []Capability{
	ReadOnly, SettingsCRUD, HoldPlot, BookPlot,
	ReReleasePlot, EditRates, VerifyDocs, DeleteEntity,
}

// rolePermissions is the authoritative matrix. Unknown roles map to no
// capabilities at all.
var rolePermissions = map[domain.Role][]Capability{
	domain.RoleOwner:    allCapabilities,
	domain.RoleAdmin:    allCapabilities,
	domain.RoleDirector: {ReadOnly, ReReleasePlot, BookPlot, HoldPlot, VerifyDocs},
	domain.RolePM:       {ReadOnly, ReReleasePlot, BookPlot, HoldPlot, VerifyDocs},
	domain.RoleSales:    {ReadOnly, HoldPlot, BookPlot},
	domain.RoleCRM:      {ReadOnly, HoldPlot, BookPlot},
	domain.RoleFinance:  {ReadOnly},
	domain.RoleLegal:    {ReadOnly, VerifyDocs},
	domain.RoleAuditor:  {ReadOnly},
}

// Can reports whether the role holds the capability.
func Can(role domain.Role, cap Capability) bool {
	for _, c := range rolePermissions[role] {
		if c == cap {
			return true
		}
	}
	return false
}
