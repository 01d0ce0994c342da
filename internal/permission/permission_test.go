package permission

import (
	"testing"

	"github.com/landsuite/plot-erp/internal/domain"
)

func TestCan(t *testing.T) {
	t.Parallel()

	cases := []struct {
		role domain.Role
		cap  Capability
		want bool
	}{
		{domain.RoleOwner, DeleteEntity, true},
		{domain.RoleOwner, SettingsCRUD, true},
		{domain.RoleAdmin, EditRates, true},
		{domain.RoleDirector, HoldPlot, true},
		{domain.RoleDirector, SettingsCRUD, false},
		{domain.RolePM, ReReleasePlot, true},
		{domain.RolePM, EditRates, false},
		{domain.RoleSales, HoldPlot, true},
		{domain.RoleSales, ReReleasePlot, false},
		{domain.RoleSales, DeleteEntity, false},
		{domain.RoleCRM, BookPlot, true},
		{domain.RoleFinance, ReadOnly, true},
		{domain.RoleFinance, BookPlot, false},
		{domain.RoleLegal, VerifyDocs, true},
		{domain.RoleLegal, HoldPlot, false},
		{domain.RoleAuditor, ReadOnly, true},
		{domain.RoleAuditor, VerifyDocs, false},
		{domain.Role("ghost"), ReadOnly, false},
	}

	for _, tc := range cases {
		if got := Can(tc.role, tc.cap); got != tc.want {
			t.Errorf("Can(%s, %s) = %v, want %v", tc.role, tc.cap, got, tc.want)
		}
	}
}
