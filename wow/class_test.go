package wow

import "testing"

func TestColorOf(t *testing.T) {
	if c := ColorOf("mage"); c != "#69CCF0" {
		t.Errorf(`ColorOf("mage") = %q`, c)
	}
	if c := ColorOf("gnomepuncher"); c != "#9D9D9D" {
		t.Errorf("unknown class color = %q, want the neutral grey", c)
	}
}

func TestRoleOrder(t *testing.T) {
	if !(RoleOrder[RoleTank] < RoleOrder[RoleHealer] && RoleOrder[RoleHealer] < RoleOrder[RoleDps]) {
		t.Errorf("role order = %v", RoleOrder)
	}
}
