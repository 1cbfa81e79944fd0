package rbac

import "testing"

func TestCheckerHas(t *testing.T) {
	c := NewChecker(nil)

	if !c.Has("student", "submission:create") {
		t.Error("student should create submissions")
	}
	if c.Has("student", "students:list") {
		t.Error("student must not list students")
	}
	if !c.Has("admin", "students:list") {
		t.Error("admin wildcard should cover everything")
	}
	if c.Has("ghost", "instruments:view") {
		t.Error("unknown role has no permissions")
	}
}

func TestCheckerPrefixPattern(t *testing.T) {
	c := NewChecker(map[string][]string{"helper": {"questions:*"}})
	if !c.Has("helper", "questions:view") {
		t.Error("prefix pattern should match")
	}
	if c.Has("helper", "students:list") {
		t.Error("prefix pattern must not over-match")
	}
}

func TestCheckerAny(t *testing.T) {
	c := NewChecker(nil)
	if !c.Any("student", "students:list", "results:view-own") {
		t.Error("Any should pass when one permission matches")
	}
	if c.Any("student", "students:list", "students:delete") {
		t.Error("Any should fail when none match")
	}
}
