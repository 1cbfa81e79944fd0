package rbac

// Default role policy. Students take tests and see their own results;
// admins manage everything.
var RolePermissions = map[string][]string{
	"student": {
		"instruments:view",
		"questions:view",
		"submission:create",
		"results:view-own",
		"user:change_password",
	},
	"admin": {
		"*", // everything
	},
}
