package rbac

const (
	RoleLearner = "learner"
	RoleAdmin   = "admin"
)

// RolePermissions is the default policy.
var RolePermissions = map[string][]string{
	RoleLearner: {
		"exam:view",
		"exam:validate",
		"result:submit",
		"result:view-own",
		"leaderboard:view",
	},
	RoleAdmin: {
		"*",
	},
}
