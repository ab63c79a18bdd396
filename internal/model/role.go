package model

// Role 用户角色（封闭枚举，非法值在绑定层即被拒绝）
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleManager  Role = "manager"
	RoleEmployee Role = "employee"
)

// Valid 角色值是否合法
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleEmployee:
		return true
	}
	return false
}

// CanManage admin 与 manager 可审批请假、管理班次、查看全部记录
func (r Role) CanManage() bool {
	return r == RoleAdmin || r == RoleManager
}
