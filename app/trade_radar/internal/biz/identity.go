package biz

// GuestUsername 匿名访问时使用的身份
const GuestUsername = "guest"

// Identity 请求方身份：已认证用户或匿名访客
type Identity struct {
	Username      string
	Authenticated bool
}

// Anonymous 返回匿名身份
func Anonymous() Identity {
	return Identity{Username: GuestUsername}
}

// AuthenticatedAs 返回已认证身份
func AuthenticatedAs(username string) Identity {
	return Identity{Username: username, Authenticated: true}
}

func (i Identity) String() string {
	if i.Authenticated {
		return i.Username
	}
	return GuestUsername + " (anonymous)"
}
