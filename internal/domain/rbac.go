package domain

type EnforceRequest struct {
	Role     Role
	Resource string
	Action   string
}

// Permission grants Role the Action on Resource.
type Permission struct {
	Role     Role
	Resource string
	Action   string
}

func (p Permission) Key() string {
	return p.Resource + ":" + p.Action
}
