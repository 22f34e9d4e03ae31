package domain

// Identity is an authenticated operator established by bearer verification.
// The zero value means anonymous.
type Identity struct {
	ID       string
	Username string
}

// Anonymous reports whether the identity carries no authenticated operator.
func (i Identity) Anonymous() bool {
	return i.Username == ""
}

// Actor returns the string stamped on records touched under this identity.
func (i Identity) Actor() string {
	if i.Anonymous() {
		return AnonymousActor
	}
	return i.Username
}
