package session

// Source is the read surface the oracle and the HTTP core consume.
type Source interface {
	Token() string
	User() *UserProfile
}

// Oracle answers authorization questions over the store's current contents.
// Every call re-reads storage; there is no caching, so a concurrent logout
// is visible on the next call.
type Oracle struct {
	source Source
}

func NewOracle(source Source) *Oracle {
	return &Oracle{source: source}
}

// IsAuthenticated requires both the token and the profile. A stale token
// without a profile (or the reverse) reads as unauthenticated.
func (o *Oracle) IsAuthenticated() bool {
	return o.source.Token() != "" && o.source.User() != nil
}

// IsAdmin reports whether the profile carries a role assignment.
func (o *Oracle) IsAdmin() bool {
	user := o.source.User()
	return user != nil && user.RoleID.Truthy()
}

// IsCustomer reports whether the profile is linked to a customer record.
// Not mutually exclusive with IsAdmin; a profile may carry both.
func (o *Oracle) IsCustomer() bool {
	user := o.source.User()
	return user != nil && user.CustomerID.Present()
}

// CurrentCustomerID resolves the customer id from whichever shape the
// backend stored it in, falling back to the user's own id. Empty when no
// profile is cached.
func (o *Oracle) CurrentCustomerID() string {
	user := o.source.User()
	if user == nil {
		return ""
	}
	return user.CustomerID.Resolve(user.ID)
}
