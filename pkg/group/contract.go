package group

// Contract is the compiled artifact of one contract declaration: the full
// member list per kind in declaration order, and the interface groups built
// for every kind with two or more members. A kind with fewer members keeps
// its standalone descriptors but gets no group: a single definition needs no
// dispatch union.
type Contract struct {
	Name string

	CallMembers  []Member
	ErrorMembers []Member
	EventMembers []Member

	Calls  *Group // nil when len(CallMembers) < 2
	Errs   *Group // nil when len(ErrorMembers) < 2
	Events *Group // nil when len(EventMembers) < 2
}

// Groups returns the contract's built groups, calls first.
func (c *Contract) Groups() []*Group {
	var out []*Group
	for _, g := range []*Group{c.Calls, c.Errs, c.Events} {
		if g != nil {
			out = append(out, g)
		}
	}
	return out
}

// MembersOf returns the declaration-order members of one kind.
func (c *Contract) MembersOf(kind Kind) []Member {
	switch kind {
	case KindCall:
		return c.CallMembers
	case KindError:
		return c.ErrorMembers
	case KindEvent:
		return c.EventMembers
	}
	return nil
}
