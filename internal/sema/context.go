package sema

import "availc/internal/avail"

// availContext is the availability of the declaration being walked,
// folded over all enclosing declarations.
type availContext struct {
	unavailable bool
	deprecated  bool
	// introduced - самая поздняя версия introduced среди объемлющих объявлений.
	introduced avail.VersionTuple
}

// pushContext folds the records of the entered declaration into the stack.
func (c *checker) pushContext(records []avail.Record) {
	next := c.context()
	for _, r := range c.target.Filter(records) {
		if un, _ := r.UnavailableAt(c.target.Deployment); un {
			next.unavailable = true
		}
		if r.DeprecatedAt(c.target.Deployment) {
			next.deprecated = true
		}
		if r.Introduced.IsSet() && next.introduced.Less(r.Introduced) {
			next.introduced = r.Introduced
		}
	}
	c.ctx = append(c.ctx, next)
}

func (c *checker) popContext() {
	if len(c.ctx) > 0 {
		c.ctx = c.ctx[:len(c.ctx)-1]
	}
}

func (c *checker) context() availContext {
	if len(c.ctx) == 0 {
		return availContext{}
	}
	return c.ctx[len(c.ctx)-1]
}

// suppressed reports whether the enclosing context already covers the verdict:
// deprecated uses inside deprecated code, unavailable uses inside unavailable
// code, and introduced versions no newer than the context's own.
func (ctx availContext) suppressed(v avail.Verdict) bool {
	switch v.Kind {
	case avail.Unavailable, avail.Obsoleted:
		return ctx.unavailable
	case avail.Deprecated:
		return ctx.deprecated
	case avail.NotYetIntroduced:
		return ctx.introduced.IsSet() && ctx.introduced.AtLeast(v.Record.Introduced)
	}
	return false
}
