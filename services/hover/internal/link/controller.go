package link

import "hovercraft-go/services/hover/internal/input"

// Controller is the transport's view of one paired device. It implements
// input.Source; only the link mutates it.
type Controller struct {
	id        input.SourceID
	class     input.Class
	connected bool
	fresh     bool
	s         input.Sample
}

var _ input.Source = (*Controller)(nil)

func (c *Controller) ID() input.SourceID   { return c.id }
func (c *Controller) Class() input.Class   { return c.class }
func (c *Controller) Connected() bool      { return c.connected }
func (c *Controller) HasData() bool        { return c.fresh }
func (c *Controller) Sample() input.Sample { return c.s }
