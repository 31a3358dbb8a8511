package display

import (
	"github.com/clktmr/bui/drivers/buttons"
	"github.com/clktmr/bui/drivers/seproxyhal"
	"github.com/retroenv/retrogolib/log"
)

// SetHandler sets the receiver of all events decoded by HandlePacket,
// replacing the previous one.
func (c *Context) SetHandler(h buttons.Handler) {
	c.handler = h
	c.buttons.SetHandler(h)
}

// HandlePacket decodes an event packet from the peripheral controller.
// Button pushes and ticks update the button state, a display acknowledgement
// sends the next chunk of the framebuffer or emits Displayed if there is
// none. Other packets are ignored.
func (c *Context) HandlePacket(p seproxyhal.Packet) {
	switch p.Tag {
	case seproxyhal.TagButtonPush:
		mask, ok := p.ButtonMask()
		if !ok {
			return
		}
		c.buttons.Update(buttons.Button(mask))

	case seproxyhal.TagTicker:
		c.buttons.Tick(c.ticker)

	case seproxyhal.TagDisplayProcessed:
		sent, err := c.Flush()
		if err != nil {
			c.log.Error("Flushing display failed", log.Err(err))
			return
		}
		if !sent && c.handler != nil {
			c.handler.HandleEvent(buttons.Displayed{})
		}

	default:
		c.log.Debug("Ignoring packet", log.Stringer("tag", p.Tag), log.Int("length", len(p.Data)))
	}
}
