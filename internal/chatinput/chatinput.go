package chatinput

// Placeholder is the hint shown in an empty input.
const Placeholder = "Type your message..."

// Controller holds the draft message and decides when a send is triggered.
// While a send is pending, both Enter and the send button are inert.
type Controller struct {
	OnChange func(value string)
	OnSend   func()

	value   string
	pending bool
}

func (c *Controller) Value() string { return c.value }

func (c *Controller) SetValue(v string) {
	c.value = v
	if c.OnChange != nil {
		c.OnChange(v)
	}
}

func (c *Controller) SetPending(pending bool) { c.pending = pending }

func (c *Controller) Disabled() bool { return c.pending }

func (c *Controller) ButtonLabel() string {
	if c.pending {
		return "Sending..."
	}
	return "Send"
}

// HandleKey reports whether the key triggered a send.
func (c *Controller) HandleKey(key string) bool {
	if key != "Enter" {
		return false
	}
	return c.send()
}

// Click presses the send button and reports whether it triggered a send.
func (c *Controller) Click() bool {
	return c.send()
}

func (c *Controller) send() bool {
	if c.pending {
		return false
	}
	if c.OnSend != nil {
		c.OnSend()
	}
	return true
}
