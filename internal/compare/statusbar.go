package compare

import "sync"

// StatusMessage is the text of the three status bar slots.
type StatusMessage struct {
	Left   string `json:"left"`
	Center string `json:"center"`
	Right  string `json:"right"`
}

// StatusBar holds the left, center and right status texts. Update only
// touches the slots it is given, so a caller can change one slot and leave
// the others as they were.
type StatusBar struct {
	mu  sync.RWMutex
	msg StatusMessage
}

// Update sets every slot whose argument is non-nil. A non-nil empty string
// clears its slot.
func (b *StatusBar) Update(left, center, right *string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if left != nil {
		b.msg.Left = *left
	}
	if center != nil {
		b.msg.Center = *center
	}
	if right != nil {
		b.msg.Right = *right
	}
}

// Message returns the current slot texts.
func (b *StatusBar) Message() StatusMessage {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.msg
}

// Text returns a pointer to s for use with Update.
func Text(s string) *string { return &s }
