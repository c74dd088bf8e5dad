package console

import "sync"

// Notification is a transient message shown once on the next rendered page.
type Notification struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Destructive bool   `json:"destructive"`
}

// Notifications queues messages between a form post and the page render that follows it.
// The console has a single operator, so one queue serves the whole process.
type Notifications struct {
	mu    sync.Mutex
	queue []Notification
}

func NewNotifications() *Notifications {
	return &Notifications{}
}

func (n *Notifications) Success(title, description string) {
	n.push(Notification{Title: title, Description: description})
}

func (n *Notifications) Failure(title, description string) {
	n.push(Notification{Title: title, Description: description, Destructive: true})
}

// Drain returns the queued messages in order and empties the queue.
func (n *Notifications) Drain() []Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := n.queue
	n.queue = nil
	if out == nil {
		return []Notification{}
	}
	return out
}

func (n *Notifications) push(note Notification) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.queue = append(n.queue, note)
}
