package notify

import "fmt"

// DryRun prints messages to stdout instead of delivering them.
type DryRun struct{}

// NewDryRun creates a dry-run sink.
func NewDryRun() *DryRun {
	return &DryRun{}
}

// Send prints the message that would have been delivered.
func (d *DryRun) Send(message string) bool {
	fmt.Println("--- Notification ---")
	fmt.Println(message)
	fmt.Printf("\n(Length: %d characters)\n\n", len(message))
	return true
}
