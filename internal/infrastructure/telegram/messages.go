package telegram

import (
	"fmt"
	"html"
	"strings"
)

// EscapeHTML escapes HTML special characters for safe Telegram message formatting
func EscapeHTML(s string) string {
	return html.EscapeString(s)
}

var statusLabels = map[string]string{
	"pending":     "Pending",
	"assigned":    "Assigned",
	"in_progress": "In progress",
	"completed":   "Completed",
	"cancelled":   "Cancelled",
}

var priorityIcons = map[string]string{
	"low":    "🟢",
	"medium": "🟡",
	"high":   "🟠",
	"urgent": "🔴",
}

func statusLabel(s string) string {
	if l, ok := statusLabels[s]; ok {
		return l
	}
	return s
}

func priorityLabel(p string) string {
	if icon, ok := priorityIcons[p]; ok {
		return icon + " " + p
	}
	return p
}

// FormatNewRequest renders the message sent to staff for a new request.
func FormatNewRequest(p RequestPayload) string {
	var b strings.Builder
	b.WriteString("🛠 <b>New repair request</b>\n\n")
	fmt.Fprintf(&b, "<b>#%d</b> %s\n", p.RepairID, EscapeHTML(p.Title))
	if p.CategoryName != "" {
		fmt.Fprintf(&b, "📂 Category: %s\n", EscapeHTML(p.CategoryName))
	}
	fmt.Fprintf(&b, "📍 Location: %s\n", EscapeHTML(p.Location))
	fmt.Fprintf(&b, "⚡ Priority: %s\n", priorityLabel(p.Priority))
	fmt.Fprintf(&b, "👤 Requester: %s\n", EscapeHTML(p.RequesterName))
	fmt.Fprintf(&b, "🖼 Images: %d", p.ImageCount)
	if p.Description != "" {
		fmt.Fprintf(&b, "\n\n%s", EscapeHTML(p.Description))
	}
	return b.String()
}

// FormatStatusUpdate renders the group chat message for a status change.
func FormatStatusUpdate(p RequestPayload, oldStatus, newStatus, actorName string) string {
	var b strings.Builder
	icon := "🔄"
	if newStatus == "completed" {
		icon = "✅"
	}
	fmt.Fprintf(&b, "%s <b>Repair status updated</b>\n\n", icon)
	fmt.Fprintf(&b, "<b>#%d</b> %s\n", p.RepairID, EscapeHTML(p.Title))
	fmt.Fprintf(&b, "📍 Location: %s\n", EscapeHTML(p.Location))
	fmt.Fprintf(&b, "📊 Status: %s → <b>%s</b>\n", statusLabel(oldStatus), statusLabel(newStatus))
	if actorName != "" {
		fmt.Fprintf(&b, "👷 By: %s\n", EscapeHTML(actorName))
	}
	if p.RequesterName != "" {
		fmt.Fprintf(&b, "👤 Requester: %s\n", EscapeHTML(p.RequesterName))
	}
	if p.CompletionDetails != "" {
		fmt.Fprintf(&b, "\n📝 %s\n", EscapeHTML(p.CompletionDetails))
	}
	if p.ImageCount > 0 {
		fmt.Fprintf(&b, "🖼 Completion images: %d\n", p.ImageCount)
	}
	return strings.TrimRight(b.String(), "\n")
}
