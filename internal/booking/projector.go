package booking

import "time"

// Project picks the owner's last and next booking among the bookings of one item.
//
// Only bookings whose item is owned by viewerID and that were not rejected count.
// Last is the latest-starting booking that has already ended; Next is the
// earliest-starting booking that has not started yet. A booking in progress at
// now counts as neither. Ties on start are broken by ID.
func Project(bookings []*Booking, viewerID string, now time.Time) Projection {
	var p Projection
	for _, b := range bookings {
		if b.ItemOwnerID != viewerID || b.Status == StatusRejected {
			continue
		}

		switch {
		case b.Start.After(now):
			if p.Next == nil || startsBefore(b, p.Next) {
				p.Next = b
			}
		case b.Start.Before(now) && b.End.Before(now):
			if p.Last == nil || startsBefore(p.Last, b) {
				p.Last = b
			}
		}
	}
	return p
}

// startsBefore orders bookings by start, then by ID.
func startsBefore(a, b *Booking) bool {
	if a.Start.Equal(b.Start) {
		return a.ID < b.ID
	}
	return a.Start.Before(b.Start)
}
