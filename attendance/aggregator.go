package attendance

// LiveCounts is the point-in-time presence summary shown on the admin
// live-status page.
type LiveCounts struct {
	Started int `json:"started"`
	Break   int `json:"break"`
	Active  int `json:"active"`
}

// LiveStatus derives presence counts from raw log entries. A user counts
// as started until they leave, and as on break until they are back at
// their seat. Active is the difference. Recomputed on every call; there
// is no cached state.
func LiveStatus(entries []Timesheet) LiveCounts {
	var counts LiveCounts

	for _, e := range entries {
		if e.Start != nil && e.Leave == nil {
			counts.Started++
		}
		if e.Break != nil && e.OnSeat == nil {
			counts.Break++
		}
	}

	counts.Active = counts.Started - counts.Break
	return counts
}
