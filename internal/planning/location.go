package planning

import "time"

// Business hours are interpreted in the site-local timezone, configured once
// at bootstrap.
var loc = time.Local

func SetLocation(l *time.Location) {
	if l != nil {
		loc = l
	}
}

func Location() *time.Location {
	return loc
}
