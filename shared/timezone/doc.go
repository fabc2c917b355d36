// Package timezone pins wall-clock handling to one configured location.
//
// Reservations are stored as instants, but days and clock times only make
// sense in a location: the schedule for "2024-03-04" is the interval from
// local midnight to the next local midnight, and a display row reads
// "09:00 - 10:30" in that same location.
//
// The location comes from APP_TIMEZONE (an IANA name such as "Asia/Jakarta")
// and is resolved once at start-up; an empty or unknown name falls back to UTC.
//
//	day, err := timezone.Parse("2006-01-02", "2024-03-04")  // local midnight
//	start, err := timezone.ParseFirst(raw, validator.InstantLayouts...)
//	label := timezone.Format(start, "15:04")
package timezone
