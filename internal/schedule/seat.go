package schedule

import "fmt"

// CheckSeat validates a 1-based (row, seat) place against an airplane's
// geometry. The row and seat checks are independent: a payload with both
// coordinates out of range reports both errors in one map, not just the
// first. Messages carry the offending value and the permitted bound.
func CheckSeat(row, seat, maxRows, maxSeatsPerRow uint32) Violations {
	v := Violations{}
	if row < 1 || row > maxRows {
		v["row"] = fmt.Sprintf("row must be between 1 and %d, got %d", maxRows, row)
	}
	if seat < 1 || seat > maxSeatsPerRow {
		v["seat"] = fmt.Sprintf("seat must be between 1 and %d, got %d", maxSeatsPerRow, seat)
	}
	return v
}

// CheckSeatGeometry validates an airplane's own geometry: both dimensions
// must be positive for the seat grid to make sense.
func CheckSeatGeometry(rows, seatsInRow uint32) Violations {
	v := Violations{}
	if rows < 1 {
		v["rows"] = fmt.Sprintf("rows must be positive, got %d", rows)
	}
	if seatsInRow < 1 {
		v["seats_in_row"] = fmt.Sprintf("seats_in_row must be positive, got %d", seatsInRow)
	}
	return v
}
