package tracking

// NormalizeFeeding rewrites a breastfeeding record into the per-side shape.
// Rows written before per-side tracking existed only carry a total duration and
// an optional side: a single side gets the whole duration, BOTH or no side is
// split evenly with the odd second going left. Open sessions are left untouched.
func NormalizeFeeding(r *FeedingRecord) {
	if r == nil || r.FeedingType != FeedingBreast || r.EndTime == nil {
		return
	}
	if r.LeftDurationSeconds != nil || r.RightDurationSeconds != nil {
		if r.LeftDurationSeconds == nil {
			r.LeftDurationSeconds = intPtr(0)
		}
		if r.RightDurationSeconds == nil {
			r.RightDurationSeconds = intPtr(0)
		}
		return
	}

	total := int(r.EndTime.Sub(r.StartTime).Seconds())
	if total < 0 {
		total = 0
	}

	left, right := total-total/2, total/2
	if r.Side != nil {
		switch *r.Side {
		case SideLeft:
			left, right = total, 0
		case SideRight:
			left, right = 0, total
		}
	}

	r.LeftDurationSeconds = intPtr(left)
	r.RightDurationSeconds = intPtr(right)
}

func intPtr(v int) *int {
	return &v
}
