package owners

import "countygraph/internal/models"

// Event is a dated entity that owners can be linked to, such as a sale.
// Date is YYYY-MM-DD or empty when unknown.
type Event struct {
	Ref  models.Ref
	Date string
}

// LinkEvents links each event to the owners listed on its exact date. The
// most recent event that received no such owners falls back to the current
// owners. It returns the number of new edges.
func LinkEvents(g *models.Graph, resolved *Resolved, events []Event) int {
	added := 0
	linked := make(map[models.Ref]bool)

	for _, ev := range events {
		if ev.Date == "" || ev.Date == models.CurrentKey {
			continue
		}

		for _, owner := range resolved.On(ev.Date) {
			if g.Link(ev.Ref, owner) {
				added++
			}

			linked[ev.Ref] = true
		}
	}

	latest, ok := mostRecent(events)
	if !ok || linked[latest.Ref] {
		return added
	}

	for _, owner := range resolved.Current() {
		if g.Link(latest.Ref, owner) {
			added++
		}
	}

	return added
}

// LinkMailingAddress links the current owners to the mailing address. Nothing
// is linked when no mailing address was extracted.
func LinkMailingAddress(g *models.Graph, resolved *Resolved, mailing models.Ref, extracted bool) int {
	if !extracted {
		return 0
	}

	added := 0

	for _, owner := range resolved.Current() {
		if g.Link(owner, mailing) {
			added++
		}
	}

	return added
}

// mostRecent returns the dated event with the latest date; the first one wins ties.
func mostRecent(events []Event) (Event, bool) {
	var (
		best  Event
		found bool
	)

	for _, ev := range events {
		if ev.Date == "" || ev.Date == models.CurrentKey {
			continue
		}

		if !found || ev.Date > best.Date {
			best = ev
			found = true
		}
	}

	return best, found
}
