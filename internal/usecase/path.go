package usecase

import (
	"slices"

	"github.com/chenders/deadonfilm/internal/domain"
)

// pathHop is one actor on the reconstructed path together with the movie
// connecting it to the previous hop; zero movie on the first hop.
type pathHop struct {
	actorID int
	movie   domain.Movie
}

// reconstructPath rebuilds the actor chain between the two roots once the
// frontiers have met. The first-side walk runs meeting-to-root and is
// reversed; the second-side walk starts one step past the meeting actor
// (already included from the first side) and lands in final order as is.
func reconstructPath(meetingID int, first, second map[int]searchNode) []pathHop {
	var hops []pathHop

	for id := meetingID; id != 0; id = first[id].ParentID {
		node := first[id]
		hops = append(hops, pathHop{actorID: node.ActorID, movie: node.Movie})
	}
	slices.Reverse(hops)

	for node := second[meetingID]; node.ParentID != 0; node = second[node.ParentID] {
		hops = append(hops, pathHop{actorID: node.ParentID, movie: node.Movie})
	}

	return hops
}

// buildSegments converts hops to display segments. A hop stores the credit
// leading into it, but a segment shows the credit leading to the next actor,
// so every inbound movie shifts back by one position and the last segment
// carries none.
func buildSegments(hops []pathHop) []domain.PathSegment {
	segments := make([]domain.PathSegment, len(hops))
	for i, hop := range hops {
		segments[i] = domain.PathSegment{Actor: domain.Actor{ID: hop.actorID}}
		if i+1 < len(hops) {
			movie := hops[i+1].movie
			segments[i].Movie = &movie
		}
	}
	return segments
}
