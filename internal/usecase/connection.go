package usecase

import (
	"context"
	"log/slog"

	"github.com/chenders/deadonfilm/internal/domain"
)

// DefaultMaxDegrees is the degree bound used when the caller has no opinion,
// the classic six degrees of separation.
const DefaultMaxDegrees = 6

// searchNode is one vertex of a frontier tree. A node addresses its parent
// by actor ID inside the same visited map, so the two trees stay acyclic and
// serializable; the frontier root has no parent.
type searchNode struct {
	ActorID  int
	ParentID int          // 0 for the frontier root
	Movie    domain.Movie // credit shared with the parent; zero for the root
}

// frontier is one growing side of the bidirectional search.
type frontier struct {
	queue   []int
	visited map[int]searchNode
	levels  int
}

func newFrontier(rootID int) *frontier {
	return &frontier{
		queue:   []int{rootID},
		visited: map[int]searchNode{rootID: {ActorID: rootID}},
	}
}

// nextFrontier picks the side to expand this round: the first side while it
// is level with or behind the second and still has queued nodes, otherwise
// the second. Growing the side with fewer completed levels keeps both trees
// in lockstep, which is what makes the bidirectional search cheap.
func nextFrontier(first, second *frontier) (cur, opp *frontier) {
	if first.levels <= second.levels && len(first.queue) > 0 {
		return first, second
	}
	return second, first
}

// expandLevel processes exactly the nodes queued before the level began, so
// one call corresponds to one more degree of separation. It returns the
// meeting actor ID as soon as a discovered co-star is already visited by the
// opposite frontier, or 0 if the level completes without contact.
func (f *frontier) expandLevel(ctx context.Context, exp *coStarExpander, opp *frontier) (int, error) {
	f.levels++
	levelSize := len(f.queue)

	for i := 0; i < levelSize; i++ {
		nodeID := f.queue[0]
		f.queue = f.queue[1:]

		coStars, err := exp.CoStars(ctx, nodeID)
		if err != nil {
			return 0, err
		}

		for coStarID, movie := range coStars {
			if _, ok := opp.visited[coStarID]; ok {
				f.visited[coStarID] = searchNode{ActorID: coStarID, ParentID: nodeID, Movie: movie}
				return coStarID, nil
			}
			if _, ok := f.visited[coStarID]; ok {
				continue
			}
			f.visited[coStarID] = searchNode{ActorID: coStarID, ParentID: nodeID, Movie: movie}
			f.queue = append(f.queue, coStarID)
		}
	}

	return 0, nil
}

type Connection struct {
	repo     MediaRepository
	deceased DeceasedStore
	log      *slog.Logger
}

func NewConnection(repo MediaRepository, deceased DeceasedStore, log *slog.Logger) *Connection {
	return &Connection{repo: repo, deceased: deceased, log: log}
}

// FindConnection searches for the shortest co-star path between two actors,
// spending at most maxDegrees expansion levels across both frontiers.
// domain.ErrNoConnection reports bound exhaustion without contact; a context
// error reports an externally imposed timeout or cancellation. The
// filmography memo lives exactly as long as one call, whichever way it ends.
func (uc *Connection) FindConnection(ctx context.Context, firstActorID, secondActorID,
	maxDegrees int) (domain.ConnectionResult, error) {

	films := newFilmographyCache(uc.repo)
	defer films.Reset()
	expander := newCoStarExpander(uc.repo, films, uc.log)

	if firstActorID == secondActorID {
		return uc.enrichPath(ctx, []pathHop{{actorID: firstActorID}})
	}

	first := newFrontier(firstActorID)
	second := newFrontier(secondActorID)

	meetingID := 0
	for (len(first.queue) > 0 || len(second.queue) > 0) &&
		first.levels+second.levels < maxDegrees {

		if err := ctx.Err(); err != nil {
			return domain.ConnectionResult{}, err
		}

		cur, opp := nextFrontier(first, second)
		found, err := cur.expandLevel(ctx, expander, opp)
		if err != nil {
			return domain.ConnectionResult{}, err
		}
		if found != 0 {
			meetingID = found
			break
		}
	}

	if meetingID == 0 {
		return domain.ConnectionResult{}, domain.ErrNoConnection
	}

	hops := reconstructPath(meetingID, first.visited, second.visited)
	return uc.enrichPath(ctx, hops)
}
