package favorites

import "github.com/metinatakli/movie-favorites/internal/domain"

// State holds the liked movies in the order they were liked. No two elements
// share an ID.
type State struct {
	LikedMovies []domain.Movie
}

func (s State) Contains(id string) bool {
	for _, m := range s.LikedMovies {
		if m.ID == id {
			return true
		}
	}

	return false
}

func (s State) clone() State {
	if s.LikedMovies == nil {
		return State{}
	}

	liked := make([]domain.Movie, len(s.LikedMovies))
	copy(liked, s.LikedMovies)

	return State{LikedMovies: liked}
}

// Reduce returns the state that results from applying action to state. It
// never modifies the slice held by state; unknown actions return state as is.
func Reduce(state State, action Action) State {
	switch a := action.(type) {
	case Like:
		// an already liked movie keeps its stored copy
		if state.Contains(a.Movie.ID) {
			return state
		}

		liked := make([]domain.Movie, len(state.LikedMovies), len(state.LikedMovies)+1)
		copy(liked, state.LikedMovies)

		return State{LikedMovies: append(liked, a.Movie)}

	case Unlike:
		if !state.Contains(a.Movie.ID) {
			return state
		}

		liked := make([]domain.Movie, 0, len(state.LikedMovies))
		for _, m := range state.LikedMovies {
			if m.ID != a.Movie.ID {
				liked = append(liked, m)
			}
		}

		return State{LikedMovies: liked}

	default:
		return state
	}
}
