package favorites

import "github.com/metinatakli/movie-favorites/internal/domain"

type Kind string

const (
	KindLike   Kind = "like"
	KindUnlike Kind = "unlike"
)

// Action is implemented only by Like and Unlike.
type Action interface {
	Kind() Kind
	action()
}

type Like struct {
	Movie domain.Movie
}

func (Like) Kind() Kind { return KindLike }
func (Like) action()    {}

type Unlike struct {
	Movie domain.Movie
}

func (Unlike) Kind() Kind { return KindUnlike }
func (Unlike) action()    {}

func LikeMovie(movie domain.Movie) Action {
	return Like{Movie: movie}
}

func UnlikeMovie(movie domain.Movie) Action {
	return Unlike{Movie: movie}
}
