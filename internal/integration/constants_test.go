package integration_test

const (
	dbName         = "movie_favorites"
	dbUser         = "test_user"
	dbPassword     = "test_password"
	dbImageName    = "postgres:17-alpine"
	cacheImageName = "redis:7"

	TestApiKey = "test-key"

	TestMovieId     = "tt0133093"
	TestMovieTitle  = "The Matrix"
	TestMovieYear   = "1999"
	TestMoviePoster = "https://example.com/matrix.jpg"
	TestMoviePlot   = "A computer hacker learns about the true nature of reality."

	TestOtherMovieId    = "tt0234215"
	TestOtherMovieTitle = "The Matrix Reloaded"

	TestUnknownMovieId = "tt9999999"
)
