package domain

type Actor struct {
	ID         int     `json:"id"`
	Name       string  `json:"name,omitempty"`
	PhotoURL   string  `json:"photo,omitempty"`
	Popularity float64 `json:"popularity,omitempty"`
	Deceased   bool    `json:"deceased,omitempty"`
}

type Movie struct {
	ID        int     `json:"id"`
	Title     string  `json:"title"`
	Year      int     `json:"year,omitempty"`
	PosterURL string  `json:"poster,omitempty"`
	Rating    float32 `json:"rating,omitempty"`
}

type FilmographyEntry struct {
	MovieID     int     `json:"movieId"`
	Title       string  `json:"title"`
	ReleaseDate string  `json:"releaseDate"`
	Popularity  float64 `json:"popularity"`
}

type ActorDetail struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	PhotoURL  string `json:"photo,omitempty"`
	DeathDate string `json:"deathDate,omitempty"`
}

type DeceasedRecord struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	DeathDate    string `json:"deathDate"`
	CauseOfDeath string `json:"causeOfDeath,omitempty"`
	AgeAtDeath   int    `json:"ageAtDeath,omitempty"`
}

// PathSegment is one actor on a connection path. Movie is the credit
// shared with the next segment; nil on the last one.
type PathSegment struct {
	Actor Actor  `json:"actor"`
	Movie *Movie `json:"movie,omitempty"`
}

type ConnectionResult struct {
	Degrees        int              `json:"degrees"`
	Path           []PathSegment    `json:"path"`
	TotalDeceased  int              `json:"totalDeceased"`
	DeceasedOnPath []DeceasedRecord `json:"deceasedOnPath,omitempty"`
}
