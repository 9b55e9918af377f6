package search

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/top2000/internal/api"
)

func song(id, title, artist string) Candidate {
	return SongCandidate(api.Song{ID: api.ID(id), Title: title, Artist: artist})
}

func artist(id, name string) Candidate {
	return ArtistCandidate(api.Artist{ID: api.ID(id), Name: name})
}

func texts(ranked []Ranked) []string {
	out := make([]string, len(ranked))
	for i, r := range ranked {
		out[i] = r.Text()
	}
	return out
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Hello", "hello"},
		{"  Queen  ", "queen"},
		{"\tBOHEMIAN Rhapsody\n", "bohemian rhapsody"},
		{"", ""},
		{"   ", ""},
		{"ÉDITH Piaf", "édith piaf"},
		{"123", "123"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize(tt.input))
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"", " ", "Queen", "  Mixed Case  ", "ÉDITH PIAF", "Straße", "ǅemal", "İstanbul",
		"ﬁre", " nbsp ", "Hotel California", "日本語", "Ω",
	}
	for _, s := range inputs {
		once := Normalize(s)
		assert.Equal(t, once, Normalize(once), "input %q", s)
	}
}

func TestScore(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		query string
		want  Class
	}{
		{"exact", "Queen", "queen", ClassExact},
		{"exact with whitespace", "  Queen ", " QUEEN", ClassExact},
		{"prefix", "Queen", "qu", ClassPrefix},
		{"substring", "Marquee", "qu", ClassSubstring},
		{"none", "Abba", "qu", ClassNone},
		{"query longer than text", "Go", "Gone", ClassNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Score(tt.text, tt.query))
		})
	}
}

func TestBestScore(t *testing.T) {
	assert.Equal(t, ClassPrefix, BestScore("que", "We Will Rock You", "Queen"))
	assert.Equal(t, ClassExact, BestScore("queen", "Killer Queen", "Queen"))
	assert.Equal(t, ClassSubstring, BestScore("queen", "Killer Queen", ""))
	assert.Equal(t, ClassNone, BestScore("queen", "", "  "))
	assert.Equal(t, ClassNone, BestScore("queen"))
}

func TestClass_String(t *testing.T) {
	assert.Equal(t, "exact", ClassExact.String())
	assert.Equal(t, "prefix", ClassPrefix.String())
	assert.Equal(t, "substring", ClassSubstring.String())
	assert.Equal(t, "none", ClassNone.String())
}

func TestRank_ExactBeforeOthers(t *testing.T) {
	ranked := Rank("queen", []Candidate{
		song("1", "Killer Queen", "Queen"), // exact via artist name
		artist("a1", "Queens of the Stone Age"),
		artist("a2", "Queen"),
		song("2", "Dancing Queen", "ABBA"),
	})

	require.Len(t, ranked, 4)
	assert.Equal(t, ClassExact, ranked[0].Class)
	assert.Equal(t, "Queen", ranked[0].Text(), "shorter exact match first")
	assert.Equal(t, "Killer Queen", ranked[1].Text())
	assert.Equal(t, ClassPrefix, ranked[2].Class)
	assert.Equal(t, ClassSubstring, ranked[3].Class)
}

func TestRank_PrefixBeatsSubstring(t *testing.T) {
	ranked := Rank("qu", []Candidate{artist("2", "Marquee"), artist("1", "Queen")})
	assert.Equal(t, []string{"Queen", "Marquee"}, texts(ranked))
}

func TestRank_TieBreakByLength(t *testing.T) {
	ranked := Rank("go", []Candidate{
		song("3", "Golden Brown", "The Stranglers"),
		song("2", "Gone", "Shinedown"),
		song("1", "Go", "Moby"),
	})
	assert.Equal(t, []string{"Go", "Gone", "Golden Brown"}, texts(ranked))

	ranked = Rank("go", []Candidate{song("2", "Gone", ""), song("4", "Good", "")})
	assert.Equal(t, []string{"Gone", "Good"}, texts(ranked), "equal keys keep input order")
}

func TestRank_LengthCountsGraphemes(t *testing.T) {
	// "Café" written with a combining accent is 5 runes but 4 graphemes.
	combining := "Cafe\u0301"
	ranked := Rank("caf", []Candidate{song("1", "Cafés", ""), song("2", combining, "")})
	assert.Equal(t, []string{combining, "Cafés"}, texts(ranked))
}

func TestRank_KeepsUnmatched(t *testing.T) {
	ranked := Rank("queen", []Candidate{song("1", "Bohemian Rhapsody", "Freddie")})
	require.Len(t, ranked, 1)
	assert.Equal(t, ClassNone, ranked[0].Class)
}

func TestMerge(t *testing.T) {
	primary := []Candidate{song("1", "One", "")}
	secondary := []Candidate{song("1", "One again", ""), song("2", "Two", "")}

	merged := Merge(primary, secondary)
	require.Len(t, merged, 2)
	assert.Equal(t, Key{Kind: KindSong, ID: "1"}, merged[0].Key())
	assert.Equal(t, "One", merged[0].Text(), "first occurrence wins")
	assert.Equal(t, Key{Kind: KindSong, ID: "2"}, merged[1].Key())
}

func TestMerge_KindIsPartOfIdentity(t *testing.T) {
	merged := Merge([]Candidate{song("7", "Queen", "")}, []Candidate{artist("7", "Queen")})
	assert.Len(t, merged, 2)
}

func TestMerge_DedupsWithinPrimary(t *testing.T) {
	merged := Merge([]Candidate{artist("1", "A"), artist("1", "A"), artist("2", "B")}, nil)
	assert.Len(t, merged, 2)
}

func TestMerge_Empty(t *testing.T) {
	assert.Empty(t, Merge(nil, nil))
}

func TestCandidate(t *testing.T) {
	s := song("s1", "Bohemian Rhapsody", "Queen")
	assert.Equal(t, KindSong, s.Kind())
	assert.Equal(t, "/song/s1", s.Path())
	assert.Equal(t, []string{"Bohemian Rhapsody", "Queen"}, s.Fields())

	a := artist("a 1", "Queen")
	assert.Equal(t, KindArtist, a.Kind())
	assert.Equal(t, "/artist/a%201", a.Path())
	assert.Equal(t, []string{"Queen"}, a.Fields())

	var empty Candidate
	assert.Equal(t, Key{}, empty.Key())
	assert.Empty(t, empty.Text())
	assert.Nil(t, empty.Fields())
}

func TestPresent_Truncates(t *testing.T) {
	var cands []Candidate
	for i := range 12 {
		cands = append(cands, song(fmt.Sprint(i), "Song "+strings.Repeat("x", 12-i), "Band"))
	}
	ranked := Rank("song", cands)

	items := Present(ranked, 5)
	require.Len(t, items, 5)
	for i, item := range items {
		assert.Equal(t, ranked[i].Key(), item.Key())
	}
	assert.Equal(t, api.ID("11"), items[0].ID, "shortest title ranks first")

	assert.Len(t, Present(ranked, 0), 12)
	assert.Len(t, Present(ranked[:3], 5), 3)
}

func TestPresent_Song(t *testing.T) {
	items := Present([]Ranked{{
		Candidate: SongCandidate(api.Song{ID: "s1", Title: "Bohemian Rhapsody", Artist: "Queen", ImageURL: "/img.jpg", ReleaseYear: 1975}),
		Class:     ClassPrefix,
	}}, 5)

	require.Len(t, items, 1)
	assert.Equal(t, DisplayItem{
		Kind:     KindSong,
		ID:       "s1",
		Title:    "Bohemian Rhapsody",
		Subtitle: "Queen",
		Display:  "Bohemian Rhapsody — Queen",
		Detail:   "1975",
		Artwork:  "/img.jpg",
		Path:     "/song/s1",
		Class:    ClassPrefix,
	}, items[0])
}

func TestPresent_Placeholders(t *testing.T) {
	items := Present([]Ranked{
		{Candidate: SongCandidate(api.Song{ID: "1"})},
		{Candidate: ArtistCandidate(api.Artist{ID: "2"})},
		{Candidate: Candidate{}},
	}, 5)

	require.Len(t, items, 2, "empty candidates are skipped")
	assert.Equal(t, "Unknown title — Unknown artist", items[0].Display)
	assert.Empty(t, items[0].Detail)
	assert.Equal(t, UnknownArtist, items[1].Title)
	assert.Empty(t, items[1].Subtitle)
	assert.Equal(t, NoBiography, items[1].Detail)
}

func TestPresent_Artist(t *testing.T) {
	bio := strings.Repeat("a", 100)
	items := Present([]Ranked{{Candidate: ArtistCandidate(api.Artist{ID: "q", Name: "Queen", Genre: "Rock", Biography: bio})}}, 5)

	require.Len(t, items, 1)
	assert.Equal(t, "Queen · Rock", items[0].Display)
	assert.Equal(t, "Rock", items[0].Subtitle)
	assert.Equal(t, strings.Repeat("a", 80)+"…", items[0].Detail)
	assert.Equal(t, "/artist/q", items[0].Path)
}

func TestTruncateBiography(t *testing.T) {
	tests := []struct {
		name string
		text string
		n    int
		want string
	}{
		{"empty", "", 80, NoBiography},
		{"blank", "   ", 80, NoBiography},
		{"short", "British rock band", 80, "British rock band"},
		{"exact length", "abcde", 5, "abcde"},
		{"long", "abcdef", 5, "abcde…"},
		{"trailing space trimmed", "abcd efgh", 5, "abcd…"},
		{"multibyte", "ééééééé", 3, "ééé…"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TruncateBiography(tt.text, tt.n))
		})
	}
}
