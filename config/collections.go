package config

// Collection names served by default.
const (
	CollectionBooks    = "books"
	CollectionArticles = "articles"
	CollectionAudios   = "audios"
	CollectionVideos   = "videos"
	CollectionArtists  = "artists"
)

// DefaultCollections returns the settings for the five content types of the library.
// Each call returns fresh values that callers may modify.
func DefaultCollections() []CollectionSettings {
	collections := []CollectionSettings{
		{
			Name:                 CollectionBooks,
			SimpleSearchFields:   []string{"title", "titleZh", "titleKh", "author", "authorZh"},
			AdvancedSearchFields: []string{"title", "titleZh", "titleKh", "author", "authorZh", "description", "descriptionZh"},
			CategoryField:        "category",
			AuthorFields:         []string{"author", "authorZh"},
			YearField:            "year",
			CounterField:         "views",
		},
		{
			Name:                 CollectionArticles,
			SimpleSearchFields:   []string{"title", "titleZh", "titleKh", "author", "authorZh"},
			AdvancedSearchFields: []string{"title", "titleZh", "titleKh", "author", "authorZh", "excerpt", "excerptZh", "excerptKh"},
			CategoryField:        "category",
			AuthorFields:         []string{"author", "authorZh"},
			YearField:            "date",
			CounterField:         "views",
		},
		{
			Name:               CollectionAudios,
			SimpleSearchFields: []string{"title", "titleZh", "artist", "artistZh"},
			CategoryField:      "category",
			AuthorFields:       []string{"artist", "artistZh"},
			YearField:          "date",
			CounterField:       "plays",
		},
		{
			Name:               CollectionVideos,
			SimpleSearchFields: []string{"title", "titleZh", "titleKh", "presenter", "presenterZh"},
			CategoryField:      "category",
			AuthorFields:       []string{"presenter", "presenterZh"},
			YearField:          "date",
			CounterField:       "views",
		},
		{
			Name:                 CollectionArtists,
			SimpleSearchFields:   []string{"name", "nameZh", "nameKh", "role", "roleZh"},
			AdvancedSearchFields: []string{"name", "nameZh", "nameKh", "role", "roleZh", "bio", "bioZh"},
			CounterField:         "views",
		},
	}

	for i := range collections {
		collections[i].ApplyDefaults()
	}
	return collections
}
