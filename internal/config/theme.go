package config

import (
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/timapple/writeapp/internal/apperr"
	"github.com/timapple/writeapp/internal/storage"
)

// Theme holds display tuning loaded from the optional theme.toml file.
// Every field has a usable zero-value default; the file may set any subset.
type Theme struct {
	// WrapWidth is the hard-wrap column for the editor.
	WrapWidth int `toml:"wrap_width"`

	// MaxTextWidth caps the centered writing column on wide terminals.
	MaxTextWidth int `toml:"max_text_width"`

	// Accent is the highlight color name for titles and the active mode.
	Accent string `toml:"accent"`

	// DimText is the color used for non-cursor lines in focus mode.
	DimText string `toml:"dim_text"`
}

// DefaultTheme returns the built-in theme.
func DefaultTheme() Theme {
	return Theme{
		WrapWidth:    90,
		MaxTextWidth: 100,
		Accent:       "yellow",
		DimText:      "gray",
	}
}

// LoadTheme reads theme.toml from the store, merging the file over defaults.
// A missing file is not an error; an unparseable one maps to CorruptData.
func LoadTheme(store *storage.Store) (Theme, error) {
	theme := DefaultTheme()

	data, err := os.ReadFile(store.ThemePath())
	if err != nil {
		if os.IsNotExist(err) {
			return theme, nil
		}
		return theme, apperr.New("theme.load", store.ThemePath(), apperr.ErrStorageFault)
	}

	if err := toml.Unmarshal(data, &theme); err != nil {
		return DefaultTheme(), apperr.New("theme.load", store.ThemePath(), apperr.ErrCorruptData)
	}

	if theme.WrapWidth <= 0 {
		theme.WrapWidth = 90
	}
	if theme.MaxTextWidth < theme.WrapWidth {
		theme.MaxTextWidth = theme.WrapWidth
	}
	return theme, nil
}
