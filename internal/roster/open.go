package roster

import (
	"github.com/sirupsen/logrus"
)

// Open picks the roster source: a URL wins over a file path, and with
// neither the built-in field is used. Remote and file rosters are cached.
func Open(path, url string, logger *logrus.Logger) (Source, error) {
	var source Source
	switch {
	case url != "":
		source = NewHTTPSource(url, logger)
	case path != "":
		source = NewFileSource(path)
	default:
		logger.Info("Using built-in 2024 field")
		return NewStaticSource(), nil
	}

	logger.WithField("source", source.Name()).Info("Using roster source")
	return NewCachedSource(RosterCacheSize, source, logger)
}
