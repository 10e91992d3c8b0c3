package catalog

import (
	"context"

	"github.com/colonyops/techtrack/internal/core/tech"
)

// Source supplies the remote catalog's item list.
type Source interface {
	List(ctx context.Context) ([]tech.Item, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context) ([]tech.Item, error)

// List calls f.
func (f SourceFunc) List(ctx context.Context) ([]tech.Item, error) { return f(ctx) }

// StaticSource serves the fixed demo catalog.
type StaticSource struct{}

// List returns a fresh copy of the demo catalog. Created times and notes are
// left unset for the facade to default.
func (StaticSource) List(ctx context.Context) ([]tech.Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return []tech.Item{
		{
			ID:          "1",
			Title:       "React",
			Description: "Library for building user interfaces",
			Category:    "frontend",
			Difficulty:  tech.DifficultyBeginner,
			Resources:   []string{"https://react.dev", "https://ru.reactjs.org"},
			Status:      tech.StatusNotStarted,
		},
		{
			ID:          "2",
			Title:       "Node.js",
			Description: "JavaScript runtime for the server",
			Category:    "backend",
			Difficulty:  tech.DifficultyIntermediate,
			Resources:   []string{"https://nodejs.org", "https://nodejs.org/ru/docs/"},
			Status:      tech.StatusNotStarted,
		},
		{
			ID:          "3",
			Title:       "Typescript",
			Description: "Typed superset of JavaScript",
			Category:    "language",
			Difficulty:  tech.DifficultyIntermediate,
			Resources:   []string{"https://www.typescriptlang.org"},
			Status:      tech.StatusNotStarted,
		},
	}, nil
}

// knownResources maps catalog technology names to learning links.
var knownResources = map[string][]string{
	"React":              {"https://react.dev", "https://ru.reactjs.org"},
	"Node.js":            {"https://nodejs.org", "https://nodejs.org/en/docs/"},
	"Typescript":         {"https://www.typescriptlang.org"},
	"JavaScript ES6+":    {"https://learn.javascript.ru", "https://developer.mozilla.org/en-US/docs/Web/JavaScript"},
	"CSS Grid & Flexbox": {"https://css-tricks.com/snippets/css/a-guide-to-flexbox/"},
	"Express.js":         {"https://expressjs.com"},
}
