package tech

import "time"

// Seed returns the collection used on first run when nothing is stored yet.
// Every call returns fresh copies stamped with now.
func Seed(now time.Time) []Item {
	seed := []Item{
		{
			ID:          "1",
			Title:       "React Components",
			Description: "Basic React components and their lifecycle",
			Status:      StatusCompleted,
			Notes:       "Covered component basics, HOCs still to go",
			Category:    "frontend",
		},
		{
			ID:          "2",
			Title:       "JSX Syntax",
			Description: "JSX syntax and how it differs from HTML",
			Status:      StatusInProgress,
			Category:    "frontend",
		},
		{
			ID:          "3",
			Title:       "State Management",
			Description: "Component state and lifting state up",
			Status:      StatusNotStarted,
			Category:    "frontend",
		},
		{
			ID:          "4",
			Title:       "React Hooks",
			Description: "useState, useEffect and writing custom hooks",
			Status:      StatusNotStarted,
			Category:    "frontend",
		},
		{
			ID:          "5",
			Title:       "React Router",
			Description: "Setting up routing in React applications",
			Status:      StatusInProgress,
			Notes:       "BrowserRouter done, moving on to dynamic routes",
			Category:    "frontend",
		},
		{
			ID:          "6",
			Title:       "Context API",
			Description: "Application-wide state management",
			Status:      StatusNotStarted,
			Category:    "frontend",
		},
		{
			ID:          "7",
			Title:       "Redux Toolkit",
			Description: "Modern state management with Redux Toolkit",
			Status:      StatusNotStarted,
			Category:    "frontend",
		},
		{
			ID:          "8",
			Title:       "TypeScript with React",
			Description: "Typing React applications",
			Status:      StatusCompleted,
			Notes:       "Finished the intro course, needs a real project",
			Category:    "frontend",
		},
	}

	for i := range seed {
		seed[i] = Normalize(seed[i], now)
	}
	return seed
}
