package config

// DefaultEpicContexts returns the built-in epic → codebase-hint table used
// when generating implementation prompts. The YAML overlay can extend or
// replace entries per repository.
func DefaultEpicContexts() map[string]string {
	return map[string]string{
		"booking-payment":     "payment/booking actions, Stripe integration, database models (payment, booking, payout)",
		"authentication":      "Better Auth config, auth utilities, session management, protected routes",
		"onboarding":          "onboarding flows, profile creation, document upload, verification workflow",
		"instructor-features": "instructor dashboard, availability, pricing, vehicle management",
		"learner-features":    "learner dashboard, booking flow, instructor search",
		"admin":               "admin verification queue, user management, platform analytics",
		"messaging":           "message threads, notifications, email triggers",
		"reviews":             "review writing, rating display, moderation",
		"search":              "geospatial search, PostGIS, filtering, sorting",
		"infrastructure":      "testing, CI/CD, monitoring, deployment",
		"ui-ux":               "components, themes, responsive design, accessibility",
	}
}

// EpicContext resolves the hint for an epic, preferring configured entries
// over the built-in table.
func (c *Config) EpicContext(epic string) string {
	if hint, ok := c.EpicContexts[epic]; ok {
		return hint
	}
	if hint, ok := DefaultEpicContexts()[epic]; ok {
		return hint
	}
	return "relevant code and patterns"
}
